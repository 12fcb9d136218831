package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// BriefHandler exposes brief and recommendation endpoints.
type BriefHandler struct {
	briefs          *service.BriefService
	recommendations *service.RecommendationService
	matches         *service.MatchService
	validate        *validator.Validator
}

// NewBriefHandler constructs handler.
func NewBriefHandler(briefs *service.BriefService, recommendations *service.RecommendationService, matches *service.MatchService, v *validator.Validator) *BriefHandler {
	return &BriefHandler{briefs: briefs, recommendations: recommendations, matches: matches, validate: v}
}

// Create handles POST /briefs.
func (h *BriefHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateBriefRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	brief, err := h.briefs.Create(c.UserContext(), userID, service.BriefInput{
		Title:            req.Title,
		Description:      req.Description,
		RoleTypeRequired: req.RoleTypeRequired,
		Niches:           req.Niches,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		Urgency:          req.Urgency,
		Cadence:          req.Cadence,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewBriefResponse(brief))
}

// ListMine handles GET /briefs?status=open.
func (h *BriefHandler) ListMine(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var status *domain.BriefStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.BriefStatus(raw)
		if s != domain.BriefStatusOpen && s != domain.BriefStatusClosed {
			return apperrors.NewValidationError("invalid status filter", map[string]any{"status": raw})
		}
		status = &s
	}
	briefs, err := h.briefs.ListMine(c.UserContext(), userID, status)
	if err != nil {
		return err
	}
	items := make([]dto.BriefResponse, 0, len(briefs))
	for i := range briefs {
		items = append(items, dto.NewBriefResponse(&briefs[i]))
	}
	return data(c, http.StatusOK, items)
}

// Get handles GET /briefs/:id.
func (h *BriefHandler) Get(c *fiber.Ctx) error {
	brief, err := h.briefs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewBriefWithCompanyResponse(brief))
}

// Close handles POST /briefs/:id/close.
func (h *BriefHandler) Close(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	brief, err := h.briefs.Close(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewBriefResponse(brief))
}

// Recommendations handles GET /briefs/:id/recommendations.
func (h *BriefHandler) Recommendations(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	brief, recs, err := h.recommendations.ForBrief(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.RecommendationResponse, 0, len(recs))
	for i := range recs {
		items = append(items, dto.RecommendationResponse{
			Creator: dto.NewCreatorResponse(&recs[i].Creator),
			Score:   recs[i].Score,
			Badges:  recs[i].Badges,
		})
	}
	return data(c, http.StatusOK, dto.RecommendationsResponse{
		Brief:           dto.NewBriefWithCompanyResponse(brief),
		Recommendations: items,
	})
}

// Matches handles GET /briefs/:id/matches.
func (h *BriefHandler) Matches(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	matches, err := h.matches.ListForBrief(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.MatchResponse, 0, len(matches))
	for i := range matches {
		items = append(items, dto.NewMatchResponse(&matches[i]))
	}
	return data(c, http.StatusOK, items)
}
