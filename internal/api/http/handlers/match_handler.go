package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
)

// MatchHandler exposes match actions.
type MatchHandler struct {
	matches       *service.MatchService
	conversations *service.ConversationService
	validate      *validator.Validator
}

// NewMatchHandler constructs handler.
func NewMatchHandler(matches *service.MatchService, conversations *service.ConversationService, v *validator.Validator) *MatchHandler {
	return &MatchHandler{matches: matches, conversations: conversations, validate: v}
}

type pairAction func(ctx context.Context, userID, briefID, creatorID string) (*service.MatchResult, error)

// Shortlist handles POST /matches/shortlist.
func (h *MatchHandler) Shortlist(c *fiber.Ctx) error {
	return h.pair(c, h.matches.Shortlist)
}

// Contact handles POST /matches/contact. It returns the existing match for the pair when there is one.
func (h *MatchHandler) Contact(c *fiber.Ctx) error {
	return h.pair(c, h.matches.Contact)
}

// Propose handles POST /matches/propose.
func (h *MatchHandler) Propose(c *fiber.Ctx) error {
	return h.pair(c, h.matches.Propose)
}

func (h *MatchHandler) pair(c *fiber.Ctx, action pairAction) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.MatchPairRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	result, err := action(c.UserContext(), userID, req.BriefID, req.CreatorID)
	if err != nil {
		return err
	}
	resp := dto.NewMatchResponse(result.Match)
	resp.Created = result.Created
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return data(c, status, resp)
}

// Get handles GET /matches/:id.
func (h *MatchHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	parties, _, err := h.conversations.Parties(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewMatchPartiesResponse(parties))
}

// SetStatus handles PATCH /matches/:id/status.
func (h *MatchHandler) SetStatus(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.MatchStatusRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	match, err := h.matches.SetStatus(c.UserContext(), userID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewMatchResponse(match))
}
