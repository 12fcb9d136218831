package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
)

// ProfileHandler exposes onboarding endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
	validate *validator.Validator
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, v *validator.Validator) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, validate: v}
}

// SaveCompany handles PUT /companies/me.
func (h *ProfileHandler) SaveCompany(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	company, err := h.profiles.SaveCompany(c.UserContext(), userID, service.CompanyInput{
		Name:         req.Name,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
		Industries:   req.Industries,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCompanyResponse(company))
}

// MyCompany handles GET /companies/me.
func (h *ProfileHandler) MyCompany(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	company, err := h.profiles.MyCompany(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCompanyResponse(company))
}

// SaveCreator handles PUT /creators/me.
func (h *ProfileHandler) SaveCreator(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreatorRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	creator, err := h.profiles.SaveCreator(c.UserContext(), userID, service.CreatorInput{
		Name:         req.Name,
		RoleType:     req.RoleType,
		Niches:       req.Niches,
		Bio:          req.Bio,
		SubstackURL:  req.SubstackURL,
		LinkedInURL:  req.LinkedInURL,
		Samples:      req.Samples,
		AudienceSize: req.AudienceSize,
		PricingTier:  req.PricingTier,
		Availability: req.Availability,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCreatorResponse(creator))
}

// MyCreator handles GET /creators/me.
func (h *ProfileHandler) MyCreator(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	creator, err := h.profiles.MyCreator(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCreatorResponse(creator))
}

// GetCreator handles GET /creators/:id.
func (h *ProfileHandler) GetCreator(c *fiber.Ctx) error {
	creator, err := h.profiles.Creator(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewCreatorResponse(creator))
}
