package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
)

// DirectoryHandler serves the creator directory.
type DirectoryHandler struct {
	directory *service.DirectoryService
	validate  *validator.Validator
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService, v *validator.Validator) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, validate: v}
}

// List handles GET /creators?role_type=&pricing_tier=&availability=&engagement=&q=&niches=a,b.
func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	var query dto.DirectoryQuery
	if err := bindQuery(c, h.validate, &query); err != nil {
		return err
	}
	page, err := h.directory.List(c.UserContext(), query.Criteria())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDirectoryResponse(page.Creators, page.Total, page.Niches))
}
