package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/auth"
	"github.com/matchstack-dev/matchstack/internal/validator"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// bindJSON decodes the body into dst and validates it.
func bindJSON(c *fiber.Ctx, v *validator.Validator, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return v.Check(dst)
}

// bindQuery decodes query parameters into dst and validates it.
func bindQuery(c *fiber.Ctx, v *validator.Validator, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query")
	}
	return v.Check(dst)
}

// currentUserID returns the authenticated caller's id.
func currentUserID(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	return principal.UserID(), nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
