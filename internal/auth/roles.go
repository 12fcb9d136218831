package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// RequireActiveUser ensures an authenticated, non-suspended account.
func RequireActiveUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.User.Status == domain.UserStatusSuspended {
			return fiber.NewError(http.StatusForbidden, "account suspended")
		}
		return c.Next()
	}
}
