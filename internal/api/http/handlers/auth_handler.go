package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/auth"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// AuthHandler exposes account endpoints.
type AuthHandler struct {
	auth             *service.AuthService
	profiles         *service.ProfileService
	validate         *validator.Validator
	exposeResetToken bool
}

// NewAuthHandler constructs handler. exposeResetToken echoes reset tokens in responses for development.
func NewAuthHandler(authService *service.AuthService, profiles *service.ProfileService, v *validator.Validator, exposeResetToken bool) *AuthHandler {
	return &AuthHandler{auth: authService, profiles: profiles, validate: v, exposeResetToken: exposeResetToken}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	session, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, sessionResponse(session))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, sessionResponse(session))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	resp := dto.MeResponse{User: dto.NewUserResponse(principal.User)}

	company, err := h.profiles.MyCompany(c.UserContext(), principal.UserID())
	if err != nil && !isNotFoundError(err) {
		return err
	}
	if company != nil {
		mapped := dto.NewCompanyResponse(company)
		resp.Company = &mapped
	}

	creator, err := h.profiles.MyCreator(c.UserContext(), principal.UserID())
	if err != nil && !isNotFoundError(err) {
		return err
	}
	if creator != nil {
		mapped := dto.NewCreatorResponse(creator)
		resp.Creator = &mapped
	}
	return data(c, http.StatusOK, resp)
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RequestPasswordReset handles POST /auth/password/reset/request.
// The response is the same whether or not the email is registered.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	token, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	body := fiber.Map{"status": "reset requested"}
	if h.exposeResetToken && token != nil {
		body["reset_token"] = token.Token
		body["expires_at"] = token.ExpiresAt
	}
	return data(c, http.StatusAccepted, body)
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func sessionResponse(s *service.Session) dto.SessionResponse {
	return dto.SessionResponse{
		User: dto.NewUserResponse(s.User),
		Auth: dto.AuthResponse{Token: s.Token, ExpiresAt: s.ExpiresAt},
	}
}

func isNotFoundError(err error) bool {
	var de *apperrors.DomainError
	return errors.As(err, &de) && de.HTTPStatus == http.StatusNotFound
}
