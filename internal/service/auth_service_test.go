package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchstack-dev/matchstack/internal/config"
	"github.com/matchstack-dev/matchstack/internal/domain"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

func newAuthService(w *world) *AuthService {
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              bcrypt.MinCost,
	}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: userRepo{w}, PasswordResetRepo: resetRepo{w}})
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	w := newWorld()
	svc := newAuthService(w)
	ctx := context.Background()

	session, err := svc.Register(ctx, "  Ana@Example.com ", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.TokenManager().ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID())

	_, err = svc.Register(ctx, "ana@example.com", "another-pass")
	assert.Equal(t, "CONFLICT", errorCode(t, err))

	_, err = svc.Login(ctx, "ANA@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))

	_, err = svc.Login(ctx, "nobody@example.com", "correct-horse")
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))
}

func TestAuthService_LoginSuspended(t *testing.T) {
	w := newWorld()
	svc := newAuthService(w)
	ctx := context.Background()

	session, err := svc.Register(ctx, "sam@example.com", "correct-horse")
	require.NoError(t, err)
	w.users[session.User.ID].Status = domain.UserStatusSuspended

	_, err = svc.Login(ctx, "sam@example.com", "correct-horse")
	assert.Equal(t, "FORBIDDEN", errorCode(t, err))
}

func TestAuthService_PasswordReset(t *testing.T) {
	w := newWorld()
	svc := newAuthService(w)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ana@example.com", "correct-horse")
	require.NoError(t, err)

	none, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)

	token, err := svc.RequestPasswordReset(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token.Token, "battery-staple"))

	_, err = svc.Login(ctx, "ana@example.com", "battery-staple")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "ana@example.com", "correct-horse")
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))

	err = svc.ConfirmPasswordReset(ctx, token.Token, "third-password")
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))

	err = svc.ConfirmPasswordReset(ctx, "not-a-token", "third-password")
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	w := newWorld()
	svc := newAuthService(w)
	ctx := context.Background()

	session, err := svc.Register(ctx, "ana@example.com", "correct-horse")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, session.User.ID, "wrong", "battery-staple")
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, err))

	require.NoError(t, svc.ChangePassword(ctx, session.User.ID, "correct-horse", "battery-staple"))
	_, err = svc.Login(ctx, "ana@example.com", "battery-staple")
	require.NoError(t, err)
}
