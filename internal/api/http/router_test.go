package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/api/http/handlers"
	"github.com/matchstack-dev/matchstack/internal/observability"
	"github.com/matchstack-dev/matchstack/internal/ratelimit"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type denyAll struct{}

func (denyAll) CheckAndIncrement(context.Context, string, int, time.Duration) (bool, int, time.Time, error) {
	return false, 0, time.Now().Add(30 * time.Second), nil
}

func newTestApp(t *testing.T, deps map[string]handlers.Pinger) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	app := NewApp("matchstack-test", time.Second, ErrorHandler(logger, metrics))
	RegisterMiddlewares(app, logger, metrics, MiddlewareConfig{RequestTimeout: time.Second})
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("matchstack-test", "test", deps),
		Metrics: metrics,
		AuthLimiter: ratelimit.Middleware(denyAll{}, ratelimit.Rule{
			Bucket: "auth", Requests: 1, Window: time.Minute, Key: ratelimit.ByIP("auth"),
		}, metrics, logger),
	})
	app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })
	return app
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t, map[string]handlers.Pinger{
		"postgres": pingFunc(func(context.Context) error { return nil }),
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestReadinessFailsWhenDependencyDown(t *testing.T) {
	app := newTestApp(t, map[string]handlers.Pinger{
		"redis": pingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
}

func TestErrorEnvelope(t *testing.T) {
	app := newTestApp(t, nil)

	cases := []struct {
		name   string
		method string
		path   string
		status int
		code   string
	}{
		{"unknown route", fiber.MethodGet, "/nope", fiber.StatusNotFound, "NOT_FOUND"},
		{"protected without token", fiber.MethodGet, "/briefs", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"protected match without token", fiber.MethodGet, "/matches/abc/messages", fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"panic", fiber.MethodGet, "/boom", fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp.Body).Error.Code)
		})
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.test","password":"x"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, "RATE_LIMITED", decodeError(t, resp.Body).Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/live", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "matchstack_http_requests_total")
}
