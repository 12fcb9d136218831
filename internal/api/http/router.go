package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/matchstack-dev/matchstack/internal/api/http/handlers"
	"github.com/matchstack-dev/matchstack/internal/auth"
	"github.com/matchstack-dev/matchstack/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Directory      *handlers.DirectoryHandler
	Briefs         *handlers.BriefHandler
	Matches        *handlers.MatchHandler
	Conversations  *handlers.ConversationHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	// AuthLimiter and MessageLimiter guard credential checks and message writes. Nil disables them.
	AuthLimiter    fiber.Handler
	MessageLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	authLimiter := orPass(cfg.AuthLimiter)
	messageLimiter := orPass(cfg.MessageLimiter)
	authenticated := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireActiveUser()}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", authLimiter, cfg.Auth.Register)
	authGroup.Post("/login", authLimiter, cfg.Auth.Login)
	authGroup.Post("/password/reset/request", authLimiter, cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", authLimiter, cfg.Auth.ConfirmPasswordReset)
	authGroup.Get("/me", with(authenticated, cfg.Auth.Me)...)
	authGroup.Post("/password/change", with(authenticated, authLimiter, cfg.Auth.ChangePassword)...)

	creators := app.Group("/creators")
	creators.Get("/", cfg.Directory.List)
	creators.Get("/me", with(authenticated, cfg.Profiles.MyCreator)...)
	creators.Put("/me", with(authenticated, cfg.Profiles.SaveCreator)...)
	creators.Get("/:id", cfg.Profiles.GetCreator)

	companies := app.Group("/companies", authenticated...)
	companies.Get("/me", cfg.Profiles.MyCompany)
	companies.Put("/me", cfg.Profiles.SaveCompany)

	briefs := app.Group("/briefs", authenticated...)
	briefs.Post("/", cfg.Briefs.Create)
	briefs.Get("/", cfg.Briefs.ListMine)
	briefs.Get("/:id", cfg.Briefs.Get)
	briefs.Post("/:id/close", cfg.Briefs.Close)
	briefs.Get("/:id/recommendations", cfg.Briefs.Recommendations)
	briefs.Get("/:id/matches", cfg.Briefs.Matches)

	matches := app.Group("/matches", authenticated...)
	matches.Post("/shortlist", cfg.Matches.Shortlist)
	matches.Post("/contact", cfg.Matches.Contact)
	matches.Post("/propose", cfg.Matches.Propose)
	matches.Get("/:id", cfg.Matches.Get)
	matches.Patch("/:id/status", cfg.Matches.SetStatus)
	matches.Get("/:id/conversation", cfg.Conversations.Open)
	matches.Get("/:id/messages", cfg.Conversations.Messages)
	matches.Post("/:id/messages", messageLimiter, cfg.Conversations.Send)
}

// NewApp builds the fiber application with the error renderer installed.
func NewApp(name string, readTimeout time.Duration, handler fiber.ErrorHandler) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  readTimeout,
		WriteTimeout: readTimeout,
		ErrorHandler: handler,
	})
}

func with(chain []fiber.Handler, handlers ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(chain)+len(handlers))
	out = append(out, chain...)
	return append(out, handlers...)
}

func orPass(h fiber.Handler) fiber.Handler {
	if h != nil {
		return h
	}
	return func(c *fiber.Ctx) error { return c.Next() }
}
