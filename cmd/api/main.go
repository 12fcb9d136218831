package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/matchstack-dev/matchstack/internal/api/http"
	"github.com/matchstack-dev/matchstack/internal/api/http/handlers"
	"github.com/matchstack-dev/matchstack/internal/auth"
	"github.com/matchstack-dev/matchstack/internal/cache"
	"github.com/matchstack-dev/matchstack/internal/config"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/notify"
	"github.com/matchstack-dev/matchstack/internal/observability"
	"github.com/matchstack-dev/matchstack/internal/persistence"
	"github.com/matchstack-dev/matchstack/internal/ratelimit"
	"github.com/matchstack-dev/matchstack/internal/repository"
	"github.com/matchstack-dev/matchstack/internal/service"
	"github.com/matchstack-dev/matchstack/internal/validator"
	"github.com/matchstack-dev/matchstack/internal/worker"
	"github.com/matchstack-dev/matchstack/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.Files, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	var readCache cache.Cache = cache.Noop{}
	var limiter ratelimit.Checker
	health := map[string]handlers.Pinger{"postgres": pg}
	if redis.Enabled() {
		readCache = cache.NewRedisCache(redis.Client, "matchstack")
		limiter = ratelimit.NewRedisLimiter(redis.Client)
		health["redis"] = redis
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	creatorRepo := repository.NewCreatorRepository(pool)
	briefRepo := repository.NewBriefRepository(pool)
	matchRepo := repository.NewMatchRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	recommendationRepo := repository.NewRecommendationRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Logger:            logger,
	})
	profileService := service.NewProfileService(service.ProfileDependencies{
		CompanyRepo: companyRepo,
		CreatorRepo: creatorRepo,
		Cache:       readCache,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		CreatorRepo: creatorRepo,
		Cache:       readCache,
		TTL:         cfg.Cache.DirectoryTTL(),
		Metrics:     metrics,
		Logger:      logger,
	})
	briefService := service.NewBriefService(service.BriefDependencies{
		BriefRepo:   briefRepo,
		CompanyRepo: companyRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	recommendationService := service.NewRecommendationService(service.RecommendationDependencies{
		Briefs:             briefService,
		RecommendationRepo: recommendationRepo,
		Cache:              readCache,
		TTL:                cfg.Cache.RecommendationsTTL(),
		Limit:              cfg.Matching.RecommendationsLimit,
		Metrics:            metrics,
		Logger:             logger,
	})
	matchService := service.NewMatchService(service.MatchDependencies{
		Briefs:      briefService,
		MatchRepo:   matchRepo,
		CreatorRepo: creatorRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	conversationService := service.NewConversationService(service.ConversationDependencies{
		MatchRepo:   matchRepo,
		MessageRepo: messageRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})

	notificationDeps := service.NotificationDependencies{
		Dispatcher: dispatcher,
		UserRepo:   userRepo,
		Logger:     logger,
	}
	if mailer := notify.NewSMTPMailer(cfg.Notification); mailer != nil {
		notificationDeps.Mailer = mailer
	}
	if hook := notify.NewWebhook(cfg.Notification.WebhookURL, cfg.Notification.Timeout()); hook != nil {
		notificationDeps.Webhook = hook
	}
	notifications := worker.StartNotificationWorker(
		service.NewNotificationService(notificationDeps),
		cfg.Notification.Workers,
		cfg.Notification.QueueSize,
		cfg.Notification.Timeout(),
		logger,
	)
	defer notifications.Stop()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	v := validator.New()

	app := httptransport.NewApp(cfg.App.Name, cfg.App.RequestTimeout(), httptransport.ErrorHandler(logger, metrics))
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, health),
		Auth:           handlers.NewAuthHandler(authService, profileService, v, !cfg.App.IsProduction()),
		Profiles:       handlers.NewProfileHandler(profileService, v),
		Directory:      handlers.NewDirectoryHandler(directoryService, v),
		Briefs:         handlers.NewBriefHandler(briefService, recommendationService, matchService, v),
		Matches:        handlers.NewMatchHandler(matchService, conversationService, v),
		Conversations:  handlers.NewConversationHandler(conversationService, v),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
		AuthLimiter: ratelimit.Middleware(limiter, ratelimit.Rule{
			Bucket:   "auth",
			Requests: cfg.RateLimit.AuthPerMinute,
			Window:   time.Minute,
			Key:      ratelimit.ByIP("auth"),
		}, metrics, logger),
		MessageLimiter: ratelimit.Middleware(limiter, ratelimit.Rule{
			Bucket:   "messages",
			Requests: cfg.RateLimit.MessagesPerMinute,
			Window:   time.Minute,
			Key:      ratelimit.ByUser("messages"),
		}, metrics, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
