package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/stories-service/internal/api/http/handlers"
	"github.com/spec-kit/stories-service/internal/auth"
	"github.com/spec-kit/stories-service/internal/config"
	"github.com/spec-kit/stories-service/internal/events"
	"github.com/spec-kit/stories-service/internal/media"
	"github.com/spec-kit/stories-service/internal/observability"
	"github.com/spec-kit/stories-service/internal/persistence"
	"github.com/spec-kit/stories-service/internal/ratelimit"
	"github.com/spec-kit/stories-service/internal/repository"
	"github.com/spec-kit/stories-service/internal/service"
	"github.com/spec-kit/stories-service/internal/worker"

	httptransport "github.com/spec-kit/stories-service/internal/api/http"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterSubscribers(dispatcher, logger, metrics)

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	storyRepo := repository.NewStoryRepository(pool)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		Accounts:   accountRepo,
		Dispatcher: dispatcher,
	})
	storyService := service.NewStoryService(cfg.Stories.TTL(), service.StoryDependencies{
		Stories:    storyRepo,
		Uploader:   media.NewClient(cfg.Media),
		Dispatcher: dispatcher,
	})

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewLimiter(redis.Client, cfg.RateLimit, logger)
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg),
		Auth:           handlers.NewAuthHandler(authService),
		Stories:        handlers.NewStoriesHandler(storyService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
		Limiter:        limiter,
	})

	if cfg.Stories.ReaperEnabled {
		reaper := worker.NewReaper(storyRepo, cfg.Stories.ReaperInterval(), logger, nil)
		go reaper.Run(ctx)
	}

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
