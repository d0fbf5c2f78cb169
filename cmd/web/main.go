package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-console/internal/api/http"
	"github.com/spec-kit/helpdesk-console/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/observability"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/tickets"
	"github.com/spec-kit/helpdesk-console/internal/view"
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

	redis := session.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	sessions, err := session.NewManager(redis, cfg.Auth, logger)
	if err != nil {
		logger.Fatal("failed to init session manager", zap.Error(err))
	}
	guard := session.NewGuard(sessions, cfg.Auth.SessionCookie)

	client := backend.NewClient(cfg.Backend, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	recorder := events.NewActivityRecorder(dispatcher, sessions, logger)
	recorder.RegisterHandlers()

	renderer, err := view.New()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, renderer)

	snapshots := tickets.NewStore()

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Auth:      handlers.NewAuthHandler(client, sessions, guard, snapshots, renderer, logger),
		Dashboard: handlers.NewDashboardHandler(client, sessions, renderer, logger),
		Tickets:   handlers.NewTicketHandler(client, sessions, dispatcher, renderer, logger),
		Progress:  handlers.NewProgressHandler(client, sessions, snapshots, dispatcher, renderer, logger),
		History:   handlers.NewHistoryHandler(client, sessions, renderer, logger),
		Profile:   handlers.NewProfileHandler(client, sessions, renderer, logger),
		Settings:  handlers.NewSettingsHandler(sessions, renderer, logger),
		Admin:     handlers.NewAdminHandler(client, sessions, snapshots, dispatcher, renderer, logger),
		Health:    handlers.NewHealthHandler(redis, metrics),
		Guard:     guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("console started",
		zap.String("addr", cfg.App.Addr()),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("version", cfg.App.Version))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
