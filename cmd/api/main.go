package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/stacktrack/stacktrack/internal/api/http"
	"github.com/stacktrack/stacktrack/internal/api/http/handlers"
	"github.com/stacktrack/stacktrack/internal/config"
	"github.com/stacktrack/stacktrack/internal/events"
	"github.com/stacktrack/stacktrack/internal/observability"
	"github.com/stacktrack/stacktrack/internal/persistence"
	"github.com/stacktrack/stacktrack/internal/service"
	"github.com/stacktrack/stacktrack/internal/session"
	"github.com/stacktrack/stacktrack/internal/sla"
	"github.com/stacktrack/stacktrack/internal/upstream"
	"github.com/stacktrack/stacktrack/internal/worker"
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

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	api := upstream.New(cfg.Upstream, logger, metrics)
	dispatcher := events.NewInMemoryDispatcher()

	engine := sla.NewEngine(sla.NewCalendar(cfg.SLA.Location()))

	optionsService := service.NewOptionsService(service.OptionsDependencies{
		API:     api,
		Cache:   redis,
		TTL:     cfg.Cache.OptionsTTL(),
		Logger:  logger,
		Metrics: metrics,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		API:        api,
		Options:    optionsService,
		Engine:     engine,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	})
	clientService := service.NewClientService(api)
	sessionService := service.NewSessionService(api, logger)
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:     logger,
		Metrics:    metrics,
		Timeout:    cfg.App.RequestTimeout(),
		Session:    cfg.Session,
		Dispatcher: dispatcher,
	}, session.NewMiddleware(cfg.Session))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Version, redis),
		Session: handlers.NewSessionHandler(sessionService, cfg.Session),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Clients: handlers.NewClientsHandler(clientService),
		Options: handlers.NewOptionsHandler(optionsService),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
