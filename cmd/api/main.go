package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/clientdesk/ticket-service/internal/api/http"
	"github.com/clientdesk/ticket-service/internal/api/http/handlers"
	"github.com/clientdesk/ticket-service/internal/config"
	"github.com/clientdesk/ticket-service/internal/events"
	"github.com/clientdesk/ticket-service/internal/observability"
	"github.com/clientdesk/ticket-service/internal/repository"
	"github.com/clientdesk/ticket-service/internal/service"
	"github.com/clientdesk/ticket-service/internal/worker"
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

	categories, err := service.LoadSkillCategories(cfg.Assignment.RulesPath)
	if err != nil {
		logger.Warn("falling back to built-in assignment rules",
			zap.String("rules_path", cfg.Assignment.RulesPath), zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	ticketRepo := repository.NewMemoryTicketRepository()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Assigner:   service.NewAssignmentService(categories),
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Tickets: handlers.NewTicketsHandler(ticketService),
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
