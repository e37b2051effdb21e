package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ishop-labs/backend/internal/dal/authclient"
	"github.com/ishop-labs/backend/internal/dal/postgres"
	"github.com/ishop-labs/backend/internal/dal/rabbitmq"
	notificationrepo "github.com/ishop-labs/backend/internal/dal/repositories/notification"
	outboxrepo "github.com/ishop-labs/backend/internal/dal/repositories/outbox/postgres"
	"github.com/ishop-labs/backend/internal/otel"
	"github.com/ishop-labs/backend/internal/service/services/ordersvc"
	"github.com/ishop-labs/backend/internal/service/services/workersvc"
	httptransport "github.com/ishop-labs/backend/internal/transport/http"
	outboxworker "github.com/ishop-labs/backend/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	workerSvc      *workersvc.WorkerService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	outboxRepo := outboxrepo.NewOutboxRepository(postgresClient.Pool())
	notifier := notificationrepo.NewRabbitMQNotifier(rabbitClient, outboxRepo)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	workerSvc := workersvc.MustNewWorkerService(
		workersvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, workerSvc, notifier, authclient.NewClient())
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		workerSvc:      workerSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   outboxworker.NewWorker(outboxRepo, rabbitClient),
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
