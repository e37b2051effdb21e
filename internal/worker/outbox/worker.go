package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/ishop-labs/backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/ishop-labs/backend/internal/dal/rabbitmq"
)

// Worker relays parked notification events from the outbox table to
// RabbitMQ, retrying with exponential backoff.
type Worker struct {
	outboxRepo   ioutboxrepo.Repository
	rabbitClient *rabbitmq.Client
	pollInterval time.Duration
	batchSize    int
	publishLimit int
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.Repository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	publishLimit := viper.GetInt("rabbitmq.outbox.publish_limit")
	if publishLimit == 0 {
		publishLimit = 3
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		rabbitClient: rabbitClient,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		publishLimit: publishLimit,
		stopCh:       make(chan struct{}),
	}
}

// Start begins relaying messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// retryBackoff returns the delay before the given attempt: 2^n * 30s.
func retryBackoff(retryCount int) time.Duration {
	return time.Duration(math.Pow(2, float64(retryCount))*30) * time.Second
}

// processMessages retrieves and relays pending messages from the outbox.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Relaying outbox messages", "count", len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.publishLimit)

	for _, msg := range messages {
		msg := msg
		g.Go(func() error {
			err := w.rabbitClient.Channel().Publish(
				msg.ExchangeName,
				msg.RoutingKey,
				false,
				false,
				amqp.Publishing{
					ContentType: msg.ContentType,
					Body:        msg.Payload,
				},
			)

			if err != nil {
				// Schedule the next attempt with exponential backoff
				newRetryCount := msg.RetryCount + 1
				nextRetryAt := time.Now().Add(retryBackoff(newRetryCount))

				slog.Warn("Failed to publish message from outbox, will retry",
					"outbox_id", msg.ID,
					"retry_count", newRetryCount,
					"next_retry", nextRetryAt,
					"error", err,
				)

				if err := w.outboxRepo.UpdateRetry(gctx, msg.ID, newRetryCount, err.Error(), nextRetryAt); err != nil {
					slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
				}

				return nil
			}

			if err := w.outboxRepo.Delete(gctx, msg.ID); err != nil {
				slog.Error("Failed to delete message from outbox after successful publish",
					"outbox_id", msg.ID,
					"error", err,
				)
			} else {
				slog.Info("Message relayed and removed from outbox", "outbox_id", msg.ID)
			}

			return nil
		})
	}

	_ = g.Wait()
}
