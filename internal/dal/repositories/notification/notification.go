package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"github.com/ishop-labs/backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/ishop-labs/backend/internal/dal/rabbitmq"
	"github.com/ishop-labs/backend/internal/service/models/notification"
	"github.com/ishop-labs/backend/internal/service/models/outbox"
)

// RabbitMQNotifier publishes order-completed events for the email relay.
// When the broker is unavailable the event is parked in the outbox table and
// the relay worker retries it later.
type RabbitMQNotifier struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.Repository
	queue      amqp.Queue
	maxRetries int
}

func NewRabbitMQNotifier(client *rabbitmq.Client, outboxRepo ioutboxrepo.Repository) *RabbitMQNotifier {
	queueName := viper.GetString("rabbitmq.notifications.queue")
	if queueName == "" {
		queueName = "ishop.order.completed"
	}

	maxRetries := viper.GetInt("rabbitmq.notifications.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQNotifier{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
		maxRetries: maxRetries,
	}
}

// OrderCompleted publishes the completion event. A publish failure is not
// fatal as long as the event lands in the outbox.
func (n *RabbitMQNotifier) OrderCompleted(ctx context.Context, event notification.OrderCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order completed event: %w", err)
	}

	err = n.client.Channel().Publish(
		"",
		n.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err == nil {
		slog.Info("Order completed event published", "order_id", event.OrderID, "queue", n.queue.Name)

		return nil
	}

	slog.Warn("Failed to publish order completed event, parking in outbox",
		"order_id", event.OrderID,
		"error", err,
	)

	now := time.Now()
	if insertErr := n.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   n.queue.Name,
		RoutingKey:  n.queue.Name,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  n.maxRetries,
		LastError:   err.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}); insertErr != nil {
		return fmt.Errorf("failed to park order completed event in outbox: %w", insertErr)
	}

	return nil
}
