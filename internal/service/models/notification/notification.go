package notification

import "time"

// OrderCompletedEvent is the payload published when an order completes. The
// email relay consumes it and sends the customer message.
type OrderCompletedEvent struct {
	OrderID          int64      `json:"orderId"`
	Email            string     `json:"email"`
	EstimatedArrival *time.Time `json:"estimatedArrival,omitempty"`
	CompletedAt      time.Time  `json:"completedAt"`
}
