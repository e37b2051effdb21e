package order

import (
	"time"

	"github.com/ishop-labs/backend/internal/service/models/product"
	"github.com/ishop-labs/backend/internal/service/models/user"
	"github.com/ishop-labs/backend/internal/service/models/worker"
)

// Order represents a single order row. A checkout with N items produces N
// independent orders sharing the same user, status and estimated arrival.
type Order struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"userId"`
	ProductID        int64            `json:"productId"`
	Quantity         int              `json:"quantity"`
	Status           Status           `json:"status"`
	OrderDate        time.Time        `json:"orderDate"`
	StatusDate       time.Time        `json:"statusDate"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
	EstimatedArrival *time.Time       `json:"estimatedArrival,omitempty"`
	WorkerID         *int64           `json:"workerId,omitempty"`
	Product          *product.Summary `json:"product,omitempty"`
	User             *user.Summary    `json:"user,omitempty"`
	Worker           *worker.Summary  `json:"worker,omitempty"`
}

// Item is a single checkout line: a product reference with a quantity.
type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrder carries everything needed to insert the fan-out rows.
type CreateOrder struct {
	UserID           int64
	Status           Status
	EstimatedArrival time.Time
	Items            []Item
}

// Completed is the result of flipping an order to COMPLETED: the fields the
// stock decrement needs.
type Completed struct {
	OrderID   int64
	ProductID int64
	Quantity  int
}

// Page is a paginated order listing with the unfiltered total.
type Page struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// DeleteResult reports the outcome of a delete. A missing row is not an
// error, it is this message.
type DeleteResult struct {
	Message string `json:"message"`
}
