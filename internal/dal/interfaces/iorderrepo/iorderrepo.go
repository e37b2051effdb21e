package iorderrepo

import (
	"context"

	"github.com/ishop-labs/backend/internal/service/models/order"
)

// Repository defines order row lifecycle operations.
type Repository interface {
	// Insert creates one order row per item and returns the generated ids in
	// item order.
	Insert(ctx context.Context, create order.CreateOrder) ([]int64, error)

	// GetByID returns the order, or (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// List returns a page of orders with product/user summaries and the
	// unfiltered total count.
	List(ctx context.Context, page, limit int) (*order.Page, error)

	// Update partially updates the single-line fields.
	Update(ctx context.Context, id int64, productID int64, quantity int) (*order.Order, error)

	// Delete physically removes the row; a missing row is reported in the
	// result message, not as an error.
	Delete(ctx context.Context, id int64) (order.DeleteResult, error)

	// MarkCompleted flips a PENDING order to COMPLETED and returns the fields
	// the stock decrement needs.
	MarkCompleted(ctx context.Context, id int64) (*order.Completed, error)

	// GetWithUser returns the order together with the owning user's id and
	// email.
	GetWithUser(ctx context.Context, id int64) (*order.Order, error)

	// AssignWorker sets the order's worker.
	AssignWorker(ctx context.Context, orderID, workerID int64) error

	// ListByWorker returns all orders assigned to a worker, empty when none.
	ListByWorker(ctx context.Context, workerID int64) ([]order.Order, error)

	// ListWithWorker returns all orders joined with worker, product and user
	// summaries for the admin dashboard.
	ListWithWorker(ctx context.Context) ([]order.Order, error)
}
