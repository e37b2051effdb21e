package iworkerrepo

import (
	"context"

	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/worker"
)

// Repository defines worker listing and worker-scoped order queues.
type Repository interface {
	// List returns a page of workers with the unfiltered total count.
	List(ctx context.Context, page, limit int) (*worker.Page, error)

	// Orders returns a page of the worker's order queue.
	Orders(ctx context.Context, workerID int64, page, limit int) (*order.Page, error)
}
