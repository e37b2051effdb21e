package workersvc

import (
	"context"

	"github.com/ishop-labs/backend/internal/dal/interfaces/iworkerrepo"
	"github.com/ishop-labs/backend/internal/dal/postgres"
	workerrepo "github.com/ishop-labs/backend/internal/dal/repositories/worker/postgres"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/worker"
)

// WorkerService is a passthrough over the worker repository; it exists as an
// injection seam, not for business logic.
type WorkerService struct {
	pgClient   *postgres.Client
	workerRepo iworkerrepo.Repository
}

// option is a function that configures the WorkerService.
type option func(*WorkerService)

// MustNewWorkerService creates a new WorkerService.
func MustNewWorkerService(opts ...option) *WorkerService {
	s := &WorkerService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.workerRepo == nil {
		if s.pgClient == nil {
			panic("workersvc: missing postgres client or repository")
		}
		s.workerRepo = workerrepo.NewPostgresWorkerRepository(s.pgClient.Pool())
	}

	return s
}

// WithPostgresClient sets the Postgres client for the WorkerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *WorkerService) {
		s.pgClient = pgClient
	}
}

// WithWorkerRepository overrides the worker repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithWorkerRepository(repo iworkerrepo.Repository) option {
	return func(s *WorkerService) {
		s.workerRepo = repo
	}
}

// List returns a page of workers.
func (s *WorkerService) List(ctx context.Context, page, limit int) (*worker.Page, error) {
	return s.workerRepo.List(ctx, page, limit)
}

// Orders returns a page of the worker's order queue.
func (s *WorkerService) Orders(ctx context.Context, workerID int64, page, limit int) (*order.Page, error) {
	return s.workerRepo.Orders(ctx, workerID, page, limit)
}
