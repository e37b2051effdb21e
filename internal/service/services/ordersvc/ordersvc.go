package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/ishop-labs/backend/internal/dal/interfaces/iorderrepo"
	"github.com/ishop-labs/backend/internal/dal/interfaces/iproductrepo"
	"github.com/ishop-labs/backend/internal/dal/interfaces/iuserrepo"
	"github.com/ishop-labs/backend/internal/dal/postgres"
	orderrepo "github.com/ishop-labs/backend/internal/dal/repositories/order/postgres"
	userrepo "github.com/ishop-labs/backend/internal/dal/repositories/user/postgres"
	"github.com/ishop-labs/backend/internal/dal/uow"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/user"
)

// OrderService orchestrates the order lifecycle. Apart from the user
// existence gate on creation and the completion transaction, operations pass
// through to the repositories unchanged.
type OrderService struct {
	pgClient  *postgres.Client
	orderRepo iorderrepo.Repository
	userRepo  iuserrepo.Repository
	newUOW    func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.Repository
	ProductRepository() iproductrepo.Repository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.pgClient != nil {
		if s.orderRepo == nil {
			s.orderRepo = orderrepo.NewPostgresOrderRepository(s.pgClient.Pool())
		}
		if s.userRepo == nil {
			s.userRepo = userrepo.NewPostgresUserRepository(s.pgClient.Pool())
		}
		if s.newUOW == nil {
			s.newUOW = func() unitOfWork {
				return uow.NewUnitOfWork(s.pgClient)
			}
		}
	}

	if s.orderRepo == nil || s.userRepo == nil || s.newUOW == nil {
		panic("ordersvc: missing postgres client or repositories")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithOrderRepository overrides the order repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.Repository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithUserRepository overrides the user repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.Repository) option {
	return func(s *OrderService) {
		s.userRepo = repo
	}
}

// WithUnitOfWorkFactory overrides the transaction factory.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() UnitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// UnitOfWork is the transactional boundary the service runs completion in.
type UnitOfWork = unitOfWork

// Create verifies the referenced user exists, then inserts one order row per
// item. No row is written when the user is missing.
func (s *OrderService) Create(ctx context.Context, userID int64, items []order.Item, estimatedArrival *time.Time) ([]int64, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	eta := time.Now().Add(estimatedArrivalWindow())
	if estimatedArrival != nil {
		eta = *estimatedArrival
	}

	return s.orderRepo.Insert(ctx, order.CreateOrder{
		UserID:           userID,
		Status:           order.StatusPending,
		EstimatedArrival: eta,
		Items:            items,
	})
}

// estimatedArrivalWindow is the default delivery window applied when the
// checkout does not carry one.
func estimatedArrivalWindow() time.Duration {
	days := viper.GetInt("orders.estimated_arrival_days")
	if days == 0 {
		days = 3
	}
	return time.Duration(days) * 24 * time.Hour
}

// List returns a page of orders.
func (s *OrderService) List(ctx context.Context, page, limit int) (*order.Page, error) {
	return s.orderRepo.List(ctx, page, limit)
}

// GetByID returns the order, or (nil, nil) when absent.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// Update partially updates the single-line fields.
func (s *OrderService) Update(ctx context.Context, id int64, productID int64, quantity int) (*order.Order, error) {
	return s.orderRepo.Update(ctx, id, productID, quantity)
}

// Delete physically removes the order.
func (s *OrderService) Delete(ctx context.Context, id int64) (order.DeleteResult, error) {
	return s.orderRepo.Delete(ctx, id)
}

// Complete flips the order to COMPLETED, decrements the product's stock by
// the order's recorded quantity and re-reads the order with the owning
// user's email. All three steps run in one transaction; any failure rolls
// the whole completion back.
func (s *OrderService) Complete(ctx context.Context, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	completed, err := work.OrderRepository().MarkCompleted(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := work.ProductRepository().DecrementStock(ctx, completed.ProductID, completed.Quantity); err != nil {
		return nil, err
	}

	ord, err := work.OrderRepository().GetWithUser(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return ord, nil
}

// AssignWorker sets the order's worker.
func (s *OrderService) AssignWorker(ctx context.Context, orderID, workerID int64) error {
	return s.orderRepo.AssignWorker(ctx, orderID, workerID)
}

// ListByWorker returns all orders assigned to a worker.
func (s *OrderService) ListByWorker(ctx context.Context, workerID int64) ([]order.Order, error) {
	return s.orderRepo.ListByWorker(ctx, workerID)
}

// ListWithWorker returns the admin dashboard join.
func (s *OrderService) ListWithWorker(ctx context.Context) ([]order.Order, error) {
	return s.orderRepo.ListWithWorker(ctx)
}
