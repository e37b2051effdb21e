package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ishop-labs/backend/internal/dal/interfaces/iorderrepo"
	"github.com/ishop-labs/backend/internal/dal/interfaces/iproductrepo"
	"github.com/ishop-labs/backend/internal/mocks"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/product"
	"github.com/ishop-labs/backend/internal/service/models/user"
)

type mockUOW struct {
	mock.Mock
	orderRepo   iorderrepo.Repository
	productRepo iproductrepo.Repository
}

func (m *mockUOW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUOW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUOW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUOW) OrderRepository() iorderrepo.Repository {
	return m.orderRepo
}

func (m *mockUOW) ProductRepository() iproductrepo.Repository {
	return m.productRepo
}

func newService(orderRepo *mocks.MockOrderRepository, userRepo *mocks.MockUserRepository, work *mockUOW) *OrderService {
	return MustNewOrderService(
		WithOrderRepository(orderRepo),
		WithUserRepository(userRepo),
		WithUnitOfWorkFactory(func() UnitOfWork { return work }),
	)
}

func TestOrderService_Create(t *testing.T) {
	items := []order.Item{{ProductID: 5, Quantity: 2}, {ProductID: 7, Quantity: 1}}

	tests := []struct {
		name        string
		userID      int64
		setupMocks  func(*mocks.MockOrderRepository, *mocks.MockUserRepository)
		expectedIDs []int64
		expectedErr error
	}{
		{
			name:   "missing user rejected before any write",
			userID: 42,
			setupMocks: func(orderRepo *mocks.MockOrderRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)
			},
			expectedErr: user.ErrUserNotFound,
		},
		{
			name:   "user lookup failure propagates",
			userID: 42,
			setupMocks: func(orderRepo *mocks.MockOrderRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, errors.New("connection refused"))
			},
			expectedErr: errors.New("connection refused"),
		},
		{
			name:   "fan-out insert with pending status",
			userID: 1,
			setupMocks: func(orderRepo *mocks.MockOrderRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1, Email: "a@b.c"}, nil)
				orderRepo.On("Insert", mock.Anything, mock.MatchedBy(func(create order.CreateOrder) bool {
					return create.UserID == 1 &&
						create.Status == order.StatusPending &&
						!create.EstimatedArrival.IsZero() &&
						len(create.Items) == 2
				})).Return([]int64{11, 12}, nil)
			},
			expectedIDs: []int64{11, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := &mocks.MockOrderRepository{}
			userRepo := &mocks.MockUserRepository{}
			tt.setupMocks(orderRepo, userRepo)

			svc := newService(orderRepo, userRepo, &mockUOW{})

			ids, err := svc.Create(context.Background(), tt.userID, items, nil)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedIDs, ids)
			}

			orderRepo.AssertExpectations(t)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_Create_ExplicitEstimatedArrival(t *testing.T) {
	eta := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	orderRepo := &mocks.MockOrderRepository{}
	userRepo := &mocks.MockUserRepository{}
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(&user.User{ID: 1}, nil)
	orderRepo.On("Insert", mock.Anything, mock.MatchedBy(func(create order.CreateOrder) bool {
		return create.EstimatedArrival.Equal(eta)
	})).Return([]int64{3}, nil)

	svc := newService(orderRepo, userRepo, &mockUOW{})

	ids, err := svc.Create(context.Background(), 1, []order.Item{{ProductID: 1, Quantity: 1}}, &eta)

	assert.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Complete(t *testing.T) {
	completedOrder := &order.Order{
		ID:     1,
		Status: order.StatusCompleted,
		User:   &user.Summary{ID: 9, Email: "buyer@example.com"},
	}

	tests := []struct {
		name          string
		setupMocks    func(*mockUOW, *mocks.MockOrderRepository, *mocks.MockProductRepository)
		expectedErr   error
		expectCommit  bool
		expectedOrder *order.Order
	}{
		{
			name: "all steps committed",
			setupMocks: func(work *mockUOW, orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) {
				work.On("Begin", mock.Anything).Return(nil)
				orderRepo.On("MarkCompleted", mock.Anything, int64(1)).Return(&order.Completed{OrderID: 1, ProductID: 5, Quantity: 2}, nil)
				productRepo.On("DecrementStock", mock.Anything, int64(5), 2).Return(nil)
				orderRepo.On("GetWithUser", mock.Anything, int64(1)).Return(completedOrder, nil)
				work.On("Commit", mock.Anything).Return(nil)
				work.On("Rollback", mock.Anything).Return(nil).Maybe()
			},
			expectCommit:  true,
			expectedOrder: completedOrder,
		},
		{
			name: "missing order rolls back with zero writes",
			setupMocks: func(work *mockUOW, orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) {
				work.On("Begin", mock.Anything).Return(nil)
				orderRepo.On("MarkCompleted", mock.Anything, int64(1)).Return(nil, order.ErrOrderNotFound)
				work.On("Rollback", mock.Anything).Return(nil)
			},
			expectedErr: order.ErrOrderNotFound,
		},
		{
			name: "missing product rolls the status flip back",
			setupMocks: func(work *mockUOW, orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) {
				work.On("Begin", mock.Anything).Return(nil)
				orderRepo.On("MarkCompleted", mock.Anything, int64(1)).Return(&order.Completed{OrderID: 1, ProductID: 5, Quantity: 2}, nil)
				productRepo.On("DecrementStock", mock.Anything, int64(5), 2).Return(product.ErrProductNotFound)
				work.On("Rollback", mock.Anything).Return(nil)
			},
			expectedErr: product.ErrProductNotFound,
		},
		{
			name: "re-read failure rolls back",
			setupMocks: func(work *mockUOW, orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) {
				work.On("Begin", mock.Anything).Return(nil)
				orderRepo.On("MarkCompleted", mock.Anything, int64(1)).Return(&order.Completed{OrderID: 1, ProductID: 5, Quantity: 2}, nil)
				productRepo.On("DecrementStock", mock.Anything, int64(5), 2).Return(nil)
				orderRepo.On("GetWithUser", mock.Anything, int64(1)).Return(nil, errors.New("connection reset"))
				work.On("Rollback", mock.Anything).Return(nil)
			},
			expectedErr: errors.New("connection reset"),
		},
		{
			name: "begin failure surfaces",
			setupMocks: func(work *mockUOW, orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) {
				work.On("Begin", mock.Anything).Return(errors.New("pool exhausted"))
				work.On("Rollback", mock.Anything).Return(nil).Maybe()
			},
			expectedErr: errors.New("pool exhausted"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txOrderRepo := &mocks.MockOrderRepository{}
			txProductRepo := &mocks.MockProductRepository{}
			work := &mockUOW{orderRepo: txOrderRepo, productRepo: txProductRepo}
			tt.setupMocks(work, txOrderRepo, txProductRepo)

			svc := newService(&mocks.MockOrderRepository{}, &mocks.MockUserRepository{}, work)

			ord, err := svc.Complete(context.Background(), 1)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				work.AssertNotCalled(t, "Commit", mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedOrder, ord)
			}

			work.AssertExpectations(t)
			txOrderRepo.AssertExpectations(t)
			txProductRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_Passthroughs(t *testing.T) {
	orderRepo := &mocks.MockOrderRepository{}
	userRepo := &mocks.MockUserRepository{}
	svc := newService(orderRepo, userRepo, &mockUOW{})

	ctx := context.Background()

	page := &order.Page{Orders: []order.Order{}, Total: 0, Page: 1, Limit: 10}
	orderRepo.On("List", ctx, 2, 5).Return(page, nil)
	got, err := svc.List(ctx, 2, 5)
	assert.NoError(t, err)
	assert.Equal(t, page, got)

	orderRepo.On("AssignWorker", ctx, int64(42), int64(7)).Return(order.ErrOrderNotFound)
	err = svc.AssignWorker(ctx, 42, 7)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	orderRepo.On("ListByWorker", ctx, int64(7)).Return([]order.Order{}, nil)
	orders, err := svc.ListByWorker(ctx, 7)
	assert.NoError(t, err)
	assert.Empty(t, orders)

	orderRepo.On("Delete", ctx, int64(3)).Return(order.DeleteResult{Message: "Order deleted successfully"}, nil)
	result, err := svc.Delete(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, "Order deleted successfully", result.Message)

	orderRepo.AssertExpectations(t)
}
