package postgresrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ishop-labs/backend/internal/service/models/order"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		expected int
	}{
		{name: "zero falls back to first page", page: 0, expected: 1},
		{name: "negative falls back to first page", page: -1, expected: 1},
		{name: "valid page kept", page: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampPage(tt.page))
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "zero falls back to default", limit: 0, expected: 10},
		{name: "negative falls back to default", limit: -5, expected: 10},
		{name: "valid limit kept", limit: 25, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampLimit(tt.limit))
		})
	}
}

func TestInsert_Validation(t *testing.T) {
	// Validation runs before any query, so no connection is needed.
	repo := NewPostgresOrderRepository(nil)
	eta := time.Now().Add(72 * time.Hour)

	tests := []struct {
		name        string
		create      order.CreateOrder
		expectedErr error
	}{
		{
			name:        "missing user id",
			create:      order.CreateOrder{Status: order.StatusPending, EstimatedArrival: eta, Items: []order.Item{{ProductID: 1, Quantity: 1}}},
			expectedErr: order.ErrInvalidOrderData,
		},
		{
			name:        "missing status",
			create:      order.CreateOrder{UserID: 1, EstimatedArrival: eta, Items: []order.Item{{ProductID: 1, Quantity: 1}}},
			expectedErr: order.ErrInvalidOrderData,
		},
		{
			name:        "missing estimated arrival",
			create:      order.CreateOrder{UserID: 1, Status: order.StatusPending, Items: []order.Item{{ProductID: 1, Quantity: 1}}},
			expectedErr: order.ErrInvalidOrderData,
		},
		{
			name:        "empty item list",
			create:      order.CreateOrder{UserID: 1, Status: order.StatusPending, EstimatedArrival: eta},
			expectedErr: order.ErrInvalidOrderData,
		},
		{
			name:        "item without product",
			create:      order.CreateOrder{UserID: 1, Status: order.StatusPending, EstimatedArrival: eta, Items: []order.Item{{Quantity: 1}}},
			expectedErr: order.ErrInvalidItemData,
		},
		{
			name:        "item without quantity",
			create:      order.CreateOrder{UserID: 1, Status: order.StatusPending, EstimatedArrival: eta, Items: []order.Item{{ProductID: 1}}},
			expectedErr: order.ErrInvalidItemData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := repo.Insert(context.Background(), tt.create)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, ids)
		})
	}
}

func TestGetByID_ZeroID(t *testing.T) {
	repo := NewPostgresOrderRepository(nil)

	ord, err := repo.GetByID(context.Background(), 0)

	assert.NoError(t, err)
	assert.Nil(t, ord)
}

func TestUpdate_MissingFields(t *testing.T) {
	repo := NewPostgresOrderRepository(nil)

	tests := []struct {
		name      string
		id        int64
		productID int64
		quantity  int
	}{
		{name: "missing id", productID: 1, quantity: 1},
		{name: "missing product", id: 1, quantity: 1},
		{name: "missing quantity", id: 1, productID: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ord, err := repo.Update(context.Background(), tt.id, tt.productID, tt.quantity)
			assert.NoError(t, err)
			assert.Nil(t, ord)
		})
	}
}

func TestDelete_ZeroID(t *testing.T) {
	repo := NewPostgresOrderRepository(nil)

	result, err := repo.Delete(context.Background(), 0)

	assert.NoError(t, err)
	assert.Equal(t, "Order not found", result.Message)
}

func TestMarkCompleted_ZeroID(t *testing.T) {
	repo := NewPostgresOrderRepository(nil)

	completed, err := repo.MarkCompleted(context.Background(), 0)

	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Nil(t, completed)
}

func TestAssignWorker_MissingIDs(t *testing.T) {
	repo := NewPostgresOrderRepository(nil)

	assert.ErrorIs(t, repo.AssignWorker(context.Background(), 0, 1), order.ErrOrderNotFound)
	assert.ErrorIs(t, repo.AssignWorker(context.Background(), 1, 0), order.ErrOrderNotFound)
}

func TestListByWorker_ZeroID(t *testing.T) {
	repo := NewPostgresOrderRepository(nil)

	orders, err := repo.ListByWorker(context.Background(), 0)

	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderDal_ToModel(t *testing.T) {
	now := time.Now()
	completedAt := now.Add(-time.Hour)
	workerID := int64(7)

	dal := OrderDal{
		Id:          1,
		UserId:      2,
		ProductId:   3,
		Quantity:    4,
		Status:      "COMPLETED",
		OrderDate:   now,
		StatusDate:  now,
		CompletedAt: &completedAt,
		WorkerId:    &workerID,
	}

	model, err := dal.ToModel()

	assert.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, model.Status)
	assert.Equal(t, int64(1), model.ID)
	assert.Equal(t, &completedAt, model.CompletedAt)
	assert.Equal(t, &workerID, model.WorkerID)
}

func TestOrderDal_ToModel_UnknownStatus(t *testing.T) {
	dal := OrderDal{Id: 1, Status: "SHIPPED"}

	model, err := dal.ToModel()

	assert.Error(t, err)
	assert.Nil(t, model)
}
