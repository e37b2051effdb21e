package workersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ishop-labs/backend/internal/mocks"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/worker"
)

func TestWorkerService_List(t *testing.T) {
	repo := &mocks.MockWorkerRepository{}
	svc := MustNewWorkerService(WithWorkerRepository(repo))

	page := &worker.Page{
		Workers: []worker.Worker{{ID: 1, Name: "dock crew"}},
		Total:   1,
		Page:    1,
		Limit:   10,
	}
	repo.On("List", mock.Anything, 1, 10).Return(page, nil)

	got, err := svc.List(context.Background(), 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, page, got)
	repo.AssertExpectations(t)
}

func TestWorkerService_Orders(t *testing.T) {
	repo := &mocks.MockWorkerRepository{}
	svc := MustNewWorkerService(WithWorkerRepository(repo))

	queue := &order.Page{Orders: []order.Order{{ID: 4}}, Total: 1, Page: 1, Limit: 10}
	repo.On("Orders", mock.Anything, int64(7), 1, 10).Return(queue, nil)

	got, err := svc.Orders(context.Background(), 7, 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, queue, got)
	repo.AssertExpectations(t)
}

func TestWorkerService_Orders_RepositoryError(t *testing.T) {
	repo := &mocks.MockWorkerRepository{}
	svc := MustNewWorkerService(WithWorkerRepository(repo))

	repo.On("Orders", mock.Anything, int64(7), 1, 10).Return(nil, errors.New("connection refused"))

	got, err := svc.Orders(context.Background(), 7, 1, 10)

	assert.Error(t, err)
	assert.Nil(t, got)
	repo.AssertExpectations(t)
}
