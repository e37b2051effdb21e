package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ishop-labs/backend/internal/dal/interfaces/iorderrepo"
	"github.com/ishop-labs/backend/internal/dal/interfaces/iproductrepo"
	"github.com/ishop-labs/backend/internal/dal/postgres"
	orderrepo "github.com/ishop-labs/backend/internal/dal/repositories/order/postgres"
	productrepo "github.com/ishop-labs/backend/internal/dal/repositories/product/postgres"
)

type unitOfWork struct {
	pool        *pgxpool.Pool
	tx          pgx.Tx
	orderRepo   iorderrepo.Repository
	productRepo iproductrepo.Repository
}

func (u *unitOfWork) OrderRepository() iorderrepo.Repository {
	return u.orderRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.Repository {
	return u.productRepo
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		pool:        client.Pool(),
		orderRepo:   orderrepo.NewPostgresOrderRepository(client.Pool()),
		productRepo: productrepo.NewPostgresProductRepository(client.Pool()),
	}
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	// Rebind repositories to the transaction
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
