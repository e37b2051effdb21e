package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ishop-labs/backend/internal/dal/postgres"
	"github.com/ishop-labs/backend/internal/service/models/product"
)

type PostgresProductRepository struct {
	conn postgres.Querier
}

func NewPostgresProductRepository(conn postgres.Querier) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
	}
}

// GetByID returns the product, or (nil, nil) when the id does not resolve.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	if id == 0 {
		return nil, nil
	}

	query, args, err := sq.Select("id", "name", "price", "stock_quantity").
		From("products").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var p product.Product
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.PriceCents,
		&p.StockQuantity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// DecrementStock subtracts quantity from the product's stock. The single
// UPDATE keeps the decrement atomic under the store's row locking.
func (r *PostgresProductRepository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	query, args, err := sq.Update("products").
		Set("stock_quantity", sq.Expr("stock_quantity - ?", quantity)).
		Where(sq.Eq{"id": productID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		slog.Warn("No product found to decrement", "product_id", productID)
		return product.ErrProductNotFound
	}

	return nil
}
