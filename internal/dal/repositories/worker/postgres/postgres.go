package postgresrepo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ishop-labs/backend/internal/dal/postgres"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/worker"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// orderDal mirrors the order row shape for scanning the worker queue.
type orderDal struct {
	Id               int64
	UserId           int64
	ProductId        int64
	Quantity         int
	Status           string
	OrderDate        time.Time
	StatusDate       time.Time
	CompletedAt      *time.Time
	EstimatedArrival *time.Time
	WorkerId         *int64
}

func (o *orderDal) toModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:               o.Id,
		UserID:           o.UserId,
		ProductID:        o.ProductId,
		Quantity:         o.Quantity,
		Status:           status,
		OrderDate:        o.OrderDate,
		StatusDate:       o.StatusDate,
		CompletedAt:      o.CompletedAt,
		EstimatedArrival: o.EstimatedArrival,
		WorkerID:         o.WorkerId,
	}, nil
}

type PostgresWorkerRepository struct {
	conn postgres.Querier
}

func NewPostgresWorkerRepository(conn postgres.Querier) *PostgresWorkerRepository {
	return &PostgresWorkerRepository{
		conn: conn,
	}
}

// List returns a page of workers with the unfiltered total count. Page and
// limit below 1 fall back to the defaults.
func (r *PostgresWorkerRepository) List(ctx context.Context, page, limit int) (*worker.Page, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	query, args, err := sq.Select("id", "name", "email", "user_id").
		From("workers").
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	workers := make([]worker.Worker, 0)
	for rows.Next() {
		var w worker.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("workers").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count workers: %w", err)
	}

	return &worker.Page{
		Workers: workers,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// Orders returns a page of the worker's order queue with the worker-scoped
// total count.
func (r *PostgresWorkerRepository) Orders(ctx context.Context, workerID int64, page, limit int) (*order.Page, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	query, args, err := sq.Select(
		"id",
		"user_id",
		"product_id",
		"quantity",
		"status",
		"order_date",
		"status_date",
		"completed_at",
		"estimated_arrival",
		"worker_id",
	).
		From("orders").
		Where(sq.Eq{"worker_id": workerID}).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker orders: %w", err)
	}
	defer rows.Close()

	orders := make([]order.Order, 0)
	for rows.Next() {
		var dal orderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.ProductId,
			&dal.Quantity,
			&dal.Status,
			&dal.OrderDate,
			&dal.StatusDate,
			&dal.CompletedAt,
			&dal.EstimatedArrival,
			&dal.WorkerId,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.toModel()
		if err != nil {
			return nil, err
		}

		orders = append(orders, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("orders").
		Where(sq.Eq{"worker_id": workerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count worker orders: %w", err)
	}

	slog.Info("Worker order queue fetched", "worker_id", workerID, "count", len(orders))

	return &order.Page{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}
