package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ishop-labs/backend/internal/dal/postgres"
	"github.com/ishop-labs/backend/internal/service/models/order"
	"github.com/ishop-labs/backend/internal/service/models/product"
	"github.com/ishop-labs/backend/internal/service/models/user"
	"github.com/ishop-labs/backend/internal/service/models/worker"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id               int64      `db:"id"`
	UserId           int64      `db:"user_id"`
	ProductId        int64      `db:"product_id"`
	Quantity         int        `db:"quantity"`
	Status           string     `db:"status"`
	OrderDate        time.Time  `db:"order_date"`
	StatusDate       time.Time  `db:"status_date"`
	CompletedAt      *time.Time `db:"completed_at"`
	EstimatedArrival *time.Time `db:"estimated_arrival"`
	WorkerId         *int64     `db:"worker_id"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
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

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

var orderColumns = []string{
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
}

// Insert creates one order row per checkout item and returns the generated
// ids in item order. Every row carries the same user, status and estimated
// arrival; only product and quantity differ per item.
func (r *PostgresOrderRepository) Insert(ctx context.Context, create order.CreateOrder) ([]int64, error) {
	if create.UserID == 0 || create.Status == "" || create.EstimatedArrival.IsZero() || len(create.Items) == 0 {
		return nil, order.ErrInvalidOrderData
	}
	for _, item := range create.Items {
		if item.ProductID == 0 || item.Quantity == 0 {
			return nil, order.ErrInvalidItemData
		}
	}

	now := time.Now()
	builder := sq.Insert("orders").
		Columns("user_id", "product_id", "quantity", "status", "order_date", "status_date", "estimated_arrival").
		PlaceholderFormat(sq.Dollar).
		Suffix("RETURNING id")

	for _, item := range create.Items {
		builder = builder.Values(
			create.UserID,
			item.ProductID,
			item.Quantity,
			create.Status,
			now,
			now,
			create.EstimatedArrival,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert orders: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(create.Items))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

// GetByID returns the order, or (nil, nil) when the id does not resolve.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	if id == 0 {
		return nil, nil
	}

	query, args, err := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
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
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return dal.ToModel()
}

// clampPage substitutes the default for any page below 1.
func clampPage(page int) int {
	if page < 1 {
		return defaultPage
	}
	return page
}

// clampLimit substitutes the default for any limit below 1.
func clampLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	return limit
}

// List returns a page of orders with product and user summaries and the
// unfiltered total count.
func (r *PostgresOrderRepository) List(ctx context.Context, page, limit int) (*order.Page, error) {
	page = clampPage(page)
	limit = clampLimit(limit)
	offset := (page - 1) * limit

	query, args, err := joinedSelect().
		OrderBy("o.id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanJoined(rows)
	if err != nil {
		return nil, err
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("orders").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	return &order.Page{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

// Update partially updates the single-line fields and returns the updated
// row, or (nil, nil) when the id or payload is missing.
func (r *PostgresOrderRepository) Update(ctx context.Context, id int64, productID int64, quantity int) (*order.Order, error) {
	if id == 0 || productID == 0 || quantity == 0 {
		return nil, nil
	}

	query, args, err := sq.Update("orders").
		Set("product_id", productID).
		Set("quantity", quantity).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		Suffix("RETURNING " + columnList(orderColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
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
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	slog.Info("Order updated", "order_id", id)

	return dal.ToModel()
}

// Delete physically removes the order. A missing row is not an error; the
// outcome is reported in the result message.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (order.DeleteResult, error) {
	if id == 0 {
		slog.Warn("Delete called without an order id")
		return order.DeleteResult{Message: "Order not found"}, nil
	}

	query, args, err := sq.Delete("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.DeleteResult{}, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return order.DeleteResult{}, fmt.Errorf("failed to delete order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		slog.Warn("No order found to delete", "order_id", id)
		return order.DeleteResult{Message: "Order not found"}, nil
	}

	slog.Info("Order deleted", "order_id", id)

	return order.DeleteResult{Message: "Order deleted successfully"}, nil
}

// MarkCompleted flips a PENDING order to COMPLETED, stamping completed_at and
// status_date. The status predicate makes concurrent completion explicit: the
// second caller matches zero rows and gets order.ErrOrderNotFound.
func (r *PostgresOrderRepository) MarkCompleted(ctx context.Context, id int64) (*order.Completed, error) {
	if id == 0 {
		return nil, order.ErrOrderNotFound
	}

	now := time.Now()
	query, args, err := sq.Update("orders").
		Set("status", order.StatusCompleted).
		Set("completed_at", now).
		Set("status_date", now).
		Where(sq.Eq{"id": id, "status": order.StatusPending}).
		PlaceholderFormat(sq.Dollar).
		Suffix("RETURNING id, product_id, quantity").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var completed order.Completed
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&completed.OrderID,
		&completed.ProductID,
		&completed.Quantity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.Warn("No pending order found to complete", "order_id", id)
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}

	return &completed, nil
}

// GetWithUser returns the order together with the owning user's id and email.
func (r *PostgresOrderRepository) GetWithUser(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(
		"o.id",
		"o.user_id",
		"o.product_id",
		"o.quantity",
		"o.status",
		"o.order_date",
		"o.status_date",
		"o.completed_at",
		"o.estimated_arrival",
		"o.worker_id",
		"u.id",
		"u.email",
	).
		From("orders o").
		Join("users u ON u.id = o.user_id").
		Where(sq.Eq{"o.id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var (
		dal     OrderDal
		usermid user.Summary
	)
	err = r.conn.QueryRow(ctx, query, args...).Scan(
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
		&usermid.ID,
		&usermid.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order with user: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, err
	}
	model.User = &usermid

	return model, nil
}

// AssignWorker sets the order's worker. Assignment does not change the order
// status.
func (r *PostgresOrderRepository) AssignWorker(ctx context.Context, orderID, workerID int64) error {
	if orderID == 0 || workerID == 0 {
		return order.ErrOrderNotFound
	}

	query, args, err := sq.Update("orders").
		Set("worker_id", workerID).
		Where(sq.Eq{"id": orderID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to assign order to worker: %w", err)
	}

	if tag.RowsAffected() == 0 {
		slog.Warn("No order found to assign", "order_id", orderID)
		return order.ErrOrderNotFound
	}

	slog.Info("Order assigned to worker", "order_id", orderID, "worker_id", workerID)

	return nil
}

// ListByWorker returns all orders assigned to a worker with product and user
// summaries. A missing worker id or an empty queue yields an empty slice.
func (r *PostgresOrderRepository) ListByWorker(ctx context.Context, workerID int64) ([]order.Order, error) {
	if workerID == 0 {
		return []order.Order{}, nil
	}

	query, args, err := joinedSelect().
		Where(sq.Eq{"o.worker_id": workerID}).
		OrderBy("o.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker orders: %w", err)
	}
	defer rows.Close()

	return scanJoined(rows)
}

// ListWithWorker returns all orders joined with worker, product and user
// summaries for the admin dashboard.
func (r *PostgresOrderRepository) ListWithWorker(ctx context.Context) ([]order.Order, error) {
	query, args, err := sq.Select(
		"o.id",
		"o.user_id",
		"o.product_id",
		"o.quantity",
		"o.status",
		"o.order_date",
		"o.status_date",
		"o.completed_at",
		"o.estimated_arrival",
		"o.worker_id",
		"p.id",
		"p.name",
		"p.price",
		"u.id",
		"u.username",
		"u.email",
		"w.id",
		"w.name",
	).
		From("orders o").
		Join("products p ON p.id = o.product_id").
		Join("users u ON u.id = o.user_id").
		LeftJoin("workers w ON w.id = o.worker_id").
		OrderBy("o.id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders with workers: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var (
			dal        OrderDal
			prod       product.Summary
			usr        user.Summary
			workerId   *int64
			workerName *string
		)
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
			&prod.ID,
			&prod.Name,
			&prod.PriceCents,
			&usr.ID,
			&usr.Username,
			&usr.Email,
			&workerId,
			&workerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, err
		}
		model.Product = &prod
		model.User = &usr
		if workerId != nil && workerName != nil {
			model.Worker = &worker.Summary{ID: *workerId, Name: *workerName}
		}

		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if result == nil {
		result = []order.Order{}
	}

	return result, nil
}

// joinedSelect builds the order listing query with product and user
// summaries.
func joinedSelect() sq.SelectBuilder {
	return sq.Select(
		"o.id",
		"o.user_id",
		"o.product_id",
		"o.quantity",
		"o.status",
		"o.order_date",
		"o.status_date",
		"o.completed_at",
		"o.estimated_arrival",
		"o.worker_id",
		"p.id",
		"p.name",
		"p.price",
		"u.id",
		"u.username",
		"u.email",
	).
		From("orders o").
		Join("products p ON p.id = o.product_id").
		Join("users u ON u.id = o.user_id").
		PlaceholderFormat(sq.Dollar)
}

// scanJoined reads rows produced by joinedSelect.
func scanJoined(rows pgx.Rows) ([]order.Order, error) {
	var result []order.Order
	for rows.Next() {
		var (
			dal  OrderDal
			prod product.Summary
			usr  user.Summary
		)
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
			&prod.ID,
			&prod.Name,
			&prod.PriceCents,
			&usr.ID,
			&usr.Username,
			&usr.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		model, err := dal.ToModel()
		if err != nil {
			return nil, err
		}
		model.Product = &prod
		model.User = &usr

		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if result == nil {
		result = []order.Order{}
	}

	return result, nil
}

// columnList joins column names for a RETURNING clause.
func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
