package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ishop-labs/backend/internal/dal/postgres"
	"github.com/ishop-labs/backend/internal/service/models/user"
)

type PostgresUserRepository struct {
	conn postgres.Querier
}

func NewPostgresUserRepository(conn postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
	}
}

// GetByID returns the user, or (nil, nil) when the id does not resolve.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if id == 0 {
		return nil, nil
	}

	query, args, err := sq.Select(
		"id",
		"username",
		"email",
		"password",
		"role",
		"verified",
	).
		From("users").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var (
		u    user.User
		role string
	)
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&role,
		&u.Verified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = user.Role(role)

	return &u, nil
}
