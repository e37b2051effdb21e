package iuserrepo

import (
	"context"

	"github.com/ishop-labs/backend/internal/service/models/user"
)

// Repository defines the user lookups the order lifecycle needs.
type Repository interface {
	// GetByID returns the user, or (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, id int64) (*user.User, error)
}
