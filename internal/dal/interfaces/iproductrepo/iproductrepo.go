package iproductrepo

import (
	"context"

	"github.com/ishop-labs/backend/internal/service/models/product"
)

// Repository defines the product operations the order lifecycle needs.
type Repository interface {
	// GetByID returns the product, or (nil, nil) when the id does not resolve.
	GetByID(ctx context.Context, id int64) (*product.Product, error)

	// DecrementStock subtracts quantity from the product's stock. Returns
	// product.ErrProductNotFound when no row matches.
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}
