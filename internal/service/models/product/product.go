package product

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product represents a product row.
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"priceCents"`
	StockQuantity int    `json:"stockQuantity"`
}

// Summary is the product shape embedded in order listings.
type Summary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price"`
}
