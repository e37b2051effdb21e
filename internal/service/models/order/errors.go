package order

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidOrderData = errors.New("invalid order data")
	ErrInvalidItemData  = errors.New("invalid item data")
)
