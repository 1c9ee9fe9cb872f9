package cart

import "errors"

var (
	// ErrInvalidItem indicates a cart item without a variant identifier.
	ErrInvalidItem = errors.New("invalid cart item")
	// ErrItemNotFound indicates no item with the given variant is in the cart.
	ErrItemNotFound = errors.New("cart item not found")
)
