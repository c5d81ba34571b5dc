package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrInvalidQuantity      = errors.New("item quantity must be at least 1")
	ErrMissingAddress       = errors.New("shipping address is required")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrMissingPaymentProof  = errors.New("gateway payment reference is required")
	ErrTotalMismatch        = errors.New("total amount does not match current catalog prices")
	ErrInvalidStatus        = errors.New("invalid order status")
)
