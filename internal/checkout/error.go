package checkout

import "errors"

var (
	ErrAttemptInFlight      = errors.New("checkout attempt already in progress")
	ErrAttemptCompleted     = errors.New("checkout attempt already completed")
	ErrMissingAddress       = errors.New("no shipping address selected")
	ErrMissingPaymentMethod = errors.New("no payment method selected")
	ErrEmptySelection       = errors.New("no items selected for checkout")
	ErrInvalidAmount        = errors.New("checkout total must be positive")
	ErrGatewayCancelled     = errors.New("payment cancelled")
	ErrGatewayFailed        = errors.New("payment failed")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
)
