package payment

import (
	"context"
	"errors"
)

var (
	ErrInvalidAmount      = errors.New("payment amount must be positive")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrMissingCredentials = errors.New("gateway credentials not configured")
)

// Gateway wraps the upstream payment provider.
//
// CreateOrder never fails for upstream reasons: provider outages and
// missing credentials produce a Mock result instead of an error. The
// only error it returns is a non-positive amount.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMajorUnits int64, currency string) (Result, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}
