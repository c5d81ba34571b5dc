package payment

import (
	"time"
)

type Method string

const (
	MethodRazorpay Method = "razorpay"
	MethodCOD      Method = "cod"
)

// GatewayOrder is the gateway-side handle for one checkout attempt.
// AmountMinorUnits is in the smallest currency unit (paise for INR).
type GatewayOrder struct {
	GatewayOrderID   string
	AmountMinorUnits int64
	Currency         string
	Receipt          string
}

// Result is the outcome of creating a gateway order. A Mock result
// stands in for the real gateway when it is unreachable or not
// configured; the caller decides whether to surface the degradation.
type Result struct {
	Order      GatewayOrder
	IsMock     bool
	MockReason string
}

type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusVerified Status = "VERIFIED"
	StatusFailed   Status = "FAILED"
)

type Payment struct {
	ID               uint
	OrderID          *uint
	GatewayOrderID   string
	GatewayPaymentID *string
	AmountMinorUnits int64
	Currency         string
	Receipt          string
	Status           Status
	IsMock           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
