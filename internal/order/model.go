package order

import (
	"time"

	"nevyra-be/internal/payment"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// AddressSnapshot is the shipping address copied by value at
// finalization time. Later edits to the address book never touch it.
type AddressSnapshot struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zipCode"`
}

// PaymentDetails carries the gateway's payment proof. Empty for
// cash-on-delivery orders.
type PaymentDetails struct {
	RazorpayOrderID   string `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"razorpay_signature,omitempty"`
}

type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     int64
}

type Order struct {
	ID              uint
	UserID          uint
	IdempotencyKey  uuid.UUID
	Items           []OrderItem
	TotalAmount     int64
	ShippingAddress AddressSnapshot
	PaymentMethod   payment.Method
	PaymentDetails  PaymentDetails
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type FinalizeItem struct {
	ProductID uint  `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// FinalizeInput is the finalization request. TotalAmount is the
// client's claimed total; the service recomputes the authoritative
// figure from the catalog and rejects a disagreement.
type FinalizeInput struct {
	IdempotencyKey  uuid.UUID
	PaymentMethod   payment.Method
	ShippingAddress AddressSnapshot
	Items           []FinalizeItem
	TotalAmount     int64
	PaymentDetails  PaymentDetails
}
