package cart

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID
	UserID    uint
	ProductID uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartRow is a cart item joined with its catalog product for display
// and subtotal computation.
type CartRow struct {
	ItemID      uuid.UUID
	ProductID   uint
	ProductName string
	ImageURL    *string
	Price       int64
	Quantity    int
	Subtotal    int64
}

type AddToCartParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type Cart struct {
	Items    []*CartRow
	Subtotal int64
}
