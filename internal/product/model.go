package product

import "time"

type Product struct {
	ID          uint
	Name        string
	Description *string
	Price       int64
	Stock       int
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListOptions narrows and pages the catalog listing.
type ListOptions struct {
	Search *string
	Limit  int
	Offset int
}
