package address

import (
	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID
	UserID uint

	FirstName string
	LastName  string
	Phone     string

	AddressLine1 string
	AddressLine2 *string

	City    string
	State   string
	ZipCode string

	IsDefault bool
	IsActive  bool
}

type CreateAddressInput struct {
	FirstName    string
	LastName     string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	ZipCode      string
	SetAsDefault bool
}

type UpdateAddressInput struct {
	AddressID    string
	FirstName    string
	LastName     string
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	ZipCode      string
	SetAsDefault bool
}
