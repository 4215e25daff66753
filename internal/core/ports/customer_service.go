package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// AddressInput carries the fields for creating or updating an address.
type AddressInput struct {
	Label        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pincode      string
	Country      string
	Coordinates  *domain.Coordinates
	IsDefault    bool
}

// CustomerService covers the customer's address book.
type CustomerService interface {
	AddAddress(ctx context.Context, userID string, input AddressInput) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]*domain.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, input AddressInput) (*domain.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}
