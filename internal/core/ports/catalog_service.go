package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// CreateServiceInput carries the fields for a new catalog entry.
type CreateServiceInput struct {
	Name            string
	Description     string
	Icon            string
	BasePrice       float64
	DurationMinutes int
	IsActive        *bool // defaults to true
	Discount        *domain.Discount
}

// CatalogService covers the public service listing and the admin-owned CRUD.
type CatalogService interface {
	ListActive(ctx context.Context) ([]*domain.ServiceCategory, error)
	ListAll(ctx context.Context) ([]*domain.ServiceCategory, error)
	Create(ctx context.Context, input CreateServiceInput) (*domain.ServiceCategory, error)
	Update(ctx context.Context, id string, upd ServiceUpdate) (*domain.ServiceCategory, error)
	Delete(ctx context.Context, id string) error
}
