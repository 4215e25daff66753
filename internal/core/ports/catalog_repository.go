package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// ServiceUpdate carries the optional fields of a catalog update; nil means
// leave unchanged.
type ServiceUpdate struct {
	Name            *string
	Description     *string
	Icon            *string
	BasePrice       *float64
	DurationMinutes *int
	IsActive        *bool
	Discount        *domain.Discount
}

// CatalogRepository defines persistence operations for service categories.
type CatalogRepository interface {
	Create(ctx context.Context, s *domain.ServiceCategory) (*domain.ServiceCategory, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceCategory, error)
	ListActive(ctx context.Context) ([]*domain.ServiceCategory, error)
	ListAll(ctx context.Context) ([]*domain.ServiceCategory, error)
	Update(ctx context.Context, id string, upd ServiceUpdate) (*domain.ServiceCategory, error)
	Delete(ctx context.Context, id string) error
}
