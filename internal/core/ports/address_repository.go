package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// AddressRepository defines persistence operations for customer addresses.
// All lookups are scoped to the owning user.
type AddressRepository interface {
	Create(ctx context.Context, a *domain.Address) (*domain.Address, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Address, error)
	Update(ctx context.Context, a *domain.Address) error
	Delete(ctx context.Context, id, userID string) error
	// ClearDefault unsets is_default on every address of the user except exceptID.
	ClearDefault(ctx context.Context, userID, exceptID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}
