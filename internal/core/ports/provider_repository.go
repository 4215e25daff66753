package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// ProviderRepository defines persistence operations for provider profiles.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.ProviderProfile) (*domain.ProviderProfile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.ProviderProfile, error)
	FindByLicense(ctx context.Context, licenseNumber string) (*domain.ProviderProfile, error)
	// FirstAvailableForService returns the first approved, available profile
	// whose service categories include serviceID. First match wins; there is
	// no load balancing or ranking.
	FirstAvailableForService(ctx context.Context, serviceID string) (*domain.ProviderProfile, error)
	SetStatus(ctx context.Context, profileID string, status domain.ApprovalStatus, rejectionReason string) error
	// AddEarnings atomically increments earnings.total and earnings.pending.
	AddEarnings(ctx context.Context, profileID string, amount float64) error
}
