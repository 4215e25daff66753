package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// UserListFilter carries the query parameters for the admin user listing.
type UserListFilter struct {
	Role    string // optional: filter by role
	Blocked *bool  // optional: filter by block flag
	Page    int    // 1-based
	Limit   int    // max rows per page
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrPhone is the uniqueness probe used at registration.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	SetBlocked(ctx context.Context, id string, blocked bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetDefaultAddress(ctx context.Context, id, addressID string) error
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter UserListFilter) ([]*domain.User, int64, error)
	// ListUnverifiedProviders returns provider users still awaiting approval.
	ListUnverifiedProviders(ctx context.Context) ([]*domain.User, error)
}
