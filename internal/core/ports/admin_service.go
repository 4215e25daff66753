package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// UserPage is a page of users with the total count.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PendingProvider joins a provider user awaiting approval with its profile.
// Profile may be nil when the profile document is missing.
type PendingProvider struct {
	User    *domain.User
	Profile *domain.ProviderProfile
}

// ApproveRejectInput carries an admin decision on a pending provider.
type ApproveRejectInput struct {
	ProviderUserID  string
	Approve         bool
	RejectionReason string
}

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	TotalCustomers    int64
	TotalProviders    int64
	ApprovedProviders int64
	PendingProviders  int64
	BlockedUsers      int64
	TotalBookings     int64
	PendingBookings   int64
	CompletedBookings int64
	CancelledBookings int64
	TotalRevenue      float64
	TotalServices     int64
	ActiveServices    int64
	RecentBookings    []*domain.Booking
}

// StatsRepository computes the dashboard aggregate in one shot.
type StatsRepository interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// AdminService covers user management and the provider approval workflow.
type AdminService interface {
	ListUsers(ctx context.Context, filter UserListFilter) (*UserPage, error)
	SetBlocked(ctx context.Context, userID string, blocked bool) (*domain.User, error)
	PendingProviders(ctx context.Context) ([]*PendingProvider, error)
	ApproveRejectProvider(ctx context.Context, input ApproveRejectInput) (*domain.User, *domain.ProviderProfile, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
