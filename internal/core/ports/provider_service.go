package ports

import (
	"context"
	"io"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// EarningsResult is the provider earnings view: the running tally plus the
// most recent completed jobs.
type EarningsResult struct {
	Earnings       domain.Earnings
	RecentBookings []*domain.Booking
}

// ProviderService covers the provider-facing surface outside of status
// transitions (those live on BookingService).
type ProviderService interface {
	Jobs(ctx context.Context, userID, status string) ([]*domain.Booking, error)
	Profile(ctx context.Context, userID string) (*domain.ProviderProfile, error)
	Earnings(ctx context.Context, userID string) (*EarningsResult, error)
	// UploadReport stores the file and appends it to the booking's reports.
	// Only the bound provider may upload.
	UploadReport(ctx context.Context, userID, bookingID string, file io.Reader) (*domain.Report, error)
}
