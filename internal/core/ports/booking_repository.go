package ports

import (
	"context"
	"time"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// BookingListFilter carries the query parameters for the admin booking list.
type BookingListFilter struct {
	Status string // optional: filter by booking status
	Page   int    // 1-based
	Limit  int    // max rows per page
}

// StatusUpdateFields are the extra fields written alongside a status change.
type StatusUpdateFields struct {
	CancellationReason string
	CompletedAt        *time.Time
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)
	// ListByProvider returns the provider's jobs, optionally filtered by status.
	ListByProvider(ctx context.Context, providerID, status string) ([]*domain.Booking, error)
	// RecentCompletedByProvider returns the provider's most recent completed
	// bookings, newest first.
	RecentCompletedByProvider(ctx context.Context, providerID string, limit int) ([]*domain.Booking, error)
	// List returns a page of bookings matching filter and the total count.
	List(ctx context.Context, filter BookingListFilter) ([]*domain.Booking, int64, error)
	// UpdateStatus performs a compare-and-set transition: the document is
	// updated only when its current status equals from. A race that moves the
	// booking first surfaces as domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, fields StatusUpdateFields) error
	AttachPayment(ctx context.Context, bookingID, paymentID string) error
	AppendReport(ctx context.Context, bookingID string, r domain.Report) error
}
