package ports

import (
	"context"
	"time"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// CreateBookingInput carries all data needed to create a booking.
type CreateBookingInput struct {
	CustomerID    string
	ServiceID     string
	AddressID     string
	ScheduledDate time.Time
	ScheduledTime string
	// ProviderID optionally pins a specific provider; when empty the system
	// auto-assigns the first available approved provider for the service.
	ProviderID string
	Notes      string
}

// AcceptRejectInput carries a provider's decision on a pending job.
type AcceptRejectInput struct {
	BookingID string
	ActorID   string // must be the bound provider
	Accept    bool
	Reason    string // recorded on reject
}

// UpdateStatusInput carries a status transition request.
type UpdateStatusInput struct {
	BookingID string
	Target    domain.BookingStatus
	ActorID   string
	ActorRole string // provider (must be bound) or admin
}

// BookingPage is a page of bookings with the total count.
type BookingPage struct {
	Items      []*domain.Booking
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookingService owns the booking lifecycle: creation with price snapshot
// and provider assignment, and every status transition including completion
// accounting.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	AcceptReject(ctx context.Context, input AcceptRejectInput) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Booking, error)
	ListAll(ctx context.Context, filter BookingListFilter) (*BookingPage, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error)
	GetForCustomer(ctx context.Context, bookingID, customerID string) (*domain.Booking, error)
}
