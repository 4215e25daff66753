package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	// UpsertOrder atomically creates the booking's payment record or refreshes
	// its order id when one already exists. Backed by a unique index on
	// booking_id so concurrent order creations yield exactly one document.
	UpsertOrder(ctx context.Context, bookingID, customerID, orderID string, amount float64, currency string) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindByBooking(ctx context.Context, bookingID string) (*domain.Payment, error)
	MarkCompleted(ctx context.Context, id, gatewayPaymentID, signature string) error
}
