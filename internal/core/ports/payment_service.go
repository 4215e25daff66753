package ports

import (
	"context"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// CreateOrderInput carries the parameters for payment order creation.
type CreateOrderInput struct {
	BookingID  string
	CustomerID string
}

// OrderResult is returned after order creation; the client opens the gateway
// checkout with these values.
type OrderResult struct {
	OrderID     string
	AmountMinor int64
	Currency    string
	KeyID       string // empty in mock mode
	PaymentID   string
}

// VerifyInput carries the gateway identifiers the client received after
// checkout.
type VerifyInput struct {
	PaymentID        string
	OrderID          string
	GatewayPaymentID string
	Signature        string
	CustomerID       string
}

// PaymentService covers gateway order creation and capture verification.
type PaymentService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	Verify(ctx context.Context, input VerifyInput) (*domain.Payment, error)
}
