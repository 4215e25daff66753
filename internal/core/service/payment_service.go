package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

const paymentCurrency = "INR"

// PaymentService implements gateway order creation and capture verification.
type PaymentService struct {
	payments ports.PaymentRepository
	bookings ports.BookingRepository
	gateway  ports.PaymentGateway
	log      zerolog.Logger
}

func NewPaymentService(
	payments ports.PaymentRepository,
	bookings ports.BookingRepository,
	gateway ports.PaymentGateway,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		gateway:  gateway,
		log:      log,
	}
}

// CreateOrder opens (or refreshes) the gateway order for a booking. The
// payment record is written with an atomic upsert keyed on the booking id,
// so two concurrent calls still end with a single Payment document.
func (s *PaymentService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != input.CustomerID {
		return nil, domain.ErrForbidden
	}

	existing, err := s.payments.FindByBooking(ctx, input.BookingID)
	switch {
	case err == nil:
		if existing.Status == domain.PaymentCompleted {
			return nil, domain.ErrPaymentCompleted
		}
	case errors.Is(err, domain.ErrPaymentNotFound):
		// first order for this booking
	default:
		return nil, fmt.Errorf("create order: %w", err)
	}

	amountMinor := int64(math.Round(booking.Amount.FinalAmount * 100))

	order, err := s.gateway.CreateOrder(ctx, ports.OrderRequest{
		AmountMinor: amountMinor,
		Currency:    paymentCurrency,
		Receipt:     fmt.Sprintf("booking_%s_%d", booking.ID, time.Now().Unix()),
		Notes: map[string]string{
			"booking_id":  booking.ID,
			"customer_id": booking.CustomerID,
		},
	})
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", booking.ID).Msg("gateway order creation failed")
		return nil, fmt.Errorf("create order: %w", err)
	}

	payment, err := s.payments.UpsertOrder(ctx, booking.ID, booking.CustomerID, order.ID, booking.Amount.FinalAmount, order.Currency)
	if err != nil {
		return nil, fmt.Errorf("create order: persist payment: %w", err)
	}

	if booking.PaymentID == "" {
		if err := s.bookings.AttachPayment(ctx, booking.ID, payment.ID); err != nil {
			s.log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to attach payment to booking")
		}
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("order_id", order.ID).
		Str("mode", s.gateway.Mode()).
		Int64("amount_minor", amountMinor).
		Msg("payment order created")

	return &ports.OrderResult{
		OrderID:     order.ID,
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
		KeyID:       order.KeyID,
		PaymentID:   payment.ID,
	}, nil
}

// Verify checks the capture signature and finalizes the payment. On success
// a booking still sitting in pending moves to accepted; a booking that
// already left pending is not re-driven.
func (s *PaymentService) Verify(ctx context.Context, input ports.VerifyInput) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.CustomerID != input.CustomerID {
		return nil, domain.ErrForbidden
	}

	if !s.gateway.VerifySignature(input.OrderID, input.GatewayPaymentID, input.Signature) {
		s.log.Warn().Str("payment_id", payment.ID).Str("order_id", input.OrderID).Msg("signature mismatch")
		return nil, domain.ErrSignatureMismatch
	}

	if err := s.payments.MarkCompleted(ctx, payment.ID, input.GatewayPaymentID, input.Signature); err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	payment.Status = domain.PaymentCompleted
	payment.GatewayPaymentID = input.GatewayPaymentID
	payment.UpdatedAt = time.Now().UTC()

	err = s.bookings.UpdateStatus(ctx, payment.BookingID, domain.BookingPending, domain.BookingAccepted, ports.StatusUpdateFields{})
	if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
		s.log.Warn().Err(err).Str("booking_id", payment.BookingID).Msg("post-payment booking transition failed")
	}

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("booking_id", payment.BookingID).
		Str("mode", s.gateway.Mode()).
		Msg("payment verified")

	return payment, nil
}
