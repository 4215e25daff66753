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

const maxPageSize = 100

// BookingService implements ports.BookingService.
type BookingService struct {
	bookings  ports.BookingRepository
	catalog   ports.CatalogRepository
	providers ports.ProviderRepository
	users     ports.UserRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	catalog ports.CatalogRepository,
	providers ports.ProviderRepository,
	users ports.UserRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		catalog:   catalog,
		providers: providers,
		users:     users,
		notifier:  notifier,
		log:       log,
	}
}

// Create books a service for a customer. The amount snapshot is fixed here
// from the catalog's current price and discount; later catalog edits never
// touch it. When no provider is requested the first approved, available
// provider covering the service is bound (first match wins).
func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	svc, err := s.catalog.FindByID(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("create booking: %w", domain.ErrServiceNotFound)
	}

	amount := domain.ComputeAmount(svc.BasePrice, svc.Discount.Percentage)

	var providerID, profileID string
	if input.ProviderID != "" {
		profile, err := s.providers.FindByUserID(ctx, input.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}
		if profile.Status != domain.ApprovalApproved {
			return nil, fmt.Errorf("create booking: %w", domain.ErrProviderNotApproved)
		}
		providerID = input.ProviderID
		profileID = profile.ID
	} else {
		profile, err := s.providers.FirstAvailableForService(ctx, input.ServiceID)
		switch {
		case err == nil:
			providerID = profile.UserID
			profileID = profile.ID
		case errors.Is(err, domain.ErrProfileNotFound):
			// no provider available yet, booking stays pending
		default:
			return nil, fmt.Errorf("create booking: auto-assign: %w", err)
		}
	}

	now := time.Now().UTC()
	status := domain.BookingPending
	if providerID != "" {
		status = domain.BookingAccepted
	}

	booking := &domain.Booking{
		CustomerID:        input.CustomerID,
		ProviderID:        providerID,
		ProviderProfileID: profileID,
		ServiceID:         input.ServiceID,
		AddressID:         input.AddressID,
		ScheduledDate:     input.ScheduledDate,
		ScheduledTime:     input.ScheduledTime,
		Status:            status,
		Amount:            amount,
		Notes:             input.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.log.Error().Err(err).Str("service_id", input.ServiceID).Msg("failed to create booking")
		return nil, err
	}

	s.log.Info().
		Str("booking_id", created.ID).
		Str("customer_id", created.CustomerID).
		Str("status", string(created.Status)).
		Float64("final_amount", created.Amount.FinalAmount).
		Msg("booking created")

	if customer, err := s.users.FindByID(ctx, input.CustomerID); err == nil {
		s.notifier.Enqueue(bookingConfirmation(customer, created, svc.Name))
	} else {
		s.log.Warn().Err(err).Str("customer_id", input.CustomerID).Msg("skipping confirmation, customer lookup failed")
	}

	return created, nil
}

// AcceptReject records the bound provider's decision on a job. Accept is a
// no-op when the booking is already accepted; reject records the reason.
func (s *BookingService) AcceptReject(ctx context.Context, input ports.AcceptRejectInput) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID != input.ActorID {
		return nil, domain.ErrForbidden
	}

	if input.Accept {
		if booking.Status == domain.BookingAccepted {
			return booking, nil
		}
		return s.transition(ctx, booking, domain.BookingAccepted, ports.StatusUpdateFields{})
	}

	reason := input.Reason
	if reason == "" {
		reason = "Provider rejected"
	}
	// No automatic re-assignment to another provider happens on rejection.
	return s.transition(ctx, booking, domain.BookingRejected, ports.StatusUpdateFields{CancellationReason: reason})
}

// UpdateStatus applies a transition requested by the bound provider or an
// admin. Edges not in the transition table are rejected; the write is a
// compare-and-set on the observed status so concurrent updates cannot
// interleave.
func (s *BookingService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Booking, error) {
	if !input.Target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.Target)
	}

	booking, err := s.bookings.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	switch input.ActorRole {
	case domain.RoleAdmin:
		// admins may drive any valid transition
	case domain.RoleProvider:
		if booking.ProviderID != input.ActorID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	fields := ports.StatusUpdateFields{}
	if input.Target == domain.BookingCompleted {
		now := time.Now().UTC()
		fields.CompletedAt = &now
	}

	return s.transition(ctx, booking, input.Target, fields)
}

// transition validates the edge, applies the conditional update, performs
// completion accounting and dispatches customer notifications.
func (s *BookingService) transition(ctx context.Context, booking *domain.Booking, target domain.BookingStatus, fields ports.StatusUpdateFields) (*domain.Booking, error) {
	from := booking.Status
	if !from.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, from, target)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, from, target, fields); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	booking.Status = target
	booking.UpdatedAt = time.Now().UTC()
	if fields.CompletedAt != nil {
		booking.CompletedAt = fields.CompletedAt
	}
	if fields.CancellationReason != "" {
		booking.CancellationReason = fields.CancellationReason
	}

	// Earnings are credited only when the compare-and-set above actually
	// moved the booking into completed, so a replayed completion cannot
	// double-count. earnings.paid is left for a future payout flow.
	if target == domain.BookingCompleted && booking.ProviderProfileID != "" {
		if err := s.providers.AddEarnings(ctx, booking.ProviderProfileID, booking.Amount.FinalAmount); err != nil {
			s.log.Error().Err(err).
				Str("booking_id", booking.ID).
				Str("provider_profile_id", booking.ProviderProfileID).
				Msg("failed to credit provider earnings")
		}
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("from", string(from)).
		Str("to", string(target)).
		Msg("booking status updated")

	s.notifyCustomer(ctx, booking, target)

	return booking, nil
}

// notifyCustomer sends the customer-visible status update over email and
// SMS. Delivery is best-effort and never affects the state change.
func (s *BookingService) notifyCustomer(ctx context.Context, booking *domain.Booking, status domain.BookingStatus) {
	if statusMessage(status) == "" {
		return
	}
	customer, err := s.users.FindByID(ctx, booking.CustomerID)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", booking.CustomerID).Msg("skipping status notification, customer lookup failed")
		return
	}
	s.notifier.Enqueue(statusUpdate(customer, booking, status))
}

func (s *BookingService) ListAll(ctx context.Context, filter ports.BookingListFilter) (*ports.BookingPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	items, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return &ports.BookingPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *BookingService) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

func (s *BookingService) GetForCustomer(ctx context.Context, bookingID, customerID string) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}
