package domain

import (
	"errors"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending          BookingStatus = "pending"
	BookingAccepted         BookingStatus = "accepted"
	BookingProviderArriving BookingStatus = "provider_arriving"
	BookingInProgress       BookingStatus = "in_progress"
	BookingCompleted        BookingStatus = "completed"
	BookingCancelled        BookingStatus = "cancelled"
	BookingRejected         BookingStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// completed, cancelled and rejected are absorbing.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:          {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted:         {BookingProviderArriving, BookingRejected, BookingCancelled},
	BookingProviderArriving: {BookingInProgress},
	BookingInProgress:       {BookingCompleted},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBookingNotFound = errors.New("booking not found")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingProviderArriving,
		BookingInProgress, BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// Amount is the price snapshot fixed at booking creation. Later catalog
// changes never affect it.
type Amount struct {
	BasePrice   float64 `json:"base_price" bson:"base_price"`
	Discount    float64 `json:"discount" bson:"discount"`
	FinalAmount float64 `json:"final_amount" bson:"final_amount"`
}

// ComputeAmount derives the booking amount snapshot from the service's base
// price and discount percentage.
func ComputeAmount(basePrice, discountPercent float64) Amount {
	discount := basePrice * discountPercent / 100
	return Amount{
		BasePrice:   basePrice,
		Discount:    discount,
		FinalAmount: basePrice - discount,
	}
}

// Report is a document the provider uploads against a booking.
type Report struct {
	URL        string    `json:"url" bson:"url"`
	PublicID   string    `json:"public_id" bson:"public_id"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Booking is the transactional aggregate binding a customer, a service and
// (once assigned) a provider.
type Booking struct {
	ID                 string        `json:"id" bson:"_id,omitempty"`
	CustomerID         string        `json:"customer_id" bson:"customer_id"`
	ProviderID         string        `json:"provider_id,omitempty" bson:"provider_id,omitempty"`
	ProviderProfileID  string        `json:"provider_profile_id,omitempty" bson:"provider_profile_id,omitempty"`
	ServiceID          string        `json:"service_id" bson:"service_id"`
	AddressID          string        `json:"address_id" bson:"address_id"`
	ScheduledDate      time.Time     `json:"scheduled_date" bson:"scheduled_date"`
	ScheduledTime      string        `json:"scheduled_time" bson:"scheduled_time"`
	Status             BookingStatus `json:"status" bson:"status"`
	Amount             Amount        `json:"amount" bson:"amount"`
	PaymentID          string        `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	Reports            []Report      `json:"reports,omitempty" bson:"reports,omitempty"`
	Notes              string        `json:"notes,omitempty" bson:"notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" bson:"updated_at"`
}
