package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var ErrPaymentNotFound = errors.New("payment not found")
var ErrPaymentCompleted = errors.New("payment already completed")
var ErrSignatureMismatch = errors.New("payment signature verification failed")

// Payment is the 1:1 settlement record for a booking. A unique index on
// booking_id guarantees at most one document per booking.
type Payment struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	BookingID        string        `json:"booking_id" bson:"booking_id"`
	CustomerID       string        `json:"customer_id" bson:"customer_id"`
	OrderID          string        `json:"order_id" bson:"order_id"`
	GatewayPaymentID string        `json:"gateway_payment_id,omitempty" bson:"gateway_payment_id,omitempty"`
	Signature        string        `json:"-" bson:"signature,omitempty"`
	Amount           float64       `json:"amount" bson:"amount"`
	Currency         string        `json:"currency" bson:"currency"`
	Status           PaymentStatus `json:"status" bson:"status"`
	Method           string        `json:"method" bson:"method"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}
