package domain

import (
	"errors"
	"time"
)

var ErrServiceNotFound = errors.New("service not found")
var ErrServiceExists = errors.New("service name already exists")

// Discount is an optional percentage reduction on a service's base price.
type Discount struct {
	Percentage float64    `json:"percentage" bson:"percentage"`
	ValidUntil *time.Time `json:"valid_until,omitempty" bson:"valid_until,omitempty"`
}

// ServiceCategory is a catalog entry defining a bookable service. Bookings
// reference it but snapshot its price at creation time.
type ServiceCategory struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description" bson:"description"`
	Icon            string    `json:"icon,omitempty" bson:"icon,omitempty"`
	BasePrice       float64   `json:"base_price" bson:"base_price"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes"`
	IsActive        bool      `json:"is_active" bson:"is_active"`
	Discount        Discount  `json:"discount" bson:"discount"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
