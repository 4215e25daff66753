package domain

import (
	"errors"
	"time"
)

var ErrAddressNotFound = errors.New("address not found")

// Coordinates represents a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Address is a customer-owned service location.
type Address struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	UserID       string       `json:"user_id" bson:"user_id"`
	Label        string       `json:"label" bson:"label"`
	AddressLine1 string       `json:"address_line1" bson:"address_line1"`
	AddressLine2 string       `json:"address_line2,omitempty" bson:"address_line2,omitempty"`
	City         string       `json:"city" bson:"city"`
	State        string       `json:"state" bson:"state"`
	Pincode      string       `json:"pincode" bson:"pincode"`
	Country      string       `json:"country" bson:"country"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	IsDefault    bool         `json:"is_default" bson:"is_default"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}
