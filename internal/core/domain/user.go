package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountBlocked = errors.New("account blocked")
var ErrProviderPending = errors.New("provider account pending admin approval")
var ErrOTPInvalid = errors.New("invalid or expired otp")
var ErrValidation = errors.New("validation failed")

// User models an authenticated actor in the system. The OTP issued at
// registration lives in Redis with a TTL, not on this document.
type User struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Phone            string    `json:"phone" bson:"phone"`
	PasswordHash     string    `json:"-" bson:"password_hash"`
	Role             string    `json:"role" bson:"role"`
	IsVerified       bool      `json:"is_verified" bson:"is_verified"`
	IsBlocked        bool      `json:"is_blocked" bson:"is_blocked"`
	DefaultAddressID string    `json:"default_address_id,omitempty" bson:"default_address_id,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}
