package domain

import (
	"errors"
	"time"
)

// ApprovalStatus tracks where a provider profile sits in the admin review
// queue.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var ErrProfileNotFound = errors.New("provider profile not found")
var ErrProfileExists = errors.New("provider profile already exists")
var ErrLicenseExists = errors.New("license number already registered")
var ErrProviderNotApproved = errors.New("provider not approved")

// Earnings is the running settlement tally for a provider. Completing a
// booking increments Total and Pending by the booking's final amount. Paid
// is reserved for a future payout flow and is never written today.
type Earnings struct {
	Total   float64 `json:"total" bson:"total"`
	Pending float64 `json:"pending" bson:"pending"`
	Paid    float64 `json:"paid" bson:"paid"`
}

// LicenseDocument references the uploaded license file.
type LicenseDocument struct {
	URL      string `json:"url,omitempty" bson:"url,omitempty"`
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
}

// ProviderProfile is the 1:1 extension of a provider User carrying the
// approval state and earnings bookkeeping.
//
// User.IsVerified and ProviderProfile.Status record the same underlying
// fact from two sides: approval sets both, rejection only flips Status.
// Keep them in sync through AdminService; nothing else may write either.
type ProviderProfile struct {
	ID                 string          `json:"id" bson:"_id,omitempty"`
	UserID             string          `json:"user_id" bson:"user_id"`
	Specialization     string          `json:"specialization" bson:"specialization"`
	LicenseNumber      string          `json:"license_number" bson:"license_number"`
	LicenseDocument    LicenseDocument `json:"license_document,omitempty" bson:"license_document,omitempty"`
	ExperienceYears    int             `json:"experience_years" bson:"experience_years"`
	Bio                string          `json:"bio,omitempty" bson:"bio,omitempty"`
	ServiceCategoryIDs []string        `json:"service_category_ids,omitempty" bson:"service_category_ids,omitempty"`
	Rating             float64         `json:"rating" bson:"rating"`
	TotalReviews       int             `json:"total_reviews" bson:"total_reviews"`
	Status             ApprovalStatus  `json:"status" bson:"status"`
	RejectionReason    string          `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	IsAvailable        bool            `json:"is_available" bson:"is_available"`
	Earnings           Earnings        `json:"earnings" bson:"earnings"`
	CreatedAt          time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" bson:"updated_at"`
}
