package ports

import (
	"context"
	"io"

	"github.com/careloop/booking-platform/internal/core/domain"
)

// ProviderRegistration holds the extra fields required when registering as a
// provider.
type ProviderRegistration struct {
	Specialization     string
	ExperienceYears    int
	LicenseNumber      string
	Bio                string
	ServiceCategoryIDs []string
	// LicenseFile is the optional license document attached at registration.
	// When set it is uploaded and referenced from the created profile.
	LicenseFile io.Reader
}

// RegisterInput carries all data for the public registration endpoint.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
	Provider *ProviderRegistration // required when Role is provider
}

// RegisterResult is returned after registration; the caller verifies the OTP
// sent to the user's email and phone.
type RegisterResult struct {
	UserID string
}

// VerifyOTPResult is returned on successful OTP verification. Token is empty
// for providers, who stay locked out until admin approval.
type VerifyOTPResult struct {
	Token string
	User  *domain.User
}

// AuthService covers registration, OTP verification, login and password reset.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	VerifyOTP(ctx context.Context, userID, code string) (*VerifyOTPResult, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
