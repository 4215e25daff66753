package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

const (
	otpPurposeRegister = "register"
	otpPurposeReset    = "reset"

	licenseFolder = "provider-licenses"
)

// AuthService implements registration with OTP verification, login and
// password reset.
type AuthService struct {
	users     ports.UserRepository
	providers ports.ProviderRepository
	otp       ports.OTPStore
	notifier  ports.Notifier
	uploader  ports.FileUploader
	jwtSecret string
	tokenTTL  time.Duration
	otpTTL    time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	providers ports.ProviderRepository,
	otp ports.OTPStore,
	notifier ports.Notifier,
	uploader ports.FileUploader,
	jwtSecret string,
	tokenTTL, otpTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &AuthService{
		users:     users,
		providers: providers,
		otp:       otp,
		notifier:  notifier,
		uploader:  uploader,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		otpTTL:    otpTTL,
		log:       log,
	}
}

// Register creates an unverified user, issues an OTP and sends it over email
// and SMS. Admin registration through this endpoint is refused. Provider
// registration additionally creates a pending ProviderProfile.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.Role == domain.RoleAdmin {
		return nil, fmt.Errorf("register: %w", domain.ErrForbidden)
	}
	role := domain.RoleCustomer
	if input.Role == domain.RoleProvider {
		role = domain.RoleProvider
	}

	var licenseDoc domain.LicenseDocument
	if role == domain.RoleProvider {
		p := input.Provider
		if p == nil || p.Specialization == "" || strings.TrimSpace(p.LicenseNumber) == "" || p.Bio == "" || p.ExperienceYears < 0 {
			return nil, fmt.Errorf("register: %w", domain.ErrInvalidCredentials)
		}
		_, err := s.providers.FindByLicense(ctx, strings.TrimSpace(p.LicenseNumber))
		if err == nil {
			return nil, domain.ErrLicenseExists
		}
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("register: license lookup: %w", err)
		}

		// The license document is uploaded before any record is written so a
		// failed upload leaves nothing behind.
		if p.LicenseFile != nil {
			uploaded, err := s.uploader.Upload(ctx, p.LicenseFile, licenseFolder)
			if err != nil {
				return nil, fmt.Errorf("register: upload license: %w", err)
			}
			licenseDoc = domain.LicenseDocument{URL: uploaded.URL, PublicID: uploaded.PublicID}
		}
	}

	if existing, err := s.users.FindByEmailOrPhone(ctx, email, input.Phone); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: uniqueness probe: %w", err)
	}

	var hash string
	if input.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("register: hash password: %w", err)
		}
		hash = string(h)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	if role == domain.RoleProvider {
		p := input.Provider
		_, err := s.providers.Create(ctx, &domain.ProviderProfile{
			UserID:             user.ID,
			Specialization:     strings.TrimSpace(p.Specialization),
			LicenseNumber:      strings.TrimSpace(p.LicenseNumber),
			LicenseDocument:    licenseDoc,
			ExperienceYears:    p.ExperienceYears,
			Bio:                strings.TrimSpace(p.Bio),
			ServiceCategoryIDs: p.ServiceCategoryIDs,
			Status:             domain.ApprovalPending,
			IsAvailable:        true,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			return nil, fmt.Errorf("register: create provider profile: %w", err)
		}
	}

	code := generateOTP()
	if err := s.otp.Save(ctx, otpPurposeRegister, user.ID, code, s.otpTTL); err != nil {
		return nil, fmt.Errorf("register: store otp: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", role).Msg("user registered, otp issued")
	s.notifier.Enqueue(otpNotification(user, code))

	return &ports.RegisterResult{UserID: user.ID}, nil
}

// VerifyOTP validates the registration OTP. Customers become verified and
// receive a token; providers stay locked out until admin approval.
func (s *AuthService) VerifyOTP(ctx context.Context, userID, code string) (*ports.VerifyOTPResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ok, err := s.otp.Verify(ctx, otpPurposeRegister, userID, code)
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		return nil, domain.ErrOTPInvalid
	}

	result := &ports.VerifyOTPResult{User: user}

	if user.Role == domain.RoleCustomer {
		if err := s.users.SetVerified(ctx, user.ID, true); err != nil {
			return nil, fmt.Errorf("verify otp: mark verified: %w", err)
		}
		user.IsVerified = true

		token, err := s.generateToken(user)
		if err != nil {
			return nil, err
		}
		result.Token = token
	}
	// Providers keep is_verified=false here; admin approval flips it.

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("otp verified")
	return result, nil
}

// Login authenticates by email and password. Blocked accounts and providers
// awaiting approval are refused.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.IsBlocked {
		return "", nil, domain.ErrAccountBlocked
	}
	if user.Role == domain.RoleProvider && !user.IsVerified {
		return "", nil, domain.ErrProviderPending
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

// ForgotPassword issues a reset OTP to the account's email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code := generateOTP()
	if err := s.otp.Save(ctx, otpPurposeReset, email, code, s.otpTTL); err != nil {
		return fmt.Errorf("forgot password: store otp: %w", err)
	}

	s.notifier.Enqueue(otpNotification(user, code))
	return nil
}

// ResetPassword validates the reset OTP and rehashes the password.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.otp.Verify(ctx, otpPurposeReset, email, code)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if !ok {
		return domain.ErrOTPInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateOTP returns a 6-digit one-time password.
func generateOTP() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}
