package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

const (
	reportFolder        = "booking-reports"
	recentEarningsLimit = 10
)

// ProviderService implements the provider-facing surface: jobs, profile,
// earnings and report uploads. Status transitions live on BookingService.
type ProviderService struct {
	providers ports.ProviderRepository
	bookings  ports.BookingRepository
	uploader  ports.FileUploader
	log       zerolog.Logger
}

func NewProviderService(
	providers ports.ProviderRepository,
	bookings ports.BookingRepository,
	uploader ports.FileUploader,
	log zerolog.Logger,
) *ProviderService {
	return &ProviderService{
		providers: providers,
		bookings:  bookings,
		uploader:  uploader,
		log:       log,
	}
}

func (s *ProviderService) Jobs(ctx context.Context, userID, status string) ([]*domain.Booking, error) {
	return s.bookings.ListByProvider(ctx, userID, status)
}

func (s *ProviderService) Profile(ctx context.Context, userID string) (*domain.ProviderProfile, error) {
	return s.providers.FindByUserID(ctx, userID)
}

func (s *ProviderService) Earnings(ctx context.Context, userID string) (*ports.EarningsResult, error) {
	profile, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.bookings.RecentCompletedByProvider(ctx, userID, recentEarningsLimit)
	if err != nil {
		return nil, fmt.Errorf("earnings: recent bookings: %w", err)
	}

	return &ports.EarningsResult{
		Earnings:       profile.Earnings,
		RecentBookings: recent,
	}, nil
}

// UploadReport stores the file and appends its location to the booking.
// Only the bound provider may upload.
func (s *ProviderService) UploadReport(ctx context.Context, userID, bookingID string, file io.Reader) (*domain.Report, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID != userID {
		return nil, domain.ErrForbidden
	}

	uploaded, err := s.uploader.Upload(ctx, file, reportFolder)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", bookingID).Msg("report upload failed")
		return nil, fmt.Errorf("upload report: %w", err)
	}

	report := domain.Report{
		URL:        uploaded.URL,
		PublicID:   uploaded.PublicID,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.bookings.AppendReport(ctx, bookingID, report); err != nil {
		return nil, fmt.Errorf("upload report: persist: %w", err)
	}

	s.log.Info().Str("booking_id", bookingID).Str("public_id", report.PublicID).Msg("report uploaded")
	return &report, nil
}
