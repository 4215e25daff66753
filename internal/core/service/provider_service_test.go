package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

type stubUploader struct {
	lastFolder string
	uploadErr  error
}

func (u *stubUploader) Upload(_ context.Context, file io.Reader, folder string) (*ports.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	u.lastFolder = folder
	_, _ = io.ReadAll(file)
	return &ports.UploadResult{
		URL:      "https://cdn.example.com/reports/r1.pdf",
		PublicID: "reports/r1",
	}, nil
}

type providerFixture struct {
	providers *stubProviderRepo
	bookings  *stubBookingRepo
	uploader  *stubUploader
	svc       *ProviderService
}

func newProviderFixture() *providerFixture {
	f := &providerFixture{
		providers: newStubProviderRepo(),
		bookings:  newStubBookingRepo(),
		uploader:  &stubUploader{},
	}
	f.svc = NewProviderService(f.providers, f.bookings, f.uploader, discardLogger)
	return f
}

func (f *providerFixture) seedJob(status domain.BookingStatus, providerID string) *domain.Booking {
	f.bookings.nextID++
	b := &domain.Booking{
		ID:         fmt.Sprintf("bkg_%d", f.bookings.nextID),
		CustomerID: "cust_1",
		ProviderID: providerID,
		Status:     status,
		Amount:     domain.ComputeAmount(500, 0),
	}
	f.bookings.byID[b.ID] = b
	return b
}

func TestProviderService_Jobs_FiltersByStatus(t *testing.T) {
	f := newProviderFixture()
	f.seedJob(domain.BookingAccepted, "prov_1")
	f.seedJob(domain.BookingCompleted, "prov_1")
	f.seedJob(domain.BookingAccepted, "prov_2")

	all, err := f.svc.Jobs(context.Background(), "prov_1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 jobs, got %d", len(all))
	}

	accepted, err := f.svc.Jobs(context.Background(), "prov_1", "accepted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accepted) != 1 {
		t.Errorf("expected 1 accepted job, got %d", len(accepted))
	}
}

func TestProviderService_Earnings(t *testing.T) {
	f := newProviderFixture()
	profile := f.providers.add(&domain.ProviderProfile{
		UserID:   "prov_1",
		Status:   domain.ApprovalApproved,
		Earnings: domain.Earnings{Total: 900, Pending: 900},
	})
	f.seedJob(domain.BookingCompleted, "prov_1")
	f.seedJob(domain.BookingCompleted, "prov_1")

	result, err := f.svc.Earnings(context.Background(), "prov_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Earnings.Total != profile.Earnings.Total {
		t.Errorf("expected total %v, got %v", profile.Earnings.Total, result.Earnings.Total)
	}
	if len(result.RecentBookings) != 2 {
		t.Errorf("expected 2 recent bookings, got %d", len(result.RecentBookings))
	}
}

func TestProviderService_Earnings_NoProfile(t *testing.T) {
	f := newProviderFixture()

	_, err := f.svc.Earnings(context.Background(), "prov_ghost")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProviderService_UploadReport_Success(t *testing.T) {
	f := newProviderFixture()
	b := f.seedJob(domain.BookingInProgress, "prov_1")

	report, err := f.svc.UploadReport(context.Background(), "prov_1", b.ID, strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.URL == "" || report.PublicID == "" {
		t.Errorf("incomplete report: %+v", report)
	}
	if report.UploadedAt.IsZero() {
		t.Error("uploaded_at must be set")
	}
	if f.uploader.lastFolder != "booking-reports" {
		t.Errorf("unexpected upload folder %q", f.uploader.lastFolder)
	}

	stored, _ := f.bookings.FindByID(context.Background(), b.ID)
	if len(stored.Reports) != 1 {
		t.Fatalf("report not appended to booking, got %d", len(stored.Reports))
	}
}

func TestProviderService_UploadReport_UnboundProvider(t *testing.T) {
	f := newProviderFixture()
	b := f.seedJob(domain.BookingInProgress, "prov_1")

	_, err := f.svc.UploadReport(context.Background(), "prov_2", b.ID, strings.NewReader("x"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestProviderService_UploadReport_UploadFailure(t *testing.T) {
	f := newProviderFixture()
	b := f.seedJob(domain.BookingInProgress, "prov_1")
	f.uploader.uploadErr = errors.New("storage unavailable")

	_, err := f.svc.UploadReport(context.Background(), "prov_1", b.ID, strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error when upload fails")
	}

	stored, _ := f.bookings.FindByID(context.Background(), b.ID)
	if len(stored.Reports) != 0 {
		t.Error("no report may be appended when the upload fails")
	}
}
