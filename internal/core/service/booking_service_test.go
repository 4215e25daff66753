package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	byID      map[string]*domain.Booking
	nextID    int
	createErr error
	// beforeUpdate runs right before UpdateStatus applies, so tests can
	// simulate a concurrent writer moving the booking first.
	beforeUpdate func()
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("bkg_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.CustomerID == customerID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListByProvider(_ context.Context, providerID, status string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.ProviderID != providerID {
			continue
		}
		if status != "" && string(b.Status) != status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubBookingRepo) RecentCompletedByProvider(_ context.Context, providerID string, limit int) ([]*domain.Booking, error) {
	out, _ := r.ListByProvider(context.Background(), providerID, string(domain.BookingCompleted))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubBookingRepo) List(_ context.Context, filter ports.BookingListFilter) ([]*domain.Booking, int64, error) {
	var matched []*domain.Booking
	for _, b := range r.byID {
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	skip := (filter.Page - 1) * filter.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Booking{}, total, nil
	}
	end := skip + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// UpdateStatus mirrors the real compare-and-set: the write applies only when
// the stored status still equals from.
func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus, fields ports.StatusUpdateFields) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
		r.beforeUpdate = nil
	}
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != from {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, b.Status, to)
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	if fields.CancellationReason != "" {
		b.CancellationReason = fields.CancellationReason
	}
	if fields.CompletedAt != nil {
		b.CompletedAt = fields.CompletedAt
	}
	return nil
}

func (r *stubBookingRepo) AttachPayment(_ context.Context, bookingID, paymentID string) error {
	b, ok := r.byID[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.PaymentID = paymentID
	return nil
}

func (r *stubBookingRepo) AppendReport(_ context.Context, bookingID string, rep domain.Report) error {
	b, ok := r.byID[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Reports = append(b.Reports, rep)
	return nil
}

type stubCatalogRepo struct {
	byID map[string]*domain.ServiceCategory
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{byID: make(map[string]*domain.ServiceCategory)}
}

func (r *stubCatalogRepo) Create(_ context.Context, s *domain.ServiceCategory) (*domain.ServiceCategory, error) {
	clone := *s
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("svc_%d", len(r.byID)+1)
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id string) (*domain.ServiceCategory, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubCatalogRepo) ListActive(_ context.Context) ([]*domain.ServiceCategory, error) {
	var out []*domain.ServiceCategory
	for _, s := range r.byID {
		if s.IsActive {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCatalogRepo) ListAll(_ context.Context) ([]*domain.ServiceCategory, error) {
	var out []*domain.ServiceCategory
	for _, s := range r.byID {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCatalogRepo) Update(_ context.Context, id string, upd ports.ServiceUpdate) (*domain.ServiceCategory, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	if upd.Name != nil {
		s.Name = *upd.Name
	}
	if upd.BasePrice != nil {
		s.BasePrice = *upd.BasePrice
	}
	if upd.DurationMinutes != nil {
		s.DurationMinutes = *upd.DurationMinutes
	}
	if upd.IsActive != nil {
		s.IsActive = *upd.IsActive
	}
	if upd.Discount != nil {
		s.Discount = *upd.Discount
	}
	clone := *s
	return &clone, nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProviderRepo struct {
	byID          map[string]*domain.ProviderProfile
	byUserID      map[string]*domain.ProviderProfile
	byLicense     map[string]*domain.ProviderProfile
	available     *domain.ProviderProfile // FirstAvailableForService result; nil means none
	earningsCalls int
}

func newStubProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{
		byID:      make(map[string]*domain.ProviderProfile),
		byUserID:  make(map[string]*domain.ProviderProfile),
		byLicense: make(map[string]*domain.ProviderProfile),
	}
}

func (r *stubProviderRepo) add(p *domain.ProviderProfile) *domain.ProviderProfile {
	if p.ID == "" {
		p.ID = fmt.Sprintf("prf_%d", len(r.byID)+1)
	}
	r.byID[p.ID] = p
	r.byUserID[p.UserID] = p
	if p.LicenseNumber != "" {
		r.byLicense[p.LicenseNumber] = p
	}
	return p
}

func (r *stubProviderRepo) Create(_ context.Context, p *domain.ProviderProfile) (*domain.ProviderProfile, error) {
	if _, exists := r.byUserID[p.UserID]; exists {
		return nil, domain.ErrProfileExists
	}
	clone := *p
	stored := r.add(&clone)
	out := *stored
	return &out, nil
}

func (r *stubProviderRepo) FindByUserID(_ context.Context, userID string) (*domain.ProviderProfile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) FindByLicense(_ context.Context, licenseNumber string) (*domain.ProviderProfile, error) {
	p, ok := r.byLicense[licenseNumber]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) FirstAvailableForService(_ context.Context, _ string) (*domain.ProviderProfile, error) {
	if r.available == nil {
		return nil, domain.ErrProfileNotFound
	}
	clone := *r.available
	return &clone, nil
}

func (r *stubProviderRepo) SetStatus(_ context.Context, profileID string, status domain.ApprovalStatus, rejectionReason string) error {
	p, ok := r.byID[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Status = status
	p.RejectionReason = rejectionReason
	return nil
}

func (r *stubProviderRepo) AddEarnings(_ context.Context, profileID string, amount float64) error {
	p, ok := r.byID[profileID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	r.earningsCalls++
	p.Earnings.Total += amount
	p.Earnings.Pending += amount
	return nil
}

type stubUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("usr_%d", len(r.byID)+1)
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *u
	stored := r.add(&clone)
	out := *stored
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmailOrPhone(_ context.Context, email, phone string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		clone := *u
		return &clone, nil
	}
	for _, u := range r.byID {
		if phone != "" && u.Phone == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetVerified(_ context.Context, id string, verified bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = verified
	return nil
}

func (r *stubUserRepo) SetBlocked(_ context.Context, id string, blocked bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsBlocked = blocked
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) SetDefaultAddress(_ context.Context, id, addressID string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DefaultAddressID = addressID
	return nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserListFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Blocked != nil && u.IsBlocked != *filter.Blocked {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubUserRepo) ListUnverifiedProviders(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == domain.RoleProvider && !u.IsVerified {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubNotifier struct {
	sent []ports.Notification
}

func (n *stubNotifier) Enqueue(msg ports.Notification) {
	n.sent = append(n.sent, msg)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type bookingFixture struct {
	repo      *stubBookingRepo
	catalog   *stubCatalogRepo
	providers *stubProviderRepo
	users     *stubUserRepo
	notifier  *stubNotifier
	svc       *BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		repo:      newStubBookingRepo(),
		catalog:   newStubCatalogRepo(),
		providers: newStubProviderRepo(),
		users:     newStubUserRepo(),
		notifier:  &stubNotifier{},
	}
	f.svc = NewBookingService(f.repo, f.catalog, f.providers, f.users, f.notifier, discardLogger)

	f.users.add(&domain.User{ID: "cust_1", Name: "Asha", Email: "asha@example.com", Phone: "+911234", Role: domain.RoleCustomer})
	f.catalog.byID["svc_clean"] = &domain.ServiceCategory{
		ID:        "svc_clean",
		Name:      "Deep Cleaning",
		BasePrice: 500,
		IsActive:  true,
		Discount:  domain.Discount{Percentage: 10},
	}
	return f
}

func (f *bookingFixture) createInput() ports.CreateBookingInput {
	return ports.CreateBookingInput{
		CustomerID:    "cust_1",
		ServiceID:     "svc_clean",
		AddressID:     "addr_1",
		ScheduledDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "10:00",
	}
}

func approvedProfile(userID string) *domain.ProviderProfile {
	return &domain.ProviderProfile{
		UserID:      userID,
		Status:      domain.ApprovalApproved,
		IsAvailable: true,
	}
}

// seedBooking stores a booking directly in the stub with the given status.
func (f *bookingFixture) seedBooking(status domain.BookingStatus, providerID, profileID string) *domain.Booking {
	f.repo.nextID++
	b := &domain.Booking{
		ID:                fmt.Sprintf("bkg_%d", f.repo.nextID),
		CustomerID:        "cust_1",
		ProviderID:        providerID,
		ProviderProfileID: profileID,
		ServiceID:         "svc_clean",
		Status:            status,
		Amount:            domain.ComputeAmount(500, 10),
	}
	f.repo.byID[b.ID] = b
	return b
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestBookingService_Create_SnapshotsAmount(t *testing.T) {
	f := newBookingFixture()

	booking, err := f.svc.Create(context.Background(), f.createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Amount.BasePrice != 500 {
		t.Errorf("base price: want 500, got %v", booking.Amount.BasePrice)
	}
	if booking.Amount.Discount != 50 {
		t.Errorf("discount: want 50, got %v", booking.Amount.Discount)
	}
	if booking.Amount.FinalAmount != 450 {
		t.Errorf("final amount: want 450, got %v", booking.Amount.FinalAmount)
	}
}

func TestBookingService_Create_SnapshotSurvivesCatalogEdit(t *testing.T) {
	f := newBookingFixture()

	booking, err := f.svc.Create(context.Background(), f.createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later price change must not touch the stored snapshot.
	f.catalog.byID["svc_clean"].BasePrice = 9000

	stored, _ := f.repo.FindByID(context.Background(), booking.ID)
	if stored.Amount.FinalAmount != 450 {
		t.Errorf("snapshot changed after catalog edit: got %v", stored.Amount.FinalAmount)
	}
}

func TestBookingService_Create_InactiveService(t *testing.T) {
	f := newBookingFixture()
	f.catalog.byID["svc_clean"].IsActive = false

	_, err := f.svc.Create(context.Background(), f.createInput())
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound for inactive service, got %v", err)
	}
}

func TestBookingService_Create_UnknownService(t *testing.T) {
	f := newBookingFixture()

	input := f.createInput()
	input.ServiceID = "svc_missing"
	_, err := f.svc.Create(context.Background(), input)
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestBookingService_Create_AutoAssignFirstMatch(t *testing.T) {
	f := newBookingFixture()
	f.providers.available = f.providers.add(approvedProfile("prov_1"))

	booking, err := f.svc.Create(context.Background(), f.createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ProviderID != "prov_1" {
		t.Errorf("expected auto-assigned provider prov_1, got %q", booking.ProviderID)
	}
	if booking.Status != domain.BookingAccepted {
		t.Errorf("assigned booking must start accepted, got %q", booking.Status)
	}
}

func TestBookingService_Create_NoProviderStaysPending(t *testing.T) {
	f := newBookingFixture()

	booking, err := f.svc.Create(context.Background(), f.createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.ProviderID != "" {
		t.Errorf("expected no provider, got %q", booking.ProviderID)
	}
	if booking.Status != domain.BookingPending {
		t.Errorf("unassigned booking must stay pending, got %q", booking.Status)
	}
}

func TestBookingService_Create_RequestedProviderMustBeApproved(t *testing.T) {
	f := newBookingFixture()
	pending := approvedProfile("prov_1")
	pending.Status = domain.ApprovalPending
	f.providers.add(pending)

	input := f.createInput()
	input.ProviderID = "prov_1"
	_, err := f.svc.Create(context.Background(), input)
	if !errors.Is(err, domain.ErrProviderNotApproved) {
		t.Errorf("expected ErrProviderNotApproved, got %v", err)
	}
}

func TestBookingService_Create_SendsConfirmation(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.Create(context.Background(), f.createInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
	}
	if f.notifier.sent[0].EmailTo != "asha@example.com" {
		t.Errorf("confirmation addressed to %q", f.notifier.sent[0].EmailTo)
	}
}

// ---------------------------------------------------------------------------
// AcceptReject tests
// ---------------------------------------------------------------------------

func TestBookingService_AcceptReject_Accept(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingPending, "prov_1", "prf_1")

	updated, err := f.svc.AcceptReject(context.Background(), ports.AcceptRejectInput{
		BookingID: b.ID,
		ActorID:   "prov_1",
		Accept:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.BookingAccepted {
		t.Errorf("expected accepted, got %q", updated.Status)
	}
}

func TestBookingService_AcceptReject_AcceptIdempotent(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingAccepted, "prov_1", "prf_1")

	updated, err := f.svc.AcceptReject(context.Background(), ports.AcceptRejectInput{
		BookingID: b.ID,
		ActorID:   "prov_1",
		Accept:    true,
	})
	if err != nil {
		t.Fatalf("accept on accepted booking must be a no-op, got %v", err)
	}
	if updated.Status != domain.BookingAccepted {
		t.Errorf("expected accepted, got %q", updated.Status)
	}
}

func TestBookingService_AcceptReject_RejectDefaultReason(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingPending, "prov_1", "prf_1")

	updated, err := f.svc.AcceptReject(context.Background(), ports.AcceptRejectInput{
		BookingID: b.ID,
		ActorID:   "prov_1",
		Accept:    false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.BookingRejected {
		t.Errorf("expected rejected, got %q", updated.Status)
	}
	if updated.CancellationReason != "Provider rejected" {
		t.Errorf("expected default reason, got %q", updated.CancellationReason)
	}
}

func TestBookingService_AcceptReject_RejectLeavesBookingUnassignedForever(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingPending, "prov_1", "prf_1")

	_, err := f.svc.AcceptReject(context.Background(), ports.AcceptRejectInput{
		BookingID: b.ID,
		ActorID:   "prov_1",
		Accept:    false,
		Reason:    "double booked",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// rejected is absorbing; nobody picks the job up afterwards
	stored, _ := f.repo.FindByID(context.Background(), b.ID)
	if stored.Status != domain.BookingRejected {
		t.Fatalf("expected rejected, got %q", stored.Status)
	}
	if stored.CancellationReason != "double booked" {
		t.Errorf("expected custom reason, got %q", stored.CancellationReason)
	}
}

func TestBookingService_AcceptReject_WrongProvider(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingPending, "prov_1", "prf_1")

	_, err := f.svc.AcceptReject(context.Background(), ports.AcceptRejectInput{
		BookingID: b.ID,
		ActorID:   "prov_999",
		Accept:    true,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for unbound provider, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus tests
// ---------------------------------------------------------------------------

func TestBookingService_UpdateStatus_ValidEdges(t *testing.T) {
	steps := []domain.BookingStatus{
		domain.BookingProviderArriving,
		domain.BookingInProgress,
		domain.BookingCompleted,
	}

	f := newBookingFixture()
	f.providers.add(approvedProfile("prov_1"))
	b := f.seedBooking(domain.BookingAccepted, "prov_1", "prf_1")

	for _, target := range steps {
		updated, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
			BookingID: b.ID,
			Target:    target,
			ActorID:   "prov_1",
			ActorRole: domain.RoleProvider,
		})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("expected %s, got %s", target, updated.Status)
		}
	}

	stored, _ := f.repo.FindByID(context.Background(), b.ID)
	if stored.CompletedAt == nil {
		t.Error("completed booking must carry completed_at")
	}
}

func TestBookingService_UpdateStatus_InvalidEdges(t *testing.T) {
	cases := []struct {
		from, to domain.BookingStatus
	}{
		{domain.BookingPending, domain.BookingInProgress},
		{domain.BookingPending, domain.BookingCompleted},
		{domain.BookingAccepted, domain.BookingCompleted},
		{domain.BookingProviderArriving, domain.BookingCancelled},
		{domain.BookingInProgress, domain.BookingCancelled},
		{domain.BookingCompleted, domain.BookingPending},
		{domain.BookingCompleted, domain.BookingCancelled},
		{domain.BookingCancelled, domain.BookingAccepted},
		{domain.BookingRejected, domain.BookingAccepted},
	}

	for _, tc := range cases {
		f := newBookingFixture()
		b := f.seedBooking(tc.from, "prov_1", "prf_1")

		_, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
			BookingID: b.ID,
			Target:    tc.to,
			ActorID:   "prov_1",
			ActorRole: domain.RoleProvider,
		})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestBookingService_UpdateStatus_UnknownStatus(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingPending, "prov_1", "prf_1")

	_, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    "teleported",
		ActorID:   "prov_1",
		ActorRole: domain.RoleProvider,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
}

func TestBookingService_UpdateStatus_ActorChecks(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingAccepted, "prov_1", "prf_1")

	// unbound provider
	_, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingProviderArriving,
		ActorID:   "prov_2",
		ActorRole: domain.RoleProvider,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unbound provider: expected ErrForbidden, got %v", err)
	}

	// customers may not drive transitions at all
	_, err = f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingProviderArriving,
		ActorID:   "cust_1",
		ActorRole: domain.RoleCustomer,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("customer: expected ErrForbidden, got %v", err)
	}

	// admins drive any valid transition without being bound
	_, err = f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingProviderArriving,
		ActorID:   "adm_1",
		ActorRole: domain.RoleAdmin,
	})
	if err != nil {
		t.Errorf("admin: unexpected error: %v", err)
	}
}

func TestBookingService_UpdateStatus_NotFound(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: "bkg_missing",
		Target:    domain.BookingAccepted,
		ActorID:   "adm_1",
		ActorRole: domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingService_UpdateStatus_ConcurrentWriterLoses(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingAccepted, "prov_1", "prf_1")

	// Another writer moves the booking between the read and the CAS write.
	f.repo.beforeUpdate = func() {
		f.repo.byID[b.ID].Status = domain.BookingCancelled
	}

	_, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingProviderArriving,
		ActorID:   "prov_1",
		ActorRole: domain.RoleProvider,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition when CAS loses, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Earnings tests
// ---------------------------------------------------------------------------

func TestBookingService_Completion_CreditsEarningsOnce(t *testing.T) {
	f := newBookingFixture()
	profile := f.providers.add(approvedProfile("prov_1"))
	b := f.seedBooking(domain.BookingInProgress, "prov_1", profile.ID)

	_, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingCompleted,
		ActorID:   "prov_1",
		ActorRole: domain.RoleProvider,
	})
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	if profile.Earnings.Total != 450 || profile.Earnings.Pending != 450 {
		t.Errorf("earnings: want total=450 pending=450, got %+v", profile.Earnings)
	}
	if profile.Earnings.Paid != 0 {
		t.Errorf("paid must stay zero, got %v", profile.Earnings.Paid)
	}

	// Replayed completion fails the CAS and must not credit again.
	_, err = f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingCompleted,
		ActorID:   "prov_1",
		ActorRole: domain.RoleProvider,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on replay, got %v", err)
	}
	if f.providers.earningsCalls != 1 {
		t.Errorf("earnings credited %d times, want exactly 1", f.providers.earningsCalls)
	}
}

func TestBookingService_EarningsFailureDoesNotFailTransition(t *testing.T) {
	f := newBookingFixture()
	// Profile id that does not exist: AddEarnings fails, transition survives.
	b := f.seedBooking(domain.BookingInProgress, "prov_1", "prf_ghost")

	updated, err := f.svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		BookingID: b.ID,
		Target:    domain.BookingCompleted,
		ActorID:   "prov_1",
		ActorRole: domain.RoleProvider,
	})
	if err != nil {
		t.Fatalf("transition must survive earnings failure, got %v", err)
	}
	if updated.Status != domain.BookingCompleted {
		t.Errorf("expected completed, got %q", updated.Status)
	}
}

// ---------------------------------------------------------------------------
// Listing tests
// ---------------------------------------------------------------------------

func TestBookingService_ListAll_LimitCappedAt100(t *testing.T) {
	f := newBookingFixture()

	page, err := f.svc.ListAll(context.Background(), ports.BookingListFilter{Page: 1, Limit: 999})
	if err != nil {
		t.Fatal(err)
	}
	if page.Limit != 100 {
		t.Errorf("expected limit 100, got %d", page.Limit)
	}
}

func TestBookingService_ListAll_Defaults(t *testing.T) {
	f := newBookingFixture()
	for i := 0; i < 3; i++ {
		f.seedBooking(domain.BookingPending, "", "")
	}

	page, err := f.svc.ListAll(context.Background(), ports.BookingListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Errorf("expected defaults page=1 limit=10, got page=%d limit=%d", page.Page, page.Limit)
	}
	if page.Total != 3 {
		t.Errorf("expected total 3, got %d", page.Total)
	}
	if page.TotalPages != 1 {
		t.Errorf("expected 1 total page, got %d", page.TotalPages)
	}
}

func TestBookingService_GetForCustomer_OwnershipEnforced(t *testing.T) {
	f := newBookingFixture()
	b := f.seedBooking(domain.BookingPending, "", "")

	if _, err := f.svc.GetForCustomer(context.Background(), b.ID, "cust_1"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	_, err := f.svc.GetForCustomer(context.Background(), b.ID, "cust_999")
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("foreign customer must get not-found, got %v", err)
	}
}
