package ports

import (
	"context"
	"io"
	"time"
)

// EmailSender delivers a single HTML email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMSSender delivers a single text message.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// UploadResult is the stored location of an uploaded file.
type UploadResult struct {
	URL      string
	PublicID string
}

// FileUploader stores a file and returns where it landed.
type FileUploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*UploadResult, error)
}

// OrderRequest carries the parameters for a gateway order.
type OrderRequest struct {
	AmountMinor int64 // amount in minor currency units (paise)
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// Order is a gateway order as returned by the payment provider.
type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
	// KeyID is the public key the client needs to open the checkout widget.
	// Empty in mock mode.
	KeyID string
}

// PaymentGateway creates orders and verifies capture signatures. The mock
// implementation (gateway disabled) synthesizes order ids and accepts any
// signature.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	// Mode reports "live" or "mock".
	Mode() string
}

// OTPStore holds one-time passwords with a TTL. Verify consumes the code on
// success so it cannot be replayed.
type OTPStore interface {
	Save(ctx context.Context, purpose, key, code string, ttl time.Duration) error
	Verify(ctx context.Context, purpose, key, code string) (bool, error)
}

// Notification is a best-effort message to a user. Either or both channels
// may be set; Key shards delivery so messages for the same recipient stay
// ordered.
type Notification struct {
	Key          string
	EmailTo      string
	EmailSubject string
	EmailHTML    string
	Phone        string
	SMSText      string
}

// Notifier enqueues notifications for asynchronous, fire-and-forget
// delivery. Failures are logged, never surfaced to the caller.
type Notifier interface {
	Enqueue(n Notification)
}
