package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/api/metrics"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// Config captures the Razorpay credentials. When Enabled is false the gateway
// runs in mock mode: orders are synthesized locally and any signature
// verifies, which keeps checkout testable without gateway credentials.
type Config struct {
	Enabled   bool
	KeyID     string
	KeySecret string
}

// RazorpayGateway implements ports.PaymentGateway against the Razorpay
// orders API.
type RazorpayGateway struct {
	cfg    Config
	client *razorpay.Client
	log    zerolog.Logger
}

func NewRazorpayGateway(cfg Config, log zerolog.Logger) *RazorpayGateway {
	g := &RazorpayGateway{cfg: cfg, log: log}
	if cfg.Enabled {
		g.client = razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	}
	return g
}

func (g *RazorpayGateway) Mode() string {
	if g.cfg.Enabled {
		return "live"
	}
	return "mock"
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req ports.OrderRequest) (*ports.Order, error) {
	if !g.cfg.Enabled {
		metrics.PaymentOrdersTotal.WithLabelValues("mock").Inc()
		return g.mockOrder(req), nil
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}

	data := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("razorpay order: missing id in response")
	}

	metrics.PaymentOrdersTotal.WithLabelValues("live").Inc()
	return &ports.Order{
		ID:          id,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		KeyID:       g.cfg.KeyID,
	}, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 over
// "<order_id>|<payment_id>" keyed with the secret, hex encoded. Mock mode
// accepts anything.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if !g.cfg.Enabled {
		metrics.PaymentVerificationsTotal.WithLabelValues("mock", "ok").Inc()
		return true
	}

	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	ok := hmac.Equal([]byte(expected), []byte(signature))
	if ok {
		metrics.PaymentVerificationsTotal.WithLabelValues("live", "ok").Inc()
	} else {
		metrics.PaymentVerificationsTotal.WithLabelValues("live", "mismatch").Inc()
	}
	return ok
}

func (g *RazorpayGateway) mockOrder(req ports.OrderRequest) *ports.Order {
	id := fmt.Sprintf("order_mock_%s_%d", req.Notes["booking_id"], time.Now().UnixNano())
	g.log.Debug().Str("order_id", id).Msg("mock payment order created")

	return &ports.Order{
		ID:          id,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
	}
}
