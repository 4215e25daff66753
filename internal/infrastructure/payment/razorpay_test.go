package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/ports"
)

func TestRazorpayGateway_MockMode(t *testing.T) {
	g := NewRazorpayGateway(Config{Enabled: false}, zerolog.Nop())

	if g.Mode() != "mock" {
		t.Fatalf("expected mock mode, got %q", g.Mode())
	}

	order, err := g.CreateOrder(context.Background(), ports.OrderRequest{
		AmountMinor: 45000,
		Currency:    "INR",
		Notes:       map[string]string{"booking_id": "bkg_1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(order.ID, "order_mock_bkg_1_") {
		t.Errorf("unexpected mock order id %q", order.ID)
	}
	if order.AmountMinor != 45000 || order.Currency != "INR" {
		t.Errorf("order fields not echoed: %+v", order)
	}
	if order.KeyID != "" {
		t.Errorf("mock order must not carry a key id, got %q", order.KeyID)
	}

	if !g.VerifySignature("any", "thing", "goes") {
		t.Error("mock mode must accept any signature")
	}
}

func TestRazorpayGateway_VerifySignature_Live(t *testing.T) {
	g := NewRazorpayGateway(Config{
		Enabled:   true,
		KeyID:     "rzp_test_key",
		KeySecret: "topsecret",
	}, zerolog.Nop())

	if g.Mode() != "live" {
		t.Fatalf("expected live mode, got %q", g.Mode())
	}

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write([]byte("order_1|pay_1"))
	valid := hex.EncodeToString(mac.Sum(nil))

	if !g.VerifySignature("order_1", "pay_1", valid) {
		t.Error("valid signature rejected")
	}
	if g.VerifySignature("order_1", "pay_1", "deadbeef") {
		t.Error("forged signature accepted")
	}
	if g.VerifySignature("order_2", "pay_1", valid) {
		t.Error("signature for another order accepted")
	}
}
