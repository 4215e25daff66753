package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SMSConfig captures the settings for the SMS gateway.
type SMSConfig struct {
	APIURL string
	APIKey string
	Sender string
}

// SMSSender delivers text messages through an HTTP SMS gateway. When no
// gateway is configured messages are logged and dropped, mirroring the
// email sender's local-development behaviour.
type SMSSender struct {
	cfg    SMSConfig
	client *http.Client
	log    zerolog.Logger
}

func NewSMSSender(cfg SMSConfig, log zerolog.Logger) *SMSSender {
	return &SMSSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (s *SMSSender) Send(ctx context.Context, phone, message string) error {
	if s.cfg.APIURL == "" || s.cfg.APIKey == "" {
		s.log.Debug().Str("phone", phone).Msg("sms gateway not configured, dropping message")
		return nil
	}

	form := url.Values{}
	form.Set("to", phone)
	form.Set("from", s.cfg.Sender)
	form.Set("body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send sms: gateway returned %d", resp.StatusCode)
	}
	return nil
}
