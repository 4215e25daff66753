package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// EmailConfig captures the SMTP settings for outbound mail.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailSender delivers HTML mail over SMTP. When no host is configured the
// sender logs and drops messages instead of failing, which keeps local
// development working without an SMTP account.
type EmailSender struct {
	cfg    EmailConfig
	dialer *gomail.Dialer
	log    zerolog.Logger
}

func NewEmailSender(cfg EmailConfig, log zerolog.Logger) *EmailSender {
	s := &EmailSender{cfg: cfg, log: log}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *EmailSender) Send(ctx context.Context, to, subject, html string) error {
	if s.dialer == nil {
		s.log.Debug().Str("to", to).Str("subject", subject).Msg("smtp not configured, dropping email")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
