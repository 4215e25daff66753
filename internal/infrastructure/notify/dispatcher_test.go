package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/ports"
)

type sentEmail struct {
	to, subject string
}

type recordingEmailSender struct {
	ch  chan sentEmail
	err error
}

func (s *recordingEmailSender) Send(_ context.Context, to, subject, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.ch <- sentEmail{to: to, subject: subject}
	return nil
}

type recordingSMSSender struct {
	ch chan string
}

func (s *recordingSMSSender) Send(_ context.Context, phone, _ string) error {
	s.ch <- phone
	return nil
}

func waitEmail(t *testing.T, ch chan sentEmail) sentEmail {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for email")
		return sentEmail{}
	}
}

func waitSMS(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sms")
		return ""
	}
}

func TestDispatcher_DeliversBothChannels(t *testing.T) {
	email := &recordingEmailSender{ch: make(chan sentEmail, 8)}
	sms := &recordingSMSSender{ch: make(chan string, 8)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, email, sms, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.Notification{
		Key:          "usr_1",
		EmailTo:      "asha@example.com",
		EmailSubject: "Your OTP Code",
		EmailHTML:    "<p>123456</p>",
		Phone:        "+911234567890",
		SMSText:      "123456",
	})

	got := waitEmail(t, email.ch)
	if got.to != "asha@example.com" || got.subject != "Your OTP Code" {
		t.Errorf("unexpected email: %+v", got)
	}
	if phone := waitSMS(t, sms.ch); phone != "+911234567890" {
		t.Errorf("unexpected sms recipient %q", phone)
	}
}

func TestDispatcher_SkipsEmptyChannels(t *testing.T) {
	email := &recordingEmailSender{ch: make(chan sentEmail, 8)}
	sms := &recordingSMSSender{ch: make(chan string, 8)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, email, sms, zerolog.Nop())
	d.Start(ctx)

	// email only
	d.Enqueue(ports.Notification{
		Key:          "bkg_1",
		EmailTo:      "asha@example.com",
		EmailSubject: "Booking Confirmed",
		EmailHTML:    "<p>ok</p>",
	})

	waitEmail(t, email.ch)
	select {
	case phone := <-sms.ch:
		t.Errorf("unexpected sms to %q", phone)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDispatcher_EmailFailureStillSendsSMS(t *testing.T) {
	email := &recordingEmailSender{ch: make(chan sentEmail, 8), err: errors.New("smtp down")}
	sms := &recordingSMSSender{ch: make(chan string, 8)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, email, sms, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.Notification{
		Key:       "usr_1",
		EmailTo:   "asha@example.com",
		EmailHTML: "<p>x</p>",
		Phone:     "+911234567890",
		SMSText:   "hello",
	})

	if phone := waitSMS(t, sms.ch); phone != "+911234567890" {
		t.Errorf("sms must still be delivered when email fails, got %q", phone)
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, &recordingEmailSender{ch: make(chan sentEmail, 1)}, &recordingSMSSender{ch: make(chan string, 1)}, zerolog.Nop())

	keys := []string{"usr_1", "usr_2", "bkg_42", ""}
	for _, key := range keys {
		first := d.shardIndex(key)
		if first < 0 || first >= 4 {
			t.Fatalf("shard out of range for %q: %d", key, first)
		}
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(key); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", key, got, first)
			}
		}
	}
}
