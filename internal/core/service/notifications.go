package service

import (
	"fmt"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// Message builders for the async notifier. Bodies mirror the platform's
// transactional templates; all delivery is best-effort.

func otpNotification(user *domain.User, code string) ports.Notification {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your OTP for Careloop</h2>
  <p>Your OTP code is: <strong style="font-size: 24px;">%s</strong></p>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`, code)

	return ports.Notification{
		Key:          user.ID,
		EmailTo:      user.Email,
		EmailSubject: "Your OTP Code",
		EmailHTML:    html,
		Phone:        user.Phone,
		SMSText:      fmt.Sprintf("Your OTP for Careloop is %s. Valid for 10 minutes. Do not share this code.", code),
	}
}

func bookingConfirmation(customer *domain.User, booking *domain.Booking, serviceName string) ports.Notification {
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Booking Confirmed!</h2>
  <p>Your booking has been confirmed successfully.</p>
  <h3>Booking Details:</h3>
  <ul>
    <li>Service: %s</li>
    <li>Date: %s</li>
    <li>Time: %s</li>
    <li>Amount: %.2f</li>
  </ul>
  <p>Thank you for using Careloop!</p>
</div>`, serviceName, booking.ScheduledDate.Format("02 Jan 2006"), booking.ScheduledTime, booking.Amount.FinalAmount)

	return ports.Notification{
		Key:          booking.ID,
		EmailTo:      customer.Email,
		EmailSubject: "Booking Confirmed",
		EmailHTML:    html,
	}
}

// statusMessage returns the customer-facing text for a transition, or ""
// for statuses that are not customer-visible.
func statusMessage(status domain.BookingStatus) string {
	switch status {
	case domain.BookingAccepted:
		return "Your booking has been accepted by the provider."
	case domain.BookingProviderArriving:
		return "The provider is on the way to your location."
	case domain.BookingInProgress:
		return "The service is currently in progress."
	case domain.BookingCompleted:
		return "Your service has been completed successfully."
	default:
		return ""
	}
}

func statusUpdate(customer *domain.User, booking *domain.Booking, status domain.BookingStatus) ports.Notification {
	msg := statusMessage(status)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Booking Status Update</h2>
  <p>%s</p>
  <p>Booking ID: %s</p>
  <p>New Status: <strong>%s</strong></p>
</div>`, msg, booking.ID, status)

	return ports.Notification{
		Key:          booking.ID,
		EmailTo:      customer.Email,
		EmailSubject: "Booking Status Update",
		EmailHTML:    html,
		Phone:        customer.Phone,
		SMSText:      fmt.Sprintf("Booking %s: %s", booking.ID, msg),
	}
}

func providerApproved(user *domain.User) ports.Notification {
	return ports.Notification{
		Key:          user.ID,
		EmailTo:      user.Email,
		EmailSubject: "Provider Registration Approved",
		EmailHTML:    "<h2>Congratulations!</h2><p>Your provider registration has been approved. You can now log in and start accepting bookings.</p>",
	}
}

func providerRejected(user *domain.User, reason string) ports.Notification {
	if reason == "" {
		reason = "Not specified"
	}
	return ports.Notification{
		Key:          user.ID,
		EmailTo:      user.Email,
		EmailSubject: "Provider Registration Rejected",
		EmailHTML:    fmt.Sprintf("<h2>Registration Update</h2><p>Your provider registration has been rejected. Reason: %s</p>", reason),
	}
}
