// Package metrics defines and registers all custom Prometheus metrics for the
// booking platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "careloop"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - assigned: "true" when a provider was bound at creation, "false" when the
//     booking stayed in pending
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by assignment outcome.",
	},
	[]string{"assigned"},
)

// BookingTransitionsTotal counts status transitions applied to bookings.
// Labels:
//   - from: the status the booking left
//   - to: the status the booking entered
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions applied.",
	},
	[]string{"from", "to"},
)

// BookingTransitionErrorsTotal counts rejected transition attempts.
// Label:
//   - reason: short description of the failure (e.g. "invalid_transition", "forbidden", "not_found")
var BookingTransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transition_errors_total",
		Help:      "Total number of booking status transitions rejected.",
	},
	[]string{"reason"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentOrdersTotal counts gateway orders opened.
// Label:
//   - mode: "live" or "mock"
var PaymentOrdersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_orders_total",
		Help:      "Total number of payment orders created, by gateway mode.",
	},
	[]string{"mode"},
)

// PaymentVerificationsTotal counts signature verification attempts.
// Labels:
//   - mode: "live" or "mock"
//   - result: "ok" or "mismatch"
var PaymentVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_verifications_total",
		Help:      "Total number of payment signature verifications, by result.",
	},
	[]string{"mode", "result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// OTPIssuedTotal counts one-time passwords issued.
// Label:
//   - purpose: "register" or "reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time passwords issued, by purpose.",
	},
	[]string{"purpose"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts delivery attempts made by the dispatcher.
// Labels:
//   - channel: "email" or "sms"
//   - result: "ok" or "error"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification delivery attempts, by channel and result.",
	},
	[]string{"channel", "result"},
)

// NotificationQueueDepth tracks the current number of notifications waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
