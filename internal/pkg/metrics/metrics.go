// Package metrics defines and registers all custom Prometheus metrics of the
// feedback API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedback"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created" or "rejected"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer token resolutions.
// Label:
//   - result: "ok", "invalid", "incomplete", "unknown_user" or "unknown_role"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token resolutions, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts requests rejected by a role gate.
// Label:
//   - required_role: the role the route demands
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by a role gate.",
	},
	[]string{"required_role"},
)

// ── Feedback metrics ──────────────────────────────────────────────────────────

// FeedbackCreatedTotal counts new feedback entries.
// Label:
//   - sentiment: "POSITIVE", "NEUTRAL" or "NEGATIVE"
var FeedbackCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_created_total",
		Help:      "Total number of feedback entries created, by sentiment.",
	},
	[]string{"sentiment"},
)

// FeedbackAcknowledgedTotal counts acknowledgments by employees.
var FeedbackAcknowledgedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_acknowledged_total",
		Help:      "Total number of feedback entries acknowledged by employees.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts feedback events handled by the dispatcher.
// Labels:
//   - type: event type (e.g. "feedback.created")
//   - result: "delivered", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of feedback events handled by the dispatcher.",
	},
	[]string{"type", "result"},
)

// NotificationQueueDepth tracks pending events in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDuration measures how long delivering one event takes.
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of feedback event delivery.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests by route template, not raw path,
// to keep label cardinality bounded.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	},
	[]string{"method", "route", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
