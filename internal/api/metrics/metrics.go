// Package metrics is the single source of truth for the console's custom
// Prometheus metric names, labels, and help strings. All metrics register
// themselves with the default registry via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salon_console"

// ── Composer metrics ─────────────────────────────────────────────────────────

// ComposerPreparesTotal counts booking-form assembly attempts.
// Label:
//   - result: "ok" or "error"
var ComposerPreparesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "composer_prepares_total",
		Help:      "Total number of booking form preparations, by result.",
	},
	[]string{"result"},
)

// AppointmentSubmitsTotal counts submit attempts.
// Label:
//   - result: "ok", "error", or "duplicate" (in-flight guard hit)
var AppointmentSubmitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_submits_total",
		Help:      "Total number of appointment submissions, by result.",
	},
	[]string{"result"},
)

// ── Backend client metrics ───────────────────────────────────────────────────

// BackendRequestDuration measures one outbound call to the salon backend.
// Labels:
//   - resource: logical resource name ("services", "appointments", …)
//   - method: HTTP method
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of outbound requests to the salon backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// BackendRequestErrors counts failed outbound calls.
// Labels:
//   - resource: logical resource name
//   - reason: "transport" or the HTTP status code
var BackendRequestErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_request_errors_total",
		Help:      "Total number of failed outbound requests to the salon backend.",
	},
	[]string{"resource", "reason"},
)
