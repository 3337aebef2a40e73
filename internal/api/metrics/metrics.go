// Package metrics defines and registers all custom Prometheus metrics for
// the compliance-portal auth service. It is the single source of truth for
// metric names, labels, and help strings.
//
// Registration happens at import time via promauto; expose the default
// registry on /metrics before the HTTP server starts serving traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Labels:
//   - role: citizen, company, or admin
//   - result: "success", "rejected" (validation or registrar refusal), "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: citizen, company, or admin
//   - result: "success", "rejected", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// AuthDuration measures how long a signup or login takes end-to-end,
// including the remote registration call for signups.
// Label:
//   - flow: "signup" or "login"
var AuthDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_duration_seconds",
		Help:      "Duration of signup and login flows from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"flow"},
)

// GuardRedirectsTotal counts route-guard redirects to the login entry point.
// Label:
//   - route: the protected route that was refused
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route-guard redirects to /login, by route.",
	},
	[]string{"route"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsRecordedTotal counts audit events written to the trail.
// Labels:
//   - action: signup, login, logout
//   - outcome: success, rejected, error
var AuditEventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_recorded_total",
		Help:      "Total number of audit events persisted, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// AuditEventsErrorsTotal counts audit events whose persistence failed.
var AuditEventsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_errors_total",
		Help:      "Total number of audit events that failed to persist.",
	},
)

// AuditEventsDroppedTotal counts audit events dropped because a worker
// queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to full queues.",
	},
)

// AuditQueueDepth tracks the current number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
