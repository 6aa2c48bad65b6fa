// Package metrics defines and registers all custom Prometheus metrics for the
// MediTrack clinic API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route guard evaluations.
// Label:
//   - decision: "unresolved", "allowed", or "denied"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, labelled by outcome.",
	},
	[]string{"decision"},
)

// SubscriptionFetchesTotal counts subscription lookups triggered after a
// patient login.
// Labels:
//   - result: "hit", "miss", "stale", or "error"
var SubscriptionFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_fetches_total",
		Help:      "Total number of subscription fetches, labelled by result.",
	},
	[]string{"result"},
)

// ── Billing metrics ───────────────────────────────────────────────────────────

// BillingEventsTotal counts billing webhook events that completed processing.
// Label:
//   - type: the processor event type (e.g. "customer.subscription.updated")
var BillingEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billing_events_total",
		Help:      "Total number of billing events successfully processed.",
	},
	[]string{"type"},
)

// BillingErrorsTotal counts billing events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "unknown_type", "upsert_failed")
var BillingErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billing_errors_total",
		Help:      "Total number of billing events that failed processing.",
	},
	[]string{"reason"},
)

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsCreatedTotal counts newly booked appointments.
var AppointmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments booked.",
	},
)
