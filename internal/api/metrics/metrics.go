// Package metrics defines and registers all custom Prometheus metrics for the
// Cabrix dispatch API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cabrix"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Trip metrics ──────────────────────────────────────────────────────────────

// TripsCreatedTotal counts newly requested trips.
var TripsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trips_created_total",
		Help:      "Total number of trips created.",
	},
)

// TripTransitionsTotal counts applied lifecycle transitions.
// Labels:
//   - from: the prior status (e.g. "pending")
//   - to: the new status (e.g. "in_progress")
var TripTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trip_transitions_total",
		Help:      "Total number of trip status transitions applied.",
	},
	[]string{"from", "to"},
)

// TripTransitionErrorsTotal counts rejected transition attempts.
// Label:
//   - reason: short description of the rejection (e.g. "invalid_transition", "forbidden")
var TripTransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trip_transition_errors_total",
		Help:      "Total number of trip transition attempts that were rejected.",
	},
	[]string{"reason"},
)

// TripAssignmentsTotal counts driver/vehicle assignments made by dispatchers.
var TripAssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trip_assignments_total",
		Help:      "Total number of driver and vehicle assignments.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of events waiting in each audit
// worker channel.
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
