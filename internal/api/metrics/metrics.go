// Package metrics defines and registers all custom Prometheus metrics for the
// inventory API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourcesMutatedTotal counts successful resource mutations.
// Labels:
//   - action: "created", "updated" or "deleted"
var ResourcesMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_mutated_total",
		Help:      "Total number of successful resource mutations, by action.",
	},
	[]string{"action"},
)

// StatsComputeDuration measures how long a stats request takes end-to-end,
// including the collection load.
var StatsComputeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_compute_duration_seconds",
		Help:      "Duration of aggregate statistics requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - operation: "register", "login" or "confirm"
//   - outcome: "success", "failure" or "pending"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityProcessedTotal counts activity events that completed processing.
// Label:
//   - action: the recorded action ("created", "updated", "deleted")
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events successfully processed.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts activity events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "process_failed")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed processing.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks the current number of events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
