// Package metrics defines and registers all custom Prometheus metrics for the
// QuickRent backend. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package load; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickrent"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts successful signups by role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by role.",
	},
	[]string{"role"},
)

// AuthFailuresTotal counts rejected bearer tokens on authenticated routes.
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
)

// ── Deal metrics ──────────────────────────────────────────────────────────────

// DealsCreatedTotal counts newly created deals.
// Label:
//   - property_type: e.g. "apartment", "villa"
var DealsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deals_created_total",
		Help:      "Total number of deals created, by property type.",
	},
	[]string{"property_type"},
)

// DealTransitionsTotal counts successful workflow transitions.
// Label:
//   - to_status: the status the deal moved into
var DealTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deal_transitions_total",
		Help:      "Total number of successful deal status transitions, by target status.",
	},
	[]string{"to_status"},
)

// TransitionConflictsTotal counts transitions lost to optimistic-concurrency races.
var TransitionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_conflicts_total",
		Help:      "Total number of deal transitions rejected because the status changed concurrently.",
	},
)
