// Package metrics defines and registers all custom Prometheus metrics for the
// delivery API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "delivery"

// ParcelsCreatedTotal counts newly registered parcels.
// Label:
//   - priority: "normal", "high", or "urgent"
var ParcelsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parcels_created_total",
		Help:      "Total number of parcels registered, by priority.",
	},
	[]string{"priority"},
)

// StatusTransitionsTotal counts committed status transitions.
// Label:
//   - to: the status applied by the transition
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of committed parcel status transitions.",
	},
	[]string{"to"},
)

// TransitionsDeniedTotal counts rejected transition attempts.
// Label:
//   - reason: "forbidden", "invalid_transition", or "not_found"
var TransitionsDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_denied_total",
		Help:      "Total number of rejected parcel status transition attempts.",
	},
	[]string{"reason"},
)

// TrackingLookupsTotal counts public tracking page lookups.
// Label:
//   - result: "found" or "not_found"
var TrackingLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_lookups_total",
		Help:      "Total number of public tracking lookups, by result.",
	},
	[]string{"result"},
)
