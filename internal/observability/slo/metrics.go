// Package slo tracks the HTTP service level indicators of the catalog API and
// publishes them as Prometheus gauges.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets define the service level objectives for the catalog API.
const (
	// AvailabilitySLO defines the target ratio of non-5xx responses (99.9%)
	AvailabilitySLO = 0.999

	// LatencyP95SLO defines the target for 95th percentile latency in seconds (50ms)
	LatencyP95SLO = 0.050

	// LatencyP99SLO defines the target for 99th percentile latency in seconds (200ms)
	LatencyP99SLO = 0.200

	// ErrorRateSLO defines the maximum acceptable 5xx ratio (0.1%)
	ErrorRateSLO = 0.001
)

// SLO tracking metrics. Tracker.Refresh sets them from the requests observed
// since the previous refresh.
var (
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Availability ratio (0-1) over the last refresh window, target: 0.999",
		},
	)

	SLOLatencyP95 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p95_seconds",
			Help: "p95 latency in seconds over the last refresh window, target: 0.050",
		},
	)

	SLOLatencyP99 = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_latency_p99_seconds",
			Help: "p99 latency in seconds over the last refresh window, target: 0.200",
		},
	)

	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "5xx ratio (0-1) over the last refresh window, target: 0.001",
		},
	)
)
