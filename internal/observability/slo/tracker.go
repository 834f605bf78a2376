package slo

import (
	"math"
	"net/http"
	"slices"
	"sync"
	"time"

	"magazine-catalog/internal/handler/http/responsewriter"
)

// defaultSampleSize bounds the latency samples kept per window.
const defaultSampleSize = 4096

// Snapshot is the SLI summary of one refresh window.
type Snapshot struct {
	Requests     int64
	Errors       int64
	Availability float64
	ErrorRate    float64
	P95          time.Duration
	P99          time.Duration
}

// MeetsObjectives reports whether every indicator is within its target.
func (s Snapshot) MeetsObjectives() bool {
	return s.Availability >= AvailabilitySLO &&
		s.ErrorRate <= ErrorRateSLO &&
		s.P95.Seconds() <= LatencyP95SLO &&
		s.P99.Seconds() <= LatencyP99SLO
}

// Tracker accumulates request outcomes between refreshes.
// Latencies are kept in a ring of the most recent samples.
type Tracker struct {
	mu       sync.Mutex
	requests int64
	errors   int64
	samples  []time.Duration
	next     int
	size     int
	now      func() time.Time
}

// NewTracker creates a Tracker with the default sample size.
func NewTracker() *Tracker {
	return &Tracker{size: defaultSampleSize, now: time.Now}
}

// Middleware observes the status and duration of every request.
func (t *Tracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := t.now()
		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r)
		t.Observe(rw.StatusCode(), t.now().Sub(start))
	})
}

// Observe records one request.
func (t *Tracker) Observe(status int, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests++
	if status >= 500 {
		t.errors++
	}
	if len(t.samples) < t.size {
		t.samples = append(t.samples, d)
		return
	}
	t.samples[t.next] = d
	t.next = (t.next + 1) % t.size
}

// Refresh publishes the current window to the SLO gauges and starts a new window.
// An empty window counts as fully available with zero latency.
func (t *Tracker) Refresh() Snapshot {
	t.mu.Lock()
	requests, errs := t.requests, t.errors
	samples := t.samples
	t.requests, t.errors, t.samples, t.next = 0, 0, nil, 0
	t.mu.Unlock()

	snap := Snapshot{Requests: requests, Errors: errs, Availability: 1}
	if requests > 0 {
		snap.ErrorRate = float64(errs) / float64(requests)
		snap.Availability = 1 - snap.ErrorRate
	}
	slices.Sort(samples)
	snap.P95 = quantile(samples, 0.95)
	snap.P99 = quantile(samples, 0.99)

	SLOAvailability.Set(snap.Availability)
	SLOErrorRate.Set(snap.ErrorRate)
	SLOLatencyP95.Set(snap.P95.Seconds())
	SLOLatencyP99.Set(snap.P99.Seconds())
	return snap
}

// quantile uses the nearest-rank method on sorted samples.
func quantile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(q*float64(len(sorted)))) - 1
	return sorted[max(rank, 0)]
}
