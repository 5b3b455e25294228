package gateway

import (
	"sync/atomic"
	"time"
)

// Metrics tracks calls to the remote API
type Metrics struct {
	calls   int64
	errors  int64
	retries int64
	latency int64 // Total latency in nanoseconds
}

// Snapshot is a point-in-time copy of Metrics
type Snapshot struct {
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	Retries          int64   `json:"retries"`
	AverageLatencyMs float64 `json:"avg_latency_ms"`
	ErrorRate        float64 `json:"error_rate_pct"`
}

func (m *Metrics) Snapshot() Snapshot {
	calls := atomic.LoadInt64(&m.calls)
	errs := atomic.LoadInt64(&m.errors)
	latency := atomic.LoadInt64(&m.latency)

	s := Snapshot{
		Calls:   calls,
		Errors:  errs,
		Retries: atomic.LoadInt64(&m.retries),
	}
	if calls > 0 {
		s.AverageLatencyMs = float64(latency) / float64(calls) / 1e6
		s.ErrorRate = float64(errs) / float64(calls) * 100
	}
	return s
}

func (m *Metrics) recordCall(duration time.Duration, err error) {
	atomic.AddInt64(&m.calls, 1)
	atomic.AddInt64(&m.latency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&m.errors, 1)
	}
}

func (m *Metrics) recordRetry() {
	atomic.AddInt64(&m.retries, 1)
}
