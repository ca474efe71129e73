package coordinator

import (
	"sync/atomic"
	"time"
)

// Metrics tracks sync statistics using atomic operations for thread-safety
type Metrics struct {
	Reorders        atomic.Int64
	NoOps           atomic.Int64
	Writes          atomic.Int64
	WriteFailures   atomic.Int64
	Reconciliations atomic.Int64
	Fetches         atomic.Int64
	FetchFailures   atomic.Int64
	Reverts         atomic.Int64
	StartTime       time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	Reorders        int64     `json:"reorders"`
	NoOps           int64     `json:"no_ops"`
	Writes          int64     `json:"writes"`
	WriteFailures   int64     `json:"write_failures"`
	Reconciliations int64     `json:"reconciliations"`
	Fetches         int64     `json:"fetches"`
	FetchFailures   int64     `json:"fetch_failures"`
	Reverts         int64     `json:"reverts"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Reorders:        m.Reorders.Load(),
		NoOps:           m.NoOps.Load(),
		Writes:          m.Writes.Load(),
		WriteFailures:   m.WriteFailures.Load(),
		Reconciliations: m.Reconciliations.Load(),
		Fetches:         m.Fetches.Load(),
		FetchFailures:   m.FetchFailures.Load(),
		Reverts:         m.Reverts.Load(),
		StartTime:       m.StartTime,
		Uptime:          time.Since(m.StartTime).String(),
	}
}
