package golayout

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    builds  prometheus.Counter
//	    batches prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBuild(policy string, count, duplicates int, d time.Duration, err error) {
//	    p.builds.Inc()
//	}
type MetricsCollector interface {
	// RecordBuild is called after each map construction.
	// count is the number of stored elements, duplicates the number of
	// input pairs dropped by de-duplication.
	RecordBuild(policy string, count, duplicates int, duration time.Duration, err error)

	// RecordBatch is called after each batched lookup.
	// needles is the number of lookups, hits the number that found a key.
	RecordBatch(policy string, needles, hits int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(string, int, int, time.Duration)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildElements   atomic.Int64
	BuildDuplicates atomic.Int64
	BuildTotalNanos atomic.Int64
	BatchCount      atomic.Int64
	BatchNeedles    atomic.Int64
	BatchHits       atomic.Int64
	BatchTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ string, count, duplicates int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildElements.Add(int64(count))
	b.BuildDuplicates.Add(int64(duplicates))
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(_ string, needles, hits int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchNeedles.Add(int64(needles))
	b.BatchHits.Add(int64(hits))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:         b.BuildCount.Load(),
		BuildErrors:        b.BuildErrors.Load(),
		BuildElements:      b.BuildElements.Load(),
		BuildDuplicates:    b.BuildDuplicates.Load(),
		BuildAvgNanos:      avgNanos(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		BatchCount:         b.BatchCount.Load(),
		BatchNeedles:       b.BatchNeedles.Load(),
		BatchHits:          b.BatchHits.Load(),
		BatchAvgNanosPerOp: avgNanos(b.BatchTotalNanos.Load(), b.BatchNeedles.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount         int64
	BuildErrors        int64
	BuildElements      int64
	BuildDuplicates    int64
	BuildAvgNanos      int64
	BatchCount         int64
	BatchNeedles       int64
	BatchHits          int64
	BatchAvgNanosPerOp int64
}
