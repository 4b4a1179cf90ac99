package golayout

import (
	"log/slog"
	"runtime"
)

// DefaultBatchWidth is the number of lookups a batch keeps in flight.
const DefaultBatchWidth = 16

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	keyAllocator     any
	valueAllocator   any
	batchWidth       int
	parallelism      int
}

// Option configures Map construction and batch lookups.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := golayout.NewJSONLogger(slog.LevelDebug)
//	m, _ := golayout.New[int64, string, layout.Eytzinger[int64]](order, pairs, golayout.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &golayout.BasicMetricsCollector{}
//	m, _ := golayout.New[int64, string, layout.Sorted[int64]](order, pairs, golayout.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithKeyAllocator sets the allocator for the key array. a must implement
// alloc.Allocator[K] for the map's key type; New fails with
// ErrInvalidAllocator otherwise.
func WithKeyAllocator(a any) Option {
	return func(o *options) {
		o.keyAllocator = a
	}
}

// WithValueAllocator sets the allocator for the value array. a must
// implement alloc.Allocator[V] for the map's value type.
func WithValueAllocator(a any) Option {
	return func(o *options) {
		o.valueAllocator = a
	}
}

// WithBatchWidth sets how many lookups a batch keeps in flight.
// Values <= 0 select DefaultBatchWidth.
func WithBatchWidth(width int) Option {
	return func(o *options) {
		o.batchWidth = width
	}
}

// WithParallelism caps the goroutines FindBatchParallel uses.
// Values <= 0 select runtime.GOMAXPROCS(0).
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.batchWidth <= 0 {
		o.batchWidth = DefaultBatchWidth
	}
	if o.parallelism <= 0 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}
	return o
}
