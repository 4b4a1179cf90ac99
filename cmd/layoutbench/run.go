package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/golayout"
	"github.com/hupe1980/golayout/internal/simd"
	"github.com/hupe1980/golayout/layout"
	"github.com/hupe1980/golayout/testutil"
)

// workload is the key set and query stream shared by every policy.
type workload struct {
	keys    []int64
	needles []int64
}

func newWorkload(cfg *config) workload {
	rng := testutil.NewRNG(cfg.Seed)
	keys := testutil.UniqueKeys[int64](rng, cfg.Keys, int64(cfg.Keys)*16)

	var needles []int64
	if cfg.Zipf > 0 {
		hits := int(float64(cfg.Queries) * cfg.HitRate)
		needles = append(testutil.ZipfQueries(rng, keys, hits, cfg.Zipf),
			testutil.Queries(rng, keys, cfg.Queries-hits, 0)...)
		testutil.Shuffle(rng, needles)
	} else {
		needles = testutil.Queries(rng, keys, cfg.Queries, cfg.HitRate)
	}
	return workload{keys: keys, needles: needles}
}

// build constructs the configured policies in name order.
func build(cfg *config, w workload, logger *golayout.Logger, extra ...golayout.Option) ([]target, error) {
	names := slices.Clone(cfg.Policies)
	slices.Sort(names)

	opts := append([]golayout.Option{golayout.WithLogger(logger)}, extra...)
	targets := make([]target, 0, len(names))
	for _, name := range names {
		t, err := builders[name](w.keys, opts...)
		if err != nil {
			closeAll(targets)
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func closeAll(targets []target) {
	for _, t := range targets {
		_ = t.Close()
	}
}

func prepare(cfg *config) (workload, *golayout.Logger, error) {
	if err := cfg.validate(); err != nil {
		return workload{}, nil, err
	}
	logger, err := cfg.logger()
	if err != nil {
		return workload{}, nil, err
	}
	logger.Info("generating workload", "keys", cfg.Keys, "queries", cfg.Queries, "hit_rate", cfg.HitRate, "seed", cfg.Seed)
	return newWorkload(cfg), logger, nil
}

func nsPerOp(d time.Duration, ops int) float64 {
	if ops == 0 {
		return 0
	}
	return float64(d.Nanoseconds()) / float64(ops)
}

func runCompare(ctx context.Context, out io.Writer, cfg *config) error {
	w, logger, err := prepare(cfg)
	if err != nil {
		return err
	}
	targets, err := build(cfg, w, logger)
	if err != nil {
		return err
	}
	defer closeAll(targets)

	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tNS/LOOKUP\tHITS")
	for _, t := range targets {
		if err := ctxErr(ctx); err != nil {
			return err
		}
		hits := 0
		start := time.Now()
		for r := 0; r < cfg.Rounds; r++ {
			hits = t.lookupAll(w.needles)
		}
		elapsed := time.Since(start)
		fmt.Fprintf(tw, "%s\t%.1f\t%d\n", t.Policy(), nsPerOp(elapsed, cfg.Rounds*len(w.needles)), hits)
	}
	return tw.Flush()
}

func runBatch(ctx context.Context, out io.Writer, cfg *config) error {
	w, logger, err := prepare(cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tWIDTH\tNS/LOOKUP\tSPEEDUP\tHITS")

	for _, width := range cfg.Widths {
		targets, err := build(cfg, w, logger, golayout.WithBatchWidth(width))
		if err != nil {
			return err
		}

		for _, t := range targets {
			if err := ctxErr(ctx); err != nil {
				closeAll(targets)
				return err
			}

			start := time.Now()
			for r := 0; r < cfg.Rounds; r++ {
				t.lookupAll(w.needles)
			}
			single := time.Since(start)

			outIdx := make([]layout.UnorderedIndex, len(w.needles))
			hits := 0
			start = time.Now()
			for r := 0; r < cfg.Rounds; r++ {
				if hits, err = t.FindBatch(w.needles, outIdx); err != nil {
					closeAll(targets)
					return err
				}
			}
			batched := time.Since(start)

			ops := cfg.Rounds * len(w.needles)
			speedup := 0.0
			if batched > 0 {
				speedup = float64(single) / float64(batched)
			}
			fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.2fx\t%d\n", t.Policy(), width, nsPerOp(batched, ops), speedup, hits)
		}
		closeAll(targets)
	}
	return tw.Flush()
}

// loadStats collects per-lookup latencies from the load goroutines.
type loadStats struct {
	mu        sync.Mutex
	latencies []time.Duration
	hits      int
}

func (s *loadStats) add(lat []time.Duration, hits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latencies = append(s.latencies, lat...)
	s.hits += hits
}

// percentile returns the p-th percentile (0..100) of sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := int(float64(len(sorted)-1) * p / 100)
	return sorted[min(max(i, 0), len(sorted)-1)]
}

func runLoad(ctx context.Context, out io.Writer, cfg *config) error {
	if cfg.QPS <= 0 || cfg.Workers <= 0 {
		return fmt.Errorf("--qps and --workers must be positive")
	}
	w, logger, err := prepare(cfg)
	if err != nil {
		return err
	}
	targets, err := build(cfg, w, logger)
	if err != nil {
		return err
	}
	defer closeAll(targets)

	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "POLICY\tLOOKUPS\tQPS\tP50\tP99\tP999\tHITS")

	for _, t := range targets {
		stats, elapsed, err := loadTarget(ctx, cfg, w, t)
		if err != nil {
			return err
		}
		slices.Sort(stats.latencies)
		n := len(stats.latencies)
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%s\t%s\t%s\t%d\n", t.Policy(), n,
			float64(n)/elapsed.Seconds(),
			percentile(stats.latencies, 50),
			percentile(stats.latencies, 99),
			percentile(stats.latencies, 99.9),
			stats.hits)
		logger.Debug("load finished", "policy", t.Policy(), "lookups", n, "elapsed", elapsed)
	}
	return tw.Flush()
}

// loadTarget issues lookups against t at cfg.QPS for cfg.Duration. The
// limiter is shared, so the rate holds regardless of the worker count.
// Latency is measured from the scheduled start, so queueing behind a slow
// lookup is counted.
func loadTarget(ctx context.Context, cfg *config, w workload, t target) (*loadStats, time.Duration, error) {
	ctx, cancel := context.WithTimeout(orBackground(ctx), cfg.Duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(cfg.QPS), max(cfg.Burst, 1))
	stats := &loadStats{}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for worker := 0; worker < cfg.Workers; worker++ {
		g.Go(func() error {
			var lat []time.Duration
			hits := 0
			for i := worker; ; i += cfg.Workers {
				r := limiter.Reserve()
				scheduled := time.Now().Add(r.Delay())
				if !sleepUntil(gctx, scheduled) {
					r.Cancel()
					break
				}
				if t.Contains(w.needles[i%len(w.needles)]) {
					hits++
				}
				lat = append(lat, time.Since(scheduled))
			}
			stats.add(lat, hits)
			return nil
		})
	}
	err := g.Wait()
	return stats, time.Since(start), err
}

// sleepUntil waits until deadline and reports false if ctx ends first.
func sleepUntil(ctx context.Context, deadline time.Time) bool {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func printInfo(out io.Writer) {
	fmt.Fprintf(out, "isa: %s\n", simd.ActiveISA())
	fmt.Fprintf(out, "accelerated: %t\n", simd.Accelerated())
	fmt.Fprintf(out, "overridden: %t (%s)\n", simd.IsOverridden(), simd.EnvOverride)
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
