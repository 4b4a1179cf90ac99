package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/hupe1980/golayout"
)

// config is the command-line configuration shared by all subcommands.
type config struct {
	Keys     int
	Queries  int
	HitRate  float64
	Zipf     float64 // query skew; 0 draws queries uniformly
	Seed     int64
	Rounds   int
	Widths   []int
	Policies []string
	LogLevel string

	QPS      float64
	Burst    int
	Duration time.Duration
	Workers  int
}

func defaultConfig() *config {
	return &config{
		Keys:     1 << 20,
		Queries:  1 << 16,
		HitRate:  0.9,
		Seed:     42,
		Rounds:   5,
		Widths:   []int{1, 4, 8, 16, 32},
		Policies: policyNames(),
		LogLevel: "info",
		QPS:      100000,
		Burst:    64,
		Duration: 3 * time.Second,
		Workers:  1,
	}
}

func (def *config) Flags(flags *pflag.FlagSet) {
	flags.IntVar(&def.Keys, "keys", def.Keys, "Number of keys per map")
	flags.IntVar(&def.Queries, "queries", def.Queries, "Number of distinct queries")
	flags.Float64Var(&def.HitRate, "hit-rate", def.HitRate, "Fraction of queries that hit a key")
	flags.Float64Var(&def.Zipf, "zipf", def.Zipf, "Zipf skew of hitting queries (0 for uniform)")
	flags.Int64Var(&def.Seed, "seed", def.Seed, "Random seed")
	flags.IntVar(&def.Rounds, "rounds", def.Rounds, "Passes over the query set")
	flags.IntSliceVar(&def.Widths, "widths", def.Widths, "AMAC batch widths")
	flags.StringSliceVar(&def.Policies, "policies", def.Policies, "Policies to run ("+strings.Join(policyNames(), ", ")+")")
	flags.StringVar(&def.LogLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
}

func (def *config) LoadFlags(flags *pflag.FlagSet) {
	flags.Float64Var(&def.QPS, "qps", def.QPS, "Target lookups per second")
	flags.IntVar(&def.Burst, "burst", def.Burst, "Rate limiter burst")
	flags.DurationVar(&def.Duration, "duration", def.Duration, "Length of the run")
	flags.IntVar(&def.Workers, "workers", def.Workers, "Concurrent load goroutines")
}

func (def *config) validate() error {
	switch {
	case def.Keys <= 0:
		return fmt.Errorf("--keys must be positive, got %d", def.Keys)
	case def.Queries <= 0:
		return fmt.Errorf("--queries must be positive, got %d", def.Queries)
	case def.HitRate < 0 || def.HitRate > 1:
		return fmt.Errorf("--hit-rate must be in [0, 1], got %g", def.HitRate)
	case def.Rounds <= 0:
		return fmt.Errorf("--rounds must be positive, got %d", def.Rounds)
	}
	for _, w := range def.Widths {
		if w <= 0 {
			return fmt.Errorf("--widths must be positive, got %d", w)
		}
	}
	for _, p := range def.Policies {
		if _, ok := builders[p]; !ok {
			return fmt.Errorf("unknown policy %q", p)
		}
	}
	return nil
}

func (def *config) logger() (*golayout.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(def.LogLevel)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return golayout.NewTextLogger(level), nil
}
