// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package permute implements a permutation (shuffle) significance test
// for a difference between two groups.
//
// Run computes a Statistic on the original groups, then repeatedly
// pools both groups, draws a random partition of the pool into groups
// of the original sizes, and recomputes the statistic. The resulting
// null distribution is summarized by package signif.
//
// Runs are reproducible: the random stream is seeded from
// Options.Seed at the start of every Run, and every iteration draws
// from its own stream derived from that seed, so results are
// bit-identical regardless of Options.Workers.
package permute

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"github.com/groupcompare/shuffle/signif"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidInput is returned for an empty or all-missing group,
	// or an observed statistic that is undefined.
	ErrInvalidInput = effect.ErrInvalidInput

	// ErrUnsupportedStatistic is returned for a statistic outside the
	// enumerated set.
	ErrUnsupportedStatistic = errors.New("unsupported statistic")

	// ErrInvalidConfiguration is returned for Options that cannot be
	// run, such as a non-positive iteration count.
	ErrInvalidConfiguration = signif.ErrInvalidConfiguration

	// ErrDegenerateDistribution is returned when the null
	// distribution has zero spread.
	ErrDegenerateDistribution = signif.ErrDegenerateDistribution
)

const (
	// DefaultIterations is the default number of resamples.
	DefaultIterations = 1000

	// DefaultSeed seeds the random stream of every Run unless the
	// caller overrides it.
	DefaultSeed = 0
)

// seedStream selects the PCG stream of the master generator that
// derives per-iteration seeds.
const seedStream = 0x5eed

// MissingPolicy controls how missing (NaN) observations enter the
// resampling pool.
type MissingPolicy int

const (
	// RetainMissing keeps missing observations in the pool, so they
	// count toward group sizes, and leaves their exclusion to each
	// statistic.
	RetainMissing MissingPolicy = iota
	// DropMissing removes missing observations from both groups
	// before computing anything.
	DropMissing
)

func (p MissingPolicy) String() string {
	switch p {
	case RetainMissing:
		return "retain"
	case DropMissing:
		return "drop"
	}
	return fmt.Sprintf("MissingPolicy(%d)", int(p))
}

// ParseMissingPolicy returns the MissingPolicy named s.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "retain":
		return RetainMissing, nil
	case "drop":
		return DropMissing, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown missing-value policy %q", s)
}

// Options configures a permutation test. Callers should start from
// DefaultOptions because the zero Options is not runnable.
type Options struct {
	Statistic Statistic

	// Iterations is the number of resamples. It must be positive.
	Iterations int

	// Replacement selects sampling with replacement. If false,
	// every resample is a permutation of the pool.
	Replacement bool

	Seed uint64

	Missing MissingPolicy

	// Method selects how p-values are derived from the null
	// distribution.
	Method signif.Method

	// Workers is the number of goroutines computing resamples.
	// Values below 2 run sequentially.
	Workers int

	// Logger, if non-nil, receives a debug record for every run.
	Logger *slog.Logger
}

// DefaultOptions returns the default configuration: mean difference,
// DefaultIterations resamples with replacement, DefaultSeed, missing
// values retained, and normal-approximation p-values.
func DefaultOptions() Options {
	return Options{
		Statistic:   MeanDiff,
		Iterations:  DefaultIterations,
		Replacement: true,
		Seed:        DefaultSeed,
		Missing:     RetainMissing,
		Method:      signif.Normal,
		Workers:     1,
	}
}

// Result is the outcome of a permutation test.
type Result struct {
	Statistic Statistic

	// Observed is the statistic of the original groups.
	Observed float64

	// Z is Observed standardized against Null.
	Z float64

	// P is the two-tailed p-value. PLeft and PRight are the
	// one-tailed p-values.
	P, PLeft, PRight float64

	// Null holds one statistic per resample, in iteration order.
	// Its length always equals Options.Iterations.
	Null []float64

	Summary Summary

	// N1 and N2 are the sizes of the groups that were pooled.
	N1, N2 int

	// Warnings lists caveats that should be reported with the
	// result.
	Warnings []error
}

// Run performs a permutation test of a against b.
func Run(ctx context.Context, a, b []float64, opts Options) (*Result, error) {
	start := time.Now()

	fn, err := opts.Statistic.Func()
	if err != nil {
		return nil, err
	}
	if opts.Iterations <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "iterations must be positive, got %d", opts.Iterations)
	}
	switch opts.Missing {
	case RetainMissing:
	case DropMissing:
		a, b = effect.DropMissing(a), effect.DropMissing(b)
	default:
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown missing-value policy %v", opts.Missing)
	}
	if err := effect.Validate("a", a); err != nil {
		return nil, err
	}
	if err := effect.Validate("b", b); err != nil {
		return nil, err
	}

	observed := fn(a, b)
	if math.IsNaN(observed) || math.IsInf(observed, 0) {
		return nil, errors.Wrapf(ErrInvalidInput, "statistic %v is %v for the observed groups", opts.Statistic, observed)
	}

	pool := make([]float64, 0, len(a)+len(b))
	pool = append(pool, a...)
	pool = append(pool, b...)

	null, err := resampleAll(ctx, pool, len(a), fn, opts)
	if err != nil {
		return nil, err
	}

	ev, err := signif.Evaluate(observed, null, opts.Method)
	if err != nil {
		return nil, errors.Wrapf(err, "evaluating %v", opts.Statistic)
	}

	res := &Result{
		Statistic: opts.Statistic,
		Observed:  observed,
		Z:         ev.Z,
		P:         ev.P,
		PLeft:     ev.PLeft,
		PRight:    ev.PRight,
		Null:      null,
		Summary:   Summarize(null),
		N1:        len(a),
		N2:        len(b),
		Warnings:  ev.Warnings,
	}

	if opts.Logger != nil {
		opts.Logger.LogAttrs(ctx, slog.LevelDebug, "permutation test",
			slog.String("statistic", opts.Statistic.String()),
			slog.Int("iterations", opts.Iterations),
			slog.Bool("replacement", opts.Replacement),
			slog.Uint64("seed", opts.Seed),
			slog.Int("workers", opts.Workers),
			slog.Float64("observed", observed),
			slog.Float64("z", ev.Z),
			slog.Duration("elapsed", time.Since(start)))
	}
	return res, nil
}

// resampleAll computes the null distribution. The master stream is
// seeded once; it pre-draws one seed per iteration so that the
// iteration-to-stream mapping does not depend on scheduling.
func resampleAll(ctx context.Context, pool []float64, na int, fn Func, opts Options) ([]float64, error) {
	master := rand.New(rand.NewPCG(opts.Seed, seedStream))
	seeds := make([]uint64, opts.Iterations)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}
	null := make([]float64, opts.Iterations)

	// run fills null[lo:hi]. Each call writes a disjoint range.
	run := func(lo, hi int) error {
		r := NewResampler(0, 0, opts.Replacement)
		for i := lo; i < hi; i++ {
			if i%256 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			r.Seed(seeds[i], uint64(i))
			a, b := r.Resample(pool, na)
			null[i] = fn(a, b)
		}
		return nil
	}

	workers := opts.Workers
	if workers > opts.Iterations {
		workers = opts.Iterations
	}
	if workers < 2 {
		if err := run(0, opts.Iterations); err != nil {
			return nil, err
		}
		return null, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (opts.Iterations + workers - 1) / workers
	for lo := 0; lo < opts.Iterations; lo += chunk {
		lo, hi := lo, min(lo+chunk, opts.Iterations)
		g.Go(func() error { return run(lo, hi) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return null, nil
}
