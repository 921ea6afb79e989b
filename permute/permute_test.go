// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permute

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/randdist"
	"github.com/groupcompare/shuffle/signif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	groupA = []float64{12.1, 9.8, 11.4, 10.2, 13.0, 8.7, 10.9, 12.4}
	groupB = []float64{14.2, 13.1, 15.8, 12.9, 14.7, 16.0, 13.5}
)

func opts(s Statistic, iters int) Options {
	o := DefaultOptions()
	o.Statistic = s
	o.Iterations = iters
	return o
}

func TestRunNullLength(t *testing.T) {
	ctx := context.Background()
	for _, s := range Statistics() {
		for _, iters := range []int{1, 7, 250} {
			res, err := Run(ctx, groupA, groupB, opts(s, iters))
			require.NoError(t, err, "%v/%d", s, iters)
			assert.Len(t, res.Null, iters, "%v/%d", s, iters)
			assert.Equal(t, len(groupA), res.N1)
			assert.Equal(t, len(groupB), res.N2)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	ctx := context.Background()
	for _, replacement := range []bool{true, false} {
		o := opts(CohensD, 500)
		o.Replacement = replacement
		r1, err := Run(ctx, groupA, groupB, o)
		require.NoError(t, err)
		r2, err := Run(ctx, groupA, groupB, o)
		require.NoError(t, err)

		assert.Equal(t, r1.Observed, r2.Observed)
		assert.Equal(t, r1.Z, r2.Z)
		assert.Equal(t, r1.P, r2.P)
		assert.Equal(t, r1.PLeft, r2.PLeft)
		assert.Equal(t, r1.PRight, r2.PRight)
		assert.Equal(t, r1.Null, r2.Null)
	}
}

func TestRunWorkersDoNotChangeResult(t *testing.T) {
	ctx := context.Background()
	o := opts(MedianDiff, 1000)
	want, err := Run(ctx, groupA, groupB, o)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 2000} {
		o.Workers = workers
		got, err := Run(ctx, groupA, groupB, o)
		require.NoError(t, err)
		assert.Equal(t, want.Null, got.Null, "workers=%d", workers)
		assert.Equal(t, want.Z, got.Z, "workers=%d", workers)
	}
}

func TestRunSeed(t *testing.T) {
	ctx := context.Background()
	o := opts(MeanDiff, 100)
	r1, err := Run(ctx, groupA, groupB, o)
	require.NoError(t, err)
	o.Seed = 17
	r2, err := Run(ctx, groupA, groupB, o)
	require.NoError(t, err)
	assert.Equal(t, r1.Observed, r2.Observed)
	assert.NotEqual(t, r1.Null, r2.Null)
}

func TestRunTails(t *testing.T) {
	res, err := Run(context.Background(), groupA, groupB, opts(TStat, 1000))
	require.NoError(t, err)
	assert.InDelta(t, 1, res.PLeft+res.PRight, 1e-12)
	assert.InDelta(t, 2*math.Min(res.PLeft, res.PRight), res.P, 1e-12)
	assert.Less(t, res.Observed, 0.0)
	assert.Less(t, res.PLeft, res.PRight)
}

func TestRunLargeEffect(t *testing.T) {
	a, err := randdist.Sample(randdist.Spec{Kind: randdist.Normal, A: 0, B: 10}, 1000, 1)
	require.NoError(t, err)
	b, err := randdist.Sample(randdist.Spec{Kind: randdist.Normal, A: 5, B: 10}, 1000, 2)
	require.NoError(t, err)

	res, err := Run(context.Background(), a, b, opts(CohensD, 1000))
	require.NoError(t, err)
	assert.Less(t, res.Observed, 0.0)
	assert.Less(t, res.P, 0.05)
	assert.Less(t, res.Z, 0.0)
}

func TestRunEmpiricalMethod(t *testing.T) {
	o := opts(MeanDiff, 400)
	o.Method = signif.Empirical
	res, err := Run(context.Background(), groupA, groupB, o)
	require.NoError(t, err)
	assert.Less(t, res.PLeft, 0.05)
	assert.Greater(t, res.PRight, 0.9)
	assert.GreaterOrEqual(t, res.P, res.PLeft)
}

func TestRunInvalidConfiguration(t *testing.T) {
	for _, iters := range []int{0, -3} {
		_, err := Run(context.Background(), groupA, groupB, opts(MeanDiff, iters))
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "iterations=%d: %v", iters, err)
	}

	o := opts(MeanDiff, 10)
	o.Missing = MissingPolicy(9)
	_, err := Run(context.Background(), groupA, groupB, o)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestRunUnsupportedStatistic(t *testing.T) {
	for _, s := range []Statistic{0, Statistic(len(statTable)), -1} {
		_, err := Run(context.Background(), groupA, groupB, opts(s, 10))
		assert.True(t, errors.Is(err, ErrUnsupportedStatistic), "%v: %v", s, err)
	}
}

func TestRunInvalidInput(t *testing.T) {
	nan := math.NaN()
	test := func(a, b []float64) {
		t.Helper()
		_, err := Run(context.Background(), a, b, opts(MeanDiff, 10))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("for %v, %v: got %v, want ErrInvalidInput", a, b, err)
		}
	}
	test(nil, groupB)
	test(groupA, []float64{})
	test([]float64{nan, nan}, groupB)

	// Cohen's d is undefined for two identical constant groups.
	_, err := Run(context.Background(), []float64{1, 1}, []float64{1, 1}, opts(CohensD, 10))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	// Distinct constant groups give an infinite Cohen's d, which
	// cannot be standardized either.
	res, err := Run(context.Background(), []float64{3, 3, 3}, []float64{2, 2, 2}, opts(CohensD, 200))
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	test([]float64{1, math.Inf(1)}, groupB)
	test(groupA, []float64{math.Inf(-1), 2})
}

func TestRunDegenerate(t *testing.T) {
	same := []float64{4, 4, 4, 4}
	o := opts(MeanDiff, 100)
	o.Replacement = false
	_, err := Run(context.Background(), same, same, o)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateDistribution), "%v", err)
}

func TestRunMissingPolicy(t *testing.T) {
	nan := math.NaN()
	a := []float64{1, nan, 2, 3, nan}
	b := []float64{4, 5, nan, 6}

	ctx := context.Background()
	res, err := Run(ctx, a, b, opts(MeanDiff, 200))
	require.NoError(t, err)
	assert.Equal(t, 5, res.N1)
	assert.Equal(t, 4, res.N2)
	assert.InDelta(t, -3, res.Observed, 1e-12)

	o := opts(MeanDiff, 200)
	o.Missing = DropMissing
	res, err = Run(ctx, a, b, o)
	require.NoError(t, err)
	assert.Equal(t, 3, res.N1)
	assert.Equal(t, 3, res.N2)
	assert.InDelta(t, -3, res.Observed, 1e-12)
	assert.Empty(t, res.Warnings)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := opts(MeanDiff, 1000)
	_, err := Run(ctx, groupA, groupB, o)
	assert.True(t, errors.Is(err, context.Canceled))

	o.Workers = 4
	_, err = Run(ctx, groupA, groupB, o)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunSummary(t *testing.T) {
	res, err := Run(context.Background(), groupA, groupB, opts(MeanDiff, 1000))
	require.NoError(t, err)
	s := res.Summary
	assert.Equal(t, 1000, s.N)
	assert.LessOrEqual(t, s.Min, s.Lo)
	assert.LessOrEqual(t, s.Lo, s.Center)
	assert.LessOrEqual(t, s.Center, s.Hi)
	assert.LessOrEqual(t, s.Hi, s.Max)
	assert.InDelta(t, 0, s.Mean, 1)
}

func TestResampler(t *testing.T) {
	pool := []float64{1, 2, 3, 4, 5, 6, 7}
	sorted := func(xs ...[]float64) []float64 {
		var out []float64
		for _, x := range xs {
			out = append(out, x...)
		}
		sort.Float64s(out)
		return out
	}

	for _, replacement := range []bool{true, false} {
		r := NewResampler(3, 0, replacement)
		for i := 0; i < 50; i++ {
			a, b := r.Resample(pool, 3)
			require.Len(t, a, 3)
			require.Len(t, b, 4)
			if !replacement {
				assert.Equal(t, pool, sorted(a, b))
			}
			for _, x := range append(a, b...) {
				assert.Contains(t, pool, x)
			}
		}
	}

	// Reseeding replays the same partition.
	r := NewResampler(0, 0, false)
	r.Seed(9, 1)
	a1, _ := r.Resample(pool, 3)
	first := append([]float64(nil), a1...)
	r.Seed(9, 1)
	a2, _ := r.Resample(pool, 3)
	assert.Equal(t, first, a2)
}

func TestParseStatistic(t *testing.T) {
	test := func(name string, want Statistic) {
		t.Helper()
		got, err := ParseStatistic(name)
		if err != nil {
			t.Errorf("%q: unexpected error %v", name, err)
		} else if got != want {
			t.Errorf("%q: got %v, want %v", name, got, want)
		}
	}
	test("mean", MeanDiff)
	test("Median", MedianDiff)
	test("t", TStat)
	test("f", FStat)
	test("F", FStat)
	test("cohensd", CohensD)
	test("hedge", HedgesG)
	test("CLIFF", CliffsDelta)
	test("probsup", ProbSuperiority)

	for _, s := range Statistics() {
		test(s.String(), s)
	}

	_, err := ParseStatistic("glass")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedStatistic))
	assert.Contains(t, err.Error(), `"glass"`)
	assert.Contains(t, errors.FlattenHints(err), "cohen")
}
