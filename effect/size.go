// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"math"
	"sort"
)

// MeanDiff returns Mean(a) - Mean(b).
func MeanDiff(a, b []float64) float64 {
	return Mean(a) - Mean(b)
}

// MedianDiff returns Median(a) - Median(b).
func MedianDiff(a, b []float64) float64 {
	return Median(a) - Median(b)
}

// CohensD returns the standardized mean difference of a and b using
// the pooled standard deviation as the denominator.
func CohensD(a, b []float64) float64 {
	ma, mb := momentsOf(a), momentsOf(b)
	return (ma.mean - mb.mean) / pooledStdDev(ma, mb)
}

// HedgesG returns Cohen's d with the small-sample bias correction
// 1 - 3/(4*(na+nb)-9) applied.
func HedgesG(a, b []float64) float64 {
	ma, mb := momentsOf(a), momentsOf(b)
	d := (ma.mean - mb.mean) / pooledStdDev(ma, mb)
	return d * (1 - 3/(4*(ma.n+mb.n)-9))
}

// GlassDelta returns the mean difference of a and b standardized by
// the standard deviation of b, the control group.
func GlassDelta(a, b []float64) float64 {
	return (Mean(a) - Mean(b)) / StdDev(b)
}

// dominance counts, over all pairs (a[i], b[j]) of non-missing values,
// how many have a[i] > b[j], a[i] < b[j], and a[i] == b[j].
func dominance(a, b []float64) (gt, lt, eq, pairs float64) {
	a, b = DropMissing(a), DropMissing(b)
	if len(a) == 0 || len(b) == 0 {
		return
	}
	sb := make([]float64, len(b))
	copy(sb, b)
	sort.Float64s(sb)
	for _, x := range a {
		below := sort.SearchFloat64s(sb, x)
		notAbove := sort.Search(len(sb), func(i int) bool { return sb[i] > x })
		gt += float64(below)
		eq += float64(notAbove - below)
		lt += float64(len(sb) - notAbove)
	}
	pairs = float64(len(a)) * float64(len(b))
	return
}

// CliffsDelta returns (#(a>b) - #(a<b)) / (na*nb) over all pairs.
// Ties contribute to neither count. The result lies in [-1, 1].
func CliffsDelta(a, b []float64) float64 {
	gt, lt, _, pairs := dominance(a, b)
	if pairs == 0 {
		return math.NaN()
	}
	return (gt - lt) / pairs
}

// ProbSuperiority returns the probability that a random observation
// from a exceeds one from b, counting ties as one half. The result
// lies in [0, 1].
func ProbSuperiority(a, b []float64) float64 {
	gt, _, eq, pairs := dominance(a, b)
	if pairs == 0 {
		return math.NaN()
	}
	return (gt + 0.5*eq) / pairs
}

// Sizes collects every two-group statistic for a pair of groups.
type Sizes struct {
	N1, N2 int // non-missing observations

	MeanDiff, MedianDiff float64

	T, F, P float64 // pooled t, one-way ANOVA F and its p-value

	CohensD, HedgesG, GlassDelta float64

	CliffsDelta, ProbSuperiority float64
}

// Compute validates a and b and returns all of their effect sizes.
func Compute(a, b []float64) (Sizes, error) {
	if err := Validate("a", a); err != nil {
		return Sizes{}, err
	}
	if err := Validate("b", b); err != nil {
		return Sizes{}, err
	}
	f, p := ANOVA(a, b)
	return Sizes{
		N1:              len(DropMissing(a)),
		N2:              len(DropMissing(b)),
		MeanDiff:        MeanDiff(a, b),
		MedianDiff:      MedianDiff(a, b),
		T:               TStat(a, b),
		F:               f,
		P:               p,
		CohensD:         CohensD(a, b),
		HedgesG:         HedgesG(a, b),
		GlassDelta:      GlassDelta(a, b),
		CliffsDelta:     CliffsDelta(a, b),
		ProbSuperiority: ProbSuperiority(a, b),
	}, nil
}
