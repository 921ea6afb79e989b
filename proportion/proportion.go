// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proportion compares two independent proportions with the
// N-1 chi-squared test.
//
// The N-1 variant scales Pearson's chi-squared statistic by (N-1)/N,
// which keeps the test accurate for small expected counts (Campbell
// 2007; Richardson 2011). Confidence intervals use Wilson's score
// interval for each proportion and Newcombe's hybrid score interval
// for their difference.
package proportion

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence is the default confidence level of intervals.
const DefaultConfidence = 0.95

// An Interval is a closed confidence interval.
type Interval struct {
	Lo, Hi float64
}

// Contains reports whether x lies in the interval.
func (i Interval) Contains(x float64) bool {
	return i.Lo <= x && x <= i.Hi
}

// Result is the outcome of a two-proportion comparison.
type Result struct {
	P1, P2 float64

	// Diff is P1 - P2.
	Diff float64

	// Chi2 is the N-1 chi-squared statistic with one degree of
	// freedom and P its p-value.
	Chi2, P float64

	// CI1, CI2 and CIDiff are confidence intervals for P1, P2 and
	// Diff at level Confidence.
	CI1, CI2, CIDiff Interval

	Confidence float64
}

// Test compares x1 successes out of n1 trials with x2 successes out
// of n2 trials. confidence is the level of the returned intervals, in
// (0, 1); zero selects DefaultConfidence.
func Test(x1, n1, x2, n2 int, confidence float64) (Result, error) {
	if confidence == 0 {
		confidence = DefaultConfidence
	}
	if !(confidence > 0 && confidence < 1) {
		return Result{}, errors.Wrapf(effect.ErrInvalidInput, "confidence %v not in (0, 1)", confidence)
	}
	for _, g := range []struct {
		name string
		x, n int
	}{{"1", x1, n1}, {"2", x2, n2}} {
		if g.n <= 0 || g.x < 0 || g.x > g.n {
			return Result{}, errors.Wrapf(effect.ErrInvalidInput, "group %s: %d successes out of %d trials", g.name, g.x, g.n)
		}
	}

	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	r := Result{
		P1:         float64(x1) / float64(n1),
		P2:         float64(x2) / float64(n2),
		Confidence: confidence,
	}
	r.Diff = r.P1 - r.P2
	r.Chi2 = chi2(x1, n1, x2, n2)
	r.P = distuv.ChiSquared{K: 1}.Survival(r.Chi2)
	r.CI1 = Wilson(x1, n1, z)
	r.CI2 = Wilson(x2, n2, z)
	r.CIDiff = newcombe(r.P1, r.P2, r.CI1, r.CI2)
	return r, nil
}

// chi2 returns the N-1 chi-squared statistic of the 2x2 table
//
//	a b | n1
//	c d | n2
//
// where a and c are successes. A table with an empty margin has no
// association and yields 0.
func chi2(x1, n1, x2, n2 int) float64 {
	a, b := float64(x1), float64(n1-x1)
	c, d := float64(x2), float64(n2-x2)
	n := a + b + c + d
	denom := (a + b) * (c + d) * (a + c) * (b + d)
	if denom == 0 {
		return 0
	}
	cross := a*d - b*c
	return cross * cross * (n - 1) / denom
}

// Wilson returns the Wilson score interval for x successes out of n
// trials at critical value z.
func Wilson(x, n int, z float64) Interval {
	nf := float64(n)
	p := float64(x) / nf
	z2 := z * z
	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	half := z / denom * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf))
	return Interval{math.Max(0, center-half), math.Min(1, center+half)}
}

// newcombe combines the Wilson intervals of two proportions into an
// interval for their difference (Newcombe 1998, method 10).
func newcombe(p1, p2 float64, ci1, ci2 Interval) Interval {
	d := p1 - p2
	lo := d - math.Hypot(p1-ci1.Lo, ci2.Hi-p2)
	hi := d + math.Hypot(ci1.Hi-p1, p2-ci2.Lo)
	return Interval{lo, hi}
}
