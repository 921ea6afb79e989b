// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effect

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// TStat returns the two-sample (unpaired) Student's t statistic of a
// and b. Variances are pooled; equal population variances are
// assumed. It returns NaN if the test is undefined, for example when
// both groups have zero variance.
func TStat(a, b []float64) float64 {
	a, b = DropMissing(a), DropMissing(b)
	if len(a) == 0 || len(b) == 0 {
		return math.NaN()
	}
	res, err := stats.TwoSampleTTest(stats.Sample{Xs: a}, stats.Sample{Xs: b}, stats.LocationDiffers)
	if err != nil {
		return math.NaN()
	}
	return res.T
}

// FStat returns the one-way ANOVA F statistic treating membership in
// a or b as a two-level factor.
func FStat(a, b []float64) float64 {
	f, _ := ANOVA(a, b)
	return f
}

// ANOVA performs a one-way analysis of variance over groups and
// returns the F statistic and its p-value.
//
// Groups with no non-missing values are ignored. If fewer than two
// groups remain, or there are no within-group degrees of freedom, F
// and p are NaN. If every group is constant, F is +Inf when the group
// means differ and NaN otherwise.
func ANOVA(groups ...[]float64) (f, p float64) {
	var ms []moments
	var n, sum float64
	for _, g := range groups {
		m := momentsOf(g)
		if m.n == 0 {
			continue
		}
		ms = append(ms, m)
		n += m.n
		sum += m.mean * m.n
	}
	k := float64(len(ms))
	dfb, dfw := k-1, n-k
	if dfb <= 0 || dfw <= 0 {
		return math.NaN(), math.NaN()
	}
	grand := sum / n

	var ssb, ssw float64
	for _, m := range ms {
		d := m.mean - grand
		ssb += m.n * d * d
		ssw += m.ss
	}
	if ssw == 0 {
		if ssb == 0 {
			return math.NaN(), math.NaN()
		}
		return math.Inf(1), 0
	}
	f = (ssb / dfb) / (ssw / dfw)
	p = distuv.F{D1: dfb, D2: dfw}.Survival(f)
	return f, p
}
