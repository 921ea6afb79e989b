// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permute

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	mstats "github.com/montanaflynn/stats"
)

// A Summary describes the finite values of a null distribution.
type Summary struct {
	N int

	Mean, StdDev float64

	// Center is the median.
	Center float64

	// Lo and Hi are the 2.5th and 97.5th percentiles.
	Lo, Hi float64

	Min, Max float64
}

// Summarize returns a Summary of the finite values in null. null is
// not modified.
func Summarize(null []float64) Summary {
	xs := make([]float64, 0, len(null))
	for _, x := range null {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Center: nan, Lo: nan, Hi: nan, Min: nan, Max: nan}
	}

	samp := stats.Sample{Xs: xs}
	// Speed up order statistics.
	samp.Sort()
	s := Summary{N: len(xs), Mean: samp.Mean(), StdDev: math.NaN()}
	if len(xs) > 1 {
		s.StdDev = samp.StdDev()
	}
	s.Min, s.Max = samp.Bounds()
	s.Center, _ = mstats.Median(samp.Xs)
	// Percentile rejects ranks below the first observation.
	var err error
	if s.Lo, err = mstats.Percentile(samp.Xs, 2.5); err != nil {
		s.Lo = s.Min
	}
	if s.Hi, err = mstats.Percentile(samp.Xs, 97.5); err != nil {
		s.Hi = s.Max
	}
	return s
}
