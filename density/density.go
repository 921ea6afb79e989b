// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package density estimates the local density of points in a 2D
// scatter so that dense regions can be shaded differently.
//
// Points are binned on a square grid spanning the data, the bin
// counts are smoothed with a Gaussian kernel, and each point is
// assigned the smoothed count of its bin.
package density

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"gonum.org/v1/gonum/floats"
)

// Options configures Estimate.
type Options struct {
	// Bins is the number of grid cells along each axis. Zero
	// selects DefaultBins.
	Bins int

	// Sigma is the standard deviation of the smoothing kernel, in
	// bins. Zero selects DefaultSigma.
	Sigma float64
}

const (
	DefaultBins  = 64
	DefaultSigma = 2
)

// Estimate returns the density of each point (x[i], y[i]), scaled so
// the densest point has density 1. Points with a missing coordinate
// have density NaN.
func Estimate(x, y []float64, opts Options) ([]float64, error) {
	if len(x) != len(y) {
		return nil, errors.Wrapf(effect.ErrInvalidInput, "paired groups differ in length: %d and %d", len(x), len(y))
	}
	if opts.Bins == 0 {
		opts.Bins = DefaultBins
	}
	if opts.Sigma == 0 {
		opts.Sigma = DefaultSigma
	}
	if opts.Bins < 0 || opts.Sigma < 0 {
		return nil, errors.Newf("invalid density options %+v", opts)
	}

	var xs, ys []float64
	for i := range x {
		if !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	out := make([]float64, len(x))
	if len(xs) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}

	bins := opts.Bins
	xb, yb := newAxis(xs, bins), newAxis(ys, bins)
	grid := make([]float64, bins*bins)
	for i := range xs {
		grid[yb.bin(ys[i])*bins+xb.bin(xs[i])]++
	}
	smooth(grid, bins, opts.Sigma)

	max := floats.Max(grid)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = grid[yb.bin(y[i])*bins+xb.bin(x[i])] / max
	}
	return out, nil
}

type axis struct {
	min, width float64
	bins       int
}

func newAxis(vals []float64, bins int) axis {
	lo, hi := floats.Min(vals), floats.Max(vals)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return axis{lo, (hi - lo) / float64(bins), bins}
}

func (a axis) bin(v float64) int {
	b := int((v - a.min) / a.width)
	if b < 0 {
		return 0
	}
	if b >= a.bins {
		return a.bins - 1
	}
	return b
}

// smooth convolves the n×n grid with a separable Gaussian kernel,
// treating cells outside the grid as empty.
func smooth(grid []float64, n int, sigma float64) {
	if sigma == 0 {
		return
	}
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		k := float64(i - radius)
		kernel[i] = math.Exp(-k * k / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	tmp := make([]float64, len(grid))
	// Rows, then columns.
	for pass := 0; pass < 2; pass++ {
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				var sum float64
				for k, w := range kernel {
					cc := c + k - radius
					if cc < 0 || cc >= n {
						continue
					}
					if pass == 0 {
						sum += w * grid[r*n+cc]
					} else {
						sum += w * grid[cc*n+r]
					}
				}
				if pass == 0 {
					tmp[r*n+c] = sum
				} else {
					tmp[c*n+r] = sum
				}
			}
		}
		copy(grid, tmp)
	}
}
