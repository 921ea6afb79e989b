// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HistOptions configures NullHistogram.
type HistOptions struct {
	Bins          int // zero means 40
	Width, Height float64
	Title         string
}

// NullHistogram writes an SVG histogram of the finite values of null
// to w, with a vertical line marking observed.
func NullHistogram(w io.Writer, null []float64, observed float64, opts HistOptions) error {
	if opts.Bins <= 0 {
		opts.Bins = 40
	}
	if opts.Width <= 0 {
		opts.Width = 480
	}
	if opts.Height <= 0 {
		opts.Height = 320
	}

	xs := make([]float64, 0, len(null))
	for _, x := range null {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return errors.New("null distribution has no finite values")
	}
	sort.Float64s(xs)

	lo, hi := xs[0], xs[len(xs)-1]
	if !math.IsNaN(observed) && !math.IsInf(observed, 0) {
		lo, hi = math.Min(lo, observed), math.Max(hi, observed)
	}
	lo, hi = expand(lo, hi)
	// Histogram excludes the upper bound of the last bin.
	dividers := floats.Span(make([]float64, opts.Bins+1), lo, math.Nextafter(hi, math.Inf(1)))
	counts := stat.Histogram(nil, dividers, xs, nil)

	m := defaultMargins
	if opts.Title != "" {
		m.Top += labelFontSize * 2
	}
	f := newFrame(lo, hi, 0, floats.Max(counts), opts.Width, opts.Height, m)

	s := new(svg)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		path := svgPathRect(f.x.Map(dividers[i]), f.y.Map(0), f.x.Map(dividers[i+1]), f.y.Map(c))
		fmt.Fprintf(s, `  <path d="%s" fill="%s" stroke="white" stroke-width="0.5"><title>%s to %s: %d</title></path>`+"\n",
			path, svgColor(ramp(0)), formatValue(dividers[i]), formatValue(dividers[i+1]), int(c))
	}

	// Axis and range labels.
	base := f.y.Map(0)
	fmt.Fprintf(s, `  <path d="M%f %fH%f" stroke="black" stroke-width="1px" />`+"\n", f.x.Map(lo), base, f.x.Map(hi))
	fmt.Fprintf(s, `  <text x="%f" y="%f" font-size="%d" text-anchor="start">%s</text>`+"\n", f.x.Map(lo), base+labelFontSize*1.5, labelFontSize, formatValue(lo))
	fmt.Fprintf(s, `  <text x="%f" y="%f" font-size="%d" text-anchor="end">%s</text>`+"\n", f.x.Map(hi), base+labelFontSize*1.5, labelFontSize, formatValue(hi))

	if !math.IsNaN(observed) && !math.IsInf(observed, 0) {
		ox := f.x.Map(observed)
		fmt.Fprintf(s, `  <path d="M%f %fV%f" stroke="%s" stroke-width="2px" stroke-dasharray="4 2" />`+"\n", ox, base, m.Top, svgColor(ramp(1)))
		fmt.Fprintf(s, `  <text x="%f" y="%f" font-size="%d" text-anchor="middle">observed %s</text>`+"\n", ox, m.Top-labelFontSize/2, labelFontSize, formatValue(observed))
	}
	if opts.Title != "" {
		fmt.Fprintf(s, `  <text x="%f" y="%d" font-size="%d" text-anchor="middle">%s</text>`+"\n", opts.Width/2, labelFontSize*3/2, labelFontSize*6/5, opts.Title)
	}
	return s.finish(w, opts.Width, opts.Height)
}

// Scatter writes an SVG scatter plot of the points (x[i], y[i]) to w.
// If dens is non-nil, it gives each point's density in [0, 1], which
// selects its color. Points with a missing coordinate are skipped.
func Scatter(w io.Writer, x, y, dens []float64, width, height float64) error {
	if len(x) != len(y) || (dens != nil && len(dens) != len(x)) {
		return errors.Wrapf(effect.ErrInvalidInput, "scatter series differ in length: %d, %d, %d", len(x), len(y), len(dens))
	}
	xs, ys := effect.DropMissing(x), effect.DropMissing(y)
	if len(xs) == 0 || len(ys) == 0 {
		return errors.Wrap(effect.ErrInvalidInput, "scatter has no complete points")
	}
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 400
	}
	xlo, xhi := expand(floats.Min(xs), floats.Max(xs))
	ylo, yhi := expand(floats.Min(ys), floats.Max(ys))
	f := newFrame(xlo, xhi, ylo, yhi, width, height, defaultMargins)

	// Draw sparse points first so dense ones stay visible.
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	if dens != nil {
		key := func(i int) float64 {
			if math.IsNaN(dens[i]) {
				return -1
			}
			return dens[i]
		}
		sort.SliceStable(order, func(i, j int) bool { return key(order[i]) < key(order[j]) })
	}

	s := new(svg)
	clip := s.genID("clip")
	fmt.Fprintf(s, `  <clipPath id="%s"><path d="%s" /></clipPath>`+"\n", clip,
		svgPathRect(f.x.Map(xlo), f.y.Map(ylo), f.x.Map(xhi), f.y.Map(yhi)))
	fmt.Fprintf(s, `  <g clip-path="url(#%s)">`+"\n", clip)
	for _, i := range order {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		t := 0.0
		if dens != nil && !math.IsNaN(dens[i]) {
			t = dens[i]
		}
		fmt.Fprintf(s, `    <circle cx="%f" cy="%f" r="2" fill="%s" />`+"\n", f.x.Map(x[i]), f.y.Map(y[i]), svgColor(ramp(t)))
	}
	fmt.Fprintf(s, "  </g>\n")
	return s.finish(w, width, height)
}
