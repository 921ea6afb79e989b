// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot renders permutation-test results and density scatters
// as standalone SVG documents.
package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-moremath/scale"
)

const labelFontSize = 10

// A Box is a set of margins around a plot area.
type Box struct {
	Top, Right, Bottom, Left float64
}

var defaultMargins = Box{Top: 20, Right: 20, Bottom: 30, Left: 20}

// svg accumulates the body of an SVG document.
type svg struct {
	buf bytes.Buffer
	gen int
}

func (s *svg) Write(x []byte) (int, error) {
	return s.buf.Write(x)
}

func (s *svg) genID(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, s.gen)
	s.gen++
	return id
}

// finish writes the complete document to w.
func (s *svg) finish(w io.Writer, width, height float64) error {
	_, err := fmt.Fprintf(w,
		`<svg version="1.1" width="%f" height="%f" xmlns="http://www.w3.org/2000/svg">
%s</svg>
`,
		width, height, s.buf.Bytes())
	return err
}

// frame maps data coordinates onto a width×height canvas with the
// given margins. The Y axis points up.
type frame struct {
	x, y scale.QQ
}

func newFrame(xlo, xhi, ylo, yhi, width, height float64, m Box) frame {
	xIn := scale.Linear{Min: xlo, Max: xhi}
	yIn := scale.Linear{Min: ylo, Max: yhi}
	xOut := scale.Linear{Min: m.Left, Max: width - m.Right}
	yOut := scale.Linear{Min: height - m.Bottom, Max: m.Top}
	return frame{scale.QQ{Src: &xIn, Dest: &xOut}, scale.QQ{Src: &yIn, Dest: &yOut}}
}

// expand widens [lo, hi] to a non-empty range.
func expand(lo, hi float64) (float64, float64) {
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func svgColor(c color.Color) string {
	c2 := color.NRGBAModel.Convert(c).(color.NRGBA)
	if c2.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c2.R, c2.G, c2.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%f)", c2.R, c2.G, c2.B, float64(c2.A)/255)
}

func svgPathRect(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M%f %fH%fV%fH%fz", x1, y1, x2, y2, x1)
}

// ramp interpolates from cold to hot as t goes from 0 to 1.
func ramp(t float64) color.Color {
	cold := color.RGBA{55, 126, 184, 255}
	hot := color.RGBA{228, 26, 28, 255}
	t = math.Max(0, math.Min(1, t))
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
	}
	return color.RGBA{mix(cold.R, hot.R), mix(cold.G, hot.G), mix(cold.B, hot.B), 255}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
