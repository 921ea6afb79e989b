// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package effect computes descriptive statistics and effect sizes for
// two-group comparisons.
//
// Missing observations are represented as NaN. Every function in this
// package excludes missing observations at the point of computation,
// so callers may pass groups that still contain them.
//
// The two-group functions share the signature func(a, b []float64)
// float64 and are total: if a group has no usable observations, or a
// denominator vanishes, they return NaN (or ±Inf for a non-zero
// numerator over a zero spread) rather than panicking.
package effect

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/cockroachdb/errors"
	mstats "github.com/montanaflynn/stats"
)

// ErrInvalidInput is returned when a group is empty, holds only missing
// values, holds an infinite value, or when paired groups have mismatched lengths.
var ErrInvalidInput = errors.New("invalid input")

// Validate checks that xs holds at least one non-missing observation
// and no infinite ones. name identifies the group in the returned
// error.
func Validate(name string, xs []float64) error {
	if len(xs) == 0 {
		return errors.Wrapf(ErrInvalidInput, "group %s is empty", name)
	}
	present := false
	for i, x := range xs {
		if math.IsInf(x, 0) {
			return errors.Wrapf(ErrInvalidInput, "group %s has infinite value at index %d", name, i)
		}
		if !math.IsNaN(x) {
			present = true
		}
	}
	if !present {
		return errors.Wrapf(ErrInvalidInput, "group %s has no non-missing values", name)
	}
	return nil
}

// IsMissing reports whether x is a missing observation.
func IsMissing(x float64) bool {
	return math.IsNaN(x)
}

// DropMissing returns the non-missing observations of xs. If xs has
// no missing observations, it is returned as is.
func DropMissing(xs []float64) []float64 {
	i := 0
	for i < len(xs) && !math.IsNaN(xs[i]) {
		i++
	}
	if i == len(xs) {
		return xs
	}
	out := make([]float64, i, len(xs)-1)
	copy(out, xs[:i])
	for _, x := range xs[i+1:] {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Mean returns the arithmetic mean of the non-missing values of xs,
// or NaN if there are none.
func Mean(xs []float64) float64 {
	xs = DropMissing(xs)
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Mean(xs)
}

// Median returns the median of the non-missing values of xs. For an
// even count this is the mean of the two middle values.
func Median(xs []float64) float64 {
	xs = DropMissing(xs)
	if len(xs) == 0 {
		return math.NaN()
	}
	m, err := mstats.Median(xs)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Variance returns the unbiased (n-1) sample variance of the
// non-missing values of xs, or NaN if there are fewer than two.
func Variance(xs []float64) float64 {
	xs = DropMissing(xs)
	if len(xs) < 2 {
		return math.NaN()
	}
	return stats.Sample{Xs: xs}.Variance()
}

// StdDev returns the unbiased (n-1) sample standard deviation of the
// non-missing values of xs, or NaN if there are fewer than two.
func StdDev(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// moments summarizes the non-missing values of a group.
type moments struct {
	n    float64
	mean float64
	ss   float64 // sum of squared deviations from mean
}

func momentsOf(xs []float64) moments {
	xs = DropMissing(xs)
	if len(xs) == 0 {
		return moments{mean: math.NaN()}
	}
	s := stats.Sample{Xs: xs}
	m := moments{n: float64(len(xs)), mean: s.Mean()}
	if len(xs) > 1 {
		m.ss = s.Variance() * (m.n - 1)
	}
	return m
}

// PooledStdDev returns the pooled standard deviation of a and b with
// Bessel's correction,
//
//	sqrt(((na-1)*sa² + (nb-1)*sb²) / (na+nb-2)).
//
// It returns NaN if na+nb <= 2.
func PooledStdDev(a, b []float64) float64 {
	return pooledStdDev(momentsOf(a), momentsOf(b))
}

func pooledStdDev(ma, mb moments) float64 {
	df := ma.n + mb.n - 2
	if df <= 0 {
		return math.NaN()
	}
	return math.Sqrt((ma.ss + mb.ss) / df)
}
