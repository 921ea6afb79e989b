// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package signif converts an observed statistic and a sample of that
// statistic under the null hypothesis into a z-score and p-values.
//
// By default the null sample is summarized by its mean and standard
// deviation and p-values come from the standard normal distribution,
// a parametric approximation to the permutation distribution. The
// Empirical method instead reports the fraction of the null sample at
// least as extreme as the observed value.
package signif

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateDistribution is returned when the null sample has no
// spread, so the observed value cannot be standardized against it.
var ErrDegenerateDistribution = errors.New("degenerate null distribution")

// ErrInvalidConfiguration is returned for an unknown Method.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Method selects how p-values are derived from the null sample.
type Method int

const (
	// Normal derives p-values from the z-score using the standard
	// normal CDF.
	Normal Method = iota
	// Empirical derives p-values from tail counts of the null
	// sample.
	Empirical
)

func (m Method) String() string {
	switch m {
	case Normal:
		return "normal"
	case Empirical:
		return "empirical"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod returns the Method named s.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "normal", "z":
		return Normal, nil
	case "empirical", "exact":
		return Empirical, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown p-value method %q", s)
}

// An Evaluation is the significance of an observed value relative to
// a null sample.
type Evaluation struct {
	Z float64

	// P is the two-tailed p-value. PLeft and PRight are the
	// one-tailed p-values for the observed value being smaller and
	// larger than expected under the null hypothesis.
	P, PLeft, PRight float64

	// N is the number of finite null values the evaluation used.
	N int

	// Mean and StdDev summarize the finite null values.
	Mean, StdDev float64

	// Warnings lists caveats about this evaluation that should be
	// reported alongside it.
	Warnings []error
}

// Evaluate standardizes observed against the null sample and returns
// its significance under method.
//
// Non-finite null values are treated as missing. A p-value that
// evaluates to exactly zero is reported as 1/len(null) instead.
//
// With a single finite null value there is no spread to standardize
// against; Evaluate then reports Z = 0, P = 1 and one-tailed p-values
// of 0.5, with a warning.
func Evaluate(observed float64, null []float64, method Method) (Evaluation, error) {
	var ev Evaluation
	if math.IsNaN(observed) || math.IsInf(observed, 0) {
		return ev, errors.Wrapf(effect.ErrInvalidInput, "observed value %v is not finite", observed)
	}
	if len(null) == 0 {
		return ev, errors.Wrap(ErrDegenerateDistribution, "null distribution is empty")
	}

	finite := make([]float64, 0, len(null))
	for _, x := range null {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	ev.N = len(finite)
	if dropped := len(null) - len(finite); dropped > 0 {
		ev.Warnings = append(ev.Warnings, errors.Newf("%d of %d null values are not finite and were excluded", dropped, len(null)))
	}

	switch len(finite) {
	case 0:
		return Evaluation{}, errors.Wrapf(ErrDegenerateDistribution, "none of %d null values are finite", len(null))
	case 1:
		ev.Mean, ev.StdDev = finite[0], 0
		ev.Z, ev.P, ev.PLeft, ev.PRight = 0, 1, 0.5, 0.5
		ev.Warnings = append(ev.Warnings, errors.New("null distribution has a single value; significance is uninformative"))
		return ev, nil
	}

	ev.Mean, ev.StdDev = stat.MeanStdDev(finite, nil)
	if ev.StdDev == 0 {
		return Evaluation{}, errors.Wrapf(ErrDegenerateDistribution, "all %d finite null values equal %v", len(finite), ev.Mean)
	}
	ev.Z = (observed - ev.Mean) / ev.StdDev

	switch method {
	case Normal:
		ev.P = 2 * stats.StdNormal.CDF(-math.Abs(ev.Z))
		ev.PLeft = stats.StdNormal.CDF(ev.Z)
		// Φ(-z) rather than 1-Φ(z), which cancels to 0 for large z.
		ev.PRight = stats.StdNormal.CDF(-ev.Z)
	case Empirical:
		var le, ge int
		for _, x := range finite {
			if x <= observed {
				le++
			}
			if x >= observed {
				ge++
			}
		}
		n := float64(len(finite))
		ev.PLeft = float64(le) / n
		ev.PRight = float64(ge) / n
		ev.P = math.Min(1, 2*math.Min(ev.PLeft, ev.PRight))
	default:
		return Evaluation{}, errors.Wrapf(ErrInvalidConfiguration, "unknown p-value method %v", method)
	}

	floor := 1 / float64(len(null))
	for _, p := range []*float64{&ev.P, &ev.PLeft, &ev.PRight} {
		if *p == 0 {
			*p = floor
		}
	}
	return ev, nil
}

// ZProbability returns the z-score of obs relative to shuff, its
// two-tailed p-value, and its left and right one-tailed p-values,
// using the normal approximation.
func ZProbability(obs float64, shuff []float64) (z, p float64, q [2]float64, err error) {
	ev, err := Evaluate(obs, shuff, Normal)
	if err != nil {
		return 0, 0, q, err
	}
	return ev.Z, ev.P, [2]float64{ev.PLeft, ev.PRight}, nil
}
