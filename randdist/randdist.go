// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randdist draws reproducible samples from common continuous
// distributions.
//
// Samples are produced by inverse-CDF transform of a seeded PCG
// stream, so a (Spec, n, seed) triple always yields the same values.
package randdist

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kind is a family of distributions.
type Kind int

const (
	Normal      Kind = iota // A = mean, B = standard deviation
	Uniform                 // A = min, B = max
	Exponential             // A = rate
	LogNormal               // A = mu, B = sigma of the underlying normal
	Gamma                   // A = shape, B = rate
	Beta                    // A = alpha, B = beta
	StudentsT               // A = degrees of freedom
)

var kindNames = [...]string{
	Normal:      "normal",
	Uniform:     "uniform",
	Exponential: "exponential",
	LogNormal:   "lognormal",
	Gamma:       "gamma",
	Beta:        "beta",
	StudentsT:   "t",
}

// nparams is the number of parameters each Kind takes.
var nparams = [...]int{
	Normal:      2,
	Uniform:     2,
	Exponential: 1,
	LogNormal:   2,
	Gamma:       2,
	Beta:        2,
	StudentsT:   1,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// A Spec is a distribution and its parameters.
type Spec struct {
	Kind Kind
	A, B float64
}

func (s Spec) String() string {
	if s.Kind >= 0 && int(s.Kind) < len(nparams) && nparams[s.Kind] == 1 {
		return fmt.Sprintf("%v:%v", s.Kind, s.A)
	}
	return fmt.Sprintf("%v:%v,%v", s.Kind, s.A, s.B)
}

// ParseSpec parses a distribution of the form "kind:a,b", such as
// "normal:0,10" or "exponential:2".
func ParseSpec(str string) (Spec, error) {
	name, params, _ := strings.Cut(str, ":")
	var spec Spec
	found := false
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			spec.Kind, found = Kind(k), true
			break
		}
	}
	if !found {
		return spec, errors.Newf("unknown distribution %q", name)
	}

	var vals []float64
	if params != "" {
		for _, f := range strings.Split(params, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return spec, errors.Wrapf(err, "parsing %s parameters", spec.Kind)
			}
			vals = append(vals, v)
		}
	}
	if len(vals) != nparams[spec.Kind] {
		return spec, errors.Newf("%s takes %d parameters, got %d", spec.Kind, nparams[spec.Kind], len(vals))
	}
	spec.A = vals[0]
	if len(vals) > 1 {
		spec.B = vals[1]
	}
	return spec, spec.validate()
}

type quantiler interface {
	Quantile(p float64) float64
}

func (s Spec) validate() error {
	ok := true
	switch s.Kind {
	case Normal, LogNormal:
		ok = s.B > 0
	case Uniform:
		ok = s.A < s.B
	case Exponential, StudentsT:
		ok = s.A > 0
	case Gamma, Beta:
		ok = s.A > 0 && s.B > 0
	default:
		return errors.Newf("unknown distribution %v", s.Kind)
	}
	if !ok {
		return errors.Newf("invalid parameters for %v", s)
	}
	return nil
}

func (s Spec) dist() quantiler {
	switch s.Kind {
	case Normal:
		return distuv.Normal{Mu: s.A, Sigma: s.B}
	case Uniform:
		return distuv.Uniform{Min: s.A, Max: s.B}
	case Exponential:
		return distuv.Exponential{Rate: s.A}
	case LogNormal:
		return distuv.LogNormal{Mu: s.A, Sigma: s.B}
	case Gamma:
		return distuv.Gamma{Alpha: s.A, Beta: s.B}
	case Beta:
		return distuv.Beta{Alpha: s.A, Beta: s.B}
	case StudentsT:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: s.A}
	}
	panic("not reachable")
}

// Sample returns n values drawn from spec using a stream seeded by
// seed.
func Sample(spec Spec, n int, seed uint64) ([]float64, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Newf("negative sample size %d", n)
	}
	q := spec.dist()
	rng := rand.New(rand.NewPCG(seed, uint64(spec.Kind)))
	xs := make([]float64, n)
	for i := range xs {
		// Quantile is infinite at 0.
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		xs[i] = q.Quantile(u)
	}
	return xs, nil
}
