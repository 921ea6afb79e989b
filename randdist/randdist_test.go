// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package randdist

import (
	"math"
	"testing"

	"github.com/aclements/go-moremath/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	test := func(in string, want Spec) {
		t.Helper()
		got, err := ParseSpec(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
			return
		}
		if got != want {
			t.Errorf("%q: got %+v, want %+v", in, got, want)
		}
	}
	test("normal:0,10", Spec{Normal, 0, 10})
	test("Uniform:-1, 1", Spec{Uniform, -1, 1})
	test("exponential:2", Spec{Exponential, 2, 0})
	test("t:5", Spec{StudentsT, 5, 0})

	for _, bad := range []string{"cauchy:0,1", "normal", "normal:0", "normal:0,-1", "uniform:2,1", "gamma:1,x"} {
		_, err := ParseSpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestSpecString(t *testing.T) {
	assert.Equal(t, "normal:0,10", Spec{Normal, 0, 10}.String())
	assert.Equal(t, "exponential:2", Spec{Exponential, 2, 0}.String())
}

func TestSampleDeterministic(t *testing.T) {
	spec := Spec{Kind: Gamma, A: 2, B: 3}
	a, err := Sample(spec, 100, 7)
	require.NoError(t, err)
	b, err := Sample(spec, 100, 7)
	require.NoError(t, err)
	c, err := Sample(spec, 100, 8)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 100)
}

func TestSampleMoments(t *testing.T) {
	test := func(spec Spec, mean, sd float64) {
		t.Helper()
		xs, err := Sample(spec, 20000, 1)
		require.NoError(t, err)
		for _, x := range xs {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				t.Fatalf("%v: non-finite sample %v", spec, x)
			}
		}
		s := stats.Sample{Xs: xs}
		assert.InDelta(t, mean, s.Mean(), 0.05*math.Max(1, sd), "%v mean", spec)
		assert.InDelta(t, sd, s.StdDev(), 0.05*math.Max(1, sd), "%v sd", spec)
	}
	test(Spec{Normal, 5, 2}, 5, 2)
	test(Spec{Uniform, 0, 1}, 0.5, 1/math.Sqrt(12))
	test(Spec{Exponential, 2, 0}, 0.5, 0.5)
	test(Spec{Beta, 2, 2}, 0.5, math.Sqrt(4.0/(16*5)))
}

func TestSampleBounds(t *testing.T) {
	xs, err := Sample(Spec{Uniform, 3, 4}, 1000, 0)
	require.NoError(t, err)
	for _, x := range xs {
		if x < 3 || x >= 4 {
			t.Fatalf("sample %v outside [3, 4)", x)
		}
	}

	_, err = Sample(Spec{Kind: Kind(42)}, 1, 0)
	assert.Error(t, err)
	_, err = Sample(Spec{Normal, 0, 1}, -1, 0)
	assert.Error(t, err)
}
