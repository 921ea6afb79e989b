// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package permute

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
)

// A Func computes a scalar difference measure between two groups. It
// must not modify a or b, and must be deterministic.
type Func func(a, b []float64) float64

// Statistic identifies one of the difference measures a permutation
// test can use. The set is closed; the zero Statistic is invalid.
type Statistic int

const (
	MeanDiff Statistic = 1 + iota
	MedianDiff
	TStat
	FStat
	CohensD
	HedgesG
	CliffsDelta
	ProbSuperiority
)

type statInfo struct {
	name    string
	aliases []string
	fn      Func
}

var statTable = [...]statInfo{
	MeanDiff:        {"mean", []string{"meandiff"}, effect.MeanDiff},
	MedianDiff:      {"median", []string{"mediandiff"}, effect.MedianDiff},
	TStat:           {"t", []string{"tstat", "ttest"}, effect.TStat},
	FStat:           {"F", []string{"fstat", "anova"}, effect.FStat},
	CohensD:         {"cohen", []string{"cohensd", "d"}, effect.CohensD},
	HedgesG:         {"hedge", []string{"hedges", "hedgesg", "g"}, effect.HedgesG},
	CliffsDelta:     {"cliff", []string{"cliffsdelta"}, effect.CliffsDelta},
	ProbSuperiority: {"probsup", []string{"superiority", "ps"}, effect.ProbSuperiority},
}

// Statistics returns every valid Statistic in declaration order.
func Statistics() []Statistic {
	out := make([]Statistic, 0, len(statTable)-1)
	for s := MeanDiff; int(s) < len(statTable); s++ {
		out = append(out, s)
	}
	return out
}

func (s Statistic) valid() bool {
	return s > 0 && int(s) < len(statTable)
}

func (s Statistic) String() string {
	if !s.valid() {
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
	return statTable[s].name
}

// Func returns the function that computes s.
func (s Statistic) Func() (Func, error) {
	if !s.valid() {
		return nil, unsupported(s.String())
	}
	return statTable[s].fn, nil
}

// ParseStatistic returns the Statistic with the given name or alias,
// ignoring case.
func ParseStatistic(name string) (Statistic, error) {
	for _, s := range Statistics() {
		info := &statTable[s]
		if strings.EqualFold(name, info.name) {
			return s, nil
		}
		for _, alias := range info.aliases {
			if strings.EqualFold(name, alias) {
				return s, nil
			}
		}
	}
	return 0, unsupported(name)
}

func unsupported(name string) error {
	names := make([]string, 0, len(statTable))
	for _, s := range Statistics() {
		names = append(names, s.String())
	}
	err := errors.Wrapf(ErrUnsupportedStatistic, "%q", name)
	return errors.WithHintf(err, "supported statistics: %s", strings.Join(names, ", "))
}
