// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"github.com/groupcompare/shuffle/groupfmt"
	"github.com/groupcompare/shuffle/permute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoGroups = `experiment: demo
GroupControl 1 2 3 4 5 NaN
GroupTreated 3 4 5 6 7
GroupControl 2
`

// run executes the shuffle command with args and stdin, returning its
// standard output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPerm(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "null.svg")
	out, err := run(t, twoGroups, "perm", "-n", "200", "-s", "cohen", "--svg", svg)
	require.NoError(t, err)
	assert.Contains(t, out, "Control vs Treated (n=7, 5)")
	assert.Contains(t, out, "statistic:  cohen = ")
	assert.Contains(t, out, "over 200 resamples")

	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<svg ")))

	// Identical flags give identical output.
	again, err := run(t, twoGroups, "perm", "-n", "200", "-s", "cohen", "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestPermConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuffle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("statistic: median\niterations: 50\n"), 0o644))

	out, err := run(t, twoGroups, "--config", path, "perm")
	require.NoError(t, err)
	assert.Contains(t, out, "statistic:  median = -2.5")
	assert.Contains(t, out, "over 50 resamples")

	// Flags override the file.
	out, err = run(t, twoGroups, "--config", path, "perm", "--statistic", "mean", "-b", "Control", "-a", "Treated")
	require.NoError(t, err)
	assert.Contains(t, out, "Treated vs Control")
	assert.Contains(t, out, "statistic:  mean = ")
	assert.Contains(t, out, "over 50 resamples")

	_, err = run(t, twoGroups, "perm", "-n", "0")
	assert.True(t, errors.Is(err, permute.ErrInvalidConfiguration), "got %v", err)
	_, err = run(t, twoGroups, "perm", "-s", "kurtosis")
	assert.True(t, errors.Is(err, permute.ErrUnsupportedStatistic), "got %v", err)
	_, err = run(t, twoGroups, "perm", "-a", "Missing")
	assert.Error(t, err)
}

func TestEffect(t *testing.T) {
	out, err := run(t, twoGroups+"GroupThird 9 9 8\n", "effect")
	require.NoError(t, err)
	assert.Contains(t, out, "Cohen's d")
	assert.Contains(t, out, "Cliff's delta")
	assert.Contains(t, out, "ANOVA (3 groups)")

	_, err = run(t, "GroupA NaN\nGroupB 1\n", "effect")
	assert.True(t, errors.Is(err, effect.ErrInvalidInput), "got %v", err)
}

func TestProp(t *testing.T) {
	out, err := run(t, "", "prop", "10", "50", "20", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "p1 = 0.2000  95% CI [0.1124, 0.3304]")
	assert.Contains(t, out, "chi2(1) = 4.7143")

	_, err = run(t, "", "prop", "10", "5", "2", "5")
	assert.True(t, errors.Is(err, effect.ErrInvalidInput), "got %v", err)
	_, err = run(t, "", "prop", "1", "x", "2", "5")
	assert.True(t, errors.Is(err, effect.ErrInvalidInput), "got %v", err)
}

func TestZProb(t *testing.T) {
	out, err := run(t, "GroupNull -1 0 1\n", "zprob", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "z = 2.0000")

	_, err = run(t, "GroupNull 1 1 1\n", "zprob", "2")
	assert.True(t, errors.Is(err, permute.ErrDegenerateDistribution), "got %v", err)
}

func TestSample(t *testing.T) {
	out, err := run(t, "", "sample", "--name", "Noise", "--seed", "3", "normal:0,10", "5")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "distribution: normal:0,10\n\nGroupNoise "), "%q", out)

	// The output reads back as a group of the requested size.
	g, err := groupfmt.Collect(groupfmt.NewReader(strings.NewReader(out), "sample"), nil)
	require.NoError(t, err)
	xs, ok := g.Get("Noise")
	require.True(t, ok)
	assert.Len(t, xs, 5)

	again, err := run(t, "", "sample", "--name", "Noise", "--seed", "3", "normal:0,10", "5")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = run(t, "", "sample", "cauchy:0,1", "5")
	assert.Error(t, err)
}

func TestDensity(t *testing.T) {
	out, err := run(t, "GroupX 1 2 3 4\nGroupY 2 4 6 8\n", "density", "--bins", "8")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "<circle"))

	_, err = run(t, "GroupX 1 2 3\nGroupY 2 4\n", "density")
	assert.True(t, errors.Is(err, effect.ErrInvalidInput), "got %v", err)
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations: 1000")
	assert.Contains(t, out, "statistic: mean")
}

func TestFileArgs(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p1, []byte("GroupA 1 2\n"), 0o644))

	g, err := readGroups([]string{p1, "-"}, strings.NewReader("GroupB 3\nGroupA 4\n"), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, g.Names())
	xs, _ := g.Get("A")
	assert.Equal(t, []float64{1, 2, 4}, xs)

	_, err = readGroups([]string{filepath.Join(dir, "missing")}, nil, discardLogger())
	assert.Error(t, err)
	_, err = readGroups(nil, strings.NewReader("nothing here\n"), discardLogger())
	assert.Error(t, err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
