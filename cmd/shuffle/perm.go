// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/permute"
	"github.com/groupcompare/shuffle/plot"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testFlags are the permutation settings that may also come from the
// config file.
type testFlags struct {
	statistic   string
	iterations  int
	replacement bool
	seed        uint64
	missing     string
	method      string
	workers     int
	alpha       float64
}

func (tf *testFlags) register(fs *pflag.FlagSet, a *app) {
	def := a.cfg
	fs.StringVarP(&tf.statistic, "statistic", "s", def.Statistic, "test `statistic`: "+statisticNames())
	fs.IntVarP(&tf.iterations, "iterations", "n", def.Iterations, "number of resamples")
	fs.BoolVar(&tf.replacement, "replacement", def.Replacement, "resample with replacement")
	fs.Uint64Var(&tf.seed, "seed", def.Seed, "random seed")
	fs.StringVar(&tf.missing, "missing", def.Missing, "missing value `policy`: retain or drop")
	fs.StringVar(&tf.method, "method", def.Method, "p-value `method`: normal or empirical")
	fs.IntVar(&tf.workers, "workers", def.Workers, "number of goroutines computing resamples")
	fs.Float64Var(&tf.alpha, "alpha", def.Alpha, "significance level for reporting")
}

// options merges the flags that were set on the command line over the
// loaded configuration.
func (tf *testFlags) options(fs *pflag.FlagSet, a *app) (permute.Options, float64, error) {
	cfg := a.cfg
	if fs.Changed("statistic") {
		cfg.Statistic = tf.statistic
	}
	if fs.Changed("iterations") {
		cfg.Iterations = tf.iterations
	}
	if fs.Changed("replacement") {
		cfg.Replacement = tf.replacement
	}
	if fs.Changed("seed") {
		cfg.Seed = tf.seed
	}
	if fs.Changed("missing") {
		cfg.Missing = tf.missing
	}
	if fs.Changed("method") {
		cfg.Method = tf.method
	}
	if fs.Changed("workers") {
		cfg.Workers = tf.workers
	}
	if fs.Changed("alpha") {
		cfg.Alpha = tf.alpha
	}
	if err := cfg.Validate(); err != nil {
		return permute.Options{}, 0, err
	}
	opts, err := cfg.Options()
	opts.Logger = a.logger
	return opts, cfg.Alpha, err
}

func statisticNames() string {
	s := ""
	for i, st := range permute.Statistics() {
		if i > 0 {
			s += ", "
		}
		s += st.String()
	}
	return s
}

func (a *app) permCmd() *cobra.Command {
	var (
		tf             testFlags
		groupA, groupB string
		svgPath        string
	)
	cmd := &cobra.Command{
		Use:   "perm [inputs...]",
		Short: "Run a permutation test between two groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, alpha, err := tf.options(cmd.Flags(), a)
			if err != nil {
				return err
			}
			groups, err := readGroups(args, cmd.InOrStdin(), a.logger)
			if err != nil {
				return err
			}
			nameA, nameB, xa, xb, err := pickGroups(groups, groupA, groupB)
			if err != nil {
				return err
			}

			res, err := permute.Run(cmd.Context(), xa, xb, opts)
			if err != nil {
				return errors.Wrapf(err, "comparing %s and %s", nameA, nameB)
			}
			for _, w := range res.Warnings {
				a.logger.Warn(w.Error())
			}

			out := cmd.OutOrStdout()
			verdict := "not significant"
			if res.P < alpha {
				verdict = "significant"
			}
			s := res.Summary
			fmt.Fprintf(out, "%s vs %s (n=%d, %d)\n", nameA, nameB, res.N1, res.N2)
			fmt.Fprintf(out, "statistic:  %s = %.6g\n", res.Statistic, res.Observed)
			fmt.Fprintf(out, "null:       mean %.6g, sd %.6g, median %.6g, 95%% [%.6g, %.6g] over %d resamples\n",
				s.Mean, s.StdDev, s.Center, s.Lo, s.Hi, len(res.Null))
			fmt.Fprintf(out, "z:          %.4f\n", res.Z)
			fmt.Fprintf(out, "p:          %.4g (left %.4g, right %.4g, %s)\n", res.P, res.PLeft, res.PRight, opts.Method)
			fmt.Fprintf(out, "result:     %s at alpha=%g\n", verdict, alpha)

			if svgPath == "" {
				return nil
			}
			f, err := os.Create(svgPath)
			if err != nil {
				return err
			}
			err = plot.NullHistogram(f, res.Null, res.Observed, plot.HistOptions{
				Title: fmt.Sprintf("%s: %s vs %s", res.Statistic, nameA, nameB),
			})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	tf.register(cmd.Flags(), a)
	cmd.Flags().StringVarP(&groupA, "group-a", "a", "", "first `group` (default: first in input)")
	cmd.Flags().StringVarP(&groupB, "group-b", "b", "", "second `group` (default: next in input)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write a histogram of the null distribution to `file`")
	return cmd
}
