// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/effect"
	"github.com/groupcompare/shuffle/proportion"
	"github.com/groupcompare/shuffle/signif"
	"github.com/spf13/cobra"
)

func (a *app) effectCmd() *cobra.Command {
	var groupA, groupB string
	cmd := &cobra.Command{
		Use:   "effect [inputs...]",
		Short: "Print effect sizes between two groups",
		Long: "effect prints descriptive statistics and effect sizes between two\n" +
			"groups. With more than two groups in the input, it also prints a\n" +
			"one-way ANOVA across all of them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := readGroups(args, cmd.InOrStdin(), a.logger)
			if err != nil {
				return err
			}
			nameA, nameB, xa, xb, err := pickGroups(groups, groupA, groupB)
			if err != nil {
				return err
			}
			sz, err := effect.Compute(xa, xb)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "\t%s\t%s\n", nameA, nameB)
			fmt.Fprintf(tw, "n\t%d\t%d\n", sz.N1, sz.N2)
			fmt.Fprintf(tw, "mean\t%.6g\t%.6g\n", effect.Mean(xa), effect.Mean(xb))
			fmt.Fprintf(tw, "median\t%.6g\t%.6g\n", effect.Median(xa), effect.Median(xb))
			fmt.Fprintf(tw, "sd\t%.6g\t%.6g\n", effect.StdDev(xa), effect.StdDev(xb))
			fmt.Fprintln(tw)
			for _, row := range []struct {
				name string
				v    float64
			}{
				{"mean difference", sz.MeanDiff},
				{"median difference", sz.MedianDiff},
				{"t (pooled)", sz.T},
				{"F", sz.F},
				{"p (ANOVA)", sz.P},
				{"Cohen's d", sz.CohensD},
				{"Hedge's g", sz.HedgesG},
				{"Glass's delta", sz.GlassDelta},
				{"Cliff's delta", sz.CliffsDelta},
				{"P(superiority)", sz.ProbSuperiority},
			} {
				fmt.Fprintf(tw, "%s\t%.6g\n", row.name, row.v)
			}
			if groups.Len() > 2 {
				all := make([][]float64, 0, groups.Len())
				for _, name := range groups.Names() {
					xs, _ := groups.Get(name)
					all = append(all, effect.DropMissing(xs))
				}
				f, p := effect.ANOVA(all...)
				fmt.Fprintf(tw, "\nANOVA (%d groups)\tF=%.6g\tp=%.4g\n", len(all), f, p)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&groupA, "group-a", "a", "", "first `group` (default: first in input)")
	cmd.Flags().StringVarP(&groupB, "group-b", "b", "", "second `group` (default: next in input)")
	return cmd
}

func (a *app) propCmd() *cobra.Command {
	var confidence float64
	cmd := &cobra.Command{
		Use:   "prop x1 n1 x2 n2",
		Short: "Compare two proportions with the N-1 chi-squared test",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var counts [4]int
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Wrapf(effect.ErrInvalidInput, "count %q is not an integer", arg)
				}
				counts[i] = n
			}
			if !cmd.Flags().Changed("confidence") {
				confidence = a.cfg.Confidence
			}
			r, err := proportion.Test(counts[0], counts[1], counts[2], counts[3], confidence)
			if err != nil {
				return err
			}
			pct := r.Confidence * 100
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "p1 = %.4f  %g%% CI [%.4f, %.4f]\n", r.P1, pct, r.CI1.Lo, r.CI1.Hi)
			fmt.Fprintf(out, "p2 = %.4f  %g%% CI [%.4f, %.4f]\n", r.P2, pct, r.CI2.Lo, r.CI2.Hi)
			fmt.Fprintf(out, "p1-p2 = %.4f  %g%% CI [%.4f, %.4f]\n", r.Diff, pct, r.CIDiff.Lo, r.CIDiff.Hi)
			fmt.Fprintf(out, "chi2(1) = %.4f  p = %.4g\n", r.Chi2, r.P)
			return nil
		},
	}
	cmd.Flags().Float64Var(&confidence, "confidence", proportion.DefaultConfidence, "confidence `level` of the intervals")
	return cmd
}

func (a *app) zprobCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "zprob observed [inputs...]",
		Short: "Standardize an observed value against a group of null values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrapf(effect.ErrInvalidInput, "observed value %q", args[0])
			}
			groups, err := readGroups(args[1:], cmd.InOrStdin(), a.logger)
			if err != nil {
				return err
			}
			if group == "" {
				group = groups.Names()[0]
			}
			null, ok := groups.Get(group)
			if !ok {
				return errors.Newf("no group %q in input", group)
			}
			z, p, q, err := signif.ZProbability(obs, null)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "z = %.4f  p = %.4g  left = %.4g  right = %.4g\n", z, p, q[0], q[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "`group` holding the null values (default: first in input)")
	return cmd
}
