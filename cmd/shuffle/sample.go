// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/groupfmt"
	"github.com/groupcompare/shuffle/randdist"
	"github.com/spf13/cobra"
)

func (a *app) sampleCmd() *cobra.Command {
	var (
		name string
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "sample dist n",
		Short: "Write n random values from a distribution as a group",
		Long: "sample writes n values drawn from dist as a group line. dist has the\n" +
			"form kind:a,b, for example normal:0,10, uniform:0,1, exponential:2,\n" +
			"lognormal:0,1, gamma:2,1, beta:2,5 or t:3.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := randdist.ParseSpec(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "sample size")
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Seed
			}
			xs, err := randdist.Sample(spec, n, seed)
			if err != nil {
				return err
			}
			if name == "" {
				name = spec.Kind.String()
			}
			w := groupfmt.NewWriter(cmd.OutOrStdout())
			return w.Write(&groupfmt.Record{
				Name:   name,
				Config: []groupfmt.Config{{Key: "distribution", Value: spec.String()}},
				Values: xs,
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "group `name` (default: the distribution kind)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	return cmd
}
