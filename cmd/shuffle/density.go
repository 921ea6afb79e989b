// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/groupcompare/shuffle/density"
	"github.com/groupcompare/shuffle/plot"
	"github.com/spf13/cobra"
)

func (a *app) densityCmd() *cobra.Command {
	var (
		groupX, groupY string
		opts           density.Options
		size           float64
		outPath        string
	)
	cmd := &cobra.Command{
		Use:   "density [inputs...]",
		Short: "Plot two paired groups as a density-shaded scatter",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := readGroups(args, cmd.InOrStdin(), a.logger)
			if err != nil {
				return err
			}
			_, _, x, y, err := pickGroups(groups, groupX, groupY)
			if err != nil {
				return err
			}
			dens, err := density.Estimate(x, y, opts)
			if err != nil {
				return err
			}

			if outPath == "" {
				return plot.Scatter(cmd.OutOrStdout(), x, y, dens, size, size)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			err = plot.Scatter(f, x, y, dens, size, size)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&groupX, "group-x", "x", "", "x `group` (default: first in input)")
	cmd.Flags().StringVarP(&groupY, "group-y", "y", "", "y `group` (default: next in input)")
	cmd.Flags().IntVar(&opts.Bins, "bins", density.DefaultBins, "grid cells per axis")
	cmd.Flags().Float64Var(&opts.Sigma, "sigma", density.DefaultSigma, "smoothing kernel width in cells")
	cmd.Flags().Float64Var(&size, "size", 400, "plot width and height in pixels")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the SVG to `file` instead of stdout")
	return cmd
}
