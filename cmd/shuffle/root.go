// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"

	"github.com/groupcompare/shuffle/internal/config"
	"github.com/spf13/cobra"
)

// app is the state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:           "shuffle",
		Short:         "Compare two groups of measurements",
		Long:          "shuffle computes effect sizes, permutation tests and proportion tests\nfor two groups of measurements.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug("loaded config", slog.String("path", a.configPath), slog.Any("config", cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML `file` of defaults")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.permCmd(),
		a.effectCmd(),
		a.propCmd(),
		a.zprobCmd(),
		a.sampleCmd(),
		a.densityCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Write(cmd.OutOrStdout())
		},
	}
}
