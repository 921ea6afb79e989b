// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shuffle compares two groups of measurements.
//
// Usage:
//
//	shuffle perm [flags] [inputs...]
//	shuffle effect [flags] [inputs...]
//	shuffle prop x1 n1 x2 n2
//	shuffle zprob [flags] observed [inputs...]
//	shuffle sample [flags] dist n
//	shuffle density [flags] [inputs...]
//	shuffle config
//
// Inputs are in the group format:
//
//	key: value
//	GroupControl 1.2 3.4 NaN 5.6
//	GroupTreated 2.3 4.5 6.7
//
// Values of repeated group lines are concatenated. NaN, NA and -
// denote missing values. If no inputs are given, shuffle reads stdin.
//
// perm runs a permutation test between two groups, by default the
// first two groups in the input. The p-value is derived from a normal
// approximation of the null distribution unless -method=empirical.
//
// Defaults for perm may be set in a YAML file given by -config, with
// the keys statistic, iterations, replacement, seed, missing, method,
// workers, alpha and confidence. Flags override the file.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
)

func main() {
	log.SetPrefix("shuffle: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
