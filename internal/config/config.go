// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML defaults used by the shuffle command.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/permute"
	"github.com/groupcompare/shuffle/proportion"
	"github.com/groupcompare/shuffle/signif"
	"gopkg.in/yaml.v3"
)

// Config holds command defaults. Every field may be omitted from the
// file, in which case the value from Default is kept.
type Config struct {
	Statistic   string  `yaml:"statistic"`
	Iterations  int     `yaml:"iterations"`
	Replacement bool    `yaml:"replacement"`
	Seed        uint64  `yaml:"seed"`
	Missing     string  `yaml:"missing"`
	Method      string  `yaml:"method"`
	Workers     int     `yaml:"workers"`
	Alpha       float64 `yaml:"alpha"`
	Confidence  float64 `yaml:"confidence"`
}

// Default returns the built-in configuration.
func Default() Config {
	opts := permute.DefaultOptions()
	return Config{
		Statistic:   opts.Statistic.String(),
		Iterations:  opts.Iterations,
		Replacement: opts.Replacement,
		Seed:        opts.Seed,
		Missing:     opts.Missing.String(),
		Method:      opts.Method.String(),
		Workers:     opts.Workers,
		Alpha:       0.05,
		Confidence:  proportion.DefaultConfidence,
	}
}

// Load reads the configuration file at path on top of Default. An
// empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are an
// error.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return errors.Wrapf(permute.ErrInvalidConfiguration, "alpha %v not in (0, 1)", c.Alpha)
	}
	if !(c.Confidence > 0 && c.Confidence < 1) {
		return errors.Wrapf(permute.ErrInvalidConfiguration, "confidence %v not in (0, 1)", c.Confidence)
	}
	return nil
}

// Options converts c to permutation options.
func (c Config) Options() (permute.Options, error) {
	opts := permute.DefaultOptions()
	var err error
	if opts.Statistic, err = permute.ParseStatistic(c.Statistic); err != nil {
		return opts, err
	}
	if opts.Missing, err = permute.ParseMissingPolicy(c.Missing); err != nil {
		return opts, err
	}
	if opts.Method, err = signif.ParseMethod(c.Method); err != nil {
		return opts, err
	}
	if c.Iterations <= 0 {
		return opts, errors.Wrapf(permute.ErrInvalidConfiguration, "iterations must be positive, got %d", c.Iterations)
	}
	opts.Iterations = c.Iterations
	opts.Replacement = c.Replacement
	opts.Seed = c.Seed
	opts.Workers = c.Workers
	return opts, nil
}

// Write encodes c as YAML to w.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return enc.Close()
}
