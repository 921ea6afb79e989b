// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package groupfmt reads and writes a simple line-oriented format for
// numeric groups.
//
// A file consists of configuration lines and group lines. A
// configuration line has the form
//
//	key: value
//
// where key begins with a lower case letter and contains no spaces or
// upper case letters. It sets key for all following group lines; an
// empty value deletes key. A group line has the form
//
//	Group<Name> v1 v2 ...
//
// and contributes the values v1, v2, ... to group Name. The tokens
// NaN, NA and - denote missing values. All other lines are ignored.
//
// The reader and writer stream records, in the manner of
// bufio.Scanner, so callers decide how to aggregate them.
package groupfmt

import "math"

// Config is a single key/value configuration pair.
type Config struct {
	Key, Value string
}

// Record is one group line together with the configuration in effect
// where it appeared.
type Record struct {
	// Name is the group name, without the "Group" prefix.
	Name string

	// Config is the set of configuration pairs in effect for this
	// record, in the order they were first set.
	Config []Config

	// Values are the measurements on this line. Missing values are
	// NaN.
	Values []float64
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	return &Record{
		Name:   r.Name,
		Config: append([]Config(nil), r.Config...),
		Values: append([]float64(nil), r.Values...),
	}
}

// Get returns the value of configuration key, if set.
func (r *Record) Get(key string) (string, bool) {
	for _, c := range r.Config {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}

// Missing reports how many of r's values are missing.
func (r *Record) Missing() int {
	n := 0
	for _, v := range r.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
