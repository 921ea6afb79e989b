// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package groupfmt

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
)

// A Writer writes the group format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first  bool
	config map[string]string
	order  []string
}

// NewWriter returns a writer that writes group records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true, config: make(map[string]string)}
}

// Write writes rec to w. If rec's configuration differs from the
// configuration last written, it first emits the configuration lines
// needed to bring the reader up to date.
//
// Keys that are not valid in the file syntax, such as ".file", are
// not written.
func (w *Writer) Write(rec *Record) error {
	if w.configChanged(rec) {
		w.writeConfig(rec)
	}

	w.buf.WriteString(groupPrefix)
	w.buf.WriteString(rec.Name)
	for _, v := range rec.Values {
		w.buf.WriteByte(' ')
		w.buf.WriteString(FormatValue(v))
	}
	w.buf.WriteByte('\n')
	w.first = false

	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// FormatValue formats v the way Writer does. Missing values are
// written as NaN.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writable(key string) bool {
	_, _, ok := parseKeyValueLine(key + ": x")
	return ok
}

func (w *Writer) configChanged(rec *Record) bool {
	n := 0
	for _, c := range rec.Config {
		if !writable(c.Key) {
			continue
		}
		n++
		if have, ok := w.config[c.Key]; !ok || have != c.Value {
			return true
		}
	}
	return n != len(w.config)
}

func (w *Writer) writeConfig(rec *Record) {
	if !w.first {
		// Configuration blocks after records get an extra blank.
		w.buf.WriteByte('\n')
	}

	// Changes and deletions of known keys.
	kept := w.order[:0]
	for _, key := range w.order {
		val, ok := rec.Get(key)
		if !ok {
			fmt.Fprintf(&w.buf, "%s:\n", key)
			delete(w.config, key)
			continue
		}
		if w.config[key] != val {
			fmt.Fprintf(&w.buf, "%s: %s\n", key, val)
			w.config[key] = val
		}
		kept = append(kept, key)
	}
	w.order = kept

	// New keys.
	for _, c := range rec.Config {
		if !writable(c.Key) {
			continue
		}
		if _, ok := w.config[c.Key]; ok {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", c.Key, c.Value)
		w.config[c.Key] = c.Value
		w.order = append(w.order, c.Key)
	}

	w.buf.WriteByte('\n')
}
