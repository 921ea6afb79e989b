// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package groupfmt

// Groups accumulates the values of records by group name.
type Groups struct {
	names  []string
	values map[string][]float64
}

// Add appends rec's values to the group rec.Name.
func (g *Groups) Add(rec *Record) {
	if g.values == nil {
		g.values = make(map[string][]float64)
	}
	vs, ok := g.values[rec.Name]
	if !ok {
		g.names = append(g.names, rec.Name)
	}
	g.values[rec.Name] = append(vs, rec.Values...)
}

// Names returns the group names in the order they were first seen.
func (g *Groups) Names() []string {
	return g.names
}

// Get returns the values of group name.
func (g *Groups) Get(name string) ([]float64, bool) {
	vs, ok := g.values[name]
	return vs, ok
}

// Len returns the number of distinct groups.
func (g *Groups) Len() int {
	return len(g.names)
}

// Collect reads all records from r into a new Groups. Malformed lines
// are passed to warn, if non-nil, and otherwise skipped. The returned
// error is r's I/O error, if any.
func Collect(r *Reader, warn func(error)) (*Groups, error) {
	g := new(Groups)
	if err := g.AddAll(r, warn); err != nil {
		return nil, err
	}
	return g, nil
}

// AddAll adds every record from r to g, as Collect does.
func (g *Groups) AddAll(r *Reader, warn func(error)) error {
	for r.Scan() {
		rec, err := r.Result()
		if err != nil {
			if warn != nil {
				warn(err)
			}
			continue
		}
		g.Add(rec)
	}
	return r.Err()
}
