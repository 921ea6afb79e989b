// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/groupcompare/shuffle/groupfmt"
)

// FileArgs iterates over the input files named by Args, or stdin if
// Args is empty. "-" also names stdin.
type FileArgs struct {
	Args  []string
	Stdin io.Reader

	next int
	f    *os.File
}

// Next returns the next input and its name, or a nil reader when the
// inputs are exhausted. It closes the previous input.
func (fa *FileArgs) Next() (io.Reader, string, error) {
	if fa.f != nil {
		err := fa.f.Close()
		fa.f = nil
		if err != nil {
			return nil, "", err
		}
	}

	if fa.next >= len(fa.Args) {
		if fa.next == 0 {
			fa.next++
			return fa.stdin(), "<stdin>", nil
		}
		return nil, "", nil
	}

	name := fa.Args[fa.next]
	fa.next++
	if name == "-" {
		return fa.stdin(), "<stdin>", nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, "", err
	}
	fa.f = f
	return f, name, nil
}

func (fa *FileArgs) stdin() io.Reader {
	if fa.Stdin != nil {
		return fa.Stdin
	}
	return os.Stdin
}

// readGroups reads every group from the named inputs. Malformed lines
// are logged and skipped.
func readGroups(args []string, stdin io.Reader, logger *slog.Logger) (*groupfmt.Groups, error) {
	var reader groupfmt.Reader
	groups := new(groupfmt.Groups)
	files := FileArgs{Args: args, Stdin: stdin}
	for {
		f, name, err := files.Next()
		if err != nil {
			return nil, err
		}
		if f == nil {
			break
		}
		reader.Reset(f, name)
		err = groups.AddAll(&reader, func(err error) {
			logger.Warn("skipping line", slog.Any("err", err))
		})
		if err != nil {
			return nil, err
		}
	}
	if groups.Len() == 0 {
		return nil, errors.New("no groups in input")
	}
	return groups, nil
}

// pickGroups returns the groups named a and b. Empty names select the
// first and second groups of the input, in order.
func pickGroups(groups *groupfmt.Groups, a, b string) (nameA, nameB string, xa, xb []float64, err error) {
	names := groups.Names()
	pick := func(name string, i int) (string, []float64, error) {
		if name == "" {
			if i >= len(names) {
				return "", nil, errors.Newf("need at least %d groups, have %d", i+1, len(names))
			}
			name = names[i]
		}
		xs, ok := groups.Get(name)
		if !ok {
			return "", nil, errors.WithHintf(errors.Newf("no group %q in input", name), "groups are %v", names)
		}
		return name, xs, nil
	}
	if nameA, xa, err = pick(a, 0); err != nil {
		return
	}
	i := 1
	if b == "" && nameA != names[0] {
		i = 0
	}
	nameB, xb, err = pick(b, i)
	if err == nil && nameA == nameB {
		err = errors.Newf("cannot compare group %q with itself", nameA)
	}
	return
}
