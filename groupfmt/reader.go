// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package groupfmt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// A Reader reads the group format.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Records it returns; a caller should Clone anything it needs to
// keep.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error

	rec    Record
	recErr error
}

// SyntaxError represents a syntax error on a particular line of a
// group file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var errNoRecord = errors.New("Reader.Scan has not been called")

const groupPrefix = "Group"

// NewReader constructs a reader to parse the group format from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. This
// also clears the configuration. initConfig is an alternating
// sequence of keys and values that seed the configuration; such keys
// need not be valid in the file syntax.
func (r *Reader) Reset(ior io.Reader, fileName string, initConfig ...string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.recErr = errNoRecord

	r.rec.Name = ""
	r.rec.Config = r.rec.Config[:0]
	r.rec.Values = r.rec.Values[:0]
	if len(initConfig)%2 != 0 {
		panic("initConfig must be key/value pairs")
	}
	for i := 0; i < len(initConfig); i += 2 {
		r.setConfig(initConfig[i], initConfig[i+1])
	}
}

// Scan advances the reader to the next group line and returns true if
// one was read. The caller should use the Result method to get it. At
// the end of the input or on an I/O error, Scan returns false and the
// caller should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.lineNum++
		line := r.s.Text()
		if strings.HasPrefix(line, groupPrefix) {
			r.recErr = r.parseGroupLine(line[len(groupPrefix):])
			return true
		}
		if key, val, ok := parseKeyValueLine(line); ok {
			r.setConfig(key, val)
		}
	}
	if err := r.s.Err(); err != nil {
		r.err = errors.Wrapf(err, "%s:%d", r.fileName, r.lineNum)
	}
	return false
}

func (r *Reader) setConfig(key, val string) {
	cfg := r.rec.Config
	for i := range cfg {
		if cfg[i].Key != key {
			continue
		}
		if val == "" {
			r.rec.Config = append(cfg[:i], cfg[i+1:]...)
		} else {
			cfg[i].Value = val
		}
		return
	}
	if val != "" {
		r.rec.Config = append(cfg, Config{key, val})
	}
}

// parseKeyValueLine attempts to parse line as a "key: value" pair.
func parseKeyValueLine(line string) (key, val string, ok bool) {
	colon := -1
	for i, c := range line {
		if i == 0 && !unicode.IsLower(c) {
			return "", "", false
		}
		if c == ':' {
			colon = i
			break
		}
		if unicode.IsSpace(c) || unicode.IsUpper(c) {
			return "", "", false
		}
	}
	if colon <= 0 {
		return "", "", false
	}
	key, rest := line[:colon], line[colon+1:]
	if rest == "" {
		return key, "", true
	}
	// At least one space or tab must follow the colon.
	val = strings.TrimLeft(rest, " \t")
	if len(val) == len(rest) {
		return "", "", false
	}
	return key, strings.TrimRightFunc(val, unicode.IsSpace), true
}

// parseGroupLine parses the remainder of a group line after the
// "Group" prefix into r.rec.
func (r *Reader) parseGroupLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || startsWithSpace(line) {
		return &SyntaxError{r.fileName, r.lineNum, "missing group name"}
	}
	r.rec.Name = fields[0]
	r.rec.Values = r.rec.Values[:0]
	if len(fields) == 1 {
		return &SyntaxError{r.fileName, r.lineNum, "missing values"}
	}
	for _, f := range fields[1:] {
		v, err := parseValue(f)
		if err != nil {
			return &SyntaxError{r.fileName, r.lineNum, err.Error()}
		}
		r.rec.Values = append(r.rec.Values, v)
	}
	return nil
}

func startsWithSpace(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(c)
}

// parseValue parses a single measurement. Missing tokens yield NaN.
func parseValue(f string) (float64, error) {
	switch f {
	case "NaN", "NA", "nan", "-":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(f, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, errors.Newf("parsing value %q: %v", f, err)
	}
	if math.IsInf(v, 0) {
		return 0, errors.Newf("value %q is not finite", f)
	}
	return v, nil
}

// Result returns the last record read, or an error if the line was
// malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Record, as it will be overwritten
// by the next call to Scan.
func (r *Reader) Result() (*Record, error) {
	if r.recErr != nil {
		return nil, r.recErr
	}
	return &r.rec, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
