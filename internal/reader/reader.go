// Released under an MIT license. See LICENSE.

// Package reader gathers lines of input into complete knot statements.
package reader

import (
	"strings"

	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

// T (reader) accumulates lines until their braces and brackets balance.
type T struct {
	buf  strings.Builder
	name string
	line int
	from int
}

type reader = T

// New creates a new reader for the input called name.
func New(name string) *T {
	return &T{name: name}
}

// Name returns the name of the reader's input.
func (r *reader) Name() string {
	return r.name
}

// Pending returns true if a statement has been started but not completed.
func (r *reader) Pending() bool {
	return r.buf.Len() > 0
}

// Position returns the line number at which the pending, or last
// completed, statement started.
func (r *reader) Position() int {
	return r.from
}

// Reset discards any pending statement.
func (r *reader) Reset() {
	r.buf.Reset()
}

// Scan adds line to the pending statement. It returns the statement once
// it is complete, nil if more lines are needed, or an error if the
// statement can never be completed. The pending statement is discarded
// after an error.
func (r *reader) Scan(line string) (*value.T, error) {
	r.line++

	if r.buf.Len() == 0 {
		if strings.TrimSpace(line) == "" {
			return nil, nil
		}

		r.from = r.line
	} else {
		r.buf.WriteByte('\n')
	}

	r.buf.WriteString(strings.TrimRight(line, "\r\n"))

	s := r.buf.String()

	ok, err := value.Balanced(s)
	if err != nil {
		r.buf.Reset()

		return nil, err
	}

	if !ok {
		return nil, nil
	}

	r.buf.Reset()

	return value.New(s), nil
}
