// Released under an MIT license. See LICENSE.

// Package frame provides knot's scope/call stack frame type.
package frame

import (
	"errors"
	"fmt"

	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

// ErrOverflow is returned when pushing a frame past the depth bound.
var ErrOverflow = errors.New("stack overflow")

// ErrUnbound is returned when a name has no binding in any frame.
var ErrUnbound = errors.New("no such name")

// T (frame) is one lexical scope. It holds the arguments of the statement
// that pushed it and any names bound while it was current.
type T struct {
	previous *frame
	locals   map[string]*value.T
	args     []*value.T
	braced   []bool
	depth    int
}

type frame = T

// New creates a new frame enclosed by the frame p. It fails if the new
// frame would be deeper than max.
func New(p *frame, max int) (*frame, error) {
	f := &frame{previous: p}

	if p != nil {
		f.depth = p.depth + 1
	}

	if f.depth > max {
		return nil, ErrOverflow
	}

	return f, nil
}

// AddArg appends v to the frame's argument list.
func (f *frame) AddArg(v *value.T) {
	f.args = append(f.args, v.Retain())
	f.braced = append(f.braced, false)
}

// AddBraced appends v, written in braces in the statement, to the frame's
// argument list.
func (f *frame) AddBraced(v *value.T) {
	f.args = append(f.args, v.Retain())
	f.braced = append(f.braced, true)
}

// Braced returns true if v is an argument that was written in braces.
func (f *frame) Braced(v *value.T) bool {
	for i, a := range f.args {
		if a == v && f.braced[i] {
			return true
		}
	}

	return false
}

// Args returns the frame's argument list.
func (f *frame) Args() []*value.T {
	return f.args
}

// Del removes the binding for k from the frame f.
func (f *frame) Del(k string) bool {
	v, ok := f.locals[k]
	if !ok {
		return false
	}

	delete(f.locals, k)
	v.Release()

	return true
}

// Depth returns the number of frames enclosing f.
func (f *frame) Depth() int {
	return f.depth
}

// Get returns the value bound to k in the frame f only.
func (f *frame) Get(k string) (*value.T, bool) {
	v, ok := f.locals[k]

	return v, ok
}

// Global returns the outermost frame.
func (f *frame) Global() *frame {
	for f.previous != nil {
		f = f.previous
	}

	return f
}

// Lookup walks outward from f and returns the first value bound to k.
func (f *frame) Lookup(k string) (*value.T, error) {
	v, _ := f.Resolve(k)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnbound, k)
	}

	return v, nil
}

// Names returns the names bound in the frame f.
func (f *frame) Names() []string {
	names := make([]string, 0, len(f.locals))
	for k := range f.locals {
		names = append(names, k)
	}

	return names
}

// Previous returns the enclosing frame.
func (f *frame) Previous() *frame {
	return f.previous
}

// Release drops the frame's references to its locals and arguments.
func (f *frame) Release() {
	for k, v := range f.locals {
		delete(f.locals, k)
		v.Release()
	}

	for i, v := range f.args {
		f.args[i] = nil
		v.Release()
	}

	f.args = nil
	f.braced = nil
}

// Resolve walks outward from f and returns the first value bound to k and
// the frame holding it.
func (f *frame) Resolve(k string) (*value.T, *frame) {
	for ; f != nil; f = f.previous {
		if v, ok := f.locals[k]; ok {
			return v, f
		}
	}

	return nil, nil
}

// Set binds k to v in the frame f.
func (f *frame) Set(k string, v *value.T) {
	if f.locals == nil {
		f.locals = map[string]*value.T{}
	}

	v.Retain()

	if old, ok := f.locals[k]; ok {
		old.Release()
	}

	f.locals[k] = v
}
