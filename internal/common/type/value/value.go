// Released under an MIT license. See LICENSE.

// Package value provides knot's universal value type.
//
// A value lazily holds up to four representations of one logical datum: a
// sequence, text, an integer and a float. Exactly one of these is the origin
// at creation. The others are derived on demand and cached. Text is
// canonical and is what the evaluator parses.
package value

import (
	"errors"
	"hash/fnv"
	"runtime"

	"github.com/michaelmacinnis/knot/internal/common/code"
)

// Kind is a set of representations.
type Kind uint8

// Representations a value can hold.
const (
	Seq Kind = 1 << iota
	Text
	Int
	Float
)

// ErrNil is returned when coercing a missing value.
var ErrNil = errors.New("no value")

// Callable is anything a value can dispatch to. Argument 0 is the name used
// to invoke the callable. Output is left in the caller's result slot.
type Callable interface {
	Call(args []*T) code.T
}

// Resource is an external resource owned by a value. Close is the value's
// destructor and is called at most once.
type Resource interface {
	Close() error
}

// T (value) is knot's universal value.
//
// Values are reference counted. A fresh value is floating: nothing owns it
// yet. Owners call Retain and Release. When the count drops to zero the value
// releases its elements and closes its resource.
type T struct {
	kind   Kind
	origin Kind

	seq  []*T
	text string
	i    int64
	f    float64

	sum    uint64
	summed bool

	call Callable
	res  Resource

	refs    int
	dead    bool
	closed  bool
	literal bool
}

type value = T

// New creates a value whose origin is the text s.
func New(s string) *value {
	return &value{kind: Text, origin: Text, text: s}
}

// Bytes creates a value whose origin is the text in b.
func Bytes(b []byte) *value {
	return New(string(b))
}

// Integer creates a value whose origin is the integer i.
func Integer(i int64) *value {
	return &value{kind: Int, origin: Int, i: i}
}

// Number creates a value whose origin is the float f.
func Number(f float64) *value {
	return &value{kind: Float, origin: Float, f: f}
}

// List creates a sequence holding vs. With no arguments it is empty.
func List(vs ...*T) *value {
	v := &value{kind: Seq, origin: Seq, seq: make([]*T, 0, len(vs))}

	for _, e := range vs {
		v.seq = append(v.seq, e.Retain())
	}

	return v
}

// Callback creates a callable value named name.
func Callback(name string, c Callable) *value {
	v := New(name)
	v.call = c

	return v
}

// Handle creates a value named name that owns the resource r.
// If the value is never owned, the resource is closed when the value is
// garbage collected.
func Handle(name string, r Resource) *value {
	v := New(name)
	v.res = r

	runtime.SetFinalizer(v, (*value).close)

	return v
}

// Callable returns the value's callable hook, if any.
func (v *value) Callable() Callable {
	if v == nil {
		return nil
	}

	return v.call
}

// Closed returns true if the value's resource has been closed.
func (v *value) Closed() bool {
	return v.closed
}

// Dup creates an unowned copy of v. Elements are shared, not copied.
// The callable hook is kept; the resource is not.
func (v *value) Dup() *value {
	d := &value{
		kind:   v.kind,
		origin: v.origin,
		text:   v.text,
		i:      v.i,
		f:      v.f,
		sum:    v.sum,
		summed: v.summed,
		call:   v.call,
	}

	if v.kind&Seq != 0 {
		d.seq = make([]*T, 0, len(v.seq))
		for _, e := range v.seq {
			d.seq = append(d.seq, e.Retain())
		}
	}

	return d
}

// Equal returns true if v and o have the same text.
func (v *value) Equal(o *T) bool {
	if v == o {
		return true
	}

	if v == nil || o == nil {
		return false
	}

	if v.hash() != o.hash() {
		return false
	}

	return v.String() == o.String()
}

// Has returns true if every representation in k is currently valid.
func (v *value) Has(k Kind) bool {
	return v.kind&k == k
}

// Literal returns true if v was a braced word. The evaluator does not
// substitute literal words.
func (v *value) Literal() bool {
	return v != nil && v.literal
}

// Origin returns the representation v was created from.
func (v *value) Origin() Kind {
	return v.origin
}

// Refs returns the number of owners of v.
func (v *value) Refs() int {
	return v.refs
}

// Release drops a reference to v.
func (v *value) Release() {
	if v == nil || v.refs == 0 {
		return
	}

	v.refs--
	if v.refs == 0 {
		v.destroy()
	}
}

// Resource returns the resource owned by v, if any.
func (v *value) Resource() Resource {
	if v == nil {
		return nil
	}

	return v.res
}

// Retain adds a reference to v and returns v.
func (v *value) Retain() *value {
	if v == nil {
		return nil
	}

	if v.dead {
		// Resurrected. Take back the references dropped by destroy.
		v.dead = false

		for _, e := range v.seq {
			e.Retain()
		}
	}

	v.refs++

	return v
}

// Shared returns true if something other than the caller also owns v.
func (v *value) Shared() bool {
	return v.refs > 1
}

// True returns the truth value of v, decided by its origin representation.
// An empty sequence is false. Text is false only when it is exactly "" or
// "0". Numbers are false when zero.
func (v *value) True() bool {
	if v == nil {
		return false
	}

	switch v.origin {
	case Seq:
		return len(v.seq) > 0
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	}

	s := v.String()

	return s != "" && s != "0"
}

// Close closes the resource owned by v, if it has not been closed already.
// The value itself stays usable as text.
func (v *value) Close() error {
	if v == nil || v.closed || v.res == nil {
		return nil
	}

	v.closed = true

	return v.res.Close()
}

func (v *value) close() {
	_ = v.Close()
}

func (v *value) destroy() {
	v.dead = true

	for _, e := range v.seq {
		e.Release()
	}

	v.close()
}

func (v *value) hash() uint64 {
	if !v.summed {
		h := fnv.New64a()
		_, _ = h.Write([]byte(v.String()))

		v.sum = h.Sum64()
		v.summed = true
	}

	return v.sum
}

// mutated marks the sequence as the only valid representation.
func (v *value) mutated() {
	v.kind = Seq
	v.origin = Seq
	v.text = ""
	v.summed = false
}
