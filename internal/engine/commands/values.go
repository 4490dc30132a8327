// Released under an MIT license. See LICENSE.

package commands

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

// echo returns a single argument as it is and joins several with spaces.
func echo(e *engine.T, args []*value.T) code.T {
	if len(args) == 2 {
		e.SetResult(args[1])

		return code.OK
	}

	words := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		words = append(words, a.String())
	}

	e.SetResult(value.New(strings.Join(words, " ")))

	return code.OK
}

func index(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 2, 2)

	x, err := v[0].Index(int(validate.Integer(v[1])))
	if err != nil {
		return e.Fail("%v", err)
	}

	e.SetResult(x)

	return code.OK
}

func lappend(e *engine.T, args []*value.T) code.T {
	v, rest := validate.Variadic(args[1:], 1, 1)

	k := v[0].String()

	l, f := writable(e, k)
	if err := l.Append(rest...); err != nil {
		return e.Fail("%v", err)
	}

	f.Set(k, l)
	e.SetResult(l)

	return code.OK
}

func length(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	n, err := v[0].Len()
	if err != nil {
		return e.Fail("%v", err)
	}

	e.SetResult(value.Integer(int64(n)))

	return code.OK
}

func list(e *engine.T, args []*value.T) code.T {
	e.SetResult(value.List(args[1:]...))

	return code.OK
}

func lpop(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	k := v[0].String()

	l, f := writable(e, k)

	x, err := l.Pop()
	if err != nil {
		return e.Fail("%s: %v", k, err)
	}

	f.Set(k, l)
	e.SetResult(x)
	x.Release()

	return code.OK
}

// unescape text replaces backslash escapes with the bytes they represent.
func unescape(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	s := v[0].String()

	var b strings.Builder

	for len(s) > 0 {
		r, multibyte, tail, err := strconv.UnquoteChar(s, 0)
		if err != nil {
			return e.Fail("unescape: %v", err)
		}

		if r < utf8.RuneSelf || !multibyte {
			b.WriteByte(byte(r))
		} else {
			b.WriteRune(r)
		}

		s = tail
	}

	e.SetResult(value.New(b.String()))

	return code.OK
}

// writable returns the sequence bound to k, copied first if anything else
// shares it, and the frame it belongs in. An unbound k starts out empty in
// the caller's frame.
func writable(e *engine.T, k string) (*value.T, *frame.T) {
	caller := e.Caller()

	l, f := caller.Resolve(k)
	if f == nil {
		return value.List(), caller
	}

	if l.Shared() {
		l = l.Dup()
	}

	return l, f
}
