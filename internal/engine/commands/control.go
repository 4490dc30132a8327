// Released under an MIT license. See LICENSE.

package commands

import (
	"fmt"
	"strings"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

func brk(_ *engine.T, args []*value.T) code.T {
	validate.Fixed(args[1:], 0, 0)

	return code.Break
}

func cont(_ *engine.T, args []*value.T) code.T {
	validate.Fixed(args[1:], 0, 0)

	return code.Continue
}

func eval(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	return e.Do(v[0])
}

func exit(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 0, 1)

	if len(v) == 1 {
		e.SetResult(v[0])
	}

	return code.Exit
}

func foreach(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 3, 3)

	k := v[0].String()

	l := v[1].Retain()
	defer l.Release()

	caller := e.Caller()

	for _, x := range validate.Seq(l) {
		caller.Set(k, x)

		c, more := e.Do(v[2]).Loop()
		if !more {
			return c
		}
	}

	return code.OK
}

func loop(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	for {
		c, more := e.Do(v[0]).Loop()
		if !more {
			return c
		}
	}
}

func proc(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 3, 3)

	name := v[0].String()

	var params []string
	for _, p := range validate.Seq(v[1]) {
		params = append(params, p.String())
	}

	p := value.Callback(name, e.NewProcedure(params, v[2]))

	e.Caller().Set(name, p)
	e.SetResult(p)

	return code.OK
}

func raise(e *engine.T, args []*value.T) code.T {
	validate.Variadic(args[1:], 1, 1)

	msg := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		msg = append(msg, a.String())
	}

	return e.Fail("%s", strings.Join(msg, " "))
}

func ret(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 0, 1)

	if len(v) == 1 {
		e.SetResult(v[0])
	}

	return code.Return
}

// try body ?catch name body? ?finally body?
func try(e *engine.T, args []*value.T) code.T {
	v, rest := validate.Variadic(args[1:], 1, 1)

	var (
		name    string
		handler *value.T
		cleanup *value.T
	)

	for len(rest) > 0 {
		switch rest[0].String() {
		case "catch":
			if handler != nil || cleanup != nil {
				panic("unexpected catch clause")
			}

			var w []*value.T

			w, rest = validate.Variadic(rest[1:], 2, 2)
			name, handler = w[0].String(), w[1]

		case "finally":
			cleanup = validate.Fixed(rest[1:], 1, 1)[0]
			rest = nil

		default:
			panic(fmt.Sprintf("expected catch or finally, got %s", rest[0]))
		}
	}

	c := e.Do(v[0])
	if c == code.Error {
		switch {
		case handler != nil:
			e.Caller().Set(name, e.Result())

			c = e.Do(handler)

		case !e.Config().Raise:
			e.SetResult(nil)

			c = code.OK
		}
	}

	if cleanup == nil {
		return c
	}

	saved := e.Result().Retain()
	defer saved.Release()

	if fc := e.Protect(func() code.T { return e.Do(cleanup) }); fc != code.OK {
		return fc
	}

	e.SetResult(saved)

	return c
}

// if cond body ?elif cond body?... ?else body?
func when(e *engine.T, args []*value.T) code.T {
	clauses := args[1:]
	validate.Variadic(clauses, 2, 2)

	for {
		ok, c := e.Test(clauses[0])
		if c != code.OK {
			return c
		}

		if ok {
			return e.Do(clauses[1])
		}

		clauses = clauses[2:]
		if len(clauses) == 0 {
			return code.OK
		}

		switch clauses[0].String() {
		case "elif":
			clauses = clauses[1:]
			validate.Variadic(clauses, 2, 2)
		case "else":
			return e.Do(validate.Fixed(clauses[1:], 1, 1)[0])
		default:
			panic(fmt.Sprintf("expected elif or else, got %s", clauses[0]))
		}
	}
}

// while cond body
func while(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 2, 2)

	for {
		ok, c := e.Test(v[0])
		if c != code.OK {
			return c
		}

		if !ok {
			return code.OK
		}

		c, more := e.Do(v[1]).Loop()
		if !more {
			return c
		}
	}
}
