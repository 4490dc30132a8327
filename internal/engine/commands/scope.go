// Released under an MIT license. See LICENSE.

package commands

import (
	"sort"

	"github.com/michaelmacinnis/adapted"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

func bind(e *engine.T, f *frame.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 2, 2)

	f.Set(v[0].String(), v[1])
	e.SetResult(v[1])

	return code.OK
}

func export(e *engine.T, args []*value.T) code.T {
	return bind(e, e.Outer(), args)
}

func global(e *engine.T, args []*value.T) code.T {
	return bind(e, e.Global(), args)
}

func local(e *engine.T, args []*value.T) code.T {
	return bind(e, e.Caller(), args)
}

func names(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 0, 1)

	seen := map[string]bool{}

	for f := e.Caller(); f != nil; f = f.Previous() {
		for _, k := range f.Names() {
			seen[k] = true
		}
	}

	found := make([]string, 0, len(seen))

	for k := range seen {
		if len(v) == 1 {
			ok, err := adapted.Match(v[0].String(), k)
			if err != nil {
				return e.Fail("%v", err)
			}

			if !ok {
				continue
			}
		}

		found = append(found, k)
	}

	sort.Strings(found)

	l := value.List()
	for _, k := range found {
		_ = l.Append(value.New(k))
	}

	e.SetResult(l)

	return code.OK
}

func set(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 2)

	k := v[0].String()
	caller := e.Caller()

	if len(v) == 1 {
		r, err := caller.Lookup(k)
		if err != nil {
			return e.Fail("%v", err)
		}

		e.SetResult(r)

		return code.OK
	}

	if _, f := caller.Resolve(k); f != nil {
		caller = f
	}

	caller.Set(k, v[1])
	e.SetResult(v[1])

	return code.OK
}

func unset(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	k := v[0].String()

	if _, f := e.Caller().Resolve(k); f == nil || !f.Del(k) {
		return e.Fail("%v: %s", frame.ErrUnbound, k)
	}

	return code.OK
}
