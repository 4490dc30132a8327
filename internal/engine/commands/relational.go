// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

func boolean(b bool) *value.T {
	if b {
		return value.Integer(1)
	}

	return value.Integer(0)
}

func eq(e *engine.T, args []*value.T) code.T {
	v, rest := validate.Variadic(args[1:], 2, 2)

	r := v[0].Equal(v[1])
	for _, a := range rest {
		r = r && v[0].Equal(a)
	}

	e.SetResult(boolean(r))

	return code.OK
}

func lt(e *engine.T, args []*value.T) code.T {
	v, rest := validate.Variadic(args[1:], 2, 2)

	prev := validate.Number(v[0])
	r := true

	for _, a := range append(v[1:2:2], rest...) {
		curr := validate.Number(a)
		if prev >= curr {
			r = false
		}

		prev = curr
	}

	e.SetResult(boolean(r))

	return code.OK
}

func not(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	e.SetResult(boolean(!v[0].True()))

	return code.OK
}
