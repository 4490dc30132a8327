// Released under an MIT license. See LICENSE.

package commands

import (
	"math"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

type operation struct {
	f func(a, b float64) float64
	i func(a, b int64) (int64, bool)
}

func add(e *engine.T, args []*value.T) code.T {
	return arithmetic(e, args, operation{
		f: func(a, b float64) float64 { return a + b },
		i: func(a, b int64) (int64, bool) {
			r := a + b

			return r, (r > a) == (b > 0)
		},
	})
}

func div(e *engine.T, args []*value.T) code.T {
	for _, a := range args[2:] {
		if validate.Number(a) == 0 {
			return e.Fail("division by zero")
		}
	}

	return arithmetic(e, args, operation{
		f: func(a, b float64) float64 { return a / b },
	})
}

func incr(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 2)

	k := v[0].String()

	n := int64(1)
	if len(v) == 2 {
		n = validate.Integer(v[1])
	}

	caller := e.Caller()

	i := int64(0)
	if x, f := caller.Resolve(k); f != nil {
		caller = f
		i = validate.Integer(x)
	}

	sum := i + n
	if (sum > i) != (n > 0) {
		return e.Fail("%s: integer overflow", args[0])
	}

	r := value.Integer(sum)

	caller.Set(k, r)
	e.SetResult(r)

	return code.OK
}

func mod(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 2, 2)

	dividend, ok := integral(v[0])
	if !ok {
		return e.Fail("dividend must be an integer")
	}

	divisor, ok := integral(v[1])
	if !ok {
		return e.Fail("divisor must be an integer")
	}

	if divisor == 0 {
		return e.Fail("division by zero")
	}

	e.SetResult(value.Integer(dividend % divisor))

	return code.OK
}

func mul(e *engine.T, args []*value.T) code.T {
	return arithmetic(e, args, operation{
		f: func(a, b float64) float64 { return a * b },
		i: func(a, b int64) (int64, bool) {
			if a == 0 || b == 0 {
				return 0, true
			}

			r := a * b

			return r, r/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64)
		},
	})
}

func sub(e *engine.T, args []*value.T) code.T {
	return arithmetic(e, args, operation{
		f: func(a, b float64) float64 { return a - b },
		i: func(a, b int64) (int64, bool) {
			r := a - b

			return r, (r < a) == (b > 0)
		},
	})
}

// arithmetic folds op over the arguments. The result is an integer if op
// has an integer form, every argument is an integer and no step overflows.
func arithmetic(e *engine.T, args []*value.T, op operation) code.T {
	v, rest := validate.Variadic(args[1:], 1, 1)

	if op.i != nil {
		acc, ok := integral(v[0])
		for _, a := range rest {
			if !ok {
				break
			}

			var i int64

			if i, ok = integral(a); ok {
				acc, ok = op.i(acc, i)
			}
		}

		if ok {
			e.SetResult(value.Integer(acc))

			return code.OK
		}
	}

	acc := validate.Number(v[0])
	for _, a := range rest {
		acc = op.f(acc, validate.Number(a))
	}

	if math.IsNaN(acc) || math.IsInf(acc, 0) {
		return e.Fail("%s: result out of range", args[0])
	}

	e.SetResult(value.Number(acc))

	return code.OK
}

// integral returns v as an integer if it is one exactly.
func integral(v *value.T) (int64, bool) {
	if v.Origin() == value.Float {
		return 0, false
	}

	f, err := v.Float()
	if err != nil {
		return 0, false
	}

	i, err := v.Int()
	if err != nil || float64(i) != f {
		return 0, false
	}

	return i, true
}
