// Released under an MIT license. See LICENSE.

// Package validate checks builtin argument lists. Failures panic with a
// message; the evaluator turns the panic into an error result.
package validate

import (
	"fmt"

	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

// Variadic returns the first max values in actual, panicking if there are
// fewer than min, along with any values that remain.
func Variadic(actual []*value.T, min, max int) ([]*value.T, []*value.T) {
	if len(actual) < min {
		s := Count(min, "argument", "s")
		panic(fmt.Sprintf("expected %s, passed %d", s, len(actual)))
	}

	if len(actual) < max {
		return actual, nil
	}

	return actual[:max], actual[max:]
}

// Fixed returns actual, panicking unless it holds min to max values.
func Fixed(actual []*value.T, min, max int) []*value.T {
	expected, rest := Variadic(actual, min, max)
	if len(rest) != 0 {
		s := Count(max, "argument", "s")
		n := len(actual)

		panic(fmt.Sprintf("expected %s, passed %d", s, n))
	}

	return expected
}

// Count returns n and label, pluralized with p if n is not 1.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}

// Integer returns v as an integer, panicking if it is not one.
func Integer(v *value.T) int64 {
	i, err := v.Int()
	if err != nil {
		panic(err.Error())
	}

	return i
}

// Number returns v as a float, panicking if it is not a number.
func Number(v *value.T) float64 {
	f, err := v.Float()
	if err != nil {
		panic(err.Error())
	}

	return f
}

// Seq returns the elements of v, panicking if v is not a sequence.
func Seq(v *value.T) []*value.T {
	es, err := v.Seq()
	if err != nil {
		panic(err.Error())
	}

	return es
}
