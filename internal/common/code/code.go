// Released under an MIT license. See LICENSE.

// Package code provides knot's control-flow result codes.
package code

// T (code) is the result of executing a statement, a script or a callable.
type T int

// Control-flow codes. OK is the zero value.
const (
	OK T = iota
	Error
	Yield
	Break
	Continue
	Return
	Exit
)

//nolint:gochecknoglobals
var names = [...]string{
	OK:       "ok",
	Error:    "error",
	Yield:    "yield",
	Break:    "break",
	Continue: "continue",
	Return:   "return",
	Exit:     "exit",
}

// Abrupt returns true if c stops the remaining statements of a script.
func (c T) Abrupt() bool {
	return c != OK
}

// Loop translates the code c produced by a loop body into the code seen by
// the loop construct and reports whether the loop should keep going.
func (c T) Loop() (T, bool) {
	switch c {
	case OK, Continue, Yield:
		return OK, true
	case Break:
		return OK, false
	default:
		return c, false
	}
}

// String returns the name of the code c.
func (c T) String() string {
	if c < 0 || int(c) >= len(names) {
		return "unknown"
	}

	return names[c]
}
