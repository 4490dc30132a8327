// Released under an MIT license. See LICENSE.

package commands

import (
	"time"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

func join(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	r, c, err := e.Join(v[0])
	if err != nil {
		return e.Fail("%v", err)
	}

	e.SetResult(r)

	if c == code.Error {
		return code.Error
	}

	return code.OK
}

func sleep(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	d := time.Duration(validate.Number(v[0]) * float64(time.Millisecond))

	if _, err := e.Offload(func(any) any {
		time.Sleep(d)

		return nil
	}, nil); err != nil {
		return e.Fail("%v", err)
	}

	return code.OK
}

func spawn(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	h, err := e.Spawn(v[0])
	if err != nil {
		return e.Fail("%v", err)
	}

	e.SetResult(h)

	return code.OK
}

// thread returns the name of the current thread. A spawned thread's name
// is the text of its handle.
func thread(e *engine.T, args []*value.T) code.T {
	validate.Fixed(args[1:], 0, 0)

	e.SetResult(value.New(e.Thread()))

	return code.OK
}

func yield(_ *engine.T, args []*value.T) code.T {
	validate.Fixed(args[1:], 0, 0)

	return code.Yield
}
