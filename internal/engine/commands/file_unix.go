// Released under an MIT license. See LICENSE.

//go:build linux || darwin

package commands

import (
	"os"

	"github.com/google/uuid"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/fd"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

var modes = map[string]int{
	"r":  os.O_RDONLY,
	"w":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	"a":  os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	"rw": os.O_RDWR | os.O_CREATE,
}

func files(m map[string]engine.Builtin) {
	m["open"] = open
	m["pipe"] = makePipe
}

// open path ?mode?
func open(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 2)

	path := v[0].String()

	mode := "r"
	if len(v) == 2 {
		mode = v[1].String()
	}

	flag, ok := modes[mode]
	if !ok {
		return e.Fail("invalid mode: %s", mode)
	}

	f, err := os.OpenFile(path, flag, 0o666) //nolint:gosec
	if err != nil {
		return e.Fail("%v", err)
	}

	e.SetResult(value.Handle(path, fd.New(f)))

	return code.OK
}

// pipe returns a list holding the read end and the write end of a pipe.
func makePipe(e *engine.T, args []*value.T) code.T {
	validate.Fixed(args[1:], 0, 0)

	r, w, err := fd.Pipe()
	if err != nil {
		return e.Fail("%v", err)
	}

	id := "pipe-" + uuid.NewString()

	e.SetResult(value.List(
		value.Handle(id+"-r", r),
		value.Handle(id+"-w", w),
	))

	return code.OK
}
