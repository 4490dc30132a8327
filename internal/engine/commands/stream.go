// Released under an MIT license. See LICENSE.

package commands

import (
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
	"github.com/michaelmacinnis/knot/internal/common/type/chn"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/common/validate"
	"github.com/michaelmacinnis/knot/internal/engine"
)

const capacity = 4096

func closeStream(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 1)

	h := handle(e, v[0])
	if h == nil {
		return e.Fail("%s: not a stream", v[0])
	}

	if err := h.Close(); err != nil {
		return e.Fail("%v", err)
	}

	return code.OK
}

// chan ?capacity?
func makeChan(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 0, 1)

	n := capacity
	if len(v) == 1 {
		n = int(validate.Integer(v[0]))
	}

	e.SetResult(value.Handle("chan-"+uuid.NewString(), chn.New(n)))

	return code.OK
}

// puts ?stream? text
func puts(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 2)

	target := value.New("stdout")
	if len(v) == 2 {
		target = v[0]
	}

	s, err := streamOf(e, target)
	if err != nil {
		return e.Fail("%v", err)
	}

	text := v[len(v)-1].String() + "\n"

	if err := stream.WriteAll(s, []byte(text), e.WriteWait(s)); err != nil {
		return e.Fail("%v", err)
	}

	return code.OK
}

// read stream ?n?
func read(e *engine.T, args []*value.T) code.T {
	v := validate.Fixed(args[1:], 1, 2)

	n := 0
	if len(v) == 2 {
		n = int(validate.Integer(v[1]))
	}

	s, err := streamOf(e, v[0])
	if err != nil {
		return e.Fail("%v", err)
	}

	r, err := stream.ReadValue(s, n, e.ReadWait(s))
	if err != nil && !errors.Is(err, io.EOF) {
		return e.Fail("%v", err)
	}

	e.SetResult(r)

	return code.OK
}

// handle returns v if it owns a resource, otherwise the value bound to the
// name v, if that owns one.
func handle(e *engine.T, v *value.T) *value.T {
	if v.Resource() != nil {
		return v
	}

	b, err := e.Caller().Lookup(v.String())
	if err != nil || b.Resource() == nil {
		return nil
	}

	return b
}

func streamOf(e *engine.T, v *value.T) (stream.I, error) {
	h := handle(e, v)
	if h == nil {
		return nil, errors.New(v.String() + ": not a stream")
	}

	if h.Closed() {
		return nil, stream.ErrClosed
	}

	s, ok := h.Resource().(stream.I)
	if !ok {
		return nil, errors.New(v.String() + ": not a stream")
	}

	return s, nil
}
