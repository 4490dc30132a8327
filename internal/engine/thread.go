// Released under an MIT license. See LICENSE.

package engine

import (
	"errors"
	"fmt"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/engine/offload"
	"github.com/michaelmacinnis/knot/internal/engine/task"
)

// ErrDeadlock is returned when a thread waits on a stream that only another
// thread could make ready and there are no other threads.
var ErrDeadlock = errors.New("all threads are blocked")

// ErrNotThread is returned when joining a value that is not a thread handle.
var ErrNotThread = errors.New("not a thread")

type thread struct {
	t *task.T
}

// Close lets the thread release its result once it has finished.
func (h *thread) Close() error {
	h.t.Drop()

	return nil
}

// Join waits for the thread whose handle is v to finish. It returns the
// thread's result and the code its body finished with.
func (e *T) Join(v *value.T) (*value.T, code.T, error) {
	h, ok := v.Resource().(*thread)
	if !ok {
		return nil, code.Error, fmt.Errorf("%w: %s", ErrNotThread, v)
	}

	c := e.sched.Join(h.t)

	return h.t.Result(), c, nil
}

// Offload runs fn(arg) on a worker, letting other threads run meanwhile.
func (e *T) Offload(fn offload.Func, arg any) (any, error) {
	return e.pool.Offload(e.sched, fn, arg)
}

// Spawn creates a thread that runs body and returns its handle. The thread
// does not start until the current thread yields.
func (e *T) Spawn(body *value.T) (*value.T, error) {
	f, err := frame.New(e.global, e.config.MaxDepth)
	if err != nil {
		return nil, err
	}

	body.Retain()

	t := e.sched.Spawn(f, func(t *task.T) code.T {
		defer f.Release()
		defer body.Release()

		c := e.Call(body)

		switch c {
		case code.Error:
			fmt.Fprintf(e.stderr, "%s: %s\n", t.Name(), t.Result())
		case code.Exit:
			if e.exit == nil {
				e.exit = t.Result().Retain()
			}

			e.sched.Exit()
		}

		return c
	})

	return value.Handle(t.Name(), &thread{t: t}), nil
}

// Thread returns the name of the current thread.
func (e *T) Thread() string {
	return e.sched.Current().Name()
}

// Protect runs f in a phase that continues even while the interpreter is
// exiting.
func (e *T) Protect(f func() code.T) code.T {
	t := e.sched.Current()

	t.EnterFinally()
	defer t.LeaveFinally()

	return f()
}

// Exiting returns true if the interpreter is shutting down.
func (e *T) Exiting() bool {
	return e.sched.Exiting()
}

// ReadWait returns the function a reader of s calls when nothing is
// available.
func (e *T) ReadWait(s stream.I) func() error {
	if w, ok := s.(stream.Waiter); ok {
		return e.offloaded(w.WaitReadable)
	}

	return e.yield
}

// WriteWait returns the function a writer to s calls when s is full.
func (e *T) WriteWait(s stream.I) func() error {
	if w, ok := s.(stream.Waiter); ok {
		return e.offloaded(w.WaitWritable)
	}

	return e.yield
}

// Yield lets other threads run. It returns false if there were none.
func (e *T) Yield() bool {
	return e.sched.Yield()
}

func (e *T) offloaded(wait func() error) func() error {
	return func() error {
		r, err := e.Offload(func(any) any {
			return wait()
		}, nil)
		if err != nil {
			return err
		}

		if err, ok := r.(error); ok {
			return err
		}

		return nil
	}
}

func (e *T) yield() error {
	if e.sched.Yield() {
		return nil
	}

	if e.sched.Alone() {
		return ErrDeadlock
	}

	// Every other thread is waiting on a worker.
	e.pool.Await()

	return nil
}
