// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for knot scripts.
package engine

import (
	"bufio"
	"fmt"
	"io"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/engine/offload"
	"github.com/michaelmacinnis/knot/internal/engine/task"
	"github.com/michaelmacinnis/knot/internal/system/config"
)

// Builtin is a command implemented in Go. It receives the full argument
// list, with the command name first, and leaves its output in the current
// thread's result slot.
type Builtin func(e *T, args []*value.T) code.T

// IO holds the streams an evaluator starts with.
type IO struct {
	Stdin  stream.I
	Stdout io.Writer
	Stderr io.Writer
}

// T (engine) evaluates knot scripts.
type T struct {
	config *config.T
	global *frame.T
	pool   *offload.Pool
	sched  *task.Scheduler

	exit *value.T
	out  *bufio.Writer

	stderr io.Writer
	stdout io.Writer
}

// New creates an evaluator with the settings c and the streams in s. Nil
// settings are the defaults.
func New(c *config.T, s IO) (*T, error) {
	if c == nil {
		c = config.Default()
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	global, err := frame.New(nil, c.MaxDepth)
	if err != nil {
		return nil, err
	}

	e := &T{
		config: c,
		global: global,
		pool:   offload.New(c.Workers),
		sched:  task.New(c.Quantum, global),
		stderr: s.Stderr,
		stdout: s.Stdout,
	}

	if e.stderr == nil {
		e.stderr = io.Discard
	}

	if e.stdout == nil {
		e.stdout = io.Discard
	}

	if !c.Unbuffered {
		e.out = bufio.NewWriter(e.stdout)
		e.stdout = e.out
	}

	e.sched.SetIdle(e.pool.Await)

	if s.Stdin != nil {
		global.Set("stdin", value.Handle("stdin", s.Stdin))
	}

	global.Set("stdout", value.Handle("stdout", stream.Writer(e.stdout)))
	global.Set("stderr", value.Handle("stderr", stream.Writer(e.stderr)))

	return e, nil
}

// Config returns the evaluator's settings.
func (e *T) Config() *config.T {
	return e.config
}

// Define binds name, in the global frame, to the builtin b.
func (e *T) Define(name string, b Builtin) {
	e.global.Set(name, value.Callback(name, &builtin{e: e, fn: b}))
}

// ExitValue returns the value passed to exit by a thread other than the
// main thread, or nil.
func (e *T) ExitValue() *value.T {
	return e.exit
}

// Fail sets the current thread's result to an error message and returns
// code.Error.
func (e *T) Fail(format string, args ...any) code.T {
	e.SetResult(value.New(fmt.Sprintf(format, args...)))

	return code.Error
}

// Flush writes any buffered output.
func (e *T) Flush() error {
	if e.out == nil {
		return nil
	}

	return e.out.Flush()
}

// Result returns the current thread's result.
func (e *T) Result() *value.T {
	return e.sched.Current().Result()
}

// Run evaluates the script text s in the current thread.
func (e *T) Run(s string) (*value.T, code.T) {
	c := e.Call(value.New(s))

	return e.Result(), c
}

// SetResult replaces the current thread's result.
func (e *T) SetResult(v *value.T) {
	e.sched.Current().SetResult(v)
}

// Shutdown stops every other thread, letting finally clauses run, and
// releases the evaluator's workers. It must be called by the main thread.
func (e *T) Shutdown() error {
	e.sched.Shutdown()

	err := e.pool.Close()

	if ferr := e.Flush(); err == nil {
		err = ferr
	}

	return err
}

// Stdout returns the writer that receives standard output.
func (e *T) Stdout() io.Writer {
	return e.stdout
}

// Stderr returns the writer that receives diagnostics.
func (e *T) Stderr() io.Writer {
	return e.stderr
}

type builtin struct {
	e  *T
	fn Builtin
}

func (b *builtin) Call(args []*value.T) code.T {
	return b.fn(b.e, args)
}
