// Released under an MIT license. See LICENSE.

package engine

import (
	"fmt"
	"strings"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/engine/task"
)

// Call runs each statement in script in turn. Blank statements and comments
// are skipped. It stops at the first statement that does not return
// code.OK and returns that statement's code.
func (e *T) Call(script *value.T) code.T {
	script.Retain()
	defer script.Release()

	stmts, err := script.Seq()
	if err != nil {
		return e.Fail("%v", err)
	}

	for _, s := range stmts {
		if skip(s.String()) {
			continue
		}

		if c := e.Exec(s); c != code.OK {
			return c
		}
	}

	return code.OK
}

// Do runs script as if its statements appeared in place of the statement
// being executed. Names they bind land in the caller's frame.
func (e *T) Do(script *value.T) code.T {
	t := e.sched.Current()

	saved := t.Frame
	t.Frame = e.Caller()

	defer func() {
		t.Frame = saved
	}()

	return e.Call(script)
}

// Eval evaluates a single word. A word starting with $ is replaced by the
// value of the variable it names. A word starting with [ is replaced by the
// result of the statement it encloses. Literal words, and any other word,
// are themselves.
func (e *T) Eval(w *value.T) (*value.T, code.T) {
	if w.Literal() {
		return w, code.OK
	}

	s := w.String()

	switch {
	case strings.HasPrefix(s, "$"):
		v, err := e.Frame().Lookup(s[1:])
		if err != nil {
			return nil, e.Fail("%v", err)
		}

		return v, code.OK

	case strings.HasPrefix(s, "["):
		if !strings.HasSuffix(s, "]") {
			return nil, e.Fail("unbalanced brackets: %s", s)
		}

		if c := e.Exec(value.New(s[1 : len(s)-1])); c != code.OK {
			return nil, c
		}

		return e.Result(), code.OK
	}

	return w, code.OK
}

// Exec runs the statement stmt in a new frame. Each word is evaluated, the
// current thread's result is reset and the first argument is dispatched.
func (e *T) Exec(stmt *value.T) code.T {
	t := e.sched.Current()

	f, err := frame.New(t.Frame, e.config.MaxDepth)
	if err != nil {
		return e.Fail("%v", err)
	}

	return e.sched.After(t, e.exec(t, f, stmt))
}

// Test returns the truth of the argument w. If w was written in braces its
// text is evaluated as a word in the caller's frame each time it is tested.
// Any other argument was already substituted and is taken as it is.
func (e *T) Test(w *value.T) (bool, code.T) {
	if !e.Frame().Braced(w) {
		return w.True(), code.OK
	}

	t := e.sched.Current()

	saved := t.Frame
	t.Frame = e.Caller()

	defer func() {
		t.Frame = saved
	}()

	v, c := e.Eval(value.New(w.String()))
	if c != code.OK {
		return false, c
	}

	return v.True(), code.OK
}

// Frame returns the frame of the statement being executed.
func (e *T) Frame() *frame.T {
	return e.sched.Current().Frame
}

// Caller returns the frame of the statement that is running the statement
// being executed. At the top level this is the global frame.
func (e *T) Caller() *frame.T {
	if p := e.Frame().Previous(); p != nil {
		return p
	}

	return e.global
}

// Global returns the global frame.
func (e *T) Global() *frame.T {
	return e.global
}

// Outer returns the frame enclosing the caller's frame.
func (e *T) Outer() *frame.T {
	if p := e.Caller().Previous(); p != nil {
		return p
	}

	return e.global
}

func (e *T) dispatch(f *frame.T, args []*value.T) code.T {
	c := args[0].Callable()
	if c == nil {
		name := args[0].String()

		v, _ := f.Resolve(name)
		if c = v.Callable(); c == nil {
			return e.Fail("no such command: %s", name)
		}
	}

	return e.invoke(c, args)
}

func (e *T) exec(t *task.T, f *frame.T, stmt *value.T) code.T {
	saved := t.Frame
	t.Frame = f

	defer func() {
		t.Frame = saved

		f.Release()
	}()

	words, err := stmt.Seq()
	if err != nil {
		return e.Fail("%v", err)
	}

	for _, w := range words {
		if w.Literal() {
			f.AddBraced(w)

			continue
		}

		v, c := e.Eval(w)
		if c != code.OK {
			return c
		}

		f.AddArg(v)
	}

	args := f.Args()

	if e.config.Trace {
		fmt.Fprintln(e.stderr, "+", value.Join(args))
	}

	t.SetResult(nil)

	if len(args) == 0 {
		return code.OK
	}

	return e.dispatch(f, args)
}

func (e *T) invoke(c value.Callable, args []*value.T) (rc code.T) {
	if !e.config.Optimistic {
		defer func() {
			if r := recover(); r != nil {
				rc = e.Fail("%s: %v", args[0], r)
			}
		}()
	}

	return c.Call(args)
}

func skip(s string) bool {
	s = strings.TrimSpace(s)

	return s == "" || s[0] == '#'
}
