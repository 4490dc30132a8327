// Released under an MIT license. See LICENSE.

// Package task provides knot's logical threads and their scheduler.
package task

import (
	"github.com/google/uuid"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

// T (task) encapsulates a logical thread of execution.
//
// A task only runs while it holds its scheduler's baton. Every task other
// than the main task runs on its own goroutine.
type T struct {
	*state

	ID    uuid.UUID
	Frame *frame.T

	body   func(*T) code.T
	result *value.T
	wake   chan struct{}
}

func fresh(f *frame.T, body func(*T) code.T) *T {
	return &T{
		state:  &state{},
		ID:     uuid.New(),
		Frame:  f,
		body:   body,
		result: value.New("").Retain(),
		wake:   make(chan struct{}, 1),
	}
}

// Name returns the text used for the task's handle.
func (t *T) Name() string {
	return "thread-" + t.ID.String()
}

// Drop is called when the task's handle is no longer referenced. The
// task's last result is released once the task has finished.
func (t *T) Drop() {
	if !t.finished {
		t.dropped = true

		return
	}

	t.release()
}

// Result returns the task's last result.
func (t *T) Result() *value.T {
	return t.result
}

// SetResult replaces the task's last result.
func (t *T) SetResult(v *value.T) {
	if v == nil {
		v = value.New("")
	}

	v.Retain()
	t.result.Release()
	t.result = v
}

func (t *T) release() {
	t.result.Release()
	t.result = value.New("").Retain()
}
