// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/knot/internal/common/code"
)

// B F X
// 0 0 X Task is the foreground task.
// 1 0 X Task is waiting for the baton.
// X 1 X Task has finished and will be swept.

// B F X
// X X 0 Task is not blocked.
// X X 1 Task is blocked on an operation run outside the interpreter. It is
//       not scheduled until ready reports true.

// The type state is a task's scheduling state. Only the task holding the
// baton reads or writes it, so it needs no lock.
type state struct {
	ready func() bool

	code code.T

	background bool
	dropped    bool
	finally    int
	finished   bool
}

// Background returns true if the task is not the foreground task.
func (s *state) Background() bool {
	return s.background
}

// Blocked returns true if the task is waiting on an operation that
// has not completed.
func (s *state) Blocked() bool {
	return s.ready != nil && !s.ready()
}

// Code returns the code the task finished with.
func (s *state) Code() code.T {
	return s.code
}

// EnterFinally marks the start of a phase that runs even while the
// interpreter is exiting.
func (s *state) EnterFinally() {
	s.finally++
}

// Finished returns true if the task has finished running.
func (s *state) Finished() bool {
	return s.finished
}

// LeaveFinally marks the end of a phase started by EnterFinally.
func (s *state) LeaveFinally() {
	if s.finally > 0 {
		s.finally--
	}
}

func (s *state) runnable() bool {
	return !s.finished && !s.Blocked()
}

func (s *state) unfinished() bool {
	return !s.finished
}
