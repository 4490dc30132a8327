// Released under an MIT license. See LICENSE.

package task

import (
	"runtime"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
)

const debug = false

// Scheduler runs tasks round-robin, one at a time. The running task holds
// the baton; it passes the baton only at a yield or when it finishes.
type Scheduler struct {
	current *T
	exiting bool
	idle    func()
	main    *T
	quantum int
	queue   []*T
	spawned int
	steps   int
}

// New creates a scheduler whose main task runs on the calling goroutine in
// the frame f. A forced yield happens every quantum statements.
func New(quantum int, f *frame.T) *Scheduler {
	if quantum < 1 {
		quantum = 1
	}

	m := fresh(f, nil)

	return &Scheduler{
		current: m,
		idle:    runtime.Gosched,
		main:    m,
		quantum: quantum,
		queue:   []*T{m},
	}
}

// After is called by the evaluator after every statement with the code c
// the statement produced for the task t.
func (s *Scheduler) After(t *T, c code.T) code.T {
	if c == code.Yield {
		s.Yield()

		c = code.OK
	}

	s.steps++
	if s.steps >= s.quantum {
		s.Yield()
	}

	if s.exiting && t.finally == 0 {
		c = code.Exit
	}

	return c
}

// Alone returns true if no other unfinished task exists.
func (s *Scheduler) Alone() bool {
	for _, t := range s.queue {
		if t != s.current && !t.finished {
			return false
		}
	}

	return true
}

// Block marks the current task as blocked until ready returns true.
func (s *Scheduler) Block(ready func() bool) {
	s.current.ready = ready
}

// Current returns the task holding the baton.
func (s *Scheduler) Current() *T {
	return s.current
}

// Exit marks the interpreter as exiting. Every later statement outside
// a finally phase reports code.Exit.
func (s *Scheduler) Exit() {
	s.exiting = true
}

// Exiting returns true if the interpreter is exiting.
func (s *Scheduler) Exiting() bool {
	return s.exiting
}

// Join yields until the task t has finished.
func (s *Scheduler) Join(t *T) code.T {
	for !t.finished {
		if !s.Yield() {
			s.idle()
		}
	}

	return t.code
}

// Main returns the main task.
func (s *Scheduler) Main() *T {
	return s.main
}

// SetIdle sets the function called when every other task is blocked and the
// current task has nothing to do but wait.
func (s *Scheduler) SetIdle(f func()) {
	s.idle = f
}

// Shutdown marks the interpreter as exiting and runs the other tasks until
// they have all finished. It must be called by the main task.
func (s *Scheduler) Shutdown() {
	s.exiting = true

	s.sweep()

	for len(s.queue) > 1 {
		if !s.Yield() {
			s.idle()
		}
	}
}

// Spawn creates a task that runs body in the frame f and queues it to run
// after the current task, behind any other task the current task has
// spawned since it last yielded. The new task does not run until then.
func (s *Scheduler) Spawn(f *frame.T, body func(*T) code.T) *T {
	t := fresh(f, body)
	t.background = true

	i := s.index(s.current) + 1 + s.spawned
	if i > len(s.queue) {
		i = len(s.queue)
	}

	s.queue = append(s.queue, nil)
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = t

	s.spawned++

	go s.run(t)

	return t
}

// Stalled returns true if every other unfinished task is blocked.
func (s *Scheduler) Stalled() bool {
	for _, t := range s.queue {
		if t != s.current && t.runnable() {
			return false
		}
	}

	return true
}

// Tasks returns the number of tasks, including the main task.
func (s *Scheduler) Tasks() int {
	return len(s.queue)
}

// Unblock clears the current task's blocked state.
func (s *Scheduler) Unblock() {
	s.current.ready = nil
}

// Yield passes the baton to the next runnable task, if there is one, and
// waits to get it back. It returns false if there was nothing else to run.
func (s *Scheduler) Yield() bool {
	s.steps = 0

	current := s.current

	next := s.next(current, (*T).runnable)
	if next == nil {
		s.sweep()

		return false
	}

	s.handoff(next)
	<-current.wake

	s.sweep()

	return true
}

func (s *Scheduler) handoff(next *T) {
	if debug {
		println("handoff:", s.current.Name(), "->", next.Name())
	}

	s.current.background = true
	next.background = false

	s.current = next
	s.spawned = 0
	s.steps = 0

	next.wake <- struct{}{}
}

func (s *Scheduler) index(t *T) int {
	for i, q := range s.queue {
		if q == t {
			return i
		}
	}

	return -1
}

// next scans the queue from just after t, wrapping, for a task that is ok.
func (s *Scheduler) next(t *T, ok func(*T) bool) *T {
	i := s.index(t)
	n := len(s.queue)

	for k := 1; k < n; k++ {
		q := s.queue[(i+k)%n]
		if ok(q) {
			return q
		}
	}

	return nil
}

func (s *Scheduler) run(t *T) {
	<-t.wake

	t.code = t.body(t)
	t.finished = true

	if t.dropped {
		t.release()
	}

	next := s.next(t, (*T).runnable)
	if next == nil {
		next = s.next(t, (*T).unfinished)
	}

	if next == nil {
		panic("no task left to run")
	}

	s.handoff(next)
}

// sweep removes finished tasks from the queue.
func (s *Scheduler) sweep() {
	live := s.queue[:0]

	for _, t := range s.queue {
		if !t.finished || t == s.current {
			live = append(live, t)
		}
	}

	for i := len(live); i < len(s.queue); i++ {
		s.queue[i] = nil
	}

	s.queue = live
}
