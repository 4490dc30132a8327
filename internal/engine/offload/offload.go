// Released under an MIT license. See LICENSE.

// Package offload provides a fixed pool of goroutines that run blocking
// operations on behalf of logical threads.
package offload

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned when offloading to a closed pool.
var ErrClosed = errors.New("offload pool is closed")

// Func is a blocking operation.
type Func func(arg any) any

// Scheduler is the part of the logical thread scheduler used while waiting.
type Scheduler interface {
	Alone() bool
	Block(ready func() bool)
	Stalled() bool
	Unblock()
	Yield() bool
}

// Pool is a fixed array of workers.
type Pool struct {
	sync.Mutex
	changed *sync.Cond

	closed  bool
	group   errgroup.Group
	waiting int
	workers []*Worker
}

// New creates a pool of n workers and starts them.
func New(n int) *Pool {
	p := &Pool{}
	p.changed = sync.NewCond(p)

	for i := 0; i < n; i++ {
		w := &Worker{pool: p}
		w.assigned = sync.NewCond(p)

		p.workers = append(p.workers, w)
		p.group.Go(w.run)
	}

	return p
}

// Await blocks until some worker has finished its operation.
func (p *Pool) Await() {
	p.Lock()
	defer p.Unlock()

	for !p.closed && !p.any(done) {
		p.changed.Wait()
	}
}

// Close stops the workers once their current operations finish.
func (p *Pool) Close() error {
	p.Lock()
	p.closed = true

	for _, w := range p.workers {
		w.assigned.Signal()
	}

	p.changed.Broadcast()
	p.Unlock()

	return p.group.Wait()
}

// Offload runs fn(arg) on a worker and returns its result. While the
// operation runs, the calling logical thread is blocked and the other
// logical threads keep running. If there are no other logical threads, fn
// runs inline.
func (p *Pool) Offload(s Scheduler, fn Func, arg any) (any, error) {
	if p.isClosed() {
		return nil, ErrClosed
	}

	if s.Alone() {
		return fn(arg), nil
	}

	s.Block(p.idle)
	defer s.Unblock()

	w := p.acquire()
	for w == nil {
		if p.isClosed() {
			return nil, ErrClosed
		}

		p.waiting++

		if !s.Yield() {
			p.Await()
		}

		p.waiting--

		w = p.acquire()
	}

	w.assign(fn, arg)

	s.Block(w.Done)

	for !w.Done() {
		if s.Stalled() || !s.Yield() {
			w.wait()
		}
	}

	r := w.reclaim()

	if p.waiting > 0 {
		s.Unblock()
		s.Yield()
	}

	return r, nil
}

// acquire returns an idle worker or nil if every worker is occupied.
// Only the logical thread holding the baton calls acquire, and it assigns
// the worker before yielding, so no other requester can take it.
func (p *Pool) acquire() *Worker {
	for _, w := range p.workers {
		if w.state.Load() == idle {
			return w
		}
	}

	return nil
}

// any returns true if some worker is in state s. Caller holds the lock.
func (p *Pool) any(s int32) bool {
	for _, w := range p.workers {
		if w.state.Load() == s {
			return true
		}
	}

	return false
}

func (p *Pool) idle() bool {
	for _, w := range p.workers {
		if w.state.Load() == idle {
			return true
		}
	}

	return p.isClosed()
}

func (p *Pool) isClosed() bool {
	p.Lock()
	defer p.Unlock()

	return p.closed
}

// Worker states.
//
// idle    -> running  fn and arg have been written (requester).
// running -> done     fn has returned and the result is written (worker).
// done    -> idle     the result has been read (requester).
const (
	idle int32 = iota
	running
	done
)

// Worker is a goroutine that runs one operation at a time.
type Worker struct {
	assigned *sync.Cond
	pool     *Pool
	state    atomic.Int32

	arg    any
	fn     Func
	result any
}

// Done returns true if the worker's operation has finished.
func (w *Worker) Done() bool {
	return w.state.Load() == done
}

func (w *Worker) assign(fn Func, arg any) {
	w.pool.Lock()
	defer w.pool.Unlock()

	w.fn = fn
	w.arg = arg
	w.state.Store(running)

	w.assigned.Signal()
}

func (w *Worker) execute(fn Func, arg any) (r any) {
	defer func() {
		if v := recover(); v != nil {
			r = fmt.Errorf("offloaded operation failed: %v", v)
		}
	}()

	return fn(arg)
}

func (w *Worker) reclaim() any {
	w.pool.Lock()
	defer w.pool.Unlock()

	r := w.result

	w.arg = nil
	w.fn = nil
	w.result = nil
	w.state.Store(idle)

	return r
}

func (w *Worker) run() error {
	p := w.pool

	for {
		p.Lock()

		for !p.closed && w.state.Load() != running {
			w.assigned.Wait()
		}

		if w.state.Load() != running {
			p.Unlock()

			return nil
		}

		fn, arg := w.fn, w.arg

		p.Unlock()

		r := w.execute(fn, arg)

		p.Lock()
		w.result = r
		w.state.Store(done)
		p.changed.Broadcast()
		p.Unlock()
	}
}

func (w *Worker) wait() {
	w.pool.Lock()
	defer w.pool.Unlock()

	for w.state.Load() != done {
		w.pool.changed.Wait()
	}
}
