// Released under an MIT license. See LICENSE.

package task

import (
	"strings"
	"testing"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/struct/frame"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

func setup(t *testing.T, quantum int) *Scheduler {
	t.Helper()

	f, err := frame.New(nil, 100)
	if err != nil {
		t.Fatal(err)
	}

	return New(quantum, f)
}

func TestRoundRobin(t *testing.T) {
	s := setup(t, 1<<20)

	var b strings.Builder

	var tasks []*T

	for _, id := range []string{"1", "2", "3"} {
		id := id
		tasks = append(tasks, s.Spawn(nil, func(t *T) code.T {
			for i := 0; i < 3; i++ {
				b.WriteString(id)
				s.Yield()
			}

			return code.OK
		}))
	}

	for _, task := range tasks {
		if c := s.Join(task); c != code.OK {
			t.Fatalf("expected ok; got %v", c)
		}
	}

	if b.String() != "123123123" {
		t.Fatalf("expected 123123123; got %s", b.String())
	}

	if s.Tasks() != 1 {
		t.Fatalf("expected finished tasks to be swept; %d remain", s.Tasks())
	}
}

func TestQuantum(t *testing.T) {
	const quantum = 4

	s := setup(t, quantum)

	var b strings.Builder

	for _, id := range []string{"a", "b", "c"} {
		id := id
		s.Spawn(nil, func(t *T) code.T {
			for i := 0; i < 3; i++ {
				b.WriteString(id)

				for j := 0; j < quantum; j++ {
					s.After(t, code.OK)
				}
			}

			return code.OK
		})
	}

	// Busy poll without ever yielding explicitly.
	for s.Tasks() > 1 {
		s.After(s.Main(), code.OK)
	}

	if b.String() != "abcabcabc" {
		t.Fatalf("expected abcabcabc; got %s", b.String())
	}
}

func TestSpawnRunsAfterSpawner(t *testing.T) {
	s := setup(t, 1<<20)

	var b strings.Builder

	s.Spawn(nil, func(t *T) code.T {
		b.WriteString("child ")

		return code.OK
	})

	b.WriteString("parent ")

	if !s.Yield() {
		t.Fatal("expected a task to run")
	}

	b.WriteString("back")

	if b.String() != "parent child back" {
		t.Fatalf("unexpected order: %s", b.String())
	}

	if s.Yield() {
		t.Fatal("expected nothing to run")
	}
}

func TestYieldCode(t *testing.T) {
	s := setup(t, 1<<20)

	ran := false

	s.Spawn(nil, func(t *T) code.T {
		ran = true

		return code.OK
	})

	if c := s.After(s.Main(), code.Yield); c != code.OK || !ran {
		t.Fatalf("expected yield to run the other task and become ok; got %v %v", c, ran)
	}
}

func TestShutdown(t *testing.T) {
	s := setup(t, 1<<20)

	steps := 0
	finally := false

	task := s.Spawn(nil, func(t *T) code.T {
		for {
			steps++

			c := s.After(t, code.Yield)
			if c == code.Exit {
				t.EnterFinally()
				finally = s.After(t, code.OK) == code.OK
				t.LeaveFinally()

				return c
			}
		}
	})

	s.Yield()
	s.Yield()

	s.Shutdown()

	if !task.Finished() || task.Code() != code.Exit {
		t.Fatalf("expected task to exit; got %v", task.Code())
	}

	if !finally {
		t.Fatal("finally phase should not report exit")
	}

	if c := s.After(s.Main(), code.OK); c != code.Exit {
		t.Fatalf("expected exit after shutdown; got %v", c)
	}

	if steps < 2 {
		t.Fatalf("expected task to have run; steps %d", steps)
	}
}

func TestBlockedIsSkipped(t *testing.T) {
	s := setup(t, 1<<20)

	done := false
	ran := 0

	s.Spawn(nil, func(t *T) code.T {
		s.Block(func() bool { return done })

		for t.Blocked() {
			s.Yield()
		}

		s.Unblock()

		ran++

		return code.OK
	})

	s.Yield()

	if !s.Stalled() {
		t.Fatal("expected every other task to be blocked")
	}

	if s.Yield() {
		t.Fatal("blocked task should not be scheduled")
	}

	done = true

	if s.Stalled() || !s.Yield() || ran != 1 {
		t.Fatalf("ready task should run; ran %d", ran)
	}

	if !s.Alone() {
		t.Fatal("expected no other task")
	}
}

func TestDropWhileRunning(t *testing.T) {
	s := setup(t, 1<<20)

	var seen string

	task := s.Spawn(nil, func(t *T) code.T {
		t.SetResult(value.New("3"))
		s.Yield()

		seen = t.Result().String()

		return code.OK
	})

	s.Yield()
	task.Drop()

	if c := s.Join(task); c != code.OK {
		t.Fatalf("expected ok; got %v", c)
	}

	if seen != "3" {
		t.Fatalf("result replaced while running: %q", seen)
	}

	if r := task.Result().String(); r != "" {
		t.Fatalf("expected result released after finishing; got %q", r)
	}
}
