// Released under an MIT license. See LICENSE.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/engine"
	"github.com/michaelmacinnis/knot/internal/system/config"
)

func shellFor(t *testing.T, c *config.T) (*shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	e, err := engine.New(c, engine.IO{Stdout: stdout, Stderr: stderr})
	if err != nil {
		t.Fatal(err)
	}

	return start(e, []string{"test.knot", "a", "b c"}), stdout, stderr
}

func TestFeed(t *testing.T) {
	s, stdout, _ := shellFor(t, nil)

	script := `# greet everyone
proc greet {name} {
	{puts [echo hello $name]}
}

foreach who $argv {{greet $who}}
puts $argv0
`

	if err := s.feed("test", strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}

	if n := s.stop(); n != 0 {
		t.Fatalf("expected status 0; got %d", n)
	}

	expected := "hello a\nhello b c\ntest.knot\n"
	if stdout.String() != expected {
		t.Fatalf("expected %q; got %q", expected, stdout.String())
	}
}

func TestFeedStopsOnError(t *testing.T) {
	s, stdout, stderr := shellFor(t, nil)

	if err := s.feed("test", strings.NewReader("puts one\nnope\nputs two\n")); err != nil {
		t.Fatal(err)
	}

	if n := s.stop(); n != 1 {
		t.Fatalf("expected status 1; got %d", n)
	}

	if stdout.String() != "one\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}

	if stderr.String() != "no such command: nope\n" {
		t.Fatalf("unexpected diagnostics %q", stderr.String())
	}
}

func TestFeedIncomplete(t *testing.T) {
	s, _, _ := shellFor(t, nil)

	err := s.feed("test", strings.NewReader("puts one\nproc f {} {\n"))
	if err == nil || !strings.Contains(err.Error(), "test:2: incomplete") {
		t.Fatalf("expected incomplete statement error; got %v", err)
	}

	s.stop()
}

func TestExitStatus(t *testing.T) {
	s, stdout, _ := shellFor(t, nil)

	if err := s.feed("test", strings.NewReader("puts before\nexit 3\nputs after\n")); err != nil {
		t.Fatal(err)
	}

	if n := s.stop(); n != 3 {
		t.Fatalf("expected status 3; got %d", n)
	}

	if stdout.String() != "before\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestExitFromThreadStatus(t *testing.T) {
	s, _, _ := shellFor(t, nil)

	if err := s.feed("test", strings.NewReader("spawn {{exit 5}}\nloop {{yield}}\n")); err != nil {
		t.Fatal(err)
	}

	if n := s.stop(); n != 5 {
		t.Fatalf("expected status 5; got %d", n)
	}
}

func TestInteractivePrintsResults(t *testing.T) {
	s, stdout, stderr := shellFor(t, nil)
	s.interactive = true

	s.Evaluate(value.New("add 1 2"))
	s.Evaluate(value.New("nope"))
	s.Evaluate(value.New("echo still here"))

	if stdout.String() != "3\nstill here\n" {
		t.Fatalf("unexpected output %q", stdout.String())
	}

	if stderr.String() != "no such command: nope\n" {
		t.Fatalf("unexpected diagnostics %q", stderr.String())
	}

	if s.Evaluate(value.New("exit")) {
		t.Fatal("expected exit to end the session")
	}

	if n := s.stop(); n != 0 {
		t.Fatalf("expected status 0; got %d", n)
	}
}

func TestStatus(t *testing.T) {
	for _, tc := range []struct {
		c        code.T
		v        string
		expected int
	}{
		{code.OK, "anything", 0},
		{code.Error, "boom", 1},
		{code.Exit, "", 0},
		{code.Exit, "7", 7},
		{code.Exit, "0x10", 16},
		{code.Exit, "oops", 1},
	} {
		if n := status(tc.c, value.New(tc.v)); n != tc.expected {
			t.Fatalf("%v %q: expected %d; got %d", tc.c, tc.v, tc.expected, n)
		}
	}
}
