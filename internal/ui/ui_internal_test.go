// Released under an MIT license. See LICENSE.

package ui

import (
	"testing"

	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

type names []string

func (n names) Evaluate(*value.T) bool {
	return true
}

func (n names) Names() []string {
	return n
}

func TestCompleter(t *testing.T) {
	complete := completer(names{"set", "spawn", "sleep", "puts"})

	head, cs, tail := complete("echo [sp x", 8)
	if head != "echo [" || tail != " x" {
		t.Fatalf("unexpected split %q %q", head, tail)
	}

	if len(cs) != 1 || cs[0] != "spawn" {
		t.Fatalf("unexpected completions %v", cs)
	}

	_, cs, _ = complete("s", 1)
	if len(cs) != 3 || cs[0] != "set" || cs[2] != "spawn" {
		t.Fatalf("unexpected completions %v", cs)
	}

	if _, cs, _ = complete("echo ", 5); cs != nil {
		t.Fatalf("expected no completions; got %v", cs)
	}
}
