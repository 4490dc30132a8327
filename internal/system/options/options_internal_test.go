// Released under an MIT license. See LICENSE.

package options

import (
	"testing"

	"github.com/docopt/docopt-go"

	"github.com/michaelmacinnis/knot/internal/system/config"
)

func must(t *testing.T, argv []string, tty bool) {
	t.Helper()

	p := &docopt.Parser{HelpHandler: docopt.NoHelpHandler}

	if err := parse(p, argv, "knot", tty); err != nil {
		t.Fatalf("%v: %v", argv, err)
	}
}

func TestScript(t *testing.T) {
	must(t, []string{"-x", "run.knot", "a", "b"}, true)

	if Script() != "run.knot" || Interactive() {
		t.Fatalf("expected script mode; got %q %v", Script(), Interactive())
	}

	if a := Args(); len(a) != 3 || a[0] != "run.knot" || a[2] != "b" {
		t.Fatalf("unexpected arguments %v", a)
	}

	c := config.Default()
	Apply(c)

	if !c.Trace || c.Raise || c.Unbuffered {
		t.Fatalf("unexpected settings %+v", c)
	}
}

func TestCommand(t *testing.T) {
	must(t, []string{"-c", "echo hi", "x"}, true)

	if Command() != "echo hi" || Script() != "" || Interactive() {
		t.Fatalf("expected command mode; got %q %q %v", Command(), Script(), Interactive())
	}

	if a := Args(); len(a) != 2 || a[0] != "knot" || a[1] != "x" {
		t.Fatalf("unexpected arguments %v", a)
	}
}

func TestInteractive(t *testing.T) {
	must(t, nil, true)

	if !Interactive() {
		t.Fatal("expected interactive mode on a terminal")
	}

	must(t, nil, false)

	if Interactive() {
		t.Fatal("expected non-interactive mode without a terminal")
	}

	must(t, []string{"-i"}, true)

	if Interactive() {
		t.Fatal("expected -i to invert interactive mode")
	}
}

func TestSettings(t *testing.T) {
	must(t, []string{"-e", "-u", "--config=knot.yaml", "-s"}, false)

	if Config() != "knot.yaml" {
		t.Fatalf("unexpected config path %q", Config())
	}

	c := config.Default()
	Apply(c)

	if !c.Raise || !c.Unbuffered || c.Trace {
		t.Fatalf("unexpected settings %+v", c)
	}
}
