// Released under an MIT license. See LICENSE.

// Knot is a small command language with cooperative threads.
//
// A script is a sequence of statements. Each statement is a sequence of
// words. Words starting with $ are replaced by the value of a variable and
// words in brackets by the result of the statement they enclose. Braces
// group words without substitution:
//
//	set greeting hello
//	proc greet {name} {
//	    {puts [echo $greeting $name]}
//	}
//	greet world
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/engine"
	"github.com/michaelmacinnis/knot/internal/engine/commands"
	"github.com/michaelmacinnis/knot/internal/reader"
	"github.com/michaelmacinnis/knot/internal/system/config"
	"github.com/michaelmacinnis/knot/internal/system/options"
	"github.com/michaelmacinnis/knot/internal/ui"
)

type shell struct {
	*engine.T

	code        code.T
	highlight   bool
	interactive bool
	result      *value.T
}

func main() {
	options.Parse()

	c, err := settings(options.Config())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	options.Apply(c)

	e, err := engine.New(c, engine.IO{
		Stdin:  stdin(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	s := start(e, options.Args())
	s.highlight = isatty.IsTerminal(os.Stderr.Fd())

	switch {
	case options.Interactive():
		s.interactive = true
		err = ui.Run(s)
	case options.Command() != "":
		err = s.feed("command", strings.NewReader(options.Command()))
	case options.Script() != "":
		err = s.source(options.Script())
	default:
		err = s.feed("stdin", os.Stdin)
	}

	if err != nil {
		s.report(err.Error())
	}

	os.Exit(s.stop())
}

func settings(path string) (*config.T, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

func start(e *engine.T, args []string) *shell {
	commands.Register(e)

	argv := value.List()
	for _, a := range args[1:] {
		_ = argv.Append(value.New(a))
	}

	e.Global().Set("argv0", value.New(args[0]))
	e.Global().Set("argv", argv)

	return &shell{T: e, result: value.New("").Retain()}
}

// Evaluate runs the statement stmt. It returns false once the script
// has exited.
func (s *shell) Evaluate(stmt *value.T) bool {
	s.code = s.Call(value.List(stmt))

	r := s.Result()

	r.Retain()
	s.result.Release()
	s.result = r

	_ = s.Flush()

	switch s.code {
	case code.Error:
		s.report(r.String())
	case code.Exit:
		return false
	default:
		if s.interactive && r.String() != "" {
			fmt.Fprintln(s.Stdout(), r)
			_ = s.Flush()
		}
	}

	return !s.Exiting()
}

// Names returns the names bound in the global frame.
func (s *shell) Names() []string {
	return s.Global().Names()
}

func (s *shell) feed(name string, in io.Reader) error {
	r := reader.New(name)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		stmt, err := r.Scan(scanner.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, r.Position(), err)
		}

		if stmt == nil {
			continue
		}

		if !s.Evaluate(stmt) {
			return nil
		}

		if s.code == code.Error {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if r.Pending() {
		return fmt.Errorf("%s:%d: incomplete statement", name, r.Position())
	}

	return nil
}

func (s *shell) report(msg string) {
	if s.highlight {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}

	fmt.Fprintln(s.Stderr(), msg)
}

func (s *shell) source(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.feed(path, f)
}

// stop shuts the evaluator down and returns the process's exit status.
func (s *shell) stop() int {
	if err := s.Shutdown(); err != nil {
		s.report(err.Error())
	}

	c, v := s.code, s.result
	if x := s.ExitValue(); x != nil && c != code.Error {
		c, v = code.Exit, x
	}

	return status(c, v)
}

func status(c code.T, v *value.T) int {
	switch c {
	case code.Error:
		return 1
	case code.Exit:
		if i, err := v.Int(); err == nil {
			return int(i)
		}

		if v.String() == "" {
			return 0
		}

		return 1
	}

	return 0
}
