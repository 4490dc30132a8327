// Released under an MIT license. See LICENSE.

// Package options parses knot's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"

	"github.com/michaelmacinnis/knot/internal/system/config"
)

const version = "knot 0.1.0"

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	file        string
	interactive bool
	raise       bool
	script      string
	trace       bool
	unbuffered  bool
	usage       = `knot

Usage:
  knot [-eiux] [--config=FILE] SCRIPT [ARGUMENTS...]
  knot [-eiux] [--config=FILE] -c COMMAND [ARGUMENTS...]
  knot [-eiux] [--config=FILE] [-s [ARGUMENTS...]]
  knot -h
  knot -v

Arguments:
  ARGUMENTS  Bound, as a list, to $argv.
  SCRIPT     Path to knot script. Also used as the value for $argv0.

Options:
  -c, --command=COMMAND  Run the specified command.
  --config=FILE          Read settings from the YAML file FILE.
  -e, --raise            Re-raise errors caught by a try without a catch.
  -i, --interactive      Invert interactive mode.
  -s, --stdin            Read commands from stdin.
  -u, --unbuffered       Write output as it is produced.
  -x, --trace            Write each statement to stderr before running it.
  -h, --help             Display this help.
  -v, --version          Print knot version.

If knot's stdin is a TTY, and knot was invoked with no SCRIPT or COMMAND,
interactive mode is enabled. Otherwise, it is disabled. The -i option
inverts this.
`
)

// Apply overrides the settings c with any set on the command line.
func Apply(c *config.T) {
	c.Raise = c.Raise || raise
	c.Trace = c.Trace || trace
	c.Unbuffered = c.Unbuffered || unbuffered
}

// Args returns the positional arguments, with the name knot was invoked as,
// or the script path, first.
func Args() []string {
	return args
}

// Command returns the command passed with -c.
func Command() string {
	return command
}

// Config returns the path of the settings file, if any.
func Config() string {
	return file
}

// Interactive returns true if knot should run its REPL.
func Interactive() bool {
	return interactive
}

// Parse parses os.Args. It exits after printing help or the version.
func Parse() {
	p := &docopt.Parser{
		HelpHandler: docopt.PrintHelpAndExit,
	}

	err := parse(p, os.Args[1:], os.Args[0], isatty.IsTerminal(os.Stdin.Fd()))
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}
}

// Script returns the path of the script to run, if any.
func Script() string {
	return script
}

func parse(p *docopt.Parser, argv []string, name string, tty bool) error {
	// A nil argv makes docopt parse os.Args.
	if argv == nil {
		argv = []string{}
	}

	opts, err := p.ParseArgs(usage, argv, version)
	if err != nil {
		return err
	}

	interactive = false
	script = ""

	command, _ = opts.String("--command")
	file, _ = opts.String("--config")

	path, _ := opts.String("SCRIPT")
	if path != "" {
		name = path
		script = path
	} else if command == "" && tty {
		interactive = true
	}

	args, _ = opts["ARGUMENTS"].([]string)
	args = append([]string{name}, args...)

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	raise, _ = opts.Bool("--raise")
	trace, _ = opts.Bool("--trace")
	unbuffered, _ = opts.Bool("--unbuffered")

	return nil
}
