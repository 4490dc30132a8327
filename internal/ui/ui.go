// Released under an MIT license. See LICENSE.

// Package ui provides an interactive command-line interface for knot.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/michaelmacinnis/knot/internal/common/type/value"
	"github.com/michaelmacinnis/knot/internal/reader"
	"github.com/michaelmacinnis/knot/internal/system/history"
)

const (
	prompt       = "knot> "
	continuation = "....> "
)

// Evaluator is the interface for things that want to process statements.
type Evaluator interface {
	// Evaluate runs stmt. It returns false when the session should end.
	Evaluate(stmt *value.T) bool

	// Names returns the names visible at the top level.
	Names() []string
}

// Run reads statements from the terminal and passes them to e until e asks
// to stop or input ends.
func Run(e Evaluator) error {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)
	cli.SetWordCompleter(completer(e))

	_ = history.Load(cli.ReadHistory)
	defer func() {
		_ = history.Save(cli.WriteHistory)
	}()

	r := reader.New("stdin")

	for {
		p := prompt
		if r.Pending() {
			p = continuation
		}

		line, err := cli.Prompt(p)

		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			r.Reset()

			continue
		case errors.Is(err, io.EOF):
			fmt.Println("exit")

			return nil
		default:
			return err
		}

		stmt, err := r.Scan(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)

			continue
		}

		if stmt == nil {
			continue
		}

		cli.AppendHistory(stmt.String())

		if !e.Evaluate(stmt) {
			return nil
		}
	}
}

func completer(e Evaluator) liner.WordCompleter {
	return func(line string, pos int) (head string, completions []string, tail string) {
		head = line[:pos]
		tail = line[pos:]

		start := strings.LastIndexAny(head, " \t{[$") + 1
		word := head[start:]
		head = head[:start]

		if word == "" {
			return head, nil, tail
		}

		for _, name := range e.Names() {
			if strings.HasPrefix(name, word) {
				completions = append(completions, name)
			}
		}

		sort.Strings(completions)

		return head, completions, tail
	}
}
