// Released under an MIT license. See LICENSE.

// Package commands provides knot's builtin commands.
package commands

import (
	"github.com/michaelmacinnis/knot/internal/engine"
)

// Builtins returns a mapping of names to builtin commands.
func Builtins() map[string]engine.Builtin {
	m := map[string]engine.Builtin{
		// Scope.
		"export": export,
		"global": global,
		"local":  local,
		"names":  names,
		"set":    set,
		"unset":  unset,

		// Control.
		"break":    brk,
		"continue": cont,
		"error":    raise,
		"eval":     eval,
		"exit":     exit,
		"foreach":  foreach,
		"if":       when,
		"loop":     loop,
		"proc":     proc,
		"return":   ret,
		"try":      try,
		"while":    while,

		// Values.
		"echo":     echo,
		"index":    index,
		"lappend":  lappend,
		"length":   length,
		"list":     list,
		"lpop":     lpop,
		"unescape": unescape,

		// Numbers and logic.
		"add":  add,
		"div":  div,
		"eq":   eq,
		"incr": incr,
		"lt":   lt,
		"mod":  mod,
		"mul":  mul,
		"not":  not,
		"sub":  sub,

		// Threads.
		"join":   join,
		"sleep":  sleep,
		"spawn":  spawn,
		"thread": thread,
		"yield":  yield,

		// Streams.
		"chan":  makeChan,
		"close": closeStream,
		"puts":  puts,
		"read":  read,
	}

	files(m)

	return m
}

// Register binds every builtin in the global frame of e.
func Register(e *engine.T) {
	for k, v := range Builtins() {
		e.Define(k, v)
	}
}
