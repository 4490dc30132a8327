// Released under an MIT license. See LICENSE.

//go:build !(linux || darwin)

package commands

import (
	"github.com/michaelmacinnis/knot/internal/engine"
)

func files(_ map[string]engine.Builtin) {}
