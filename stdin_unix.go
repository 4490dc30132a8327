// Released under an MIT license. See LICENSE.

//go:build linux || darwin

package main

import (
	"os"

	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
	"github.com/michaelmacinnis/knot/internal/common/type/fd"
)

func stdin() stream.I {
	return fd.Std(os.Stdin)
}
