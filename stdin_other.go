// Released under an MIT license. See LICENSE.

//go:build !(linux || darwin)

package main

import (
	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
)

// Scripts only see stdin where it can be polled.
func stdin() stream.I {
	return nil
}
