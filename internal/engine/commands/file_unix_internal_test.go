// Released under an MIT license. See LICENSE.

//go:build linux || darwin

package commands

import (
	"path/filepath"
	"testing"

	"github.com/michaelmacinnis/knot/internal/common/code"
)

func TestOpen(t *testing.T) {
	h := setup(t, nil)

	path := filepath.Join(t.TempDir(), "data")

	h.expect("{set f [open "+path+" w]} {puts $f data} {close $f}", code.OK, "")
	h.expect("{set g [open "+path+"]} {read $g}", code.OK, "data\n")
	h.expect("{read $g}", code.OK, "")
	h.expect("{set a [open "+path+" a]} {puts $a more} {close $a} {close $g}", code.OK, "")
	h.expect("{set g [open "+path+"]} {read $g}", code.OK, "data\nmore\n")

	h.fails("{open "+path+" x}", "invalid mode")
	h.fails("{open "+filepath.Join(path, "missing")+"}", "missing")
}

func TestPipe(t *testing.T) {
	h := setup(t, nil)

	h.expect("{set p [pipe]} {puts [index $p 1] x} {read [index $p 0]}", code.OK, "x\n")

	h.expect(`{set r [index $p 0]} {set w [index $p 1]}
		{set t [spawn {{sleep 10} {puts $w late} {close $w}}]}
		{read $r}`, code.OK, "late\n")

	h.expect("{join $t} {read $r}", code.OK, "")
}
