// Released under an MIT license. See LICENSE.

// Package chn provides knot's in-memory stream.
package chn

import (
	"io"
	"sync"

	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
)

// T (chn) is a bounded in-memory byte stream. Logical threads use it to pass
// bytes to each other. It never blocks: a full chn accepts a partial write
// and an empty one reads nothing.
type T struct {
	sync.Mutex
	buf    []byte
	cap    int
	closed bool
}

type chn = T

// New creates a chn holding at most cap bytes. A non-positive cap is unbounded.
func New(cap int) *chn {
	return &chn{cap: cap}
}

// Available returns the number of buffered bytes.
func (c *chn) Available() (int, error) {
	c.Lock()
	defer c.Unlock()

	return len(c.buf), nil
}

// Close closes the chn. Buffered bytes can still be read.
func (c *chn) Close() error {
	c.Lock()
	defer c.Unlock()

	c.closed = true

	return nil
}

// Read reads buffered bytes from the chn.
func (c *chn) Read(p []byte) (int, error) {
	c.Lock()
	defer c.Unlock()

	if len(c.buf) == 0 {
		if c.closed {
			return 0, io.EOF
		}

		return 0, nil
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]

	return n, nil
}

// Write buffers as much of p as fits.
func (c *chn) Write(p []byte) (int, error) {
	c.Lock()
	defer c.Unlock()

	if c.closed {
		return 0, stream.ErrClosed
	}

	n := len(p)
	if c.cap > 0 && n > c.cap-len(c.buf) {
		n = c.cap - len(c.buf)
	}

	c.buf = append(c.buf, p[:n]...)

	return n, nil
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t chn

	// The chn type is a stream.
	_ = stream.I(&t)

	// The chn type can estimate what is available.
	_ = stream.Estimator(&t)
}
