// Released under an MIT license. See LICENSE.

// Package stream defines the interface for knot's byte streams.
//
// Files, pipes, sockets, timers and signal queues all reach the evaluator
// through this one contract.
package stream

import (
	"errors"
	"io"

	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

// ErrClosed is returned by operations on a closed stream.
var ErrClosed = errors.New("stream is closed")

// I (stream) is the interface every byte stream satisfies.
//
// Read and Write never block. A Read that returns 0 and a nil error would
// have blocked; the end of the stream is io.EOF. Write may be partial.
type I interface {
	Close() error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Acceptor is a stream that produces newly connected peers.
type Acceptor interface {
	Accept() (I, error)
}

// Descriptor is a stream backed by an OS file descriptor.
type Descriptor interface {
	Fd() uintptr
}

// Estimator is a stream that can estimate how many bytes a Read would return.
type Estimator interface {
	Available() (int, error)
}

// Peer is a stream connected to a remote address.
type Peer interface {
	PeerAddress() string
}

// Waiter is a stream that can block until it is ready. The evaluator runs
// these methods off the interpreter thread.
type Waiter interface {
	WaitReadable() error
	WaitWritable() error
}

const (
	minimum = 512
	maximum = 1 << 20
)

// ReadValue reads from s until it would block, reaches the end of the
// stream, or n bytes have arrived. If n is not positive there is no limit.
// If nothing at all is available, wait is called before trying again. A nil
// wait returns whatever was read, possibly nothing. At the end of the stream
// with nothing read, ReadValue returns an empty value and io.EOF.
func ReadValue(s I, n int, wait func() error) (*value.T, error) {
	buf := make([]byte, 0, estimate(s, n))

	for n <= 0 || len(buf) < n {
		if len(buf) == cap(buf) {
			buf = grow(buf, estimate(s, n-len(buf)))
		}

		free := buf[len(buf):cap(buf)]
		if n > 0 && len(free) > n-len(buf) {
			free = free[:n-len(buf)]
		}

		r, err := s.Read(free)
		buf = buf[:len(buf)+r]

		if errors.Is(err, io.EOF) {
			if len(buf) == 0 {
				return value.New(""), io.EOF
			}

			break
		}

		if err != nil {
			return nil, err
		}

		if r > 0 {
			continue
		}

		if len(buf) > 0 || wait == nil {
			break
		}

		if err := wait(); err != nil {
			return nil, err
		}
	}

	return value.Bytes(buf), nil
}

// WriteAll writes all of b to s, calling wait whenever s would block.
func WriteAll(s I, b []byte, wait func() error) error {
	for len(b) > 0 {
		n, err := s.Write(b)
		if err != nil {
			return err
		}

		b = b[n:]

		if n == 0 && wait != nil {
			if err := wait(); err != nil {
				return err
			}
		}
	}

	return nil
}

func estimate(s I, n int) int {
	size := minimum

	if e, ok := s.(Estimator); ok {
		if a, err := e.Available(); err == nil && a > size {
			size = a
		}
	}

	if size > maximum {
		size = maximum
	}

	if n > 0 && size > n {
		size = n
	}

	return size
}

func grow(buf []byte, more int) []byte {
	if more < cap(buf) {
		more = cap(buf)
	}

	fresh := make([]byte, len(buf), cap(buf)+more)
	copy(fresh, buf)

	return fresh
}
