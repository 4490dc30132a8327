// Released under an MIT license. See LICENSE.

//go:build linux || darwin

// Package fd provides knot's file descriptor stream.
package fd

import (
	"errors"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
)

// T (fd) is a stream over an OS file descriptor. Reads and writes poll the
// descriptor first so that they never block.
type T struct {
	sync.RWMutex
	f      *os.File
	fd     int
	shared bool
}

type fd = T

// Milliseconds a waiting worker polls before checking for Close.
const waitRound = 50

// New creates a stream that owns the file f.
func New(f *os.File) *fd {
	return &fd{f: f, fd: int(f.Fd())}
}

// Pipe creates a connected pair of streams.
func Pipe() (r *fd, w *fd, err error) {
	rf, wf, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}

	return New(rf), New(wf), nil
}

// Std creates a stream for one of the process's standard files. Closing it
// does not close the underlying descriptor.
func Std(f *os.File) *fd {
	s := New(f)
	s.shared = true

	return s
}

// Available returns the number of bytes that can be read without blocking.
func (s *fd) Available() (int, error) {
	s.RLock()
	defer s.RUnlock()

	if s.f == nil {
		return 0, stream.ErrClosed
	}

	return unix.IoctlGetInt(s.fd, fionread)
}

// Close closes the descriptor.
func (s *fd) Close() error {
	s.Lock()
	defer s.Unlock()

	if s.f == nil {
		return nil
	}

	f := s.f
	s.f = nil

	if s.shared {
		return nil
	}

	return f.Close()
}

// Fd returns the descriptor.
func (s *fd) Fd() uintptr {
	return uintptr(s.fd)
}

// Read reads whatever is available.
func (s *fd) Read(p []byte) (int, error) {
	s.RLock()
	defer s.RUnlock()

	if s.f == nil {
		return 0, stream.ErrClosed
	}

	ready, err := s.poll(unix.POLLIN, 0)
	if err != nil || !ready {
		return 0, err
	}

	n, err := retry(func() (int, error) { return unix.Read(s.fd, p) })
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}

		return 0, err
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return n, nil
}

// WaitReadable blocks until the descriptor is readable or hung up.
func (s *fd) WaitReadable() error {
	return s.wait(unix.POLLIN)
}

// WaitWritable blocks until the descriptor is writable.
func (s *fd) WaitWritable() error {
	return s.wait(unix.POLLOUT)
}

// Write writes as much of p as the descriptor accepts.
func (s *fd) Write(p []byte) (int, error) {
	s.RLock()
	defer s.RUnlock()

	if s.f == nil {
		return 0, stream.ErrClosed
	}

	ready, err := s.poll(unix.POLLOUT, 0)
	if err != nil || !ready {
		return 0, err
	}

	n, err := retry(func() (int, error) { return unix.Write(s.fd, p) })
	if errors.Is(err, unix.EAGAIN) {
		return 0, nil
	}

	return n, err
}

func (s *fd) poll(events int16, timeout int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: events}}

	n, err := retry(func() (int, error) { return unix.Poll(fds, timeout) })
	if err != nil {
		return false, err
	}

	return n > 0 && fds[0].Revents != 0, nil
}

// wait polls in short rounds so that Close is never held off for long and
// a closed descriptor is never polled.
func (s *fd) wait(events int16) error {
	for {
		ready, err := s.round(events)
		if err != nil || ready {
			return err
		}
	}
}

func (s *fd) round(events int16) (bool, error) {
	s.RLock()
	defer s.RUnlock()

	if s.f == nil {
		return false, stream.ErrClosed
	}

	return s.poll(events, waitRound)
}

func retry(f func() (int, error)) (int, error) {
	for {
		n, err := f()
		if !errors.Is(err, unix.EINTR) {
			return n, err
		}
	}
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t fd

	// The fd type is a stream.
	_ = stream.I(&t)

	// The fd type is backed by a descriptor.
	_ = stream.Descriptor(&t)

	// The fd type can estimate what is available.
	_ = stream.Estimator(&t)

	// The fd type can wait until it is ready.
	_ = stream.Waiter(&t)
}
