// Released under an MIT license. See LICENSE.

package stream

import "io"

type flusher interface {
	Flush() error
}

type writer struct {
	w io.Writer
}

// Writer adapts w to a write-only stream. Writes go straight to w.
// Closing the stream flushes w if it can be flushed; w is never closed.
func Writer(w io.Writer) I {
	return &writer{w: w}
}

func (s *writer) Close() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}

	return nil
}

func (s *writer) Read(_ []byte) (int, error) {
	return 0, io.EOF
}

func (s *writer) Write(p []byte) (int, error) {
	return s.w.Write(p)
}
