// Released under an MIT license. See LICENSE.

//go:build linux || darwin

package fd

import (
	"io"
	"testing"

	"github.com/michaelmacinnis/knot/internal/common/interface/stream"
)

func TestPipeWriteRead(t *testing.T) {
	r, w, err := Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer r.Close()

	v, err := stream.ReadValue(r, 0, nil)
	if err != nil || v.String() != "" {
		t.Fatalf("expected nothing yet; got %q %v", v, err)
	}

	if err = stream.WriteAll(w, []byte("hello"), w.WaitWritable); err != nil {
		t.Fatal(err)
	}

	v, err = stream.ReadValue(r, 0, r.WaitReadable)
	if err != nil || v.String() != "hello" {
		t.Fatalf("expected hello; got %q %v", v, err)
	}

	if err = w.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = stream.ReadValue(r, 0, r.WaitReadable)
	if err != io.EOF {
		t.Fatalf("expected EOF; got %v", err)
	}
}

func TestClosed(t *testing.T) {
	r, w, err := Pipe()
	if err != nil {
		t.Fatal(err)
	}

	_ = r.Close()
	_ = w.Close()

	if _, err := r.Read(make([]byte, 1)); err != stream.ErrClosed {
		t.Fatalf("expected ErrClosed; got %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("second close should be a no-op; got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	r, w, err := Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer r.Close()
	defer w.Close()

	if n, err := r.Available(); err != nil || n != 0 {
		t.Fatalf("expected nothing available; got %d %v", n, err)
	}

	if _, err := w.Write([]byte("buffered")); err != nil {
		t.Fatal(err)
	}

	if n, err := r.Available(); err != nil || n != len("buffered") {
		t.Fatalf("expected %d bytes available; got %d %v", len("buffered"), n, err)
	}
}

func TestWaitAfterClose(t *testing.T) {
	r, w, err := Pipe()
	if err != nil {
		t.Fatal(err)
	}

	defer w.Close()

	done := make(chan error, 1)

	go func() {
		done <- r.WaitReadable()
	}()

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	if err := <-done; err != stream.ErrClosed {
		t.Fatalf("expected ErrClosed; got %v", err)
	}

	if err := r.WaitWritable(); err != stream.ErrClosed {
		t.Fatalf("expected ErrClosed; got %v", err)
	}
}
