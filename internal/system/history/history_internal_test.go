// Released under an MIT license. See LICENSE.

package history

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	err := Save(func(w io.Writer) (int, error) {
		return io.WriteString(w, "puts one\nputs two\n")
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".knot_history")); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder

	err = Load(func(r io.Reader) (int, error) {
		n, err := io.Copy(&b, r)

		return int(n), err
	})
	if err != nil {
		t.Fatal(err)
	}

	if b.String() != "puts one\nputs two\n" {
		t.Fatalf("unexpected history %q", b.String())
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Load(func(r io.Reader) (int, error) {
		t.Fatal("read called without a history file")

		return 0, nil
	})
	if !os.IsNotExist(err) {
		t.Fatalf("expected a missing file error; got %v", err)
	}
}
