// Released under an MIT license. See LICENSE.

package value

import (
	"errors"
	"math"
	"testing"
)

type closer struct {
	closed int
}

func (c *closer) Close() error {
	c.closed++

	return nil
}

func TestJoin(t *testing.T) {
	v := List(New("a"), New("b c"), List())

	if s := v.String(); s != "a {b c} {}" {
		t.Fatalf("expected %q; got %q", "a {b c} {}", s)
	}
}

func TestRoundTrip(t *testing.T) {
	inner := List(New("x"), New(""), New("y z"))
	v := List(New("a"), inner, Integer(7), Number(2.5), New("{b}"), New("[c d]"))

	s := v.String()

	es, err := New(s).Seq()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r := List(es...).String(); r != s {
		t.Fatalf("expected %q; got %q", s, r)
	}

	if len(es) != 6 {
		t.Fatalf("expected 6 elements; got %d", len(es))
	}

	if !es[1].Equal(inner) {
		t.Fatalf("expected %q; got %q", inner, es[1])
	}
}

func TestSplit(t *testing.T) {
	es, err := Split("  echo {a {b} c}\t[set x [list 1 {]}]] $y\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"echo", "a {b} c", "[set x [list 1 {]}]]", "$y"}
	if len(es) != len(expected) {
		t.Fatalf("expected %d words; got %d", len(expected), len(es))
	}

	for i, s := range expected {
		if es[i].String() != s {
			t.Fatalf("word %d: expected %q; got %q", i, s, es[i])
		}

		if es[i].Literal() != (i == 1) {
			t.Fatalf("word %d: only braced words are literal", i)
		}
	}
}

func TestSplitUnbalanced(t *testing.T) {
	for _, s := range []string{"{a", "[a {]", "x [y"} {
		_, err := Split(s)

		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%q: expected parse error; got %v", s, err)
		}

		if !perr.Incomplete {
			t.Fatalf("%q: expected incomplete", s)
		}
	}

	if _, err := Split("[a }]"); err == nil {
		t.Fatal("expected error for stray '}'")
	}
}

func TestBalanced(t *testing.T) {
	ok, err := Balanced("if 1 {{echo")
	if ok || err != nil {
		t.Fatalf("expected incomplete; got %v %v", ok, err)
	}

	ok, err = Balanced("if 1 {{echo}}")
	if !ok || err != nil {
		t.Fatalf("expected complete; got %v %v", ok, err)
	}
}

func TestTruth(t *testing.T) {
	for _, c := range []struct {
		v        *T
		expected bool
	}{
		{New(""), false},
		{New("0"), false},
		{New("00"), true},
		{New("0.0"), true},
		{New("false"), true},
		{List(), false},
		{List(New("")), true},
		{Integer(0), false},
		{Integer(-1), true},
		{Number(0), false},
		{Number(0.1), true},
		{nil, false},
	} {
		if c.v.True() != c.expected {
			t.Fatalf("%q: expected %v", c.v, c.expected)
		}
	}
}

func TestCoercion(t *testing.T) {
	v := New("42")

	i, err := v.Int()
	if err != nil || i != 42 {
		t.Fatalf("expected 42; got %d %v", i, err)
	}

	if !v.Has(Text|Int) || v.Origin() != Text {
		t.Fatal("expected cached integer with text origin")
	}

	if i, _ = v.Int(); i != 42 {
		t.Fatal("second coercion changed the value")
	}

	for s, expected := range map[string]int64{
		"3.7":   3,
		"-3.2":  -4,
		"0x1f":  31,
		"-0x10": -16,
		"1e3":   1000,
	} {
		i, err := New(s).Int()
		if err != nil || i != expected {
			t.Fatalf("%q: expected %d; got %d %v", s, expected, i, err)
		}
	}

	if _, err := New("abc").Int(); !errors.Is(err, ErrNotInteger) {
		t.Fatalf("expected ErrNotInteger; got %v", err)
	}

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300} {
		if _, err := Number(f).Int(); !errors.Is(err, ErrRange) {
			t.Fatalf("%v: expected ErrRange; got %v", f, err)
		}
	}

	if i, _ := Number(-2.5).Int(); i != -3 {
		t.Fatalf("expected -3; got %d", i)
	}

	if f, _ := Integer(3).Float(); f != 3 {
		t.Fatalf("expected 3; got %v", f)
	}

	if s := Number(3).String(); s != "3.0" {
		t.Fatalf("expected 3.0; got %s", s)
	}

	if s := Number(0.25).String(); s != "0.25" {
		t.Fatalf("expected 0.25; got %s", s)
	}

	if _, err := New("{").Seq(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMutationInvalidatesText(t *testing.T) {
	v := New("a b")

	if _, err := v.Seq(); err != nil {
		t.Fatal(err)
	}

	if err := v.Append(New("c d")); err != nil {
		t.Fatal(err)
	}

	if v.Has(Text) {
		t.Fatal("text should be invalidated")
	}

	if s := v.String(); s != "a b {c d}" {
		t.Fatalf("expected %q; got %q", "a b {c d}", s)
	}

	e, err := v.Pop()
	if err != nil || e.String() != "c d" {
		t.Fatalf("expected %q; got %q %v", "c d", e, err)
	}

	if s := v.String(); s != "a b" {
		t.Fatalf("expected %q; got %q", "a b", s)
	}

	if err := v.Extend(v); err != nil {
		t.Fatal(err)
	}

	if s := v.String(); s != "a b a b" {
		t.Fatalf("expected %q; got %q", "a b a b", s)
	}

	if _, err := List().Pop(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty; got %v", err)
	}
}

func TestEqual(t *testing.T) {
	if !Integer(5).Equal(New("5")) {
		t.Fatal("expected 5 == \"5\"")
	}

	if New("5").Equal(New("5.0")) {
		t.Fatal("expected 5 != 5.0")
	}

	if !List(New("a"), New("b")).Equal(New("a b")) {
		t.Fatal("expected list to equal its text")
	}
}

func TestDestructorRunsOnce(t *testing.T) {
	c := &closer{}
	h := Handle("file1", c)

	l := List(h)
	h.Retain()

	l.Retain()
	l.Release()

	if c.closed != 0 {
		t.Fatal("closed while still owned")
	}

	h.Release()

	if c.closed != 1 || !h.Closed() {
		t.Fatalf("expected one close; got %d", c.closed)
	}

	h.Retain()
	h.Release()

	if c.closed != 1 {
		t.Fatalf("expected one close; got %d", c.closed)
	}
}

func TestShared(t *testing.T) {
	v := New("x").Retain()
	if v.Shared() {
		t.Fatal("single owner reported as shared")
	}

	v.Retain()
	if !v.Shared() {
		t.Fatal("two owners not reported as shared")
	}

	d := v.Dup()
	if d.Refs() != 0 || !d.Equal(v) {
		t.Fatal("dup should be floating and equal")
	}
}
