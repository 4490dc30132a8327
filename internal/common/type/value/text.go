// Released under an MIT license. See LICENSE.

package value

import (
	"strconv"
	"strings"
)

// String returns the text of v. A nil value is empty.
func (v *value) String() string {
	s, _ := v.Text()

	return s
}

// Text coerces v to text. Sequences are joined by single spaces, with any
// element that would not survive splitting wrapped in braces.
func (v *value) Text() (string, error) {
	if v == nil {
		return "", ErrNil
	}

	if v.kind&Text != 0 {
		return v.text, nil
	}

	switch {
	case v.kind&Seq != 0:
		v.text = Join(v.seq)
	case v.kind&Int != 0:
		v.text = strconv.FormatInt(v.i, 10)
	case v.kind&Float != 0:
		v.text = formatFloat(v.f)
	}

	v.kind |= Text

	return v.text, nil
}

// Join serializes es as text that Split turns back into es.
func Join(es []*T) string {
	var b strings.Builder

	for n, e := range es {
		if n > 0 {
			b.WriteByte(' ')
		}

		s := e.String()
		if quoted(s) {
			b.WriteByte('{')
			b.WriteString(s)
			b.WriteByte('}')
		} else {
			b.WriteString(s)
		}
	}

	return b.String()
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}

	return s
}

func quoted(s string) bool {
	if s == "" || s[0] == '{' || s[0] == '[' {
		return true
	}

	for i := 0; i < len(s); i++ {
		if space(s[i]) {
			return true
		}
	}

	return false
}
