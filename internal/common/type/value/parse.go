// Released under an MIT license. See LICENSE.

package value

import (
	"fmt"
)

// ParseError reports malformed nesting in text being split into words.
type ParseError struct {
	Offset     int
	Incomplete bool
	Text       string

	msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.msg, e.Offset)
}

// Balanced returns true if s can be split into words without error.
// It returns false, and no error, if s ends inside an open brace or bracket.
func Balanced(s string) (bool, error) {
	_, err := Split(s)
	if err == nil {
		return true, nil
	}

	if e, ok := err.(*ParseError); ok && e.Incomplete {
		return false, nil
	}

	return false, err
}

// Split breaks s into words, left to right, skipping whitespace.
//
// A word opening with '{' runs to the matching '}'. The outer pair is
// stripped, the inner bytes are kept verbatim and the word is literal. A word opening with '['
// runs to the ']' that balances both brackets and braces. The brackets are
// kept. Any other word runs to the next whitespace.
func Split(s string) ([]*T, error) {
	words := []*T{}

	for i := 0; i < len(s); {
		if space(s[i]) {
			i++

			continue
		}

		start := i

		switch s[i] {
		case '{':
			end, err := braced(s, i)
			if err != nil {
				return nil, err
			}

			w := New(s[start+1 : end])
			w.literal = true

			words = append(words, w)
			i = end + 1

		case '[':
			end, err := bracketed(s, i)
			if err != nil {
				return nil, err
			}

			words = append(words, New(s[start:end+1]))
			i = end + 1

		default:
			for i < len(s) && !space(s[i]) {
				i++
			}

			words = append(words, New(s[start:i]))
		}
	}

	return words, nil
}

func braced(s string, i int) (int, error) {
	depth := 0

	for j := i; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}

	return 0, &ParseError{Offset: i, Incomplete: true, Text: s, msg: "unbalanced braces"}
}

func bracketed(s string, i int) (int, error) {
	braces := 0
	brackets := 0

	for j := i; j < len(s); j++ {
		switch s[j] {
		case '{':
			braces++
		case '}':
			braces--
			if braces < 0 {
				return 0, &ParseError{Offset: j, Text: s, msg: "unexpected '}'"}
			}
		case '[':
			if braces == 0 {
				brackets++
			}
		case ']':
			if braces == 0 {
				brackets--
				if brackets == 0 {
					return j, nil
				}
			}
		}
	}

	return 0, &ParseError{Offset: i, Incomplete: true, Text: s, msg: "unbalanced brackets"}
}

func space(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}
