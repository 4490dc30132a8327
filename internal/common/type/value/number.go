// Released under an MIT license. See LICENSE.

package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors returned by numeric coercions.
var (
	ErrNotInteger = errors.New("expected integer")
	ErrNotNumber  = errors.New("expected number")
	ErrRange      = errors.New("number out of range")
)

// Float coerces v to a float.
func (v *value) Float() (float64, error) {
	if v == nil {
		return 0, ErrNil
	}

	if v.kind&Float != 0 {
		return v.f, nil
	}

	var f float64

	if v.origin == Int {
		f = float64(v.i)
	} else {
		s := v.String()

		var err error

		f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			i, ok := hex(s)
			if !ok {
				return 0, fmt.Errorf("%w but got %q", ErrNotNumber, s)
			}

			f = float64(i)
		}
	}

	v.f = f
	v.kind |= Float

	return f, nil
}

// Int coerces v to an integer. Floats are floored.
func (v *value) Int() (int64, error) {
	if v == nil {
		return 0, ErrNil
	}

	if v.kind&Int != 0 {
		return v.i, nil
	}

	var (
		i   int64
		err error
	)

	if v.origin == Float {
		i, err = floor(v.f)
	} else {
		i, err = parseInt(v.String())
	}

	if err != nil {
		return 0, err
	}

	v.i = i
	v.kind |= Int

	return i, nil
}

func floor(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrRange, f)
	}

	f = math.Floor(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v", ErrRange, f)
	}

	return int64(f), nil
}

func hex(s string) (int64, bool) {
	neg := false

	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, false
	}

	i, err := strconv.ParseInt(s[2:], 16, 64)
	if err != nil {
		return 0, false
	}

	if neg {
		i = -i
	}

	return i, true
}

func parseInt(s string) (int64, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrRange, s)
	}

	if i, ok := hex(s); ok {
		return i, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w but got %q", ErrNotInteger, s)
	}

	return floor(f)
}
