// Released under an MIT license. See LICENSE.

package value

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when popping from an empty sequence.
var ErrEmpty = errors.New("sequence is empty")

// Append adds es to the end of the sequence v.
func (v *value) Append(es ...*T) error {
	seq, err := v.Seq()
	if err != nil {
		return err
	}

	for _, e := range es {
		seq = append(seq, e.Retain())
	}

	v.seq = seq
	v.mutated()

	return nil
}

// Extend adds the elements of the sequence o to the end of the sequence v.
func (v *value) Extend(o *T) error {
	es, err := o.Seq()
	if err != nil {
		return err
	}

	// Copy so that extending v with itself sees a stable source.
	return v.Append(append([]*T(nil), es...)...)
}

// Index returns element i of the sequence v.
func (v *value) Index(i int) (*T, error) {
	seq, err := v.Seq()
	if err != nil {
		return nil, err
	}

	if i < 0 || i >= len(seq) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", i, len(seq))
	}

	return seq[i], nil
}

// Len returns the number of elements in the sequence v.
func (v *value) Len() (int, error) {
	seq, err := v.Seq()
	if err != nil {
		return 0, err
	}

	return len(seq), nil
}

// Pop removes and returns the last element of the sequence v.
// The reference v held is transferred to the caller, who must Release it.
func (v *value) Pop() (*T, error) {
	seq, err := v.Seq()
	if err != nil {
		return nil, err
	}

	n := len(seq)
	if n == 0 {
		return nil, ErrEmpty
	}

	e := seq[n-1]
	seq[n-1] = nil

	v.seq = seq[:n-1]
	v.mutated()

	return e, nil
}

// Seq coerces v to a sequence. Text is split into words.
func (v *value) Seq() ([]*T, error) {
	if v == nil {
		return nil, ErrNil
	}

	if v.kind&Seq != 0 {
		return v.seq, nil
	}

	es, err := Split(v.String())
	if err != nil {
		return nil, err
	}

	for _, e := range es {
		e.Retain()
	}

	v.seq = es
	v.kind |= Seq

	return v.seq, nil
}
