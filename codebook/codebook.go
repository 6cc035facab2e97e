package codebook

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

var (
	// ErrUnhashable is returned for a value that cannot be used as a key.
	ErrUnhashable = errors.New("unhashable value")

	// ErrNotSequence is returned when a tuple is requested for a value that
	// is not a slice, array or string.
	ErrNotSequence = errors.New("value is not a sequence")

	// ErrUnknownCode is returned when decoding a code the codebook never assigned.
	ErrUnknownCode = errors.New("unknown code")
)

// Codebook maps values to dense integer codes in first-seen order and
// keeps the inverse mapping. The zero value is an empty codebook.
type Codebook[K comparable] struct {
	codes  map[K]int
	values []K
}

// New returns an empty codebook.
func New[K comparable]() *Codebook[K] {
	return &Codebook[K]{codes: make(map[K]int)}
}

// FromValues builds a codebook whose code i is values[i].
// Repeated values are rejected because they would break the inverse mapping.
func FromValues[K comparable](values []K) (*Codebook[K], error) {
	cb := &Codebook[K]{
		codes:  make(map[K]int, len(values)),
		values: make([]K, 0, len(values)),
	}
	for i, v := range values {
		if !Hashable(v) {
			return nil, fmt.Errorf("%w: value at %d has type %T", ErrUnhashable, i, v)
		}
		if prev, ok := cb.codes[v]; ok {
			return nil, fmt.Errorf("codebook: value at %d repeats value at %d", i, prev)
		}
		cb.codes[v] = i
		cb.values = append(cb.values, v)
	}
	return cb, nil
}

// Encode returns the code of v, assigning the next code if v is new.
//
// Like a Go map, Encode panics if v is an interface holding a
// non-comparable dynamic value.
func (c *Codebook[K]) Encode(v K) int {
	if code, ok := c.codes[v]; ok {
		return code
	}
	if c.codes == nil {
		c.codes = make(map[K]int)
	}
	code := len(c.values)
	c.codes[v] = code
	c.values = append(c.values, v)
	return code
}

// Code returns the code of v without assigning one.
func (c *Codebook[K]) Code(v K) (int, bool) {
	code, ok := c.codes[v]
	return code, ok
}

// Value returns the value that was assigned code.
func (c *Codebook[K]) Value(code int) (K, bool) {
	if code < 0 || code >= len(c.values) {
		var zero K
		return zero, false
	}
	return c.values[code], true
}

// Decode maps codes back to their values.
func (c *Codebook[K]) Decode(codes []int) ([]K, error) {
	out := make([]K, len(codes))
	for i, code := range codes {
		v, ok := c.Value(code)
		if !ok {
			return nil, fmt.Errorf("%w: %d at position %d", ErrUnknownCode, code, i)
		}
		out[i] = v
	}
	return out, nil
}

// Len returns the number of assigned codes.
func (c *Codebook[K]) Len() int { return len(c.values) }

// Values returns a copy of the values in code order.
func (c *Codebook[K]) Values() []K {
	return append([]K(nil), c.values...)
}

// All iterates over (value, code) pairs in code order.
func (c *Codebook[K]) All() iter.Seq2[K, int] {
	return func(yield func(K, int) bool) {
		for code, v := range c.values {
			if !yield(v, code) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (c *Codebook[K]) Clone() *Codebook[K] {
	out := &Codebook[K]{
		codes:  make(map[K]int, len(c.codes)),
		values: c.Values(),
	}
	for k, v := range c.codes {
		out.codes[k] = v
	}
	return out
}

// Hashable reports whether v can be used as a map key, taking the dynamic
// types of nested interface values into account. nil is hashable.
func Hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
