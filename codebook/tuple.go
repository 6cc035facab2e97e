package codebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
)

// Element type tags. The tag precedes every element in the encoding so
// int(1) and int64(1) stay distinct keys.
const (
	tagBool byte = iota + 1
	tagString
	tagInt
	tagInt8
	tagInt16
	tagInt32
	tagInt64
	tagUint
	tagUint8
	tagUint16
	tagUint32
	tagUint64
	tagFloat32
	tagFloat64
	tagNil
	tagSeq
)

// maxDepth bounds nested sequences so self-referencing slices fail instead
// of recursing forever.
const maxDepth = 32

// Tuple is a comparable key built from a sequence of values.
//
// Elements may be nil, a predeclared scalar (bool, string, the sized and
// unsized integer types, float32 or float64) or a nested sequence: a Tuple,
// slice or array whose own elements follow the same rules. Nested sequences
// decode as Tuple, so []any{1, 2}, [2]any{1, 2} and MustTuple(1, 2) are the
// same element. Negative zero is stored as zero so tuples follow ==; NaN
// elements compare equal to themselves.
type Tuple struct {
	key string
	n   int
}

// NewTuple builds a tuple from elems.
func NewTuple(elems ...any) (Tuple, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for i, e := range elems {
		if err := encodeElem(enc, e, 0); err != nil {
			return Tuple{}, fmt.Errorf("tuple element %d: %w", i, err)
		}
	}
	return Tuple{key: buf.String(), n: len(elems)}, nil
}

// TupleOf converts a slice, array or string into a tuple. Strings become a
// tuple of one-rune strings; a byte that is not valid UTF-8 becomes its own
// one-byte string so distinct strings never share a tuple. A Tuple is
// returned unchanged.
func TupleOf(v any) (Tuple, error) {
	if t, ok := v.(Tuple); ok {
		return t, nil
	}
	if s, ok := v.(string); ok {
		elems := make([]any, 0, len(s))
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				elems = append(elems, s[i:i+1])
			} else {
				elems = append(elems, string(r))
			}
			i += size
		}
		return NewTuple(elems...)
	}

	elems, ok := sequenceElems(v)
	if !ok {
		return Tuple{}, fmt.Errorf("%w: %T", ErrNotSequence, v)
	}
	return NewTuple(elems...)
}

// sequenceElems returns the elements of a slice or array.
func sequenceElems(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}

// MustTuple is like NewTuple but panics on error. Intended for tests and literals.
func MustTuple(elems ...any) Tuple {
	t, err := NewTuple(elems...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of elements.
func (t Tuple) Len() int { return t.n }

// Elems decodes the elements with their original types.
func (t Tuple) Elems() ([]any, error) {
	elems, err := decodeElems([]byte(t.key))
	if err != nil {
		return nil, err
	}
	return elems, nil
}

// String renders the tuple like (1, "a", true).
func (t Tuple) String() string {
	elems, err := t.Elems()
	if err != nil {
		return "(?)"
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		if s, ok := e.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
			continue
		}
		parts[i] = fmt.Sprint(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (t Tuple) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes([]byte(t.key))
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (t *Tuple) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	return t.setKey(b)
}

// MarshalJSON encodes the canonical key as a base64 string.
func (t Tuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]byte(t.key))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tuple) UnmarshalJSON(data []byte) error {
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	return t.setKey(b)
}

func (t *Tuple) setKey(b []byte) error {
	elems, err := decodeElems(b)
	if err != nil {
		return err
	}
	t.key = string(b)
	t.n = len(elems)
	return nil
}

func encodeElem(enc *msgpack.Encoder, e any, depth int) error {
	switch v := e.(type) {
	case nil:
		return enc.EncodeUint8(tagNil)
	case Tuple:
		elems, err := v.Elems()
		if err != nil {
			return err
		}
		return encodeSeq(enc, elems, depth)
	case bool:
		return tagged(enc, tagBool, func() error { return enc.EncodeBool(v) })
	case string:
		return tagged(enc, tagString, func() error { return enc.EncodeString(v) })
	case int:
		return tagged(enc, tagInt, func() error { return enc.EncodeInt(int64(v)) })
	case int8:
		return tagged(enc, tagInt8, func() error { return enc.EncodeInt(int64(v)) })
	case int16:
		return tagged(enc, tagInt16, func() error { return enc.EncodeInt(int64(v)) })
	case int32:
		return tagged(enc, tagInt32, func() error { return enc.EncodeInt(int64(v)) })
	case int64:
		return tagged(enc, tagInt64, func() error { return enc.EncodeInt(v) })
	case uint:
		return tagged(enc, tagUint, func() error { return enc.EncodeUint(uint64(v)) })
	case uint8:
		return tagged(enc, tagUint8, func() error { return enc.EncodeUint(uint64(v)) })
	case uint16:
		return tagged(enc, tagUint16, func() error { return enc.EncodeUint(uint64(v)) })
	case uint32:
		return tagged(enc, tagUint32, func() error { return enc.EncodeUint(uint64(v)) })
	case uint64:
		return tagged(enc, tagUint64, func() error { return enc.EncodeUint(v) })
	case float32:
		if v == 0 {
			v = 0 // drop the sign of -0
		}
		return tagged(enc, tagFloat32, func() error { return enc.EncodeFloat32(v) })
	case float64:
		if v == 0 {
			v = 0
		}
		return tagged(enc, tagFloat64, func() error { return enc.EncodeFloat64(v) })
	default:
		if elems, ok := sequenceElems(e); ok {
			return encodeSeq(enc, elems, depth)
		}
		return fmt.Errorf("%w: %T", ErrUnhashable, e)
	}
}

// encodeSeq writes a nested sequence as its tag, the element count and the
// tagged elements.
func encodeSeq(enc *msgpack.Encoder, elems []any, depth int) error {
	if depth >= maxDepth {
		return fmt.Errorf("%w: sequence nested deeper than %d", ErrUnhashable, maxDepth)
	}
	if err := enc.EncodeUint8(tagSeq); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(elems)); err != nil {
		return err
	}
	for i, e := range elems {
		if err := encodeElem(enc, e, depth+1); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func tagged(enc *msgpack.Encoder, tag byte, write func() error) error {
	if err := enc.EncodeUint8(tag); err != nil {
		return err
	}
	return write()
}

func decodeElems(b []byte) ([]any, error) {
	r := bytes.NewReader(b)
	dec := msgpack.NewDecoder(r)
	var elems []any
	for r.Len() > 0 {
		tag, err := dec.DecodeUint8()
		if err != nil {
			return nil, fmt.Errorf("codebook: corrupt tuple: %w", err)
		}
		e, err := decodeElem(dec, tag)
		if err != nil {
			return nil, fmt.Errorf("codebook: corrupt tuple: %w", err)
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func decodeElem(dec *msgpack.Decoder, tag byte) (any, error) {
	switch tag {
	case tagBool:
		return dec.DecodeBool()
	case tagString:
		return dec.DecodeString()
	case tagInt:
		v, err := dec.DecodeInt64()
		return int(v), err
	case tagInt8:
		return dec.DecodeInt8()
	case tagInt16:
		return dec.DecodeInt16()
	case tagInt32:
		return dec.DecodeInt32()
	case tagInt64:
		return dec.DecodeInt64()
	case tagUint:
		v, err := dec.DecodeUint64()
		return uint(v), err
	case tagUint8:
		return dec.DecodeUint8()
	case tagUint16:
		return dec.DecodeUint16()
	case tagUint32:
		return dec.DecodeUint32()
	case tagUint64:
		return dec.DecodeUint64()
	case tagFloat32:
		return dec.DecodeFloat32()
	case tagFloat64:
		return dec.DecodeFloat64()
	case tagNil:
		return nil, nil
	case tagSeq:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative sequence length %d", n)
		}
		elems := make([]any, 0, min(n, 64))
		for range n {
			tag, err := dec.DecodeUint8()
			if err != nil {
				return nil, err
			}
			e, err := decodeElem(dec, tag)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return NewTuple(elems...)
	default:
		return nil, fmt.Errorf("unknown element tag %d", tag)
	}
}
