package xmatch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/xmatch/codebook"
)

var (
	// ErrInvalidArgument is the parent of all input validation errors.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnhashable is returned by NumerifyAny for values that cannot be
	// used as keys.
	ErrUnhashable = codebook.ErrUnhashable

	// ErrNotSequence is returned by NumerifyAny when tuple conversion is
	// requested for an item that is not a slice, array or string.
	ErrNotSequence = codebook.ErrNotSequence
)

// ErrShapeMismatch indicates an array whose length disagrees with the
// reference array it is parallel to.
type ErrShapeMismatch struct {
	Name     string // argument name
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: %s has %d rows, expected %d", e.Name, e.Actual, e.Expected)
}

func (e *ErrShapeMismatch) Unwrap() error { return ErrInvalidArgument }

// ErrIndexOutOfRange indicates a matched position that the indexed array
// cannot hold, which means the matcher returned an invalid index.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrIndexOutOfRange struct {
	Index int
	Len   int
	cause error
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index out of range: %d with length %d", e.Index, e.Len)
}

func (e *ErrIndexOutOfRange) Unwrap() error { return e.cause }

// Is reports ErrInvalidArgument as a match.
func (e *ErrIndexOutOfRange) Is(target error) bool { return target == ErrInvalidArgument }

// ErrNotNumeric indicates a non-integer item handed to a matcher without
// numerify.
type ErrNotNumeric struct {
	Side  string // "x" or "y"
	Index int
	Value any
}

func (e *ErrNotNumeric) Error() string {
	return fmt.Sprintf("not numeric: %s[%d] has type %T", e.Side, e.Index, e.Value)
}

func (e *ErrNotNumeric) Unwrap() error { return ErrInvalidArgument }
