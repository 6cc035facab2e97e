package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts uint32 to int safely.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// Span returns max-min as a uint32.
// It fails when min > max or when the distance does not fit in 32 bits.
func Span(minVal, maxVal int64) (uint32, error) {
	if minVal > maxVal {
		return 0, fmt.Errorf("invalid range: min %d > max %d", minVal, maxVal)
	}
	// Subtraction in uint64 cannot overflow for min <= max.
	d := uint64(maxVal) - uint64(minVal)
	if d > math.MaxUint32 {
		return 0, fmt.Errorf("range overflow: span %d..%d exceeds uint32", minVal, maxVal)
	}
	return uint32(d), nil
}

// Offset returns v-base as a uint32 if v lies in [base, base+span].
func Offset(v, base int64, span uint32) (uint32, bool) {
	if v < base {
		return 0, false
	}
	d := uint64(v) - uint64(base)
	if d > uint64(span) {
		return 0, false
	}
	return uint32(d), true
}

// WrapOffset returns v-base truncated to 32 bits without any range check.
func WrapOffset(v, base int64) uint32 {
	return uint32(uint64(v) - uint64(base))
}
