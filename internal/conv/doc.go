// Package conv provides checked integer conversions.
//
// The matcher uses these to validate that a key range fits its 32-bit
// index domain, and the codebook reader uses them on lengths read from
// untrusted input.
//
// For conversions that are provably safe (loop indices, bounded counters),
// use direct type casts instead.
package conv
