// Package codebook maps arbitrary comparable values to dense integer codes.
//
// Codes start at 0 and are assigned in first-seen order. A Codebook is an
// explicit, caller-owned object: pass the same Codebook to several
// numerify calls to give equal values equal codes across all of them.
//
//	cb := codebook.New[string]()
//	cb.Encode("b") // 0
//	cb.Encode("a") // 1
//	cb.Encode("b") // 0
//	v, _ := cb.Value(1) // "a"
//
// # Tuples
//
// Go slices are not comparable, so sequence values are converted to a
// Tuple first. A Tuple is a comparable key holding a canonical encoding of
// its elements; two tuples are equal iff their elements are equal and of
// identical types.
//
// # Persistence
//
// Write and Read store a codebook so codes stay stable across processes.
// The file records its codec and compression and carries a CRC32C checksum.
//
// # Thread Safety
//
// Codebook is not synchronized. Concurrent use requires external locking.
package codebook
