// Package hash provides the checksum used to verify persisted codebooks.
//
// Codebook files carry a CRC32-Castagnoli (CRC32C) checksum of their
// payload. Go's crc32 package uses hardware instructions for this
// polynomial when available (SSE4.2 on x86-64, the CRC extension on ARM64).
//
//	checksum := hash.CRC32C(block)
package hash
