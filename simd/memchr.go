// Package simd provides fast byte and substring search for pattern
// prefilters. On CPUs with a vector unit the single-byte search is handed to
// the runtime's vectorized bytes.IndexByte; elsewhere, and for the searches
// the runtime has no primitive for, it uses SWAR (SIMD Within A Register)
// loops that examine 8 bytes per iteration.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// hasVector reports whether the runtime's byte search is vectorized on
// this CPU.
var hasVector = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

// vectorThreshold is the haystack size below which the SWAR loop wins over
// the call into the vectorized search.
const vectorThreshold = 32

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	fmt.Println(pos) // Output: 4
func Memchr(haystack []byte, needle byte) int {
	if hasVector && len(haystack) >= vectorThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or
// needle2 in haystack, or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Generic(haystack, needle1, needle2)
}

// MemchrInTable returns the index of the first byte b of haystack with
// table[b] set, or -1.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	if table == nil {
		return -1
	}
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}
