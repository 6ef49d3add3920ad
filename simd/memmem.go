package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1. An empty needle matches at 0, as with bytes.Index.
//
// The search looks for the rarest byte of needle (by ByteFrequencies) with
// Memchr and verifies the whole needle around each hit.
//
// Example:
//
//	pos := simd.Memmem([]byte("key=value; other=x"), []byte("other"))
//	fmt.Println(pos) // Output: 11
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, idx := RareByte(needle)
	// The rare byte of a match at s sits at s+idx, so only positions in
	// [idx, last] can be hits.
	last := len(haystack) - len(needle) + idx
	for at := idx; at <= last; {
		hit := Memchr(haystack[at:last+1], rare)
		if hit < 0 {
			return -1
		}
		start := at + hit - idx
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		at += hit + 1
	}
	return -1
}
