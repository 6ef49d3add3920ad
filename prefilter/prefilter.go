// Package prefilter finds candidate match starts for a pattern before the
// backtracker runs.
//
// A prefilter is built from the prefixes the literal package extracts. It
// never skips a real match: every offset where a match can start is
// reported as a candidate, in increasing order. Candidates that are not
// matches are rejected by the full match attempt.
package prefilter

import (
	"github.com/coregx/luapat/literal"
	"github.com/coregx/luapat/simd"
)

// Prefilter reports candidate match starts.
type Prefilter interface {
	// Find returns the first candidate at or after start, or -1.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is a full match of exactly
	// LiteralLen bytes, so no verification is needed.
	IsComplete() bool

	// LiteralLen returns the match length of a complete prefilter, else 0.
	LiteralLen() int

	// HeapBytes returns the memory held by the prefilter.
	HeapBytes() int
}

// Builder selects a prefilter for extracted prefixes.
type Builder struct {
	prefixes literal.Prefixes
}

// NewBuilder creates a Builder.
func NewBuilder(prefixes literal.Prefixes) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the best prefilter for the prefixes, or nil when they give
// no useful information.
//
// Selection:
//   - one single-byte literal: Memchr
//   - one longer literal: Memmem
//   - several single-byte literals or a first-byte set: byte set scan
//   - several literals sharing a prefix of 2+ bytes: Memmem on that prefix
//   - several literals otherwise: Aho-Corasick
func (b *Builder) Build() Prefilter {
	seq := b.prefixes.Literals
	if seq.IsEmpty() {
		if b.prefixes.FirstBytes != nil {
			return newByteSetPrefilter(b.prefixes.FirstBytes)
		}
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Len() == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	if seq.MinLen() == 1 {
		var table [256]bool
		for _, b := range seq.Bytes() {
			table[b[0]] = true
		}
		return newByteSetPrefilter(&table)
	}

	if lcp := seq.LongestCommonPrefix(); len(lcp) >= 2 {
		return newMemmemPrefilter(lcp, false)
	}

	if pf, err := newAhoCorasickPrefilter(seq); err == nil {
		return pf
	}
	var table [256]bool
	for _, b := range seq.Bytes() {
		table[b[0]] = true
	}
	return newByteSetPrefilter(&table)
}

type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{needle: needle, complete: complete}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)
	return &memmemPrefilter{needle: needleCopy, complete: complete}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}
