package prefilter

import "github.com/coregx/luapat/simd"

// byteSetPrefilter reports offsets whose byte is in a set. Sets of one or
// two bytes use the word-at-a-time searches.
type byteSetPrefilter struct {
	table   [256]bool
	members []byte
}

func newByteSetPrefilter(table *[256]bool) Prefilter {
	p := &byteSetPrefilter{table: *table}
	for b, ok := range table {
		if ok {
			p.members = append(p.members, byte(b))
		}
	}
	return p
}

func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	var idx int
	switch len(p.members) {
	case 0:
		return -1
	case 1:
		idx = simd.Memchr(haystack[start:], p.members[0])
	case 2:
		idx = simd.Memchr2(haystack[start:], p.members[0], p.members[1])
	default:
		idx = simd.MemchrInTable(haystack[start:], &p.table)
	}
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete is false: a byte set only constrains the first byte.
func (p *byteSetPrefilter) IsComplete() bool {
	return false
}

func (p *byteSetPrefilter) LiteralLen() int {
	return 0
}

func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.table) + cap(p.members)
}
