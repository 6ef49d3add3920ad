package luapat

import (
	"strconv"
	"strings"

	"github.com/coregx/luapat/backtrack"
)

// Builder assembles pattern bytes from raw pattern text and from literal
// data, escaping the magic bytes ^$()%.[]*+-? in the latter.
//
// Example:
//
//	pattern := new(luapat.Builder).
//	    Text("^").
//	    Bytes([]byte("1+1=2")).
//	    Text("$").
//	    Build()
//	// pattern = "^1%+1=2$"
type Builder struct {
	buf []byte
}

// Text appends s as pattern text, without escaping.
func (b *Builder) Text(s string) *Builder {
	b.buf = append(b.buf, s...)
	return b
}

// TextLines appends the first whitespace-delimited field of every line of
// s. The rest of each line is ignored, so a long pattern can be spread over
// lines with trailing comments, as long as it spells whitespace as %s.
//
// Example:
//
//	pattern := new(luapat.Builder).TextLines(`
//	    (%a+)     -- key
//	    %s*=%s*
//	    (%d+)     -- value
//	`).Build()
//	// pattern = "(%a+)%s*=%s*(%d+)"
func (b *Builder) TextLines(s string) *Builder {
	for _, line := range strings.Split(s, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			b.buf = append(b.buf, fields[0]...)
		}
	}
	return b
}

// Bytes appends data as a literal, escaping every magic byte with '%'.
func (b *Builder) Bytes(data []byte) *Builder {
	b.buf = appendQuoted(b.buf, data)
	return b
}

// BytesAsHex appends the bytes spelled by the hex digit pairs in s as a
// literal. See HexToBytes.
func (b *Builder) BytesAsHex(s string) *Builder {
	return b.Bytes(HexToBytes(s))
}

// Build returns the assembled pattern and resets the Builder.
func (b *Builder) Build() []byte {
	out := b.buf
	b.buf = nil
	return out
}

func appendQuoted(dst, data []byte) []byte {
	for _, c := range data {
		if backtrack.IsMagic(c) {
			dst = append(dst, '%')
		}
		dst = append(dst, c)
	}
	return dst
}

// QuoteMeta returns a pattern that matches the literal text s.
//
// Example:
//
//	luapat.QuoteMeta("50% off (today)") // "50%% off %(today%)"
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if backtrack.IsMagic(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	return string(appendQuoted(make([]byte, 0, len(s)+n), []byte(s)))
}

var hexPair = MustCompile(`%x%x`)

// HexToBytes decodes the pairs of adjacent hex digits found in s. Anything
// that is not part of such a pair is skipped, so "DE AD be ef" decodes to
// 0xDE 0xAD 0xBE 0xEF.
func HexToBytes(s string) []byte {
	// %x%x has no repetition, so the depth limit cannot be reached.
	pairs, _ := hexPair.FindAllString(s, -1)
	out := make([]byte, 0, len(pairs))
	for _, pair := range pairs {
		v, _ := strconv.ParseUint(pair, 16, 8)
		out = append(out, byte(v))
	}
	return out
}

// BytesToHex encodes data as upper-case hex digit pairs.
func BytesToHex(data []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, 2*len(data))
	for _, c := range data {
		out = append(out, digits[c>>4], digits[c&0x0f])
	}
	return string(out)
}
