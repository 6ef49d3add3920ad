package prefilter

import (
	"fmt"
	"testing"

	"github.com/coregx/luapat/literal"
)

func build(pattern string) Prefilter {
	e := literal.New(literal.DefaultConfig())
	return NewBuilder(e.ExtractPrefixes([]byte(pattern))).Build()
}

func TestBuilderSelection(t *testing.T) {
	tests := []struct {
		pattern  string
		kind     string
		complete bool
		litLen   int
	}{
		{"x", "*prefilter.memchrPrefilter", true, 1},
		{"x%d*", "*prefilter.memchrPrefilter", false, 0},
		{"hello", "*prefilter.memmemPrefilter", true, 5},
		{"hello%s", "*prefilter.memmemPrefilter", false, 0},
		{"ab%d", "*prefilter.memmemPrefilter", false, 0},
		{"[xy]", "*prefilter.byteSetPrefilter", false, 0},
		{"%a+", "*prefilter.byteSetPrefilter", false, 0},
		{"[Hh]ello", "*prefilter.ahoCorasickPrefilter", true, 5},
		{"[Hh]ello(%a*)", "*prefilter.ahoCorasickPrefilter", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			pf := build(tt.pattern)
			if pf == nil {
				t.Fatal("no prefilter")
			}
			if got := fmt.Sprintf("%T", pf); got != tt.kind {
				t.Errorf("type = %s, want %s", got, tt.kind)
			}
			if pf.IsComplete() != tt.complete {
				t.Errorf("IsComplete() = %v, want %v", pf.IsComplete(), tt.complete)
			}
			if pf.LiteralLen() != tt.litLen {
				t.Errorf("LiteralLen() = %d, want %d", pf.LiteralLen(), tt.litLen)
			}
		})
	}
}

func TestBuilderNone(t *testing.T) {
	for _, pattern := range []string{"", "^abc", ".+", "x*y", "(.)%1"} {
		if pf := build(pattern); pf != nil {
			t.Errorf("build(%q) = %T, want nil", pattern, pf)
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		start    int
		want     int
	}{
		{"x", "abxcx", 0, 2},
		{"x", "abxcx", 3, 4},
		{"x", "abxcx", 5, -1},
		{"hello", "say hello", 0, 4},
		{"hello", "say hello", 5, -1},
		{"[xy]", "abyx", 0, 2},
		{"[xyz]", "abzx", 0, 2},
		{"%d+", "abc123", 1, 3},
		{"[Hh]ello", "Oh, hello Hello", 0, 4},
		{"[Hh]ello", "Oh, hello Hello", 5, 10},
		{"[Hh]ello", "Oh, hi", 0, -1},
		{"ab%d", "ab ab7", 0, 0},
		{"ab%d", "ab ab7", 1, 3},
		{"hello", "hello", -1, -1},
	}

	for _, tt := range tests {
		pf := build(tt.pattern)
		if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
			t.Errorf("%q: Find(%q, %d) = %d, want %d", tt.pattern, tt.haystack, tt.start, got, tt.want)
		}
	}
}

func TestHeapBytes(t *testing.T) {
	if got := build("x").HeapBytes(); got != 0 {
		t.Errorf("memchr HeapBytes = %d", got)
	}
	if got := build("hello").HeapBytes(); got != 5 {
		t.Errorf("memmem HeapBytes = %d", got)
	}
	if got := build("[Hh]ello").HeapBytes(); got != 10 {
		t.Errorf("aho-corasick HeapBytes = %d", got)
	}
	if got := build("[abc]").HeapBytes(); got < 256 {
		t.Errorf("byte set HeapBytes = %d", got)
	}
}
