package literal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func literalStrings(s *Seq) []string {
	var out []string
	for _, b := range s.Bytes() {
		out = append(out, string(b))
	}
	return out
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern  string
		want     []string
		complete bool
	}{
		{"hello", []string{"hello"}, true},
		{"hello world", []string{"hello world"}, true},
		{"[Hh]ello", []string{"Hello", "hello"}, true},
		{"[Hh]ello%s*", []string{"Hello", "hello"}, false},
		{"[Hh]i%s+", []string{"Hi\t", "Hi\n", "Hi\v", "Hi\f", "Hi\r", "Hi ", "hi\t", "hi\n", "hi\v", "hi\f", "hi\r", "hi "}, false},
		{"ab%d", []string{"ab0", "ab1", "ab2", "ab3", "ab4", "ab5", "ab6", "ab7", "ab8", "ab9"}, true},
		{"ab+c", []string{"ab"}, false},
		{"abc*", []string{"ab"}, false},
		{"abc?", []string{"ab"}, false},
		{"abc-", []string{"ab"}, false},
		{"a%.b", []string{"a.b"}, true},
		{"(key)=", []string{"key="}, false},
		{"()x", []string{"x"}, false},
		{"%f[%w]the", []string{"the"}, false},
		{"x%b()", []string{"x("}, false},
		{"end$", []string{"end"}, false},
		{"a$b", []string{"a$b"}, true},
		{"a^", []string{"a^"}, true},
		{"(a)%1", []string{"a"}, false},
		{"\x00\xff", []string{"\x00\xff"}, true},
		{"[]]x", []string{"]x"}, true},
	}

	e := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := e.ExtractPrefixes([]byte(tt.pattern))
			if got.FirstBytes != nil {
				t.Fatalf("unexpected first-byte set")
			}
			if diff := cmp.Diff(tt.want, literalStrings(got.Literals)); diff != "" {
				t.Errorf("literals mismatch (-want +got):\n%s", diff)
			}
			if c := got.Literals.AllComplete(); c != tt.complete {
				t.Errorf("AllComplete = %v, want %v", c, tt.complete)
			}
		})
	}
}

func TestExtractPrefixesNone(t *testing.T) {
	patterns := []string{
		"", "^abc", ".x", "a*b", "%w-", "(.)%1", "%f[%a]", "$",
		"a%", "[abc", "%b(",
	}
	e := New(DefaultConfig())
	for _, pattern := range patterns {
		if got := e.ExtractPrefixes([]byte(pattern)); !got.IsEmpty() {
			t.Errorf("ExtractPrefixes(%q) = %+v, want nothing", pattern, got)
		}
	}
}

func TestExtractFirstBytes(t *testing.T) {
	tests := []struct {
		pattern string
		members int
	}{
		{"%a+", 52},
		{"%w", 62},
		{"[^%s]x", 250},
		{"()%u%l", 26},
	}
	e := New(DefaultConfig())
	for _, tt := range tests {
		got := e.ExtractPrefixes([]byte(tt.pattern))
		if got.Literals != nil || got.FirstBytes == nil {
			t.Errorf("ExtractPrefixes(%q) = %+v, want a first-byte set", tt.pattern, got)
			continue
		}
		if n := len(setMembers(got.FirstBytes)); n != tt.members {
			t.Errorf("ExtractPrefixes(%q) first-byte set has %d members, want %d", tt.pattern, n, tt.members)
		}
	}
}

func TestExtractLimits(t *testing.T) {
	e := New(ExtractorConfig{MaxLiterals: 4, MaxLiteralLen: 3, MaxClassSize: 2})

	// The product [ab][cd][ef] would need 8 literals.
	got := e.ExtractPrefixes([]byte("[ab][cd][ef]"))
	if diff := cmp.Diff([]string{"ac", "ad", "bc", "bd"}, literalStrings(got.Literals)); diff != "" {
		t.Errorf("product limit (-want +got):\n%s", diff)
	}
	if got.Literals.AllComplete() {
		t.Error("truncated product reported complete")
	}

	got = e.ExtractPrefixes([]byte(strings.Repeat("x", 10)))
	if diff := cmp.Diff([]string{"xxx"}, literalStrings(got.Literals)); diff != "" {
		t.Errorf("length limit (-want +got):\n%s", diff)
	}

	got = e.ExtractPrefixes([]byte("[abc]z"))
	if got.FirstBytes == nil || !got.FirstBytes['c'] || got.FirstBytes['z'] {
		t.Errorf("oversized set should become a first-byte set, got %+v", got)
	}

	exact := e.ExtractPrefixes([]byte("xyz"))
	if !exact.Literals.AllComplete() {
		t.Error("literal of exactly MaxLiteralLen should stay complete")
	}
}
