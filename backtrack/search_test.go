package backtrack

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// captured runs a validated search and renders each closed capture as its
// text; positional captures render as "@offset". A nil result means no match.
func captured(t *testing.T, pattern, subject string) []string {
	t.Helper()
	p := []byte(pattern)
	if _, err := Validate(p, DefaultMaxCaptures); err != nil {
		t.Fatalf("Validate(%q): %v", pattern, err)
	}
	b := New(p, DefaultMaxCaptures, DefaultMaxDepth)
	out := make([]Capture, DefaultMaxCaptures+1)
	n, err := b.Search([]byte(subject), 0, out)
	if err != nil {
		t.Fatalf("Search(%q, %q): %v", pattern, subject, err)
	}
	if n == 0 {
		return nil
	}
	res := make([]string, n)
	for i, c := range out[:n] {
		if c.Kind == CapturePosition {
			res[i] = c.String()
			continue
		}
		text, err := c.Bytes([]byte(subject))
		if err != nil {
			t.Fatalf("capture %d of %q: %v", i, pattern, err)
		}
		res[i] = string(text)
	}
	return res
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		subject string
		want    []string
	}{
		{"literal", "one", "hello one two", []string{"one"}},
		{"no match", "four", "one two", nil},
		{"empty pattern", "", "abc", []string{""}},
		{"empty subject", "%d+", "", nil},
		{"empty both", "", "", []string{""}},
		{"whitespace run", "%s+", "hello dolly", []string{" "}},
		{"balanced", "%b()", "(a(b)c)d", []string{"(a(b)c)"}},
		{"balanced later start", "%b()", "(a(b)c", []string{"(b)"}},
		{"balanced never closes", "%b()", "((a", nil},
		{"balanced same delimiters", `%b""`, `say "hi" now`, []string{`"hi"`}},
		{"frontier", "%f[%a]%a+", "  THE (quick) fox", []string{"THE"}},
		{"frontier both sides", "%f[%w]%w+%f[%W]", "THE (quick) fox", []string{"THE"}},
		{"frontier at end", "%w+%f[%W]", "fox", []string{"fox"}},
		{"frontier at start", "%f[%a]%a", "ab", []string{"a"}},
		{"capture", "(%a+) one", " hello one two", []string{"hello one", "hello"}},
		{"anchored", "^(%a+)", "one dog", []string{"one", "one"}},
		{"anchored miss", "^(%a+)", " one dog", nil},
		{"two captures", "(%S+)%s*=%s*(.+)", " hello= bonzo dog", []string{"hello= bonzo dog", "hello", "bonzo dog"}},
		{"lazy", "a-b", "aaab", []string{"aaab"}},
		{"star zero width", "a*", "baaa", []string{""}},
		{"plus", "a+", "baaa", []string{"aaa"}},
		{"lazy capture", "<(.-)>", "<a><b>", []string{"<a>", "a"}},
		{"greedy capture", "<(.*)>", "<a><b>", []string{"<a><b>", "a><b"}},
		{"optional", "x?y", "y", []string{"y"}},
		{"optional consumed", "colou?r", "colour", []string{"colour"}},
		{"positions", "()aa()", "flaaap", []string{"aa", "@2", "@4"}},
		{"backreference", "(%a)%1", "hello", []string{"ll", "l"}},
		{"escaped dollar", "%$(%S+)", "hello $dolly", []string{"$dolly", "dolly"}},
		{"set with class", "[%d%.]+", "v1.25x", []string{"1.25"}},
		{"negated set", "[^%s]+", "  abc  ", []string{"abc"}},
		{"range", "[a-c]+", "xxabcabd", []string{"abcab"}},
		{"bracket literal", "[]]", "a]b", []string{"]"}},
		{"negated bracket literal", "[^]]+", "]]ab]", []string{"ab"}},
		{"end anchor", "$", "abc", []string{""}},
		{"end anchor literal before", "a$", "aba", []string{"a"}},
		{"dollar not at end", "a$b", "a$b", []string{"a$b"}},
		{"caret not at start", "a^", "a^", []string{"a^"}},
		{"nested captures", "(a*(.)%w(%s*))", "aaab  ", []string{"aaab  ", "aaab  ", "a", "  "}},
		{"binary", "\xfe\xee+\xed", "\x00\x01\xfe\xee\xee\xed\xef", []string{"\xfe\xee\xee\xed"}},
		{"zero byte class", "%z", "a\x00b", []string{"\x00"}},
		{"hex digits", "%x+", "zz0fAg", []string{"0fA"}},
		{"punctuation", "%p+", "ab!?c", []string{"!?"}},
		{"control", "%c", "a\tb", []string{"\t"}},
		{"upper then lower", "%u%l+", "hello World", []string{"World"}},
		{"printable", "%g+", "  a-b c", []string{"a-b"}},
		{"negated alpha", "%A+", "ab12cd", []string{"12"}},
		{"identifier", "[%a_][%w_]*", "  _id9 = 3", []string{"_id9"}},
		{"greedy split", "(a+)(a+)", "aaaa", []string{"aaaa", "aaa", "a"}},
		{"lazy split", "(a-)(a+)", "aaaa", []string{"aaaa", "", "aaaa"}},
		{"lazy to end", "(a-)(a-)$", "aaaa", []string{"aaaa", "", "aaaa"}},
		{"trim", "^%s*(.-)%s*$", "  hi there  ", []string{"  hi there  ", "hi there"}},
		{"escaped magic", "%(%d+%)", "f(42)", []string{"(42)"}},
		{"quantifier after balance is literal", "%b()*", "(x)*", []string{"(x)*"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captured(t, tt.pattern, tt.subject)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q, %q) mismatch (-want +got):\n%s", tt.pattern, tt.subject, diff)
			}
		})
	}
}

func TestSearchSpans(t *testing.T) {
	b := New([]byte("(%a+) one"), DefaultMaxCaptures, DefaultMaxDepth)
	out := make([]Capture, DefaultMaxCaptures+1)
	n, err := b.Search([]byte(" hello one two"), 0, out)
	if err != nil {
		t.Fatal(err)
	}
	want := []Capture{
		{Start: 1, End: 10, Kind: CaptureClosed},
		{Start: 1, End: 6, Kind: CaptureClosed},
	}
	if diff := cmp.Diff(want, out[:n]); diff != "" {
		t.Errorf("captures mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchFromOffset(t *testing.T) {
	subject := []byte("one two three")
	b := New([]byte("%a+"), DefaultMaxCaptures, DefaultMaxDepth)
	out := make([]Capture, DefaultMaxCaptures+1)

	n, err := b.Search(subject, 4, out)
	if err != nil || n != 1 {
		t.Fatalf("Search from 4 = %d, %v", n, err)
	}
	if out[0].Start != 4 || out[0].End != 7 {
		t.Errorf("span = %v, want [4:7]", out[0])
	}

	// The frontier sees the byte before the start offset.
	f := New([]byte("%f[%a]%a+"), DefaultMaxCaptures, DefaultMaxDepth)
	n, err = f.Search(subject, 5, out)
	if err != nil || n != 1 {
		t.Fatalf("frontier Search from 5 = %d, %v", n, err)
	}
	if out[0].Start != 8 {
		t.Errorf("frontier match starts at %d, want 8", out[0].Start)
	}

	// '^' anchors at the start offset.
	a := New([]byte("^two"), DefaultMaxCaptures, DefaultMaxDepth)
	if n, _ := a.Search(subject, 4, out); n != 1 {
		t.Errorf("anchored Search at 4 = %d, want 1", n)
	}
	if n, _ := a.Search(subject, 3, out); n != 0 {
		t.Errorf("anchored Search at 3 = %d, want 0", n)
	}

	for _, start := range []int{-1, len(subject) + 1} {
		if n, err := b.Search(subject, start, out); n != 0 || err != nil {
			t.Errorf("Search at %d = %d, %v; want no match", start, n, err)
		}
	}
}

func TestSearchLeftmost(t *testing.T) {
	patterns := []string{"%a+", "o%a*", "(%a)%1", "%d-x", "%f[%S]."}
	subject := []byte("a boot 12x koo")
	out := make([]Capture, DefaultMaxCaptures+1)
	for _, pattern := range patterns {
		b := New([]byte(pattern), DefaultMaxCaptures, DefaultMaxDepth)
		n, err := b.Search(subject, 0, out)
		if err != nil || n == 0 {
			t.Fatalf("Search(%q) = %d, %v", pattern, n, err)
		}
		first := out[0].Start
		for at := 0; at < first; at++ {
			if n, _ := b.MatchAt(subject, at, out); n != 0 {
				t.Errorf("%q: match at %d is left of reported start %d", pattern, at, first)
			}
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	b := New([]byte("(%w+)%s*=%s*(%w+)"), DefaultMaxCaptures, DefaultMaxDepth)
	subject := []byte("x = 1, key=value")
	first := make([]Capture, DefaultMaxCaptures+1)
	second := make([]Capture, DefaultMaxCaptures+1)
	n1, _ := b.Search(subject, 2, first)
	n2, _ := b.Search(subject, 2, second)
	if diff := cmp.Diff(first[:n1], second[:n2]); diff != "" {
		t.Errorf("repeated search differs (-first +second):\n%s", diff)
	}
}

func TestMatchDepthExceeded(t *testing.T) {
	pattern := []byte(strings.Repeat("a?", 250))
	subject := []byte(strings.Repeat("a", 250))
	out := make([]Capture, DefaultMaxCaptures+1)

	b := New(pattern, DefaultMaxCaptures, DefaultMaxDepth)
	n, err := b.Search(subject, 0, out)
	if !errors.Is(err, ErrMatchDepthExceeded) {
		t.Fatalf("Search = %d, %v; want ErrMatchDepthExceeded", n, err)
	}

	deep := New(pattern, DefaultMaxCaptures, 300)
	n, err = deep.Search(subject, 0, out)
	if err != nil || n != 1 || out[0].End != 250 {
		t.Fatalf("Search with depth 300 = %d, %v, %v", n, err, out[0])
	}
}

func TestMatchDepthCapturesNest(t *testing.T) {
	out := make([]Capture, DefaultMaxCaptures+1)
	shallow := New([]byte("(((x)))"), DefaultMaxCaptures, 3)
	if _, err := shallow.Search([]byte("x"), 0, out); !errors.Is(err, ErrMatchDepthExceeded) {
		t.Errorf("depth 3: err = %v, want ErrMatchDepthExceeded", err)
	}
	roomy := New([]byte("(((x)))"), DefaultMaxCaptures, 10)
	if n, err := roomy.Search([]byte("x"), 0, out); err != nil || n != 4 {
		t.Errorf("depth 10: n = %d, err = %v", n, err)
	}
}

func TestRuntimeErrorsOnUnvalidatedPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		subject string
		err     error
	}{
		{"(a)(b)(c)", "abc", ErrTooManyCaptures},
		{"a)", "a", ErrNoOpenCapture},
		{"(a", "a", ErrUnfinishedCapture},
		{"a%2", "aa", ErrInvalidCaptureIndex},
		{"a%f", "a", ErrMalformedFrontier},
		{"a%bx", "a", ErrMalformedBalance},
		{"a[b", "a", ErrUnfinishedCharClass},
		{"a%", "a", ErrEndsWithEscape},
	}

	out := make([]Capture, 3)
	for _, tt := range tests {
		b := New([]byte(tt.pattern), 2, DefaultMaxDepth)
		_, err := b.Search([]byte(tt.subject), 0, out)
		if !errors.Is(err, tt.err) {
			t.Errorf("Search(%q) error = %v, want %v", tt.pattern, err, tt.err)
		}
	}
}

func TestClone(t *testing.T) {
	b := New([]byte("^(%d+)"), 4, 50)
	c := b.Clone()
	if c == b || !c.Anchored() || c.MaxCaptures() != 4 || c.MaxDepth() != 50 {
		t.Fatalf("Clone = %+v", c)
	}
	out := make([]Capture, 5)
	if n, err := c.Search([]byte("42x"), 0, out); err != nil || n != 2 {
		t.Errorf("clone Search = %d, %v", n, err)
	}
}

func TestDepthGuard(t *testing.T) {
	g := newDepthGuard(2)
	if !g.enter() || !g.enter() {
		t.Fatal("guard refused within its limit")
	}
	if g.used() != 2 {
		t.Errorf("used = %d, want 2", g.used())
	}
	if g.enter() {
		t.Fatal("guard allowed a third level")
	}
	g.leave()
	if !g.enter() {
		t.Error("guard refused after leave")
	}
	g.reset()
	if g.used() != 0 {
		t.Errorf("used after reset = %d", g.used())
	}
}

func BenchmarkSearch(b *testing.B) {
	subject := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 40) + "key = value;")
	bt := New([]byte("(%w+)%s*=%s*(%w+);"), DefaultMaxCaptures, DefaultMaxDepth)
	out := make([]Capture, DefaultMaxCaptures+1)
	b.SetBytes(int64(len(subject)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if n, _ := bt.Search(subject, 0, out); n != 3 {
			b.Fatal("no match")
		}
	}
}
