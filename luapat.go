// Package luapat implements Lua 5.2 string patterns over byte slices.
//
// Lua patterns are a small regex-like language without alternation:
// character classes (%a, %d, [a-z], ...), the quantifiers *, +, - and ?,
// the anchors ^ and $, balanced matches (%bxy), frontiers (%f[set]),
// numbered and positional captures and backreferences (%1-%9). Matching is
// binary safe and never looks at text encoding.
//
// Basic usage:
//
//	p, err := luapat.Compile(`(%a+)%s*=%s*(%d+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := p.FindStringSubmatch("width = 640")
//	// m = []string{"width = 640", "width", "640"}
//
// Patterns are interpreted by a recursive backtracker with a bounded
// capture stack and a recursion-depth guard. Syntax errors are reported by
// Compile; the only error a search can return is ErrMatchDepthExceeded.
// Literal prefixes of a pattern drive a prefilter (memchr, memmem or
// Aho-Corasick) that skips offsets where no match can start.
package luapat

import (
	"strconv"

	"github.com/coregx/luapat/backtrack"
	"github.com/coregx/luapat/meta"
)

// Capture is one capture slot: a closed span, a position or an open capture.
type Capture = backtrack.Capture

// Capture kinds.
const (
	CaptureOpen     = backtrack.CaptureOpen
	CapturePosition = backtrack.CapturePosition
	CaptureClosed   = backtrack.CaptureClosed
)

// Match is a snapshot of one successful search.
type Match = meta.Match

// Config controls the limits and optimizations of a compiled pattern.
type Config = meta.Config

// DefaultConfig returns the default configuration: 32 captures, recursion
// depth 200 and the prefilter enabled.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// Pattern is a validated Lua pattern.
//
// MatchAt writes its result into a capture array owned by the Pattern, so
// MatchAt and the accessors reading that array (Capture, Range, Captures,
// CaptureBytes, NumMatches) must not be used from more than one goroutine
// at a time; use Clone for each goroutine. All other methods keep their
// state per call and are safe for concurrent use.
type Pattern struct {
	engine *meta.Engine
	caps   []Capture
	n      int
}

// Compile parses a pattern and returns a Pattern that can be used to match
// against byte slices and strings.
//
// Example:
//
//	p, err := luapat.Compile(`%d+`)
//	if err != nil {
//	    return err
//	}
//	ok, _ := p.MatchString("abc123")
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig([]byte(pattern), DefaultConfig())
}

// CompileBytes is like Compile for a pattern given as bytes. The bytes are copied.
func CompileBytes(pattern []byte) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := luapat.DefaultConfig()
//	config.MaxDepth = 1000
//	p, err := luapat.CompileWithConfig([]byte(`(%a+)-(%a+)`), config)
func CompileWithConfig(pattern []byte, config Config) (*Pattern, error) {
	engine, err := meta.Compile(pattern, config)
	if err != nil {
		return nil, err
	}
	return newPattern(engine), nil
}

func newPattern(engine *meta.Engine) *Pattern {
	return &Pattern{
		engine: engine,
		caps:   make([]Capture, engine.NumCaptures()+1),
	}
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
// It simplifies safe initialization of global variables holding patterns.
//
// Example:
//
//	var word = luapat.MustCompile(`%a+`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("luapat: Compile(" + quote(pattern) + "): " + err.Error())
	}
	return p
}

// MustCompileBytes is like CompileBytes but panics on an invalid pattern.
func MustCompileBytes(pattern []byte) *Pattern {
	p, err := CompileBytes(pattern)
	if err != nil {
		panic("luapat: Compile(" + quote(string(pattern)) + "): " + err.Error())
	}
	return p
}

// quote wraps s in backquotes when possible, like regexp does in its panics.
func quote(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

// Clone returns a Pattern sharing the validated pattern and prefilter but
// with its own capture array.
func (p *Pattern) Clone() *Pattern {
	return newPattern(p.engine)
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return string(p.engine.Pattern())
}

// NumCaptures returns the number of explicit captures in the pattern.
func (p *Pattern) NumCaptures() int {
	return p.engine.NumCaptures()
}

// Engine returns the underlying search engine.
func (p *Pattern) Engine() *meta.Engine {
	return p.engine
}

// MatchAt finds the leftmost match in subject starting at or after start
// (only at start for a pattern beginning with '^') and records it in the
// Pattern's capture array. It returns the number of captures recorded: 0
// for no match, otherwise 1 for the whole match plus one per explicit
// capture. A start outside [0, len(subject)] is no match.
func (p *Pattern) MatchAt(subject []byte, start int) (int, error) {
	n, err := p.engine.SearchAt(subject, start, p.caps)
	if err != nil {
		n = 0
	}
	p.n = n
	return n, err
}

// MatchAtString is MatchAt for a string subject.
func (p *Pattern) MatchAtString(subject string, start int) (int, error) {
	return p.MatchAt([]byte(subject), start)
}

// NumMatches returns the count recorded by the last MatchAt.
func (p *Pattern) NumMatches() int {
	return p.n
}

// Capture returns capture i of the last MatchAt; 0 is the whole match.
// It panics if i is not below NumMatches.
func (p *Pattern) Capture(i int) Capture {
	if i < 0 || i >= p.n {
		panic("luapat: capture index " + strconv.Itoa(i) + " out of range")
	}
	return p.caps[i]
}

// Range returns the span of the last match, or -1, -1 if there was none.
func (p *Pattern) Range() (start, end int) {
	if p.n == 0 {
		return -1, -1
	}
	return p.caps[0].Start, p.caps[0].End
}

// Captures returns a copy of the captures recorded by the last MatchAt.
func (p *Pattern) Captures() []Capture {
	return append([]Capture(nil), p.caps[:p.n]...)
}

// CaptureBytes returns the bytes of capture i of the last MatchAt, which
// must have been made against subject. It fails with ErrNoCaptureLength
// for a positional capture and ErrInvalidCaptureIndex when i is not below
// NumMatches.
func (p *Pattern) CaptureBytes(subject []byte, i int) ([]byte, error) {
	if i < 0 || i >= p.n {
		return nil, &PatternError{Pattern: p.String(), Offset: -1, Index: i - 1, Err: ErrInvalidCaptureIndex}
	}
	return p.caps[i].Bytes(subject)
}

// Stats returns the search statistics of the underlying engine.
func (p *Pattern) Stats() meta.Stats {
	return p.engine.Stats()
}
