package meta

import "github.com/coregx/luapat/backtrack"

// Match is a successful match: the whole-match span plus the explicit
// captures, taken as a snapshot so it stays valid after later searches.
//
// Example:
//
//	m, _ := engine.Find([]byte("key = value"))
//	fmt.Println(m.String())      // "key = value"
//	k, _ := m.GroupString(1)     // "key"
type Match struct {
	haystack []byte
	caps     []backtrack.Capture
}

// NewMatch creates a Match from a capture array as filled by a search:
// caps[0] is the whole match, caps[1:] the explicit captures. The slice is
// copied; the haystack is kept by reference.
func NewMatch(haystack []byte, caps []backtrack.Capture) *Match {
	return &Match{haystack: haystack, caps: append([]backtrack.Capture(nil), caps...)}
}

// Start returns the inclusive start offset of the match.
func (m *Match) Start() int {
	return m.caps[0].Start
}

// End returns the exclusive end offset of the match.
func (m *Match) End() int {
	return m.caps[0].End
}

// Len returns the length of the match in bytes.
func (m *Match) Len() int {
	return m.End() - m.Start()
}

// Bytes returns the matched bytes. The slice is a view into the haystack.
func (m *Match) Bytes() []byte {
	return m.haystack[m.Start():m.End()]
}

// String returns the matched text.
func (m *Match) String() string {
	return string(m.Bytes())
}

// IsEmpty reports whether the match is zero-width.
func (m *Match) IsEmpty() bool {
	return m.Start() == m.End()
}

// Contains reports whether offset pos lies inside the match.
func (m *Match) Contains(pos int) bool {
	return pos >= m.Start() && pos < m.End()
}

// NumCaptures returns the number of explicit captures.
func (m *Match) NumCaptures() int {
	return len(m.caps) - 1
}

// Capture returns capture i; 0 is the whole match. Panics if i is out of range.
func (m *Match) Capture(i int) backtrack.Capture {
	return m.caps[i]
}

// Captures returns a copy of all captures, the whole match first.
func (m *Match) Captures() []backtrack.Capture {
	return append([]backtrack.Capture(nil), m.caps...)
}

// Group returns the bytes of capture i. It fails with
// backtrack.ErrNoCaptureLength for a positional capture and with
// backtrack.ErrInvalidCaptureIndex when i is out of range.
func (m *Match) Group(i int) ([]byte, error) {
	if i < 0 || i >= len(m.caps) {
		return nil, &backtrack.PatternError{Offset: -1, Index: i - 1, Err: backtrack.ErrInvalidCaptureIndex}
	}
	return m.caps[i].Bytes(m.haystack)
}

// GroupString is Group as a string.
func (m *Match) GroupString(i int) (string, error) {
	b, err := m.Group(i)
	return string(b), err
}

// Position returns the offset recorded by a positional capture i, and
// whether capture i is positional.
func (m *Match) Position(i int) (int, bool) {
	if i < 0 || i >= len(m.caps) || m.caps[i].Kind != backtrack.CapturePosition {
		return 0, false
	}
	return m.caps[i].Start, true
}

// Haystack returns the searched bytes.
func (m *Match) Haystack() []byte {
	return m.haystack
}
