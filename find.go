package luapat

import (
	"strconv"

	"github.com/coregx/luapat/meta"
)

// Match reports whether b contains any match of the pattern.
//
// Example:
//
//	p := luapat.MustCompile(`%d+`)
//	ok, _ := p.Match([]byte("hello 123")) // true
func (p *Pattern) Match(b []byte) (bool, error) {
	return p.engine.IsMatch(b)
}

// MatchString reports whether s contains any match of the pattern.
func (p *Pattern) MatchString(s string) (bool, error) {
	return p.engine.IsMatch([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
//
// Example:
//
//	p := luapat.MustCompile(`%b()`)
//	m, _ := p.Find([]byte("f(a(b)c)d")) // []byte("(a(b)c)")
func (p *Pattern) Find(b []byte) ([]byte, error) {
	m, err := p.engine.Find(b)
	if m == nil {
		return nil, err
	}
	return b[m.Start():m.End():m.End()], nil
}

// FindString returns the text of the leftmost match in s, or "" if there is
// none. Use FindStringIndex to tell an empty match from no match.
func (p *Pattern) FindString(s string) (string, error) {
	m, err := p.engine.Find([]byte(s))
	if m == nil {
		return "", err
	}
	return s[m.Start():m.End()], nil
}

// FindIndex returns the span [start, end) of the leftmost match in b, or
// nil if there is none.
func (p *Pattern) FindIndex(b []byte) ([]int, error) {
	m, err := p.engine.Find(b)
	if m == nil {
		return nil, err
	}
	return []int{m.Start(), m.End()}, nil
}

// FindStringIndex is FindIndex for a string.
func (p *Pattern) FindStringIndex(s string) ([]int, error) {
	return p.FindIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its captures: element 0 is
// the whole match, element i capture i. A positional capture yields an
// empty slice at its offset. It returns nil if there is no match.
//
// Example:
//
//	p := luapat.MustCompile(`(%a+)=(%d+)`)
//	m, _ := p.FindSubmatch([]byte("x=1"))
//	// m = [][]byte{"x=1", "x", "1"}
func (p *Pattern) FindSubmatch(b []byte) ([][]byte, error) {
	m, err := p.engine.Find(b)
	if m == nil {
		return nil, err
	}
	return submatches(m), nil
}

// FindStringSubmatch is FindSubmatch for a string.
func (p *Pattern) FindStringSubmatch(s string) ([]string, error) {
	m, err := p.engine.Find([]byte(s))
	if m == nil {
		return nil, err
	}
	return submatchStrings(s, m), nil
}

// FindSubmatchIndex returns the leftmost match as index pairs: 2*i and
// 2*i+1 hold the span of capture i. A positional capture at offset k
// yields the pair k, k. It returns nil if there is no match.
func (p *Pattern) FindSubmatchIndex(b []byte) ([]int, error) {
	m, err := p.engine.Find(b)
	if m == nil {
		return nil, err
	}
	return submatchIndex(m), nil
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string.
func (p *Pattern) FindStringSubmatchIndex(s string) ([]int, error) {
	return p.FindSubmatchIndex([]byte(s))
}

// MatchMaybe returns what Lua's string.match returns for a single value:
// the first capture, or the whole match when the pattern has no captures.
// A positional first capture is rendered as its 1-based offset. The bool
// reports whether there was a match.
//
// Example:
//
//	p := luapat.MustCompile(`(%d+)px`)
//	v, ok, _ := p.MatchMaybe("width: 640px") // "640", true
func (p *Pattern) MatchMaybe(s string) (string, bool, error) {
	m, err := p.engine.Find([]byte(s))
	if m == nil {
		return "", false, err
	}
	return firstValue(m), true, nil
}

// captureValue returns capture i as Lua reports it: the captured text of a
// closed capture, the 1-based offset of a positional one.
func captureValue(m *meta.Match, i int) []byte {
	if pos, ok := m.Position(i); ok {
		return strconv.AppendInt(nil, int64(pos+1), 10)
	}
	b, _ := m.Group(i)
	return b
}

// firstValue returns capture 1, or the whole match when there are no captures.
func firstValue(m *meta.Match) string {
	if m.NumCaptures() == 0 {
		return m.String()
	}
	return string(captureValue(m, 1))
}

func submatches(m *meta.Match) [][]byte {
	h := m.Haystack()
	out := make([][]byte, m.NumCaptures()+1)
	for i := range out {
		c := m.Capture(i)
		out[i] = h[c.Start:c.End:c.End]
	}
	return out
}

func submatchStrings(s string, m *meta.Match) []string {
	out := make([]string, m.NumCaptures()+1)
	for i := range out {
		c := m.Capture(i)
		out[i] = s[c.Start:c.End]
	}
	return out
}

func submatchIndex(m *meta.Match) []int {
	out := make([]int, 0, 2*(m.NumCaptures()+1))
	for i := 0; i <= m.NumCaptures(); i++ {
		c := m.Capture(i)
		out = append(out, c.Start, c.End)
	}
	return out
}
