package luapat

import (
	"iter"

	"github.com/coregx/luapat/meta"
)

// All returns an iterator over the successive matches in b. After a match
// the next search starts at its end, one byte further when the match was
// empty. A pattern anchored with '^' matches at most once. A search error
// is yielded once and ends the iteration.
//
// Example:
//
//	p := luapat.MustCompile(`(%a+)=(%d+)`)
//	for m, err := range p.All([]byte("a=1, b=2")) {
//	    if err != nil {
//	        return err
//	    }
//	    k, _ := m.GroupString(1)
//	    fmt.Println(k)
//	}
func (p *Pattern) All(b []byte) iter.Seq2[*Match, error] {
	return p.engine.All(b)
}

// Gmatch returns an iterator over the values Lua's string.gmatch produces:
// for each match, its first capture, or the whole match when the pattern
// has no captures. A positional first capture is rendered as its 1-based
// offset.
//
// Example:
//
//	p := luapat.MustCompile(`%a+`)
//	for word, err := range p.Gmatch("hello world from Lua") {
//	    ...
//	}
func (p *Pattern) Gmatch(s string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for m, err := range p.engine.All([]byte(s)) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(firstValue(m), nil) {
				return
			}
		}
	}
}

// each calls fn for at most n successive matches of b (all when n < 0).
func (p *Pattern) each(b []byte, n int, fn func(*meta.Match)) error {
	if n == 0 {
		return nil
	}
	count := 0
	for m, err := range p.engine.All(b) {
		if err != nil {
			return err
		}
		fn(m)
		count++
		if n > 0 && count >= n {
			break
		}
	}
	return nil
}

// FindAll returns at most n successive matches of b (all when n < 0), or
// nil if there are none.
//
// Example:
//
//	p := luapat.MustCompile(`%d+`)
//	all, _ := p.FindAll([]byte("1 22 333"), -1)
//	// all = [][]byte{"1", "22", "333"}
func (p *Pattern) FindAll(b []byte, n int) ([][]byte, error) {
	var out [][]byte
	err := p.each(b, n, func(m *meta.Match) {
		out = append(out, b[m.Start():m.End():m.End()])
	})
	return out, err
}

// FindAllString is FindAll for a string.
func (p *Pattern) FindAllString(s string, n int) ([]string, error) {
	var out []string
	err := p.each([]byte(s), n, func(m *meta.Match) {
		out = append(out, s[m.Start():m.End()])
	})
	return out, err
}

// FindAllIndex returns the spans of at most n successive matches of b.
func (p *Pattern) FindAllIndex(b []byte, n int) ([][]int, error) {
	var out [][]int
	err := p.each(b, n, func(m *meta.Match) {
		out = append(out, []int{m.Start(), m.End()})
	})
	return out, err
}

// FindAllStringIndex is FindAllIndex for a string.
func (p *Pattern) FindAllStringIndex(s string, n int) ([][]int, error) {
	return p.FindAllIndex([]byte(s), n)
}

// FindAllSubmatch is the iterating version of FindSubmatch.
func (p *Pattern) FindAllSubmatch(b []byte, n int) ([][][]byte, error) {
	var out [][][]byte
	err := p.each(b, n, func(m *meta.Match) {
		out = append(out, submatches(m))
	})
	return out, err
}

// FindAllStringSubmatch is the iterating version of FindStringSubmatch.
func (p *Pattern) FindAllStringSubmatch(s string, n int) ([][]string, error) {
	var out [][]string
	err := p.each([]byte(s), n, func(m *meta.Match) {
		out = append(out, submatchStrings(s, m))
	})
	return out, err
}

// FindAllSubmatchIndex is the iterating version of FindSubmatchIndex.
func (p *Pattern) FindAllSubmatchIndex(b []byte, n int) ([][]int, error) {
	var out [][]int
	err := p.each(b, n, func(m *meta.Match) {
		out = append(out, submatchIndex(m))
	})
	return out, err
}

// FindAllStringSubmatchIndex is FindAllSubmatchIndex for a string.
func (p *Pattern) FindAllStringSubmatchIndex(s string, n int) ([][]int, error) {
	return p.FindAllSubmatchIndex([]byte(s), n)
}

// Count returns the number of successive matches in b. If n > 0, it counts
// at most n matches; otherwise it counts all of them.
//
// Example:
//
//	p := luapat.MustCompile(`%d+`)
//	count, _ := p.Count([]byte("1 2 3 4 5"), -1) // 5
func (p *Pattern) Count(b []byte, n int) (int, error) {
	if n <= 0 {
		n = -1
	}
	count := 0
	err := p.each(b, n, func(*meta.Match) { count++ })
	return count, err
}

// CountString is Count for a string.
func (p *Pattern) CountString(s string, n int) (int, error) {
	return p.Count([]byte(s), n)
}

// Split slices s into substrings separated by the matches of the pattern.
// The count n works as in regexp.Split: n > 0 returns at most n
// substrings, the last one holding the unsplit remainder; n == 0 returns
// nil; n < 0 returns all substrings.
//
// Example:
//
//	p := luapat.MustCompile(`%s*,%s*`)
//	parts, _ := p.Split("a , b,c", -1) // []string{"a", "b", "c"}
func (p *Pattern) Split(s string, n int) ([]string, error) {
	if n == 0 {
		return nil, nil
	}

	indices, err := p.FindAllStringIndex(s, -1)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return []string{s}, nil
	}

	numSplits := len(indices) + 1
	if n > 0 && n < numSplits {
		numSplits = n
	}
	result := make([]string, 0, numSplits)

	lastEnd := 0
	for _, idx := range indices {
		if n > 0 && len(result) >= n-1 {
			break
		}
		result = append(result, s[lastEnd:idx[0]])
		lastEnd = idx[1]
	}
	result = append(result, s[lastEnd:])
	return result, nil
}
