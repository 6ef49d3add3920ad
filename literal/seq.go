// Package literal extracts literal byte sequences from Lua-style patterns
// for prefilter optimization.
//
// A pattern such as "[Hh]ello%s+(%w+)" can only match where one of the
// literals "Hello" or "hello" occurs, so a search can jump straight to those
// occurrences instead of attempting a match at every offset.
//
// Key concepts:
//   - A Literal is a concrete byte sequence every match must start with
//   - A Seq is a set of alternative literals (e.g. from a bracket set)
//   - Complete literals are whole matches: finding one is finding a match
package literal

import "bytes"

// Literal is a byte sequence extracted from a pattern.
// Complete reports whether an occurrence of Bytes is a full match on its own.
//
// Example:
//   - Pattern "hello" → Literal{"hello", true}
//   - Pattern "hello%d+" → Literal{"hello0".."hello9", false}
type Literal struct {
	// Bytes contains the literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal is the entire match.
	Complete bool
}

// NewLiteral creates a new Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debugging representation: "literal{bytes, complete=true}".
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals. Literals produced by the Extractor
// all have the same length, so the leftmost occurrence of any of them is the
// leftmost candidate match start.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals. A nil Seq has none.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the i-th literal. Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete reports whether every literal is a complete match.
// An empty sequence is not complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Bytes returns the literal byte slices in order.
func (s *Seq) Bytes() [][]byte {
	if s.IsEmpty() {
		return nil
	}
	out := make([][]byte, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.Bytes
	}
	return out
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	m := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		m = min(m, len(lit.Bytes))
	}
	return m
}

// Dedup removes repeated literals, keeping the first occurrence of each.
// A repeated literal is complete if any of its copies is.
func (s *Seq) Dedup() {
	if s.Len() < 2 {
		return
	}
	kept := s.literals[:0]
	seen := make(map[string]int, len(s.literals))
	for _, lit := range s.literals {
		if i, ok := seen[string(lit.Bytes)]; ok {
			kept[i].Complete = kept[i].Complete || lit.Complete
			continue
		}
		seen[string(lit.Bytes)] = len(kept)
		kept = append(kept, lit)
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals.
// The result is a copy; it is empty when there is none.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
		if n == 0 {
			break
		}
	}
	return bytes.Clone(prefix)
}

// String returns a debugging representation of the sequence.
func (s *Seq) String() string {
	if s.IsEmpty() {
		return "Seq{}"
	}
	var b bytes.Buffer
	b.WriteString("Seq{")
	for i, lit := range s.literals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(lit.String())
	}
	b.WriteByte('}')
	return b.String()
}
