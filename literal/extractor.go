package literal

import (
	"github.com/coregx/luapat/backtrack"
)

// ExtractorConfig configures literal extraction limits.
//
//   - MaxLiterals: caps the cross product of bracket sets like [Hh][Ee]
//   - MaxLiteralLen: caps the length of each extracted literal
//   - MaxClassSize: sets with more members end the literal run
type ExtractorConfig struct {
	// MaxLiterals limits the number of alternative literals. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal. Default: 32.
	MaxLiteralLen int

	// MaxClassSize limits how many members a single item may expand to.
	// Default: 16.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 32,
		MaxClassSize:  16,
	}
}

// Prefixes is what a pattern reveals about the start of its matches.
// At most one of the fields is set.
type Prefixes struct {
	// Literals holds alternatives of equal length; every match starts with
	// one of them.
	Literals *Seq

	// FirstBytes is set when no literal could be extracted but the first
	// byte of every match is confined to a proper subset of the byte values.
	FirstBytes *[256]bool
}

// IsEmpty reports whether nothing useful was extracted.
func (p Prefixes) IsEmpty() bool {
	return p.Literals.IsEmpty() && p.FirstBytes == nil
}

// Extractor extracts prefix literals from Lua-style patterns.
//
// It walks the leading items of the pattern:
//   - captures, "()" and %f[set] are zero-width and skipped
//   - a plain byte or escaped punctuation extends every literal by one byte
//   - a small set or class multiplies the literals by its members
//   - an item with '*', '?' or '-' ends the run, '+' ends it after one copy
//   - %bxy contributes x, a backreference or final '$' ends the run
//
// Anchored patterns yield nothing: they are only tried at one offset.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns the prefixes of pattern. Malformed patterns yield
// nothing.
//
//nolint:gocyclo,cyclop // one case per pattern item kind
func (e *Extractor) ExtractPrefixes(pattern []byte) Prefixes {
	if len(pattern) > 0 && pattern[0] == '^' {
		return Prefixes{}
	}

	cur := [][]byte{{}}
	zeroWidth := false
	p := 0
	for p < len(pattern) {
		if len(cur[0]) >= e.config.MaxLiteralLen {
			return finish(cur, false, nil)
		}

		c := pattern[p]
		switch {
		case c == '(':
			zeroWidth = true
			if p+1 < len(pattern) && pattern[p+1] == ')' {
				p += 2
			} else {
				p++
			}
			continue

		case c == ')':
			zeroWidth = true
			p++
			continue

		case c == '$' && p+1 == len(pattern):
			return finish(cur, false, nil)

		case c == backtrack.Escape && p+1 < len(pattern):
			switch pattern[p+1] {
			case 'f':
				if p+2 >= len(pattern) || pattern[p+2] != '[' {
					return Prefixes{}
				}
				ep, err := backtrack.ItemEnd(pattern, p+2)
				if err != nil {
					return Prefixes{}
				}
				zeroWidth = true
				p = ep
				continue

			case 'b':
				if p+3 >= len(pattern) {
					return Prefixes{}
				}
				return finish(product(cur, []byte{pattern[p+2]}), false, nil)

			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				return finish(cur, false, nil)
			}
		}

		ep, err := backtrack.ItemEnd(pattern, p)
		if err != nil {
			return Prefixes{}
		}
		var suffix byte
		if ep < len(pattern) {
			suffix = pattern[ep]
		}
		if suffix == '*' || suffix == '?' || suffix == '-' {
			return finish(cur, false, nil)
		}

		table := backtrack.ItemTable(pattern, p, ep)
		members := setMembers(&table)
		switch {
		case len(members) == 0:
			return Prefixes{}
		case len(members) > e.config.MaxClassSize || len(cur)*len(members) > e.config.MaxLiterals:
			return finish(cur, false, &table)
		}
		cur = product(cur, members)
		if suffix == '+' {
			return finish(cur, false, nil)
		}
		p = ep
	}
	return finish(cur, !zeroWidth, nil)
}

// finish builds the result from the literals collected so far. When none
// were collected, next (the set of the item that ended the run) becomes the
// first-byte set unless it admits every byte.
func finish(cur [][]byte, complete bool, next *[256]bool) Prefixes {
	if len(cur[0]) > 0 {
		lits := make([]Literal, len(cur))
		for i, b := range cur {
			lits[i] = NewLiteral(b, complete)
		}
		seq := NewSeq(lits...)
		seq.Dedup()
		return Prefixes{Literals: seq}
	}
	if next != nil && len(setMembers(next)) < 256 {
		return Prefixes{FirstBytes: next}
	}
	return Prefixes{}
}

// product appends each member byte to each literal.
func product(cur [][]byte, members []byte) [][]byte {
	out := make([][]byte, 0, len(cur)*len(members))
	for _, lit := range cur {
		for _, b := range members {
			next := make([]byte, len(lit)+1)
			copy(next, lit)
			next[len(lit)] = b
			out = append(out, next)
		}
	}
	return out
}

func setMembers(table *[256]bool) []byte {
	var members []byte
	for b, ok := range table {
		if ok {
			members = append(members, byte(b))
		}
	}
	return members
}
