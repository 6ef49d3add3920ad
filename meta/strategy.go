package meta

import "github.com/coregx/luapat/prefilter"

// Strategy is how an Engine finds the start offsets it attempts.
//
// The meta-engine chooses between:
//   - UseBacktrack: attempt at every offset
//   - UseAnchored: attempt only at the search start
//   - UsePrefilter: attempt only where the prefilter reports a candidate
//   - UseLiteral: the prefilter alone finds complete matches
type Strategy int

const (
	// UseBacktrack tries the backtracker at every offset. Selected when the
	// prefilter is disabled or the pattern reveals nothing about its start.
	UseBacktrack Strategy = iota

	// UseAnchored makes a single attempt. Selected for patterns starting
	// with '^'.
	UseAnchored

	// UsePrefilter skips to prefilter candidates and verifies each with the
	// backtracker.
	UsePrefilter

	// UseLiteral reports prefilter hits as matches without verification.
	// Selected for capture-free patterns that denote a fixed set of literals
	// of one length, such as "hello" or "[Hh]ello".
	UseLiteral
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "UseBacktrack"
	case UseAnchored:
		return "UseAnchored"
	case UsePrefilter:
		return "UsePrefilter"
	case UseLiteral:
		return "UseLiteral"
	default:
		return "Unknown"
	}
}

func selectStrategy(anchored bool, pf prefilter.Prefilter) Strategy {
	switch {
	case anchored:
		return UseAnchored
	case pf == nil:
		return UseBacktrack
	case pf.IsComplete():
		return UseLiteral
	default:
		return UsePrefilter
	}
}
