// Package meta implements the search engine behind the public API.
//
// An Engine validates a pattern once, extracts its literal prefixes,
// selects a prefilter and then drives the backtracker over candidate start
// offsets. Results never depend on whether a prefilter is in use.
package meta

import (
	"bytes"
	"iter"
	"sync/atomic"

	"github.com/coregx/luapat/backtrack"
	"github.com/coregx/luapat/literal"
	"github.com/coregx/luapat/prefilter"
)

// Engine runs searches for one validated pattern.
//
// Thread safety: the pattern and prefilter are immutable after Compile and
// per-search state comes from a sync.Pool, so all search methods may be
// called from multiple goroutines concurrently.
//
// Example:
//
//	engine, err := meta.Compile([]byte("(%a+)=(%d+)"), meta.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	m, err := engine.Find([]byte("x=1, y=22"))
//	if m != nil {
//	    println(m.String()) // "x=1"
//	}
type Engine struct {
	// stats MUST be first for 8-byte alignment of its atomics on 32-bit platforms.
	stats Stats

	pattern   []byte
	info      backtrack.Info
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config
	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts searches started, one per match found by iteration.
	Searches uint64

	// PrefilterCandidates counts offsets reported by the prefilter.
	PrefilterCandidates uint64

	// PrefilterMisses counts candidates the backtracker rejected.
	PrefilterMisses uint64

	// PrefilterAbandoned counts searches in which the prefilter was switched
	// off for reporting too many false candidates.
	PrefilterAbandoned uint64

	// LiteralHits counts matches reported by a complete prefilter without
	// running the backtracker.
	LiteralHits uint64
}

// Compile validates config and pattern and builds an Engine. Pattern
// errors are returned as *backtrack.PatternError, config errors as
// *ConfigError. The pattern bytes are copied.
func Compile(pattern []byte, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	pattern = bytes.Clone(pattern)
	info, err := backtrack.Validate(pattern, config.MaxCaptures)
	if err != nil {
		return nil, err
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter && !info.Anchored {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxClassSize:  literal.DefaultConfig().MaxClassSize,
		})
		pf = prefilter.NewBuilder(extractor.ExtractPrefixes(pattern)).Build()
	}

	return &Engine{
		pattern:   pattern,
		info:      info,
		prefilter: pf,
		strategy:  selectStrategy(info.Anchored, pf),
		config:    config,
		statePool: newSearchStatePool(pattern, config, pf),
	}, nil
}

// Pattern returns the pattern bytes. The caller must not modify them.
func (e *Engine) Pattern() []byte {
	return e.pattern
}

// NumCaptures returns the number of explicit captures in the pattern.
func (e *Engine) NumCaptures() int {
	return e.info.Captures
}

// IsAnchored reports whether the pattern starts with '^'.
func (e *Engine) IsAnchored() bool {
	return e.info.Anchored
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Prefilter returns the prefilter, or nil.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:            atomic.LoadUint64(&e.stats.Searches),
		PrefilterCandidates: atomic.LoadUint64(&e.stats.PrefilterCandidates),
		PrefilterMisses:     atomic.LoadUint64(&e.stats.PrefilterMisses),
		PrefilterAbandoned:  atomic.LoadUint64(&e.stats.PrefilterAbandoned),
		LiteralHits:         atomic.LoadUint64(&e.stats.LiteralHits),
	}
}

// ResetStats zeroes the execution statistics.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.PrefilterCandidates, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&e.stats.PrefilterAbandoned, 0)
	atomic.StoreUint64(&e.stats.LiteralHits, 0)
}

// SearchAt finds the leftmost match starting at or after start and writes
// its captures to out, which must hold NumCaptures()+1 entries; out[0] is
// the whole match. It returns the number of entries written, 0 for no
// match. The only possible error is backtrack.ErrMatchDepthExceeded.
func (e *Engine) SearchAt(haystack []byte, start int, out []backtrack.Capture) (int, error) {
	state := e.statePool.get()
	defer e.statePool.put(state)
	n, err := e.search(state, haystack, start)
	copy(out, state.caps[:n])
	return n, err
}

// FindAt returns the leftmost match starting at or after at, or nil.
func (e *Engine) FindAt(haystack []byte, at int) (*Match, error) {
	state := e.statePool.get()
	defer e.statePool.put(state)
	n, err := e.search(state, haystack, at)
	if err != nil || n == 0 {
		return nil, err
	}
	return NewMatch(haystack, state.caps[:n]), nil
}

// Find returns the leftmost match in haystack, or nil.
func (e *Engine) Find(haystack []byte) (*Match, error) {
	return e.FindAt(haystack, 0)
}

// IsMatch reports whether haystack contains a match.
func (e *Engine) IsMatch(haystack []byte) (bool, error) {
	m, err := e.Find(haystack)
	return m != nil, err
}

// All returns an iterator over successive matches. Each search resumes at
// the end of the previous match, one byte further after an empty match; an
// anchored pattern matches at most once. A search error is yielded once and
// ends the iteration.
func (e *Engine) All(haystack []byte) iter.Seq2[*Match, error] {
	return func(yield func(*Match, error) bool) {
		state := e.statePool.get()
		defer e.statePool.put(state)

		for at := 0; at <= len(haystack); {
			n, err := e.search(state, haystack, at)
			if err != nil {
				yield(nil, err)
				return
			}
			if n == 0 {
				return
			}
			m := NewMatch(haystack, state.caps[:n])
			if !yield(m, nil) || e.info.Anchored {
				return
			}
			at = m.End()
			if m.IsEmpty() {
				at++
			}
		}
	}
}

// search runs one search with state, leaving the captures in state.caps.
func (e *Engine) search(state *searchState, haystack []byte, start int) (int, error) {
	atomic.AddUint64(&e.stats.Searches, 1)
	if start < 0 || start > len(haystack) {
		return 0, nil
	}

	switch e.strategy {
	case UseLiteral:
		pos := e.prefilter.Find(haystack, start)
		if pos < 0 {
			return 0, nil
		}
		atomic.AddUint64(&e.stats.LiteralHits, 1)
		state.caps[0] = backtrack.Capture{Start: pos, End: pos + e.prefilter.LiteralLen(), Kind: backtrack.CaptureClosed}
		return 1, nil

	case UsePrefilter:
		return e.searchPrefilter(state, haystack, start)

	default:
		return state.backtracker.Search(haystack, start, state.caps)
	}
}

// searchPrefilter attempts a match only at prefilter candidates. Every
// match of a pattern with a prefilter consumes its first byte, so there is
// no candidate at len(haystack).
func (e *Engine) searchPrefilter(state *searchState, haystack []byte, start int) (int, error) {
	tracker := state.tracker
	wasActive := tracker.IsActive()
	var candidates, misses uint64
	defer func() {
		atomic.AddUint64(&e.stats.PrefilterCandidates, candidates)
		atomic.AddUint64(&e.stats.PrefilterMisses, misses)
		if wasActive && !tracker.IsActive() {
			atomic.AddUint64(&e.stats.PrefilterAbandoned, 1)
		}
	}()

	for at := start; at <= len(haystack); {
		pos := tracker.Find(haystack, at)
		if pos < 0 {
			return 0, nil
		}
		candidates++
		n, err := state.backtracker.MatchAt(haystack, pos, state.caps)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			tracker.ConfirmMatch()
			return n, nil
		}
		misses++
		at = pos + 1
	}
	return 0, nil
}
