package meta

import (
	"sync"

	"github.com/coregx/luapat/backtrack"
	"github.com/coregx/luapat/prefilter"
)

// searchState holds the mutable state of one search: the backtracker with
// its capture stack, a capture buffer and the prefilter tracker. It is
// taken from a sync.Pool so that one Engine can serve many goroutines.
type searchState struct {
	backtracker *backtrack.Backtracker
	tracker     *prefilter.Tracker
	caps        []backtrack.Capture
}

func newSearchState(pattern []byte, config Config, pf prefilter.Prefilter) *searchState {
	return &searchState{
		backtracker: backtrack.New(pattern, config.MaxCaptures, config.MaxDepth),
		tracker:     prefilter.NewTracker(pf, prefilter.DefaultTrackerConfig()),
		caps:        make([]backtrack.Capture, config.MaxCaptures+1),
	}
}

// reset prepares the state for a new search.
func (s *searchState) reset() {
	if s.tracker != nil {
		s.tracker.Reset()
	}
}

// searchStatePool manages searchState instances for concurrent reuse.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(pattern []byte, config Config, pf prefilter.Prefilter) *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(pattern, config, pf)
		},
	}
	return p
}

func (p *searchStatePool) get() *searchState {
	s := p.pool.Get().(*searchState)
	s.reset()
	return s
}

func (p *searchStatePool) put(s *searchState) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
