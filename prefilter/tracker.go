package prefilter

// Tracker wraps a prefilter and switches it off when most of its candidates
// turn out not to be matches. A byte-set prefilter over common bytes can
// report nearly every offset; past that point the extra scan costs more
// than it saves.
//
// Once inactive, Find reports every offset as a candidate, so callers need
// no separate code path. A Tracker is per-search state and is not safe for
// concurrent use.
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	config         TrackerConfig
	lastCheckpoint uint64

	active bool
}

// TrackerConfig configures when a Tracker gives up on its prefilter.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between efficiency checks.
	CheckInterval uint64

	// MinEfficiency is the confirmed-to-candidate ratio below which the
	// prefilter is switched off.
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker wraps inner. It returns nil when inner is nil.
func NewTracker(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{inner: inner, config: config, active: true}
}

// Find returns the next candidate at or after start, or -1.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		if start < 0 || start > len(haystack) {
			return -1
		}
		return start
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.check()
	}
	return pos
}

// ConfirmMatch records that the last candidate was a real match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the wrapped prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the counters and the confirmed-to-candidate ratio.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64) {
	if t.candidates > 0 {
		efficiency = float64(t.confirms) / float64(t.candidates)
	}
	return t.candidates, t.confirms, efficiency
}

// Reset reactivates the prefilter and clears the counters.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) check() {
	if t.candidates < t.config.WarmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.config.CheckInterval {
		return
	}
	t.lastCheckpoint = t.candidates
	if float64(t.confirms)/float64(t.candidates) < t.config.MinEfficiency {
		t.active = false
	}
}
