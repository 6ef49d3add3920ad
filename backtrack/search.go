package backtrack

// Backtracker runs match attempts of one pattern. It owns its capture
// stack, so a Backtracker must not be used by more than one goroutine at a
// time; Clone gives each goroutine its own.
type Backtracker struct {
	pattern  []byte
	body     int
	anchored bool
	m        machine
}

// New creates a Backtracker for pattern. The pattern is not validated; run
// Validate first to reject malformed patterns up front. Matching an
// unvalidated pattern reports the same errors, but only when an attempt
// reaches the broken item.
func New(pattern []byte, maxCaptures, maxDepth int) *Backtracker {
	b := &Backtracker{pattern: pattern}
	if len(pattern) > 0 && pattern[0] == '^' {
		b.anchored = true
		b.body = 1
	}
	b.m = machine{
		pattern: pattern,
		caps:    newCaptureStack(maxCaptures),
		depth:   newDepthGuard(maxDepth),
	}
	return b
}

// Clone returns an independent Backtracker for the same pattern and limits.
func (b *Backtracker) Clone() *Backtracker {
	return New(b.pattern, len(b.m.caps.slots), b.m.depth.limit)
}

// Pattern returns the pattern bytes.
func (b *Backtracker) Pattern() []byte {
	return b.pattern
}

// Anchored reports whether the pattern starts with '^'.
func (b *Backtracker) Anchored() bool {
	return b.anchored
}

// MaxCaptures returns the capacity of the capture stack.
func (b *Backtracker) MaxCaptures() int {
	return len(b.m.caps.slots)
}

// MaxDepth returns the recursion limit of one attempt.
func (b *Backtracker) MaxDepth() int {
	return b.m.depth.limit
}

// MatchAt makes a single attempt with the match starting exactly at offset
// at, ignoring whether the pattern is anchored. On success it writes the
// whole-match span to out[0], the explicit captures to out[1:] and returns
// the number of entries written; out must have room for MaxCaptures()+1
// entries. It returns 0 when the attempt fails.
func (b *Backtracker) MatchAt(subject []byte, at int, out []Capture) (int, error) {
	if at < 0 || at > len(subject) {
		return 0, nil
	}
	b.m.reset(subject)
	end, err := b.m.match(at, b.body)
	b.m.subject = nil
	if err != nil || end == noMatch {
		return 0, err
	}
	if l := b.m.caps.lastOpen(); l >= 0 {
		return 0, newPatternError(b.pattern, -1, ErrUnfinishedCapture)
	}
	out[0] = Capture{Start: at, End: end, Kind: CaptureClosed}
	return 1 + copy(out[1:], b.m.caps.active()), nil
}

// Search finds the leftmost match starting at or after start. An anchored
// pattern is only tried at start itself. The return value follows MatchAt;
// 0 means no match anywhere. An error from any attempt ends the search.
func (b *Backtracker) Search(subject []byte, start int, out []Capture) (int, error) {
	if start < 0 || start > len(subject) {
		return 0, nil
	}
	if b.anchored {
		return b.MatchAt(subject, start, out)
	}
	for at := start; at <= len(subject); at++ {
		n, err := b.MatchAt(subject, at, out)
		if err != nil || n > 0 {
			return n, err
		}
	}
	return 0, nil
}
