package backtrack

import "fmt"

// CaptureKind is the state of one capture slot.
type CaptureKind uint8

const (
	// CaptureOpen is a capture whose '(' has been matched but not its ')'.
	CaptureOpen CaptureKind = iota

	// CapturePosition is a zero-width marker produced by "()".
	CapturePosition

	// CaptureClosed is a finished span.
	CaptureClosed
)

// String returns the kind name.
func (k CaptureKind) String() string {
	switch k {
	case CaptureOpen:
		return "open"
	case CapturePosition:
		return "position"
	case CaptureClosed:
		return "closed"
	default:
		return fmt.Sprintf("CaptureKind(%d)", uint8(k))
	}
}

// Capture is one capture slot. For a positional capture Start == End is the
// recorded offset; for an open capture End is meaningless.
type Capture struct {
	Start int
	End   int
	Kind  CaptureKind
}

// Len returns the span length, or ErrNoCaptureLength unless the capture is closed.
func (c Capture) Len() (int, error) {
	if c.Kind != CaptureClosed {
		return 0, ErrNoCaptureLength
	}
	return c.End - c.Start, nil
}

// Bytes returns the captured bytes of subject.
func (c Capture) Bytes(subject []byte) ([]byte, error) {
	if c.Kind != CaptureClosed {
		return nil, ErrNoCaptureLength
	}
	return subject[c.Start:c.End], nil
}

// String renders the capture for debugging: "[s:e]", "@p" or "[s:?".
func (c Capture) String() string {
	switch c.Kind {
	case CaptureClosed:
		return fmt.Sprintf("[%d:%d]", c.Start, c.End)
	case CapturePosition:
		return fmt.Sprintf("@%d", c.Start)
	default:
		return fmt.Sprintf("[%d:?", c.Start)
	}
}

// captureStack is the fixed-capacity per-attempt capture record. The
// backing array is allocated once and never grows.
type captureStack struct {
	slots []Capture
	level int
}

func newCaptureStack(max int) captureStack {
	return captureStack{slots: make([]Capture, max)}
}

func (cs *captureStack) reset() {
	cs.level = 0
}

// push opens a new capture at offset s. It reports false when the stack is full.
func (cs *captureStack) push(s int, kind CaptureKind) bool {
	if cs.level >= len(cs.slots) {
		return false
	}
	cs.slots[cs.level] = Capture{Start: s, End: s, Kind: kind}
	cs.level++
	return true
}

func (cs *captureStack) pop() {
	cs.level--
}

// lastOpen returns the most recently opened capture that is still open, or -1.
func (cs *captureStack) lastOpen() int {
	for l := cs.level - 1; l >= 0; l-- {
		if cs.slots[l].Kind == CaptureOpen {
			return l
		}
	}
	return -1
}

func (cs *captureStack) close(l, end int) {
	cs.slots[l].End = end
	cs.slots[l].Kind = CaptureClosed
}

func (cs *captureStack) reopen(l int) {
	cs.slots[l].End = cs.slots[l].Start
	cs.slots[l].Kind = CaptureOpen
}

func (cs *captureStack) active() []Capture {
	return cs.slots[:cs.level]
}
