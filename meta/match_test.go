package meta

import (
	"errors"
	"testing"

	"github.com/coregx/luapat/backtrack"
)

func TestMatchAccessors(t *testing.T) {
	haystack := []byte("test foo123 end")
	caps := []backtrack.Capture{
		{Start: 5, End: 11, Kind: backtrack.CaptureClosed},
		{Start: 5, End: 8, Kind: backtrack.CaptureClosed},
		{Start: 8, End: 8, Kind: backtrack.CapturePosition},
	}
	m := NewMatch(haystack, caps)
	caps[0].Start = 0 // the match holds a copy

	if m.Start() != 5 || m.End() != 11 || m.Len() != 6 {
		t.Errorf("span = %d..%d (len %d)", m.Start(), m.End(), m.Len())
	}
	if m.String() != "foo123" {
		t.Errorf("String() = %q", m.String())
	}
	if m.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
	if !m.Contains(5) || m.Contains(11) {
		t.Error("Contains bounds wrong")
	}
	if m.NumCaptures() != 2 {
		t.Errorf("NumCaptures() = %d", m.NumCaptures())
	}
	if g, err := m.GroupString(1); err != nil || g != "foo" {
		t.Errorf("GroupString(1) = %q, %v", g, err)
	}
	if _, err := m.Group(2); !errors.Is(err, backtrack.ErrNoCaptureLength) {
		t.Errorf("Group(2) error = %v, want ErrNoCaptureLength", err)
	}
	if _, err := m.Group(3); !errors.Is(err, backtrack.ErrInvalidCaptureIndex) {
		t.Errorf("Group(3) error = %v, want ErrInvalidCaptureIndex", err)
	}
	if pos, ok := m.Position(2); !ok || pos != 8 {
		t.Errorf("Position(2) = %d, %v", pos, ok)
	}
	if _, ok := m.Position(1); ok {
		t.Error("Position(1) reported a closed capture as positional")
	}
	if got := m.Capture(1); got.End != 8 {
		t.Errorf("Capture(1) = %v", got)
	}
	all := m.Captures()
	all[1].End = 0
	if m.Capture(1).End != 8 {
		t.Error("Captures() returned an alias")
	}
	if &m.Haystack()[0] != &haystack[0] {
		t.Error("Haystack() should share memory")
	}
}

func TestMatchEmpty(t *testing.T) {
	m := NewMatch([]byte("abc"), []backtrack.Capture{{Start: 3, End: 3, Kind: backtrack.CaptureClosed}})
	if !m.IsEmpty() || m.String() != "" || m.Contains(3) {
		t.Errorf("empty match misbehaves: %+v", m)
	}
}
