// Package backtrack implements the Lua-style pattern matcher: a recursive
// backtracking interpreter that walks the pattern bytes directly against a
// subject, with a bounded capture stack and a recursion-depth guard.
//
// Patterns are never compiled. Validate performs one static pass over the
// pattern so that syntax errors surface before any subject is seen; after
// that the only failure a match attempt can report is ErrMatchDepthExceeded.
package backtrack

import (
	"errors"
	"fmt"
	"strconv"
)

// Pattern syntax and matching errors. Every error returned by this package
// wraps exactly one of these and can be tested with errors.Is.
var (
	// ErrEndsWithEscape indicates a pattern ending with a lone '%'.
	ErrEndsWithEscape = errors.New("malformed pattern (ends with '%')")

	// ErrUnfinishedCharClass indicates a '[' without a matching ']'.
	ErrUnfinishedCharClass = errors.New("malformed pattern (missing ']')")

	// ErrMalformedBalance indicates '%b' not followed by two bytes.
	ErrMalformedBalance = errors.New("malformed pattern (missing arguments to '%b')")

	// ErrMalformedFrontier indicates '%f' not immediately followed by '['.
	ErrMalformedFrontier = errors.New("missing '[' after '%f'")

	// ErrTooManyCaptures indicates that opening a capture would exceed the
	// configured maximum.
	ErrTooManyCaptures = errors.New("too many captures")

	// ErrUnfinishedCapture indicates a capture still open at the end of the pattern.
	ErrUnfinishedCapture = errors.New("unfinished capture")

	// ErrNoOpenCapture indicates a ')' with no open capture to close.
	ErrNoOpenCapture = errors.New("no open capture")

	// ErrInvalidCaptureIndex indicates a %n reference to a capture that does
	// not exist or is not closed at that point.
	ErrInvalidCaptureIndex = errors.New("invalid capture index")

	// ErrInvalidPatternCapture indicates malformed capture-reference syntax,
	// such as '%' followed by a non-digit in a replacement template.
	ErrInvalidPatternCapture = errors.New("invalid pattern capture")

	// ErrNoCaptureLength indicates that the bytes of an open or positional
	// capture were requested.
	ErrNoCaptureLength = errors.New("capture was unfinished or positional")

	// ErrMatchDepthExceeded indicates that a match attempt needed more nested
	// recursion than the configured depth limit allows.
	ErrMatchDepthExceeded = errors.New("pattern too complex")
)

// PatternError describes a failure tied to a specific pattern.
type PatternError struct {
	// Pattern is the offending pattern text.
	Pattern string

	// Offset is the byte offset in Pattern where the problem was detected,
	// or -1 when no single position applies.
	Offset int

	// Index is the zero-based capture slot named by an invalid %n
	// reference (%2 names slot 1). Only meaningful for ErrInvalidCaptureIndex.
	Index int

	// Err is one of the sentinel errors of this package.
	Err error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	msg := e.Err.Error()
	if errors.Is(e.Err, ErrInvalidCaptureIndex) {
		msg += " %" + strconv.Itoa(e.Index+1)
	}
	if e.Pattern == "" {
		return msg
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%s in pattern %q at offset %d", msg, e.Pattern, e.Offset)
	}
	return fmt.Sprintf("%s in pattern %q", msg, e.Pattern)
}

// Unwrap returns the underlying sentinel error.
func (e *PatternError) Unwrap() error {
	return e.Err
}

func newPatternError(pattern []byte, offset int, err error) *PatternError {
	return &PatternError{Pattern: string(pattern), Offset: offset, Index: -1, Err: err}
}

func newIndexError(pattern []byte, offset, index int) *PatternError {
	return &PatternError{Pattern: string(pattern), Offset: offset, Index: index, Err: ErrInvalidCaptureIndex}
}
