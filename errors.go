package luapat

import "github.com/coregx/luapat/backtrack"

// PatternError describes a pattern syntax error, a capture-access error
// or a failed match attempt. Use errors.As to retrieve it and errors.Is
// with one of the sentinels below to classify it.
type PatternError = backtrack.PatternError

// Errors reported by this package.
var (
	ErrEndsWithEscape        = backtrack.ErrEndsWithEscape
	ErrUnfinishedCharClass   = backtrack.ErrUnfinishedCharClass
	ErrMalformedBalance      = backtrack.ErrMalformedBalance
	ErrMalformedFrontier     = backtrack.ErrMalformedFrontier
	ErrTooManyCaptures       = backtrack.ErrTooManyCaptures
	ErrUnfinishedCapture     = backtrack.ErrUnfinishedCapture
	ErrNoOpenCapture         = backtrack.ErrNoOpenCapture
	ErrInvalidCaptureIndex   = backtrack.ErrInvalidCaptureIndex
	ErrInvalidPatternCapture = backtrack.ErrInvalidPatternCapture
	ErrNoCaptureLength       = backtrack.ErrNoCaptureLength
	ErrMatchDepthExceeded    = backtrack.ErrMatchDepthExceeded
)
