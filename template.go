package luapat

import "github.com/coregx/luapat/meta"

// Template is a parsed replacement template in Lua's gsub syntax: %0 is
// the whole match, %1-%9 a capture and %% a literal '%'. When the pattern
// has no captures %1 also means the whole match. A positional capture
// expands to its 1-based offset.
//
// A Template is immutable and may be shared between goroutines.
type Template struct {
	source string
	parts  []templatePart
	maxRef int
}

// templatePart is either literal text or, when ref >= 0, a capture reference.
type templatePart struct {
	text []byte
	ref  int
}

// ParseTemplate parses a replacement template. A '%' followed by anything
// other than a digit or '%', including a '%' at the end, fails with
// ErrInvalidPatternCapture.
//
// Example:
//
//	t, err := luapat.ParseTemplate("%2=%1")
//	if err != nil {
//	    return err
//	}
//	out, err := p.ReplaceAllTemplate(src, t)
func ParseTemplate(tmpl string) (*Template, error) {
	t := &Template{source: tmpl, maxRef: -1}
	var lit []byte
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			lit = append(lit, c)
			continue
		}
		i++
		switch {
		case i == len(tmpl):
			return nil, &PatternError{Pattern: tmpl, Offset: i - 1, Index: -1, Err: ErrInvalidPatternCapture}
		case tmpl[i] == '%':
			lit = append(lit, '%')
		case tmpl[i] >= '0' && tmpl[i] <= '9':
			if len(lit) > 0 {
				t.parts = append(t.parts, templatePart{text: lit, ref: -1})
				lit = nil
			}
			ref := int(tmpl[i] - '0')
			t.parts = append(t.parts, templatePart{ref: ref})
			t.maxRef = max(t.maxRef, ref)
		default:
			return nil, &PatternError{Pattern: tmpl, Offset: i - 1, Index: -1, Err: ErrInvalidPatternCapture}
		}
	}
	if len(lit) > 0 {
		t.parts = append(t.parts, templatePart{text: lit, ref: -1})
	}
	return t, nil
}

// MustParseTemplate is like ParseTemplate but panics on a malformed template.
func MustParseTemplate(tmpl string) *Template {
	t, err := ParseTemplate(tmpl)
	if err != nil {
		panic("luapat: ParseTemplate(" + quote(tmpl) + "): " + err.Error())
	}
	return t
}

// String returns the source text of the template.
func (t *Template) String() string {
	return t.source
}

// IsLiteral reports whether the template contains no capture references.
func (t *Template) IsLiteral() bool {
	return t.maxRef < 0
}

// check reports an ErrInvalidCaptureIndex for a reference that no match of
// a pattern with numCaptures captures can satisfy.
func (t *Template) check(numCaptures int) error {
	limit := max(numCaptures, 1)
	if t.maxRef > limit {
		return &PatternError{Pattern: t.source, Offset: -1, Index: t.maxRef - 1, Err: ErrInvalidCaptureIndex}
	}
	return nil
}

// Expand appends the template expanded against m to dst.
func (t *Template) Expand(dst []byte, m *meta.Match) ([]byte, error) {
	if err := t.check(m.NumCaptures()); err != nil {
		return dst, err
	}
	for _, part := range t.parts {
		if part.ref < 0 {
			dst = append(dst, part.text...)
			continue
		}
		ref := part.ref
		if ref == 1 && m.NumCaptures() == 0 {
			ref = 0
		}
		dst = append(dst, captureValue(m, ref)...)
	}
	return dst, nil
}

