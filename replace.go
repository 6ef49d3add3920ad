package luapat

import "github.com/coregx/luapat/meta"

// replace copies src to a new slice, letting fn append the replacement for
// each of at most n matches (all when n < 0). It returns the result and the
// number of matches replaced.
func (p *Pattern) replace(src []byte, n int, fn func(dst []byte, m *meta.Match) ([]byte, error)) ([]byte, int, error) {
	if n == 0 {
		return append([]byte(nil), src...), 0, nil
	}
	result := make([]byte, 0, len(src))
	lastEnd := 0
	count := 0
	for m, err := range p.engine.All(src) {
		if err != nil {
			return nil, 0, err
		}
		result = append(result, src[lastEnd:m.Start()]...)
		if result, err = fn(result, m); err != nil {
			return nil, 0, err
		}
		lastEnd = m.End()
		count++
		if n > 0 && count >= n {
			break
		}
	}
	result = append(result, src[lastEnd:]...)
	return result, count, nil
}

// ReplaceAll returns a copy of src with every match replaced by the
// expansion of the template repl (see Template for the syntax).
//
// Example:
//
//	p := luapat.MustCompile(`(%w+)@(%w+)%.(%w+)`)
//	out, _ := p.ReplaceAll([]byte("user@example.com"), []byte("%1 at %2 dot %3"))
//	// out = []byte("user at example dot com")
func (p *Pattern) ReplaceAll(src, repl []byte) ([]byte, error) {
	t, err := ParseTemplate(string(repl))
	if err != nil {
		return nil, err
	}
	return p.ReplaceAllTemplate(src, t)
}

// ReplaceAllString is ReplaceAll for strings.
func (p *Pattern) ReplaceAllString(src, repl string) (string, error) {
	out, _, err := p.Gsub(src, repl, -1)
	return out, err
}

// ReplaceAllTemplate is ReplaceAll with a pre-parsed template. A reference
// to a capture the pattern does not have fails before any search.
func (p *Pattern) ReplaceAllTemplate(src []byte, t *Template) ([]byte, error) {
	out, _, err := p.replaceTemplate(src, t, -1)
	return out, err
}

// GsubTemplate is Gsub on bytes with a pre-parsed template.
func (p *Pattern) GsubTemplate(src []byte, t *Template, n int) ([]byte, int, error) {
	return p.replaceTemplate(src, t, n)
}

func (p *Pattern) replaceTemplate(src []byte, t *Template, n int) ([]byte, int, error) {
	if err := t.check(p.NumCaptures()); err != nil {
		return nil, 0, err
	}
	return p.replace(src, n, t.Expand)
}

// ReplaceAllLiteral returns a copy of src with every match replaced by
// repl, which is not expanded.
func (p *Pattern) ReplaceAllLiteral(src, repl []byte) ([]byte, error) {
	out, _, err := p.replace(src, -1, func(dst []byte, _ *meta.Match) ([]byte, error) {
		return append(dst, repl...), nil
	})
	return out, err
}

// ReplaceAllLiteralString is ReplaceAllLiteral for strings.
func (p *Pattern) ReplaceAllLiteralString(src, repl string) (string, error) {
	out, err := p.ReplaceAllLiteral([]byte(src), []byte(repl))
	return string(out), err
}

// ReplaceAllFunc returns a copy of src with every match replaced by the
// return value of repl, which is not expanded.
func (p *Pattern) ReplaceAllFunc(src []byte, repl func(*Match) []byte) ([]byte, error) {
	out, _, err := p.replace(src, -1, func(dst []byte, m *meta.Match) ([]byte, error) {
		return append(dst, repl(m)...), nil
	})
	return out, err
}

// ReplaceAllStringFunc is ReplaceAllFunc for strings.
//
// Example:
//
//	p := luapat.MustCompile(`%$(%S+)`)
//	out, _ := p.ReplaceAllStringFunc("hello $dolly", func(m *luapat.Match) string {
//	    name, _ := m.GroupString(1)
//	    return strings.ToUpper(name)
//	})
//	// out = "hello DOLLY"
func (p *Pattern) ReplaceAllStringFunc(src string, repl func(*Match) string) (string, error) {
	out, _, err := p.replace([]byte(src), -1, func(dst []byte, m *meta.Match) ([]byte, error) {
		return append(dst, repl(m)...), nil
	})
	return string(out), err
}

// Gsub is Lua's string.gsub with a template: it replaces at most n matches
// (all when n < 0) and returns the result and the number of matches
// replaced.
//
// Example:
//
//	p := luapat.MustCompile(`(%S+)%s*=%s*(%S+);%s*`)
//	out, count, _ := p.Gsub("a=2; b=3; c = 4;", "'%2':%1 ", -1)
//	// out = "'2':a '3':b '4':c ", count = 3
func (p *Pattern) Gsub(src, tmpl string, n int) (string, int, error) {
	t, err := ParseTemplate(tmpl)
	if err != nil {
		return "", 0, err
	}
	out, count, err := p.replaceTemplate([]byte(src), t, n)
	if err != nil {
		return "", 0, err
	}
	return string(out), count, nil
}

// GsubFunc is Lua's string.gsub with a function: repl returns the
// replacement and true, or false to keep the matched text. Errors returned
// by repl stop the substitution.
func (p *Pattern) GsubFunc(src string, n int, repl func(*Match) (string, bool, error)) (string, int, error) {
	out, count, err := p.replace([]byte(src), n, func(dst []byte, m *meta.Match) ([]byte, error) {
		s, ok, err := repl(m)
		if err != nil {
			return dst, err
		}
		if !ok {
			return append(dst, m.Bytes()...), nil
		}
		return append(dst, s...), nil
	})
	if err != nil {
		return "", 0, err
	}
	return string(out), count, nil
}
