package backtrack

import "bytes"

// noMatch is the subject offset returned by a failed (sub)match.
const noMatch = -1

// machine holds the state of one match attempt. It is reset, not
// reallocated, between attempts.
type machine struct {
	pattern []byte
	subject []byte
	caps    captureStack
	depth   depthGuard
}

func (m *machine) reset(subject []byte) {
	m.subject = subject
	m.caps.reset()
	m.depth.reset()
}

// match matches pattern[p:] against subject[s:] and returns the end offset
// of the match, or noMatch. Tail positions loop instead of recursing, so
// only choice points and capture boundaries consume depth.
//
//nolint:gocyclo,cyclop // item dispatch mirrors the pattern grammar
func (m *machine) match(s, p int) (int, error) {
	if !m.depth.enter() {
		return noMatch, newPatternError(m.pattern, p, ErrMatchDepthExceeded)
	}
	defer m.depth.leave()

	pat := m.pattern
	for p < len(pat) {
		switch pat[p] {
		case '(':
			if p+1 < len(pat) && pat[p+1] == ')' {
				return m.startCapture(s, p, p+2, CapturePosition)
			}
			return m.startCapture(s, p, p+1, CaptureOpen)

		case ')':
			return m.endCapture(s, p+1)

		case '$':
			if p+1 == len(pat) {
				if s == len(m.subject) {
					return s, nil
				}
				return noMatch, nil
			}

		case Escape:
			if p+1 >= len(pat) {
				break
			}
			switch pat[p+1] {
			case 'b':
				end, err := m.matchBalance(s, p)
				if err != nil || end == noMatch {
					return noMatch, err
				}
				s, p = end, p+4
				continue

			case 'f':
				ep, ok, err := m.matchFrontier(s, p)
				if err != nil || !ok {
					return noMatch, err
				}
				p = ep
				continue

			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				end, err := m.matchBackref(s, p)
				if err != nil || end == noMatch {
					return noMatch, err
				}
				s, p = end, p+2
				continue
			}
		}

		// A single item with an optional repetition suffix.
		ep, err := classEnd(pat, p)
		if err != nil {
			return noMatch, err
		}
		var suffix byte
		if ep < len(pat) {
			suffix = pat[ep]
		}
		if !m.single(s, p, ep) {
			if suffix == '*' || suffix == '?' || suffix == '-' {
				p = ep + 1
				continue
			}
			return noMatch, nil
		}
		switch suffix {
		case '?':
			end, err := m.match(s+1, ep+1)
			if err != nil || end != noMatch {
				return end, err
			}
			p = ep + 1
		case '+':
			return m.maxExpand(s+1, p, ep)
		case '*':
			return m.maxExpand(s, p, ep)
		case '-':
			return m.minExpand(s, p, ep)
		default:
			s, p = s+1, ep
		}
	}
	return s, nil
}

// single reports whether the subject byte at s matches the item pattern[p:ep].
func (m *machine) single(s, p, ep int) bool {
	if s >= len(m.subject) {
		return false
	}
	return singleMatch(m.subject[s], m.pattern, p, ep)
}

// maxExpand consumes the longest run of the item, then gives bytes back one
// at a time until the rest of the pattern matches.
func (m *machine) maxExpand(s, p, ep int) (int, error) {
	i := 0
	for m.single(s+i, p, ep) {
		i++
	}
	for ; i >= 0; i-- {
		end, err := m.match(s+i, ep+1)
		if err != nil || end != noMatch {
			return end, err
		}
	}
	return noMatch, nil
}

// minExpand tries the rest of the pattern first and consumes one more byte
// of the item after each failure.
func (m *machine) minExpand(s, p, ep int) (int, error) {
	for {
		end, err := m.match(s, ep+1)
		if err != nil || end != noMatch {
			return end, err
		}
		if !m.single(s, p, ep) {
			return noMatch, nil
		}
		s++
	}
}

// startCapture records a capture opened by the '(' at pattern offset at and
// matches the rest of the pattern from next.
func (m *machine) startCapture(s, at, next int, kind CaptureKind) (int, error) {
	if !m.caps.push(s, kind) {
		return noMatch, newPatternError(m.pattern, at, ErrTooManyCaptures)
	}
	end, err := m.match(s, next)
	if err != nil || end == noMatch {
		m.caps.pop()
	}
	return end, err
}

func (m *machine) endCapture(s, p int) (int, error) {
	l := m.caps.lastOpen()
	if l < 0 {
		return noMatch, newPatternError(m.pattern, p-1, ErrNoOpenCapture)
	}
	m.caps.close(l, s)
	end, err := m.match(s, p)
	if err != nil || end == noMatch {
		m.caps.reopen(l)
	}
	return end, err
}

// matchBalance handles "%bxy" at pattern offset p.
func (m *machine) matchBalance(s, p int) (int, error) {
	if p+3 >= len(m.pattern) {
		return noMatch, newPatternError(m.pattern, p, ErrMalformedBalance)
	}
	if s >= len(m.subject) || m.subject[s] != m.pattern[p+2] {
		return noMatch, nil
	}
	opener, closer := m.pattern[p+2], m.pattern[p+3]
	depth := 1
	for s++; s < len(m.subject); s++ {
		switch m.subject[s] {
		case closer:
			depth--
			if depth == 0 {
				return s + 1, nil
			}
		case opener:
			depth++
		}
	}
	return noMatch, nil
}

// matchFrontier handles "%f[set]" at pattern offset p. It returns the
// offset past the set and whether the assertion holds at s.
func (m *machine) matchFrontier(s, p int) (int, bool, error) {
	set := p + 2
	if set >= len(m.pattern) || m.pattern[set] != '[' {
		return 0, false, newPatternError(m.pattern, p, ErrMalformedFrontier)
	}
	ep, err := classEnd(m.pattern, set)
	if err != nil {
		return 0, false, err
	}
	var prev, cur byte
	if s > 0 {
		prev = m.subject[s-1]
	}
	if s < len(m.subject) {
		cur = m.subject[s]
	}
	ok := !matchBracketClass(prev, m.pattern, set, ep-1) &&
		matchBracketClass(cur, m.pattern, set, ep-1)
	return ep, ok, nil
}

// matchBackref handles "%n" at pattern offset p.
func (m *machine) matchBackref(s, p int) (int, error) {
	l := int(m.pattern[p+1]) - '1'
	if l < 0 || l >= m.caps.level || m.caps.slots[l].Kind != CaptureClosed {
		return noMatch, newIndexError(m.pattern, p, l)
	}
	c := m.caps.slots[l]
	n := c.End - c.Start
	if len(m.subject)-s >= n && bytes.Equal(m.subject[c.Start:c.End], m.subject[s:s+n]) {
		return s + n, nil
	}
	return noMatch, nil
}
