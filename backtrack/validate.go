package backtrack

// Info describes the shape of a validated pattern.
type Info struct {
	// Captures is the number of explicit captures, positional ones included.
	Captures int

	// Positions is how many of those captures are positional "()".
	Positions int

	// Anchored reports whether the pattern starts with '^'.
	Anchored bool
}

// Validate checks pattern without a subject by interpreting its items in
// order with a simulated capture stack. The capture state at each pattern
// position does not depend on the subject, so every error a real attempt
// could raise, other than ErrMatchDepthExceeded, is found here. The first
// error is returned as a *PatternError.
//
//nolint:gocyclo,cyclop // one case per pattern item kind
func Validate(pattern []byte, maxCaptures int) (Info, error) {
	var info Info
	p := 0
	if len(pattern) > 0 && pattern[0] == '^' {
		info.Anchored = true
		p = 1
	}

	kinds := make([]CaptureKind, 0, maxCaptures)
	for p < len(pattern) {
		switch pattern[p] {
		case '(':
			if len(kinds) >= maxCaptures {
				return info, newPatternError(pattern, p, ErrTooManyCaptures)
			}
			if p+1 < len(pattern) && pattern[p+1] == ')' {
				kinds = append(kinds, CapturePosition)
				info.Positions++
				p += 2
			} else {
				kinds = append(kinds, CaptureOpen)
				p++
			}
			continue

		case ')':
			l := len(kinds) - 1
			for l >= 0 && kinds[l] != CaptureOpen {
				l--
			}
			if l < 0 {
				return info, newPatternError(pattern, p, ErrNoOpenCapture)
			}
			kinds[l] = CaptureClosed
			p++
			continue

		case '$':
			if p+1 == len(pattern) {
				p++
				continue
			}

		case Escape:
			if p+1 >= len(pattern) {
				return info, newPatternError(pattern, p, ErrEndsWithEscape)
			}
			switch pattern[p+1] {
			case 'b':
				if p+3 >= len(pattern) {
					return info, newPatternError(pattern, p, ErrMalformedBalance)
				}
				p += 4
				continue

			case 'f':
				set := p + 2
				if set >= len(pattern) || pattern[set] != '[' {
					return info, newPatternError(pattern, p, ErrMalformedFrontier)
				}
				ep, err := classEnd(pattern, set)
				if err != nil {
					return info, err
				}
				p = ep
				continue

			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				l := int(pattern[p+1]) - '1'
				if l < 0 || l >= len(kinds) || kinds[l] != CaptureClosed {
					return info, newIndexError(pattern, p, l)
				}
				p += 2
				continue
			}
		}

		ep, err := classEnd(pattern, p)
		if err != nil {
			return info, err
		}
		p = ep
		if p < len(pattern) && isQuantifier(pattern[p]) {
			p++
		}
	}

	for _, k := range kinds {
		if k == CaptureOpen {
			return info, newPatternError(pattern, -1, ErrUnfinishedCapture)
		}
	}
	info.Captures = len(kinds)
	return info, nil
}

func isQuantifier(c byte) bool {
	return c == '*' || c == '+' || c == '-' || c == '?'
}
