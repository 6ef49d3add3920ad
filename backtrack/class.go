package backtrack

// Escape is the pattern escape byte.
const Escape = '%'

// magic marks the bytes that carry meaning in a pattern.
var magic = [256]bool{
	'^': true, '$': true, '(': true, ')': true, '%': true, '.': true,
	'[': true, ']': true, '*': true, '+': true, '-': true, '?': true,
}

// IsMagic reports whether b must be escaped with '%' to stand for itself.
func IsMagic(b byte) bool {
	return magic[b]
}

func isAlpha(c byte) bool  { return isLower(c) || isUpper(c) }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool  { return isAlpha(c) || isDigit(c) }
func isSpace(c byte) bool  { return c == ' ' || (c >= '\t' && c <= '\r') }
func isCntrl(c byte) bool  { return c < 0x20 || c == 0x7f }
func isGraph(c byte) bool  { return c > 0x20 && c < 0x7f }
func isPunct(c byte) bool  { return isGraph(c) && !isAlnum(c) }
func isXDigit(c byte) bool { return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f') }

// MatchClass reports whether c belongs to the class named by cl, the byte
// following '%'. An upper-case class letter negates the class; any byte
// that is not a class letter matches only itself.
func MatchClass(c, cl byte) bool {
	var res bool
	switch cl | 0x20 {
	case 'a':
		res = isAlpha(c)
	case 'c':
		res = isCntrl(c)
	case 'd':
		res = isDigit(c)
	case 'g':
		res = isGraph(c)
	case 'l':
		res = isLower(c)
	case 'p':
		res = isPunct(c)
	case 's':
		res = isSpace(c)
	case 'u':
		res = isUpper(c)
	case 'w':
		res = isAlnum(c)
	case 'x':
		res = isXDigit(c)
	case 'z':
		res = c == 0
	default:
		return cl == c
	}
	if isUpper(cl) {
		return !res
	}
	return res
}

// classEnd returns the offset just past the single item starting at p:
// an escape, a bracket set or a plain byte.
func classEnd(pattern []byte, p int) (int, error) {
	c := pattern[p]
	p++
	switch c {
	case Escape:
		if p >= len(pattern) {
			return 0, newPatternError(pattern, p-1, ErrEndsWithEscape)
		}
		return p + 1, nil
	case '[':
		open := p - 1
		if p < len(pattern) && pattern[p] == '^' {
			p++
		}
		// The first member is consumed before looking for ']', so "[]]"
		// and "[^]]" contain a literal ']'.
		for {
			if p >= len(pattern) {
				return 0, newPatternError(pattern, open, ErrUnfinishedCharClass)
			}
			c := pattern[p]
			p++
			if c == Escape {
				if p >= len(pattern) {
					return 0, newPatternError(pattern, open, ErrUnfinishedCharClass)
				}
				p++
			}
			if p >= len(pattern) {
				return 0, newPatternError(pattern, open, ErrUnfinishedCharClass)
			}
			if pattern[p] == ']' {
				return p + 1, nil
			}
		}
	default:
		return p, nil
	}
}

// matchBracketClass tests c against the set pattern[p:ec+1], where p is the
// opening '[' and ec the closing ']'.
func matchBracketClass(c byte, pattern []byte, p, ec int) bool {
	sig := true
	if pattern[p+1] == '^' {
		sig = false
		p++
	}
	for p++; p < ec; p++ {
		switch {
		case pattern[p] == Escape:
			p++
			if MatchClass(c, pattern[p]) {
				return sig
			}
		case pattern[p+1] == '-' && p+2 < ec:
			p += 2
			if pattern[p-2] <= c && c <= pattern[p] {
				return sig
			}
		case pattern[p] == c:
			return sig
		}
	}
	return !sig
}

// singleMatch tests one subject byte against the item pattern[p:ep].
func singleMatch(c byte, pattern []byte, p, ep int) bool {
	switch pattern[p] {
	case '.':
		return true
	case Escape:
		return MatchClass(c, pattern[p+1])
	case '[':
		return matchBracketClass(c, pattern, p, ep-1)
	default:
		return pattern[p] == c
	}
}

// ItemTable returns the membership table of the single item pattern[p:ep]:
// entry b is true when the item matches byte b.
func ItemTable(pattern []byte, p, ep int) [256]bool {
	var table [256]bool
	for b := 0; b < 256; b++ {
		table[b] = singleMatch(byte(b), pattern, p, ep)
	}
	return table
}

// ItemEnd returns the offset just past the single item starting at p. It
// fails on a trailing '%' or an unterminated bracket set.
func ItemEnd(pattern []byte, p int) (int, error) {
	return classEnd(pattern, p)
}
