package routeparser

import (
	"unicode"
	"unicode/utf8"
)

// isLiteralChar reports whether r may appear in a literal: anything but
// / ? & # { } ! and =.
func isLiteralChar(r rune) bool {
	switch r {
	case '/', '?', '&', '#', '{', '}', '!', '=':
		return false
	}
	return true
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// peek decodes the rune at byte position pos. It returns utf8.RuneError and
// a width of 0 at the end of input.
func peek(s string, pos int) (rune, int) {
	if pos >= len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s[pos:])
}

// hasByte reports whether the byte at pos is c.
func hasByte(s string, pos int, c byte) bool {
	return pos < len(s) && s[pos] == c
}

// takeWhile returns the end of the longest run starting at pos whose runes
// satisfy ok. A byte that is not valid UTF-8 ends the run; an encoded
// U+FFFD does not.
func takeWhile(s string, pos int, ok func(rune) bool) int {
	for pos < len(s) {
		r, w := peek(s, pos)
		if w == 0 || (r == utf8.RuneError && w == 1) || !ok(r) {
			break
		}
		pos += w
	}
	return pos
}
