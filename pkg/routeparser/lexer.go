package routeparser

import "strconv"

// failure is a sub-parser miss at byte position pos.
//
// A committed failure happened after the sub-parser recognized its opening
// character ("{" or a query key), so no other alternative can apply and the
// failure is reported as-is.
type failure struct {
	pos       int
	reason    Reason
	char      rune
	expected  []ExpectedToken
	committed bool
}

func miss(pos int, expected ...ExpectedToken) *failure {
	return &failure{pos: pos, expected: expected}
}

func fail(pos int, expected ...ExpectedToken) *failure {
	return &failure{pos: pos, expected: expected, committed: true}
}

// badChar attaches ReasonBadIdentifierChar when a real character (not the
// end of input) stopped an identifier.
func (f *failure) badChar(s string) *failure {
	if r, w := peek(s, f.pos); w > 0 {
		f.reason = ReasonBadIdentifierChar
		f.char = r
	}
	return f
}

// lexer holds the sub-parsers for one input and field mode. Each sub-parser
// starts at a byte position and returns the token and the position after it.
type lexer struct {
	input string
	mode  FieldMode
}

func (l *lexer) lex(k TokenKind, pos int, ph phase) (RouteToken, int, *failure) {
	switch k {
	case KindSeparator:
		return l.char(pos, '/', SeparatorToken(), ExpectSeparator)
	case KindExact:
		return l.exact(pos)
	case KindCapture:
		// Fragments accept single-segment captures only.
		spec, next, f := l.capture(pos, ph == phaseFragment)
		if f != nil {
			return RouteToken{}, pos, f
		}
		return CaptureToken(spec), next, nil
	case KindQueryBegin:
		return l.char(pos, '?', QueryBeginToken(), ExpectQueryBegin)
	case KindQuerySeparator:
		return l.char(pos, '&', QuerySeparatorToken(), ExpectQuerySeparator)
	case KindQuery:
		return l.query(pos)
	case KindFragmentBegin:
		return l.char(pos, '#', FragmentBeginToken(), ExpectFragmentBegin)
	case KindEnd:
		return l.char(pos, '!', EndToken(), ExpectEnd)
	}
	return RouteToken{}, pos, miss(pos)
}

func (l *lexer) char(pos int, c byte, tok RouteToken, expected ExpectedToken) (RouteToken, int, *failure) {
	if !hasByte(l.input, pos, c) {
		return RouteToken{}, pos, miss(pos, expected)
	}
	return tok, pos + 1, nil
}

func (l *lexer) exact(pos int) (RouteToken, int, *failure) {
	end := takeWhile(l.input, pos, isLiteralChar)
	if end == pos {
		return RouteToken{}, pos, miss(pos, ExpectLiteral)
	}
	return ExactToken(l.input[pos:end]), end, nil
}

// ident reads an identifier at pos. A miss is never committed; callers decide.
func (l *lexer) ident(pos int) (string, int, *failure) {
	r, w := peek(l.input, pos)
	if w == 0 || !isIdentStart(r) {
		return "", pos, miss(pos, ExpectIdent)
	}
	end := takeWhile(l.input, pos+w, isIdentChar)
	return l.input[pos:end], end, nil
}

// capture parses a {...} placeholder at pos. With single set only the
// one-segment forms are accepted.
func (l *lexer) capture(pos int, single bool) (CaptureSpec, int, *failure) {
	if !hasByte(l.input, pos, '{') {
		return CaptureSpec{}, pos, miss(pos, ExpectOpenBracket)
	}
	unnamedOK := l.mode == FieldsUnnamed
	i := pos + 1

	var spec CaptureSpec
	r, _ := peek(l.input, i)
	switch {
	case r == '*' && !single:
		i++
		if hasByte(l.input, i, ':') {
			name, next, f := l.captureName(i + 1)
			if f != nil {
				return spec, pos, f
			}
			spec, i = ManyNamed(name), next
		} else if unnamedOK {
			spec = ManyUnnamed()
		} else {
			return spec, pos, fail(i, ExpectColon)
		}

	case isDigit(r) && !single:
		end := takeWhile(l.input, i, isDigit)
		count, err := strconv.Atoi(l.input[i:end])
		if err != nil {
			return spec, pos, fail(i, ExpectNumber)
		}
		i = end
		if hasByte(l.input, i, ':') {
			name, next, f := l.captureName(i + 1)
			if f != nil {
				return spec, pos, f
			}
			spec, i = NumberedNamed(count, name), next
		} else if unnamedOK {
			spec = NumberedUnnamed(count)
		} else {
			return spec, pos, fail(i, ExpectColon)
		}

	case r == '}' && unnamedOK:
		spec = Unnamed()

	default:
		name, next, f := l.ident(i)
		if f != nil {
			f.expected = l.captureBodyExpected(single)
			if r != '}' {
				f.badChar(l.input)
			}
			f.committed = true
			return spec, pos, f
		}
		spec, i = Named(name), next
	}

	if !hasByte(l.input, i, '}') {
		f := fail(i, l.captureCloseExpected(spec)...)
		if spec.IsNamed() {
			f.badChar(l.input)
		}
		return CaptureSpec{}, pos, f
	}
	return spec, i + 1, nil
}

// captureName reads the name after "*:" or "N:".
func (l *lexer) captureName(pos int) (string, int, *failure) {
	name, next, f := l.ident(pos)
	if f != nil {
		if !hasByte(l.input, pos, '}') {
			f.badChar(l.input)
		}
		f.committed = true
	}
	return name, next, f
}

// captureBodyExpected lists what may follow "{".
func (l *lexer) captureBodyExpected(single bool) []ExpectedToken {
	var expected []ExpectedToken
	if !single {
		expected = append(expected, ExpectStar, ExpectNumber)
	}
	expected = append(expected, ExpectIdent)
	if l.mode == FieldsUnnamed {
		expected = append(expected, ExpectCloseBracket)
	}
	return expected
}

// captureCloseExpected lists what may follow a complete capture body.
func (l *lexer) captureCloseExpected(spec CaptureSpec) []ExpectedToken {
	switch spec.Kind {
	case CaptureManyUnnamed, CaptureNumberedUnnamed:
		return []ExpectedToken{ExpectColon, ExpectCloseBracket}
	case CaptureUnnamed:
		return []ExpectedToken{ExpectCloseBracket}
	}
	return []ExpectedToken{ExpectCloseBracket, ExpectIdent}
}

// query parses a key=value or key={capture} pair at pos.
func (l *lexer) query(pos int) (RouteToken, int, *failure) {
	key, i, f := l.ident(pos)
	if f != nil {
		return RouteToken{}, pos, f.badChar(l.input)
	}
	if !hasByte(l.input, i, '=') {
		f := fail(i, ExpectEquals, ExpectIdent).badChar(l.input)
		return RouteToken{}, pos, f
	}
	i++

	if hasByte(l.input, i, '{') {
		spec, next, f := l.capture(i, true)
		if f != nil {
			return RouteToken{}, pos, f
		}
		return QueryToken(key, CaptureValue(spec)), next, nil
	}

	end := takeWhile(l.input, i, isLiteralChar)
	if end == i {
		return RouteToken{}, pos, fail(i, ExpectLiteral, ExpectOpenBracket)
	}
	return QueryToken(key, LiteralValue(l.input[i:end])), end, nil
}
