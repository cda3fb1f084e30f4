package routeparser

import "strconv"

// Parse converts a matcher string into route tokens.
//
// The returned slice is never empty. On failure the error is a *ParseError
// describing the first position where the input left the grammar; no partial
// result is returned.
func Parse(input string, mode FieldMode) ([]RouteToken, error) {
	p := &parser{lexer: lexer{input: input, mode: mode}}
	return p.parse()
}

type parser struct {
	lexer
	pos int
}

func (p *parser) parse() ([]RouteToken, error) {
	var tokens []RouteToken
	var state parserState

	for {
		tok, next, f := p.step(state)
		if f != nil {
			return nil, p.errorFrom(f)
		}

		nextState, reason := state.transition(tok.Kind)
		if reason != ReasonNone {
			return nil, p.errorFrom(&failure{pos: p.pos, reason: reason})
		}
		if next <= p.pos {
			panic("routeparser: step consumed no input at offset " + strconv.Itoa(p.pos))
		}

		tokens = append(tokens, tok)
		state = nextState
		p.pos = next

		if p.pos >= len(p.input) {
			return tokens, nil
		}
	}
}

// step tries each candidate legal in state, first match wins. When none
// match, the expected tokens of every candidate are merged and a diagnostic
// probe classifies the failure.
func (p *parser) step(state parserState) (RouteToken, int, *failure) {
	kinds, reason := state.candidates()
	if len(kinds) == 0 {
		return RouteToken{}, p.pos, &failure{pos: p.pos, reason: reason}
	}

	merged := &failure{pos: p.pos}
	for _, k := range kinds {
		tok, next, f := p.lex(k, p.pos, state.phase)
		if f == nil {
			return tok, next, nil
		}
		if f.committed {
			return RouteToken{}, p.pos, f
		}
		merged.expected = appendExpected(merged.expected, f.expected...)
		if merged.reason == ReasonNone && f.reason != ReasonNone {
			merged.reason, merged.char = f.reason, f.char
		}
	}

	if r, c := p.diagnose(state); r != ReasonNone {
		merged.reason, merged.char = r, c
	}
	return RouteToken{}, p.pos, merged
}

// diagnose runs secondary sub-parses at the current position, without
// consuming input, to explain why no candidate matched.
func (p *parser) diagnose(state parserState) (Reason, rune) {
	andProbe := false
	slashProbe := false
	captureProbe := false
	questionProbe := false

	switch state.phase {
	case phaseStart:
		andProbe = true
	case phasePath:
		andProbe = true
		slashProbe = state.prev == KindSeparator
		captureProbe = state.prev == KindCapture
	case phaseFirstQuery, phaseNthQuery:
		questionProbe = true
	case phaseFragment:
		captureProbe = state.prev == KindCapture
	}

	switch {
	case andProbe && hasByte(p.input, p.pos, '&'):
		return ReasonAndBeforeQuestion, 0
	case slashProbe && hasByte(p.input, p.pos, '/'):
		return ReasonDoubleSlash, 0
	case captureProbe && hasByte(p.input, p.pos, '{'):
		// A malformed second capture is not reported as adjacent; its own
		// error belongs to a position this failure does not point at.
		if _, _, f := p.capture(p.pos, state.phase == phaseFragment); f == nil {
			return ReasonAdjacentCaptures, 0
		}
	case questionProbe && hasByte(p.input, p.pos, '?'):
		return ReasonMultipleQuestions, 0
	}
	return ReasonNone, 0
}

func (p *parser) errorFrom(f *failure) *ParseError {
	return &ParseError{
		Input:     p.input,
		Remaining: p.input[f.pos:],
		Reason:    f.reason,
		Char:      f.char,
		Expected:  f.expected,
	}
}

// appendExpected appends the tokens not already present.
func appendExpected(dst []ExpectedToken, src ...ExpectedToken) []ExpectedToken {
outer:
	for _, x := range src {
		for _, y := range dst {
			if x == y {
				continue outer
			}
		}
		dst = append(dst, x)
	}
	return dst
}
