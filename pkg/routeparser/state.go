package routeparser

// phase is the coarse section of the matcher the parser is in.
type phase uint8

const (
	phaseStart phase = iota
	phasePath
	phaseFirstQuery
	phaseNthQuery
	phaseFragment
	phaseEnded
)

// parserState is the phase plus the kind of the previously parsed token.
// The legality of the next token depends on both.
type parserState struct {
	phase phase
	prev  TokenKind
}

// candidateOrder is the order in which sub-parsers are attempted. The first
// characters of the token kinds are disjoint, so the order only affects how
// expected tokens are listed in errors.
var candidateOrder = [...]TokenKind{
	KindSeparator,
	KindExact,
	KindCapture,
	KindQueryBegin,
	KindQuerySeparator,
	KindQuery,
	KindFragmentBegin,
	KindEnd,
}

// transition is the single legality table of the grammar: it returns the
// state reached by accepting a token of kind k, or the reason k is illegal.
// The sub-parsers attempted in each state are derived from it.
func (s parserState) transition(k TokenKind) (parserState, Reason) {
	switch s.phase {
	case phaseStart:
		switch k {
		case KindSeparator, KindExact, KindCapture:
			return parserState{phasePath, k}, ReasonNone
		case KindQueryBegin:
			return parserState{phaseFirstQuery, k}, ReasonNone
		case KindFragmentBegin:
			return parserState{phaseFragment, k}, ReasonNone
		case KindEnd:
			return parserState{phaseEnded, k}, ReasonNone
		}
		return s, ReasonNotAllowedTransition

	case phasePath:
		switch s.prev {
		case KindSeparator, KindExact, KindCapture:
		default:
			return s, ReasonInvalidState
		}
		switch k {
		case KindSeparator, KindExact, KindCapture:
			// No empty segments, literals are already maximal, and two
			// captures in a row would be ambiguous.
			if k == s.prev {
				return s, ReasonNotAllowedTransition
			}
			return parserState{phasePath, k}, ReasonNone
		case KindQueryBegin:
			return parserState{phaseFirstQuery, k}, ReasonNone
		case KindFragmentBegin:
			return parserState{phaseFragment, k}, ReasonNone
		case KindEnd:
			return parserState{phaseEnded, k}, ReasonNone
		}
		return s, ReasonNotAllowedTransition

	case phaseFirstQuery, phaseNthQuery:
		switch s.prev {
		case KindQueryBegin, KindQuerySeparator:
			if s.prev == KindQueryBegin && s.phase != phaseFirstQuery ||
				s.prev == KindQuerySeparator && s.phase != phaseNthQuery {
				return s, ReasonInvalidState
			}
			if k == KindQuery {
				return parserState{s.phase, k}, ReasonNone
			}
			return s, ReasonNotAllowedTransition
		case KindQuery:
			switch k {
			case KindQuerySeparator:
				return parserState{phaseNthQuery, k}, ReasonNone
			case KindFragmentBegin:
				return parserState{phaseFragment, k}, ReasonNone
			case KindEnd:
				return parserState{phaseEnded, k}, ReasonNone
			}
			return s, ReasonNotAllowedTransition
		}
		return s, ReasonInvalidState

	case phaseFragment:
		switch s.prev {
		case KindFragmentBegin, KindExact, KindCapture:
		default:
			return s, ReasonInvalidState
		}
		switch k {
		case KindExact, KindCapture:
			if k == s.prev {
				return s, ReasonNotAllowedTransition
			}
			return parserState{phaseFragment, k}, ReasonNone
		case KindEnd:
			return parserState{phaseEnded, k}, ReasonNone
		}
		return s, ReasonNotAllowedTransition

	case phaseEnded:
		return s, ReasonTokensAfterEnd
	}
	return s, ReasonInvalidState
}

// candidates lists the token kinds legal in state s, in attempt order.
// When nothing is legal, the reason explains why.
func (s parserState) candidates() ([]TokenKind, Reason) {
	var kinds []TokenKind
	var reason Reason
	for _, k := range candidateOrder {
		if _, r := s.transition(k); r == ReasonNone {
			kinds = append(kinds, k)
		} else if reason == ReasonNone || r != ReasonNotAllowedTransition {
			reason = r
		}
	}
	if len(kinds) > 0 {
		return kinds, ReasonNone
	}
	return nil, reason
}
