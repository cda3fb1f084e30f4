package routeparser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Reason categorizes why parsing stopped.
// Reason values implement error so callers can test for them with errors.Is.
type Reason string

const (
	// ReasonNone means no diagnostic explained the failure: none of the
	// candidate tokens matched at that position.
	ReasonNone Reason = ""

	// ReasonDoubleSlash indicates "/" immediately following "/".
	ReasonDoubleSlash Reason = "DOUBLE_SLASH"

	// ReasonAndBeforeQuestion indicates a "&" pair before any "?".
	ReasonAndBeforeQuestion Reason = "AND_BEFORE_QUESTION"

	// ReasonAdjacentCaptures indicates two captures with nothing between them.
	ReasonAdjacentCaptures Reason = "ADJACENT_CAPTURES"

	// ReasonMultipleQuestions indicates a second "?" once the query has begun.
	ReasonMultipleQuestions Reason = "MULTIPLE_QUESTIONS"

	// ReasonBadIdentifierChar indicates a disallowed character inside a
	// capture name or query key. ParseError.Char holds the character.
	ReasonBadIdentifierChar Reason = "BAD_IDENTIFIER_CHARACTER"

	// ReasonNotAllowedTransition indicates a token that lexed fine but is not
	// legal after the previous token.
	ReasonNotAllowedTransition Reason = "NOT_ALLOWED_STATE_TRANSITION"

	// ReasonInvalidState indicates a parser state that cannot occur.
	ReasonInvalidState Reason = "INVALID_STATE"

	// ReasonTokensAfterEnd indicates input after the "!" terminator.
	ReasonTokensAfterEnd Reason = "TOKENS_AFTER_END"
)

// Error implements the error interface.
func (r Reason) Error() string {
	if r == ReasonNone {
		return "no alternative matched"
	}
	return string(r)
}

// describe returns a human-readable sentence for the reason.
func (r Reason) describe(char rune) string {
	switch r {
	case ReasonDoubleSlash:
		return "Cannot have two slashes in a row ('//')"
	case ReasonAndBeforeQuestion:
		return "The first query parameter must be introduced by '?', not '&'"
	case ReasonAdjacentCaptures:
		return "Two captures cannot be adjacent, separate them with a literal or '/'"
	case ReasonMultipleQuestions:
		return "Only one '?' may begin the query section, use '&' between parameters"
	case ReasonBadIdentifierChar:
		return fmt.Sprintf("Identifiers cannot contain %q", char)
	case ReasonNotAllowedTransition:
		return "This token is not allowed after the previous one"
	case ReasonInvalidState:
		return "The parser reached an invalid state"
	case ReasonTokensAfterEnd:
		return "Nothing may follow the end token '!'"
	}
	return ""
}

// ExpectedToken names something the parser would have accepted at the
// failure position.
type ExpectedToken string

const (
	ExpectSeparator      ExpectedToken = "/"
	ExpectLiteral        ExpectedToken = "<literal>"
	ExpectOpenBracket    ExpectedToken = "{"
	ExpectCloseBracket   ExpectedToken = "}"
	ExpectQueryBegin     ExpectedToken = "?"
	ExpectQuerySeparator ExpectedToken = "&"
	ExpectFragmentBegin  ExpectedToken = "#"
	ExpectEnd            ExpectedToken = "!"
	ExpectIdent          ExpectedToken = "<ident>"
	ExpectEquals         ExpectedToken = "="
	ExpectStar           ExpectedToken = "*"
	ExpectColon          ExpectedToken = ":"
	ExpectNumber         ExpectedToken = "<number>"
)

// ParseError describes the first point at which a matcher string left the
// grammar.
type ParseError struct {
	// Input is the full matcher string.
	Input string

	// Remaining is the unconsumed input starting at the failure position.
	Remaining string

	// Reason categorizes the failure. ReasonNone when no diagnostic applied.
	Reason Reason

	// Char is the offending character for ReasonBadIdentifierChar.
	Char rune

	// Expected lists what would have been accepted at the failure position.
	Expected []ExpectedToken
}

// Offset returns the failure position in characters from the start of Input.
func (e *ParseError) Offset() int {
	consumed := len(e.Input) - len(e.Remaining)
	if consumed < 0 || consumed > len(e.Input) {
		return 0
	}
	return utf8.RuneCountInString(e.Input[:consumed])
}

// Description returns the human-readable reason, or "" when unset.
func (e *ParseError) Description() string {
	return e.Reason.describe(e.Char)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "routeparser: cannot parse %q at offset %d", e.Input, e.Offset())
	if e.Reason != ReasonNone {
		b.WriteString(": ")
		b.WriteString(e.Description())
	}
	if len(e.Expected) > 0 {
		b.WriteString(" (expected ")
		b.WriteString(joinExpected(e.Expected))
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is the Reason of this error.
func (e *ParseError) Is(target error) bool {
	r, ok := target.(Reason)
	return ok && r == e.Reason
}

// Pretty renders the error over several lines with a caret under the
// failure position:
//
//	Could not parse route.
//	Route: /{lor#m}
//	------------^
//	Expected: }, <ident>
//	Reason: Identifiers cannot contain '#'
func (e *ParseError) Pretty() string {
	const routeLabel = "Route: "

	var b strings.Builder
	b.WriteString("Could not parse route.\n")
	b.WriteString(routeLabel)
	b.WriteString(e.Input)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(routeLabel)+e.Offset()))
	b.WriteString("^\n")
	if len(e.Expected) > 0 {
		b.WriteString("Expected: ")
		b.WriteString(joinExpected(e.Expected))
		b.WriteString("\n")
	}
	if e.Reason != ReasonNone {
		b.WriteString("Reason: ")
		b.WriteString(e.Description())
		b.WriteString("\n")
	}
	return b.String()
}

func joinExpected(expected []ExpectedToken) string {
	parts := make([]string, len(expected))
	for i, x := range expected {
		parts[i] = string(x)
	}
	return strings.Join(parts, ", ")
}
