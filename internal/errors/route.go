package errors

import (
	"strings"

	"github.com/vango-dev/routematch/pkg/routeparser"
)

// reasonCodes maps parse failure reasons to registry codes.
var reasonCodes = map[routeparser.Reason]string{
	routeparser.ReasonNone:                 "R100",
	routeparser.ReasonDoubleSlash:          "R101",
	routeparser.ReasonAndBeforeQuestion:    "R102",
	routeparser.ReasonAdjacentCaptures:     "R103",
	routeparser.ReasonMultipleQuestions:    "R104",
	routeparser.ReasonBadIdentifierChar:    "R105",
	routeparser.ReasonNotAllowedTransition: "R106",
	routeparser.ReasonInvalidState:         "R107",
	routeparser.ReasonTokensAfterEnd:       "R108",
}

var reasonSuggestions = map[routeparser.Reason]string{
	routeparser.ReasonDoubleSlash:       "Remove the extra '/'",
	routeparser.ReasonAndBeforeQuestion: "Open the query with '?' and use '&' only between parameters",
	routeparser.ReasonAdjacentCaptures:  "Put a literal or '/' between the two captures",
	routeparser.ReasonMultipleQuestions: "Join query parameters with '&'",
	routeparser.ReasonTokensAfterEnd:    "Move '!' to the end of the matcher or drop it",
}

var reasonExamples = map[routeparser.Reason]string{
	routeparser.ReasonAndBeforeQuestion: "/search?q={query}&page={page}",
	routeparser.ReasonAdjacentCaptures:  "/files/{dir}/{name}",
	routeparser.ReasonMultipleQuestions: "/search?q={query}&page={page}",
}

// CodeFor returns the registry code for a parse failure reason.
func CodeFor(reason routeparser.Reason) string {
	if code, ok := reasonCodes[reason]; ok {
		return code
	}
	return "R100"
}

// FromParseError converts a parse failure into a coded route error located
// at file:line, with the column pointing at the failing character and the
// matcher as context.
func FromParseError(perr *routeparser.ParseError, file string, line int) *Error {
	e := New(CodeFor(perr.Reason)).
		WithLocation(file, line, perr.Offset()+1).
		WithContext([]string{perr.Input}).
		WithExample(reasonExamples[perr.Reason]).
		Wrap(perr)

	if desc := perr.Description(); desc != "" {
		e.WithDetail(desc + ".")
	}

	switch {
	case perr.Reason == routeparser.ReasonBadIdentifierChar:
		e.WithSuggestion("Remove " + quoteRune(perr.Char) + " from the name")
	case reasonSuggestions[perr.Reason] != "":
		e.WithSuggestion(reasonSuggestions[perr.Reason])
	case len(perr.Expected) > 0:
		e.WithSuggestion("Expected one of: " + joinExpected(perr.Expected))
	}
	return e
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func joinExpected(expected []routeparser.ExpectedToken) string {
	parts := make([]string, len(expected))
	for i, x := range expected {
		parts[i] = string(x)
	}
	return strings.Join(parts, " ")
}
