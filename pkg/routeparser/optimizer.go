package routeparser

import (
	"fmt"
	"strconv"
	"strings"
)

// MatcherKind identifies the variant held by a MatcherToken.
type MatcherKind uint8

const (
	// MatcherExact matches its text verbatim. The text may be empty.
	MatcherExact MatcherKind = iota + 1
	// MatcherCapture captures according to its CaptureSpec.
	MatcherCapture
	// MatcherEnd requires the URL to end here.
	MatcherEnd
)

func (k MatcherKind) String() string {
	switch k {
	case MatcherExact:
		return "exact"
	case MatcherCapture:
		return "capture"
	case MatcherEnd:
		return "end"
	}
	return "MatcherKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k MatcherKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MatcherToken is an optimized token consumed by a URL matching engine.
// Runs of literal route tokens are folded into one MatcherExact token.
type MatcherToken struct {
	Kind    MatcherKind
	Text    string
	Capture CaptureSpec
}

// MatchExact returns a literal matcher token.
func MatchExact(text string) MatcherToken { return MatcherToken{Kind: MatcherExact, Text: text} }

// MatchCapture returns a capturing matcher token.
func MatchCapture(c CaptureSpec) MatcherToken { return MatcherToken{Kind: MatcherCapture, Capture: c} }

// MatchEnd returns the terminating matcher token.
func MatchEnd() MatcherToken { return MatcherToken{Kind: MatcherEnd} }

// Source renders the token the way it is written in a matcher string.
func (t MatcherToken) Source() string {
	switch t.Kind {
	case MatcherExact:
		return t.Text
	case MatcherCapture:
		return t.Capture.String()
	case MatcherEnd:
		return "!"
	}
	return ""
}

// String returns a debug form such as Exact("/lorem/") or Capture({id}).
func (t MatcherToken) String() string {
	switch t.Kind {
	case MatcherExact:
		return fmt.Sprintf("Exact(%q)", t.Text)
	case MatcherCapture:
		return "Capture(" + t.Capture.String() + ")"
	case MatcherEnd:
		return "End"
	}
	return "Invalid"
}

// Optimize folds consecutive literal-rendering tokens into single exact
// tokens. Captures and End are emitted as-is.
//
// A capture, a capturing query pair or End always flushes the pending run,
// even an empty one, so "!" alone yields [Exact(""), End]. The trailing run
// is flushed only when it is not empty.
//
// Optimize expects a sequence produced by Parse and never fails.
func Optimize(tokens []RouteToken) []MatcherToken {
	out := make([]MatcherToken, 0, len(tokens))
	var run strings.Builder
	runLen := 0

	flush := func() {
		out = append(out, MatchExact(run.String()))
		run.Reset()
		runLen = 0
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case KindSeparator, KindExact, KindQueryBegin, KindQuerySeparator, KindFragmentBegin:
			run.WriteString(tok.Source())
			runLen++
		case KindCapture:
			flush()
			out = append(out, MatchCapture(tok.Capture))
		case KindQuery:
			run.WriteString(tok.Key)
			run.WriteByte('=')
			runLen++
			if tok.Value.Capture == nil {
				run.WriteString(tok.Value.Exact)
				continue
			}
			flush()
			out = append(out, MatchCapture(*tok.Value.Capture))
		case KindEnd:
			flush()
			out = append(out, MatchEnd())
		}
	}

	if runLen > 0 {
		flush()
	}
	return out
}

// ParseAndOptimize parses a matcher string and optimizes the result.
func ParseAndOptimize(input string, mode FieldMode) ([]MatcherToken, error) {
	tokens, err := Parse(input, mode)
	if err != nil {
		return nil, err
	}
	return Optimize(tokens), nil
}

// Compact merges adjacent exact tokens. On the output of Optimize it is the
// identity.
func Compact(tokens []MatcherToken) []MatcherToken {
	out := make([]MatcherToken, 0, len(tokens))
	for _, tok := range tokens {
		if n := len(out); n > 0 && tok.Kind == MatcherExact && out[n-1].Kind == MatcherExact {
			out[n-1].Text += tok.Text
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Render writes matcher tokens back into matcher-string form. For a valid
// matcher string s, Render(ParseAndOptimize(s)) == s as long as numbered
// captures carry no leading zeros.
func Render(tokens []MatcherToken) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Source())
	}
	return b.String()
}
