package routeparser

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind identifies the variant held by a RouteToken.
type TokenKind uint8

const (
	kindNone TokenKind = iota

	// KindSeparator matches "/".
	KindSeparator
	// KindExact matches a literal run of non-special characters.
	KindExact
	// KindCapture matches a {...} placeholder.
	KindCapture
	// KindQueryBegin matches "?".
	KindQueryBegin
	// KindQuerySeparator matches "&".
	KindQuerySeparator
	// KindQuery matches one key=value or key={capture} pair.
	KindQuery
	// KindFragmentBegin matches "#".
	KindFragmentBegin
	// KindEnd matches "!". Nothing may follow it.
	KindEnd
)

var tokenKindNames = [...]string{
	kindNone:           "none",
	KindSeparator:      "separator",
	KindExact:          "exact",
	KindCapture:        "capture",
	KindQueryBegin:     "query-begin",
	KindQuerySeparator: "query-separator",
	KindQuery:          "query",
	KindFragmentBegin:  "fragment-begin",
	KindEnd:            "end",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CaptureKind identifies the form of a capture placeholder.
type CaptureKind uint8

const (
	// CaptureUnnamed is {}: one segment, discarded.
	CaptureUnnamed CaptureKind = iota + 1
	// CaptureManyUnnamed is {*}: zero or more segments, discarded.
	CaptureManyUnnamed
	// CaptureNumberedUnnamed is {N}: exactly N segments, discarded.
	CaptureNumberedUnnamed
	// CaptureNamed is {name}: one segment, kept under name.
	CaptureNamed
	// CaptureManyNamed is {*:name}: the remaining segments, kept under name.
	CaptureManyNamed
	// CaptureNumberedNamed is {N:name}: exactly N segments, kept under name.
	CaptureNumberedNamed
)

var captureKindNames = [...]string{
	0:                      "none",
	CaptureUnnamed:         "unnamed",
	CaptureManyUnnamed:     "many-unnamed",
	CaptureNumberedUnnamed: "numbered-unnamed",
	CaptureNamed:           "named",
	CaptureManyNamed:       "many-named",
	CaptureNumberedNamed:   "numbered-named",
}

func (k CaptureKind) String() string {
	if int(k) < len(captureKindNames) {
		return captureKindNames[k]
	}
	return "CaptureKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k CaptureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CaptureSpec describes the body of a {...} placeholder.
// Name is set for the named forms, Count for the numbered forms.
type CaptureSpec struct {
	Kind  CaptureKind
	Name  string
	Count int
}

// Unnamed returns the {} capture.
func Unnamed() CaptureSpec { return CaptureSpec{Kind: CaptureUnnamed} }

// ManyUnnamed returns the {*} capture.
func ManyUnnamed() CaptureSpec { return CaptureSpec{Kind: CaptureManyUnnamed} }

// NumberedUnnamed returns the {N} capture.
func NumberedUnnamed(count int) CaptureSpec {
	return CaptureSpec{Kind: CaptureNumberedUnnamed, Count: count}
}

// Named returns the {name} capture.
func Named(name string) CaptureSpec { return CaptureSpec{Kind: CaptureNamed, Name: name} }

// ManyNamed returns the {*:name} capture.
func ManyNamed(name string) CaptureSpec { return CaptureSpec{Kind: CaptureManyNamed, Name: name} }

// NumberedNamed returns the {N:name} capture.
func NumberedNamed(count int, name string) CaptureSpec {
	return CaptureSpec{Kind: CaptureNumberedNamed, Count: count, Name: name}
}

// IsNamed reports whether the capture keeps its value under a name.
func (c CaptureSpec) IsNamed() bool {
	switch c.Kind {
	case CaptureNamed, CaptureManyNamed, CaptureNumberedNamed:
		return true
	}
	return false
}

// String renders the capture the way it is written in a matcher string.
func (c CaptureSpec) String() string {
	switch c.Kind {
	case CaptureUnnamed:
		return "{}"
	case CaptureManyUnnamed:
		return "{*}"
	case CaptureNumberedUnnamed:
		return "{" + strconv.Itoa(c.Count) + "}"
	case CaptureNamed:
		return "{" + c.Name + "}"
	case CaptureManyNamed:
		return "{*:" + c.Name + "}"
	case CaptureNumberedNamed:
		return "{" + strconv.Itoa(c.Count) + ":" + c.Name + "}"
	}
	return "{?}"
}

// ExactOrCapture is the value side of a query pair: either a literal or a
// capture. Capture is nil for literal values.
type ExactOrCapture struct {
	Exact   string
	Capture *CaptureSpec
}

// LiteralValue returns a literal query value.
func LiteralValue(text string) ExactOrCapture { return ExactOrCapture{Exact: text} }

// CaptureValue returns a capturing query value.
func CaptureValue(c CaptureSpec) ExactOrCapture { return ExactOrCapture{Capture: &c} }

// IsCapture reports whether the value is a capture.
func (v ExactOrCapture) IsCapture() bool { return v.Capture != nil }

func (v ExactOrCapture) String() string {
	if v.Capture != nil {
		return v.Capture.String()
	}
	return v.Exact
}

// RouteToken is one grammatical unit produced by Parse.
//
// Kind selects which fields are meaningful:
//   - KindExact: Text
//   - KindCapture: Capture
//   - KindQuery: Key and Value
//
// The remaining kinds carry no data.
type RouteToken struct {
	Kind    TokenKind
	Text    string
	Capture CaptureSpec
	Key     string
	Value   ExactOrCapture
}

// SeparatorToken returns a "/" token.
func SeparatorToken() RouteToken { return RouteToken{Kind: KindSeparator} }

// ExactToken returns a literal token.
func ExactToken(text string) RouteToken { return RouteToken{Kind: KindExact, Text: text} }

// CaptureToken returns a capture token.
func CaptureToken(c CaptureSpec) RouteToken { return RouteToken{Kind: KindCapture, Capture: c} }

// QueryBeginToken returns a "?" token.
func QueryBeginToken() RouteToken { return RouteToken{Kind: KindQueryBegin} }

// QuerySeparatorToken returns a "&" token.
func QuerySeparatorToken() RouteToken { return RouteToken{Kind: KindQuerySeparator} }

// QueryToken returns a key=value token.
func QueryToken(key string, value ExactOrCapture) RouteToken {
	return RouteToken{Kind: KindQuery, Key: key, Value: value}
}

// FragmentBeginToken returns a "#" token.
func FragmentBeginToken() RouteToken { return RouteToken{Kind: KindFragmentBegin} }

// EndToken returns a "!" token.
func EndToken() RouteToken { return RouteToken{Kind: KindEnd} }

// Source renders the token the way it is written in a matcher string.
func (t RouteToken) Source() string {
	switch t.Kind {
	case KindSeparator:
		return "/"
	case KindExact:
		return t.Text
	case KindCapture:
		return t.Capture.String()
	case KindQueryBegin:
		return "?"
	case KindQuerySeparator:
		return "&"
	case KindQuery:
		return t.Key + "=" + t.Value.String()
	case KindFragmentBegin:
		return "#"
	case KindEnd:
		return "!"
	}
	return ""
}

// String returns a debug form such as Exact("lorem") or Capture({id}).
func (t RouteToken) String() string {
	switch t.Kind {
	case KindExact:
		return fmt.Sprintf("Exact(%q)", t.Text)
	case KindCapture:
		return "Capture(" + t.Capture.String() + ")"
	case KindQuery:
		return "Query(" + t.Source() + ")"
	case KindSeparator:
		return "Separator"
	case KindQueryBegin:
		return "QueryBegin"
	case KindQuerySeparator:
		return "QuerySeparator"
	case KindFragmentBegin:
		return "FragmentBegin"
	case KindEnd:
		return "End"
	}
	return "Invalid"
}

// FieldMode restricts which capture forms are legal, matching the shape of
// the data the matches will populate.
type FieldMode uint8

const (
	// FieldsUnnamed accepts every capture form, including the positional
	// unnamed ones.
	FieldsUnnamed FieldMode = iota
	// FieldsNamed accepts only captures that bind to a name.
	FieldsNamed
)

func (m FieldMode) String() string {
	switch m {
	case FieldsUnnamed:
		return "unnamed"
	case FieldsNamed:
		return "named"
	}
	return "FieldMode(" + strconv.Itoa(int(m)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (m FieldMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FieldMode) UnmarshalText(text []byte) error {
	mode, err := ParseFieldMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseFieldMode converts "named" or "unnamed" (case-insensitive) to a FieldMode.
func ParseFieldMode(s string) (FieldMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unnamed":
		return FieldsUnnamed, nil
	case "named":
		return FieldsNamed, nil
	}
	return 0, fmt.Errorf("routeparser: unknown field mode %q (want \"named\" or \"unnamed\")", s)
}
