package errors

import (
	"fmt"
	"strconv"
)

// Category groups codes by the part of routec that reports them. The code
// prefix follows the category: R route, C config, M manifest, S server/CLI.
type Category string

const (
	CategoryRoute    Category = "route"
	CategoryConfig   Category = "config"
	CategoryManifest Category = "manifest"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// Location points at a character inside a source. For matchers File names
// the manifest (or "<matcher>" for command-line input), Line is the route's
// position in it and Column the 1-based character of the failure.
type Location struct {
	File   string
	Line   int
	Column int
}

// String renders file:line or file:line:column.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	s := l.File + ":" + strconv.Itoa(l.Line)
	if l.Column > 0 {
		s += ":" + strconv.Itoa(l.Column)
	}
	return s
}

// Error is a coded error. New fills Category, Message, Detail and DocURL
// from the registry; the With methods add what only the caller knows.
type Error struct {
	Code     string
	Category Category
	Message  string
	Detail   string
	DocURL   string

	Location *Location
	// Context holds the source lines shown under the header. For route
	// errors it is the matcher itself.
	Context    []string
	Suggestion string
	Example    string

	Wrapped error
}

// Error returns "CODE: message", prefixed with the location when known.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Location != nil {
		msg = e.Location.String() + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code, so
// errors.Is(err, errors.New("M102")) matches any M102.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail replaces the registry detail.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

func (e *Error) WithContext(lines []string) *Error {
	e.Context = lines
	return e
}

func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered code. Unregistered codes yield an
// "Unknown error" carrying the code.
func New(code string) *Error {
	t, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: t.Category,
		Message:  t.Message,
		Detail:   t.Detail,
		DocURL:   t.DocURL,
	}
}

// FromError returns err unchanged when it is already an *Error and wraps it
// under code otherwise.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*Error); ok {
		return ce
	}
	return New(code).Wrap(err)
}

// Explain renders the registry entry for code, as printed by
// "routec explain".
func Explain(code string) (string, bool) {
	t, ok := GetTemplate(code)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s [%s] %s\n\n%s\n\n%s\n", code, t.Category, t.Message, t.Detail, t.DocURL), true
}
