// Package routeparser compiles route matcher strings into token sequences.
//
// A matcher string describes the path segments, query parameters and fragment
// of a URL, with capture placeholders and an optional explicit terminator:
//
//	/users/{id}/posts/{*:rest}?sort={order}#{section}!
//
// Compilation happens in two passes:
//   - Parse runs a state machine over the input and produces []RouteToken,
//     rejecting strings outside the grammar with a *ParseError that records
//     where parsing stopped, why, and which tokens would have been accepted.
//   - Optimize folds runs of literal tokens into single Exact matcher tokens,
//     leaving captures and the terminator untouched.
//
// # Grammar
//
//	matcher   := path? query? fragment? end?
//	path      := ("/" segment)+
//	segment   := lit | capture
//	query     := "?" pair ("&" pair)*
//	pair      := ident "=" (lit | capture)
//	fragment  := "#" (lit | capture)*
//	end       := "!"
//	capture   := "{" ("*" | "*:" ident | digits | digits ":" ident | ident) "}"
//
// A literal is one or more characters other than / ? & # { } ! and =.
// An identifier starts with a letter or underscore and continues with
// letters, digits or underscores.
//
// # Captures
//
//	{}          capture one segment, discard it
//	{*}         capture any number of segments, discard them
//	{3}         capture exactly three segments, discard them
//	{name}      capture one segment as name
//	{*:name}    capture the remaining segments as name
//	{3:name}    capture exactly three segments as name
//
// With FieldsNamed only the named forms are accepted. Query values and
// fragments accept single-segment captures only.
//
// # Usage
//
//	tokens, err := routeparser.ParseAndOptimize("/lorem/{ipsum}", routeparser.FieldsNamed)
//	if err != nil {
//	    var perr *routeparser.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Pretty())
//	    }
//	    return err
//	}
//	// tokens: [Exact("/lorem/") Capture({ipsum})]
//
// Both passes are pure functions with no shared state and are safe to call
// from multiple goroutines.
package routeparser
