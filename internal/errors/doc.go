// Package errors provides coded, actionable error messages for routematch.
//
// Each error has a code (e.g., "R101") registered with a short message, a
// longer explanation and a documentation URL. Route errors carry the
// matcher as context and point a caret at the failing character.
//
// # Error Codes
//
//   - R1xx: route matcher errors, one per parse failure reason
//   - C1xx: configuration errors
//   - M1xx: manifest errors
//   - S1xx: server and command-line errors
//
// # Usage
//
//	tokens, err := routeparser.Parse("/users//{id}", routeparser.FieldsNamed)
//	if perr, ok := err.(*routeparser.ParseError); ok {
//	    errors.PrintError(errors.FromParseError(perr, "routes.yaml", 3))
//	}
//	// Output:
//	// ERROR R101: Double slash in route
//	//
//	//   routes.yaml:3:8
//	//
//	//   →    3 │ /users//{id}
//	//          │        ^
//	//
//	//   Cannot have two slashes in a row ('//').
//	//
//	//   Hint: Remove the extra '/'
//	//
//	//   Learn more: https://routematch.dev/docs/errors/R101
package errors
