package errors

import (
	"sort"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://routematch.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Route Errors (R100-R199)
	// ============================================

	"R100": {
		Category: CategoryRoute,
		Message:  "Invalid route matcher",
		Detail:   "None of the tokens allowed at this position matched.",
		DocURL:   docBase + "R100",
	},
	"R101": {
		Category: CategoryRoute,
		Message:  "Double slash in route",
		Detail:   "Path segments cannot be empty, so '/' cannot follow '/'.",
		DocURL:   docBase + "R101",
	},
	"R102": {
		Category: CategoryRoute,
		Message:  "Query parameter before '?'",
		Detail:   "'&' separates query parameters but the query section must be opened with '?'.",
		DocURL:   docBase + "R102",
	},
	"R103": {
		Category: CategoryRoute,
		Message:  "Adjacent captures",
		Detail:   "Two captures in a row cannot be told apart when matching.",
		DocURL:   docBase + "R103",
	},
	"R104": {
		Category: CategoryRoute,
		Message:  "Multiple '?' in route",
		Detail:   "Only one '?' may open the query section.",
		DocURL:   docBase + "R104",
	},
	"R105": {
		Category: CategoryRoute,
		Message:  "Bad identifier character",
		Detail:   "Capture names and query keys start with a letter or '_' and continue with letters, digits or '_'.",
		DocURL:   docBase + "R105",
	},
	"R106": {
		Category: CategoryRoute,
		Message:  "Token not allowed here",
		Detail:   "The token is valid on its own but may not follow the previous one.",
		DocURL:   docBase + "R106",
	},
	"R107": {
		Category: CategoryRoute,
		Message:  "Invalid parser state",
		Detail:   "The parser reached a state that should not occur. This is a bug.",
		DocURL:   docBase + "R107",
	},
	"R108": {
		Category: CategoryRoute,
		Message:  "Tokens after end",
		Detail:   "'!' marks the end of the route; nothing may follow it.",
		DocURL:   docBase + "R108",
	},

	// ============================================
	// Config Errors (C100-C199)
	// ============================================

	"C100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "routec.json contains invalid values.",
		DocURL:   docBase + "C100",
	},
	"C101": {
		Category: CategoryConfig,
		Message:  "Configuration unreadable",
		Detail:   "routec.json exists but could not be read or decoded.",
		DocURL:   docBase + "C101",
	},
	"C102": {
		Category: CategoryConfig,
		Message:  "Unknown field mode",
		Detail:   "Field mode must be \"named\" or \"unnamed\".",
		DocURL:   docBase + "C102",
	},
	"C103": {
		Category: CategoryConfig,
		Message:  "Configuration already exists",
		Detail:   "routec init will not replace an existing routec.json.",
		DocURL:   docBase + "C103",
	},

	// ============================================
	// Manifest Errors (M100-M199)
	// ============================================

	"M100": {
		Category: CategoryManifest,
		Message:  "Manifest not found",
		Detail:   "The route manifest could not be loaded from its source.",
		DocURL:   docBase + "M100",
	},
	"M101": {
		Category: CategoryManifest,
		Message:  "Manifest decode failed",
		Detail:   "The manifest is not valid JSON or YAML.",
		DocURL:   docBase + "M101",
	},
	"M102": {
		Category: CategoryManifest,
		Message:  "Invalid manifest",
		Detail:   "Every route needs a unique name, a matcher and a known mode.",
		DocURL:   docBase + "M102",
	},
	"M103": {
		Category: CategoryManifest,
		Message:  "Unsupported manifest format",
		Detail:   "Manifests must end in .json, .yaml or .yml.",
		DocURL:   docBase + "M103",
	},

	// ============================================
	// Server and CLI Errors (S100-S199)
	// ============================================

	"S100": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The playground server stopped with an error.",
		DocURL:   docBase + "S100",
	},
	"S101": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with missing or conflicting arguments.",
		DocURL:   docBase + "S101",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
