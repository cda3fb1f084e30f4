package manifest

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

// Format is the encoding of a manifest document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file name or object key extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New("M103").
		WithDetail("Cannot tell the format of " + name + " from its extension")
}

// Manifest is a list of named routes.
type Manifest struct {
	Routes []Entry `json:"routes" yaml:"routes"`
}

// Entry is one named matcher. Mode is "named", "unnamed" or empty for the
// default mode.
type Entry struct {
	Name    string `json:"name" yaml:"name"`
	Matcher string `json:"matcher" yaml:"matcher"`
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// FieldMode resolves the entry's mode, using def when none is set.
func (e Entry) FieldMode(def routeparser.FieldMode) (routeparser.FieldMode, error) {
	if e.Mode == "" {
		return def, nil
	}
	return routeparser.ParseFieldMode(e.Mode)
}

// Decode parses a manifest document.
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, errors.New("M103").WithDetail("Unknown manifest format " + string(format))
	}
	if err != nil {
		return nil, errors.New("M101").
			WithDetail("Failed to decode " + string(format) + " manifest: " + err.Error()).
			Wrap(err)
	}
	return &m, nil
}

// ValidationError describes one invalid manifest entry.
type ValidationError struct {
	// Index is the position of the entry in the manifest.
	Index   int
	Name    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("route #%d: %s", e.Index+1, e.Message)
	}
	return fmt.Sprintf("route #%d (%s): %s", e.Index+1, e.Name, e.Message)
}

// MultiValidationError wraps every validation error of a manifest.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d manifest validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks that every entry has a unique name, a matcher and a known
// mode. Matchers themselves are checked by Compile.
func (m *Manifest) Validate() error {
	var errs []ValidationError
	seen := make(map[string]int, len(m.Routes))

	for i, e := range m.Routes {
		switch {
		case strings.TrimSpace(e.Name) == "":
			errs = append(errs, ValidationError{Index: i, Message: "name is empty"})
		default:
			if first, dup := seen[e.Name]; dup {
				errs = append(errs, ValidationError{
					Index:   i,
					Name:    e.Name,
					Message: fmt.Sprintf("duplicate name, first used by route #%d", first+1),
				})
			} else {
				seen[e.Name] = i
			}
		}
		if e.Matcher == "" {
			errs = append(errs, ValidationError{Index: i, Name: e.Name, Message: "matcher is empty"})
		}
		if _, err := e.FieldMode(routeparser.FieldsUnnamed); err != nil {
			errs = append(errs, ValidationError{
				Index:   i,
				Name:    e.Name,
				Message: fmt.Sprintf("unknown mode %q", e.Mode),
			})
		}
	}

	if len(errs) > 0 {
		return errors.New("M102").Wrap(&MultiValidationError{Errors: errs})
	}
	return nil
}
