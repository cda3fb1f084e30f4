package manifest

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/compiler"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

// NamedRoute is a compiled manifest entry.
type NamedRoute struct {
	Name string
	*compiler.Route
}

// Table holds the compiled routes of a manifest in manifest order.
type Table struct {
	routes []NamedRoute
	byName map[string]int
}

// Lookup returns the route called name.
func (t *Table) Lookup(name string) (NamedRoute, bool) {
	i, ok := t.byName[name]
	if !ok {
		return NamedRoute{}, false
	}
	return t.routes[i], true
}

// Routes returns the routes in manifest order.
func (t *Table) Routes() []NamedRoute {
	out := make([]NamedRoute, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int { return len(t.routes) }

// Failure is one manifest entry whose matcher was rejected.
type Failure struct {
	Index int
	Entry Entry
	Err   error
}

// CompileError reports every rejected entry of a manifest.
type CompileError struct {
	Source   string
	Failures []Failure
}

func (e *CompileError) Error() string {
	if len(e.Failures) == 1 {
		f := e.Failures[0]
		return fmt.Sprintf("%s: route %q: %v", e.Source, f.Entry.Name, f.Err)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %d routes failed to compile:\n", e.Source, len(e.Failures)))
	for i, f := range e.Failures {
		sb.WriteString(fmt.Sprintf("  %d. %q: %v\n", i+1, f.Entry.Name, f.Err))
	}
	return sb.String()
}

// Coded converts each failure to a coded error located at source:index+1,
// pointing at the failing character of the matcher.
func (e *CompileError) Coded() []*errors.Error {
	out := make([]*errors.Error, 0, len(e.Failures))
	for _, f := range e.Failures {
		var perr *routeparser.ParseError
		if stderrors.As(f.Err, &perr) {
			out = append(out, errors.FromParseError(perr, e.Source, f.Index+1))
			continue
		}
		out = append(out, errors.FromError(f.Err, "M102").WithLocation(e.Source, f.Index+1, 0))
	}
	return out
}

// Compile validates the manifest and compiles every entry with c. Entries
// without a mode use def. All rejected matchers are collected into a
// *CompileError; the table is returned only when every entry compiled.
func (m *Manifest) Compile(ctx context.Context, c *compiler.Compiler, def routeparser.FieldMode, source string) (*Table, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	table := &Table{
		routes: make([]NamedRoute, 0, len(m.Routes)),
		byName: make(map[string]int, len(m.Routes)),
	}
	var failures []Failure

	for i, e := range m.Routes {
		mode, err := e.FieldMode(def)
		if err != nil {
			failures = append(failures, Failure{Index: i, Entry: e, Err: err})
			continue
		}
		route, err := c.Compile(ctx, e.Matcher, mode)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			failures = append(failures, Failure{Index: i, Entry: e, Err: err})
			continue
		}
		table.byName[e.Name] = len(table.routes)
		table.routes = append(table.routes, NamedRoute{Name: e.Name, Route: route})
	}

	if len(failures) > 0 {
		return nil, &CompileError{Source: source, Failures: failures}
	}
	return table, nil
}

// Load reads a manifest from src and compiles it.
func Load(ctx context.Context, src Source, c *compiler.Compiler, def routeparser.FieldMode) (*Table, error) {
	m, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return m.Compile(ctx, c, def, src.Name())
}
