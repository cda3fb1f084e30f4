package playground

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	rmerrors "github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/compiler"
	"github.com/vango-dev/routematch/pkg/routeparser"
)

const maxRequestBytes = 64 << 10

// Request is the body of /api/parse, /api/optimize and each /ws message.
type Request struct {
	Matcher string `json:"matcher"`
	Mode    string `json:"mode,omitempty"`
}

// Result is a successful compilation.
type Result struct {
	Matcher  string                     `json:"matcher"`
	Mode     routeparser.FieldMode      `json:"mode"`
	Tokens   []routeparser.RouteToken   `json:"tokens,omitempty"`
	Matchers []routeparser.MatcherToken `json:"matchers,omitempty"`
}

// ErrorBody describes a rejected matcher or a bad request.
type ErrorBody struct {
	Code        string                      `json:"code"`
	Message     string                      `json:"message"`
	Reason      routeparser.Reason          `json:"reason,omitempty"`
	Description string                      `json:"description,omitempty"`
	Expected    []routeparser.ExpectedToken `json:"expected,omitempty"`
	Offset      int                         `json:"offset"`
	Input       string                      `json:"input,omitempty"`
	Remaining   string                      `json:"remaining,omitempty"`
	Pretty      string                      `json:"pretty,omitempty"`
	Suggestion  string                      `json:"suggestion,omitempty"`
	Example     string                      `json:"example,omitempty"`
	DocURL      string                      `json:"docUrl,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

// RouteInfo is one manifest route in /api/routes.
type RouteInfo struct {
	Name     string                     `json:"name"`
	Matcher  string                     `json:"matcher"`
	Mode     routeparser.FieldMode      `json:"mode"`
	Anchored bool                       `json:"anchored"`
	Matchers []routeparser.MatcherToken `json:"matchers"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	s.handleCompile(w, r, true)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	s.handleCompile(w, r, false)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request, raw bool) {
	var req Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ErrorBody{
			Code:    "S101",
			Message: "request body must be a JSON object with a \"matcher\" field",
		}})
		return
	}

	route, body, status := s.compile(r, req)
	if body != nil {
		writeJSON(w, status, errorResponse{Error: *body})
		return
	}

	res := Result{Matcher: route.Matcher, Mode: route.Mode}
	if raw {
		res.Tokens = route.Tokens
	} else {
		res.Matchers = route.Matchers
	}
	writeJSON(w, http.StatusOK, res)
}

// compile runs one request. Exactly one of the route and the error body is
// set; status is the HTTP status to answer with.
func (s *Server) compile(r *http.Request, req Request) (*compiler.Route, *ErrorBody, int) {
	mode := s.defaultMode
	if req.Mode != "" {
		m, err := routeparser.ParseFieldMode(req.Mode)
		if err != nil {
			e := rmerrors.New("C102")
			return nil, &ErrorBody{Code: e.Code, Message: e.Message, Description: err.Error()}, http.StatusBadRequest
		}
		mode = m
	}

	route, err := s.compiler.Compile(r.Context(), req.Matcher, mode)
	if err != nil {
		var perr *routeparser.ParseError
		if !errors.As(err, &perr) {
			return nil, &ErrorBody{Code: "S100", Message: err.Error()}, http.StatusInternalServerError
		}
		return nil, parseErrorBody(perr), http.StatusUnprocessableEntity
	}
	return route, nil, http.StatusOK
}

func parseErrorBody(perr *routeparser.ParseError) *ErrorBody {
	coded := rmerrors.FromParseError(perr, "<matcher>", 1)
	return &ErrorBody{
		Code:        coded.Code,
		Message:     coded.Message,
		Reason:      perr.Reason,
		Description: perr.Description(),
		Expected:    perr.Expected,
		Offset:      perr.Offset(),
		Input:       perr.Input,
		Remaining:   perr.Remaining,
		Pretty:      perr.Pretty(),
		Suggestion:  coded.Suggestion,
		Example:     coded.Example,
		DocURL:      coded.DocURL,
	}
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := []RouteInfo{}
	if s.table != nil {
		for _, nr := range s.table.Routes() {
			routes = append(routes, routeInfo(nr.Name, nr.Route))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"routes": routes})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.table != nil {
		if nr, ok := s.table.Lookup(name); ok {
			writeJSON(w, http.StatusOK, routeInfo(nr.Name, nr.Route))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrorBody{
		Code:    "M102",
		Message: "no route named " + name,
	}})
}

func routeInfo(name string, route *compiler.Route) RouteInfo {
	return RouteInfo{
		Name:     name,
		Matcher:  route.Matcher,
		Mode:     route.Mode,
		Anchored: route.Anchored(),
		Matchers: route.Matchers,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
