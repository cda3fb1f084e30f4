package routeparser

import "encoding/json"

type captureJSON struct {
	Kind  CaptureKind `json:"kind"`
	Name  string      `json:"name,omitempty"`
	Count int         `json:"count,omitempty"`
}

func (c CaptureSpec) toJSON() *captureJSON {
	return &captureJSON{Kind: c.Kind, Name: c.Name, Count: c.Count}
}

// MarshalJSON encodes the capture as {"kind":"named","name":"id"}.
func (c CaptureSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toJSON())
}

type valueJSON struct {
	Exact   *string      `json:"exact,omitempty"`
	Capture *captureJSON `json:"capture,omitempty"`
}

type routeTokenJSON struct {
	Kind    TokenKind    `json:"kind"`
	Text    *string      `json:"text,omitempty"`
	Capture *captureJSON `json:"capture,omitempty"`
	Key     string       `json:"key,omitempty"`
	Value   *valueJSON   `json:"value,omitempty"`
}

// MarshalJSON encodes only the fields meaningful for the token's kind.
func (t RouteToken) MarshalJSON() ([]byte, error) {
	out := routeTokenJSON{Kind: t.Kind}
	switch t.Kind {
	case KindExact:
		text := t.Text
		out.Text = &text
	case KindCapture:
		out.Capture = t.Capture.toJSON()
	case KindQuery:
		out.Key = t.Key
		if t.Value.Capture != nil {
			out.Value = &valueJSON{Capture: t.Value.Capture.toJSON()}
		} else {
			exact := t.Value.Exact
			out.Value = &valueJSON{Exact: &exact}
		}
	}
	return json.Marshal(out)
}

type matcherTokenJSON struct {
	Kind    MatcherKind  `json:"kind"`
	Text    *string      `json:"text,omitempty"`
	Capture *captureJSON `json:"capture,omitempty"`
}

// MarshalJSON encodes only the fields meaningful for the token's kind.
// Exact tokens always carry "text", even when it is empty.
func (t MatcherToken) MarshalJSON() ([]byte, error) {
	out := matcherTokenJSON{Kind: t.Kind}
	switch t.Kind {
	case MatcherExact:
		text := t.Text
		out.Text = &text
	case MatcherCapture:
		out.Capture = t.Capture.toJSON()
	}
	return json.Marshal(out)
}
