package routeparser

import (
	"reflect"
	"testing"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name       string
		from       parserState
		kind       TokenKind
		want       parserState
		wantReason Reason
	}{
		{"start separator", parserState{}, KindSeparator, parserState{phasePath, KindSeparator}, ReasonNone},
		{"start exact", parserState{}, KindExact, parserState{phasePath, KindExact}, ReasonNone},
		{"start capture", parserState{}, KindCapture, parserState{phasePath, KindCapture}, ReasonNone},
		{"start query", parserState{}, KindQueryBegin, parserState{phaseFirstQuery, KindQueryBegin}, ReasonNone},
		{"start fragment", parserState{}, KindFragmentBegin, parserState{phaseFragment, KindFragmentBegin}, ReasonNone},
		{"start end", parserState{}, KindEnd, parserState{phaseEnded, KindEnd}, ReasonNone},
		{"start query separator", parserState{}, KindQuerySeparator, parserState{}, ReasonNotAllowedTransition},
		{"start query pair", parserState{}, KindQuery, parserState{}, ReasonNotAllowedTransition},

		{"separator twice", parserState{phasePath, KindSeparator}, KindSeparator, parserState{phasePath, KindSeparator}, ReasonNotAllowedTransition},
		{"exact twice", parserState{phasePath, KindExact}, KindExact, parserState{phasePath, KindExact}, ReasonNotAllowedTransition},
		{"capture twice", parserState{phasePath, KindCapture}, KindCapture, parserState{phasePath, KindCapture}, ReasonNotAllowedTransition},
		{"exact after capture", parserState{phasePath, KindCapture}, KindExact, parserState{phasePath, KindExact}, ReasonNone},
		{"path to query", parserState{phasePath, KindExact}, KindQueryBegin, parserState{phaseFirstQuery, KindQueryBegin}, ReasonNone},
		{"path to end", parserState{phasePath, KindSeparator}, KindEnd, parserState{phaseEnded, KindEnd}, ReasonNone},
		{"path ampersand", parserState{phasePath, KindExact}, KindQuerySeparator, parserState{phasePath, KindExact}, ReasonNotAllowedTransition},
		{"path bad prev", parserState{phasePath, KindQuery}, KindExact, parserState{phasePath, KindQuery}, ReasonInvalidState},

		{"first query pair", parserState{phaseFirstQuery, KindQueryBegin}, KindQuery, parserState{phaseFirstQuery, KindQuery}, ReasonNone},
		{"first query end", parserState{phaseFirstQuery, KindQueryBegin}, KindEnd, parserState{phaseFirstQuery, KindQueryBegin}, ReasonNotAllowedTransition},
		{"query to separator", parserState{phaseFirstQuery, KindQuery}, KindQuerySeparator, parserState{phaseNthQuery, KindQuerySeparator}, ReasonNone},
		{"nth query pair", parserState{phaseNthQuery, KindQuerySeparator}, KindQuery, parserState{phaseNthQuery, KindQuery}, ReasonNone},
		{"query to fragment", parserState{phaseNthQuery, KindQuery}, KindFragmentBegin, parserState{phaseFragment, KindFragmentBegin}, ReasonNone},
		{"query to end", parserState{phaseFirstQuery, KindQuery}, KindEnd, parserState{phaseEnded, KindEnd}, ReasonNone},
		{"query pair twice", parserState{phaseFirstQuery, KindQuery}, KindQuery, parserState{phaseFirstQuery, KindQuery}, ReasonNotAllowedTransition},
		{"query separator in first", parserState{phaseFirstQuery, KindQuerySeparator}, KindQuery, parserState{phaseFirstQuery, KindQuerySeparator}, ReasonInvalidState},
		{"query begin in nth", parserState{phaseNthQuery, KindQueryBegin}, KindQuery, parserState{phaseNthQuery, KindQueryBegin}, ReasonInvalidState},

		{"fragment exact", parserState{phaseFragment, KindFragmentBegin}, KindExact, parserState{phaseFragment, KindExact}, ReasonNone},
		{"fragment capture", parserState{phaseFragment, KindExact}, KindCapture, parserState{phaseFragment, KindCapture}, ReasonNone},
		{"fragment capture twice", parserState{phaseFragment, KindCapture}, KindCapture, parserState{phaseFragment, KindCapture}, ReasonNotAllowedTransition},
		{"fragment separator", parserState{phaseFragment, KindExact}, KindSeparator, parserState{phaseFragment, KindExact}, ReasonNotAllowedTransition},
		{"fragment end", parserState{phaseFragment, KindFragmentBegin}, KindEnd, parserState{phaseEnded, KindEnd}, ReasonNone},
		{"fragment bad prev", parserState{phaseFragment, KindSeparator}, KindExact, parserState{phaseFragment, KindSeparator}, ReasonInvalidState},

		{"after end", parserState{phaseEnded, KindEnd}, KindSeparator, parserState{phaseEnded, KindEnd}, ReasonTokensAfterEnd},
		{"end after end", parserState{phaseEnded, KindEnd}, KindEnd, parserState{phaseEnded, KindEnd}, ReasonTokensAfterEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := tt.from.transition(tt.kind)
			if reason != tt.wantReason {
				t.Fatalf("transition(%s) reason = %q, want %q", tt.kind, reason, tt.wantReason)
			}
			if got != tt.want {
				t.Errorf("transition(%s) = %+v, want %+v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name       string
		state      parserState
		want       []TokenKind
		wantReason Reason
	}{
		{
			name:  "start",
			state: parserState{},
			want: []TokenKind{
				KindSeparator, KindExact, KindCapture, KindQueryBegin, KindFragmentBegin, KindEnd,
			},
		},
		{
			name:  "after separator",
			state: parserState{phasePath, KindSeparator},
			want:  []TokenKind{KindExact, KindCapture, KindQueryBegin, KindFragmentBegin, KindEnd},
		},
		{
			name:  "after capture",
			state: parserState{phasePath, KindCapture},
			want:  []TokenKind{KindSeparator, KindExact, KindQueryBegin, KindFragmentBegin, KindEnd},
		},
		{
			name:  "after query begin",
			state: parserState{phaseFirstQuery, KindQueryBegin},
			want:  []TokenKind{KindQuery},
		},
		{
			name:  "after query pair",
			state: parserState{phaseNthQuery, KindQuery},
			want:  []TokenKind{KindQuerySeparator, KindFragmentBegin, KindEnd},
		},
		{
			name:  "fragment exact",
			state: parserState{phaseFragment, KindExact},
			want:  []TokenKind{KindCapture, KindEnd},
		},
		{
			name:       "ended",
			state:      parserState{phaseEnded, KindEnd},
			wantReason: ReasonTokensAfterEnd,
		},
		{
			name:       "impossible",
			state:      parserState{phasePath, KindEnd},
			wantReason: ReasonInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := tt.state.candidates()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("candidates() = %v, want %v", got, tt.want)
			}
			if reason != tt.wantReason {
				t.Errorf("candidates() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}
