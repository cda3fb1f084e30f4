package routeparser

import (
	"reflect"
	"testing"
)

func TestOptimize(t *testing.T) {
	tests := []struct {
		input string
		want  []MatcherToken
	}{
		{
			input: "/lorem/ipsum",
			want:  []MatcherToken{MatchExact("/lorem/ipsum")},
		},
		{
			input: "/lorem/{ipsum}",
			want:  []MatcherToken{MatchExact("/lorem/"), MatchCapture(Named("ipsum"))},
		},
		{
			input: "!",
			want:  []MatcherToken{MatchExact(""), MatchEnd()},
		},
		{
			input: "{id}",
			want:  []MatcherToken{MatchExact(""), MatchCapture(Named("id"))},
		},
		{
			input: "/{id}!",
			want: []MatcherToken{
				MatchExact("/"), MatchCapture(Named("id")), MatchExact(""), MatchEnd(),
			},
		},
		{
			input: "?lorem={cap}!",
			want: []MatcherToken{
				MatchExact("?lorem="), MatchCapture(Named("cap")), MatchExact(""), MatchEnd(),
			},
		},
		{
			input: "?a=b&c=d#e",
			want:  []MatcherToken{MatchExact("?a=b&c=d#e")},
		},
		{
			input: "/a?b={c}&d=e",
			want: []MatcherToken{
				MatchExact("/a?b="), MatchCapture(Named("c")), MatchExact("&d=e"),
			},
		},
		{
			input: "/users/{id}/posts/{*:rest}#{section}!",
			want: []MatcherToken{
				MatchExact("/users/"),
				MatchCapture(Named("id")),
				MatchExact("/posts/"),
				MatchCapture(ManyNamed("rest")),
				MatchExact("#"),
				MatchCapture(Named("section")),
				MatchExact(""),
				MatchEnd(),
			},
		},
		{
			input: "/{}/{3}",
			want: []MatcherToken{
				MatchExact("/"), MatchCapture(Unnamed()),
				MatchExact("/"), MatchCapture(NumberedUnnamed(3)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAndOptimize(tt.input, FieldsUnnamed)
			if err != nil {
				t.Fatalf("ParseAndOptimize(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAndOptimize(%q) =\n  %v\nwant\n  %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptimize_Empty(t *testing.T) {
	if got := Optimize(nil); len(got) != 0 {
		t.Errorf("Optimize(nil) = %v, want empty", got)
	}
}

func TestParseAndOptimize_Error(t *testing.T) {
	got, err := ParseAndOptimize("//", FieldsUnnamed)
	if err == nil {
		t.Fatalf("ParseAndOptimize(\"//\") = %v, want error", got)
	}
	if got != nil {
		t.Errorf("ParseAndOptimize returned tokens alongside error: %v", got)
	}
}

var optimizerInputs = []string{
	"/",
	"!",
	"/lorem",
	"/lorem/{ipsum}",
	"/lorem/{ipsum}/dolor",
	"/{a}x{b}",
	"/{*}",
	"/{*:rest}!",
	"/{12:pairs}/tail",
	"?a=b",
	"?a={b}",
	"?a={b}&c=d&e={f}#g{h}!",
	"#{frag}",
	"lorem{ipsum}dolor",
	"/héllo/{wörld}",
}

func TestOptimize_NoAdjacentExact(t *testing.T) {
	for _, input := range optimizerInputs {
		got, err := ParseAndOptimize(input, FieldsUnnamed)
		if err != nil {
			t.Fatalf("ParseAndOptimize(%q) error: %v", input, err)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Kind == MatcherExact && got[i-1].Kind == MatcherExact {
				t.Errorf("ParseAndOptimize(%q): adjacent exact tokens at %d: %v", input, i, got)
			}
		}
	}
}

func TestOptimize_EndLast(t *testing.T) {
	for _, input := range optimizerInputs {
		got, err := ParseAndOptimize(input, FieldsUnnamed)
		if err != nil {
			t.Fatalf("ParseAndOptimize(%q) error: %v", input, err)
		}
		for i, tok := range got {
			if tok.Kind == MatcherEnd && i != len(got)-1 {
				t.Errorf("ParseAndOptimize(%q): End at %d of %d", input, i, len(got))
			}
		}
	}
}

func TestCompact_Idempotent(t *testing.T) {
	for _, input := range optimizerInputs {
		got, err := ParseAndOptimize(input, FieldsUnnamed)
		if err != nil {
			t.Fatalf("ParseAndOptimize(%q) error: %v", input, err)
		}
		if compacted := Compact(got); !reflect.DeepEqual(compacted, got) {
			t.Errorf("Compact changed optimized %q:\n  %v\n  %v", input, got, compacted)
		}
	}
}

func TestCompact_MergesExact(t *testing.T) {
	in := []MatcherToken{
		MatchExact("/a"), MatchExact("/b"), MatchCapture(Named("c")), MatchExact(""), MatchExact("d"),
	}
	want := []MatcherToken{MatchExact("/a/b"), MatchCapture(Named("c")), MatchExact("d")}
	if got := Compact(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Compact() = %v, want %v", got, want)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	for _, input := range optimizerInputs {
		got, err := ParseAndOptimize(input, FieldsUnnamed)
		if err != nil {
			t.Fatalf("ParseAndOptimize(%q) error: %v", input, err)
		}
		if rendered := Render(got); rendered != input {
			t.Errorf("Render(ParseAndOptimize(%q)) = %q", input, rendered)
		}
	}
}

func TestMatcherToken_String(t *testing.T) {
	tests := []struct {
		tok  MatcherToken
		want string
	}{
		{MatchExact("/lorem/"), `Exact("/lorem/")`},
		{MatchCapture(ManyNamed("rest")), "Capture({*:rest})"},
		{MatchEnd(), "End"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
