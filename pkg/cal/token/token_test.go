package token

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		want Kind
	}{
		{"define", Define},
		{"elsif", Elsif},
		{"mod", Mod},
		{"and", And},
		{"string", StringType},
		{"true", True},
		{"Define", Identifier}, // case sensitive
		{"counter", Identifier},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Lookup(tt.word); got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestSpelling(t *testing.T) {
	tests := map[Kind]string{
		Assign:    ":=",
		NotEqual:  "<>",
		LessEq:    "<=",
		Negate:    "~",
		Variables: "variables",
		Or:        "or",
	}
	for kind, want := range tests {
		if got := Spelling(kind); got != want {
			t.Errorf("Spelling(%v) = %q, want %q", kind, got, want)
		}
	}
}

func TestDigraph(t *testing.T) {
	tests := []struct {
		first, second byte
		want          Kind
		ok            bool
	}{
		{':', '=', Assign, true},
		{'<', '=', LessEq, true},
		{'<', '>', NotEqual, true},
		{'>', '=', GreaterEq, true},
		{'>', '<', Illegal, false},
		{'=', '=', Illegal, false},
	}
	for _, tt := range tests {
		got, ok := Digraph(tt.first, tt.second)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Digraph(%q, %q) = %v, %v; want %v, %v", tt.first, tt.second, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := Illegal; k <= RBracket; k++ {
		if strings.HasPrefix(k.String(), "Kind(") {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestTokenDescribe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Identifier, Text: "total"}, "total"},
		{Token{Kind: Assign}, ":="},
		{Token{Kind: EOL}, "EOL"},
	}
	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestTokenJSON(t *testing.T) {
	data, err := json.Marshal(Token{Kind: Number, Text: "6.6", Pos: Pos{Line: 3, Column: 7}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"kind":"NUMBER","text":"6.6","pos":{"line":3,"column":7}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
