package lexer

import (
	"testing"

	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizeEveryOperatorAndKeyword(t *testing.T) {
	line := `define constants variables if elsif else then while repeat until for from to of var ` +
		`true false integer real boolean character string array + - * / mod ~ > < >= <= = <> not and or := : ; , ( ) [ ]`

	toks, err := Tokenize([]string{line})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []token.Kind{
		token.Define, token.Constants, token.Variables, token.If, token.Elsif, token.Else, token.Then,
		token.While, token.Repeat, token.Until, token.For, token.From, token.To, token.Of, token.Var,
		token.True, token.False, token.Integer, token.Real, token.Boolean, token.Character,
		token.StringType, token.Array,
		token.Plus, token.Minus, token.Star, token.Slash, token.Mod, token.Negate,
		token.Greater, token.Less, token.GreaterEq, token.LessEq, token.Equal, token.NotEqual,
		token.Not, token.And, token.Or, token.Assign, token.Colon, token.Semicolon, token.Comma,
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.EOL,
	}

	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
	for _, tok := range toks {
		if tok.Pos.Line != 1 {
			t.Errorf("token %v on line %d, want 1", tok, tok.Pos.Line)
		}
		if tok.Kind != token.Identifier && tok.Text != "" {
			t.Errorf("token %v should not carry text", tok)
		}
	}
}

func TestTokenizeLiterals(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind token.Kind
		wantText string
	}{
		{"real", "6.6", token.Number, "6.6"},
		{"integer", "42", token.Number, "42"},
		{"leading dot", ".5", token.Number, ".5"},
		{"string", `"hello world"`, token.String, "hello world"},
		{"empty string", `""`, token.String, ""},
		{"character", "'x'", token.Char, "x"},
		{"identifier", "counter2", token.Identifier, "counter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize([]string{tt.line})
			if err != nil {
				t.Fatalf("Tokenize(%q) error = %v", tt.line, err)
			}
			if len(toks) != 2 {
				t.Fatalf("got %d tokens, want 2: %v", len(toks), toks)
			}
			if toks[0].Kind != tt.wantKind || toks[0].Text != tt.wantText {
				t.Errorf("got %v, want %v(%q)", toks[0], tt.wantKind, tt.wantText)
			}
			if toks[1].Kind != token.EOL {
				t.Errorf("last token = %v, want EOL", toks[1])
			}
		})
	}
}

func TestTokenizeLexicalErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"second decimal point", "1.2.3"},
		{"lone dot", "x := ."},
		{"unterminated string", `write("abc)`},
		{"empty character", "c := ''"},
		{"oversized character", "c := 'ab'"},
		{"unterminated character", "c := 'a"},
		{"unrecognized character", "x := 1 @ 2"},
		{"stray comment close", "x := 1 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]string{tt.line})
			if !calerrors.Is(err, calerrors.KindLexical) {
				t.Fatalf("Tokenize(%q) error = %v, want lexical error", tt.line, err)
			}
			e, _ := calerrors.As(err)
			if e.Line() != 1 {
				t.Errorf("error line = %d, want 1", e.Line())
			}
		})
	}
}

func TestTokenizeIndentation(t *testing.T) {
	// Levels 0, 1, 2, 4, 1, 0.
	lines := []string{
		"a",
		"\tb",
		"        c",
		"\t\t\t\td",
		"    e",
		"f",
	}

	toks, err := Tokenize(lines)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	I, D, N, E := token.Indent, token.Dedent, token.Identifier, token.EOL
	want := []token.Kind{
		N, E,
		I, N, E,
		I, N, E,
		I, I, N, E,
		D, D, D, N, E,
		D, N, E,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestTokenizeTrailingDedents(t *testing.T) {
	toks, err := Tokenize([]string{"a", "\tb", "\t\tc"})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	n := len(toks)
	if toks[n-1].Kind != token.Dedent || toks[n-2].Kind != token.Dedent || toks[n-3].Kind != token.EOL {
		t.Errorf("expected EOL then two trailing DEDENTs, got %v", kinds(toks[n-3:]))
	}
}

func TestTokenizeDigraphLookahead(t *testing.T) {
	tests := []struct {
		line string
		want []token.Kind
	}{
		{"a<b", []token.Kind{token.Identifier, token.Less, token.Identifier, token.EOL}},
		{"a<>b", []token.Kind{token.Identifier, token.NotEqual, token.Identifier, token.EOL}},
		{"a<=b", []token.Kind{token.Identifier, token.LessEq, token.Identifier, token.EOL}},
		{"a>b", []token.Kind{token.Identifier, token.Greater, token.Identifier, token.EOL}},
		{"a:b", []token.Kind{token.Identifier, token.Colon, token.Identifier, token.EOL}},
		{"a:=b", []token.Kind{token.Identifier, token.Assign, token.Identifier, token.EOL}},
		{"a<", []token.Kind{token.Identifier, token.Less, token.EOL}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			toks, err := Tokenize([]string{tt.line})
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if got := kinds(toks); !equalKinds(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeComments(t *testing.T) {
	lines := []string{
		"x := 1 { starts here",
		"still a comment",
		"ends } y",
		"{ whole line }",
		"",
		"z",
	}

	toks, err := Tokenize(lines)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	// Lines 1-3 form one logical line; the comment-only and blank lines
	// contribute only EOLs.
	want := []token.Kind{
		token.Identifier, token.Assign, token.Number, token.Identifier, token.EOL,
		token.EOL,
		token.EOL,
		token.Identifier, token.EOL,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds mismatch\n got: %v\nwant: %v", got, want)
	}
	if toks[3].Pos.Line != 3 {
		t.Errorf("identifier after comment on line %d, want 3", toks[3].Pos.Line)
	}
}

func TestTokenizeCommentDoesNotDedent(t *testing.T) {
	lines := []string{
		"define start()",
		"\tx := 1",
		"{ note at column zero }",
		"",
		"\tx := 2",
	}

	toks, err := Tokenize(lines)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	indents, dedents := 0, 0
	for _, tok := range toks {
		switch tok.Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("indents=%d dedents=%d, want 1 and 1", indents, dedents)
	}
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	_, err := Tokenize([]string{"x := 1 { never closed"})
	if !calerrors.Is(err, calerrors.KindLexical) {
		t.Fatalf("error = %v, want lexical error", err)
	}
}
