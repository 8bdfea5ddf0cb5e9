package lexer

import (
	"unicode/utf8"

	calerrors "mercator-hq/callisto/pkg/cal/errors"
	"mercator-hq/callisto/pkg/cal/token"
)

// spacesPerLevel is the number of spaces that make up one indentation level.
const spacesPerLevel = 4

// Lexer converts source lines into tokens. A Lexer holds state across lines
// (open comments, indentation) and is used for one source only.
type Lexer struct {
	tokens []token.Token

	// inComment is set between '{' and '}', which may span lines.
	inComment bool

	// level is the indentation level last surfaced to the parser.
	level int

	// pendingLevel is the level measured for the current line; it is applied
	// when the line's first token is emitted.
	pendingLevel int
	pending      bool

	line int
}

// New creates a lexer.
func New() *Lexer {
	return &Lexer{}
}

// Tokenize converts lines into an ordered token list.
func Tokenize(lines []string) ([]token.Token, error) {
	return New().Tokenize(lines)
}

// Tokenize scans every line and returns the tokens, ending with the DEDENT
// tokens needed to return to indentation level zero.
func (l *Lexer) Tokenize(lines []string) ([]token.Token, error) {
	for i, text := range lines {
		l.line = i + 1
		if err := l.scanLine(text); err != nil {
			return nil, err
		}
	}

	if l.inComment {
		return nil, calerrors.New(calerrors.KindLexical, token.Pos{Line: l.line, Column: 1}, "{",
			"unterminated comment at end of source")
	}

	end := token.Pos{Line: max(l.line, 1), Column: 1}
	for ; l.level > 0; l.level-- {
		l.tokens = append(l.tokens, token.Token{Kind: token.Dedent, Pos: end})
	}

	return l.tokens, nil
}

// Tokens returns the tokens scanned so far. After a failed Tokenize it
// holds everything before the offending character.
func (l *Lexer) Tokens() []token.Token {
	return l.tokens
}

func (l *Lexer) scanLine(text string) error {
	col := 0
	l.pending = false

	if !l.inComment {
		l.pendingLevel, col = measureIndent(text)
		l.pending = true
	}

	for col < len(text) {
		ch := text[col]

		if l.inComment {
			if ch == '}' {
				l.inComment = false
			}
			col++
			continue
		}

		var err error
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			col++
		case ch == '{':
			l.inComment = true
			col++
		case ch == '}':
			return l.errorf(col, "}", "comment close without a matching '{'")
		case isDigit(ch) || ch == '.':
			col, err = l.scanNumber(text, col)
		case isLetter(ch):
			col = l.scanWord(text, col)
		case ch == '"':
			col, err = l.scanString(text, col)
		case ch == '\'':
			col, err = l.scanChar(text, col)
		case ch == ':' || ch == '<' || ch == '>':
			col = l.scanDigraph(text, col)
		default:
			kind, ok := token.Punctuation(ch)
			if !ok {
				r, _ := utf8.DecodeRuneInString(text[col:])
				return l.errorf(col, string(r), "unrecognized character %q", r)
			}
			l.emit(kind, "", col)
			col++
		}
		if err != nil {
			return err
		}
	}

	if !l.inComment {
		l.tokens = append(l.tokens, token.Token{
			Kind: token.EOL,
			Pos:  token.Pos{Line: l.line, Column: len(text) + 1},
		})
		l.pending = false
	}

	return nil
}

// measureIndent returns the indentation level of text and the width of its
// leading whitespace. A tab is one level; four spaces are one level.
func measureIndent(text string) (level, width int) {
	tabs, spaces := 0, 0
	for width < len(text) {
		switch text[width] {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/spacesPerLevel, width
		}
		width++
	}
	return tabs + spaces/spacesPerLevel, width
}

// emit appends a token, first surfacing any indentation change measured for
// the current line.
func (l *Lexer) emit(kind token.Kind, text string, col int) {
	if l.pending {
		l.resolveIndent()
	}
	l.tokens = append(l.tokens, token.Token{
		Kind: kind,
		Text: text,
		Pos:  token.Pos{Line: l.line, Column: col + 1},
	})
}

func (l *Lexer) resolveIndent() {
	l.pending = false

	pos := token.Pos{Line: l.line, Column: 1}
	for l.level < l.pendingLevel {
		l.tokens = append(l.tokens, token.Token{Kind: token.Indent, Pos: pos})
		l.level++
	}
	for l.level > l.pendingLevel {
		l.tokens = append(l.tokens, token.Token{Kind: token.Dedent, Pos: pos})
		l.level--
	}
}

func (l *Lexer) scanNumber(text string, start int) (int, error) {
	col := start
	dots := 0
	digits := 0

	for col < len(text) && (isDigit(text[col]) || text[col] == '.') {
		if text[col] == '.' {
			dots++
			if dots > 1 {
				return col, l.errorf(col, text[start:col+1], "second decimal point in numeric literal %q", text[start:col+1])
			}
		} else {
			digits++
		}
		col++
	}

	if digits == 0 {
		return col, l.errorf(start, text[start:col], "malformed numeric literal %q", text[start:col])
	}

	l.emit(token.Number, text[start:col], start)
	return col, nil
}

func (l *Lexer) scanWord(text string, start int) int {
	col := start
	for col < len(text) && (isLetter(text[col]) || isDigit(text[col])) {
		col++
	}

	word := text[start:col]
	kind := token.Lookup(word)
	if kind == token.Identifier {
		l.emit(kind, word, start)
	} else {
		l.emit(kind, "", start)
	}
	return col
}

func (l *Lexer) scanString(text string, start int) (int, error) {
	for col := start + 1; col < len(text); col++ {
		if text[col] == '"' {
			l.emit(token.String, text[start+1:col], start)
			return col + 1, nil
		}
	}
	return len(text), l.errorf(start, text[start:], "unterminated string literal")
}

// scanChar accepts exactly one character between single quotes.
func (l *Lexer) scanChar(text string, start int) (int, error) {
	if start+1 >= len(text) || text[start+1] == '\'' {
		return start, l.errorf(start, text[start:min(start+2, len(text))], "malformed character literal")
	}

	r, size := utf8.DecodeRuneInString(text[start+1:])
	closing := start + 1 + size
	if closing >= len(text) || text[closing] != '\'' {
		end := min(closing+1, len(text))
		return start, l.errorf(start, text[start:end], "character literal must hold exactly one character")
	}

	l.emit(token.Char, string(r), start)
	return closing + 1, nil
}

// scanDigraph emits the two-character kind when the follower qualifies and
// the single-character kind otherwise.
func (l *Lexer) scanDigraph(text string, col int) int {
	if col+1 < len(text) {
		if kind, ok := token.Digraph(text[col], text[col+1]); ok {
			l.emit(kind, "", col)
			return col + 2
		}
	}
	single, _ := token.Punctuation(text[col])
	l.emit(single, "", col)
	return col + 1
}

func (l *Lexer) errorf(col int, construct, format string, args ...any) error {
	return calerrors.Newf(calerrors.KindLexical, token.Pos{Line: l.line, Column: col + 1}, construct, format, args...)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
