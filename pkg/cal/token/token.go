package token

import "fmt"

// Kind is the closed set of token kinds produced by the lexer.
type Kind uint8

const (
	Illegal Kind = iota

	// Literal-carrying kinds. Only these keep their source text.
	Identifier
	Number
	String
	Char

	// Layout
	EOL
	Indent
	Dedent

	// Keywords
	Define
	Constants
	Variables
	If
	Elsif
	Else
	Then
	While
	Repeat
	Until
	For
	From
	To
	Of
	Var
	True
	False
	Integer
	Real
	Boolean
	Character
	StringType
	Array

	// Operators
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Mod       // mod
	Negate    // ~
	Greater   // >
	Less      // <
	GreaterEq // >=
	LessEq    // <=
	Equal     // =
	NotEqual  // <>
	Not       // not
	And       // and
	Or        // or
	Assign    // :=

	// Punctuation
	Colon     // :
	Semicolon // ;
	Comma     // ,
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Illegal:    "ILLEGAL",
	Identifier: "IDENTIFIER",
	Number:     "NUMBER",
	String:     "STRING",
	Char:       "CHAR",
	EOL:        "EOL",
	Indent:     "INDENT",
	Dedent:     "DEDENT",
	Define:     "DEFINE",
	Constants:  "CONSTANTS",
	Variables:  "VARIABLES",
	If:         "IF",
	Elsif:      "ELSIF",
	Else:       "ELSE",
	Then:       "THEN",
	While:      "WHILE",
	Repeat:     "REPEAT",
	Until:      "UNTIL",
	For:        "FOR",
	From:       "FROM",
	To:         "TO",
	Of:         "OF",
	Var:        "VAR",
	True:       "TRUE",
	False:      "FALSE",
	Integer:    "INTEGER",
	Real:       "REAL",
	Boolean:    "BOOLEAN",
	Character:  "CHARACTER",
	StringType: "STRING_TYPE",
	Array:      "ARRAY",
	Plus:       "PLUS",
	Minus:      "MINUS",
	Star:       "TIMES",
	Slash:      "DIVIDE",
	Mod:        "MOD",
	Negate:     "NEGATE",
	Greater:    "GREATER",
	Less:       "LESS",
	GreaterEq:  "GREATER_EQUAL",
	LessEq:     "LESS_EQUAL",
	Equal:      "EQUAL",
	NotEqual:   "NOT_EQUAL",
	Not:        "NOT",
	And:        "AND",
	Or:         "OR",
	Assign:     "ASSIGN",
	Colon:      "COLON",
	Semicolon:  "SEMICOLON",
	Comma:      "COMMA",
	LParen:     "LPAREN",
	RParen:     "RPAREN",
	LBracket:   "LBRACKET",
	RBracket:   "RBRACKET",
}

// String returns the upper-case name of the kind, as shown in token dumps.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// HasText reports whether tokens of this kind carry source text.
func (k Kind) HasText() bool {
	switch k {
	case Identifier, Number, String, Char:
		return true
	}
	return false
}

// Pos is a 1-based line and column in the source.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Position returns p. Embedding Pos gives AST nodes their Position method.
func (p Pos) Position() Pos {
	return p
}

// LineCol renders the position as "line:column". Pos has no String method
// because AST nodes embed it.
func (p Pos) LineCol() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit.
type Token struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
	Pos  Pos    `json:"pos"`
}

// String renders the token for dumps and error messages.
func (t Token) String() string {
	if t.Kind.HasText() {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
	return t.Kind.String()
}

// Describe returns the source spelling of the token when one exists, falling
// back to the kind name. Used when naming the offending construct in errors.
func (t Token) Describe() string {
	if t.Kind.HasText() {
		return t.Text
	}
	if s, ok := spellings[t.Kind]; ok {
		return s
	}
	return t.Kind.String()
}

// MarshalText lets kinds appear by name in JSON token dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
