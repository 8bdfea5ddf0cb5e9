package token

// keywords maps reserved words, including the word operators, to their kinds.
// The table is built once at package initialisation and never written again.
var keywords = map[string]Kind{
	"define":    Define,
	"constants": Constants,
	"variables": Variables,
	"if":        If,
	"elsif":     Elsif,
	"else":      Else,
	"then":      Then,
	"while":     While,
	"repeat":    Repeat,
	"until":     Until,
	"for":       For,
	"from":      From,
	"to":        To,
	"of":        Of,
	"var":       Var,
	"true":      True,
	"false":     False,
	"integer":   Integer,
	"real":      Real,
	"boolean":   Boolean,
	"character": Character,
	"string":    StringType,
	"array":     Array,
	"mod":       Mod,
	"not":       Not,
	"and":       And,
	"or":        Or,
}

// punctuation maps single-character symbols to their kinds. ':', '<' and '>'
// appear here in their one-character form; the lexer looks ahead for the
// two-character forms.
var punctuation = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'~': Negate,
	'>': Greater,
	'<': Less,
	'=': Equal,
	':': Colon,
	';': Semicolon,
	',': Comma,
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
}

// digraphs maps the first character of a two-character operator to the
// followers that complete it.
var digraphs = map[byte]map[byte]Kind{
	':': {'=': Assign},
	'<': {'=': LessEq, '>': NotEqual},
	'>': {'=': GreaterEq},
}

// spellings is the reverse of the three tables above.
var spellings = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords)+len(punctuation)+4)
	for word, k := range keywords {
		m[k] = word
	}
	for ch, k := range punctuation {
		m[k] = string(ch)
	}
	for first, followers := range digraphs {
		for second, k := range followers {
			m[k] = string([]byte{first, second})
		}
	}
	return m
}()

// Lookup classifies an identifier run, returning the keyword kind when the
// word is reserved and Identifier otherwise.
func Lookup(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Identifier
}

// Punctuation returns the kind of a single-character symbol.
func Punctuation(ch byte) (Kind, bool) {
	k, ok := punctuation[ch]
	return k, ok
}

// Digraph returns the kind of the two-character operator first+second.
func Digraph(first, second byte) (Kind, bool) {
	k, ok := digraphs[first][second]
	return k, ok
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Spelling returns the source form of a keyword or operator kind.
func Spelling(k Kind) string {
	if s, ok := spellings[k]; ok {
		return s
	}
	return k.String()
}
