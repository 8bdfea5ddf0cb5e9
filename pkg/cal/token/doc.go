// Package token defines the lexical vocabulary of the Callisto language.
//
// Tokens carry a Kind from a closed enumeration, a source position, and, for
// identifiers and literals only, the original text. Keyword and punctuation
// lookup tables are package-level and read-only after initialisation, so a
// single table set is shared by every lexer in the process.
package token
