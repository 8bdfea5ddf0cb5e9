package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"mercator-hq/callisto/pkg/cal/token"
)

// Kind categorizes an error raised by one of the pipeline stages.
type Kind string

const (
	KindLexical    Kind = "lexical"    // Malformed literal or unrecognized character
	KindSyntax     Kind = "syntax"     // Missing required token or clause
	KindName       Kind = "name"       // Undeclared variable/function, arity mismatch
	KindMutability Kind = "mutability" // Write to a non-changeable value
	KindType       Kind = "type"       // Operand kind mismatch or undefined operator
	KindRange      Kind = "range"      // Declared range, array bound or call depth violated
	KindArithmetic Kind = "arithmetic" // Integer division by zero
	KindIO         Kind = "io"         // Source file or built-in I/O failure
)

// Error is a language error carrying the position and construct it concerns.
type Error struct {
	Kind       Kind      // Category of error
	Message    string    // Error message
	File       string    // Source file, when known
	Pos        token.Pos // Source position (line is always set for stage errors)
	Construct  string    // Offending identifier or construct
	Context    string    // Excerpt of the surrounding source lines
	Suggestion string    // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Construct != "" && !strings.Contains(e.Message, e.Construct) {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Construct))
	}
	if e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf(" at line %d", e.Pos.Line))
	}

	if e.File != "" && e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("\n  --> %s:%s", e.File, e.Pos.LineCol()))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Line returns the source line of the error.
func (e *Error) Line() int {
	return e.Pos.Line
}

// New creates an error of the given kind.
func New(kind Kind, pos token.Pos, construct, message string) *Error {
	return &Error{
		Kind:      kind,
		Message:   message,
		Pos:       pos,
		Construct: construct,
	}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, pos token.Pos, construct, format string, args ...any) *Error {
	return New(kind, pos, construct, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}

// ErrorList collects errors across several files, as reported by check.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByKind returns all errors of the given kind.
func (el *ErrorList) ByKind(kind Kind) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Kind == kind {
			result = append(result, err)
		}
	}
	return result
}
