package diagnostics

import (
	"fmt"
	"path/filepath"

	"github.com/funvibe/coolc/internal/token"
)

type ErrorCode string

const (
	// Front end
	ErrL001 ErrorCode = "L001" // lexical error
	ErrP001 ErrorCode = "P001" // syntax error

	// Semantic analysis
	ErrS001 ErrorCode = "S001" // structural: duplicates, illegal self / SELF_TYPE usage
	ErrS002 ErrorCode = "S002" // referential: undefined identifier, method or type
	ErrS003 ErrorCode = "S003" // inheritance: illegal or undefined parent, cycle
	ErrS004 ErrorCode = "S004" // type: subtype violations, comparison, override signature
	ErrS005 ErrorCode = "S005" // arity: wrong number of arguments
	ErrS006 ErrorCode = "S006" // program: missing entry point
)

type Kind int

const (
	KindSemantic Kind = iota
	KindLexical
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindLexical:
		return "Lexical error"
	case KindSyntax:
		return "Syntax error"
	default:
		return "Semantic error"
	}
}

// KindOf maps a code onto the phase that produces it.
func KindOf(code ErrorCode) Kind {
	switch code {
	case ErrL001:
		return KindLexical
	case ErrP001:
		return KindSyntax
	default:
		return KindSemantic
	}
}

// DiagnosticError is one reported problem. It renders as
//
//	"<file>", line L:C, <Kind>: <message>
//
// or, when it carries no position, as "<Kind>: <message>".
type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Token   token.Token
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func Errorf(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Kind() Kind { return KindOf(e.Code) }

// HasPosition reports whether the diagnostic points into a source file.
func (e *DiagnosticError) HasPosition() bool {
	return e.Token.Line > 0
}

// Location is the `"<file>", line L:C` prefix, empty for positionless errors.
func (e *DiagnosticError) Location() string {
	if !e.HasPosition() {
		return ""
	}
	return fmt.Sprintf("\"%s\", line %d:%d", filepath.Base(e.File), e.Token.Line, e.Token.Column)
}

func (e *DiagnosticError) Error() string {
	if !e.HasPosition() {
		return fmt.Sprintf("%s: %s", e.Kind(), e.Message)
	}
	return fmt.Sprintf("%s, %s: %s", e.Location(), e.Kind(), e.Message)
}
