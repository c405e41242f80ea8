// Package diagnostics is the error-reporting vocabulary shared by the lexer
// and the parser: a small catalog of error codes, each with a message
// template, carrying the token location where the failure was detected.
package diagnostics

import (
	"fmt"

	"github.com/corelang/pyparse/internal/token"
)

// Phase names the stage of the pipeline that raised the error.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParser Phase = "parser"
)

// Code is the taxonomy from the specification's Error Handling Design: a
// small, closed set of fatal error kinds, never a format string.
type Code string

const (
	StructuralSyntax       Code = "StructuralSyntax"
	UnexpectedIndent       Code = "UnexpectedIndent"
	UnexpectedDedent       Code = "UnexpectedDedent"
	FormattedStringError   Code = "FormattedStringError"
	NonDefaultAfterDefault Code = "NonDefaultAfterDefault"
	PositionalAfterKeyword Code = "PositionalAfterKeyword"
	LexicalError           Code = "LexicalError"
)

var templates = map[Code]string{
	StructuralSyntax:       "unexpected token %s",
	UnexpectedIndent:       "unexpected indent",
	UnexpectedDedent:       "unexpected dedent",
	FormattedStringError:   "malformed formatted string: %s",
	NonDefaultAfterDefault: "non-default argument %q follows default argument",
	PositionalAfterKeyword: "positional argument follows keyword argument",
	LexicalError:           "%s",
}

// Error is a single fatal diagnostic. The parser surfaces the first one it
// encounters and stops; there is no error recovery (spec.md §4.7/§7).
type Error struct {
	Code  Code
	Phase Phase
	Token token.Token
	Args  []interface{}
}

func (e *Error) Error() string {
	tmpl, ok := templates[e.Code]
	if !ok {
		tmpl = string(e.Code)
	}
	msg := tmpl
	args := e.Args
	if len(args) == 0 && e.Code == StructuralSyntax {
		text := e.Token.Lexeme
		if text == "" {
			text = string(e.Token.Type)
		}
		args = []interface{}{text}
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(tmpl, args...)
	}
	return fmt.Sprintf("%d:%d [%s] %s", e.Token.Line, e.Token.Column, e.Code, msg)
}

// New builds a parser-phase diagnostic at tok's location.
func New(code Code, tok token.Token, args ...interface{}) *Error {
	return &Error{Code: code, Phase: PhaseParser, Token: tok, Args: args}
}

// NewLexer builds a lexer-phase diagnostic at tok's location.
func NewLexer(code Code, tok token.Token, args ...interface{}) *Error {
	return &Error{Code: code, Phase: PhaseLexer, Token: tok, Args: args}
}
