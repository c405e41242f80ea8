package pipeline

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
)

// Mode selects which top-level grammar entry point a parse runs (spec.md
// §6 — the mode sentinel token the lexer must emit first).
type Mode int

const (
	ModeProgram Mode = iota
	ModeStatement
	ModeExpression
)

// PipelineContext holds the data passed between pipeline stages: source in,
// AST (or errors) out. Unlike the teacher's context, there is no
// SymbolTable, TypeMap, trait bookkeeping, or module Loader — those back
// semantic analysis and evaluation, both explicit Non-goals of this parser
// (spec.md §1; see DESIGN.md).
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	Mode        Mode
	TokenStream TokenStream
	AstRoot     ast.Top
	Errors      []*diagnostics.Error
}

// NewPipelineContext creates a context ready for the lexer stage.
func NewPipelineContext(source string, mode Mode) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Mode:       mode,
	}
}
