package pipeline

import (
	"github.com/corelang/pyparse/internal/token"
)

// Processor is any component that can process a PipelineContext and return
// a (possibly the same, mutated) context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// TokenStream is the contract the parser consumes: a lookahead buffer over
// whatever produced the tokens (spec.md §4.1/§5 — the parser never reaches
// behind this interface into the lexer's internals).
type TokenStream interface {
	// Next consumes and returns the next token from the stream.
	Next() token.Token

	// Peek returns up to n upcoming tokens without consuming them. If
	// fewer than n remain, it returns what's left.
	Peek(n int) []token.Token
}
