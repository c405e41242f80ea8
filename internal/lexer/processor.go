package lexer

import (
	"github.com/corelang/pyparse/internal/pipeline"
	"github.com/corelang/pyparse/internal/token"
)

const lookaheadBufferSize = 10

// bufferedLexer adapts a Lexer to pipeline.TokenStream, buffering just
// enough tokens to satisfy Peek.
type bufferedLexer struct {
	l      *Lexer
	buffer []token.Token
	pos    int
}

func newBufferedLexer(l *Lexer) *bufferedLexer {
	return &bufferedLexer{l: l}
}

func (bl *bufferedLexer) Next() token.Token {
	if bl.pos < len(bl.buffer) {
		tok := bl.buffer[bl.pos]
		bl.pos++
		return tok
	}
	return bl.l.NextToken()
}

func (bl *bufferedLexer) Peek(n int) []token.Token {
	if len(bl.buffer)-bl.pos == 0 {
		bl.buffer = append(bl.buffer, bl.l.NextToken())
	}

	for len(bl.buffer)-bl.pos < n {
		last := bl.buffer[len(bl.buffer)-1]
		if last.Type == token.EOF {
			break
		}
		bl.buffer = append(bl.buffer, bl.l.NextToken())
	}

	if bl.pos > lookaheadBufferSize {
		bl.buffer = bl.buffer[bl.pos:]
		bl.pos = 0
	}

	end := bl.pos + n
	if end > len(bl.buffer) {
		end = len(bl.buffer)
	}
	return bl.buffer[bl.pos:end]
}

var _ pipeline.TokenStream = (*bufferedLexer)(nil)

// NewStream builds a TokenStream directly from source text, bypassing the
// pipeline.Processor stage. The formatted-string bridge uses this for its
// reentrant sub-parse (spec.md §4.5): each interpolation gets its own Lexer
// over its own substring, so nothing is shared with the outer parse.
func NewStream(source string, sentinel token.Type) pipeline.TokenStream {
	return newBufferedLexer(New(source, sentinel))
}

// sentinelFor maps a pipeline.Mode to the mode-sentinel token the lexer must
// emit first (spec.md §6).
func sentinelFor(mode pipeline.Mode) token.Type {
	switch mode {
	case pipeline.ModeStatement:
		return token.START_STATEMENT
	case pipeline.ModeExpression:
		return token.START_EXPRESSION
	default:
		return token.START_PROGRAM
	}
}

// Processor is the lexer stage of the pipeline: it builds a Lexer over
// ctx.SourceCode and installs a buffered TokenStream for the parser stage.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode, sentinelFor(ctx.Mode))
	ctx.TokenStream = newBufferedLexer(l)
	return ctx
}

var _ pipeline.Processor = (*Processor)(nil)
