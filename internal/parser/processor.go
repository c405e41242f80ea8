package parser

import "github.com/corelang/pyparse/internal/pipeline"

// Processor is the parser stage of the pipeline: it drives Run over the
// TokenStream the lexer stage installed and fills in ctx.AstRoot.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.AstRoot = Run(ctx.TokenStream, ctx)
	return ctx
}

var _ pipeline.Processor = (*Processor)(nil)
