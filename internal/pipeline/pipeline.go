package pipeline

// Pipeline is a fixed sequence of processing stages (lexer, then parser).
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes each stage in order, stopping as soon as a stage reports an
// error — the spec's parser has no error recovery (spec.md §4.7/§7), so
// there is nothing a later stage could usefully do with a broken context.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if len(ctx.Errors) > 0 {
			break
		}
	}
	return ctx
}
