package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/fstring"
	"github.com/corelang/pyparse/internal/lexer"
	"github.com/corelang/pyparse/internal/pipeline"
	"github.com/corelang/pyparse/internal/token"
)

// init wires internal/fstring's reentrant expression parser back to this
// package. fstring cannot import parser directly — parser already imports
// fstring to invoke Parse — so the callback is installed here instead,
// keeping fstring a leaf package (spec.md §9 "reentrant sub-parser").
func init() {
	fstring.ExprParser = parseEmbeddedExpression
}

// parseEmbeddedExpression parses src (one interpolation's source text) as a
// standalone expression: a fresh Lexer and a fresh Parser, independent of
// whatever parse is already in progress, so nested formatted strings
// recurse safely (spec.md §5 "must itself be reentrant").
func parseEmbeddedExpression(src string, origin ast.Loc) (ast.Expression, error) {
	ctx := pipeline.NewPipelineContext(src, pipeline.ModeExpression)
	stream := lexer.NewStream(src, token.START_EXPRESSION)
	top := Run(stream, ctx)
	if len(ctx.Errors) > 0 {
		return nil, ctx.Errors[0]
	}
	return top.Expression, nil
}
