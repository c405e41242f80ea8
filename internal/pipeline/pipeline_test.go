package pipeline

import (
	"testing"

	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/token"
)

type recordingProcessor struct {
	name string
	ran  *[]string
	err  bool
}

func (p *recordingProcessor) Process(ctx *PipelineContext) *PipelineContext {
	*p.ran = append(*p.ran, p.name)
	if p.err {
		ctx.Errors = append(ctx.Errors, diagnostics.New(diagnostics.StructuralSyntax, token.Token{}))
	}
	return ctx
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var ran []string
	pl := New(
		&recordingProcessor{name: "first", ran: &ran},
		&recordingProcessor{name: "second", ran: &ran},
	)
	ctx := NewPipelineContext("", ModeProgram)
	pl.Run(ctx)

	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Fatalf("expected stages to run in order, got %v", ran)
	}
}

func TestPipelineStopsOnFirstError(t *testing.T) {
	var ran []string
	pl := New(
		&recordingProcessor{name: "first", ran: &ran, err: true},
		&recordingProcessor{name: "second", ran: &ran},
	)
	ctx := NewPipelineContext("", ModeProgram)
	result := pl.Run(ctx)

	if len(ran) != 1 || ran[0] != "first" {
		t.Fatalf("expected only the failing stage to run, got %v", ran)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected the error to propagate, got %v", result.Errors)
	}
}

func TestNewPipelineContextStartsClean(t *testing.T) {
	ctx := NewPipelineContext("source", ModeExpression)
	if ctx.SourceCode != "source" || ctx.Mode != ModeExpression {
		t.Fatalf("unexpected context: %+v", ctx)
	}
	if len(ctx.Errors) != 0 {
		t.Fatalf("expected no errors on a fresh context")
	}
}
