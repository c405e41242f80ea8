package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/lexer"
	"github.com/corelang/pyparse/internal/parser"
	"github.com/corelang/pyparse/internal/pipeline"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src, pipeline.ModeProgram)
	pl := pipeline.New(&lexer.Processor{}, &parser.Processor{})
	result := pl.Run(ctx)
	if len(result.Errors) > 0 {
		var msgs []string
		for _, e := range result.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parsing %q failed:\n%s", src, strings.Join(msgs, "\n"))
	}
	require.NotNil(t, result.AstRoot.Program, "expected Program mode result, got %+v", result.AstRoot)
	return result.AstRoot.Program
}

func parseExpression(t *testing.T, src string) ast.Expression {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src, pipeline.ModeExpression)
	pl := pipeline.New(&lexer.Processor{}, &parser.Processor{})
	result := pl.Run(ctx)
	if len(result.Errors) > 0 {
		var msgs []string
		for _, e := range result.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parsing %q failed:\n%s", src, strings.Join(msgs, "\n"))
	}
	require.NotNil(t, result.AstRoot.Expression, "expected Expression mode result, got %+v", result.AstRoot)
	return result.AstRoot.Expression
}

func TestParseSimpleAssignment(t *testing.T) {
	prog := parseProgram(t, "x = 1\n")
	require.Len(t, prog.Statements, 1)

	assign, ok := prog.Statements[0].(*ast.Assign)
	require.True(t, ok, "expected *ast.Assign, got %T", prog.Statements[0])
	require.Len(t, assign.Targets, 1)

	id, ok := assign.Targets[0].(*ast.Identifier)
	require.True(t, ok, "expected *ast.Identifier target, got %#v", assign.Targets[0])
	require.Equal(t, "x", id.Name)

	num, ok := assign.Value.(*ast.Number)
	require.True(t, ok, "expected *ast.Number value, got %T", assign.Value)
	require.Equal(t, ast.NumberInteger, num.Kind)
	require.NotNil(t, num.Int)
	require.Equal(t, "1", num.Int.String())
}

func TestParseChainedAssignment(t *testing.T) {
	prog := parseProgram(t, "a = b = 5\n")
	assign := prog.Statements[0].(*ast.Assign)
	require.Len(t, assign.Targets, 2, "expected 2 targets for chained assignment")
}

func TestParseBinopPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3).
	expr := parseExpression(t, "1 + 2 * 3")
	top := expr.(*ast.Binop)
	require.Equal(t, ast.OpAdd, top.Op)

	right, ok := top.B.(*ast.Binop)
	require.True(t, ok, "expected right side to be a multiplication, got %#v", top.B)
	require.Equal(t, ast.OpMul, right.Op)
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 must bind as 2 ** (3 ** 2).
	expr := parseExpression(t, "2 ** 3 ** 2")
	top := expr.(*ast.Binop)
	require.Equal(t, ast.OpPow, top.Op)

	_, ok := top.B.(*ast.Binop)
	require.True(t, ok, "expected right-associative nesting on the right side, got %#v", top.B)

	_, ok = top.A.(*ast.Number)
	require.True(t, ok, "expected left side to be a bare number, got %#v", top.A)
}

func TestParseIfElifElse(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"
	prog := parseProgram(t, src)
	top := prog.Statements[0].(*ast.If)
	require.Len(t, top.Orelse, 1, "expected elif to fold into a single nested If")

	elif, ok := top.Orelse[0].(*ast.If)
	require.True(t, ok, "expected nested *ast.If for elif, got %T", top.Orelse[0])
	require.Len(t, elif.Orelse, 1, "expected else body on the nested If")

	_, ok = elif.Orelse[0].(*ast.Pass)
	require.True(t, ok, "expected Pass in else body, got %T", elif.Orelse[0])
}

func TestParseFunctionDefWithDefaults(t *testing.T) {
	prog := parseProgram(t, "def add(x, y=1):\n    return x + y\n")
	fn := prog.Statements[0].(*ast.FunctionDef)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Args.Args, 2)
	require.Len(t, fn.Args.Defaults, 1)
}

func TestParseSubscriptSlice(t *testing.T) {
	expr := parseExpression(t, "a[1:2, ::3]")
	sub := expr.(*ast.Subscript)
	tup, ok := sub.B.(*ast.Tuple)
	require.True(t, ok, "expected *ast.Tuple index for multi-dim subscript, got %T", sub.B)
	require.Len(t, tup.Elements, 2)

	_, ok = tup.Elements[0].(*ast.Slice)
	require.True(t, ok, "expected first subscript element to be a Slice, got %T", tup.Elements[0])
}

func TestParseImportFromDots(t *testing.T) {
	prog := parseProgram(t, "from .. import x\n")
	imp := prog.Statements[0].(*ast.ImportFrom)
	require.Equal(t, 2, imp.Level)
}

func TestParseImportFromParenGroupElement(t *testing.T) {
	prog := parseProgram(t, "from ...pkg.sub import a as A, (b, c,)\n")
	imp := prog.Statements[0].(*ast.ImportFrom)
	require.Equal(t, 3, imp.Level)
	require.NotNil(t, imp.Module)
	require.Equal(t, "pkg.sub", *imp.Module)

	require.Len(t, imp.Names, 3)

	require.Equal(t, "a", imp.Names[0].Symbol)
	require.NotNil(t, imp.Names[0].Alias)
	require.Equal(t, "A", *imp.Names[0].Alias)

	require.Equal(t, "b", imp.Names[1].Symbol)
	require.Nil(t, imp.Names[1].Alias)

	require.Equal(t, "c", imp.Names[2].Symbol)
	require.Nil(t, imp.Names[2].Alias)
}

func TestParseCompareLocationIsFirstOperator(t *testing.T) {
	// "x < y" -- the Compare node's location must be the '<' token's
	// location (column 3), not the 'x' identifier's (column 1).
	expr := parseExpression(t, "x < y")
	cmp := expr.(*ast.Compare)
	require.Equal(t, 1, cmp.Loc.Line)
	require.Equal(t, 3, cmp.Loc.Column)
}

func TestParseErrorReported(t *testing.T) {
	ctx := pipeline.NewPipelineContext("x = = 1\n", pipeline.ModeProgram)
	pl := pipeline.New(&lexer.Processor{}, &parser.Processor{})
	result := pl.Run(ctx)
	require.NotEmpty(t, result.Errors, "expected a parse error for malformed assignment")
}
