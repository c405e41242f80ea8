package prettyprinter_test

import (
	"strings"
	"testing"

	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/lexer"
	"github.com/corelang/pyparse/internal/parser"
	"github.com/corelang/pyparse/internal/pipeline"
	"github.com/corelang/pyparse/internal/prettyprinter"
)

// parse runs the full lexer/parser pipeline and fails the test on any error.
func parse(t *testing.T, src string, mode pipeline.Mode) ast.Top {
	t.Helper()
	ctx := pipeline.NewPipelineContext(src, mode)
	pl := pipeline.New(&lexer.Processor{}, &parser.Processor{})
	result := pl.Run(ctx)
	if len(result.Errors) > 0 {
		var msgs []string
		for _, e := range result.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("parsing %q failed:\n%s", src, strings.Join(msgs, "\n"))
	}
	return result.AstRoot
}

// treeShape renders a Top with TreePrinter, which never emits source
// locations, so two trees with identical shape but different Loc values
// produce identical output.
func treeShape(top ast.Top) string {
	return prettyprinter.NewTreePrinter().PrintTop(top)
}

// assertRoundTrips parses src, prints it back with CodePrinter, reparses the
// printed text, and checks the two ASTs have identical shape (T7).
func assertRoundTrips(t *testing.T, src string, mode pipeline.Mode) {
	t.Helper()
	original := parse(t, src, mode)
	printed := prettyprinter.NewCodePrinter().PrintTop(original)
	reparsed := parse(t, printed, mode)

	wantShape := treeShape(original)
	gotShape := treeShape(reparsed)
	if wantShape != gotShape {
		t.Fatalf("round-trip shape mismatch for %q\nprinted source:\n%s\nwant shape:\n%s\ngot shape:\n%s",
			src, printed, wantShape, gotShape)
	}
}

func TestRoundTripPrograms(t *testing.T) {
	cases := []string{
		"x = 1\n",
		"x = 1 + 2 * 3 - 4 / 5\n",
		"x = (1 + 2) * 3\n",
		"x = 2 ** 3 ** 2\n",
		"x = -2 ** 3\n",
		"x = a and b or not c\n",
		"x = a < b <= c == d\n",
		"x = a if b else c\n",
		"x = lambda a, b=1: a + b\n",
		"x = [i for i in range(10) if i % 2 == 0]\n",
		"x = {k: v for k, v in items}\n",
		"x = (1,)\n",
		"x = (1, 2, 3)\n",
		"x = ()\n",
		"x = a[1:2, ::3]\n",
		"x = a[::-1]\n",
		"x = f(1, 2, c=3, *args, **kwargs)\n",
		"x = a.b.c\n",
		"x = a | b & c ^ d\n",
		"x = a << 2 >> 1\n",
		"x = await foo()\n",
		"x = yield\n",
		"x = yield from gen()\n",
		"def f(a, b=1, *args, c, d=2, **kwargs) -> int:\n    return a + b\n",
		"class Foo(Base, metaclass=Meta):\n    pass\n",
		"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n",
		"while a:\n    break\nelse:\n    pass\n",
		"for i in range(10):\n    continue\nelse:\n    pass\n",
		"try:\n    pass\nexcept ValueError as e:\n    pass\nexcept:\n    pass\nelse:\n    pass\nfinally:\n    pass\n",
		"with open(f) as g, open(h):\n    pass\n",
		"import os\n",
		"import os.path as p\n",
		"from os import path, sep as s\n",
		"from . import x\n",
		"from .. import x\n",
		"from .pkg import x\n",
		"global a, b\n",
		"nonlocal a\n",
		"assert a, \"message\"\n",
		"del a, b\n",
		"raise ValueError(\"x\") from cause\n",
		"x += 1\n",
		"x: int = 1\n",
		"x = \"hello\\nworld\"\n",
		"x = b\"bytes\"\n",
		"x = f\"value={a+b!r}\"\n",
		"x = f\"{{literal braces}}\"\n",
		"x = 1_000\n",
		"x = 0xFF\n",
		"x = 0o17\n",
		"x = 0b101\n",
		"x = 1.5e10\n",
		"x = 3j\n",
		"async def f():\n    await g()\n",
	}

	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			assertRoundTrips(t, src, pipeline.ModeProgram)
		})
	}
}

func TestRoundTripExpressions(t *testing.T) {
	cases := []string{
		"1 + 2 * 3",
		"(a, b, c)",
		"a if b else c if d else e",
		"not not a",
		"a or b and c",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			assertRoundTrips(t, src, pipeline.ModeExpression)
		})
	}
}
