package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/corelang/pyparse/internal/ast"
)

// TreePrinter renders a structural, indented dump of an AST — one node per
// line, children nested beneath their parent. Unlike CodePrinter this isn't
// meant to reparse; it exists for the same reason the teacher keeps one:
// a human-readable view of the tree shape while debugging the grammar.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter { return &TreePrinter{} }

func (p *TreePrinter) String() string { return p.buf.String() }

func (p *TreePrinter) write(s string) { p.buf.WriteString(s) }
func (p *TreePrinter) writeIndent()   { p.write(strings.Repeat("  ", p.indent)) }

func (p *TreePrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.write("\n")
}

func (p *TreePrinter) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

// PrintTop renders whichever alternative of top is populated.
func (p *TreePrinter) PrintTop(top ast.Top) string {
	switch {
	case top.Program != nil:
		p.visitProgram(top.Program)
	case top.Statement != nil:
		p.visitStatement(top.Statement)
	case top.Expression != nil:
		p.visitExpr(top.Expression)
	}
	return p.String()
}

func (p *TreePrinter) visitProgram(prog *ast.Program) {
	p.line("Program")
	p.nested(func() {
		for _, s := range prog.Statements {
			p.visitStatement(s)
		}
	})
}

func (p *TreePrinter) visitBlock(label string, stmts []ast.Statement) {
	p.line(label)
	p.nested(func() {
		for _, s := range stmts {
			p.visitStatement(s)
		}
	})
}

func (p *TreePrinter) visitStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.Pass:
		p.line("Pass")
	case *ast.Break:
		p.line("Break")
	case *ast.Continue:
		p.line("Continue")
	case *ast.Return:
		p.line("Return")
		if n.Value != nil {
			p.nested(func() { p.visitExpr(n.Value) })
		}
	case *ast.Delete:
		p.line("Delete")
		p.nested(func() {
			for _, t := range n.Targets {
				p.visitExpr(t)
			}
		})
	case *ast.Assign:
		p.line("Assign")
		p.nested(func() {
			p.visitBlockExprs("Targets", n.Targets)
			p.line("Value")
			p.nested(func() { p.visitExpr(n.Value) })
		})
	case *ast.AugAssign:
		p.line(fmt.Sprintf("AugAssign op=%d", n.Op))
		p.nested(func() {
			p.visitExpr(n.Target)
			p.visitExpr(n.Value)
		})
	case *ast.AnnAssign:
		p.line("AnnAssign")
		p.nested(func() {
			p.visitExpr(n.Target)
			p.visitExpr(n.Annotation)
			if n.Value != nil {
				p.visitExpr(n.Value)
			}
		})
	case *ast.ExpressionStatement:
		p.line("ExpressionStatement")
		p.nested(func() { p.visitExpr(n.Expression) })
	case *ast.Global:
		p.line("Global " + strings.Join(n.Names, ", "))
	case *ast.Nonlocal:
		p.line("Nonlocal " + strings.Join(n.Names, ", "))
	case *ast.Assert:
		p.line("Assert")
		p.nested(func() {
			p.visitExpr(n.Test)
			if n.Msg != nil {
				p.visitExpr(n.Msg)
			}
		})
	case *ast.Import:
		p.line("Import " + importSymbolsText(n.Names))
	case *ast.ImportFrom:
		mod := ""
		if n.Module != nil {
			mod = *n.Module
		}
		p.line(fmt.Sprintf("ImportFrom level=%d module=%q %s", n.Level, mod, importSymbolsText(n.Names)))
	case *ast.Raise:
		p.line("Raise")
		p.nested(func() {
			if n.Exception != nil {
				p.visitExpr(n.Exception)
			}
			if n.Cause != nil {
				p.visitExpr(n.Cause)
			}
		})
	case *ast.If:
		p.line("If")
		p.nested(func() {
			p.line("Test")
			p.nested(func() { p.visitExpr(n.Test) })
			p.visitBlock("Body", n.Body)
			if n.Orelse != nil {
				p.visitBlock("Orelse", n.Orelse)
			}
		})
	case *ast.While:
		p.line("While")
		p.nested(func() {
			p.line("Test")
			p.nested(func() { p.visitExpr(n.Test) })
			p.visitBlock("Body", n.Body)
			if n.Orelse != nil {
				p.visitBlock("Orelse", n.Orelse)
			}
		})
	case *ast.For:
		p.line(fmt.Sprintf("For async=%v", n.IsAsync))
		p.nested(func() {
			p.line("Target")
			p.nested(func() { p.visitExpr(n.Target) })
			p.line("Iter")
			p.nested(func() { p.visitExpr(n.Iter) })
			p.visitBlock("Body", n.Body)
			if n.Orelse != nil {
				p.visitBlock("Orelse", n.Orelse)
			}
		})
	case *ast.Try:
		p.line("Try")
		p.nested(func() {
			p.visitBlock("Body", n.Body)
			for _, h := range n.Handlers {
				name := ""
				if h.Name != nil {
					name = *h.Name
				}
				p.line("ExceptHandler name=" + name)
				p.nested(func() {
					if h.Typ != nil {
						p.visitExpr(h.Typ)
					}
					for _, st := range h.Body {
						p.visitStatement(st)
					}
				})
			}
			if n.Orelse != nil {
				p.visitBlock("Orelse", n.Orelse)
			}
			if n.Finalbody != nil {
				p.visitBlock("Finalbody", n.Finalbody)
			}
		})
	case *ast.With:
		p.line(fmt.Sprintf("With async=%v", n.IsAsync))
		p.nested(func() {
			for _, it := range n.Items {
				p.line("WithItem")
				p.nested(func() {
					p.visitExpr(it.ContextExpr)
					if it.OptionalVars != nil {
						p.visitExpr(it.OptionalVars)
					}
				})
			}
			p.visitBlock("Body", n.Body)
		})
	case *ast.FunctionDef:
		p.line(fmt.Sprintf("FunctionDef name=%s async=%v", n.Name, n.IsAsync))
		p.nested(func() {
			p.visitDecorators(n.DecoratorList)
			p.visitParameters(n.Args)
			if n.Returns != nil {
				p.line("Returns")
				p.nested(func() { p.visitExpr(n.Returns) })
			}
			p.visitBlock("Body", n.Body)
		})
	case *ast.ClassDef:
		p.line("ClassDef name=" + n.Name)
		p.nested(func() {
			p.visitDecorators(n.DecoratorList)
			p.visitBlockExprs("Bases", n.Bases)
			for _, kw := range n.Keywords {
				p.visitKeyword(kw)
			}
			p.visitBlock("Body", n.Body)
		})
	}
}

func (p *TreePrinter) visitDecorators(decorators []ast.Expression) {
	if len(decorators) == 0 {
		return
	}
	p.visitBlockExprs("Decorators", decorators)
}

func (p *TreePrinter) visitBlockExprs(label string, exprs []ast.Expression) {
	p.line(label)
	p.nested(func() {
		for _, e := range exprs {
			p.visitExpr(e)
		}
	})
}

func (p *TreePrinter) visitParameters(params *ast.Parameters) {
	if params == nil {
		return
	}
	p.line("Parameters")
	p.nested(func() {
		for i, a := range params.Args {
			p.line("Arg " + a.Arg)
			if a.Annotation != nil {
				p.nested(func() { p.visitExpr(a.Annotation) })
			}
			defaultStart := len(params.Args) - len(params.Defaults)
			if i >= defaultStart {
				p.nested(func() { p.visitExpr(params.Defaults[i-defaultStart]) })
			}
		}
		switch params.Vararg.Kind {
		case ast.VarargsUnnamed:
			p.line("Vararg *")
		case ast.VarargsNamed:
			p.line("Vararg *" + params.Vararg.Name.Arg)
		}
		for i, a := range params.KwOnlyArgs {
			p.line("KwOnlyArg " + a.Arg)
			if i < len(params.KwDefaults) && params.KwDefaults[i] != nil {
				p.nested(func() { p.visitExpr(params.KwDefaults[i]) })
			}
		}
		if params.Kwarg != nil {
			p.line("Kwarg **" + params.Kwarg.Arg)
		}
	})
}

func (p *TreePrinter) visitKeyword(kw *ast.Keyword) {
	name := "**"
	if kw.Name != nil {
		name = *kw.Name
	}
	p.line("Keyword " + name)
	p.nested(func() { p.visitExpr(kw.Value) })
}

func (p *TreePrinter) visitExpr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.Identifier:
		p.line("Identifier " + n.Name)
	case *ast.Number:
		var value string
		switch n.Kind {
		case ast.NumberInteger:
			value = fmt.Sprint(n.Int)
		case ast.NumberFloat:
			value = fmt.Sprint(n.Float)
		case ast.NumberComplex:
			value = fmt.Sprintf("(%v+%vj)", n.Real, n.Imag)
		}
		p.line(fmt.Sprintf("Number kind=%d value=%s", n.Kind, value))
	case *ast.String:
		p.line("String")
		p.nested(func() { p.visitStringGroup(n.Value) })
	case *ast.Bytes:
		p.line(fmt.Sprintf("Bytes len=%d %q", len(n.Value), n.Value))
	case *ast.True:
		p.line("True")
	case *ast.False:
		p.line("False")
	case *ast.None:
		p.line("None")
	case *ast.Ellipsis:
		p.line("Ellipsis")
	case *ast.Tuple:
		p.visitBlockExprs("Tuple", n.Elements)
	case *ast.List:
		p.visitBlockExprs("List", n.Elements)
	case *ast.Set:
		p.visitBlockExprs("Set", n.Elements)
	case *ast.Dict:
		p.line("Dict")
		p.nested(func() {
			for _, el := range n.Elements {
				p.line("Entry")
				p.nested(func() {
					if el.Key != nil {
						p.visitExpr(el.Key)
					}
					p.visitExpr(el.Value)
				})
			}
		})
	case *ast.Starred:
		p.line("Starred")
		p.nested(func() { p.visitExpr(n.Value) })
	case *ast.BoolOp:
		p.line(fmt.Sprintf("BoolOp op=%d", n.Op))
		p.nested(func() {
			for _, v := range n.Values {
				p.visitExpr(v)
			}
		})
	case *ast.Binop:
		p.line(fmt.Sprintf("Binop op=%d", n.Op))
		p.nested(func() {
			p.visitExpr(n.A)
			p.visitExpr(n.B)
		})
	case *ast.Unop:
		p.line(fmt.Sprintf("Unop op=%d", n.Op))
		p.nested(func() { p.visitExpr(n.A) })
	case *ast.Compare:
		p.line(fmt.Sprintf("Compare ops=%v", n.Ops))
		p.nested(func() {
			for _, v := range n.Vals {
				p.visitExpr(v)
			}
		})
	case *ast.Attribute:
		p.line("Attribute ." + n.Name)
		p.nested(func() { p.visitExpr(n.Value) })
	case *ast.Subscript:
		p.line("Subscript")
		p.nested(func() {
			p.visitExpr(n.A)
			p.visitExpr(n.B)
		})
	case *ast.Slice:
		p.line("Slice")
		p.nested(func() {
			for _, el := range n.Elements {
				p.visitExpr(el)
			}
		})
	case *ast.Call:
		p.line("Call")
		p.nested(func() {
			p.line("Function")
			p.nested(func() { p.visitExpr(n.Function) })
			p.visitBlockExprs("Args", n.Args)
			for _, kw := range n.Keywords {
				p.visitKeyword(kw)
			}
		})
	case *ast.IfExpression:
		p.line("IfExpression")
		p.nested(func() {
			p.visitExpr(n.Body)
			p.visitExpr(n.Test)
			p.visitExpr(n.Orelse)
		})
	case *ast.Lambda:
		p.line("Lambda")
		p.nested(func() {
			p.visitParameters(n.Args)
			p.visitExpr(n.Body)
		})
	case *ast.Yield:
		p.line("Yield")
		if n.Value != nil {
			p.nested(func() { p.visitExpr(n.Value) })
		}
	case *ast.YieldFrom:
		p.line("YieldFrom")
		p.nested(func() { p.visitExpr(n.Value) })
	case *ast.Await:
		p.line("Await")
		p.nested(func() { p.visitExpr(n.Value) })
	case *ast.Comprehension:
		p.line(fmt.Sprintf("Comprehension kind=%d", n.Kind))
		p.nested(func() {
			if n.Kind == ast.CompDict {
				p.visitExpr(n.Key)
				p.visitExpr(n.Value)
			} else {
				p.visitExpr(n.Element)
			}
			for _, c := range n.Generators {
				p.line(fmt.Sprintf("CompClause async=%v", c.IsAsync))
				p.nested(func() {
					p.visitExpr(c.Target)
					p.visitExpr(c.Iter)
					for _, ifc := range c.Ifs {
						p.visitExpr(ifc)
					}
				})
			}
		})
	}
}

func (p *TreePrinter) visitStringGroup(g ast.StringGroup) {
	switch g.Kind {
	case ast.StringConstant:
		p.line(fmt.Sprintf("Constant %q", g.Value))
	case ast.StringFormatted:
		p.line("Formatted")
		p.nested(func() {
			for _, seg := range g.Formatted.Segments {
				if seg.Expr != nil {
					p.visitExpr(seg.Expr)
				} else {
					p.line(fmt.Sprintf("Text %q", seg.Text))
				}
			}
		})
	case ast.StringJoined:
		p.line("Joined")
		p.nested(func() {
			for _, v := range g.Values {
				p.visitStringGroup(v)
			}
		})
	}
}

func importSymbolsText(names []*ast.ImportSymbol) string {
	parts := make([]string, len(names))
	for i, n := range names {
		s := n.Symbol
		if n.Alias != nil {
			s += " as " + *n.Alias
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}
