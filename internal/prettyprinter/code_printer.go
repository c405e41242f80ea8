// Package prettyprinter renders a parsed ast.Top back into source text. It
// is a structural printer, not a trivia-preserving formatter (spec.md
// Non-goals explicitly drop comments/whitespace/original spelling): its job
// is to produce text that reparses to an AST equal to the one it printed
// (T7's round-trip property), nothing more. Parenthesizing a sub-expression
// never changes what it parses back to (spec.md §4.2 "Parentheses"), so
// CodePrinter leans on that freely whenever precedence is in doubt rather
// than chasing perfectly minimal parens.
package prettyprinter

import (
	"strconv"
	"strings"

	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/config"
	"github.com/corelang/pyparse/internal/token"
)

// CodePrinter accumulates re-emitted source text for one AST.
type CodePrinter struct {
	buf    strings.Builder
	indent int
}

func NewCodePrinter() *CodePrinter { return &CodePrinter{} }

func (p *CodePrinter) String() string { return p.buf.String() }

func (p *CodePrinter) write(s string) { p.buf.WriteString(s) }
func (p *CodePrinter) writeIndent()   { p.write(strings.Repeat("    ", p.indent)) }

// PrintTop renders whichever alternative of top is populated (spec.md §6),
// returning the full source text.
func (p *CodePrinter) PrintTop(top ast.Top) string {
	switch {
	case top.Program != nil:
		p.printProgram(top.Program)
	case top.Statement != nil:
		p.printStatement(top.Statement)
	case top.Expression != nil:
		p.write(p.testExpr(top.Expression))
		p.write("\n")
	}
	return p.String()
}

func (p *CodePrinter) printProgram(prog *ast.Program) {
	for _, s := range prog.Statements {
		p.printStatement(s)
	}
}

func (p *CodePrinter) printBlock(stmts []ast.Statement) {
	if len(stmts) == 0 {
		p.indent++
		p.writeIndent()
		p.write("pass\n")
		p.indent--
		return
	}
	p.indent++
	for _, s := range stmts {
		p.printStatement(s)
	}
	p.indent--
}

// ---- statements ----

func (p *CodePrinter) printStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.Pass:
		p.writeIndent()
		p.write("pass\n")
	case *ast.Break:
		p.writeIndent()
		p.write("break\n")
	case *ast.Continue:
		p.writeIndent()
		p.write("continue\n")
	case *ast.Return:
		p.writeIndent()
		p.write("return")
		if n.Value != nil {
			p.write(" " + p.testExpr(n.Value))
		}
		p.write("\n")
	case *ast.Delete:
		p.writeIndent()
		p.write("del " + strings.Join(p.exprListBare(n.Targets), ", ") + "\n")
	case *ast.Assign:
		p.writeIndent()
		var parts []string
		for _, t := range n.Targets {
			parts = append(parts, p.testExpr(t))
		}
		parts = append(parts, p.testExpr(n.Value))
		p.write(strings.Join(parts, " = ") + "\n")
	case *ast.AugAssign:
		p.writeIndent()
		p.write(p.testExpr(n.Target) + " " + augAssignText[n.Op] + " " + p.testExpr(n.Value) + "\n")
	case *ast.AnnAssign:
		p.writeIndent()
		p.write(p.testExpr(n.Target) + ": " + p.testExpr(n.Annotation))
		if n.Value != nil {
			p.write(" = " + p.testExpr(n.Value))
		}
		p.write("\n")
	case *ast.ExpressionStatement:
		p.writeIndent()
		p.write(p.testExpr(n.Expression) + "\n")
	case *ast.Global:
		p.writeIndent()
		p.write("global " + strings.Join(n.Names, ", ") + "\n")
	case *ast.Nonlocal:
		p.writeIndent()
		p.write("nonlocal " + strings.Join(n.Names, ", ") + "\n")
	case *ast.Assert:
		p.writeIndent()
		p.write("assert " + p.testExpr(n.Test))
		if n.Msg != nil {
			p.write(", " + p.testExpr(n.Msg))
		}
		p.write("\n")
	case *ast.Import:
		p.writeIndent()
		p.write("import " + p.importSymbols(n.Names) + "\n")
	case *ast.ImportFrom:
		p.writeIndent()
		p.write("from " + strings.Repeat(".", n.Level))
		if n.Module != nil {
			p.write(*n.Module)
		}
		p.write(" import " + p.importSymbols(n.Names) + "\n")
	case *ast.Raise:
		p.writeIndent()
		p.write("raise")
		if n.Exception != nil {
			p.write(" " + p.testExpr(n.Exception))
			if n.Cause != nil {
				p.write(" from " + p.testExpr(n.Cause))
			}
		}
		p.write("\n")
	case *ast.If:
		p.printIf(n)
	case *ast.While:
		p.writeIndent()
		p.write("while " + p.testExpr(n.Test) + ":\n")
		p.printBlock(n.Body)
		if n.Orelse != nil {
			p.writeIndent()
			p.write("else:\n")
			p.printBlock(n.Orelse)
		}
	case *ast.For:
		p.writeIndent()
		if n.IsAsync {
			p.write("async ")
		}
		p.write("for " + p.testExpr(n.Target) + " in " + p.testExpr(n.Iter) + ":\n")
		p.printBlock(n.Body)
		if n.Orelse != nil {
			p.writeIndent()
			p.write("else:\n")
			p.printBlock(n.Orelse)
		}
	case *ast.Try:
		p.printTry(n)
	case *ast.With:
		p.printWith(n)
	case *ast.FunctionDef:
		p.printFunctionDef(n)
	case *ast.ClassDef:
		p.printClassDef(n)
	}
}

// printIf and printElifOrElse jointly undo the right-nested-If encoding
// (spec.md §4.2/§9): a lone nested *ast.If sitting in Orelse prints as
// `elif`, anything else prints as `else`.
func (p *CodePrinter) printIf(n *ast.If) {
	p.writeIndent()
	p.write("if " + p.testExpr(n.Test) + ":\n")
	p.printBlock(n.Body)
	p.printElifOrElse(n.Orelse)
}

func (p *CodePrinter) printElifOrElse(orelse []ast.Statement) {
	if len(orelse) == 1 {
		if nested, ok := orelse[0].(*ast.If); ok {
			p.writeIndent()
			p.write("elif " + p.testExpr(nested.Test) + ":\n")
			p.printBlock(nested.Body)
			p.printElifOrElse(nested.Orelse)
			return
		}
	}
	if orelse != nil {
		p.writeIndent()
		p.write("else:\n")
		p.printBlock(orelse)
	}
}

func (p *CodePrinter) printTry(n *ast.Try) {
	p.writeIndent()
	p.write("try:\n")
	p.printBlock(n.Body)
	for _, h := range n.Handlers {
		p.writeIndent()
		p.write("except")
		if h.Typ != nil {
			p.write(" " + p.testExpr(h.Typ))
			if h.Name != nil {
				p.write(" as " + *h.Name)
			}
		}
		p.write(":\n")
		p.printBlock(h.Body)
	}
	if n.Orelse != nil {
		p.writeIndent()
		p.write("else:\n")
		p.printBlock(n.Orelse)
	}
	if n.Finalbody != nil {
		p.writeIndent()
		p.write("finally:\n")
		p.printBlock(n.Finalbody)
	}
}

func (p *CodePrinter) printWith(n *ast.With) {
	p.writeIndent()
	if n.IsAsync {
		p.write("async ")
	}
	p.write("with ")
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		s := p.testExpr(it.ContextExpr)
		if it.OptionalVars != nil {
			s += " as " + p.testExpr(it.OptionalVars)
		}
		parts[i] = s
	}
	p.write(strings.Join(parts, ", ") + ":\n")
	p.printBlock(n.Body)
}

func (p *CodePrinter) printFunctionDef(n *ast.FunctionDef) {
	p.printDecorators(n.DecoratorList)
	p.writeIndent()
	if n.IsAsync {
		p.write("async ")
	}
	p.write("def " + n.Name + "(" + p.printParameters(n.Args) + ")")
	if n.Returns != nil {
		p.write(" -> " + p.testExpr(n.Returns))
	}
	p.write(":\n")
	p.printBlock(n.Body)
}

func (p *CodePrinter) printClassDef(n *ast.ClassDef) {
	p.printDecorators(n.DecoratorList)
	p.writeIndent()
	p.write("class " + n.Name)
	if len(n.Bases) > 0 || len(n.Keywords) > 0 {
		var parts []string
		for _, b := range n.Bases {
			parts = append(parts, p.testExpr(b))
		}
		for _, kw := range n.Keywords {
			parts = append(parts, p.keywordText(kw))
		}
		p.write("(" + strings.Join(parts, ", ") + ")")
	}
	p.write(":\n")
	p.printBlock(n.Body)
}

func (p *CodePrinter) printDecorators(decorators []ast.Expression) {
	for _, d := range decorators {
		p.writeIndent()
		p.write("@" + p.testExpr(d) + "\n")
	}
}

func (p *CodePrinter) importSymbols(names []*ast.ImportSymbol) string {
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

func (p *CodePrinter) keywordText(kw *ast.Keyword) string {
	if kw.Name != nil {
		return *kw.Name + "=" + p.testExpr(kw.Value)
	}
	return "**" + p.testExpr(kw.Value)
}

// printParameters renders a Parameters list the way def/lambda accept it
// (spec.md §4.3): positional args with their trailing defaults, the
// vararg/bare-star slot, keyword-only args with their own optional
// defaults, and the doublestar slot.
func (p *CodePrinter) printParameters(params *ast.Parameters) string {
	if params == nil {
		return ""
	}
	var parts []string
	nArgs := len(params.Args)
	defaultStart := nArgs - len(params.Defaults)
	for i, a := range params.Args {
		s := a.Arg
		if a.Annotation != nil {
			s += ": " + p.testExpr(a.Annotation)
		}
		if i >= defaultStart {
			s += "=" + p.testExpr(params.Defaults[i-defaultStart])
		}
		parts = append(parts, s)
	}
	switch params.Vararg.Kind {
	case ast.VarargsUnnamed:
		parts = append(parts, "*")
	case ast.VarargsNamed:
		s := "*" + params.Vararg.Name.Arg
		if params.Vararg.Name.Annotation != nil {
			s += ": " + p.testExpr(params.Vararg.Name.Annotation)
		}
		parts = append(parts, s)
	}
	for i, a := range params.KwOnlyArgs {
		s := a.Arg
		if a.Annotation != nil {
			s += ": " + p.testExpr(a.Annotation)
		}
		if i < len(params.KwDefaults) && params.KwDefaults[i] != nil {
			s += "=" + p.testExpr(params.KwDefaults[i])
		}
		parts = append(parts, s)
	}
	if params.Kwarg != nil {
		s := "**" + params.Kwarg.Arg
		if params.Kwarg.Annotation != nil {
			s += ": " + p.testExpr(params.Kwarg.Annotation)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// ---- expressions ----

// binOpInfo maps each Binop kind to its surface operator and the token that
// keys its precedence in config.BinaryOperators — the precedence table
// of internal/config (spec.md §4.2), reused here rather than duplicated.
var binOpInfo = map[ast.BinOpKind]struct {
	text string
	tok  token.Type
}{
	ast.OpBitOr:    {"|", token.PIPE},
	ast.OpBitXor:   {"^", token.CARET},
	ast.OpBitAnd:   {"&", token.AMP},
	ast.OpLShift:   {"<<", token.LSHIFT},
	ast.OpRShift:   {">>", token.RSHIFT},
	ast.OpAdd:      {"+", token.PLUS},
	ast.OpSub:      {"-", token.MINUS},
	ast.OpMul:      {"*", token.STAR},
	ast.OpDiv:      {"/", token.SLASH},
	ast.OpFloorDiv: {"//", token.DSLASH},
	ast.OpMod:      {"%", token.PERCENT},
	ast.OpMatMul:   {"@", token.AT},
	ast.OpPow:      {"**", token.DSTAR},
}

func binPrec(op ast.BinOpKind) int {
	return config.BinaryOperators[binOpInfo[op].tok].Precedence
}

var augAssignText = map[ast.AugAssignOp]string{
	ast.AugAdd: "+=", ast.AugSub: "-=", ast.AugMul: "*=", ast.AugDiv: "/=",
	ast.AugFloorDiv: "//=", ast.AugMod: "%=", ast.AugMatMul: "@=", ast.AugPow: "**=",
	ast.AugLShift: "<<=", ast.AugRShift: ">>=", ast.AugBitOr: "|=", ast.AugBitXor: "^=",
	ast.AugBitAnd: "&=",
}

var compareOpText = map[ast.CompareOp]string{
	ast.CmpLt: "<", ast.CmpLtE: "<=", ast.CmpGt: ">", ast.CmpGtE: ">=",
	ast.CmpEq: "==", ast.CmpNotEq: "!=", ast.CmpIn: "in", ast.CmpNotIn: "not in",
	ast.CmpIs: "is", ast.CmpIsNot: "is not",
}

// exprPrec assigns every expression kind a slot on the grammar's precedence
// ladder (config.Prec*), atoms (and anything that already carries its own
// delimiters — calls, subscripts, literals, collections) at the top.
func (p *CodePrinter) exprPrec(e ast.Expression) int {
	switch n := e.(type) {
	case *ast.Lambda:
		return config.PrecLambda
	case *ast.IfExpression:
		return config.PrecTernary
	case *ast.BoolOp:
		if n.Op == ast.BoolOr {
			return config.PrecOr
		}
		return config.PrecAnd
	case *ast.Unop:
		if n.Op == ast.OpNot {
			return config.PrecNot
		}
		return config.PrecUnary
	case *ast.Compare:
		return config.PrecComparison
	case *ast.Binop:
		return binPrec(n.Op)
	case *ast.Await:
		return config.PrecAwait
	case *ast.Yield, *ast.YieldFrom:
		return config.PrecLowest
	default:
		return config.PrecCall
	}
}

// sub renders e, wrapping it in parens when its own precedence can't sit
// bare at a position requiring at least minPrec (or, when strict, when it
// sits at exactly minPrec but the side it's on forces a wrap — the
// non-associative side of a binary operator).
func (p *CodePrinter) sub(e ast.Expression, minPrec int, strict bool) string {
	prec := p.exprPrec(e)
	s := p.expr(e)
	if prec < minPrec || (strict && prec == minPrec) {
		return "(" + s + ")"
	}
	return s
}

// testExpr is the threshold for every position the grammar calls `test`
// (call arguments, collection elements, return/assign values, …): anything
// at PrecLambda or above prints bare; only a bare yield/yield-from — which
// this grammar accepts nowhere but a handful of statement-level slots —
// needs parens here.
func (p *CodePrinter) testExpr(e ast.Expression) string {
	return p.sub(e, config.PrecLambda, false)
}

func (p *CodePrinter) exprListBare(list []ast.Expression) []string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = p.testExpr(e)
	}
	return parts
}

func (p *CodePrinter) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.Number:
		return p.number(n)
	case *ast.String:
		return p.stringGroup(n.Value)
	case *ast.Bytes:
		return quoteBytes(n.Value)
	case *ast.True:
		return "True"
	case *ast.False:
		return "False"
	case *ast.None:
		return "None"
	case *ast.Ellipsis:
		return "..."
	case *ast.Tuple:
		return p.tuple(n)
	case *ast.List:
		return "[" + strings.Join(p.exprListBare(n.Elements), ", ") + "]"
	case *ast.Set:
		return "{" + strings.Join(p.exprListBare(n.Elements), ", ") + "}"
	case *ast.Dict:
		return p.dict(n)
	case *ast.Starred:
		return "*" + p.sub(n.Value, config.PrecBitOr, false)
	case *ast.BoolOp:
		return p.boolOp(n)
	case *ast.Binop:
		return p.binop(n)
	case *ast.Unop:
		return p.unop(n)
	case *ast.Compare:
		return p.compare(n)
	case *ast.Attribute:
		return p.sub(n.Value, config.PrecCall, false) + "." + n.Name
	case *ast.Subscript:
		return p.sub(n.A, config.PrecCall, false) + "[" + p.printSubscriptArg(n.B) + "]"
	case *ast.Slice:
		return p.printSlice(n)
	case *ast.Call:
		return p.call(n)
	case *ast.IfExpression:
		return p.sub(n.Body, config.PrecTernary, true) + " if " + p.sub(n.Test, config.PrecTernary, true) +
			" else " + p.sub(n.Orelse, config.PrecTernary, false)
	case *ast.Lambda:
		params := p.printParameters(n.Args)
		if params == "" {
			return "lambda: " + p.sub(n.Body, config.PrecLambda, false)
		}
		return "lambda " + params + ": " + p.sub(n.Body, config.PrecLambda, false)
	case *ast.Yield:
		if n.Value == nil {
			return "yield"
		}
		return "yield " + p.testExpr(n.Value)
	case *ast.YieldFrom:
		return "yield from " + p.testExpr(n.Value)
	case *ast.Await:
		return "await " + p.sub(n.Value, config.PrecAwait, false)
	case *ast.Comprehension:
		return p.comprehension(n)
	}
	return ""
}

func (p *CodePrinter) tuple(n *ast.Tuple) string {
	switch len(n.Elements) {
	case 0:
		return "()"
	case 1:
		return "(" + p.testExpr(n.Elements[0]) + ",)"
	default:
		return "(" + strings.Join(p.exprListBare(n.Elements), ", ") + ")"
	}
}

func (p *CodePrinter) dict(n *ast.Dict) string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		if el.Key == nil {
			parts[i] = "**" + p.testExpr(el.Value)
		} else {
			parts[i] = p.testExpr(el.Key) + ": " + p.testExpr(el.Value)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (p *CodePrinter) boolOp(n *ast.BoolOp) string {
	prec, sep := config.PrecOr, " or "
	if n.Op == ast.BoolAnd {
		prec, sep = config.PrecAnd, " and "
	}
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = p.sub(v, prec, false)
	}
	return strings.Join(parts, sep)
}

func (p *CodePrinter) binop(n *ast.Binop) string {
	info := binOpInfo[n.Op]
	prec := binPrec(n.Op)
	var left, right string
	if n.Op == ast.OpPow { // right-associative
		left = p.sub(n.A, prec, true)
		right = p.sub(n.B, prec, false)
	} else {
		left = p.sub(n.A, prec, false)
		right = p.sub(n.B, prec, true)
	}
	return left + " " + info.text + " " + right
}

func (p *CodePrinter) unop(n *ast.Unop) string {
	if n.Op == ast.OpNot {
		return "not " + p.sub(n.A, config.PrecNot, false)
	}
	text := map[ast.UnOpKind]string{ast.OpUnaryPlus: "+", ast.OpUnaryMinus: "-", ast.OpInvert: "~"}[n.Op]
	return text + p.sub(n.A, config.PrecUnary, false)
}

func (p *CodePrinter) compare(n *ast.Compare) string {
	var b strings.Builder
	b.WriteString(p.sub(n.Vals[0], config.PrecComparison, false))
	for i, op := range n.Ops {
		b.WriteString(" ")
		b.WriteString(compareOpText[op])
		b.WriteString(" ")
		b.WriteString(p.sub(n.Vals[i+1], config.PrecComparison, false))
	}
	return b.String()
}

func (p *CodePrinter) call(n *ast.Call) string {
	fn := p.sub(n.Function, config.PrecCall, false)
	var parts []string
	for _, a := range n.Args {
		parts = append(parts, p.testExpr(a))
	}
	for _, kw := range n.Keywords {
		parts = append(parts, p.keywordText(kw))
	}
	return fn + "(" + strings.Join(parts, ", ") + ")"
}

func (p *CodePrinter) comprehension(n *ast.Comprehension) string {
	clauses := p.compClauses(n.Generators)
	switch n.Kind {
	case ast.CompList:
		return "[" + p.testExpr(n.Element) + clauses + "]"
	case ast.CompSet:
		return "{" + p.testExpr(n.Element) + clauses + "}"
	case ast.CompGenerator:
		return "(" + p.testExpr(n.Element) + clauses + ")"
	case ast.CompDict:
		return "{" + p.testExpr(n.Key) + ": " + p.testExpr(n.Value) + clauses + "}"
	}
	return ""
}

func (p *CodePrinter) compClauses(clauses []*ast.CompClause) string {
	var b strings.Builder
	for _, c := range clauses {
		if c.IsAsync {
			b.WriteString(" async for ")
		} else {
			b.WriteString(" for ")
		}
		b.WriteString(p.testExpr(c.Target))
		b.WriteString(" in ")
		b.WriteString(p.sub(c.Iter, config.PrecOr, false))
		for _, ifc := range c.Ifs {
			b.WriteString(" if ")
			b.WriteString(p.sub(ifc, config.PrecOr, false))
		}
	}
	return b.String()
}

// printSubscriptArg renders `a[...]`'s contents. A Tuple here is the
// comma-separated multi-subscript form (spec.md §4.2 "Subscripts") and must
// print WITHOUT its usual enclosing parens — `a[(1:2,)]` would put a slice
// colon somewhere parens never allow one.
func (p *CodePrinter) printSubscriptArg(e ast.Expression) string {
	if t, ok := e.(*ast.Tuple); ok {
		parts := make([]string, len(t.Elements))
		for i, el := range t.Elements {
			parts[i] = p.subscriptElem(el)
		}
		return strings.Join(parts, ", ")
	}
	return p.subscriptElem(e)
}

func (p *CodePrinter) subscriptElem(e ast.Expression) string {
	if sl, ok := e.(*ast.Slice); ok {
		return p.printSlice(sl)
	}
	return p.testExpr(e)
}

// printSlice renders a 3-element Slice (invariant I8/T5): a trailing
// omitted step is dropped, everything else prints as `lower:upper[:step]`.
func (p *CodePrinter) printSlice(sl *ast.Slice) string {
	var parts [3]string
	for i, el := range sl.Elements {
		if el == nil {
			continue
		}
		if _, isNone := el.(*ast.None); isNone {
			continue
		}
		parts[i] = p.testExpr(el)
	}
	if parts[2] == "" {
		return parts[0] + ":" + parts[1]
	}
	return parts[0] + ":" + parts[1] + ":" + parts[2]
}

func (p *CodePrinter) number(n *ast.Number) string {
	switch n.Kind {
	case ast.NumberInteger:
		if n.Int == nil {
			return "0"
		}
		return n.Int.String()
	case ast.NumberFloat:
		return formatFloat(n.Float)
	case ast.NumberComplex:
		return formatFloat(n.Imag) + "j"
	}
	return "0"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (p *CodePrinter) stringGroup(g ast.StringGroup) string {
	switch g.Kind {
	case ast.StringConstant:
		return quoteString(g.Value)
	case ast.StringFormatted:
		return "f" + p.quoteFormatted(g.Formatted)
	case ast.StringJoined:
		parts := make([]string, len(g.Values))
		for i, v := range g.Values {
			parts[i] = p.stringGroup(v)
		}
		return strings.Join(parts, " ")
	}
	return `""`
}

// quoteFormatted re-emits an f-string: literal segments are escaped the
// same way a plain string literal is, plus brace-doubling; embedded
// expressions print bare inside their own `{...}` — any braces the
// expression's own text needs (a dict literal, say) are exactly what
// internal/fstring's depth-tracking scanner expects to see on reparse.
func (p *CodePrinter) quoteFormatted(fs *ast.FormattedString) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, seg := range fs.Segments {
		if seg.Expr != nil {
			b.WriteByte('{')
			b.WriteString(p.testExpr(seg.Expr))
			b.WriteByte('}')
			continue
		}
		for _, r := range seg.Text {
			switch r {
			case '{':
				b.WriteString("{{")
			case '}':
				b.WriteString("}}")
			default:
				writeEscapedRune(&b, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		writeEscapedRune(&b, r)
	}
	b.WriteByte('"')
	return b.String()
}

// writeEscapedRune escapes exactly the repertoire internal/lexer's
// decodeEscape understands — anything else would round-trip as literal
// backslash-plus-character instead of the rune it started as.
func writeEscapedRune(b *strings.Builder, r rune) {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case '"':
		b.WriteString(`\"`)
	case '\n':
		b.WriteString(`\n`)
	case '\t':
		b.WriteString(`\t`)
	case '\r':
		b.WriteString(`\r`)
	case 0:
		b.WriteString(`\0`)
	default:
		b.WriteRune(r)
	}
}

func quoteBytes(data []byte) string {
	var b strings.Builder
	b.WriteString(`b"`)
	for _, c := range data {
		writeEscapedRune(&b, rune(c))
	}
	b.WriteByte('"')
	return b.String()
}
