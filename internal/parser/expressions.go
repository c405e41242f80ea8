package parser

import (
	"math/big"

	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/fstring"
	"github.com/corelang/pyparse/internal/token"
)

// The functions below mirror CPython's own grammar layering (test, or_test,
// and_test, not_test, comparison, expr, xor_expr, and_expr, shift_expr,
// arith_expr, term, factor, power, atom_expr) rather than a single generic
// precedence table: comparisons fold into one Compare node (non-associative,
// spec.md invariant I1/T1) and boolean operators fold into one BoolOp
// (invariant I2/T2), which a uniform climbing table handles awkwardly.

// parseTestListAsExpr parses a comma-separated list of tests, producing a
// bare Tuple when more than one is present or a lone trailing comma marks a
// singleton tuple.
func (p *Parser) parseTestListAsExpr() ast.Expression {
	first := p.parseTestOrStar()
	if p.failed() {
		return nil
	}
	if !p.curTokenIs(token.COMMA) {
		return first
	}
	start := first.Location()
	elements := []ast.Expression{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if isExprListEnd(p.curToken.Type) {
			break
		}
		elements = append(elements, p.parseTestOrStar())
		if p.failed() {
			return nil
		}
	}
	return &ast.Tuple{Loc: start, Elements: elements}
}

func isExprListEnd(t token.Type) bool {
	switch t {
	case token.EOF, token.NEWLINE, token.RPAREN, token.RBRACKET, token.RBRACE,
		token.COLON, token.ASSIGN, token.SEMICOLON:
		return true
	}
	return false
}

// parseTestOrStar allows a leading `*expr` inside an expression list (call
// arguments, assignment targets, literal elements).
func (p *Parser) parseTestOrStar() ast.Expression {
	if p.curTokenIs(token.STAR) {
		l := loc(p.curToken)
		p.nextToken()
		val := p.parseOrExpr()
		return &ast.Starred{Loc: l, Value: val}
	}
	return p.parseTest()
}

// loc converts a token's position into an ast.Loc; every node's Loc is
// stamped from a token this way, never computed (package doc in ast).
func loc(t token.Token) ast.Loc { return ast.Loc{Line: t.Line, Column: t.Column} }

// parseTest is `or_test ['if' or_test 'else' test] | lambdef`.
func (p *Parser) parseTest() ast.Expression {
	if p.curTokenIs(token.LAMBDA) {
		return p.parseLambda()
	}
	body := p.parseOrTest()
	if p.failed() || !p.curTokenIs(token.IF) {
		return body
	}
	start := body.Location()
	p.nextToken() // consume 'if'
	test := p.parseOrTest()
	if p.failed() || !p.expectPeekIs(token.ELSE) {
		return nil
	}
	p.nextToken() // consume 'else'
	orelse := p.parseTest()
	if p.failed() {
		return nil
	}
	return &ast.IfExpression{Loc: start, Test: test, Body: body, Orelse: orelse}
}

// expectPeekIs is like expectPeek but checks curToken (the conditional
// expression grammar needs to test "are we sitting on ELSE" without having
// advanced past the previous production, unlike expectPeek's lookahead).
func (p *Parser) expectPeekIs(t token.Type) bool {
	if p.curTokenIs(t) {
		return true
	}
	p.fail(diagnostics.StructuralSyntax, p.curToken, t)
	return false
}

// parseTestNoCond is `or_test | lambdef_nocond` — used where a trailing
// `else` would be ambiguous with an enclosing construct (comprehension
// `if` clauses).
func (p *Parser) parseTestNoCond() ast.Expression {
	if p.curTokenIs(token.LAMBDA) {
		return p.parseLambda()
	}
	return p.parseOrTest()
}

func (p *Parser) parseOrTest() ast.Expression {
	first := p.parseAndTest()
	if p.failed() || !p.curTokenIs(token.OR) {
		return first
	}
	start := first.Location()
	values := []ast.Expression{first}
	for p.curTokenIs(token.OR) {
		p.nextToken()
		values = append(values, p.parseAndTest())
		if p.failed() {
			return nil
		}
	}
	return &ast.BoolOp{Loc: start, Op: ast.BoolOr, Values: values}
}

func (p *Parser) parseAndTest() ast.Expression {
	first := p.parseNotTest()
	if p.failed() || !p.curTokenIs(token.AND) {
		return first
	}
	start := first.Location()
	values := []ast.Expression{first}
	for p.curTokenIs(token.AND) {
		p.nextToken()
		values = append(values, p.parseNotTest())
		if p.failed() {
			return nil
		}
	}
	return &ast.BoolOp{Loc: start, Op: ast.BoolAnd, Values: values}
}

func (p *Parser) parseNotTest() ast.Expression {
	if p.curTokenIs(token.NOT) {
		start := loc(p.curToken)
		p.nextToken()
		operand := p.parseNotTest()
		if p.failed() {
			return nil
		}
		return &ast.Unop{Loc: start, Op: ast.OpNot, A: operand}
	}
	return p.parseComparison()
}

// comparisonOps maps a comparison token to its CompareOp; `in`/`is` are
// handled separately since they combine with a following `not`.
var comparisonOps = map[token.Type]ast.CompareOp{
	token.LT: ast.CmpLt, token.LE: ast.CmpLtE, token.GT: ast.CmpGt, token.GE: ast.CmpGtE,
	token.EQ: ast.CmpEq, token.NE: ast.CmpNotEq,
}

// parseComparison folds a chain `expr (comp_op expr)*` into one Compare
// node (spec.md invariant I1/T1): len(Vals) == len(Ops)+1. Per spec.md §4.2,
// the node's location is that of the first comparison operator, not the
// first operand.
func (p *Parser) parseComparison() ast.Expression {
	first := p.parseOrExpr()
	if p.failed() {
		return nil
	}
	var ops []ast.CompareOp
	vals := []ast.Expression{first}
	var opStart ast.Loc

	for {
		op, ok, opLoc := p.tryCompareOp()
		if !ok {
			break
		}
		if len(ops) == 0 {
			opStart = opLoc
		}
		next := p.parseOrExpr()
		if p.failed() {
			return nil
		}
		ops = append(ops, op)
		vals = append(vals, next)
	}

	if len(ops) == 0 {
		return first
	}
	return &ast.Compare{Loc: opStart, Vals: vals, Ops: ops}
}

// tryCompareOp consumes a comparison operator (including the two-token
// `not in` and `is not` forms) if the current token starts one, returning
// its location for parseComparison to stamp the Compare node with.
func (p *Parser) tryCompareOp() (ast.CompareOp, bool, ast.Loc) {
	if op, ok := comparisonOps[p.curToken.Type]; ok {
		l := loc(p.curToken)
		p.nextToken()
		return op, true, l
	}
	if p.curTokenIs(token.IN) {
		l := loc(p.curToken)
		p.nextToken()
		return ast.CmpIn, true, l
	}
	if p.curTokenIs(token.NOT) && p.peekTokenIs(token.IN) {
		l := loc(p.curToken)
		p.nextToken()
		p.nextToken()
		return ast.CmpNotIn, true, l
	}
	if p.curTokenIs(token.IS) && p.peekTokenIs(token.NOT) {
		l := loc(p.curToken)
		p.nextToken()
		p.nextToken()
		return ast.CmpIsNot, true, l
	}
	if p.curTokenIs(token.IS) {
		l := loc(p.curToken)
		p.nextToken()
		return ast.CmpIs, true, l
	}
	return 0, false, ast.Loc{}
}

func (p *Parser) parseOrExpr() ast.Expression {
	left := p.parseXorExpr()
	for !p.failed() && p.curTokenIs(token.PIPE) {
		start := left.Location()
		p.nextToken()
		right := p.parseXorExpr()
		if p.failed() {
			return nil
		}
		left = &ast.Binop{Loc: start, A: left, Op: ast.OpBitOr, B: right}
	}
	return left
}

func (p *Parser) parseXorExpr() ast.Expression {
	left := p.parseAndExpr()
	for !p.failed() && p.curTokenIs(token.CARET) {
		start := left.Location()
		p.nextToken()
		right := p.parseAndExpr()
		if p.failed() {
			return nil
		}
		left = &ast.Binop{Loc: start, A: left, Op: ast.OpBitXor, B: right}
	}
	return left
}

func (p *Parser) parseAndExpr() ast.Expression {
	left := p.parseShiftExpr()
	for !p.failed() && p.curTokenIs(token.AMP) {
		start := left.Location()
		p.nextToken()
		right := p.parseShiftExpr()
		if p.failed() {
			return nil
		}
		left = &ast.Binop{Loc: start, A: left, Op: ast.OpBitAnd, B: right}
	}
	return left
}

func (p *Parser) parseShiftExpr() ast.Expression {
	left := p.parseArithExpr()
	for !p.failed() && (p.curTokenIs(token.LSHIFT) || p.curTokenIs(token.RSHIFT)) {
		start := left.Location()
		op := ast.OpLShift
		if p.curTokenIs(token.RSHIFT) {
			op = ast.OpRShift
		}
		p.nextToken()
		right := p.parseArithExpr()
		if p.failed() {
			return nil
		}
		left = &ast.Binop{Loc: start, A: left, Op: op, B: right}
	}
	return left
}

func (p *Parser) parseArithExpr() ast.Expression {
	left := p.parseTerm()
	for !p.failed() && (p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS)) {
		start := left.Location()
		op := ast.OpAdd
		if p.curTokenIs(token.MINUS) {
			op = ast.OpSub
		}
		p.nextToken()
		right := p.parseTerm()
		if p.failed() {
			return nil
		}
		left = &ast.Binop{Loc: start, A: left, Op: op, B: right}
	}
	return left
}

var termOps = map[token.Type]ast.BinOpKind{
	token.STAR: ast.OpMul, token.AT: ast.OpMatMul, token.SLASH: ast.OpDiv,
	token.DSLASH: ast.OpFloorDiv, token.PERCENT: ast.OpMod,
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for !p.failed() {
		op, ok := termOps[p.curToken.Type]
		if !ok {
			break
		}
		start := left.Location()
		p.nextToken()
		right := p.parseFactor()
		if p.failed() {
			return nil
		}
		left = &ast.Binop{Loc: start, A: left, Op: op, B: right}
	}
	return left
}

// parseFactor is `('+'|'-'|'~') factor | power`.
func (p *Parser) parseFactor() ast.Expression {
	var op ast.UnOpKind
	switch p.curToken.Type {
	case token.PLUS:
		op = ast.OpUnaryPlus
	case token.MINUS:
		op = ast.OpUnaryMinus
	case token.TILDE:
		op = ast.OpInvert
	default:
		return p.parsePower()
	}
	start := loc(p.curToken)
	p.nextToken()
	operand := p.parseFactor()
	if p.failed() {
		return nil
	}
	return &ast.Unop{Loc: start, Op: op, A: operand}
}

// parsePower is `atom_expr ['**' factor]` — right-associative.
func (p *Parser) parsePower() ast.Expression {
	base := p.parseAtomExpr()
	if p.failed() || !p.curTokenIs(token.DSTAR) {
		return base
	}
	start := base.Location()
	p.nextToken()
	exponent := p.parseFactor()
	if p.failed() {
		return nil
	}
	return &ast.Binop{Loc: start, A: base, Op: ast.OpPow, B: exponent}
}

// parseAtomExpr is `['await'] atom trailer*`.
func (p *Parser) parseAtomExpr() ast.Expression {
	if p.curTokenIs(token.AWAIT) {
		start := loc(p.curToken)
		p.nextToken()
		val := p.parseAtomExpr()
		if p.failed() {
			return nil
		}
		return &ast.Await{Loc: start, Value: val}
	}

	atom := p.parseAtom()
	if p.failed() {
		return nil
	}
	for {
		fn, ok := p.infixParseFns[p.curToken.Type]
		if !ok {
			break
		}
		atom = fn(atom)
		if p.failed() {
			return nil
		}
	}
	return atom
}

// parseAtom dispatches to the registered prefix function for curToken, or
// raises StructuralSyntax when nothing can start an expression there.
func (p *Parser) parseAtom() ast.Expression {
	fn, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.fail(diagnostics.StructuralSyntax, p.curToken)
		return nil
	}
	return fn()
}

func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.curToken
	name, _ := tok.Literal.(string)
	p.nextToken()
	return &ast.Identifier{Loc: loc(tok), Name: name}
}

func (p *Parser) parseTrue() ast.Expression {
	l := loc(p.curToken)
	p.nextToken()
	return &ast.True{Loc: l}
}

func (p *Parser) parseFalse() ast.Expression {
	l := loc(p.curToken)
	p.nextToken()
	return &ast.False{Loc: l}
}

func (p *Parser) parseNone() ast.Expression {
	l := loc(p.curToken)
	p.nextToken()
	return &ast.None{Loc: l}
}

func (p *Parser) parseEllipsis() ast.Expression {
	l := loc(p.curToken)
	p.nextToken()
	return &ast.Ellipsis{Loc: l}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	l := loc(tok)
	switch tok.Type {
	case token.INT:
		v, _ := tok.Literal.(*big.Int)
		if v == nil {
			v = new(big.Int)
		}
		p.nextToken()
		return &ast.Number{Loc: l, Kind: ast.NumberInteger, Int: v}
	case token.FLOAT:
		f, _ := tok.Literal.(float64)
		p.nextToken()
		return &ast.Number{Loc: l, Kind: ast.NumberFloat, Float: f}
	case token.COMPLEX:
		c, _ := tok.Literal.(token.Complex)
		p.nextToken()
		return &ast.Number{Loc: l, Kind: ast.NumberComplex, Real: c.Real, Imag: c.Imag}
	}
	p.nextToken()
	return &ast.Number{Loc: l, Kind: ast.NumberInteger, Int: new(big.Int)}
}

// parseStringLiteral handles one string token plus any immediately adjacent
// string literals, which Python joins into a single StringGroup at parse
// time (spec.md §3 "StringJoined"). A formatted literal is handed to the
// reentrant fstring bridge.
func (p *Parser) parseStringLiteral() ast.Expression {
	start := loc(p.curToken)
	group := p.nextStringGroup()
	if p.failed() {
		return nil
	}
	groups := []ast.StringGroup{group}
	for p.curTokenIs(token.STRING) {
		g := p.nextStringGroup()
		if p.failed() {
			return nil
		}
		groups = append(groups, g)
	}
	if len(groups) == 1 {
		return &ast.String{Loc: start, Value: groups[0]}
	}
	return &ast.String{Loc: start, Value: ast.StringGroup{Kind: ast.StringJoined, Values: groups}}
}

func (p *Parser) nextStringGroup() ast.StringGroup {
	tok := p.curToken
	payload, _ := tok.Literal.(token.StringPayload)
	p.nextToken()
	if !payload.IsFormatted {
		return ast.StringGroup{Kind: ast.StringConstant, Value: payload.Text}
	}
	fs, err := fstring.Parse(payload.Text, loc(tok))
	if err != nil {
		p.fail(diagnostics.FormattedStringError, tok, err.Error())
		return ast.StringGroup{}
	}
	return ast.StringGroup{Kind: ast.StringFormatted, Formatted: &fs}
}

func (p *Parser) parseBytesLiteral() ast.Expression {
	tok := p.curToken
	val, _ := tok.Literal.([]byte)
	p.nextToken()
	return &ast.Bytes{Loc: loc(tok), Value: val}
}

func (p *Parser) parseUnary() ast.Expression {
	// Reached only via parseAtom for a leading '+'/'-'/'~'/'not' that
	// parseFactor/parseNotTest didn't already consume. A stray '+'/'-'/'~'
	// still resolves through parseFactor; a stray 'not' (as in `1 + not 2`)
	// sits below the arithmetic levels of the precedence chain and is
	// reported as StructuralSyntax.
	if p.curTokenIs(token.NOT) {
		p.fail(diagnostics.StructuralSyntax, p.curToken)
		return nil
	}
	return p.parseFactor()
}

func (p *Parser) parseStarred() ast.Expression {
	start := loc(p.curToken)
	p.nextToken()
	val := p.parseOrExpr()
	if p.failed() {
		return nil
	}
	return &ast.Starred{Loc: start, Value: val}
}

func (p *Parser) parseDoubleStarred() ast.Expression {
	// Only meaningful inside a dict display; parseDictOrSetOrComprehension
	// handles '**' itself. Reaching here means a bare '**expr' was used as
	// a standalone expression, which is a structural error.
	p.fail(diagnostics.StructuralSyntax, p.curToken)
	return nil
}

func (p *Parser) parseYield() ast.Expression {
	start := loc(p.curToken)
	p.nextToken()
	if p.curTokenIs(token.FROM) {
		p.nextToken()
		val := p.parseTest()
		if p.failed() {
			return nil
		}
		return &ast.YieldFrom{Loc: start, Value: val}
	}
	if isExprListEnd(p.curToken.Type) {
		return &ast.Yield{Loc: start}
	}
	val := p.parseTestListAsExpr()
	if p.failed() {
		return nil
	}
	return &ast.Yield{Loc: start, Value: val}
}

func (p *Parser) parseAwait() ast.Expression {
	start := loc(p.curToken)
	p.nextToken()
	val := p.parseAtomExpr()
	if p.failed() {
		return nil
	}
	return &ast.Await{Loc: start, Value: val}
}

func (p *Parser) parseParenExpression() ast.Expression {
	start := loc(p.curToken)
	p.nextToken() // consume '('

	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.Tuple{Loc: start}
	}
	if p.curTokenIs(token.YIELD) {
		val := p.parseYield()
		if p.failed() || !p.expectPeekAdvance(token.RPAREN) {
			return nil
		}
		return val
	}

	first := p.parseTestOrStar()
	if p.failed() {
		return nil
	}

	if p.curTokenIs(token.FOR) || (p.curTokenIs(token.ASYNC) && p.peekTokenIs(token.FOR)) {
		comp := p.parseComprehensionTail(start, ast.CompGenerator, first, nil, nil)
		if p.failed() || !p.expectPeekAdvance(token.RPAREN) {
			return nil
		}
		return comp
	}

	if !p.curTokenIs(token.COMMA) {
		if !p.expectPeekAdvance(token.RPAREN) {
			return nil
		}
		return first
	}

	elements := []ast.Expression{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if p.curTokenIs(token.RPAREN) {
			break
		}
		elements = append(elements, p.parseTestOrStar())
		if p.failed() {
			return nil
		}
	}
	if !p.expectPeekAdvance(token.RPAREN) {
		return nil
	}
	return &ast.Tuple{Loc: start, Elements: elements}
}

// expectPeekAdvance requires curToken == t and advances past it; unlike
// expectPeek (which checks the *next* token before advancing), this checks
// the token the parser is already sitting on.
func (p *Parser) expectPeekAdvance(t token.Type) bool {
	if !p.curTokenIs(t) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, t)
		return false
	}
	p.nextToken()
	return true
}

func (p *Parser) parseLambda() ast.Expression {
	start := loc(p.curToken)
	p.nextToken()
	params := p.parseParameterList(token.COLON, false)
	if p.failed() || !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseTest()
	if p.failed() {
		return nil
	}
	return &ast.Lambda{Loc: start, Args: params, Body: body}
}

func (p *Parser) parseCallTrailer(fn ast.Expression) ast.Expression {
	start := loc(p.curToken)
	p.nextToken() // consume '('
	args, keywords := p.parseCallArguments()
	if p.failed() || !p.expectPeekAdvance(token.RPAREN) {
		return nil
	}
	return &ast.Call{Loc: start, Function: fn, Args: args, Keywords: keywords}
}

func (p *Parser) parseSubscriptTrailer(value ast.Expression) ast.Expression {
	start := loc(p.curToken)
	p.nextToken() // consume '['
	index := p.parseSubscriptList()
	if p.failed() || !p.expectPeekAdvance(token.RBRACKET) {
		return nil
	}
	return &ast.Subscript{Loc: start, A: value, B: index}
}

func (p *Parser) parseAttributeTrailer(value ast.Expression) ast.Expression {
	start := loc(p.curToken)
	p.nextToken() // consume '.'
	if !p.curTokenIs(token.NAME) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
		return nil
	}
	name, _ := p.curToken.Literal.(string)
	p.nextToken()
	return &ast.Attribute{Loc: start, Value: value, Name: name}
}

