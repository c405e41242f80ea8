package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/token"
)

// parseStatement parses one top-level statement production: a compound
// statement, or a simple-statement line. A simple-statement line may carry
// several semicolon-separated small_stmts; the first is returned directly
// and the rest queue onto p.pendingStmts, drained before any new production
// starts — the same pending-queue technique the lexer uses for synthetic
// INDENT/DEDENT tokens.
func (p *Parser) parseStatement() ast.Statement {
	if len(p.pendingStmts) > 0 {
		s := p.pendingStmts[0]
		p.pendingStmts = p.pendingStmts[1:]
		return s
	}

	if p.curTokenIs(token.BADINDENT) || p.curTokenIs(token.INDENT) {
		p.fail(diagnostics.UnexpectedIndent, p.curToken)
		return nil
	}
	if p.curTokenIs(token.BADDEDENT) {
		p.fail(diagnostics.UnexpectedDedent, p.curToken)
		return nil
	}

	switch p.curToken.Type {
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement(false)
	case token.TRY:
		return p.parseTryStatement()
	case token.WITH:
		return p.parseWithStatement(false)
	case token.DEF:
		return p.parseFunctionDef(nil, false)
	case token.CLASS:
		return p.parseClassDef(nil)
	case token.ASYNC:
		return p.parseAsyncStatement()
	case token.AT:
		return p.parseDecorated()
	default:
		stmts := p.parseSimpleStatementLine()
		if p.failed() || len(stmts) == 0 {
			return nil
		}
		if len(stmts) > 1 {
			p.pendingStmts = append(p.pendingStmts, stmts[1:]...)
		}
		return stmts[0]
	}
}

// parseBlock parses the suite following a compound statement header's ':',
// which the caller has already consumed: either an indented block or an
// inline simple-statement line (spec.md §4 block grammar).
func (p *Parser) parseBlock() []ast.Statement {
	if p.curTokenIs(token.NEWLINE) {
		p.nextToken()
		if p.curTokenIs(token.BADINDENT) {
			p.fail(diagnostics.UnexpectedIndent, p.curToken)
			return nil
		}
		if !p.expectPeekAdvance(token.INDENT) {
			return nil
		}
		var stmts []ast.Statement
		for (len(p.pendingStmts) > 0 || (!p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF))) && !p.failed() {
			s := p.parseStatement()
			if p.failed() {
				return nil
			}
			if s != nil {
				stmts = append(stmts, s)
			}
			p.skipNewlines()
		}
		if p.failed() || !p.expectPeekAdvance(token.DEDENT) {
			return nil
		}
		return stmts
	}
	return p.parseSimpleStatementLine()
}

func isSimpleStmtEnd(t token.Type) bool {
	return t == token.NEWLINE || t == token.SEMICOLON || t == token.EOF
}

// parseSimpleStatementLine parses `small_stmt (';' small_stmt)* [';'] NEWLINE`.
func (p *Parser) parseSimpleStatementLine() []ast.Statement {
	var stmts []ast.Statement
	for {
		s := p.parseSimpleStatement()
		if p.failed() {
			return nil
		}
		stmts = append(stmts, s)
		if !p.curTokenIs(token.SEMICOLON) {
			break
		}
		p.nextToken()
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.EOF) {
			break
		}
	}
	if p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
	return stmts
}

var augAssignOps = map[token.Type]ast.AugAssignOp{
	token.PLUS_EQ:    ast.AugAdd,
	token.MINUS_EQ:   ast.AugSub,
	token.STAR_EQ:    ast.AugMul,
	token.SLASH_EQ:   ast.AugDiv,
	token.DSLASH_EQ:  ast.AugFloorDiv,
	token.PERCENT_EQ: ast.AugMod,
	token.AT_EQ:      ast.AugMatMul,
	token.DSTAR_EQ:   ast.AugPow,
	token.LSHIFT_EQ:  ast.AugLShift,
	token.RSHIFT_EQ:  ast.AugRShift,
	token.PIPE_EQ:    ast.AugBitOr,
	token.CARET_EQ:   ast.AugBitXor,
	token.AMP_EQ:     ast.AugBitAnd,
}

// parseSimpleStatement dispatches the non-compound statement forms
// (spec.md §4.1-§4.3).
func (p *Parser) parseSimpleStatement() ast.Statement {
	start := loc(p.curToken)
	switch p.curToken.Type {
	case token.PASS:
		p.nextToken()
		return &ast.Pass{Loc: start}
	case token.BREAK:
		p.nextToken()
		return &ast.Break{Loc: start}
	case token.CONTINUE:
		p.nextToken()
		return &ast.Continue{Loc: start}
	case token.RETURN:
		p.nextToken()
		var val ast.Expression
		if !isSimpleStmtEnd(p.curToken.Type) {
			val = p.parseTestListAsExpr()
			if p.failed() {
				return nil
			}
		}
		return &ast.Return{Loc: start, Value: val}
	case token.DEL:
		p.nextToken()
		targets := p.parseTargetCommaList()
		if p.failed() {
			return nil
		}
		return &ast.Delete{Loc: start, Targets: targets}
	case token.GLOBAL:
		p.nextToken()
		names := p.parseNameList()
		if p.failed() {
			return nil
		}
		return &ast.Global{Loc: start, Names: names}
	case token.NONLOCAL:
		p.nextToken()
		names := p.parseNameList()
		if p.failed() {
			return nil
		}
		return &ast.Nonlocal{Loc: start, Names: names}
	case token.ASSERT:
		p.nextToken()
		test := p.parseTest()
		if p.failed() {
			return nil
		}
		var msg ast.Expression
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			msg = p.parseTest()
			if p.failed() {
				return nil
			}
		}
		return &ast.Assert{Loc: start, Test: test, Msg: msg}
	case token.IMPORT:
		return p.parseImport(start)
	case token.FROM:
		return p.parseImportFrom(start)
	case token.RAISE:
		p.nextToken()
		var exc, cause ast.Expression
		if !isSimpleStmtEnd(p.curToken.Type) {
			exc = p.parseTest()
			if p.failed() {
				return nil
			}
			if p.curTokenIs(token.FROM) {
				p.nextToken()
				cause = p.parseTest()
				if p.failed() {
					return nil
				}
			}
		}
		return &ast.Raise{Loc: start, Exception: exc, Cause: cause}
	default:
		return p.parseExprOrAssignStatement(start)
	}
}

func (p *Parser) parseTargetCommaList() []ast.Expression {
	first := p.parseTarget()
	if p.failed() {
		return nil
	}
	targets := []ast.Expression{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if isSimpleStmtEnd(p.curToken.Type) {
			break
		}
		t := p.parseTarget()
		if p.failed() {
			return nil
		}
		targets = append(targets, t)
	}
	return targets
}

func (p *Parser) parseNameList() []string {
	var names []string
	for {
		if !p.curTokenIs(token.NAME) {
			p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
			return nil
		}
		names = append(names, p.curToken.Lexeme)
		p.nextToken()
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	return names
}

// parseExprOrAssignStatement parses everything left after the keyword-led
// simple statements are ruled out: a bare expression statement, a chained
// assignment `target = target = ... = value`, an augmented assignment, or
// an annotated assignment (spec.md §4.2 statement classification).
func (p *Parser) parseExprOrAssignStatement(start ast.Loc) ast.Statement {
	first := p.parseTestListAsExpr()
	if p.failed() {
		return nil
	}

	if op, ok := augAssignOps[p.curToken.Type]; ok {
		p.nextToken()
		value := p.parseTestListAsExpr()
		if p.failed() {
			return nil
		}
		return &ast.AugAssign{Loc: start, Target: first, Op: op, Value: value}
	}

	if p.curTokenIs(token.COLON) {
		p.nextToken()
		ann := p.parseTest()
		if p.failed() {
			return nil
		}
		var val ast.Expression
		if p.curTokenIs(token.ASSIGN) {
			p.nextToken()
			val = p.parseTestListAsExpr()
			if p.failed() {
				return nil
			}
		}
		return &ast.AnnAssign{Loc: start, Target: first, Annotation: ann, Value: val}
	}

	if p.curTokenIs(token.ASSIGN) {
		targets := []ast.Expression{first}
		var value ast.Expression
		for p.curTokenIs(token.ASSIGN) {
			p.nextToken()
			value = p.parseTestListAsExpr()
			if p.failed() {
				return nil
			}
			if p.curTokenIs(token.ASSIGN) {
				targets = append(targets, value)
			}
		}
		return &ast.Assign{Loc: start, Targets: targets, Value: value}
	}

	return &ast.ExpressionStatement{Loc: start, Expression: first}
}

func (p *Parser) parseImport(start ast.Loc) ast.Statement {
	p.nextToken() // consume 'import'
	names := p.parseImportSymbolList(true)
	if p.failed() {
		return nil
	}
	return &ast.Import{Loc: start, Names: names}
}

func (p *Parser) parseImportFrom(start ast.Loc) ast.Statement {
	p.nextToken() // consume 'from'
	level := 0
	for p.curTokenIs(token.DOT) || p.curTokenIs(token.ELLIPSIS) {
		if p.curTokenIs(token.ELLIPSIS) {
			level += 3
		} else {
			level++
		}
		p.nextToken()
	}
	var module *string
	if p.curTokenIs(token.NAME) {
		name := p.curToken.Lexeme
		p.nextToken()
		for p.curTokenIs(token.DOT) {
			p.nextToken()
			if !p.curTokenIs(token.NAME) {
				p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
				return nil
			}
			name += "." + p.curToken.Lexeme
			p.nextToken()
		}
		module = &name
	}
	if !p.expectPeekAdvance(token.IMPORT) {
		return nil
	}
	names := p.parseImportSymbolList(false)
	if p.failed() {
		return nil
	}
	return &ast.ImportFrom{Loc: start, Level: level, Module: module, Names: names}
}

// parseImportSymbolList parses a comma-separated run of import-list
// elements, tolerating a trailing comma before whatever terminates the list
// (NEWLINE/EOF for a bare list, ')' for a parenthesized group). Each element
// is either a single symbol or a parenthesized group, which splices its
// contents into the flat result (spec.md §8 scenario 7).
func (p *Parser) parseImportSymbolList(dotted bool) []*ast.ImportSymbol {
	var syms []*ast.ImportSymbol
	for {
		group := p.parseImportSymbolOrGroup(dotted)
		if p.failed() {
			return nil
		}
		syms = append(syms, group...)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if !p.curTokenIs(token.NAME) && !p.curTokenIs(token.STAR) && !p.curTokenIs(token.LPAREN) {
			break
		}
	}
	return syms
}

// parseImportSymbolOrGroup parses one import-list element: a single symbol,
// or a parenthesized `(sym, sym, ...)` group whose contents are spliced into
// the caller's flat list rather than nested.
func (p *Parser) parseImportSymbolOrGroup(dotted bool) []*ast.ImportSymbol {
	if p.curTokenIs(token.LPAREN) {
		p.nextToken()
		syms := p.parseImportSymbolList(dotted)
		if p.failed() {
			return nil
		}
		if !p.expectPeekAdvance(token.RPAREN) {
			return nil
		}
		return syms
	}
	sym := p.parseImportSymbol(dotted)
	if p.failed() {
		return nil
	}
	return []*ast.ImportSymbol{sym}
}

func (p *Parser) parseImportSymbol(dotted bool) *ast.ImportSymbol {
	start := loc(p.curToken)
	if p.curTokenIs(token.STAR) {
		p.nextToken()
		return &ast.ImportSymbol{Loc: start, Symbol: "*"}
	}
	if !p.curTokenIs(token.NAME) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
		return nil
	}
	name := p.curToken.Lexeme
	p.nextToken()
	if dotted {
		for p.curTokenIs(token.DOT) {
			p.nextToken()
			if !p.curTokenIs(token.NAME) {
				p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
				return nil
			}
			name += "." + p.curToken.Lexeme
			p.nextToken()
		}
	}
	var alias *string
	if p.curTokenIs(token.AS) {
		p.nextToken()
		if !p.curTokenIs(token.NAME) {
			p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
			return nil
		}
		a := p.curToken.Lexeme
		alias = &a
		p.nextToken()
	}
	return &ast.ImportSymbol{Loc: start, Symbol: name, Alias: alias}
}

// parseIfStatement parses the if/elif/else chain, folding it into
// right-nested *ast.If values via parseElifOrElse (spec.md §4.2/§9).
func (p *Parser) parseIfStatement() ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'if'
	test := p.parseTestListAsExpr()
	if p.failed() || !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	orelse := p.parseElifOrElse()
	if p.failed() {
		return nil
	}
	return &ast.If{Loc: start, Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseElifOrElse() []ast.Statement {
	if p.curTokenIs(token.ELIF) {
		start := loc(p.curToken)
		p.nextToken()
		test := p.parseTestListAsExpr()
		if p.failed() || !p.expectPeekAdvance(token.COLON) {
			return nil
		}
		body := p.parseBlock()
		if p.failed() {
			return nil
		}
		orelse := p.parseElifOrElse()
		if p.failed() {
			return nil
		}
		return []ast.Statement{&ast.If{Loc: start, Test: test, Body: body, Orelse: orelse}}
	}
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeekAdvance(token.COLON) {
			return nil
		}
		return p.parseBlock()
	}
	return nil
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'while'
	test := p.parseTestListAsExpr()
	if p.failed() || !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	var orelse []ast.Statement
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeekAdvance(token.COLON) {
			return nil
		}
		orelse = p.parseBlock()
		if p.failed() {
			return nil
		}
	}
	return &ast.While{Loc: start, Test: test, Body: body, Orelse: orelse}
}

func (p *Parser) parseForStatement(isAsync bool) ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'for'
	target := p.parseTargetList()
	if p.failed() || !p.expectPeekAdvance(token.IN) {
		return nil
	}
	iter := p.parseTestListAsExpr()
	if p.failed() || !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	var orelse []ast.Statement
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeekAdvance(token.COLON) {
			return nil
		}
		orelse = p.parseBlock()
		if p.failed() {
			return nil
		}
	}
	return &ast.For{Loc: start, IsAsync: isAsync, Target: target, Iter: iter, Body: body, Orelse: orelse}
}

func (p *Parser) parseTryStatement() ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'try'
	if !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	var handlers []*ast.ExceptHandler
	for p.curTokenIs(token.EXCEPT) {
		h := p.parseExceptHandler()
		if p.failed() {
			return nil
		}
		handlers = append(handlers, h)
	}
	var orelse []ast.Statement
	if p.curTokenIs(token.ELSE) {
		if len(handlers) == 0 {
			p.fail(diagnostics.StructuralSyntax, p.curToken)
			return nil
		}
		p.nextToken()
		if !p.expectPeekAdvance(token.COLON) {
			return nil
		}
		orelse = p.parseBlock()
		if p.failed() {
			return nil
		}
	}
	var finalbody []ast.Statement
	if p.curTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeekAdvance(token.COLON) {
			return nil
		}
		finalbody = p.parseBlock()
		if p.failed() {
			return nil
		}
	}
	return &ast.Try{Loc: start, Body: body, Handlers: handlers, Orelse: orelse, Finalbody: finalbody}
}

func (p *Parser) parseExceptHandler() *ast.ExceptHandler {
	start := loc(p.curToken)
	p.nextToken() // consume 'except'
	var typ ast.Expression
	var name *string
	if !p.curTokenIs(token.COLON) {
		typ = p.parseTest()
		if p.failed() {
			return nil
		}
		if p.curTokenIs(token.AS) {
			p.nextToken()
			if !p.curTokenIs(token.NAME) {
				p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
				return nil
			}
			n := p.curToken.Lexeme
			name = &n
			p.nextToken()
		}
	}
	if !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.ExceptHandler{Loc: start, Typ: typ, Name: name, Body: body}
}

func (p *Parser) parseWithStatement(isAsync bool) ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'with'
	var items []*ast.WithItem
	for {
		item := p.parseWithItem()
		if p.failed() {
			return nil
		}
		items = append(items, item)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.With{Loc: start, IsAsync: isAsync, Items: items, Body: body}
}

func (p *Parser) parseWithItem() *ast.WithItem {
	start := loc(p.curToken)
	ctx := p.parseTest()
	if p.failed() {
		return nil
	}
	var optional ast.Expression
	if p.curTokenIs(token.AS) {
		p.nextToken()
		optional = p.parseTarget()
		if p.failed() {
			return nil
		}
	}
	return &ast.WithItem{Loc: start, ContextExpr: ctx, OptionalVars: optional}
}

func (p *Parser) parseAsyncStatement() ast.Statement {
	p.nextToken() // consume 'async'
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef(nil, true)
	case token.FOR:
		return p.parseForStatement(true)
	case token.WITH:
		return p.parseWithStatement(true)
	default:
		p.fail(diagnostics.StructuralSyntax, p.curToken)
		return nil
	}
}

// parseDecorated parses a run of `@expr` decorator lines followed by the
// function or class definition they attach to (spec.md §4.2 "Decorators").
func (p *Parser) parseDecorated() ast.Statement {
	var decorators []ast.Expression
	for p.curTokenIs(token.AT) {
		p.nextToken()
		d := p.parseTest()
		if p.failed() {
			return nil
		}
		decorators = append(decorators, d)
		if !p.curTokenIs(token.NEWLINE) {
			p.fail(diagnostics.StructuralSyntax, p.curToken, token.NEWLINE)
			return nil
		}
		p.nextToken()
		p.skipNewlines()
	}
	isAsync := false
	if p.curTokenIs(token.ASYNC) {
		isAsync = true
		p.nextToken()
	}
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef(decorators, isAsync)
	case token.CLASS:
		return p.parseClassDef(decorators)
	default:
		p.fail(diagnostics.StructuralSyntax, p.curToken)
		return nil
	}
}

func (p *Parser) parseFunctionDef(decorators []ast.Expression, isAsync bool) ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'def'
	if !p.curTokenIs(token.NAME) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
		return nil
	}
	name := p.curToken.Lexeme
	p.nextToken()
	if !p.expectPeekAdvance(token.LPAREN) {
		return nil
	}
	params := p.parseParameterList(token.RPAREN, true)
	if p.failed() || !p.expectPeekAdvance(token.RPAREN) {
		return nil
	}
	var returns ast.Expression
	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		returns = p.parseTest()
		if p.failed() {
			return nil
		}
	}
	if !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.FunctionDef{Loc: start, IsAsync: isAsync, Name: name, Args: params, Body: body, DecoratorList: decorators, Returns: returns}
}

func (p *Parser) parseClassDef(decorators []ast.Expression) ast.Statement {
	start := loc(p.curToken)
	p.nextToken() // consume 'class'
	if !p.curTokenIs(token.NAME) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
		return nil
	}
	name := p.curToken.Lexeme
	p.nextToken()
	var bases []ast.Expression
	var keywords []*ast.Keyword
	if p.curTokenIs(token.LPAREN) {
		p.nextToken()
		args, kws := p.parseCallArguments()
		if p.failed() || !p.expectPeekAdvance(token.RPAREN) {
			return nil
		}
		bases = args
		keywords = kws
	}
	if !p.expectPeekAdvance(token.COLON) {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.ClassDef{Loc: start, Name: name, Bases: bases, Keywords: keywords, Body: body, DecoratorList: decorators}
}
