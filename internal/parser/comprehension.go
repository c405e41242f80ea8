package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/token"
)

// parseComprehensionTail parses the `comp_for` clauses that follow an
// already-parsed element (or dict key/value pair) and assembles the
// Comprehension node. The caller has already consumed everything up to the
// first `for`/`async for`.
func (p *Parser) parseComprehensionTail(start ast.Loc, kind ast.ComprehensionKind, element, key, value ast.Expression) ast.Expression {
	generators := p.parseCompClauses()
	if p.failed() {
		return nil
	}
	return &ast.Comprehension{Loc: start, Kind: kind, Element: element, Key: key, Value: value, Generators: generators}
}

// parseCompClauses parses one or more `[async] for target in or_test
// ('if' test_nocond)*` generator clauses.
func (p *Parser) parseCompClauses() []*ast.CompClause {
	var clauses []*ast.CompClause
	for p.curTokenIs(token.FOR) || p.curTokenIs(token.ASYNC) {
		start := loc(p.curToken)
		isAsync := false
		if p.curTokenIs(token.ASYNC) {
			isAsync = true
			p.nextToken()
		}
		if !p.expectPeekAdvance(token.FOR) {
			return nil
		}
		target := p.parseTargetList()
		if p.failed() || !p.expectPeekAdvance(token.IN) {
			return nil
		}
		iter := p.parseOrTest()
		if p.failed() {
			return nil
		}
		var ifs []ast.Expression
		for p.curTokenIs(token.IF) {
			p.nextToken()
			cond := p.parseTestNoCond()
			if p.failed() {
				return nil
			}
			ifs = append(ifs, cond)
		}
		clauses = append(clauses, &ast.CompClause{Loc: start, Target: target, Iter: iter, Ifs: ifs, IsAsync: isAsync})
	}
	return clauses
}

// parseTargetList parses a comprehension/for-loop target: a single target
// or a bare tuple of targets, allowing `*name` and parenthesized groups.
func (p *Parser) parseTargetList() ast.Expression {
	first := p.parseTarget()
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
		if p.curTokenIs(token.IN) {
			break
		}
		elements = append(elements, p.parseTarget())
		if p.failed() {
			return nil
		}
	}
	return &ast.Tuple{Loc: start, Elements: elements}
}

// parseTarget parses one assignment/loop target: a name, an attribute, a
// subscript, a starred target, or a parenthesized/bracketed group of
// targets — everything atom_expr trailers can already build.
func (p *Parser) parseTarget() ast.Expression {
	if p.curTokenIs(token.STAR) {
		start := loc(p.curToken)
		p.nextToken()
		inner := p.parseTarget()
		if p.failed() {
			return nil
		}
		return &ast.Starred{Loc: start, Value: inner}
	}
	if p.curTokenIs(token.LPAREN) || p.curTokenIs(token.LBRACKET) {
		closing := token.RPAREN
		if p.curTokenIs(token.LBRACKET) {
			closing = token.RBRACKET
		}
		start := loc(p.curToken)
		p.nextToken()
		if p.curTokenIs(closing) {
			p.nextToken()
			return &ast.Tuple{Loc: start}
		}
		first := p.parseTarget()
		if p.failed() {
			return nil
		}
		if !p.curTokenIs(token.COMMA) {
			if !p.expectPeekAdvance(closing) {
				return nil
			}
			return first
		}
		elements := []ast.Expression{first}
		for p.curTokenIs(token.COMMA) {
			p.nextToken()
			if p.curTokenIs(closing) {
				break
			}
			elements = append(elements, p.parseTarget())
			if p.failed() {
				return nil
			}
		}
		if !p.expectPeekAdvance(closing) {
			return nil
		}
		return &ast.Tuple{Loc: start, Elements: elements}
	}
	return p.parseAtomExpr()
}
