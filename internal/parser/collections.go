package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/token"
)

// parseListOrComprehension parses `[...]`: an empty list, a list display,
// or a list comprehension, disambiguated by what follows the first element
// (spec.md §4.2 "Comprehensions").
func (p *Parser) parseListOrComprehension() ast.Expression {
	start := loc(p.curToken)
	p.nextToken() // consume '['

	if p.curTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.List{Loc: start}
	}

	first := p.parseTestOrStar()
	if p.failed() {
		return nil
	}

	if p.curTokenIs(token.FOR) || (p.curTokenIs(token.ASYNC) && p.peekTokenIs(token.FOR)) {
		comp := p.parseComprehensionTail(start, ast.CompList, first, nil, nil)
		if p.failed() || !p.expectPeekAdvance(token.RBRACKET) {
			return nil
		}
		return comp
	}

	elements := []ast.Expression{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if p.curTokenIs(token.RBRACKET) {
			break
		}
		elements = append(elements, p.parseTestOrStar())
		if p.failed() {
			return nil
		}
	}
	if !p.expectPeekAdvance(token.RBRACKET) {
		return nil
	}
	return &ast.List{Loc: start, Elements: elements}
}

// parseDictOrSetOrComprehension parses `{...}`: an empty dict, a dict or
// set display, or a dict/set comprehension.
func (p *Parser) parseDictOrSetOrComprehension() ast.Expression {
	start := loc(p.curToken)
	p.nextToken() // consume '{'

	if p.curTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.Dict{Loc: start}
	}

	if p.curTokenIs(token.DSTAR) {
		return p.parseDictRest(start, nil)
	}

	first := p.parseTestOrStar()
	if p.failed() {
		return nil
	}

	if p.curTokenIs(token.COLON) {
		p.nextToken()
		value := p.parseTest()
		if p.failed() {
			return nil
		}
		if p.curTokenIs(token.FOR) || (p.curTokenIs(token.ASYNC) && p.peekTokenIs(token.FOR)) {
			comp := p.parseComprehensionTail(start, ast.CompDict, nil, first, value)
			if p.failed() || !p.expectPeekAdvance(token.RBRACE) {
				return nil
			}
			return comp
		}
		return p.parseDictRest(start, &ast.DictElement{Key: first, Value: value})
	}

	if p.curTokenIs(token.FOR) || (p.curTokenIs(token.ASYNC) && p.peekTokenIs(token.FOR)) {
		comp := p.parseComprehensionTail(start, ast.CompSet, first, nil, nil)
		if p.failed() || !p.expectPeekAdvance(token.RBRACE) {
			return nil
		}
		return comp
	}

	elements := []ast.Expression{first}
	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if p.curTokenIs(token.RBRACE) {
			break
		}
		elements = append(elements, p.parseTestOrStar())
		if p.failed() {
			return nil
		}
	}
	if !p.expectPeekAdvance(token.RBRACE) {
		return nil
	}
	return &ast.Set{Loc: start, Elements: elements}
}

// parseDictEntry parses one `key: value` or `**expr` entry of a dict
// display.
func (p *Parser) parseDictEntry() *ast.DictElement {
	if p.curTokenIs(token.DSTAR) {
		p.nextToken()
		val := p.parseOrExpr()
		if p.failed() {
			return nil
		}
		return &ast.DictElement{Value: val}
	}
	key := p.parseTest()
	if p.failed() {
		return nil
	}
	if !p.curTokenIs(token.COLON) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, token.COLON)
		return nil
	}
	p.nextToken()
	val := p.parseTest()
	if p.failed() {
		return nil
	}
	return &ast.DictElement{Key: key, Value: val}
}

// parseDictRest continues a dict display, collecting entries comma-separated
// until '}'. first is nil only when the caller hasn't parsed an entry yet
// (the `{**expr, ...}` opener).
func (p *Parser) parseDictRest(start ast.Loc, first *ast.DictElement) ast.Expression {
	var elements []ast.DictElement
	if first != nil {
		elements = append(elements, *first)
	} else {
		e := p.parseDictEntry()
		if p.failed() {
			return nil
		}
		elements = append(elements, *e)
	}

	for p.curTokenIs(token.COMMA) {
		p.nextToken()
		if p.curTokenIs(token.RBRACE) {
			break
		}
		e := p.parseDictEntry()
		if p.failed() {
			return nil
		}
		elements = append(elements, *e)
	}

	if !p.expectPeekAdvance(token.RBRACE) {
		return nil
	}
	return &ast.Dict{Loc: start, Elements: elements}
}
