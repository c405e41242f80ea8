package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/token"
)

// parseSubscriptList parses the contents of `a[...]`: one or more
// comma-separated subscripts, each of which may itself be a slice
// (spec.md §4.2 "Subscripts"/"Slices", invariant I8/T5).
func (p *Parser) parseSubscriptList() ast.Expression {
	first := p.parseSubscript()
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
		if p.curTokenIs(token.RBRACKET) {
			break
		}
		elements = append(elements, p.parseSubscript())
		if p.failed() {
			return nil
		}
	}
	return &ast.Tuple{Loc: start, Elements: elements}
}

// parseSubscript parses one subscript entry: either a plain expression or a
// `[lower]:[upper][:[step]]` slice.
func (p *Parser) parseSubscript() ast.Expression {
	start := loc(p.curToken)

	var lower ast.Expression
	if !p.curTokenIs(token.COLON) {
		lower = p.parseTest()
		if p.failed() {
			return nil
		}
	}
	if !p.curTokenIs(token.COLON) {
		return lower
	}

	elements := [3]ast.Expression{lower, nil, nil}
	p.nextToken() // consume first ':'
	if !p.curTokenIs(token.COLON) && !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.COMMA) {
		elements[1] = p.parseTest()
		if p.failed() {
			return nil
		}
	}
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		if !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.COMMA) {
			elements[2] = p.parseTest()
			if p.failed() {
				return nil
			}
		}
	}
	for i, e := range elements {
		if e == nil {
			elements[i] = &ast.None{Loc: start}
		}
	}
	return &ast.Slice{Loc: start, Elements: elements}
}

// parseCallArguments parses the contents of `f(...)`: positional arguments
// (including `*args` and a lone generator expression), then keyword
// arguments (including `**kwargs`), enforcing the positional-after-keyword
// rule (spec.md §4.2, invariant I5).
func (p *Parser) parseCallArguments() ([]ast.Expression, []*ast.Keyword) {
	var args []ast.Expression
	var keywords []*ast.Keyword
	seenKeyword := false

	if p.curTokenIs(token.RPAREN) {
		return nil, nil
	}

	for {
		start := loc(p.curToken)

		if p.curTokenIs(token.DSTAR) {
			p.nextToken()
			val := p.parseTest()
			if p.failed() {
				return nil, nil
			}
			keywords = append(keywords, &ast.Keyword{Loc: start, Value: val})
			seenKeyword = true
		} else if p.curTokenIs(token.STAR) {
			// Starred positional stays legal after a keyword has already
			// appeared (spec.md invariant I5) -- only a bare positional
			// triggers PositionalAfterKeyword below.
			p.nextToken()
			val := p.parseTest()
			if p.failed() {
				return nil, nil
			}
			args = append(args, &ast.Starred{Loc: start, Value: val})
		} else {
			expr := p.parseTest()
			if p.failed() {
				return nil, nil
			}

			if p.curTokenIs(token.FOR) || (p.curTokenIs(token.ASYNC) && p.peekTokenIs(token.FOR)) {
				if len(args) > 0 || len(keywords) > 0 {
					p.fail(diagnostics.StructuralSyntax, p.curToken)
					return nil, nil
				}
				comp := p.parseComprehensionTail(start, ast.CompGenerator, expr, nil, nil)
				if p.failed() {
					return nil, nil
				}
				return []ast.Expression{comp}, nil
			}

			if p.curTokenIs(token.ASSIGN) {
				name, ok := expr.(*ast.Identifier)
				if !ok {
					p.fail(diagnostics.StructuralSyntax, p.curToken)
					return nil, nil
				}
				p.nextToken()
				val := p.parseTest()
				if p.failed() {
					return nil, nil
				}
				nm := name.Name
				keywords = append(keywords, &ast.Keyword{Loc: start, Name: &nm, Value: val})
				seenKeyword = true
			} else {
				if seenKeyword {
					p.fail(diagnostics.PositionalAfterKeyword, p.curToken)
					return nil, nil
				}
				args = append(args, expr)
			}
		}

		if !p.curTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if p.curTokenIs(token.RPAREN) {
			break
		}
	}

	return args, keywords
}
