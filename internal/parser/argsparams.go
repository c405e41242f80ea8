package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/token"
)

// parseParameterList parses a def or lambda parameter list up to (but not
// consuming) terminator, validating the monotonicity invariants spec.md §3
// calls out: once a positional parameter has a default, every later
// positional parameter must too (I4/NonDefaultAfterDefault), and
// keyword-only parameters each get their own optional default (I3).
// allowAnnotations is false for lambda parameters, which the grammar never
// lets carry a type.
func (p *Parser) parseParameterList(terminator token.Type, allowAnnotations bool) *ast.Parameters {
	params := &ast.Parameters{}
	sawDefault := false

	for !p.curTokenIs(terminator) {
		switch {
		case p.curTokenIs(token.DSTAR):
			p.nextToken()
			name := p.parseParamName(allowAnnotations)
			if p.failed() {
				return nil
			}
			params.Kwarg = name
			p.consumeOptionalComma()
			return params

		case p.curTokenIs(token.STAR):
			p.nextToken()
			if p.curTokenIs(token.COMMA) || p.curTokenIs(terminator) {
				params.Vararg = ast.Varargs{Kind: ast.VarargsUnnamed}
			} else {
				name := p.parseParamName(allowAnnotations)
				if p.failed() {
					return nil
				}
				params.Vararg = ast.Varargs{Kind: ast.VarargsNamed, Name: name}
			}
			for p.curTokenIs(token.COMMA) {
				p.nextToken()
				if p.curTokenIs(terminator) {
					break
				}
				if p.curTokenIs(token.DSTAR) {
					p.nextToken()
					kwname := p.parseParamName(allowAnnotations)
					if p.failed() {
						return nil
					}
					params.Kwarg = kwname
					p.consumeOptionalComma()
					return params
				}
				name := p.parseParamName(allowAnnotations)
				if p.failed() {
					return nil
				}
				var def ast.Expression
				if p.curTokenIs(token.ASSIGN) {
					p.nextToken()
					def = p.parseTest()
					if p.failed() {
						return nil
					}
				}
				params.KwOnlyArgs = append(params.KwOnlyArgs, name)
				params.KwDefaults = append(params.KwDefaults, def)
			}
			return params

		default:
			name := p.parseParamName(allowAnnotations)
			if p.failed() {
				return nil
			}
			if p.curTokenIs(token.ASSIGN) {
				p.nextToken()
				def := p.parseTest()
				if p.failed() {
					return nil
				}
				sawDefault = true
				params.Defaults = append(params.Defaults, def)
			} else if sawDefault {
				p.fail(diagnostics.NonDefaultAfterDefault, token.Token{Line: name.Loc.Line, Column: name.Loc.Column, Lexeme: name.Arg}, name.Arg)
				return nil
			}
			params.Args = append(params.Args, name)

			if p.curTokenIs(token.COMMA) {
				p.nextToken()
				continue
			}
			return params
		}
	}

	return params
}

func (p *Parser) parseParamName(allowAnnotations bool) *ast.Parameter {
	if !p.curTokenIs(token.NAME) {
		p.fail(diagnostics.StructuralSyntax, p.curToken, token.NAME)
		return nil
	}
	tok := p.curToken
	name, _ := tok.Literal.(string)
	p.nextToken()
	param := &ast.Parameter{Loc: loc(tok), Arg: name}
	if allowAnnotations && p.curTokenIs(token.COLON) {
		p.nextToken()
		ann := p.parseTest()
		if p.failed() {
			return nil
		}
		param.Annotation = ann
	}
	return param
}

func (p *Parser) consumeOptionalComma() {
	if p.curTokenIs(token.COMMA) {
		p.nextToken()
	}
}
