// Package parser implements the grammar engine: a two-token-lookahead,
// Pratt-style recursive-descent parser driven by the mode sentinel the
// lexer emits first (spec.md §6). It halts at the first diagnostic —
// there is no error recovery (spec.md §4.7/§7).
package parser

import (
	"github.com/corelang/pyparse/internal/ast"
	"github.com/corelang/pyparse/internal/diagnostics"
	"github.com/corelang/pyparse/internal/pipeline"
	"github.com/corelang/pyparse/internal/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds all state for one parse. It is built fresh for every call —
// including each reentrant invocation the formatted-string bridge makes —
// so there is never shared mutable state across independent parses.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token
	ctx       *pipeline.PipelineContext

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	err *diagnostics.Error // first fatal error; once set, parsing unwinds

	// pendingStmts holds the small_stmts still owed from a semicolon-joined
	// simple-statement line, drained by parseStatement before it starts a
	// new production — mirrors the lexer's own pending-token queue.
	pendingStmts []ast.Statement
}

// New builds a Parser over stream, registers the grammar tables, and primes
// curToken/peekToken. ctx receives any diagnostic this parse raises.
func New(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{stream: stream, ctx: ctx}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.NAME:     p.parseIdentifier,
		token.INT:      p.parseNumberLiteral,
		token.FLOAT:    p.parseNumberLiteral,
		token.COMPLEX:  p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.BYTES:    p.parseBytesLiteral,
		token.TRUE:     p.parseTrue,
		token.FALSE:    p.parseFalse,
		token.NONE:     p.parseNone,
		token.ELLIPSIS: p.parseEllipsis,
		token.LPAREN:   p.parseParenExpression,
		token.LBRACKET: p.parseListOrComprehension,
		token.LBRACE:   p.parseDictOrSetOrComprehension,
		token.MINUS:    p.parseUnary,
		token.PLUS:     p.parseUnary,
		token.TILDE:    p.parseUnary,
		token.NOT:      p.parseUnary,
		token.STAR:     p.parseStarred,
		token.DSTAR:    p.parseDoubleStarred,
		token.LAMBDA:   p.parseLambda,
		token.YIELD:    p.parseYield,
		token.AWAIT:    p.parseAwait,
	}

	// Trailers (call/subscript/attribute) are the only true Pratt-style
	// infix operators here — every other binary form is handled by the
	// layered precedence functions in expressions.go, mirroring CPython's
	// own grammar layering more directly than a single generic precedence
	// table could for the non-associative comparison chain.
	p.infixParseFns = map[token.Type]infixParseFn{
		token.LPAREN:   p.parseCallTrailer,
		token.LBRACKET: p.parseSubscriptTrailer,
		token.DOT:      p.parseAttributeTrailer,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	peeked := p.stream.Peek(1)
	if len(peeked) > 0 {
		p.peekToken = peeked[0]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
	p.stream.Next()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.fail(diagnostics.StructuralSyntax, p.peekToken, t)
	return false
}

// fail records the first diagnostic for this parse. Later calls are no-ops:
// the spec halts at the first error (spec.md §4.7).
func (p *Parser) fail(code diagnostics.Code, tok token.Token, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = diagnostics.New(code, tok, args...)
	p.ctx.Errors = append(p.ctx.Errors, p.err)
}

func (p *Parser) failed() bool { return p.err != nil }

// skipNewlines consumes NEWLINE tokens the grammar treats as insignificant
// at the current position (e.g. blank lines between top-level statements).
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) && !p.failed() {
		p.nextToken()
	}
}

// ParseProgram implements the ModeProgram entry point: a sequence of
// statements until EOF.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for (!p.curTokenIs(token.EOF) || len(p.pendingStmts) > 0) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			break
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog
}

// ParseSingleStatement implements the ModeStatement entry point: exactly
// one statement (compound or simple), consuming its trailing NEWLINE if
// present.
func (p *Parser) ParseSingleStatement() ast.Statement {
	p.skipNewlines()
	if p.curTokenIs(token.EOF) {
		return nil
	}
	stmt := p.parseStatement()
	return stmt
}

// ParseSingleExpression implements the ModeExpression entry point: one
// expression, optionally a bare tuple via top-level commas.
func (p *Parser) ParseSingleExpression() ast.Expression {
	p.skipNewlines()
	expr := p.parseTestListAsExpr()
	if p.failed() {
		return nil
	}
	p.skipNewlines()
	if !p.curTokenIs(token.EOF) && !p.failed() {
		p.fail(diagnostics.StructuralSyntax, p.curToken)
	}
	return expr
}

// Run drives the whole program according to ctx.Mode and fills in
// ctx.AstRoot. It is the single place the three entry points are wired
// together (spec.md §6, invariant T8).
func Run(stream pipeline.TokenStream, ctx *pipeline.PipelineContext) ast.Top {
	p := New(stream, ctx)

	switch p.curToken.Type {
	case token.START_PROGRAM:
		p.nextToken()
		prog := p.ParseProgram()
		return ast.Top{Program: prog}
	case token.START_STATEMENT:
		p.nextToken()
		stmt := p.ParseSingleStatement()
		return ast.Top{Statement: stmt}
	case token.START_EXPRESSION:
		p.nextToken()
		expr := p.ParseSingleExpression()
		return ast.Top{Expression: expr}
	default:
		p.fail(diagnostics.StructuralSyntax, p.curToken)
		return ast.Top{}
	}
}
