// Package config holds the grammar's operator precedence ladder as a data
// table, kept separate from the parser the way the teacher keeps its own
// operator catalog in one place so the precedence chain can be inspected
// (and tested) without constructing a parser. The parser does not read it:
// its layered expression functions encode the same ladder. The
// prettyprinter's CodePrinter reads BinaryOperators and the Prec* levels.
// The keyword table lives in internal/token.
package config

import "github.com/corelang/pyparse/internal/token"

// Associativity mirrors the teacher's own enum.
type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
)

// Precedence levels, lowest to highest, matching the grammar's chain:
// lambda < ternary < or < and < not < comparisons < | < ^ < & < shifts <
// additive < multiplicative < unary < ** < await < atom-with-trailers.
const (
	PrecLowest = iota
	PrecLambda
	PrecTernary
	PrecOr
	PrecAnd
	PrecNot
	PrecComparison
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecUnary
	PrecPower
	PrecAwait
	PrecCall
)

// BinaryInfo is the precedence/associativity entry for one infix operator
// token (spec.md §4.2's operator table).
type BinaryInfo struct {
	Precedence int
	Assoc      Associativity
}

// BinaryOperators maps every infix operator token to its precedence level.
// Comparison operators are intentionally absent: they're folded into a
// single Compare node by the parser rather than climbed individually (T1).
var BinaryOperators = map[token.Type]BinaryInfo{
	token.PIPE:    {PrecBitOr, AssocLeft},
	token.CARET:   {PrecBitXor, AssocLeft},
	token.AMP:     {PrecBitAnd, AssocLeft},
	token.LSHIFT:  {PrecShift, AssocLeft},
	token.RSHIFT:  {PrecShift, AssocLeft},
	token.PLUS:    {PrecAdditive, AssocLeft},
	token.MINUS:   {PrecAdditive, AssocLeft},
	token.STAR:    {PrecMultiplicative, AssocLeft},
	token.SLASH:   {PrecMultiplicative, AssocLeft},
	token.DSLASH:  {PrecMultiplicative, AssocLeft},
	token.PERCENT: {PrecMultiplicative, AssocLeft},
	token.AT:      {PrecMultiplicative, AssocLeft},
	token.DSTAR:   {PrecPower, AssocRight},
}

// ComparisonOperators are the chainable comparison tokens (spec.md §3/§4.2
// "comparison fold", invariant I1/T1).
var ComparisonOperators = map[token.Type]bool{
	token.LT: true, token.LE: true, token.GT: true, token.GE: true,
	token.EQ: true, token.NE: true, token.IN: true, token.IS: true,
	// NOT and IS combine with IN/IS at the parser level (`not in`, `is not`).
}

// AugAssignTokens maps an augmented-assignment token to the bare operator
// it desugars from, matching spec.md §3's AugAssign shape.
var AugAssignTokens = map[token.Type]token.Type{
	token.PLUS_EQ:    token.PLUS,
	token.MINUS_EQ:   token.MINUS,
	token.STAR_EQ:    token.STAR,
	token.SLASH_EQ:   token.SLASH,
	token.DSLASH_EQ:  token.DSLASH,
	token.PERCENT_EQ: token.PERCENT,
	token.AT_EQ:      token.AT,
	token.AMP_EQ:     token.AMP,
	token.PIPE_EQ:    token.PIPE,
	token.CARET_EQ:   token.CARET,
	token.LSHIFT_EQ:  token.LSHIFT,
	token.RSHIFT_EQ:  token.RSHIFT,
	token.DSTAR_EQ:   token.DSTAR,
}
