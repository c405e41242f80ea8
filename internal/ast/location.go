// Package ast defines the typed, source-located tree the parser produces.
// Nodes are tagged variants (a concrete struct per shape); none is mutated
// once reduction creates it, and every node carries a Loc stamped from the
// token or sub-production that produced it (spec.md §3).
package ast

// Loc is an opaque, equality-comparable, cloneable source location. The
// parser only ever copies a Loc from a token or another node — it never
// computes one.
type Loc struct {
	Line   int
	Column int
}

// Clone returns an independent copy of l. Loc is a value type, so this is
// only present to satisfy the specification's "cloneable" requirement
// explicitly; callers may also just assign.
func (l Loc) Clone() Loc { return l }

// Node is satisfied by every AST node: statements, expressions, and the
// small supporting shapes (Parameters, Keyword, and so on).
type Node interface {
	Location() Loc
}

// Statement is a Node that can appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that can appear wherever a value is expected.
type Expression interface {
	Node
	expressionNode()
}
