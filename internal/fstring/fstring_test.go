package fstring

import (
	"testing"

	"github.com/corelang/pyparse/internal/ast"
)

func withStubParser(t *testing.T, fn func(src string, origin ast.Loc) (ast.Expression, error)) {
	t.Helper()
	prev := ExprParser
	ExprParser = fn
	t.Cleanup(func() { ExprParser = prev })
}

func stubIdentParser(src string, origin ast.Loc) (ast.Expression, error) {
	return &ast.Identifier{Loc: origin, Name: src}, nil
}

func TestParseLiteralOnly(t *testing.T) {
	fs, err := Parse("hello world", ast.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.Segments) != 1 || fs.Segments[0].Text != "hello world" || fs.Segments[0].Expr != nil {
		t.Fatalf("expected single literal segment, got %+v", fs.Segments)
	}
}

func TestParseEscapedBraces(t *testing.T) {
	fs, err := Parse("{{literal}}", ast.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.Segments) != 1 || fs.Segments[0].Text != "{literal}" {
		t.Fatalf("expected escaped braces to collapse to literal text, got %+v", fs.Segments)
	}
}

func TestParseInterpolation(t *testing.T) {
	withStubParser(t, stubIdentParser)

	fs, err := Parse("x={value}!", ast.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.Segments) != 3 {
		t.Fatalf("expected 3 segments (literal, expr, literal), got %d: %+v", len(fs.Segments), fs.Segments)
	}
	if fs.Segments[0].Text != "x=" {
		t.Fatalf("expected leading literal 'x=', got %q", fs.Segments[0].Text)
	}
	id, ok := fs.Segments[1].Expr.(*ast.Identifier)
	if !ok || id.Name != "value" {
		t.Fatalf("expected interpolated identifier 'value', got %#v", fs.Segments[1].Expr)
	}
	if fs.Segments[2].Text != "!" {
		t.Fatalf("expected trailing literal '!', got %q", fs.Segments[2].Text)
	}
}

func TestParseDropsConversionAndFormatSpec(t *testing.T) {
	withStubParser(t, stubIdentParser)

	fs, err := Parse("{value!r:>10}", ast.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(fs.Segments))
	}
	id, ok := fs.Segments[0].Expr.(*ast.Identifier)
	if !ok || id.Name != "value" {
		t.Fatalf("expected conversion/format-spec to be stripped, leaving bare 'value', got %#v", fs.Segments[0].Expr)
	}
}

func TestParseUnmatchedCloseBraceErrors(t *testing.T) {
	if _, err := Parse("oops}", ast.Loc{}); err == nil {
		t.Fatalf("expected an error for a lone closing brace")
	}
}

func TestParseEmptyInterpolationErrors(t *testing.T) {
	withStubParser(t, stubIdentParser)
	if _, err := Parse("{ }", ast.Loc{}); err == nil {
		t.Fatalf("expected an error for an empty interpolation")
	}
}

func TestParseNestedBracesInInterpolation(t *testing.T) {
	withStubParser(t, stubIdentParser)
	fs, err := Parse("{a[0]}", ast.Loc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, ok := fs.Segments[0].Expr.(*ast.Identifier)
	if !ok || id.Name != "a[0]" {
		t.Fatalf("expected nested bracket to stay inside the interpolation span, got %#v", fs.Segments[0].Expr)
	}
}
