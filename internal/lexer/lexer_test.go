package lexer

import (
	"testing"

	"github.com/corelang/pyparse/internal/token"
)

func collectTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	l := New(src, token.START_PROGRAM)
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	return types
}

func TestNextTokenSimpleAssignment(t *testing.T) {
	got := collectTypes(t, "x = 1 + 2\n")
	want := []token.Type{
		token.START_PROGRAM, token.NAME, token.ASSIGN, token.INT, token.PLUS,
		token.INT, token.NEWLINE, token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenIndentation(t *testing.T) {
	src := "if x:\n    y = 1\n    z = 2\nw = 3\n"
	got := collectTypes(t, src)
	want := []token.Type{
		token.START_PROGRAM,
		token.IF, token.NAME, token.COLON, token.NEWLINE,
		token.INDENT,
		token.NAME, token.ASSIGN, token.INT, token.NEWLINE,
		token.NAME, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT,
		token.NAME, token.ASSIGN, token.INT, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenOperators(t *testing.T) {
	got := collectTypes(t, "a += 1; b //= 2; c **= 3\n")
	want := []token.Type{
		token.START_PROGRAM,
		token.NAME, token.PLUS_EQ, token.INT, token.SEMICOLON,
		token.NAME, token.DSLASH_EQ, token.INT, token.SEMICOLON,
		token.NAME, token.DSTAR_EQ, token.INT, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenKeywordsNotNames(t *testing.T) {
	got := collectTypes(t, "if not a in b: pass\n")
	want := []token.Type{
		token.START_PROGRAM,
		token.IF, token.NOT, token.NAME, token.IN, token.NAME, token.COLON, token.PASS, token.NEWLINE,
		token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenStringLiteral(t *testing.T) {
	got := collectTypes(t, `s = "hello"` + "\n")
	want := []token.Type{
		token.START_PROGRAM, token.NAME, token.ASSIGN, token.STRING, token.NEWLINE, token.EOF,
	}
	assertTypes(t, got, want)
}

func TestNextTokenEllipsisVsDots(t *testing.T) {
	l := New("from . import x\n", token.START_PROGRAM)
	l.NextToken() // sentinel
	tok := l.NextToken()
	if tok.Type != token.FROM {
		t.Fatalf("expected FROM, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.DOT {
		t.Fatalf("expected single DOT, got %s", tok.Type)
	}
}

func assertTypes(t *testing.T, got, want []token.Type) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}
