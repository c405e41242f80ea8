package diagnostics

import (
	"strings"
	"testing"

	"github.com/corelang/pyparse/internal/token"
)

func TestErrorFormatsLocationAndMessage(t *testing.T) {
	tok := token.Token{Type: token.ILLEGAL, Lexeme: "$", Line: 3, Column: 7}
	err := New(StructuralSyntax, tok, "$")

	got := err.Error()
	if !strings.HasPrefix(got, "3:7 ") {
		t.Fatalf("expected error to start with location 3:7, got %q", got)
	}
	if !strings.Contains(got, "unexpected token $") {
		t.Fatalf("expected templated message, got %q", got)
	}
}

func TestNewLexerSetsPhase(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	err := NewLexer(LexicalError, tok, "bad escape")
	if err.Phase != PhaseLexer {
		t.Fatalf("expected PhaseLexer, got %v", err.Phase)
	}
}

func TestNewSetsParserPhase(t *testing.T) {
	tok := token.Token{Line: 1, Column: 1}
	err := New(UnexpectedIndent, tok)
	if err.Phase != PhaseParser {
		t.Fatalf("expected PhaseParser, got %v", err.Phase)
	}
	if err.Error() == "" {
		t.Fatalf("expected non-empty error message")
	}
}
