// Package fstring implements the scanning half of the formatted-string
// sub-parser the outer grammar invokes whenever it meets a string token
// flagged IsFormatted (spec.md §4.5 "Formatted-String Bridge"). Parse walks
// the string's raw text, splitting it into literal-text segments and
// `{...}` interpolation spans; each span's source is handed to ExprParser
// for a full reentrant expression parse.
//
// ExprParser lives here as a function variable, not an import, because the
// reentrant parse is itself done by internal/parser — which imports this
// package to invoke Parse. internal/parser's init() installs the real
// implementation; fstring stays a leaf package with no dependency on it.
package fstring

import (
	"fmt"
	"strings"

	"github.com/corelang/pyparse/internal/ast"
)

// ExprParser parses src (the text of a single `{...}` interpolation, braces
// stripped, any conversion/format-spec suffix already dropped) as a
// standalone expression. origin is the enclosing string literal's location,
// passed through for diagnostics that want to relate a sub-parse failure
// back to the outer literal. The parser package sets this at init time.
var ExprParser func(src string, origin ast.Loc) (ast.Expression, error)

// Parse turns the raw text of one formatted-string literal into a
// FormattedString subtree (spec.md §3 "StringGroup"): an ordered run of
// literal-text segments and embedded expressions. `{{` and `}}` escape to a
// literal brace; every other `{` opens an interpolation that must close
// before the literal ends.
func Parse(text string, origin ast.Loc) (ast.FormattedString, error) {
	var segments []ast.FStringSegment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, ast.FStringSegment{Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		switch {
		case ch == '{' && i+1 < len(runes) && runes[i+1] == '{':
			lit.WriteRune('{')
			i += 2
		case ch == '}' && i+1 < len(runes) && runes[i+1] == '}':
			lit.WriteRune('}')
			i += 2
		case ch == '{':
			end, exprSrc, err := scanInterpolation(runes, i+1)
			if err != nil {
				return ast.FormattedString{}, err
			}
			if strings.TrimSpace(exprSrc) == "" {
				return ast.FormattedString{}, fmt.Errorf("empty expression in formatted-string interpolation")
			}
			if ExprParser == nil {
				return ast.FormattedString{}, fmt.Errorf("no expression parser installed")
			}
			flush()
			expr, err := ExprParser(exprSrc, origin)
			if err != nil {
				return ast.FormattedString{}, fmt.Errorf("in {%s}: %w", exprSrc, err)
			}
			segments = append(segments, ast.FStringSegment{Expr: expr})
			i = end + 1
		case ch == '}':
			return ast.FormattedString{}, fmt.Errorf("single '}' is not allowed in a formatted string")
		default:
			lit.WriteRune(ch)
			i++
		}
	}
	flush()
	return ast.FormattedString{Segments: segments}, nil
}

// scanInterpolation scans from just past an opening '{' (start) to its
// matching '}', tracking bracket nesting and quoted substrings so commas,
// colons, and nested braces inside the expression don't terminate the span
// early. It returns the index of the matching '}' and the expression
// source — a `!conv` or `:spec` suffix at the outermost depth ends the
// expression early and is dropped, since this grammar's StringGroup has no
// slot for either.
func scanInterpolation(runes []rune, start int) (int, string, error) {
	depth := 0
	var quote rune
	exprEnd := -1
	for i := start; i < len(runes); i++ {
		ch := runes[i]
		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				if exprEnd == -1 {
					exprEnd = i
				}
				return i, string(runes[start:exprEnd]), nil
			}
			depth--
		case '!':
			if depth == 0 && exprEnd == -1 && i+1 < len(runes) && strings.ContainsRune("rsa", runes[i+1]) &&
				(i+2 >= len(runes) || runes[i+2] == ':' || runes[i+2] == '}') {
				exprEnd = i
			}
		case ':':
			if depth == 0 && exprEnd == -1 {
				exprEnd = i
			}
		}
	}
	return -1, "", fmt.Errorf("unterminated formatted-string interpolation")
}
