// Package lexer turns source text into the token stream the parser walks.
// Indentation is structural here: NextToken synthesizes INDENT, DEDENT, and
// NEWLINE tokens from leading whitespace and bracket depth, the same way the
// teacher's scanner synthesizes multi-character operators from single runes
// — one rune (or line) of lookahead, folded into the returned token.
package lexer

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/corelang/pyparse/internal/token"
)

// Lexer is a single-pass, byte-oriented scanner over one source string.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int

	parenDepth int // (), [], {} nesting; NEWLINE is suppressed while > 0

	indents     []int // indentation stack, always starts at [0]
	atLineStart bool   // true when the next token must come from fresh indentation processing
	pending     []token.Token
	sentEOF     bool

	sentinel     token.Type
	sentinelSent bool
}

// New creates a Lexer over input. sentinel is the mode token (one of
// token.START_PROGRAM, token.START_STATEMENT, token.START_EXPRESSION) that
// NextToken returns first, telling the parser which grammar entry point to
// use.
func New(input string, sentinel token.Type) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		indents:     []int{0},
		atLineStart: true,
		sentinel:    sentinel,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) peekCharAt(offset int) byte {
	idx := l.readPosition + offset - 1
	if idx >= len(l.input) || idx < 0 {
		return 0
	}
	return l.input[idx]
}

// NextToken returns the next logical token: the mode sentinel on the first
// call, then any queued INDENT/DEDENT/NEWLINE/EOF tokens, then whatever the
// raw scanner produces.
func (l *Lexer) NextToken() token.Token {
	if !l.sentinelSent {
		l.sentinelSent = true
		return token.Token{Type: l.sentinel, Line: 1, Column: 1}
	}

	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.parenDepth == 0 {
		if tok, handled := l.handleLineStart(); handled {
			return tok
		}
	}

	return l.scanToken()
}

// handleLineStart measures the indentation of a fresh logical line, skips
// blank and comment-only lines (which never affect the indent stack), and
// synthesizes INDENT/DEDENT tokens when the level changes. It returns
// handled == false when the caller should fall through to scanToken because
// indentation didn't need to emit anything.
func (l *Lexer) handleLineStart() (token.Token, bool) {
	for {
		width, line, col := l.measureIndent()
		if l.ch == '\n' || l.ch == '#' || l.ch == 0 {
			// Blank or comment-only line: consume it without touching the
			// indent stack and try again on the following line.
			if l.ch == '#' {
				l.skipComment()
			}
			if l.ch == '\n' {
				l.readChar()
				continue
			}
			l.atLineStart = false
			return token.Token{}, false
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case width == top:
			l.atLineStart = false
			return token.Token{}, false
		case width > top:
			l.indents = append(l.indents, width)
			l.atLineStart = false
			return token.Token{Type: token.INDENT, Line: line, Column: col}, true
		default:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: line, Column: col})
			}
			l.atLineStart = false
			if l.indents[len(l.indents)-1] != width {
				l.pending = append(l.pending, token.Token{Type: token.BADDEDENT, Line: line, Column: col})
			}
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, true
		}
	}
}

// measureIndent consumes leading spaces/tabs on the current line (tabs
// advance to the next multiple of 8, matching CPython's tokenizer) and
// returns the resulting column width plus the position of the first
// non-blank character for diagnostics.
func (l *Lexer) measureIndent() (width, line, col int) {
	width = 0
	for l.ch == ' ' || l.ch == '\t' {
		if l.ch == '\t' {
			width += 8 - (width % 8)
		} else {
			width++
		}
		l.readChar()
	}
	return width, l.line, l.column
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// scanToken performs one step of the raw, non-indentation-aware scan:
// skip intra-line whitespace/comments/continuations, then dispatch on the
// current rune.
func (l *Lexer) scanToken() token.Token {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '\\' && l.peekChar() == '\n' {
			l.readChar() // backslash
			l.readChar() // newline
			continue
		}
		if l.ch == '#' {
			l.skipComment()
			continue
		}
		break
	}

	line, col := l.line, l.column

	if l.ch == '\n' {
		l.readChar()
		if l.parenDepth > 0 {
			return l.NextToken()
		}
		l.atLineStart = true
		return token.Token{Type: token.NEWLINE, Line: line, Column: col}
	}

	if l.ch == 0 {
		if !l.sentEOF {
			l.sentEOF = true
			if top := l.indents[len(l.indents)-1]; top > 0 {
				for len(l.indents) > 1 {
					l.indents = l.indents[:len(l.indents)-1]
					l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: line, Column: col})
				}
				l.pending = append(l.pending, token.Token{Type: token.EOF, Line: line, Column: col})
				tok := l.pending[0]
				l.pending = l.pending[1:]
				return tok
			}
		}
		return token.Token{Type: token.EOF, Line: line, Column: col}
	}

	if isIdentStart(l.ch) {
		return l.readNameOrStringPrefix(line, col)
	}
	if isDigit(l.ch) {
		return l.readNumber(line, col)
	}
	if l.ch == '"' || l.ch == '\'' {
		return l.readString("", line, col)
	}

	return l.readOperator(line, col)
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// readNameOrStringPrefix reads an identifier, then checks whether it is one
// of the string-literal prefixes (r, b, f, u, rb, br, fr, rf, and their
// uppercase variants) immediately followed by a quote.
func (l *Lexer) readNameOrStringPrefix(line, col int) token.Token {
	start := l.position
	for isIdentCont(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]

	if (l.ch == '"' || l.ch == '\'') && isStringPrefix(ident) {
		return l.readString(ident, line, col)
	}

	typ := token.LookupIdent(ident)
	return token.Token{Type: typ, Lexeme: ident, Literal: ident, Line: line, Column: col}
}

func isStringPrefix(ident string) bool {
	switch strings.ToLower(ident) {
	case "r", "b", "f", "rb", "br", "fr", "rf", "u":
		return true
	}
	return false
}

// readString scans a quoted literal, honoring prefix flags (r: raw, no
// escapes; b: bytes; f: formatted — the fstring bridge handles its
// contents), single or triple quoting, and standard backslash escapes.
func (l *Lexer) readString(prefix string, line, col int) token.Token {
	lowerPrefix := strings.ToLower(prefix)
	isRaw := strings.Contains(lowerPrefix, "r")
	isBytes := strings.Contains(lowerPrefix, "b")
	isFormatted := strings.Contains(lowerPrefix, "f")

	quote := l.ch
	triple := l.peekChar() == quote && l.peekCharAt(2) == quote
	if triple {
		l.readChar()
		l.readChar()
	}
	l.readChar() // consume opening quote

	var sb strings.Builder
	for {
		if l.ch == 0 {
			break
		}
		if !triple && l.ch == '\n' {
			break
		}
		if l.ch == quote {
			if !triple {
				l.readChar()
				break
			}
			if l.peekChar() == quote && l.peekCharAt(2) == quote {
				l.readChar()
				l.readChar()
				l.readChar()
				break
			}
		}
		if l.ch == '\\' && !isRaw {
			l.readChar()
			sb.WriteString(decodeEscape(l))
			continue
		}
		if l.ch == '\\' && isRaw {
			// Raw strings keep the backslash but still let it escape the
			// following quote so the literal can terminate correctly.
			sb.WriteByte(l.ch)
			l.readChar()
			if l.ch != 0 {
				sb.WriteByte(l.ch)
				l.readChar()
			}
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}

	text := sb.String()
	if isBytes {
		return token.Token{Type: token.BYTES, Lexeme: text, Literal: []byte(text), Line: line, Column: col}
	}
	return token.Token{
		Type:    token.STRING,
		Lexeme:  text,
		Literal: token.StringPayload{Text: text, IsFormatted: isFormatted},
		Line:    line,
		Column:  col,
	}
}

func decodeEscape(l *Lexer) string {
	switch l.ch {
	case 'n':
		l.readChar()
		return "\n"
	case 't':
		l.readChar()
		return "\t"
	case 'r':
		l.readChar()
		return "\r"
	case '0':
		l.readChar()
		return "\x00"
	case '\\':
		l.readChar()
		return "\\"
	case '\'':
		l.readChar()
		return "'"
	case '"':
		l.readChar()
		return "\""
	case '\n':
		l.readChar()
		return ""
	default:
		ch := l.ch
		l.readChar()
		return "\\" + string(ch)
	}
}

// readNumber scans an integer, float, or complex literal. Integers parse
// into *big.Int (spec.md: arbitrary precision), matching the teacher's own
// use of math/big for oversized literals.
func (l *Lexer) readNumber(line, col int) token.Token {
	start := l.position
	base := 10

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		base = 16
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	} else if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		l.readChar()
		l.readChar()
		base = 8
		for (l.ch >= '0' && l.ch <= '7') || l.ch == '_' {
			l.readChar()
		}
	} else if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		base = 2
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	isFloat := false
	if base == 10 {
		if l.ch == '.' && isDigit(l.peekChar()) {
			isFloat = true
			l.readChar()
			for isDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			save := l.position
			peekOff := 1
			if l.peekChar() == '+' || l.peekChar() == '-' {
				peekOff = 2
			}
			if isDigit(l.peekCharAt(peekOff)) {
				isFloat = true
				l.readChar()
				if l.ch == '+' || l.ch == '-' {
					l.readChar()
				}
				for isDigit(l.ch) || l.ch == '_' {
					l.readChar()
				}
			} else {
				_ = save
			}
		}
	}

	isComplex := false
	if l.ch == 'j' || l.ch == 'J' {
		isComplex = true
		l.readChar()
	}

	raw := l.input[start:l.position]
	clean := strings.ReplaceAll(raw, "_", "")

	if isComplex {
		mantissa := strings.TrimSuffix(strings.TrimSuffix(clean, "j"), "J")
		imag, _ := strconv.ParseFloat(mantissa, 64)
		return token.Token{Type: token.COMPLEX, Lexeme: raw, Literal: token.Complex{Real: 0, Imag: imag}, Line: line, Column: col}
	}
	if isFloat {
		f, _ := strconv.ParseFloat(clean, 64)
		return token.Token{Type: token.FLOAT, Lexeme: raw, Literal: f, Line: line, Column: col}
	}

	text := clean
	if base != 10 {
		text = clean[2:] // drop 0x/0o/0b prefix; SetString gets the base explicitly
	}
	v := new(big.Int)
	if _, ok := v.SetString(text, base); !ok {
		return token.Token{Type: token.ILLEGAL, Lexeme: raw, Literal: "invalid numeric literal " + raw, Line: line, Column: col}
	}
	return token.Token{Type: token.INT, Lexeme: raw, Literal: v, Line: line, Column: col}
}

type opRule struct {
	text string
	typ  token.Type
}

// Longest-match-first tables for each starting rune, mirroring the
// teacher's nested-peek dispatch but data-driven instead of one switch arm
// per combination.
var opTable = map[byte][]opRule{
	'*': {{"**=", token.DSTAR_EQ}, {"**", token.DSTAR}, {"*=", token.STAR_EQ}, {"*", token.STAR}},
	'/': {{"//=", token.DSLASH_EQ}, {"//", token.DSLASH}, {"/=", token.SLASH_EQ}, {"/", token.SLASH}},
	'<': {{"<<=", token.LSHIFT_EQ}, {"<<", token.LSHIFT}, {"<=", token.LE}, {"<", token.LT}},
	'>': {{">>=", token.RSHIFT_EQ}, {">>", token.RSHIFT}, {">=", token.GE}, {">", token.GT}},
	'=': {{"==", token.EQ}, {"=", token.ASSIGN}},
	'!': {{"!=", token.NE}},
	'+': {{"+=", token.PLUS_EQ}, {"+", token.PLUS}},
	'-': {{"->", token.ARROW}, {"-=", token.MINUS_EQ}, {"-", token.MINUS}},
	'%': {{"%=", token.PERCENT_EQ}, {"%", token.PERCENT}},
	'@': {{"@=", token.AT_EQ}, {"@", token.AT}},
	'&': {{"&=", token.AMP_EQ}, {"&", token.AMP}},
	'|': {{"|=", token.PIPE_EQ}, {"|", token.PIPE}},
	'^': {{"^=", token.CARET_EQ}, {"^", token.CARET}},
	'~': {{"~", token.TILDE}},
	'.': {{"...", token.ELLIPSIS}, {".", token.DOT}},
	':': {{":", token.COLON}},
	',': {{",", token.COMMA}},
	';': {{";", token.SEMICOLON}},
	'(': {{"(", token.LPAREN}},
	')': {{")", token.RPAREN}},
	'[': {{"[", token.LBRACKET}},
	']': {{"]", token.RBRACKET}},
	'{': {{"{", token.LBRACE}},
	'}': {{"}", token.RBRACE}},
}

func (l *Lexer) readOperator(line, col int) token.Token {
	rules, ok := opTable[l.ch]
	if !ok {
		ch := l.ch
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Lexeme: string(ch), Literal: "unexpected character " + string(ch), Line: line, Column: col}
	}

	for _, rule := range rules {
		if l.matches(rule.text) {
			for range rule.text {
				l.readChar()
			}
			switch rule.typ {
			case token.LPAREN, token.LBRACKET, token.LBRACE:
				l.parenDepth++
			case token.RPAREN, token.RBRACKET, token.RBRACE:
				if l.parenDepth > 0 {
					l.parenDepth--
				}
			}
			return token.Token{Type: rule.typ, Lexeme: rule.text, Literal: rule.text, Line: line, Column: col}
		}
	}

	ch := l.ch
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Lexeme: string(ch), Literal: "unexpected character " + string(ch), Line: line, Column: col}
}

func (l *Lexer) matches(text string) bool {
	if l.ch != text[0] {
		return false
	}
	for i := 1; i < len(text); i++ {
		if l.peekCharAt(i) != text[i] {
			return false
		}
	}
	return true
}
