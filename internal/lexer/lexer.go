// Package lexer implements C1 (source reader) and C2 (lexer) of the
// specification: it turns a string of SML source into a stream of tokens
// with row/column tracking, consuming nested block comments along the way.
package lexer

import (
	"strconv"
	"strings"

	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
)

// symbolicChars is the character class for symbolic identifiers (§3).
const symbolicChars = "!%&$#+-/:<=>?@\\~`^|*"

// reservedSymbolic is the subset of symbolicChars runs that are forced to
// OPERATOR instead of a symbolic ID when the maximal munch matches them
// exactly (§4.1 "forced to OPERATOR with the reserved lexeme").
var reservedSymbolic = map[string]bool{
	":": true, "|": true, "->": true, "=>": true, "#": true,
}

// Lexer scans one item's worth (or a whole file's worth) of source text.
// It is restartable: call NextToken until it returns an EOF token.
type Lexer struct {
	input    string
	pos      int // byte offset of ch
	readPos  int // byte offset after ch
	ch       byte
	line     int
	col      int
}

// New creates a Lexer over input, positioned before the first character.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
		l.col++
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekAt(offset int) byte {
	idx := l.pos + offset
	if idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

func (l *Lexer) curPos() token.Pos { return token.Pos{Row: l.line, Col: l.col} }

// skipWhitespaceAndComments consumes runs of whitespace and nested `(* *)`
// block comments (§4.1). It returns a diagnostic only if a comment never
// closes before EOF.
func (l *Lexer) skipWhitespaceAndComments() *diagnostics.Diagnostic {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '(' && l.peekChar() == '*' {
			startPos := l.curPos()
			depth := 0
			l.readChar() // consume '('
			l.readChar() // consume '*'
			depth++
			for depth > 0 {
				if l.ch == 0 {
					return diagnostics.New(diagnostics.ErrL001, token.Token{Pos: startPos}, "Unterminated comment")
				}
				if l.ch == '(' && l.peekChar() == '*' {
					depth++
					l.readChar()
					l.readChar()
					continue
				}
				if l.ch == '*' && l.peekChar() == ')' {
					depth--
					l.readChar()
					l.readChar()
					continue
				}
				l.readChar()
			}
			continue
		}
		return nil
	}
}

func isAlphaStart(b byte) bool {
	return b == '\'' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaCont(b byte) bool {
	return b == '\'' || b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isSymbolic(b byte) bool {
	return strings.IndexByte(symbolicChars, b) >= 0
}

// NextToken returns the next token, or a diagnostic if no rule matches
// (§4.1's "one-char error" fallback). At end of input it returns a
// token.EOF token and a nil diagnostic.
func (l *Lexer) NextToken() (token.Token, *diagnostics.Diagnostic) {
	if d := l.skipWhitespaceAndComments(); d != nil {
		return token.Token{}, d
	}

	pos := l.curPos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Pos: pos}, nil

	case l.ch == '#' && l.peekChar() == '"':
		return l.readCharLiteral(pos)

	case l.ch == '"':
		return l.readString(pos)

	case isAlphaStart(l.ch):
		return l.readIdentifier(pos), nil

	case isDigit(l.ch):
		return l.readNumber(pos)

	case l.ch == '(' || l.ch == ')' || l.ch == '[' || l.ch == ']' ||
		l.ch == '{' || l.ch == '}' || l.ch == ',' || l.ch == ';' || l.ch == '_':
		lexeme := string(l.ch)
		l.readChar()
		return token.Token{Kind: token.OPERATOR, Lexeme: lexeme, Pos: pos}, nil

	case l.ch == '.':
		if l.peekChar() == '.' && l.peekAt(2) == '.' {
			l.readChar()
			l.readChar()
			l.readChar()
			return token.Token{Kind: token.OPERATOR, Lexeme: "...", Pos: pos}, nil
		}
		ch := l.ch
		l.readChar()
		return token.Token{}, diagnostics.Unrecognized(token.Token{Pos: pos}, rune(ch))

	case isSymbolic(l.ch):
		return l.readSymbolic(pos), nil

	default:
		ch := l.ch
		l.readChar()
		return token.Token{}, diagnostics.Unrecognized(token.Token{Pos: pos}, rune(ch))
	}
}

func (l *Lexer) readIdentifier(pos token.Pos) token.Token {
	start := l.pos
	for isAlphaCont(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.pos]
	switch lexeme {
	case "true":
		return token.Token{Kind: token.BOOL, Lexeme: lexeme, Payload: true, Pos: pos}
	case "false":
		return token.Token{Kind: token.BOOL, Lexeme: lexeme, Payload: false, Pos: pos}
	}
	if token.IsKeyword(lexeme) {
		return token.Token{Kind: token.KEYWORD, Lexeme: lexeme, Pos: pos}
	}
	return token.Token{Kind: token.ID, Lexeme: lexeme, Pos: pos}
}

func (l *Lexer) readSymbolic(pos token.Pos) token.Token {
	start := l.pos
	for isSymbolic(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.pos]
	if reservedSymbolic[lexeme] {
		return token.Token{Kind: token.OPERATOR, Lexeme: lexeme, Pos: pos}
	}
	return token.Token{Kind: token.ID, Lexeme: lexeme, Pos: pos}
}

// readNumber implements the INT/REAL rules from §4.1:
//
//	REAL := d+.d+[eE]~?d+ | d+[eE]~?d+ | d+.d+
//	INT  := 0[xX]hex+ | d+
func (l *Lexer) readNumber(pos token.Pos) (token.Token, *diagnostics.Diagnostic) {
	start := l.pos
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		hexStart := l.pos
		for isHexDigit(l.ch) {
			l.readChar()
		}
		lexeme := l.input[start:l.pos]
		v, err := strconv.ParseInt(l.input[hexStart:l.pos], 16, 64)
		if err != nil {
			return token.Token{}, diagnostics.Unrecognized(token.Token{Pos: pos}, rune(l.ch))
		}
		return token.Token{Kind: token.INT, Lexeme: lexeme, Payload: v, Pos: pos}, nil
	}

	for isDigit(l.ch) {
		l.readChar()
	}
	isReal := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isReal = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		save := l.pos
		saveLine, saveCol, saveCh, saveReadPos := l.line, l.col, l.ch, l.readPos
		l.readChar()
		if l.ch == '~' {
			l.readChar()
		}
		if isDigit(l.ch) {
			isReal = true
			for isDigit(l.ch) {
				l.readChar()
			}
		} else {
			// not actually an exponent; rewind past the 'e'/'E' we consumed
			l.pos, l.line, l.col, l.ch, l.readPos = save, saveLine, saveCol, saveCh, saveReadPos
		}
	}

	lexeme := l.input[start:l.pos]
	if isReal {
		v, err := strconv.ParseFloat(strings.Replace(lexeme, "~", "-", 1), 64)
		if err != nil {
			return token.Token{}, diagnostics.Unrecognized(token.Token{Pos: pos}, rune(l.ch))
		}
		return token.Token{Kind: token.REAL, Lexeme: lexeme, Payload: v, Pos: pos}, nil
	}
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{}, diagnostics.Unrecognized(token.Token{Pos: pos}, rune(l.ch))
	}
	return token.Token{Kind: token.INT, Lexeme: lexeme, Payload: v, Pos: pos}, nil
}

// readEscape decodes one escape sequence starting at the character after
// the backslash: \a \b \n \r \v \\ \" or three octal digits (§4.1).
func (l *Lexer) readEscape(pos token.Pos) (byte, *diagnostics.Diagnostic) {
	switch l.ch {
	case 'a':
		l.readChar()
		return '\a', nil
	case 'b':
		l.readChar()
		return '\b', nil
	case 'n':
		l.readChar()
		return '\n', nil
	case 'r':
		l.readChar()
		return '\r', nil
	case 'v':
		l.readChar()
		return '\v', nil
	case '\\':
		l.readChar()
		return '\\', nil
	case '"':
		l.readChar()
		return '"', nil
	default:
		if isOctalDigit(l.ch) && isOctalDigit(l.peekChar()) && isOctalDigit(l.peekAt(2)) {
			octal := string(l.ch) + string(l.peekChar()) + string(l.peekAt(2))
			l.readChar()
			l.readChar()
			l.readChar()
			v, _ := strconv.ParseInt(octal, 8, 16)
			return byte(v), nil
		}
		return 0, diagnostics.New(diagnostics.ErrL001, token.Token{Pos: pos}, "Invalid escape sequence")
	}
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func (l *Lexer) readCharLiteral(pos token.Pos) (token.Token, *diagnostics.Diagnostic) {
	start := l.pos
	l.readChar() // consume '#'
	l.readChar() // consume '"'
	var v byte
	var d *diagnostics.Diagnostic
	if l.ch == '\\' {
		l.readChar()
		v, d = l.readEscape(pos)
		if d != nil {
			return token.Token{}, d
		}
	} else if l.ch == '"' {
		return token.Token{}, diagnostics.New(diagnostics.ErrL001, token.Token{Pos: pos}, "Empty char literal")
	} else {
		v = l.ch
		l.readChar()
	}
	if l.ch != '"' {
		return token.Token{}, diagnostics.New(diagnostics.ErrL001, token.Token{Pos: pos}, "Unterminated char literal")
	}
	l.readChar() // consume closing '"'
	lexeme := l.input[start:l.pos]
	return token.Token{Kind: token.CHAR, Lexeme: lexeme, Payload: v, Pos: pos}, nil
}

func (l *Lexer) readString(pos token.Pos) (token.Token, *diagnostics.Diagnostic) {
	start := l.pos
	l.readChar() // consume opening '"'
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{}, diagnostics.New(diagnostics.ErrL001, token.Token{Pos: pos}, "Unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
			v, d := l.readEscape(pos)
			if d != nil {
				return token.Token{}, d
			}
			sb.WriteByte(v)
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing '"'
	lexeme := l.input[start:l.pos]
	return token.Token{Kind: token.STRING, Lexeme: lexeme, Payload: sb.String(), Pos: pos}, nil
}
