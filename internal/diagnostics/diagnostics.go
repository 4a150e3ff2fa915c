// Package diagnostics defines the structured, non-fatal error values
// produced by every stage of the pipeline (§7). A diagnostic carries a
// short code, the offending token for location reporting, and a rendered
// message; it implements error so call sites can return it directly.
package diagnostics

import (
	"fmt"

	"github.com/sml-lang/sml/internal/token"
)

// Code identifies the diagnostic's kind and stage of origin:
// L = lexer, P = parser, A = type checker ("analysis").
type Code string

const (
	ErrL001 Code = "L001" // unrecognized character
	ErrP001 Code = "P001" // missing required token
	ErrP002 Code = "P002" // unexpected/invalid token
	ErrP003 Code = "P003" // fixity override of a built-in operator denied by configuration
	ErrA001 Code = "A001" // unknown variable name
	ErrA002 Code = "A002" // unknown type/id name
	ErrA003 Code = "A003" // unification failure
	ErrA004 Code = "A004" // invalid function name
	ErrA005 Code = "A005" // arity mismatch
)

// Kind classifies a Code into the five error kinds named in §7.
type Kind int

const (
	LexError Kind = iota
	SyntaxError
	TypeError
	NameError
	ArityError
)

func (c Code) Kind() Kind {
	switch c {
	case ErrL001:
		return LexError
	case ErrP001, ErrP002, ErrP003:
		return SyntaxError
	case ErrA001, ErrA002, ErrA004:
		return NameError
	case ErrA003:
		return TypeError
	case ErrA005:
		return ArityError
	default:
		return SyntaxError
	}
}

// Diagnostic is a single non-fatal error, nullable by Go convention: every
// production and visitor that can fail returns (value, *Diagnostic) and a
// non-nil Diagnostic means the caller must propagate it upward and abandon
// the enclosing item (§7 propagation policy).
type Diagnostic struct {
	Code    Code
	Token   token.Token
	Message string
	// ItemID correlates this diagnostic with the top-level item that
	// produced it, for REPL transcripts and tests (internal/session).
	ItemID string
}

func (d *Diagnostic) Error() string {
	if d.Token.IsZero() {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Token.Pos, d.Message)
}

// New builds a Diagnostic with a message formatted from format/args.
func New(code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Unrecognized reports the lexer's single unmatched-character rule (§4.1).
func Unrecognized(tok token.Token, ch rune) *Diagnostic {
	return New(ErrL001, tok, "Unrecognized token %c", ch)
}

// MissingToken reports a syntax error where production expects a specific
// token class that was not present (§4.3's "is missing" message).
func MissingToken(tok token.Token, want string) *Diagnostic {
	return New(ErrP001, tok, "Syntax Error: row %d, column %d: '%s' is missing", tok.Pos.Row, tok.Pos.Col, want)
}

// InvalidToken reports an unexpected token where no production applies.
func InvalidToken(tok token.Token) *Diagnostic {
	return New(ErrP002, tok, "Invalid token: %s", tok.Lexeme)
}

// UnknownVariable reports a Value-mode identifier lookup miss (§4.4).
func UnknownVariable(tok token.Token, name string) *Diagnostic {
	return New(ErrA001, tok, "Unknown variable name: %s", name)
}

// UnknownID reports a Type-mode identifier lookup miss.
func UnknownID(tok token.Token, name string) *Diagnostic {
	return New(ErrA002, tok, "Unknown Id name: %s", name)
}

// CouldNotMatch reports a unification failure between two pretty-printed
// type strings, matching §7's exact message shape.
func CouldNotMatch(tok token.Token, t1, t2 string) *Diagnostic {
	return New(ErrA003, tok, "Could not match %s and %s.", t1, t2)
}

// InvalidFunctionName reports a `fun` match whose leading token cannot name
// a function (neither a nonfix identifier nor a valid infix pattern head).
func InvalidFunctionName(tok token.Token) *Diagnostic {
	return New(ErrA004, tok, "invalid Function name: %s", tok.Lexeme)
}

// FixityOverrideDenied reports an infix/infixr/nonfix declaration that
// tried to rebind a built-in operator's fixity while the session's
// configuration forbids it (internal/config's AllowFixityOverride).
func FixityOverrideDenied(tok token.Token, name string) *Diagnostic {
	return New(ErrP003, tok, "'%s' is a built-in operator and its fixity may not be overridden", name)
}

// Arity reports an App node whose callee cannot accept the supplied
// argument shape once its overloads (if any) are exhausted.
func Arity(tok token.Token, msg string) *Diagnostic {
	return New(ErrA005, tok, "%s", msg)
}
