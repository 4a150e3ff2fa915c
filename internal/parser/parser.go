// Package parser implements C4, a recursive-descent parser with Pratt
// precedence climbing over the expression grammar, consulting
// internal/symbols for the live fixity table (§4.3 of the specification).
package parser

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/lexer"
	"github.com/sml-lang/sml/internal/symbols"
	"github.com/sml-lang/sml/internal/token"
)

// Parser turns one lexer's token stream into a sequence of top-level
// Programs. It never performs speculative parses: the token buffer grows
// lazily and supports exactly one token of push-back, matching §4.3's
// "token cursor with one-token push-back via an index into a small
// buffer".
type Parser struct {
	lex   *lexer.Lexer
	scope *symbols.Table

	toks []token.Token
	pos  int

	// lexErr holds the first lex-stage Diagnostic seen while growing toks,
	// surfaced the next time the parser actually looks at the sentinel EOF
	// token substituted in its place.
	lexErr *diagnostics.Diagnostic
}

// New creates a Parser reading from lex and consulting scope's fixity
// table; scope is shared with the checker so an `infix` declaration in one
// item is visible to the parser on the next (§8 P3).
func New(lex *lexer.Lexer, scope *symbols.Table) *Parser {
	p := &Parser{lex: lex, scope: scope}
	p.fill(1)
	return p
}

// fill grows toks until it holds at least n tokens, stopping at EOF or at
// the first lex error (recorded in lexErr and padded out with a synthetic
// EOF so cur/peek always have something to return).
func (p *Parser) fill(n int) {
	for len(p.toks) < n {
		if len(p.toks) > 0 && p.toks[len(p.toks)-1].Kind == token.EOF {
			return
		}
		tok, d := p.lex.NextToken()
		if d != nil {
			if p.lexErr == nil {
				p.lexErr = d
			}
			p.toks = append(p.toks, token.Token{Kind: token.EOF, Pos: d.Token.Pos})
			return
		}
		p.toks = append(p.toks, tok)
	}
}

func (p *Parser) cur() token.Token {
	p.fill(p.pos + 1)
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	p.fill(p.pos + 2)
	return p.toks[p.pos+1]
}

func (p *Parser) advance() { p.pos++ }

// pushBack rewinds the cursor by one token, the parser's single unit of
// lookahead recovery (§4.3).
func (p *Parser) pushBack() {
	if p.pos > 0 {
		p.pos--
	}
}

// checkLexErr surfaces a pending lex-stage diagnostic once, at the point
// the parser actually needed the token that failed to scan.
func (p *Parser) checkLexErr() *diagnostics.Diagnostic {
	if p.lexErr != nil {
		d := p.lexErr
		p.lexErr = nil
		return d
	}
	return nil
}

func (p *Parser) curIsKeyword(kw string) bool {
	t := p.cur()
	return t.Kind == token.KEYWORD && t.Lexeme == kw
}

func (p *Parser) curIsOp(op string) bool {
	return isOp(p.cur(), op)
}

// isOp reports whether t is the punctuation op. The lexer emits `=` as a
// symbolic ID (it is also the built-in equality operator), so where the
// grammar uses `=` as the binding separator an ID-kind `=` matches too.
func isOp(t token.Token, op string) bool {
	if t.Lexeme != op {
		return false
	}
	return t.Kind == token.OPERATOR || (op == "=" && t.Kind == token.ID)
}

// curIsOperatorID reports whether the current token is an ID-kind lexeme
// (symbolic or alphanumeric) registered with non-nonfix fixity, i.e. usable
// as an infix operator at this point in the item.
func (p *Parser) curIsOperatorID() (symbols.Fixity, bool) {
	t := p.cur()
	if t.Kind != token.ID {
		return symbols.Fixity{}, false
	}
	fx, ok := p.scope.GetOperator(t.Lexeme)
	if !ok || fx.Nonfix {
		return symbols.Fixity{}, false
	}
	return fx, true
}

func (p *Parser) expectOp(op string) (token.Token, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return token.Token{}, d
	}
	t := p.cur()
	if !isOp(t, op) {
		return token.Token{}, diagnostics.MissingToken(t, op)
	}
	p.advance()
	return t, nil
}

func (p *Parser) expectKeyword(kw string) (token.Token, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return token.Token{}, d
	}
	t := p.cur()
	if t.Kind != token.KEYWORD || t.Lexeme != kw {
		return token.Token{}, diagnostics.MissingToken(t, kw)
	}
	p.advance()
	return t, nil
}

// expectID consumes any ID-kind token (alphanumeric or symbolic) and wraps
// it as an ast.Id, used for plain identifier occurrences outside the
// pattern/expression grammars (e.g. `infix` operator lists).
func (p *Parser) expectID() (ast.Id, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	t := p.cur()
	if t.Kind != token.ID {
		return nil, diagnostics.MissingToken(t, "identifier")
	}
	p.advance()
	return idFromToken(t), nil
}

// idFromToken builds the right Id variant for a raw ID-kind token:
// alphanumeric names (including `'`-prefixed type variables used as plain
// identifiers) become AlphaID, everything else (symbolic runs like `+`,
// `::`) becomes SymID.
func idFromToken(t token.Token) ast.Id {
	if len(t.Lexeme) > 0 && isAlphaStartByte(t.Lexeme[0]) {
		return ast.NewAlphaID(t, t.Lexeme)
	}
	return ast.NewSymID(t, t.Lexeme)
}

func isAlphaStartByte(b byte) bool {
	return b == '_' || b == '\'' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func longID(id ast.Id) *ast.LongID { return ast.NewLongID(id.Token(), []ast.Id{id}) }

// ParseProg is the top-level entry point, called once per item (§4.3
// "parseProg"). It returns (nil, nil) at end of input.
func (p *Parser) ParseProg() (*ast.Program, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	if p.cur().Kind == token.EOF {
		return nil, nil
	}

	if isDecStart(p.cur()) {
		dec, d := p.parseDec()
		if d != nil {
			return nil, d
		}
		if _, d := p.expectOp(";"); d != nil {
			return nil, d
		}
		return &ast.Program{Dec: dec}, nil
	}

	exp, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectOp(";"); d != nil {
		return nil, d
	}
	return &ast.Program{Expr: exp}, nil
}

func isDecStart(t token.Token) bool {
	if t.Kind != token.KEYWORD {
		return false
	}
	switch t.Lexeme {
	case "val", "fun", "type", "local", "infix", "infixr", "nonfix":
		return true
	}
	return false
}

// SkipToNextItem advances past tokens up to and including the next `;`,
// the driver's error-recovery action: "on syntax error the item is
// discarded and the driver advances to the token after the next `;`"
// (§4.3 "Error recovery").
func (p *Parser) SkipToNextItem() {
	p.lexErr = nil
	for {
		t := p.cur()
		if t.Kind == token.EOF {
			return
		}
		p.advance()
		if t.Kind == token.OPERATOR && t.Lexeme == ";" {
			return
		}
	}
}

// AtEOF reports whether the parser has consumed the entire token stream.
func (p *Parser) AtEOF() bool { return p.lexErr == nil && p.cur().Kind == token.EOF }
