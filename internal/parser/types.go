package parser

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
)

// parseType implements the type grammar of §4.3: an atom, optionally
// followed by a post-fix type constructor application (`t list`), then
// `*`-separated tuple components (flattened one level), then a
// right-associative `->`.
func (p *Parser) parseType() (ast.Typ, *diagnostics.Diagnostic) {
	left, d := p.parseTupleType()
	if d != nil {
		return nil, d
	}
	if p.curIsOp("->") {
		arrow := p.cur()
		p.advance()
		right, d := p.parseType()
		if d != nil {
			return nil, d
		}
		return ast.NewTFun(arrow, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseTupleType() (ast.Typ, *diagnostics.Diagnostic) {
	first, d := p.parseAppliedType()
	if d != nil {
		return nil, d
	}
	if !p.isStarOp() {
		return first, nil
	}
	tok := p.cur()
	elems := []ast.Typ{first}
	for p.isStarOp() {
		p.advance()
		t, d := p.parseAppliedType()
		if d != nil {
			return nil, d
		}
		elems = append(elems, t)
	}
	return ast.NewTTuple(tok, elems), nil
}

// isStarOp reports whether the current token is the `*` used as the tuple
// type separator; `*` is a plain symbolic ID lexeme here, like `+`.
func (p *Parser) isStarOp() bool {
	t := p.cur()
	return t.Kind == token.ID && t.Lexeme == "*"
}

// parseAppliedType handles `t longid` postfix application (e.g. `int
// list`, `int list list`), left-associative, alongside the ordinary
// atoms. An ID-kind `=` ends the type (it separates an annotated pattern
// or function header from its body) rather than being applied.
func (p *Parser) parseAppliedType() (ast.Typ, *diagnostics.Diagnostic) {
	atom, d := p.parseTypeAtom()
	if d != nil {
		return nil, d
	}
	for p.cur().Kind == token.ID && !p.isStarOp() && !p.curIsOp("=") {
		idTok := p.cur()
		id, d := p.expectID()
		if d != nil {
			return nil, d
		}
		atom = ast.NewTCtor(idTok, longID(id), []ast.Typ{atom})
	}
	return atom, nil
}

func (p *Parser) parseTypeAtom() (ast.Typ, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	t := p.cur()

	if t.Kind == token.ID && len(t.Lexeme) > 0 && t.Lexeme[0] == '\'' {
		p.advance()
		return ast.NewTVarSyntax(t, t.Lexeme), nil
	}
	if t.Kind == token.ID {
		id, d := p.expectID()
		if d != nil {
			return nil, d
		}
		return ast.NewTCtor(t, longID(id), nil), nil
	}
	if t.Kind == token.OPERATOR && t.Lexeme == "(" {
		p.advance()
		inner, d := p.parseType()
		if d != nil {
			return nil, d
		}
		if _, d := p.expectOp(")"); d != nil {
			return nil, d
		}
		return ast.NewTParen(t, inner), nil
	}
	if t.Kind == token.OPERATOR && t.Lexeme == "{" {
		return p.parseRecordType()
	}

	return nil, diagnostics.InvalidToken(t)
}

func (p *Parser) parseRecordType() (ast.Typ, *diagnostics.Diagnostic) {
	open := p.cur()
	p.advance()
	var labels []string
	fields := map[string]ast.Typ{}
	if !p.curIsOp("}") {
		for {
			labTok, d := p.expectID()
			if d != nil {
				return nil, d
			}
			if _, d := p.expectOp(":"); d != nil {
				return nil, d
			}
			typ, d := p.parseType()
			if d != nil {
				return nil, d
			}
			labels = append(labels, labTok.Name())
			fields[labTok.Name()] = typ
			if !p.curIsOp(",") {
				break
			}
			p.advance()
		}
	}
	if _, d := p.expectOp("}"); d != nil {
		return nil, d
	}
	return ast.NewTRecord(open, labels, fields), nil
}
