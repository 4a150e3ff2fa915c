package parser

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/symbols"
	"github.com/sml-lang/sml/internal/token"
)

// parseDec dispatches on the declaration first-set (§4.3 "Declaration
// grammar").
func (p *Parser) parseDec() (ast.Dec, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	t := p.cur()
	if t.Kind == token.KEYWORD {
		switch t.Lexeme {
		case "val":
			return p.parseValDec()
		case "fun":
			return p.parseFunDec()
		case "type":
			return p.parseTypeDec()
		case "local":
			return p.parseLocalDec()
		case "infix":
			return p.parseFixityDec(false)
		case "infixr":
			return p.parseFixityDec(true)
		case "nonfix":
			return p.parseNonfixDec()
		}
	}
	return nil, diagnostics.InvalidToken(t)
}

// decsToDec folds a sequence of declarations the way `local`/`let` need
// it: zero decs is represented as a nil Dec, one as itself, more than one
// wrapped in a SeqDec.
func decsToDec(tok token.Token, decs []ast.Dec) ast.Dec {
	switch len(decs) {
	case 0:
		return nil
	case 1:
		return decs[0]
	default:
		return ast.NewSeqDec(tok, decs)
	}
}

func (p *Parser) parseValDec() (ast.Dec, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	bind, d := p.parseValBind()
	if d != nil {
		return nil, d
	}
	return ast.NewValDec(tok, bind), nil
}

func (p *Parser) parseValBind() (*ast.ValBind, *diagnostics.Diagnostic) {
	tok := p.cur()
	pat, d := p.parsePattern()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectOp("="); d != nil {
		return nil, d
	}
	exp, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	vb := &ast.ValBind{Tok: tok, Pat: pat, Exp: exp}
	if p.curIsKeyword("and") {
		p.advance()
		and, d := p.parseValBind()
		if d != nil {
			return nil, d
		}
		vb.And = and
	}
	return vb, nil
}

func (p *Parser) parseFunDec() (ast.Dec, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	bind, d := p.parseFunBind()
	if d != nil {
		return nil, d
	}
	return ast.NewFunDec(tok, bind), nil
}

func (p *Parser) parseFunBind() (*ast.FunBind, *diagnostics.Diagnostic) {
	m, d := p.parseFunMatch()
	if d != nil {
		return nil, d
	}
	fb := &ast.FunBind{Match: m}
	if p.curIsKeyword("and") {
		p.advance()
		and, d := p.parseFunBind()
		if d != nil {
			return nil, d
		}
		fb.And = and
	}
	return fb, nil
}

// parseFunMatch implements the Nonfix/Infix dispatch of §4.3: "ID starts
// Nonfix (`id pat+ [:typ] = exp`); Pat starting position starts Infix
// (`pat id pat [:typ] = exp`)". The ambiguous case — both forms can begin
// with an ID — is resolved by peeking at the second token: if it is
// itself a declared (non-nonfix) infix operator, the first ID is really
// the left operand of an infix clause, not the function's own name.
func (p *Parser) parseFunMatch() (*ast.FunMatch, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	tok := p.cur()

	if tok.Kind == token.ID {
		pk := p.peek()
		if pk.Kind == token.ID {
			if fx, ok := p.scope.GetOperator(pk.Lexeme); ok && !fx.Nonfix {
				p.advance() // consume left operand name
				left := ast.NewPCtor(tok, longID(idFromToken(tok)), nil)
				opTok := pk
				p.advance() // consume operator name
				right, d := p.parseFunParam()
				if d != nil {
					return nil, d
				}
				return p.finishFunMatch(tok, true, idFromToken(opTok), []ast.Pat{left, right})
			}
		}

		p.advance() // consume the function's own name
		name := idFromToken(tok)
		var params []ast.Pat
		for !p.curIsOp(":") && !p.curIsOp("=") {
			param, d := p.parseFunParam()
			if d != nil {
				return nil, d
			}
			params = append(params, param)
		}
		if len(params) == 0 {
			return nil, diagnostics.InvalidFunctionName(tok)
		}
		return p.finishFunMatch(tok, false, name, params)
	}

	// Pat starting position: the clause opens with a constant, `_`, `(`
	// or `[`, so it must be the left operand of an infix clause.
	left, d := p.parseFunParam()
	if d != nil {
		return nil, d
	}
	opTok := p.cur()
	if opTok.Kind != token.ID {
		return nil, diagnostics.InvalidFunctionName(opTok)
	}
	p.advance()
	right, d := p.parseFunParam()
	if d != nil {
		return nil, d
	}
	return p.finishFunMatch(tok, true, idFromToken(opTok), []ast.Pat{left, right})
}

func (p *Parser) finishFunMatch(tok token.Token, infix bool, name ast.Id, params []ast.Pat) (*ast.FunMatch, *diagnostics.Diagnostic) {
	var ret ast.Typ
	if p.curIsOp(":") {
		p.advance()
		t, d := p.parseType()
		if d != nil {
			return nil, d
		}
		ret = t
	}
	if _, d := p.expectOp("="); d != nil {
		return nil, d
	}
	body, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	fm := &ast.FunMatch{Tok: tok, Infix: infix, Name: name, Params: params, Ret: ret, Body: body}
	if p.curIsOp("|") {
		p.advance()
		or, d := p.parseFunMatch()
		if d != nil {
			return nil, d
		}
		fm.Or = or
	}
	return fm, nil
}

func (p *Parser) parseTypeDec() (ast.Dec, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	bind, d := p.parseTypBind()
	if d != nil {
		return nil, d
	}
	return ast.NewTypeDec(tok, bind), nil
}

func (p *Parser) parseTypBind() (*ast.TypBind, *diagnostics.Diagnostic) {
	tok := p.cur()
	name, d := p.expectID()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectOp("="); d != nil {
		return nil, d
	}
	typ, d := p.parseType()
	if d != nil {
		return nil, d
	}
	tb := &ast.TypBind{Tok: tok, Name: name, Typ: typ}
	if p.curIsKeyword("and") {
		p.advance()
		and, d := p.parseTypBind()
		if d != nil {
			return nil, d
		}
		tb.And = and
	}
	return tb, nil
}

// parseLocalDec handles `local d1 in d2 end` (§4.3).
func (p *Parser) parseLocalDec() (ast.Dec, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	outerDecs, d := p.parseDecSeq("in")
	if d != nil {
		return nil, d
	}
	if _, d := p.expectKeyword("in"); d != nil {
		return nil, d
	}
	innerDecs, d := p.parseDecSeq("end")
	if d != nil {
		return nil, d
	}
	if _, d := p.expectKeyword("end"); d != nil {
		return nil, d
	}
	return ast.NewLocalDec(tok, decsToDec(tok, outerDecs), decsToDec(tok, innerDecs)), nil
}

// parseFixityDec handles `infix [prio] id+` / `infixr [prio] id+`,
// registering each id's fixity as a parse-time side effect (§4.3). A
// missing prio defaults to 9, the top-end of the 0-9 range, matching the
// "no change to precedence" behavior the specification calls out.
func (p *Parser) parseFixityDec(right bool) (ast.Dec, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()

	prio := 9
	if p.cur().Kind == token.INT {
		prio = int(p.cur().Payload.(int64))
		p.advance()
	}

	ids, d := p.parseFixityIDList()
	if d != nil {
		return nil, d
	}

	fixity := symbols.Fixity{Priority: prio, Right: right}
	for _, id := range ids {
		if !p.scope.CanSetOperator(id.Name()) {
			return nil, diagnostics.FixityOverrideDenied(id.Token(), id.Name())
		}
	}
	for _, id := range ids {
		p.scope.SetOperator(id.Name(), fixity)
	}

	astFixity := ast.INFIX
	if right {
		astFixity = ast.INFIXR
	}
	return ast.NewInfixDec(tok, astFixity, prio, ids), nil
}

func (p *Parser) parseNonfixDec() (ast.Dec, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	ids, d := p.parseFixityIDList()
	if d != nil {
		return nil, d
	}
	for _, id := range ids {
		if !p.scope.CanSetOperator(id.Name()) {
			return nil, diagnostics.FixityOverrideDenied(id.Token(), id.Name())
		}
	}
	for _, id := range ids {
		p.scope.SetOperator(id.Name(), symbols.Fixity{Nonfix: true})
	}
	return ast.NewNonfixDec(tok, ids), nil
}

func (p *Parser) parseFixityIDList() ([]ast.Id, *diagnostics.Diagnostic) {
	var ids []ast.Id
	for p.cur().Kind == token.ID {
		id, d := p.expectID()
		if d != nil {
			return nil, d
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, diagnostics.MissingToken(p.cur(), "identifier")
	}
	return ids, nil
}
