package parser

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
)

// expFollow is the fixed "should return LHS" set from §4.3: every token
// that terminates an expression in some surrounding syntactic context.
// Lexeme match is sufficient since no other Kind collides with these
// lexemes.
var expFollow = map[string]bool{
	")": true, ",": true, ";": true, "]": true,
	"end": true, "then": true, "else": true, "do": true, "and": true, "in": true,
	"=": true,
}

func (p *Parser) atExpEnd() bool {
	t := p.cur()
	if t.Kind == token.EOF {
		return true
	}
	return expFollow[t.Lexeme]
}

// parseExp implements the top level of the Pratt climb (§4.3 step 1-2):
// read one primary, then decide whether what follows extends it.
func (p *Parser) parseExp() (ast.Expression, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	lhs, d := p.parsePrimary()
	if d != nil {
		return nil, d
	}
	return p.continueExp(lhs)
}

func (p *Parser) continueExp(lhs ast.Expression) (ast.Expression, *diagnostics.Diagnostic) {
	if p.atExpEnd() {
		return lhs, nil
	}
	t := p.cur()
	switch {
	case t.Kind == token.KEYWORD && t.Lexeme == "andalso":
		p.advance()
		rhs, d := p.parseExp()
		if d != nil {
			return nil, d
		}
		return ast.NewConj(t, lhs, rhs), nil
	case t.Kind == token.KEYWORD && t.Lexeme == "orelse":
		p.advance()
		rhs, d := p.parseExp()
		if d != nil {
			return nil, d
		}
		return ast.NewDisj(t, lhs, rhs), nil
	}
	if _, ok := p.curIsOperatorID(); ok {
		return p.parseBinOpRHS(0, lhs)
	}
	return nil, diagnostics.InvalidToken(t)
}

// parseBinOpRHS implements the precedence-climbing loop of §4.3 step 3.
// INFIXR is modeled purely by the tie-break `p' > p` recursing at `p+1`:
// a declared-right-associative operator never appears on the left of a
// same-precedence sibling without the climb folding it correctly, since
// loadBuiltins/infix declarations are the only source of precedence and
// every one of them is consulted fresh on each call.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expression) (ast.Expression, *diagnostics.Diagnostic) {
	for {
		fx, ok := p.curIsOperatorID()
		if !ok || fx.Priority < minPrec {
			return lhs, nil
		}
		opTok := p.cur()
		p.advance()

		rhs, d := p.parsePrimary()
		if d != nil {
			return nil, d
		}

		if nfx, ok := p.curIsOperatorID(); ok && nfx.Priority > fx.Priority {
			rhs, d = p.parseBinOpRHS(fx.Priority+1, rhs)
			if d != nil {
				return nil, d
			}
		}

		lhs = ast.NewInfixApp(opTok, lhs, idFromToken(opTok), rhs)
	}
}

// canStartArg reports whether the current token can begin the next
// argument of a left-associative application chain (§4.3 parsePrimary's
// "ID followed by an expression token not in the follow-set"). Only
// atomic forms are eligible: `if`/`while`/`let` need parens to appear as
// an argument, matching ordinary SML juxtaposition.
func (p *Parser) canStartArg() bool {
	if p.atExpEnd() {
		return false
	}
	t := p.cur()
	if t.Kind == token.KEYWORD && (t.Lexeme == "andalso" || t.Lexeme == "orelse") {
		return false
	}
	if _, ok := p.curIsOperatorID(); ok {
		return false
	}
	switch t.Kind {
	case token.INT, token.REAL, token.CHAR, token.STRING, token.BOOL, token.ID:
		return true
	}
	if t.Kind == token.OPERATOR {
		switch t.Lexeme {
		case "(", "[", "{", "#":
			return true
		}
	}
	if t.Kind == token.KEYWORD && (t.Lexeme == "fn" || t.Lexeme == "op") {
		return true
	}
	return false
}

// parsePrimary parses one atom, folds any trailing application arguments
// left-associatively, then an optional `: typ` annotation (§4.3 step 4).
func (p *Parser) parsePrimary() (ast.Expression, *diagnostics.Diagnostic) {
	exp, d := p.parseAtom()
	if d != nil {
		return nil, d
	}
	for p.canStartArg() {
		argTok := p.cur()
		arg, d := p.parseAtom()
		if d != nil {
			return nil, d
		}
		exp = ast.NewApp(argTok, exp, arg)
	}
	if p.curIsOp(":") {
		colon := p.cur()
		p.advance()
		typ, d := p.parseType()
		if d != nil {
			return nil, d
		}
		exp = ast.NewAnnExp(colon, exp, typ)
	}
	return exp, nil
}

func (p *Parser) parseAtom() (ast.Expression, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	t := p.cur()

	switch t.Kind {
	case token.INT:
		p.advance()
		return ast.NewConstExp(t, ast.NewIntCon(t, t.Payload.(int64))), nil
	case token.REAL:
		p.advance()
		return ast.NewConstExp(t, ast.NewRealCon(t, t.Payload.(float64))), nil
	case token.CHAR:
		p.advance()
		return ast.NewConstExp(t, ast.NewCharCon(t, t.Payload.(byte))), nil
	case token.STRING:
		p.advance()
		return ast.NewConstExp(t, ast.NewStringCon(t, t.Payload.(string))), nil
	case token.BOOL:
		p.advance()
		return ast.NewConstExp(t, ast.NewBoolCon(t, t.Payload.(bool))), nil
	case token.ID:
		p.advance()
		return ast.NewVarRef(t, longID(idFromToken(t))), nil
	}

	if t.Kind == token.KEYWORD {
		switch t.Lexeme {
		case "op":
			// `op id` as a value reference, suppressing infix parsing of
			// id (extended to expressions alongside the pattern grammar's
			// own `op id`, per the original parser).
			p.advance()
			id, d := p.expectID()
			if d != nil {
				return nil, d
			}
			return ast.NewVarRef(t, longID(id)), nil
		case "fn":
			return p.parseFn()
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "let":
			return p.parseLet()
		}
	}

	if t.Kind == token.OPERATOR {
		switch t.Lexeme {
		case "(":
			return p.parseParenOrTuple()
		case "[":
			return p.parseListExp()
		case "{":
			return p.parseRecordExp()
		case "#":
			return p.parseSel()
		}
	}

	return nil, diagnostics.InvalidToken(t)
}

// parseParenOrTuple handles `()`, `(e)` and `(e, e, ...)` (§4.3 parsePrimary).
func (p *Parser) parseParenOrTuple() (ast.Expression, *diagnostics.Diagnostic) {
	open := p.cur()
	p.advance()
	if p.curIsOp(")") {
		p.advance()
		return ast.NewTupleExp(open, nil), nil
	}
	first, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	if !p.curIsOp(",") {
		if _, d := p.expectOp(")"); d != nil {
			return nil, d
		}
		return first, nil
	}
	elems := []ast.Expression{first}
	for p.curIsOp(",") {
		p.advance()
		e, d := p.parseExp()
		if d != nil {
			return nil, d
		}
		elems = append(elems, e)
	}
	if _, d := p.expectOp(")"); d != nil {
		return nil, d
	}
	return ast.NewTupleExp(open, elems), nil
}

func (p *Parser) parseListExp() (ast.Expression, *diagnostics.Diagnostic) {
	open := p.cur()
	p.advance()
	if p.curIsOp("]") {
		p.advance()
		return ast.NewListExp(open, nil), nil
	}
	var elems []ast.Expression
	for {
		e, d := p.parseExp()
		if d != nil {
			return nil, d
		}
		elems = append(elems, e)
		if !p.curIsOp(",") {
			break
		}
		p.advance()
	}
	if _, d := p.expectOp("]"); d != nil {
		return nil, d
	}
	return ast.NewListExp(open, elems), nil
}

// parseRecordExp handles `{lab = e, ...}` (§4.3 "records (skeleton)").
func (p *Parser) parseRecordExp() (ast.Expression, *diagnostics.Diagnostic) {
	open := p.cur()
	p.advance()
	var labels []string
	fields := map[string]ast.Expression{}
	if !p.curIsOp("}") {
		for {
			labTok, d := p.expectID()
			if d != nil {
				return nil, d
			}
			if _, d := p.expectOp("="); d != nil {
				return nil, d
			}
			e, d := p.parseExp()
			if d != nil {
				return nil, d
			}
			labels = append(labels, labTok.Name())
			fields[labTok.Name()] = e
			if !p.curIsOp(",") {
				break
			}
			p.advance()
		}
	}
	if _, d := p.expectOp("}"); d != nil {
		return nil, d
	}
	return ast.NewRecordExp(open, labels, fields), nil
}

func (p *Parser) parseSel() (ast.Expression, *diagnostics.Diagnostic) {
	hash := p.cur()
	p.advance()
	labTok, d := p.expectID()
	if d != nil {
		return nil, d
	}
	return ast.NewSel(hash, labTok.Name()), nil
}

func (p *Parser) parseIf() (ast.Expression, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	cond, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectKeyword("then"); d != nil {
		return nil, d
	}
	then, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectKeyword("else"); d != nil {
		return nil, d
	}
	els, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	return ast.NewIf(tok, cond, then, els), nil
}

func (p *Parser) parseWhile() (ast.Expression, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	cond, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectKeyword("do"); d != nil {
		return nil, d
	}
	body, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	return ast.NewWhile(tok, cond, body), nil
}

func (p *Parser) parseFn() (ast.Expression, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	m, d := p.parseMatch()
	if d != nil {
		return nil, d
	}
	return ast.NewFn(tok, m), nil
}

// parseMatch parses `pat => exp` arms chained by `|` (§3 "Match").
func (p *Parser) parseMatch() (*ast.Match, *diagnostics.Diagnostic) {
	tok := p.cur()
	pat, d := p.parsePattern()
	if d != nil {
		return nil, d
	}
	if _, d := p.expectOp("=>"); d != nil {
		return nil, d
	}
	body, d := p.parseExp()
	if d != nil {
		return nil, d
	}
	m := &ast.Match{Tok: tok, Pat: pat, Body: body}
	if p.curIsOp("|") {
		p.advance()
		or, d := p.parseMatch()
		if d != nil {
			return nil, d
		}
		m.Or = or
	}
	return m, nil
}

// parseLet handles `let dec+ in exp (; exp)* end` (§4.3 parsePrimary).
func (p *Parser) parseLet() (ast.Expression, *diagnostics.Diagnostic) {
	tok := p.cur()
	p.advance()
	decs, d := p.parseDecSeq("in")
	if d != nil {
		return nil, d
	}
	if _, d := p.expectKeyword("in"); d != nil {
		return nil, d
	}
	var exprs []ast.Expression
	for {
		e, d := p.parseExp()
		if d != nil {
			return nil, d
		}
		exprs = append(exprs, e)
		if !p.curIsOp(";") {
			break
		}
		p.advance()
	}
	if _, d := p.expectKeyword("end"); d != nil {
		return nil, d
	}
	return ast.NewLet(tok, decsToDec(tok, decs), exprs), nil
}

// parseDecSeq reads one or more declarations (§4.3 `let dec+`), stopping
// when the current keyword is stop (the caller's terminator, `in` or
// `end`) rather than the first-set of another declaration.
func (p *Parser) parseDecSeq(stop string) ([]ast.Dec, *diagnostics.Diagnostic) {
	var decs []ast.Dec
	for !p.curIsKeyword(stop) {
		dec, d := p.parseDec()
		if d != nil {
			return nil, d
		}
		decs = append(decs, dec)
		if p.curIsOp(";") {
			p.advance()
		}
	}
	return decs, nil
}
