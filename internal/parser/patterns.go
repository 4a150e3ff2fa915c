package parser

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/symbols"
	"github.com/sml-lang/sml/internal/token"
)

// patFollow terminates a pattern the same way expFollow terminates an
// expression, minus the tokens that are themselves valid inside a pattern
// (`,` ends a tuple element, not the whole pattern grammar call, so tuple
// parsing handles commas itself rather than through this set).
var patFollow = map[string]bool{
	")": true, "]": true, "=": true, "=>": true, ":": true, "|": true,
}

func (p *Parser) atPatEnd() bool {
	t := p.cur()
	if t.Kind == token.EOF {
		return true
	}
	// "=" always ends a pattern (the ValBind/FunMatch separator), even
	// though it is also registered as the builtin equality operator: a
	// pattern never contains an infix equality application.
	if t.Lexeme == "=" {
		return true
	}
	if _, ok := p.curIsOperatorID(); ok {
		return false
	}
	return patFollow[t.Lexeme]
}

// curIsPatternInfixOp is curIsOperatorID with the "=" carve-out from
// atPatEnd applied, used everywhere a pattern decides whether the current
// token extends it as an infix constructor application.
func (p *Parser) curIsPatternInfixOp() (symbols.Fixity, bool) {
	if p.cur().Lexeme == "=" {
		return symbols.Fixity{}, false
	}
	return p.curIsOperatorID()
}

// parsePattern reads one pattern, then an optional infix-constructor
// application and trailing `: typ` annotation (§4.3 "Pattern grammar").
func (p *Parser) parsePattern() (ast.Pat, *diagnostics.Diagnostic) {
	pat, d := p.parsePatternAtom()
	if d != nil {
		return nil, d
	}
	if fx, ok := p.curIsPatternInfixOp(); ok && !fx.Nonfix {
		opTok := p.cur()
		p.advance()
		rhs, d := p.parsePatternAtom()
		if d != nil {
			return nil, d
		}
		pat = ast.NewPInfixCtor(opTok, pat, idFromToken(opTok), rhs)
	}
	if p.curIsOp(":") {
		colon := p.cur()
		p.advance()
		typ, d := p.parseType()
		if d != nil {
			return nil, d
		}
		pat = ast.NewPAnn(colon, pat, typ)
	}
	return pat, nil
}

// parseFunParam parses one curried `fun` parameter pattern. Unlike
// parsePatternAtom, a bare identifier here is never allowed to absorb a
// following atom as a constructor argument — `fun f x y = ...` must parse
// as two separate parameters, not `x` applied to `y`; a constructor
// pattern that itself needs an argument as a single parameter must be
// written parenthesized (`fun f (Cons x xs) = ...`), which still goes
// through the ordinary "(" path below.
func (p *Parser) parseFunParam() (ast.Pat, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	t := p.cur()
	if t.Kind == token.ID {
		if len(t.Lexeme) > 0 && t.Lexeme[0] == '\'' {
			p.advance()
			return ast.NewPVar(t, t.Lexeme), nil
		}
		p.advance()
		return ast.NewPCtor(t, longID(idFromToken(t)), nil), nil
	}
	return p.parsePatternAtom()
}

func (p *Parser) parsePatternAtom() (ast.Pat, *diagnostics.Diagnostic) {
	if d := p.checkLexErr(); d != nil {
		return nil, d
	}
	t := p.cur()

	switch t.Kind {
	case token.INT:
		p.advance()
		return ast.NewPConst(t, ast.NewIntCon(t, t.Payload.(int64))), nil
	case token.REAL:
		p.advance()
		return ast.NewPConst(t, ast.NewRealCon(t, t.Payload.(float64))), nil
	case token.CHAR:
		p.advance()
		return ast.NewPConst(t, ast.NewCharCon(t, t.Payload.(byte))), nil
	case token.STRING:
		p.advance()
		return ast.NewPConst(t, ast.NewStringCon(t, t.Payload.(string))), nil
	case token.BOOL:
		p.advance()
		return ast.NewPConst(t, ast.NewBoolCon(t, t.Payload.(bool))), nil
	}

	if t.Kind == token.OPERATOR && t.Lexeme == "_" {
		p.advance()
		return ast.NewPWild(t), nil
	}

	if t.Kind == token.KEYWORD && t.Lexeme == "op" {
		p.advance()
		idTok := p.cur()
		id, d := p.expectID()
		if d != nil {
			return nil, d
		}
		return p.parsePCtorArg(idTok, id)
	}

	if t.Kind == token.ID {
		if len(t.Lexeme) > 0 && t.Lexeme[0] == '\'' {
			p.advance()
			return ast.NewPVar(t, t.Lexeme), nil
		}
		p.advance()
		return p.parsePCtorArg(t, idFromToken(t))
	}

	if t.Kind == token.OPERATOR {
		switch t.Lexeme {
		case "(":
			return p.parsePatternParenOrTuple()
		case "[":
			return p.parsePatternList()
		}
	}

	return nil, diagnostics.InvalidToken(t)
}

// parsePCtorArg wraps id as a PCtor, consuming one applied sub-pattern atom
// if the follow set allows it (§4.3: "`id` alphanumeric -> `PCtor(...)`").
// Only one argument is accepted, since this subset has no n-ary
// constructor arity beyond the original's single-Arg shape.
func (p *Parser) parsePCtorArg(tok token.Token, id ast.Id) (ast.Pat, *diagnostics.Diagnostic) {
	ctor := ast.NewPCtor(tok, longID(id), nil)
	if p.atPatEnd() || p.curIsOp(",") {
		return ctor, nil
	}
	if _, ok := p.curIsPatternInfixOp(); ok {
		return ctor, nil
	}
	arg, d := p.parsePatternAtom()
	if d != nil {
		return nil, d
	}
	return ast.NewPCtor(tok, longID(id), arg), nil
}

func (p *Parser) parsePatternParenOrTuple() (ast.Pat, *diagnostics.Diagnostic) {
	open := p.cur()
	p.advance()
	if p.curIsOp(")") {
		p.advance()
		return ast.NewPTuple(open, nil), nil
	}
	first, d := p.parsePattern()
	if d != nil {
		return nil, d
	}
	if !p.curIsOp(",") {
		if _, d := p.expectOp(")"); d != nil {
			return nil, d
		}
		return first, nil
	}
	elems := []ast.Pat{first}
	for p.curIsOp(",") {
		p.advance()
		e, d := p.parsePattern()
		if d != nil {
			return nil, d
		}
		elems = append(elems, e)
	}
	if _, d := p.expectOp(")"); d != nil {
		return nil, d
	}
	return ast.NewPTuple(open, elems), nil
}

func (p *Parser) parsePatternList() (ast.Pat, *diagnostics.Diagnostic) {
	open := p.cur()
	p.advance()
	if p.curIsOp("]") {
		p.advance()
		return ast.NewPList(open, nil), nil
	}
	var elems []ast.Pat
	for {
		e, d := p.parsePattern()
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
	return ast.NewPList(open, elems), nil
}
