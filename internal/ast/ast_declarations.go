package ast

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// Dec is a top-level or `let`-local declaration (§3 "Declarations").
type Dec interface {
	Node
	decNode()
}

// ValBind is `pat = exp`, optionally followed by an `and`-chain. Per the
// Open Questions in spec.md §9, multi-binding `and`-chain semantics are
// unspecified upstream; this checker only type-checks the head binding of
// a chain and threads the rest along for the parser/printer to see, as the
// original does.
type ValBind struct {
	Tok token.Token
	Pat Pat
	Exp Expression
	And *ValBind
}

type ValDec struct {
	base
	Bind *ValBind
}

func NewValDec(tok token.Token, b *ValBind) *ValDec { return &ValDec{base{tok: tok}, b} }
func (n *ValDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitValDec(n)
}
func (*ValDec) decNode() {}

// FunMatch is one nonfix or infix clause of a `fun` binding; Or chains the
// `|`-separated alternatives and And chains the `and`-separated siblings.
type FunMatch struct {
	Tok    token.Token
	Infix  bool // true when declared as `pat id pat`, false for `id pat+`
	Name   Id
	Params []Pat // nonfix: one or more curried parameters; infix: [left, right]
	Ret    Typ   // optional trailing `: typ`
	Body   Expression
	Or     *FunMatch
}

type FunBind struct {
	Match *FunMatch
	And   *FunBind
}

type FunDec struct {
	base
	Bind *FunBind
}

func NewFunDec(tok token.Token, b *FunBind) *FunDec { return &FunDec{base{tok: tok}, b} }
func (n *FunDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitFunDec(n)
}
func (*FunDec) decNode() {}

type TypBind struct {
	Tok  token.Token
	Name Id
	Typ  Typ
	And  *TypBind
}

type TypeDec struct {
	base
	Bind *TypBind
}

func NewTypeDec(tok token.Token, b *TypBind) *TypeDec { return &TypeDec{base{tok: tok}, b} }
func (n *TypeDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTypeDec(n)
}
func (*TypeDec) decNode() {}

// SeqDec sequences declarations separated by `;`, used inside `local`.
type SeqDec struct {
	base
	Decs []Dec
}

func NewSeqDec(tok token.Token, decs []Dec) *SeqDec { return &SeqDec{base{tok: tok}, decs} }
func (n *SeqDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitSeqDec(n)
}
func (*SeqDec) decNode() {}

type LocalDec struct {
	base
	Outer Dec // d1
	Inner Dec // d2
}

func NewLocalDec(tok token.Token, outer, inner Dec) *LocalDec {
	return &LocalDec{base{tok: tok}, outer, inner}
}
func (n *LocalDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitLocalDec(n)
}
func (*LocalDec) decNode() {}

// Fixity distinguishes INFIX from INFIXR for an InfixDec; NONFIX is
// represented by the separate NonfixDec node (§3).
type Fixity int

const (
	INFIX Fixity = iota
	INFIXR
)

// InfixDec is `infix [prio] id+` or `infixr [prio] id+`. Registration in
// the fixity table is a parse-time side effect (§4.3); this node only
// records what was declared, for any later pass that wants to see it.
type InfixDec struct {
	base
	Fixity Fixity
	Prio   int
	Ids    []Id
}

func NewInfixDec(tok token.Token, fixity Fixity, prio int, ids []Id) *InfixDec {
	return &InfixDec{base{tok: tok}, fixity, prio, ids}
}
func (n *InfixDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitInfixDec(n)
}
func (*InfixDec) decNode() {}

type NonfixDec struct {
	base
	Ids []Id
}

func NewNonfixDec(tok token.Token, ids []Id) *NonfixDec { return &NonfixDec{base{tok: tok}, ids} }
func (n *NonfixDec) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitNonfixDec(n)
}
func (*NonfixDec) decNode() {}

// Match is a `pat => exp` arm of a `fn`; Or chains `|`-separated arms.
type Match struct {
	Tok  token.Token
	Pat  Pat
	Body Expression
	Or   *Match
}
