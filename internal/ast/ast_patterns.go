package ast

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// Pat is a pattern occurring on the left of `=`, as a `fn`/`fun` parameter,
// or inside a `match` arm (§3 "Patterns").
type Pat interface {
	Node
	patNode()
}

type PConst struct {
	base
	Con Con
}

func NewPConst(tok token.Token, c Con) *PConst { return &PConst{base{tok: tok}, c} }
func (n *PConst) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPConst(n)
}
func (*PConst) patNode() {}

// PWild is `_`.
type PWild struct{ base }

func NewPWild(tok token.Token) *PWild { return &PWild{base{tok: tok}} }
func (n *PWild) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPWild(n)
}
func (*PWild) patNode() {}

// PVar binds a type-variable-looking pattern name, i.e. an identifier
// beginning with `'`, distinguished from PCtor at parse time (§4.3).
type PVar struct {
	base
	Name string
}

func NewPVar(tok token.Token, name string) *PVar { return &PVar{base{tok: tok}, name} }
func (n *PVar) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPVar(n)
}
func (*PVar) patNode() {}

// PCtor is an ordinary alphanumeric pattern binding (most pattern-position
// identifiers, including simple variable bindings — the module language's
// real constructors are a non-goal so this doubles as "plain variable
// pattern", matching the grammar in §4.3).
type PCtor struct {
	base
	ID  *LongID
	Arg Pat // nil unless this pattern applies a sub-pattern
}

func NewPCtor(tok token.Token, id *LongID, arg Pat) *PCtor { return &PCtor{base{tok: tok}, id, arg} }
func (n *PCtor) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPCtor(n)
}
func (*PCtor) patNode() {}

type PInfixCtor struct {
	base
	Left  Pat
	Op    Id
	Right Pat
}

func NewPInfixCtor(tok token.Token, l Pat, op Id, r Pat) *PInfixCtor {
	return &PInfixCtor{base{tok: tok}, l, op, r}
}
func (n *PInfixCtor) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPInfixCtor(n)
}
func (*PInfixCtor) patNode() {}

type PTuple struct {
	base
	Elems []Pat
}

func NewPTuple(tok token.Token, elems []Pat) *PTuple { return &PTuple{base{tok: tok}, elems} }
func (n *PTuple) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPTuple(n)
}
func (*PTuple) patNode() {}

type PList struct {
	base
	Elems []Pat
}

func NewPList(tok token.Token, elems []Pat) *PList { return &PList{base{tok: tok}, elems} }
func (n *PList) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitPList(n)
}
func (*PList) patNode() {}

type PAnn struct {
	base
	Pat Pat
	Typ Typ
}

func NewPAnn(tok token.Token, p Pat, t Typ) *PAnn { return &PAnn{base{tok: tok}, p, t} }
func (n *PAnn) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitPAnn(n) }
func (*PAnn) patNode()                                                     {}
