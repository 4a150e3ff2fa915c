package ast

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// Typ is a syntactic type expression, built by the parser's type grammar
// (§4.3) and turned into a typesystem.Type by the checker.
type Typ interface {
	Node
	typNode()
}

// TVarSyntax is `'a` in type position.
type TVarSyntax struct {
	base
	Name string
}

func NewTVarSyntax(tok token.Token, name string) *TVarSyntax { return &TVarSyntax{base{tok: tok}, name} }
func (n *TVarSyntax) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTVarSyntax(n)
}
func (*TVarSyntax) typNode() {}

// TCtor is a (possibly qualified) type name, e.g. `int`, `real list`.
type TCtor struct {
	base
	ID   *LongID
	Args []Typ // arguments preceding the constructor, e.g. `int list`
}

func NewTCtor(tok token.Token, id *LongID, args []Typ) *TCtor {
	return &TCtor{base{tok: tok}, id, args}
}
func (n *TCtor) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTCtor(n)
}
func (*TCtor) typNode() {}

type TFun struct {
	base
	Param, Ret Typ
}

func NewTFun(tok token.Token, p, r Typ) *TFun { return &TFun{base{tok: tok}, p, r} }
func (n *TFun) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitTFun(n) }
func (*TFun) typNode()                                                     {}

// TTuple is a flattened `t1 * t2 * ... * tn`, one level (§4.3).
type TTuple struct {
	base
	Elems []Typ
}

func NewTTuple(tok token.Token, elems []Typ) *TTuple { return &TTuple{base{tok: tok}, elems} }
func (n *TTuple) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTTuple(n)
}
func (*TTuple) typNode() {}

// TRecord is the record-type skeleton; full record typing is a non-goal.
type TRecord struct {
	base
	Labels []string
	Fields map[string]Typ
}

func NewTRecord(tok token.Token, labels []string, fields map[string]Typ) *TRecord {
	return &TRecord{base{tok: tok}, labels, fields}
}
func (n *TRecord) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTRecord(n)
}
func (*TRecord) typNode() {}

type TParen struct {
	base
	Inner Typ
}

func NewTParen(tok token.Token, inner Typ) *TParen { return &TParen{base{tok: tok}, inner} }
func (n *TParen) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTParen(n)
}
func (*TParen) typNode() {}
