package ast

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// Con is a constant literal (§3 "Constants").
type Con interface {
	Node
	conNode()
}

type IntCon struct {
	base
	Value int64
}

func NewIntCon(tok token.Token, v int64) *IntCon { return &IntCon{base{tok: tok}, v} }
func (n *IntCon) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitIntCon(n) }
func (*IntCon) conNode()                                                     {}

type RealCon struct {
	base
	Value float64
}

func NewRealCon(tok token.Token, v float64) *RealCon { return &RealCon{base{tok: tok}, v} }
func (n *RealCon) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitRealCon(n)
}
func (*RealCon) conNode() {}

type CharCon struct {
	base
	Value byte
}

func NewCharCon(tok token.Token, v byte) *CharCon { return &CharCon{base{tok: tok}, v} }
func (n *CharCon) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitCharCon(n)
}
func (*CharCon) conNode() {}

type StringCon struct {
	base
	Value string
}

func NewStringCon(tok token.Token, v string) *StringCon { return &StringCon{base{tok: tok}, v} }
func (n *StringCon) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitStringCon(n)
}
func (*StringCon) conNode() {}

type BoolCon struct {
	base
	Value bool
}

func NewBoolCon(tok token.Token, v bool) *BoolCon { return &BoolCon{base{tok: tok}, v} }
func (n *BoolCon) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitBoolCon(n)
}
func (*BoolCon) conNode() {}

// Id is an identifier occurrence (§3 "Identifiers").
type Id interface {
	Node
	idNode()
	Name() string
}

// AlphaID is an alphanumeric identifier, e.g. `foo`, `'a`.
type AlphaID struct {
	base
	Value string
}

func NewAlphaID(tok token.Token, name string) *AlphaID { return &AlphaID{base{tok: tok}, name} }
func (n *AlphaID) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitAlphaID(n)
}
func (*AlphaID) idNode()        {}
func (n *AlphaID) Name() string { return n.Value }

// SymID is a symbolic identifier, e.g. `+`, `::`, `++`.
type SymID struct {
	base
	Value string
}

func NewSymID(tok token.Token, name string) *SymID { return &SymID{base{tok: tok}, name} }
func (n *SymID) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitSymID(n)
}
func (*SymID) idNode()        {}
func (n *SymID) Name() string { return n.Value }

// LongID is a (possibly qualified) identifier path. The module language is
// a non-goal so Path never has more than one element in this subset, but
// the shape is kept so the parser and checker match §3 exactly.
type LongID struct {
	base
	Path []Id
}

func NewLongID(tok token.Token, path []Id) *LongID { return &LongID{base{tok: tok}, path} }
func (n *LongID) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitLongID(n)
}
func (*LongID) idNode() {}
func (n *LongID) Name() string {
	if len(n.Path) == 0 {
		return ""
	}
	return n.Path[len(n.Path)-1].Name()
}

// Expression is a Node that represents a value-producing syntactic form.
type Expression interface {
	Node
	expressionNode()
}

type ConstExp struct {
	base
	Con Con
}

func NewConstExp(tok token.Token, c Con) *ConstExp { return &ConstExp{base{tok: tok}, c} }
func (n *ConstExp) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitConstExp(n)
}
func (*ConstExp) expressionNode() {}

type VarRef struct {
	base
	ID *LongID
}

func NewVarRef(tok token.Token, id *LongID) *VarRef { return &VarRef{base{tok: tok}, id} }
func (n *VarRef) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitVarRef(n)
}
func (*VarRef) expressionNode() {}

// App is a single curried application `f a`; parsePrimary folds a run of
// application tokens left-associatively into a chain of these (§4.3).
type App struct {
	base
	Fun Expression
	Arg Expression
}

func NewApp(tok token.Token, fn, arg Expression) *App { return &App{base{tok: tok}, fn, arg} }
func (n *App) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitApp(n) }
func (*App) expressionNode()                                              {}

type InfixApp struct {
	base
	Left  Expression
	Op    Id
	Right Expression
}

func NewInfixApp(tok token.Token, l Expression, op Id, r Expression) *InfixApp {
	return &InfixApp{base{tok: tok}, l, op, r}
}
func (n *InfixApp) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitInfixApp(n)
}
func (*InfixApp) expressionNode() {}

type TupleExp struct {
	base
	Elems []Expression
}

func NewTupleExp(tok token.Token, elems []Expression) *TupleExp {
	return &TupleExp{base{tok: tok}, elems}
}
func (n *TupleExp) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitTupleExp(n)
}
func (*TupleExp) expressionNode() {}

type ListExp struct {
	base
	Elems []Expression
}

func NewListExp(tok token.Token, elems []Expression) *ListExp {
	return &ListExp{base{tok: tok}, elems}
}
func (n *ListExp) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitListExp(n)
}
func (*ListExp) expressionNode() {}

type If struct {
	base
	Cond, Then, Else Expression
}

func NewIf(tok token.Token, c, t, e Expression) *If { return &If{base{tok: tok}, c, t, e} }
func (n *If) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitIf(n) }
func (*If) expressionNode()                                              {}

type While struct {
	base
	Cond, Body Expression
}

func NewWhile(tok token.Token, c, b Expression) *While { return &While{base{tok: tok}, c, b} }
func (n *While) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitWhile(n)
}
func (*While) expressionNode() {}

type Conj struct {
	base
	Left, Right Expression
}

func NewConj(tok token.Token, l, r Expression) *Conj { return &Conj{base{tok: tok}, l, r} }
func (n *Conj) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitConj(n) }
func (*Conj) expressionNode()                                              {}

type Disj struct {
	base
	Left, Right Expression
}

func NewDisj(tok token.Token, l, r Expression) *Disj { return &Disj{base{tok: tok}, l, r} }
func (n *Disj) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitDisj(n) }
func (*Disj) expressionNode()                                              {}

// AnnExp is a trailing `: typ` annotation on an expression.
type AnnExp struct {
	base
	Exp Expression
	Typ Typ
}

func NewAnnExp(tok token.Token, e Expression, t Typ) *AnnExp { return &AnnExp{base{tok: tok}, e, t} }
func (n *AnnExp) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitAnnExp(n)
}
func (*AnnExp) expressionNode() {}

type Fn struct {
	base
	Match *Match
}

func NewFn(tok token.Token, m *Match) *Fn { return &Fn{base{tok: tok}, m} }
func (n *Fn) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitFn(n) }
func (*Fn) expressionNode()                                               {}

// Let is `let dec in e1; e2; ...; en end`; the item's type is that of En.
type Let struct {
	base
	Dec   Dec
	Exprs []Expression
}

func NewLet(tok token.Token, d Dec, exprs []Expression) *Let { return &Let{base{tok: tok}, d, exprs} }
func (n *Let) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitLet(n) }
func (*Let) expressionNode()                                              {}

// Sel is a record field selector `#lab`, skeleton per §3/§4.3.
type Sel struct {
	base
	Label string
}

func NewSel(tok token.Token, label string) *Sel { return &Sel{base{tok: tok}, label} }
func (n *Sel) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) { return v.VisitSel(n) }
func (*Sel) expressionNode()                                              {}

// RecordExp is `{lab1 = e1, lab2 = e2, ...}`; Labels preserves declaration
// order so printing stays deterministic, matching TRecord (§4.3 "records
// (skeleton)").
type RecordExp struct {
	base
	Labels []string
	Fields map[string]Expression
}

func NewRecordExp(tok token.Token, labels []string, fields map[string]Expression) *RecordExp {
	return &RecordExp{base{tok: tok}, labels, fields}
}
func (n *RecordExp) Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic) {
	return v.VisitRecordExp(n)
}
func (*RecordExp) expressionNode() {}
