// Package ast is the algebraic representation shared by the parser and the
// type checker (§3 "AST (sum)"). Every node carries enough identity for the
// checker to record an inferred Type on it (invariant I1) and exposes its
// leading token for diagnostics.
package ast

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// Node is the base interface implemented by every AST node. Accept returns
// a typed result instead of the covariant untyped pointer the source casts
// at every call site (§9 design notes): a visitor hands back the Type it
// assigned (nil on nodes with no type of their own, e.g. a Dec) paired with
// the first Diagnostic raised while visiting it, and never panics to signal
// failure.
type Node interface {
	Accept(v Visitor) (typesystem.Type, *diagnostics.Diagnostic)
	Token() token.Token
	// Type returns the type assigned by the checker, or nil before/if
	// checking failed for this node.
	Type() typesystem.Type
	SetType(t typesystem.Type)
}

// base is embedded by every concrete node to provide the Type slot and
// avoid repeating the same three lines in every node type.
type base struct {
	tok token.Token
	typ typesystem.Type
}

func (b *base) Token() token.Token        { return b.tok }
func (b *base) Type() typesystem.Type     { return b.typ }
func (b *base) SetType(t typesystem.Type) { b.typ = t }

// Visitor is implemented by each pass over the AST (the checker, a pretty
// printer, ...). Every method returns the node's Type (or nil where a Type
// is not meaningful) and a Diagnostic on failure; a pass that only cares
// about a subset of node kinds still implements every method — a no-op
// default is deliberately NOT provided, so every visitor lists every case
// explicitly instead of silently falling through.
type Visitor interface {
	// Constants
	VisitIntCon(n *IntCon) (typesystem.Type, *diagnostics.Diagnostic)
	VisitRealCon(n *RealCon) (typesystem.Type, *diagnostics.Diagnostic)
	VisitCharCon(n *CharCon) (typesystem.Type, *diagnostics.Diagnostic)
	VisitStringCon(n *StringCon) (typesystem.Type, *diagnostics.Diagnostic)
	VisitBoolCon(n *BoolCon) (typesystem.Type, *diagnostics.Diagnostic)

	// Identifiers
	VisitAlphaID(n *AlphaID) (typesystem.Type, *diagnostics.Diagnostic)
	VisitSymID(n *SymID) (typesystem.Type, *diagnostics.Diagnostic)
	VisitLongID(n *LongID) (typesystem.Type, *diagnostics.Diagnostic)

	// Expressions
	VisitConstExp(n *ConstExp) (typesystem.Type, *diagnostics.Diagnostic)
	VisitVarRef(n *VarRef) (typesystem.Type, *diagnostics.Diagnostic)
	VisitApp(n *App) (typesystem.Type, *diagnostics.Diagnostic)
	VisitInfixApp(n *InfixApp) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTupleExp(n *TupleExp) (typesystem.Type, *diagnostics.Diagnostic)
	VisitListExp(n *ListExp) (typesystem.Type, *diagnostics.Diagnostic)
	VisitIf(n *If) (typesystem.Type, *diagnostics.Diagnostic)
	VisitWhile(n *While) (typesystem.Type, *diagnostics.Diagnostic)
	VisitConj(n *Conj) (typesystem.Type, *diagnostics.Diagnostic)
	VisitDisj(n *Disj) (typesystem.Type, *diagnostics.Diagnostic)
	VisitAnnExp(n *AnnExp) (typesystem.Type, *diagnostics.Diagnostic)
	VisitFn(n *Fn) (typesystem.Type, *diagnostics.Diagnostic)
	VisitLet(n *Let) (typesystem.Type, *diagnostics.Diagnostic)
	VisitSel(n *Sel) (typesystem.Type, *diagnostics.Diagnostic)
	VisitRecordExp(n *RecordExp) (typesystem.Type, *diagnostics.Diagnostic)

	// Patterns
	VisitPConst(n *PConst) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPWild(n *PWild) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPVar(n *PVar) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPCtor(n *PCtor) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPInfixCtor(n *PInfixCtor) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPTuple(n *PTuple) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPList(n *PList) (typesystem.Type, *diagnostics.Diagnostic)
	VisitPAnn(n *PAnn) (typesystem.Type, *diagnostics.Diagnostic)

	// Types
	VisitTVarSyntax(n *TVarSyntax) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTCtor(n *TCtor) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTFun(n *TFun) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTTuple(n *TTuple) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTRecord(n *TRecord) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTParen(n *TParen) (typesystem.Type, *diagnostics.Diagnostic)

	// Declarations
	VisitValDec(n *ValDec) (typesystem.Type, *diagnostics.Diagnostic)
	VisitFunDec(n *FunDec) (typesystem.Type, *diagnostics.Diagnostic)
	VisitTypeDec(n *TypeDec) (typesystem.Type, *diagnostics.Diagnostic)
	VisitSeqDec(n *SeqDec) (typesystem.Type, *diagnostics.Diagnostic)
	VisitLocalDec(n *LocalDec) (typesystem.Type, *diagnostics.Diagnostic)
	VisitInfixDec(n *InfixDec) (typesystem.Type, *diagnostics.Diagnostic)
	VisitNonfixDec(n *NonfixDec) (typesystem.Type, *diagnostics.Diagnostic)
}

// Program is what the parser returns for one top-level item: either a
// declaration or a top-level expression (§6 "Each item ends with ;").
type Program struct {
	Dec  Dec
	Expr Expression
}
