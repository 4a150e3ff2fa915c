package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/typesystem"
)

func (c *Checker) VisitConstExp(n *ast.ConstExp) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := n.Con.Accept(c)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}

// VisitVarRef resolves `VarRef(x)` under Value mode: `getPatternType(x)`
// then `getValue(x).type` else error (§4.4).
func (c *Checker) VisitVarRef(n *ast.VarRef) (typesystem.Type, *diagnostics.Diagnostic) {
	c.pushMode(modeValue)
	t, d := n.ID.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}

// VisitApp implements `App(f,a)`: `type(f)` must unify with `Fun(fresh
// beta, type(a))`; result beta (§4.4).
func (c *Checker) VisitApp(n *ast.App) (typesystem.Type, *diagnostics.Diagnostic) {
	tFun, d := n.Fun.Accept(c)
	if d != nil {
		return nil, d
	}
	tArg, d := n.Arg.Accept(c)
	if d != nil {
		return nil, d
	}
	beta := c.freshVar()
	if _, d := c.unify(n.Token(), tFun, typesystem.FunT{Param: tArg, Ret: beta}); d != nil {
		return nil, d
	}
	result := c.find(beta)
	n.SetType(result)
	return result, nil
}

// VisitInfixApp desugars to App(App(op, L), R) per §4.4, EXCEPT for the
// arithmetic overload operators (`+ - *`), which §4.4 singles out: both
// operand types must be unified together against one FunOverloadedT
// alternative, not resolved from the Left operand's curried App step
// alone. Folding the overloaded case through the generic desugaring would
// call resolveOverload on Left before Right is even visited, permanently
// committing a shared type variable (via link's no-backtracking
// union-find) to the wrong alternative — e.g. `fn (x, y) => x + 1.0`
// would commit x to Int from the Left step, then fail when Right turns
// out to be Real.
func (c *Checker) VisitInfixApp(n *ast.InfixApp) (typesystem.Type, *diagnostics.Diagnostic) {
	tL, d := n.Left.Accept(c)
	if d != nil {
		return nil, d
	}
	c.pushMode(modeValue)
	tOp, d := n.Op.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}
	tR, d := n.Right.Accept(c)
	if d != nil {
		return nil, d
	}

	if overload, ok := c.find(tOp).(typesystem.FunOverloadedT); ok {
		result, d := c.resolveArithOverload(n.Token(), overload, tL, tR)
		if d != nil {
			return nil, d
		}
		n.SetType(result)
		return result, nil
	}

	beta1 := c.freshVar()
	if _, d := c.unify(n.Token(), tOp, typesystem.FunT{Param: tL, Ret: beta1}); d != nil {
		return nil, d
	}
	beta2 := c.freshVar()
	if _, d := c.unify(n.Token(), c.find(beta1), typesystem.FunT{Param: tR, Ret: beta2}); d != nil {
		return nil, d
	}
	result := c.find(beta2)
	n.SetType(result)
	return result, nil
}

// VisitTupleExp types `(e1, ..., en)`. The empty case is `()`, SML's unit
// literal, parsed as a zero-element tuple by the parser and given Unit
// here rather than a degenerate TupleT.
func (c *Checker) VisitTupleExp(n *ast.TupleExp) (typesystem.Type, *diagnostics.Diagnostic) {
	if len(n.Elems) == 0 {
		n.SetType(typesystem.UnitType)
		return typesystem.UnitType, nil
	}
	elems := make([]typesystem.Type, len(n.Elems))
	for i, e := range n.Elems {
		t, d := e.Accept(c)
		if d != nil {
			return nil, d
		}
		elems[i] = t
	}
	t := typesystem.TupleT{Elems: elems}
	n.SetType(t)
	return t, nil
}

func (c *Checker) VisitListExp(n *ast.ListExp) (typesystem.Type, *diagnostics.Diagnostic) {
	if len(n.Elems) == 0 {
		t := typesystem.ListT{Elem: c.freshVar()}
		n.SetType(t)
		return t, nil
	}
	first, d := n.Elems[0].Accept(c)
	if d != nil {
		return nil, d
	}
	elemType := first
	for _, e := range n.Elems[1:] {
		t, d := e.Accept(c)
		if d != nil {
			return nil, d
		}
		if _, d := c.unify(n.Token(), elemType, t); d != nil {
			return nil, d
		}
		elemType = c.find(elemType)
	}
	t := typesystem.ListT{Elem: c.find(elemType)}
	n.SetType(t)
	return t, nil
}

// VisitIf implements `If(c,t,e)`: unify `type(c)` with `Bool`; unify
// `type(t)` with `type(e)`; result that type (§4.4).
func (c *Checker) VisitIf(n *ast.If) (typesystem.Type, *diagnostics.Diagnostic) {
	tc, d := n.Cond.Accept(c)
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), tc, typesystem.BoolType); d != nil {
		return nil, d
	}
	tt, d := n.Then.Accept(c)
	if d != nil {
		return nil, d
	}
	te, d := n.Else.Accept(c)
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), tt, te); d != nil {
		return nil, d
	}
	result := c.find(tt)
	n.SetType(result)
	return result, nil
}

// VisitWhile requires type(cond)=Bool and produces Unit; loop execution is
// left to the backend (§9 open question).
func (c *Checker) VisitWhile(n *ast.While) (typesystem.Type, *diagnostics.Diagnostic) {
	tc, d := n.Cond.Accept(c)
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), tc, typesystem.BoolType); d != nil {
		return nil, d
	}
	if _, d := n.Body.Accept(c); d != nil {
		return nil, d
	}
	n.SetType(typesystem.UnitType)
	return typesystem.UnitType, nil
}

func (c *Checker) VisitConj(n *ast.Conj) (typesystem.Type, *diagnostics.Diagnostic) {
	return c.checkBoolBinOp(n.Left, n.Right, n)
}

func (c *Checker) VisitDisj(n *ast.Disj) (typesystem.Type, *diagnostics.Diagnostic) {
	return c.checkBoolBinOp(n.Left, n.Right, n)
}

func (c *Checker) checkBoolBinOp(l, r ast.Expression, n ast.Node) (typesystem.Type, *diagnostics.Diagnostic) {
	tl, d := l.Accept(c)
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), tl, typesystem.BoolType); d != nil {
		return nil, d
	}
	tr, d := r.Accept(c)
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), tr, typesystem.BoolType); d != nil {
		return nil, d
	}
	n.SetType(typesystem.BoolType)
	return typesystem.BoolType, nil
}

func (c *Checker) VisitAnnExp(n *ast.AnnExp) (typesystem.Type, *diagnostics.Diagnostic) {
	te, d := n.Exp.Accept(c)
	if d != nil {
		return nil, d
	}
	c.pushMode(modeType)
	tt, d := n.Typ.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), te, tt); d != nil {
		return nil, d
	}
	result := c.find(te)
	n.SetType(result)
	return result, nil
}

func (c *Checker) VisitFn(n *ast.Fn) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := c.checkMatchChain(n.Match)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}

// checkMatch elaborates one `pat => body` arm in its own overlay: pattern
// in Pattern mode, body in Value mode, producing Fun(type(body),
// type(pat)) (§4.4 "Fn(Match)").
func (c *Checker) checkMatch(m *ast.Match) (typesystem.Type, *diagnostics.Diagnostic) {
	c.pushScope()
	defer c.popScope()

	c.pushMode(modePattern)
	tpat, d := m.Pat.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}

	c.pushMode(modeValue)
	tbody, d := m.Body.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}

	c.fillTypes()
	return typesystem.FunT{Param: c.find(tpat), Ret: c.find(tbody)}, nil
}

// checkMatchChain folds the `|`-separated alternatives of a `fn`, unifying
// each against the first (§4.4 "if a next alternative exists, unify its
// type with the first").
func (c *Checker) checkMatchChain(m *ast.Match) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := c.checkMatch(m)
	if d != nil {
		return nil, d
	}
	if m.Or != nil {
		t2, d := c.checkMatchChain(m.Or)
		if d != nil {
			return nil, d
		}
		if _, d := c.unify(m.Tok, t, t2); d != nil {
			return nil, d
		}
	}
	return c.find(t), nil
}

// VisitLet elaborates `let dec in e1; ...; en end`: enter a new overlay,
// elaborate dec, elaborate each exp in order; result is the type of the
// last one (§4.4). The overlay (and anything dec bound in it) is
// discarded on exit, matching scenario 10.
func (c *Checker) VisitLet(n *ast.Let) (typesystem.Type, *diagnostics.Diagnostic) {
	c.pushScope()
	defer c.popScope()

	if n.Dec != nil {
		if _, d := n.Dec.Accept(c); d != nil {
			return nil, d
		}
	}

	var last typesystem.Type = typesystem.UnitType
	for _, e := range n.Exprs {
		t, d := e.Accept(c)
		if d != nil {
			return nil, d
		}
		last = t
	}
	c.fillTypes()
	result := c.find(last)
	n.SetType(result)
	return result, nil
}

// VisitSel types a record selector `#lab` as a fresh function from an
// unconstrained field type; full record field-resolution is a non-goal
// skeleton (§3, §4.3).
func (c *Checker) VisitSel(n *ast.Sel) (typesystem.Type, *diagnostics.Diagnostic) {
	t := typesystem.FunT{Param: c.freshVar(), Ret: c.freshVar()}
	n.SetType(t)
	return t, nil
}

// VisitRecordExp types `{lab = e, ...}` as the RecordT of its elaborated
// fields, mirroring VisitTRecord on the type-syntax side.
func (c *Checker) VisitRecordExp(n *ast.RecordExp) (typesystem.Type, *diagnostics.Diagnostic) {
	fields := make(map[string]typesystem.Type, len(n.Fields))
	for _, label := range n.Labels {
		t, d := n.Fields[label].Accept(c)
		if d != nil {
			return nil, d
		}
		fields[label] = t
	}
	t := typesystem.RecordT{Labels: n.Labels, Fields: fields}
	n.SetType(t)
	return t, nil
}
