package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/typesystem"
)

func (c *Checker) VisitPConst(n *ast.PConst) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := n.Con.Accept(c)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}

// VisitPWild types `_`: a fresh, unbound variable with no name to record.
func (c *Checker) VisitPWild(n *ast.PWild) (typesystem.Type, *diagnostics.Diagnostic) {
	t := c.freshVar()
	n.SetType(t)
	return t, nil
}

// VisitPVar types a pattern name beginning with `'`, registering it as a
// fresh pattern-scope variable exactly like an ordinary PCtor binding.
func (c *Checker) VisitPVar(n *ast.PVar) (typesystem.Type, *diagnostics.Diagnostic) {
	v := c.freshVar()
	c.scope.InsertPatternType(n.Name, v)
	c.addPendingFill(n.Name, v)
	n.SetType(v)
	return v, nil
}

// VisitPCtor types an ordinary pattern-position identifier. With no Arg it
// is a plain variable binding, resolved through the Pattern-mode branch of
// resolveIdent (a fresh Var, recorded for fillTypes). Datatype
// constructors that apply an Arg are a non-goal in this subset and are
// handled only as a typed skeleton: both sides are elaborated but no
// constructor signature exists to unify them against.
func (c *Checker) VisitPCtor(n *ast.PCtor) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := n.ID.Accept(c)
	if d != nil {
		return nil, d
	}
	if n.Arg != nil {
		if _, d := n.Arg.Accept(c); d != nil {
			return nil, d
		}
	}
	n.SetType(t)
	return t, nil
}

// VisitPInfixCtor types `p1 id p2`; like VisitPCtor's Arg case, no
// datatype constructor signature exists in this subset to check the
// operands against, so both sub-patterns are simply elaborated in place
// and the node is given a fresh type.
func (c *Checker) VisitPInfixCtor(n *ast.PInfixCtor) (typesystem.Type, *diagnostics.Diagnostic) {
	if _, d := n.Left.Accept(c); d != nil {
		return nil, d
	}
	if _, d := n.Right.Accept(c); d != nil {
		return nil, d
	}
	t := c.freshVar()
	n.SetType(t)
	return t, nil
}

func (c *Checker) VisitPTuple(n *ast.PTuple) (typesystem.Type, *diagnostics.Diagnostic) {
	elems := make([]typesystem.Type, len(n.Elems))
	for i, p := range n.Elems {
		t, d := p.Accept(c)
		if d != nil {
			return nil, d
		}
		elems[i] = t
	}
	t := typesystem.TupleT{Elems: elems}
	n.SetType(t)
	return t, nil
}

func (c *Checker) VisitPList(n *ast.PList) (typesystem.Type, *diagnostics.Diagnostic) {
	if len(n.Elems) == 0 {
		t := typesystem.ListT{Elem: c.freshVar()}
		n.SetType(t)
		return t, nil
	}
	elemType, d := n.Elems[0].Accept(c)
	if d != nil {
		return nil, d
	}
	for _, p := range n.Elems[1:] {
		t, d := p.Accept(c)
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

func (c *Checker) VisitPAnn(n *ast.PAnn) (typesystem.Type, *diagnostics.Diagnostic) {
	tp, d := n.Pat.Accept(c)
	if d != nil {
		return nil, d
	}
	c.pushMode(modeType)
	tt, d := n.Typ.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}
	if _, d := c.unify(n.Token(), tp, tt); d != nil {
		return nil, d
	}
	result := c.find(tp)
	n.SetType(result)
	return result, nil
}
