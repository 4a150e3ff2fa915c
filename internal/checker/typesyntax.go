package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/typesystem"
)

// VisitTVarSyntax elaborates `'a` in type position. The same name reuses
// the same Var for the remainder of the current item (see Checker.tvars),
// so `'a -> 'a` in one annotation means what it should.
func (c *Checker) VisitTVarSyntax(n *ast.TVarSyntax) (typesystem.Type, *diagnostics.Diagnostic) {
	if v, ok := c.tvars[n.Name]; ok {
		n.SetType(v)
		return v, nil
	}
	v := c.freshVar()
	c.tvars[n.Name] = v
	n.SetType(v)
	return v, nil
}

// VisitTCtor elaborates a (possibly qualified) type constructor name. Only
// the nullary case (a bound type name) and the single-argument `t list`
// case are given real semantics; any other arity is an unsupported
// skeleton per the Non-goals around the module/datatype language.
func (c *Checker) VisitTCtor(n *ast.TCtor) (typesystem.Type, *diagnostics.Diagnostic) {
	name := n.ID.Name()
	switch {
	case len(n.Args) == 0:
		t, ok := c.scope.GetType(name)
		if !ok {
			return nil, diagnostics.UnknownID(n.Token(), name)
		}
		n.SetType(t)
		return t, nil
	case len(n.Args) == 1 && name == "list":
		elem, d := n.Args[0].Accept(c)
		if d != nil {
			return nil, d
		}
		t := typesystem.ListT{Elem: elem}
		n.SetType(t)
		return t, nil
	default:
		return nil, diagnostics.UnknownID(n.Token(), name)
	}
}

func (c *Checker) VisitTFun(n *ast.TFun) (typesystem.Type, *diagnostics.Diagnostic) {
	p, d := n.Param.Accept(c)
	if d != nil {
		return nil, d
	}
	r, d := n.Ret.Accept(c)
	if d != nil {
		return nil, d
	}
	t := typesystem.FunT{Param: p, Ret: r}
	n.SetType(t)
	return t, nil
}

func (c *Checker) VisitTTuple(n *ast.TTuple) (typesystem.Type, *diagnostics.Diagnostic) {
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

func (c *Checker) VisitTRecord(n *ast.TRecord) (typesystem.Type, *diagnostics.Diagnostic) {
	fields := make(map[string]typesystem.Type, len(n.Fields))
	for label, typ := range n.Fields {
		t, d := typ.Accept(c)
		if d != nil {
			return nil, d
		}
		fields[label] = t
	}
	t := typesystem.RecordT{Labels: n.Labels, Fields: fields}
	n.SetType(t)
	return t, nil
}

func (c *Checker) VisitTParen(n *ast.TParen) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := n.Inner.Accept(c)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}
