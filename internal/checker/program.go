package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/symbols"
)

// CheckProgram type-checks one top-level item, per §4.4/§6. itemID
// correlates the pending diagnostic (if any) with the originating item for
// the session/REPL. On success, a successfully-checked top-level
// expression's result type is bound to the reserved name `it`; for a `val`
// declaration, `it` is bound to the type of the head binding's
// initializer expression.
func (c *Checker) CheckProgram(p *ast.Program, itemID string) *diagnostics.Diagnostic {
	c.reset(itemID)

	if p.Dec != nil {
		if _, d := p.Dec.Accept(c); d != nil {
			d.ItemID = c.itemID
			return d
		}
		c.fillTypes()
		if vd, ok := p.Dec.(*ast.ValDec); ok && vd.Bind.Exp.Type() != nil {
			c.scope.InsertPatternType("it", c.verify(vd.Bind.Exp.Type()))
		}
		return nil
	}

	if p.Expr != nil {
		c.pushMode(modeValue)
		t, d := p.Expr.Accept(c)
		c.popMode()
		if d != nil {
			d.ItemID = c.itemID
			return d
		}
		c.fillTypes()
		c.scope.InsertPatternType("it", c.verify(t))
		return nil
	}

	return nil
}

// Scope exposes the checker's current symbol-table overlay, used by the
// session/REPL to read back `it` and other pattern types after an item.
func (c *Checker) Scope() *symbols.Table { return c.scope }
