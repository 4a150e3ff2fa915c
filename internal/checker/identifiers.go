package checker

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// builtinOperators names the value bindings in symbols.loadBuiltinValues
// that are polymorphic schemas rather than plain monomorphic bindings;
// every occurrence of one of these names under Value mode is instantiated
// fresh (see Checker.instantiate) instead of being reused verbatim.
var builtinOperators = map[string]bool{
	"+": true, "-": true, "*": true, "~": true, "^": true,
	"@": true, "::": true,
	"=": true, "<>": true, ">": true, ">=": true, "<": true, "<=": true,
	"o": true, "before": true,
}

// resolveIdent implements §4.4's three lookup modes for a bare identifier
// name occurring at tok.
func (c *Checker) resolveIdent(tok token.Token, name string) (typesystem.Type, *diagnostics.Diagnostic) {
	switch c.mode() {
	case modeType:
		if typ, ok := c.scope.GetType(name); ok {
			return typ, nil
		}
		return nil, diagnostics.UnknownID(tok, name)

	case modePattern:
		v := c.freshVar()
		c.scope.InsertPatternType(name, v)
		c.addPendingFill(name, v)
		return v, nil

	default: // modeValue
		if typ, ok := c.scope.GetPatternType(name); ok {
			return typ, nil
		}
		if typ, ok := c.scope.GetValue(name); ok {
			if builtinOperators[name] {
				typ = c.instantiate(typ)
			}
			return typ, nil
		}
		return nil, diagnostics.UnknownVariable(tok, name)
	}
}

func (c *Checker) VisitAlphaID(n *ast.AlphaID) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := c.resolveIdent(n.Token(), n.Value)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}

func (c *Checker) VisitSymID(n *ast.SymID) (typesystem.Type, *diagnostics.Diagnostic) {
	t, d := c.resolveIdent(n.Token(), n.Value)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}

// VisitLongID resolves the qualified name via its last path element; the
// module language (and therefore any real path beyond one element) is a
// non-goal, so Path is expected to hold exactly one Id in this subset.
func (c *Checker) VisitLongID(n *ast.LongID) (typesystem.Type, *diagnostics.Diagnostic) {
	if len(n.Path) == 0 {
		return nil, diagnostics.UnknownID(n.Token(), "")
	}
	t, d := n.Path[0].Accept(c)
	if d != nil {
		return nil, d
	}
	n.SetType(t)
	return t, nil
}
