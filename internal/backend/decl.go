package backend

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
)

// evalDec executes one declaration against env, binding whatever names it
// introduces. Mirrors the checker's declarations.go pass one-for-one,
// including its Open-Question simplifications: only the head binding of a
// ValBind `and`-chain runs (checker.VisitValDec does the same at the type
// level), every FunBind `and`-sibling is bound as an independent function
// (as checker.checkFunBindChain types each one), and a `local`'s bindings
// are discarded on exit rather than threaded back out
// (checker.VisitLocalDec).
func (w *TreeWalker) evalDec(d ast.Dec, env *Environment) *diagnostics.Diagnostic {
	switch n := d.(type) {
	case *ast.ValDec:
		v, dg := w.evalExp(n.Bind.Exp, env)
		if dg != nil {
			return dg
		}
		if !bindPattern(n.Bind.Pat, v, env) {
			return diagnostics.Arity(n.Token(), "val pattern did not match its initializer")
		}
		return nil

	case *ast.FunDec:
		for fb := n.Bind; fb != nil; fb = fb.And {
			m := fb.Match
			fv := &FuncValue{Clauses: funMatchClauses(m), Env: env}
			env.Set(m.Name.Name(), fv)
		}
		return nil

	case *ast.TypeDec:
		// Type aliases have no runtime representation; the checker alone
		// owns AliasT resolution.
		return nil

	case *ast.SeqDec:
		for _, sub := range n.Decs {
			if dg := w.evalDec(sub, env); dg != nil {
				return dg
			}
		}
		return nil

	case *ast.LocalDec:
		inner := NewEnclosedEnvironment(env)
		if n.Outer != nil {
			if dg := w.evalDec(n.Outer, inner); dg != nil {
				return dg
			}
		}
		if n.Inner != nil {
			if dg := w.evalDec(n.Inner, inner); dg != nil {
				return dg
			}
		}
		return nil

	case *ast.InfixDec, *ast.NonfixDec:
		// Fixity is a parse-time side effect on the symbol table
		// (parser/declarations.go); nothing to do at the value level.
		return nil
	}
	return diagnostics.Arity(d.Token(), "unsupported declaration form at runtime")
}
