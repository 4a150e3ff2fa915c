package backend

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
)

// funClause is one curried clause of a `fn`/`fun` value: a list of
// parameter patterns tried together against the fully-supplied argument
// list, and the body evaluated in the scope they bind.
type funClause struct {
	Params []ast.Pat
	Body   ast.Expression
}

// FuncValue is a closure over one or more funClauses, all of the same
// arity (the grammar guarantees this: every `|`-alternative of a `fn` or
// `fun` match supplies the same parameter count). Bound accumulates
// arguments one at a time through Apply, exactly like BuiltinValue, so a
// partially-applied user function and a partially-applied builtin compose
// identically under `o`.
type FuncValue struct {
	Clauses []funClause
	Env     *Environment
	Bound   []Value
}

func (f *FuncValue) apply(tok token.Token, arg Value) (Value, *diagnostics.Diagnostic) {
	bound := append(append([]Value{}, f.Bound...), arg)
	arity := len(f.Clauses[0].Params)
	if len(bound) < arity {
		return &FuncValue{Clauses: f.Clauses, Env: f.Env, Bound: bound}, nil
	}
	for _, clause := range f.Clauses {
		clauseEnv := NewEnclosedEnvironment(f.Env)
		matched := true
		for i, pat := range clause.Params {
			if !bindPattern(pat, bound[i], clauseEnv) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		w := New()
		return w.evalExp(clause.Body, clauseEnv)
	}
	return nil, diagnostics.Arity(tok, "no function clause matches the supplied arguments")
}

// matchChainClauses flattens a `fn`'s `|`-chained Match into funClauses,
// one parameter per arm (a `fn` always has exactly one pattern per arm;
// `fun`'s possibly-multiple curried parameters use funMatchClauses
// instead).
func matchChainClauses(m *ast.Match) []funClause {
	var clauses []funClause
	for m != nil {
		clauses = append(clauses, funClause{Params: []ast.Pat{m.Pat}, Body: m.Body})
		m = m.Or
	}
	return clauses
}

// funMatchClauses flattens a `fun` binding's `|`-chained FunMatch into
// funClauses. Infix clauses (`pat id pat`) were already normalized to a
// two-element Params slice by the parser (declarations.go's
// parseFunMatch), so this is identical for both forms.
func funMatchClauses(m *ast.FunMatch) []funClause {
	var clauses []funClause
	for m != nil {
		clauses = append(clauses, funClause{Params: m.Params, Body: m.Body})
		m = m.Or
	}
	return clauses
}
