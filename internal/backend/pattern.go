package backend

import "github.com/sml-lang/sml/internal/ast"

// bindPattern matches v against pat, binding any pattern variables into
// env, and reports whether the match succeeded. The checker has already
// confirmed pat and v share a type, so the only way bindPattern can fail
// is a literal-constant or arity mismatch between sibling `|`-clauses
// (e.g. `fun f 0 = ... | f n = ...`); it never reports a type error.
func bindPattern(pat ast.Pat, v Value, env *Environment) bool {
	switch p := pat.(type) {
	case *ast.PWild:
		return true

	case *ast.PVar:
		env.Set(p.Name, v)
		return true

	case *ast.PCtor:
		// No real datatype constructors exist in this subset (§9 Non-goal):
		// a PCtor with no Arg is an ordinary variable binding; one with an
		// Arg is the typed-skeleton constructor-application pattern, whose
		// argument sub-pattern is matched against the same value since
		// there is no constructor payload to project out of v.
		name := p.ID.Name()
		if p.Arg == nil {
			env.Set(name, v)
			return true
		}
		return bindPattern(p.Arg, v, env)

	case *ast.PInfixCtor:
		if !bindPattern(p.Left, v, env) {
			return false
		}
		return bindPattern(p.Right, v, env)

	case *ast.PConst:
		return constEqual(p.Con, v)

	case *ast.PTuple:
		if len(p.Elems) == 0 {
			_, ok := v.(UnitValue)
			return ok
		}
		tv, ok := v.(TupleValue)
		if !ok || len(tv.Elems) != len(p.Elems) {
			return false
		}
		for i, sub := range p.Elems {
			if !bindPattern(sub, tv.Elems[i], env) {
				return false
			}
		}
		return true

	case *ast.PList:
		lv, ok := v.(ListValue)
		if !ok || len(lv.Elems) != len(p.Elems) {
			return false
		}
		for i, sub := range p.Elems {
			if !bindPattern(sub, lv.Elems[i], env) {
				return false
			}
		}
		return true

	case *ast.PAnn:
		return bindPattern(p.Pat, v, env)
	}
	return false
}

func constEqual(c ast.Con, v Value) bool {
	switch n := c.(type) {
	case *ast.IntCon:
		iv, ok := v.(IntValue)
		return ok && int64(iv) == n.Value
	case *ast.RealCon:
		rv, ok := v.(RealValue)
		return ok && float64(rv) == n.Value
	case *ast.CharCon:
		cv, ok := v.(CharValue)
		return ok && byte(cv) == n.Value
	case *ast.StringCon:
		sv, ok := v.(StringValue)
		return ok && string(sv) == n.Value
	case *ast.BoolCon:
		bv, ok := v.(BoolValue)
		return ok && bool(bv) == n.Value
	}
	return false
}
