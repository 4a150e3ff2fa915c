package backend

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
)

// Backend is C7's interface: "receives a type-checked AST and opaque
// symbol-table state; beyond this point execution is out of scope" (§5).
// internal/session owns the checker-side symbol table; this interface only
// needs the value-level Environment, so the two states stay independent
// the way the specification's boundary implies.
type Backend interface {
	// Run executes one accepted top-level item against env, mutating env
	// for any declaration that binds a name. The returned Value is nil for
	// declarations that produce no result (everything but a bare
	// expression item).
	Run(p *ast.Program, env *Environment) (Value, *diagnostics.Diagnostic)
}

// TreeWalker is the minimal tree-walking backend named in SPEC_FULL's
// module layout, grounded on the teacher's evaluator.Evaluator/Eval
// dispatch but trimmed to this subset's expression and declaration forms;
// datatypes and exceptions are Non-goals (§9). A FuncValue's closure is
// the environment its `fun` was declared in, which evalDec then extends
// with the function's own name.
type TreeWalker struct{}

func New() *TreeWalker { return &TreeWalker{} }

func (w *TreeWalker) Run(p *ast.Program, env *Environment) (Value, *diagnostics.Diagnostic) {
	if p.Dec != nil {
		return nil, w.evalDec(p.Dec, env)
	}
	if p.Expr != nil {
		return w.evalExp(p.Expr, env)
	}
	return nil, nil
}

// Apply performs one curried application step against any callable Value,
// exported so builtins.go's `o` can apply both user closures and further
// builtins without importing a separate indirection layer.
func Apply(tok token.Token, fn Value, arg Value) (Value, *diagnostics.Diagnostic) {
	switch f := fn.(type) {
	case *FuncValue:
		return f.apply(tok, arg)
	case *BuiltinValue:
		return f.apply(tok, arg)
	default:
		return nil, diagnostics.Arity(tok, "application of a non-function value")
	}
}

func (w *TreeWalker) evalExp(e ast.Expression, env *Environment) (Value, *diagnostics.Diagnostic) {
	switch n := e.(type) {
	case *ast.ConstExp:
		return evalCon(n.Con), nil

	case *ast.VarRef:
		name := n.ID.Name()
		if v, ok := env.Get(name); ok {
			return v, nil
		}
		if b, ok := builtins[name]; ok {
			return b, nil
		}
		return nil, diagnostics.UnknownVariable(n.Token(), name)

	case *ast.App:
		fn, d := w.evalExp(n.Fun, env)
		if d != nil {
			return nil, d
		}
		arg, d := w.evalExp(n.Arg, env)
		if d != nil {
			return nil, d
		}
		return Apply(n.Token(), fn, arg)

	case *ast.InfixApp:
		l, d := w.evalExp(n.Left, env)
		if d != nil {
			return nil, d
		}
		r, d := w.evalExp(n.Right, env)
		if d != nil {
			return nil, d
		}
		op, d := w.resolveOperator(n.Op, env)
		if d != nil {
			return nil, d
		}
		mid, d := Apply(n.Token(), op, l)
		if d != nil {
			return nil, d
		}
		return Apply(n.Token(), mid, r)

	case *ast.TupleExp:
		if len(n.Elems) == 0 {
			return UnitValue{}, nil
		}
		elems := make([]Value, len(n.Elems))
		for i, sub := range n.Elems {
			v, d := w.evalExp(sub, env)
			if d != nil {
				return nil, d
			}
			elems[i] = v
		}
		return TupleValue{Elems: elems}, nil

	case *ast.ListExp:
		elems := make([]Value, len(n.Elems))
		for i, sub := range n.Elems {
			v, d := w.evalExp(sub, env)
			if d != nil {
				return nil, d
			}
			elems[i] = v
		}
		return ListValue{Elems: elems}, nil

	case *ast.If:
		c, d := w.evalExp(n.Cond, env)
		if d != nil {
			return nil, d
		}
		cond, ok := c.(BoolValue)
		if !ok {
			return nil, diagnostics.Arity(n.Token(), "if condition did not evaluate to a bool")
		}
		if bool(cond) {
			return w.evalExp(n.Then, env)
		}
		return w.evalExp(n.Else, env)

	case *ast.While:
		for {
			c, d := w.evalExp(n.Cond, env)
			if d != nil {
				return nil, d
			}
			cond, ok := c.(BoolValue)
			if !ok {
				return nil, diagnostics.Arity(n.Token(), "while condition did not evaluate to a bool")
			}
			if !bool(cond) {
				break
			}
			if _, d := w.evalExp(n.Body, env); d != nil {
				return nil, d
			}
		}
		return UnitValue{}, nil

	case *ast.Conj:
		l, d := w.evalExp(n.Left, env)
		if d != nil {
			return nil, d
		}
		lb, ok := l.(BoolValue)
		if !ok {
			return nil, diagnostics.Arity(n.Token(), "andalso operand did not evaluate to a bool")
		}
		if !bool(lb) {
			return BoolValue(false), nil
		}
		return w.evalExp(n.Right, env)

	case *ast.Disj:
		l, d := w.evalExp(n.Left, env)
		if d != nil {
			return nil, d
		}
		lb, ok := l.(BoolValue)
		if !ok {
			return nil, diagnostics.Arity(n.Token(), "orelse operand did not evaluate to a bool")
		}
		if bool(lb) {
			return BoolValue(true), nil
		}
		return w.evalExp(n.Right, env)

	case *ast.AnnExp:
		return w.evalExp(n.Exp, env)

	case *ast.Fn:
		return &FuncValue{Clauses: matchChainClauses(n.Match), Env: env}, nil

	case *ast.Let:
		inner := NewEnclosedEnvironment(env)
		if n.Dec != nil {
			if d := w.evalDec(n.Dec, inner); d != nil {
				return nil, d
			}
		}
		var result Value = UnitValue{}
		for _, sub := range n.Exprs {
			v, d := w.evalExp(sub, inner)
			if d != nil {
				return nil, d
			}
			result = v
		}
		return result, nil

	case *ast.Sel:
		label := n.Label
		return &BuiltinValue{Name: "#" + label, Arity: 1, Fn: func(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
			rec, ok := args[0].(RecordValue)
			if !ok {
				return nil, diagnostics.Arity(tok, "#"+label+" on a non-record value")
			}
			v, ok := rec.Fields[label]
			if !ok {
				return nil, diagnostics.Arity(tok, "record has no field "+label)
			}
			return v, nil
		}}, nil

	case *ast.RecordExp:
		fields := make(map[string]Value, len(n.Fields))
		for _, label := range n.Labels {
			v, d := w.evalExp(n.Fields[label], env)
			if d != nil {
				return nil, d
			}
			fields[label] = v
		}
		return RecordValue{Labels: n.Labels, Fields: fields}, nil
	}
	return nil, diagnostics.Arity(e.Token(), "unsupported expression form at runtime")
}

// resolveOperator looks an InfixApp's operator name up as an ordinary
// VarRef would: a user-bound closure shadowing a builtin name wins, else
// the builtin table, mirroring resolveIdent's Value-mode lookup order.
func (w *TreeWalker) resolveOperator(id ast.Id, env *Environment) (Value, *diagnostics.Diagnostic) {
	name := id.Name()
	if v, ok := env.Get(name); ok {
		return v, nil
	}
	if b, ok := builtins[name]; ok {
		return b, nil
	}
	return nil, diagnostics.UnknownVariable(id.Token(), name)
}

func evalCon(c ast.Con) Value {
	switch n := c.(type) {
	case *ast.IntCon:
		return IntValue(n.Value)
	case *ast.RealCon:
		return RealValue(n.Value)
	case *ast.CharCon:
		return CharValue(n.Value)
	case *ast.StringCon:
		return StringValue(n.Value)
	case *ast.BoolCon:
		return BoolValue(n.Value)
	}
	return UnitValue{}
}
