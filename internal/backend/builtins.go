package backend

import (
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/token"
)

// BuiltinValue is a curried primitive operator, the runtime counterpart of
// one entry in symbols.loadBuiltinValues. Bound accumulates arguments as
// they arrive one at a time through Apply until Arity is reached, matching
// FuncValue's own curry discipline so builtins and user closures compose
// identically through `o`.
type BuiltinValue struct {
	Name  string
	Arity int
	Fn    func(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic)
	Bound []Value
}

func (b *BuiltinValue) apply(tok token.Token, arg Value) (Value, *diagnostics.Diagnostic) {
	bound := append(append([]Value{}, b.Bound...), arg)
	if len(bound) < b.Arity {
		return &BuiltinValue{Name: b.Name, Arity: b.Arity, Fn: b.Fn, Bound: bound}, nil
	}
	return b.Fn(tok, bound)
}

// builtins holds the runtime implementation of every value name preloaded
// by symbols.loadBuiltinValues (§4.2); the checker already resolved which
// overload applies, so evaluation only needs a Go type switch on the
// already-well-typed operand Values, never re-running overload search.
var builtins map[string]*BuiltinValue

func init() {
	builtins = map[string]*BuiltinValue{
		"+":      {Name: "+", Arity: 2, Fn: arith2(func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })},
		"-":      {Name: "-", Arity: 2, Fn: arith2(func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })},
		"*":      {Name: "*", Arity: 2, Fn: arith2(func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })},
		"~":      {Name: "~", Arity: 1, Fn: negate},
		"^":      {Name: "^", Arity: 2, Fn: concatStrings},
		"@":      {Name: "@", Arity: 2, Fn: appendLists},
		"::":     {Name: "::", Arity: 2, Fn: cons},
		"=":      {Name: "=", Arity: 2, Fn: cmp(func(c int) bool { return c == 0 })},
		"<>":     {Name: "<>", Arity: 2, Fn: cmp(func(c int) bool { return c != 0 })},
		">":      {Name: ">", Arity: 2, Fn: cmp(func(c int) bool { return c > 0 })},
		">=":     {Name: ">=", Arity: 2, Fn: cmp(func(c int) bool { return c >= 0 })},
		"<":      {Name: "<", Arity: 2, Fn: cmp(func(c int) bool { return c < 0 })},
		"<=":     {Name: "<=", Arity: 2, Fn: cmp(func(c int) bool { return c <= 0 })},
		"o":      {Name: "o", Arity: 2, Fn: compose},
		"before": {Name: "before", Arity: 2, Fn: before},
	}
}

func arith2(ints func(a, b int64) int64, reals func(a, b float64) float64) func(token.Token, []Value) (Value, *diagnostics.Diagnostic) {
	return func(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
		switch a := args[0].(type) {
		case IntValue:
			b, ok := args[1].(IntValue)
			if !ok {
				return nil, diagnostics.Arity(tok, "arithmetic operand kind mismatch")
			}
			return IntValue(ints(int64(a), int64(b))), nil
		case RealValue:
			b, ok := args[1].(RealValue)
			if !ok {
				return nil, diagnostics.Arity(tok, "arithmetic operand kind mismatch")
			}
			return RealValue(reals(float64(a), float64(b))), nil
		default:
			return nil, diagnostics.Arity(tok, "arithmetic on a non-numeric value")
		}
	}
}

func negate(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
	switch a := args[0].(type) {
	case IntValue:
		return -a, nil
	case RealValue:
		return -a, nil
	default:
		return nil, diagnostics.Arity(tok, "~ on a non-numeric value")
	}
}

func concatStrings(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
	a, ok1 := args[0].(StringValue)
	b, ok2 := args[1].(StringValue)
	if !ok1 || !ok2 {
		return nil, diagnostics.Arity(tok, "^ on a non-string value")
	}
	return a + b, nil
}

func appendLists(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
	a, ok1 := args[0].(ListValue)
	b, ok2 := args[1].(ListValue)
	if !ok1 || !ok2 {
		return nil, diagnostics.Arity(tok, "@ on a non-list value")
	}
	out := make([]Value, 0, len(a.Elems)+len(b.Elems))
	out = append(out, a.Elems...)
	out = append(out, b.Elems...)
	return ListValue{Elems: out}, nil
}

func cons(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
	tail, ok := args[1].(ListValue)
	if !ok {
		return nil, diagnostics.Arity(tok, ":: on a non-list tail")
	}
	out := make([]Value, 0, len(tail.Elems)+1)
	out = append(out, args[0])
	out = append(out, tail.Elems...)
	return ListValue{Elems: out}, nil
}

func before(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
	return args[0], nil
}

// compose builds a new one-argument BuiltinValue implementing `f o g`
// as `fn x => f (g x)`, so the result composes with further `o`/App uses
// exactly like any user closure.
func compose(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
	f, g := args[0], args[1]
	return &BuiltinValue{
		Name:  "o(...)",
		Arity: 1,
		Fn: func(tok token.Token, inner []Value) (Value, *diagnostics.Diagnostic) {
			gx, d := Apply(tok, g, inner[0])
			if d != nil {
				return nil, d
			}
			return Apply(tok, f, gx)
		},
	}, nil
}

func cmp(accept func(int) bool) func(token.Token, []Value) (Value, *diagnostics.Diagnostic) {
	return func(tok token.Token, args []Value) (Value, *diagnostics.Diagnostic) {
		c, d := compareValues(tok, args[0], args[1])
		if d != nil {
			return nil, d
		}
		return BoolValue(accept(c)), nil
	}
}

// compareValues returns -1/0/1 for ordered kinds and 0/1 (equal/not) encoded
// as 0 vs nonzero for the rest, sufficient for `=`/`<>` on every Value kind
// the backend produces and for `< <= > >=` on the ordered primitive kinds
// named in §4.2 ("comparable schemas").
func compareValues(tok token.Token, a, b Value) (int, *diagnostics.Diagnostic) {
	switch av := a.(type) {
	case IntValue:
		bv := b.(IntValue)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case RealValue:
		bv := b.(RealValue)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case StringValue:
		bv := b.(StringValue)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case CharValue:
		bv := b.(CharValue)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case BoolValue:
		bv := b.(BoolValue)
		if av == bv {
			return 0, nil
		}
		return 1, nil
	default:
		if structurallyEqual(a, b) {
			return 0, nil
		}
		return 1, nil
	}
}

// structurallyEqual backs `=`/`<>` on compound Values (tuples, lists,
// records, unit) that compareValues' ordered cases don't cover.
func structurallyEqual(a, b Value) bool {
	switch av := a.(type) {
	case UnitValue:
		_, ok := b.(UnitValue)
		return ok
	case TupleValue:
		bv, ok := b.(TupleValue)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !structurallyEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case ListValue:
		bv, ok := b.(ListValue)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !structurallyEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case RecordValue:
		bv, ok := b.(RecordValue)
		if !ok || len(av.Labels) != len(bv.Labels) {
			return false
		}
		for _, l := range av.Labels {
			if !structurallyEqual(av.Fields[l], bv.Fields[l]) {
				return false
			}
		}
		return true
	default:
		// Function values (closures/builtins) have no equality in this
		// subset, matching ordinary SML's refusal to admit `=` at a
		// function type.
		return false
	}
}
