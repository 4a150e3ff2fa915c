package symbols

import "github.com/sml-lang/sml/internal/typesystem"

// loadBuiltinTypes preloads the six primitive type names (§3 "types:
// name -> Type (built-ins pre-loaded: int, real, string, unit, bool,
// char)").
func (t *Table) loadBuiltinTypes() {
	t.types["int"] = typesystem.IntType
	t.types["real"] = typesystem.RealType
	t.types["char"] = typesystem.CharType
	t.types["string"] = typesystem.StringType
	t.types["bool"] = typesystem.BoolType
	t.types["unit"] = typesystem.UnitType
}

// curried2 builds the curried binary function type `p -> p -> r`.
func curried2(p, r typesystem.Type) typesystem.Type {
	return typesystem.FunT{Param: p, Ret: typesystem.FunT{Param: p, Ret: r}}
}

// loadBuiltinValues preloads the built-in value primitives named in §4.2:
// `+ - *` and unary `~` are overloaded over {int, real}; `^` is fixed at
// string->string->string; `@`, `::`, `=`/`<>`/`>`/`>=`/`<`/`<=`, `o` and
// `before` are polymorphic schemas, each built from its own fresh Vars here
// at load time. Those Vars are templates, not live unification variables:
// internal/checker never unifies against a value pulled straight out of
// this table — it always instantiates a fresh renaming of the Vars first
// (see checker.instantiate), so two unrelated uses of `=` or `::` at
// different types don't spuriously unify with each other through a shared
// Var. This is narrower than let-polymorphism generalization (a
// non-goal): only these fixed built-in schemas get instantiated, never an
// arbitrary user `val` binding's inferred type.
func (t *Table) loadBuiltinValues() {
	arith := typesystem.FunOverloadedT{Alts: []typesystem.Overload{
		{Param: typesystem.IntType, Ret: curried2(typesystem.IntType, typesystem.IntType)},
		{Param: typesystem.RealType, Ret: curried2(typesystem.RealType, typesystem.RealType)},
	}}
	unary := typesystem.FunOverloadedT{Alts: []typesystem.Overload{
		{Param: typesystem.IntType, Ret: typesystem.IntType},
		{Param: typesystem.RealType, Ret: typesystem.RealType},
	}}

	t.values["+"] = arith
	t.values["-"] = arith
	t.values["*"] = arith
	t.values["~"] = unary
	t.values["^"] = curried2(typesystem.StringType, typesystem.StringType)

	a := typesystem.NewVar("'a")
	listA := typesystem.ListT{Elem: a}
	t.values["@"] = curried2(listA, listA)
	t.values["::"] = typesystem.FunT{Param: a, Ret: typesystem.FunT{Param: listA, Ret: listA}}

	cmp := typesystem.NewVar("'b")
	t.values["="] = curried2(cmp, typesystem.BoolType)
	t.values["<>"] = curried2(cmp, typesystem.BoolType)
	t.values[">"] = curried2(cmp, typesystem.BoolType)
	t.values[">="] = curried2(cmp, typesystem.BoolType)
	t.values["<"] = curried2(cmp, typesystem.BoolType)
	t.values["<="] = curried2(cmp, typesystem.BoolType)

	// o : ('b -> 'c) -> ('a -> 'b) -> ('a -> 'c)
	va, vb, vc := typesystem.NewVar("'c"), typesystem.NewVar("'d"), typesystem.NewVar("'e")
	t.values["o"] = typesystem.FunT{
		Param: typesystem.FunT{Param: vb, Ret: vc},
		Ret: typesystem.FunT{
			Param: typesystem.FunT{Param: va, Ret: vb},
			Ret:   typesystem.FunT{Param: va, Ret: vc},
		},
	}

	unit := typesystem.NewVar("'f")
	t.values["before"] = curried2(unit, unit)
}
