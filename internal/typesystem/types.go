// Package typesystem defines the Type sum (§3 of the specification) shared
// by the parser, the type checker and the backend. Types are plain value
// or pointer types; the type checker (internal/checker) is solely
// responsible for unification and owns the union-find discipline that
// makes two Var types "the same" — this package only describes shapes.
package typesystem

import (
	"sort"
	"strings"
)

// Type is the interface implemented by every member of the type sum.
// Equality between two Types (other than Var, which is only ever equal via
// the checker's union-find) is structural; the checker's unify decides it.
type Type interface {
	String() string
	isType()
}

// --- primitives -------------------------------------------------------

type primitive string

const (
	Int    primitive = "int"
	Real   primitive = "real"
	Char   primitive = "char"
	String primitive = "string"
	Bool   primitive = "bool"
	Unit   primitive = "unit"
)

func (p primitive) String() string { return string(p) }
func (primitive) isType()          {}

// IntType, RealType, ... are the process-lifetime singleton primitive
// types (§3 "Lifecycles").
var (
	IntType    Type = Int
	RealType   Type = Real
	CharType   Type = Char
	StringType Type = String
	BoolType   Type = Bool
	UnitType   Type = Unit
)

// --- compound types -----------------------------------------------------

// ListT is a homogeneous list type `T list`.
type ListT struct{ Elem Type }

func (l ListT) String() string { return wrapIfFun(l.Elem) + " list" }
func (ListT) isType()          {}

// TupleT is an n-ary product type, n >= 2.
type TupleT struct{ Elems []Type }

func (t TupleT) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = wrapIfFun(e)
	}
	return strings.Join(parts, " * ")
}
func (TupleT) isType() {}

// RecordT is a record type; Labels preserves declaration order so printing
// is deterministic, matching the original's ordered map.
type RecordT struct {
	Labels []string
	Fields map[string]Type
}

func (r RecordT) String() string {
	parts := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		parts[i] = l + " : " + r.Fields[l].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (RecordT) isType() {}

// FunT is a function type `param -> ret`.
type FunT struct {
	Param Type
	Ret   Type
}

func (f FunT) String() string { return wrapIfFun(f.Param) + " -> " + f.Ret.String() }
func (FunT) isType()          {}

// Overload is one alternative of an overloaded primitive (§3 FunOverloaded).
type Overload struct {
	Param Type
	Ret   Type
}

// FunOverloadedT models the built-in arithmetic primitives, which carry
// several (param, ret) alternatives instead of one. It never appears as the
// type of user code — only as the type momentarily unified against during
// InfixApp/App resolution of `+ - * ~`.
type FunOverloadedT struct{ Alts []Overload }

func (f FunOverloadedT) String() string {
	parts := make([]string, len(f.Alts))
	for i, a := range f.Alts {
		parts[i] = a.Param.String() + " -> " + a.Ret.String()
	}
	return "overloaded{" + strings.Join(parts, ", ") + "}"
}
func (FunOverloadedT) isType() {}

// AliasT names a user `type` binding. Bound is the immediately-aliased
// type (not transitively resolved) so that `type b = a` prints as `b` while
// still dereferencing to `a` then to int, one hop at a time — mirroring
// TypeNameType::getBoundType in the original.
type AliasT struct {
	Name  string
	Bound Type
}

func (a AliasT) String() string { return a.Name }
func (AliasT) isType()          {}

// Var is a unification variable. Two Vars are the "same" type only via the
// checker's disjoint-set map; Var values are compared by pointer identity
// (*Var), never by Name, which is why every fresh variable is heap
// allocated through NewVar instead of being a bare struct literal.
type Var struct {
	Name string
}

func (v *Var) String() string { return v.Name }
func (*Var) isType()          {}

// NewVar allocates a fresh type variable carrying the given display name.
// The checker is responsible for generating unique, human-readable names
// ('a, 'b, ..., 'z, 'aa, ...).
func NewVar(name string) *Var { return &Var{Name: name} }

// wrapIfFun parenthesizes function and overloaded-function types when they
// appear as a component of a tuple or as the parameter of another function,
// matching the usual SML precedence for `->`.
func wrapIfFun(t Type) string {
	switch t.(type) {
	case FunT, FunOverloadedT:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

// NewRecord builds a RecordT with deterministically sorted labels, used
// when a record literal's field order does not matter (e.g. built from a
// map in tests); the parser itself preserves declaration order directly.
func NewRecord(fields map[string]Type) RecordT {
	labels := make([]string, 0, len(fields))
	for l := range fields {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return RecordT{Labels: labels, Fields: fields}
}

// Pretty renders t using the original's notation, unwrapping Var through
// fmt.Stringer so callers never need a type switch just to print.
func Pretty(t Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}
