// Package backend implements C7, the tree-walking execution step that
// receives a type-checked AST once the checker accepts an item (§5 "C7").
// Spec.md stops at "beyond this point execution is out of scope"; this
// package is SPEC_FULL's minimal backend filling that boundary in so the
// REPL can print `Evaluated to V` and `Read function definition:` lines.
// Values mirror the teacher's evaluator.Object: a small tagged interface
// with an Inspect-style renderer, never reflection-based formatting.
package backend

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a Value the same way the teacher's ObjectType tags an Object.
type Kind string

const (
	IntKind     Kind = "INT"
	RealKind    Kind = "REAL"
	CharKind    Kind = "CHAR"
	StringKind  Kind = "STRING"
	BoolKind    Kind = "BOOL"
	UnitKind    Kind = "UNIT"
	TupleKind   Kind = "TUPLE"
	ListKind    Kind = "LIST"
	RecordKind  Kind = "RECORD"
	FuncKind    Kind = "FUNC"
	BuiltinKind Kind = "BUILTIN"
)

// Value is the runtime result of evaluating an Expression.
type Value interface {
	Kind() Kind
	Render() string
}

type IntValue int64

func (IntValue) Kind() Kind        { return IntKind }
func (v IntValue) Render() string  { return strconv.FormatInt(int64(v), 10) }

// RealPrecision is the number of digits printed after the decimal point
// by RealValue.Render. It defaults to 6, matching the original JIT
// backend's libc `%f` default (src/JIT/JIT.cpp); cmd/sml's main assigns
// it from the loaded configuration once at startup, before any item runs.
var RealPrecision = 6

// RealValue prints with RealPrecision digits after the decimal point,
// matching the original JIT backend's `fprintf(stderr, "Evaluated to
// %f\n", FP())` (src/JIT/JIT.cpp) rather than a shortest-round-trip
// format.
type RealValue float64

func (RealValue) Kind() Kind       { return RealKind }
func (v RealValue) Render() string { return fmt.Sprintf("%.*f", RealPrecision, float64(v)) }

type CharValue byte

func (CharValue) Kind() Kind        { return CharKind }
func (v CharValue) Render() string  { return string(rune(v)) }

type StringValue string

func (StringValue) Kind() Kind       { return StringKind }
func (v StringValue) Render() string { return string(v) }

type BoolValue bool

func (BoolValue) Kind() Kind { return BoolKind }
func (v BoolValue) Render() string {
	if v {
		return "true"
	}
	return "false"
}

type UnitValue struct{}

func (UnitValue) Kind() Kind      { return UnitKind }
func (UnitValue) Render() string  { return "()" }

type TupleValue struct{ Elems []Value }

func (TupleValue) Kind() Kind { return TupleKind }
func (v TupleValue) Render() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.Render()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

type ListValue struct{ Elems []Value }

func (ListValue) Kind() Kind { return ListKind }
func (v ListValue) Render() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.Render()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RecordValue preserves declaration order in Labels, matching
// typesystem.RecordT's own ordering discipline.
type RecordValue struct {
	Labels []string
	Fields map[string]Value
}

func (RecordValue) Kind() Kind { return RecordKind }
func (v RecordValue) Render() string {
	parts := make([]string, len(v.Labels))
	for i, l := range v.Labels {
		parts[i] = l + " = " + v.Fields[l].Render()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (*FuncValue) Kind() Kind       { return FuncKind }
func (*FuncValue) Render() string  { return "fn" }

func (*BuiltinValue) Kind() Kind      { return BuiltinKind }
func (b *BuiltinValue) Render() string { return "fn" }
