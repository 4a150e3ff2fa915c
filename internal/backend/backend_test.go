package backend

import (
	"testing"

	"github.com/sml-lang/sml/internal/token"
)

func TestValueRender(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{IntValue(42), "42"},
		{IntValue(-3), "-3"},
		{RealValue(3.5), "3.500000"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{StringValue("hi"), "hi"},
		{UnitValue{}, "()"},
		{TupleValue{Elems: []Value{IntValue(1), IntValue(2)}}, "(1, 2)"},
		{ListValue{Elems: []Value{IntValue(1), IntValue(2), IntValue(3)}}, "[1, 2, 3]"},
	}
	for _, c := range cases {
		if got := c.v.Render(); got != c.want {
			t.Errorf("%#v.Render() = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestRealValueRenderHonorsConfiguredPrecision(t *testing.T) {
	orig := RealPrecision
	defer func() { RealPrecision = orig }()

	RealPrecision = 2
	if got := RealValue(3.14159).Render(); got != "3.14" {
		t.Errorf("got %q, want %q", got, "3.14")
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	root := NewEnvironment()
	root.Set("x", IntValue(1))

	inner := NewEnclosedEnvironment(root)
	inner.Set("x", IntValue(2))

	if v, _ := inner.Get("x"); v.(IntValue) != 2 {
		t.Errorf("inner x = %v, want 2", v)
	}
	if v, _ := root.Get("x"); v.(IntValue) != 1 {
		t.Errorf("root x = %v, want 1 (shadowing must not mutate the outer overlay)", v)
	}
}

func TestEnvironmentWalksOuterChain(t *testing.T) {
	root := NewEnvironment()
	root.Set("y", IntValue(7))
	inner := NewEnclosedEnvironment(root)

	if v, ok := inner.Get("y"); !ok || v.(IntValue) != 7 {
		t.Errorf("inner should see root's y, got %v %v", v, ok)
	}
	if _, ok := root.Get("z"); ok {
		t.Error("root should not see an unset name")
	}
}

func TestBuiltinArithmeticInt(t *testing.T) {
	plus := builtins["+"]
	v, d := Apply(token.Token{}, plus, IntValue(1))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	v, d = Apply(token.Token{}, v, IntValue(2))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if v.(IntValue) != 3 {
		t.Errorf("1 + 2 = %v, want 3", v)
	}
}

func TestBuiltinCompose(t *testing.T) {
	// (~ o ~) 5 == ~(~5) == 5, composing two builtins through `o` — a
	// user closure composes identically since FuncValue.apply shares the
	// same curried Apply path.
	negate := builtins["~"]
	o := builtins["o"]
	composed, d := Apply(token.Token{}, o, negate)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	composed, d = Apply(token.Token{}, composed, negate)
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	result, d := Apply(token.Token{}, composed, IntValue(5))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if result.(IntValue) != 5 {
		t.Errorf("(~ o ~) 5 = %v, want 5", result)
	}
}

func TestBuiltinConsAndAppend(t *testing.T) {
	cons := builtins["::"]
	v, d := Apply(token.Token{}, cons, IntValue(1))
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	v, d = Apply(token.Token{}, v, ListValue{Elems: []Value{IntValue(2), IntValue(3)}})
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if got := v.(ListValue).Render(); got != "[1, 2, 3]" {
		t.Errorf("1 :: [2, 3] = %v, want [1, 2, 3]", got)
	}
}

func TestStructurallyEqualRejectsFunctions(t *testing.T) {
	if structurallyEqual(&BuiltinValue{}, &BuiltinValue{}) {
		t.Error("function values must never compare equal in this subset")
	}
}
