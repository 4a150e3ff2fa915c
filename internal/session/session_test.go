package session

import (
	"testing"

	"github.com/sml-lang/sml/internal/backend"
	"github.com/sml-lang/sml/internal/config"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/lexer"
	"github.com/sml-lang/sml/internal/parser"
)

// accept parses and runs one `;`-terminated item against sess.
func accept(t *testing.T, sess *Session, src string) (*Result, *diagnostics.Diagnostic) {
	t.Helper()
	lex := lexer.New(src)
	p := parser.New(lex, sess.Scope())
	prog, d := p.ParseProg()
	if d != nil {
		return nil, d
	}
	return sess.Accept(prog)
}

// These mirror the ten end-to-end scenarios named in the specification's
// testable-properties section.

func TestAccept_ValAnnotationMatches(t *testing.T) {
	sess := New(nil)
	if _, d := accept(t, sess, "val i : int = 42;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if typ, ok := sess.Scope().GetPatternType("i"); !ok || typ.String() != "int" {
		t.Errorf("i: got %v, %v", typ, ok)
	}
	if typ, ok := sess.Scope().GetPatternType("it"); !ok || typ.String() != "int" {
		t.Errorf("it: got %v, %v", typ, ok)
	}
}

func TestAccept_ValAnnotationMismatch(t *testing.T) {
	sess := New(nil)
	_, d := accept(t, sess, "val i : int = 2.0;")
	if d == nil {
		t.Fatal("expected a TypeError diagnostic")
	}
	if d.Code != diagnostics.ErrA003 {
		t.Errorf("got code %v, want ErrA003", d.Code)
	}
}

func TestAccept_IfBranchesAgree(t *testing.T) {
	sess := New(nil)
	res, d := accept(t, sess, "if true then 42 else 0;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if res.Kind != KindExpr || res.Value.Render() != "42" {
		t.Errorf("got kind %v value %v", res.Kind, res.Value)
	}
	if res.Type.String() != "int" {
		t.Errorf("got type %v", res.Type)
	}
}

func TestAccept_IfBranchesDisagree(t *testing.T) {
	sess := New(nil)
	if _, d := accept(t, sess, "if true then 42 else 0.0;"); d == nil {
		t.Fatal("expected a TypeError diagnostic")
	}
}

func TestAccept_FnDefaultsToInt(t *testing.T) {
	sess := New(nil)
	res, d := accept(t, sess, "fn x => x + x;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if res.Type.String() != "int -> int" {
		t.Errorf("got %v", res.Type)
	}
}

func TestAccept_FnRealAnnotationPropagates(t *testing.T) {
	sess := New(nil)
	res, d := accept(t, sess, "fn x : real => x + x;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if res.Type.String() != "real -> real" {
		t.Errorf("got %v", res.Type)
	}
}

func TestAccept_TuplePatternMixedTypes(t *testing.T) {
	sess := New(nil)
	res, d := accept(t, sess, "fn (x, y) => x + 1.0;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if got := res.Type.String(); got != "real * 'a -> real" {
		t.Errorf("got %v", got)
	}
}

func TestAccept_ListAppendElemMismatch(t *testing.T) {
	sess := New(nil)
	if _, d := accept(t, sess, "[1] @ [3.14];"); d == nil {
		t.Fatal("expected a TypeError diagnostic")
	}
}

func TestAccept_CustomInfixOperator(t *testing.T) {
	sess := New(nil)
	if _, d := accept(t, sess, "infix 6 ++;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if _, d := accept(t, sess, "fun x ++ y = x + y;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	res, d := accept(t, sess, "1 ++ 2;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if res.Value.Render() != "3" {
		t.Errorf("got %v", res.Value.Render())
	}
}

func TestAccept_LetDoesNotLeakBindings(t *testing.T) {
	sess := New(nil)
	res, d := accept(t, sess, "let val a = 1 in a + a end;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if res.Value.Render() != "2" {
		t.Errorf("got %v", res.Value.Render())
	}
	if _, ok := sess.Scope().GetPatternType("a"); ok {
		t.Error("a leaked out of the let body")
	}
	if _, ok := sess.env.Get("a"); ok {
		t.Error("a leaked out of the let body's value environment")
	}
}

func TestAccept_FunDeclarationPrintsReadFunctionDefinition(t *testing.T) {
	sess := New(nil)
	res, d := accept(t, sess, "fun double x = x + x;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if res.Kind != KindFunDecl {
		t.Errorf("got kind %v, want KindFunDecl", res.Kind)
	}
	app, d := accept(t, sess, "double 21;")
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if app.Value.Render() != "42" {
		t.Errorf("got %v", app.Value.Render())
	}
}

func TestAccept_FailedItemLeavesEnvironmentUntouched(t *testing.T) {
	sess := New(nil)
	if _, d := accept(t, sess, "val n : int = 1;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if _, d := accept(t, sess, "val n : int = true;"); d == nil {
		t.Fatal("expected a TypeError diagnostic")
	}
	typ, ok := sess.Scope().GetPatternType("n")
	if !ok || typ.String() != "int" {
		t.Errorf("n's binding should be unchanged after the failed item, got %v %v", typ, ok)
	}
	if v, ok := sess.env.Get("n"); !ok || v.(backend.IntValue) != 1 {
		t.Errorf("n's value should be unchanged after the failed item, got %v %v", v, ok)
	}
}

// TestNew_AllowFixityOverrideFalseDeniesBuiltinRebind verifies that the
// Session wires config.AllowFixityOverride into its symbol table, per
// SPEC_FULL §1.3.
func TestNew_AllowFixityOverrideFalseDeniesBuiltinRebind(t *testing.T) {
	cfg := config.Default()
	cfg.AllowFixityOverride = false
	sess := New(cfg)
	if _, d := accept(t, sess, "infix 9 +;"); d == nil {
		t.Fatal("expected a diagnostic rejecting the built-in operator override")
	}
}
