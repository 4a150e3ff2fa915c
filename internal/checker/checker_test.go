package checker

import (
	"testing"

	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/lexer"
	"github.com/sml-lang/sml/internal/parser"
	"github.com/sml-lang/sml/internal/symbols"
)

// check parses one item against scope and type-checks it with c,
// returning the checker's diagnostic (nil when the item was accepted).
func check(t *testing.T, scope *symbols.Table, c *Checker, src string) *diagnostics.Diagnostic {
	t.Helper()
	lex := lexer.New(src)
	p := parser.New(lex, scope)
	prog, d := p.ParseProg()
	if d != nil {
		t.Fatalf("unexpected parse diagnostic: %v", d)
	}
	return c.CheckProgram(prog, "test-item")
}

func TestCheckProgram_ValAnnotationAccepted(t *testing.T) {
	scope := symbols.New()
	c := New(scope)
	if d := check(t, scope, c, "val i : int = 42;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	typ, ok := scope.GetPatternType("i")
	if !ok || typ.String() != "int" {
		t.Errorf("got %v %v", typ, ok)
	}
}

func TestCheckProgram_ValAnnotationRejected(t *testing.T) {
	scope := symbols.New()
	c := New(scope)
	d := check(t, scope, c, "val i : int = 2.0;")
	if d == nil {
		t.Fatal("expected a type error")
	}
	if d.ItemID != "test-item" {
		t.Errorf("diagnostic should be stamped with the item id, got %q", d.ItemID)
	}
}

func TestCheckProgram_OverlayDiscardedAfterEveryItem(t *testing.T) {
	// P8: the overlay stack depth is 0 after any item, accepted or
	// rejected, so c.scope must be the same pointer before and after.
	scope := symbols.New()
	c := New(scope)

	before := c.scope
	check(t, scope, c, "fn x => x + x;")
	if c.scope != before {
		t.Error("scope overlay leaked after an accepted item")
	}

	check(t, scope, c, "val bad : int = true;")
	if c.scope != before {
		t.Error("scope overlay leaked after a rejected item")
	}
}

func TestCheckProgram_BindingsPersistAcrossItems(t *testing.T) {
	scope := symbols.New()
	c := New(scope)
	if d := check(t, scope, c, "val n = 1;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if d := check(t, scope, c, "n + 1;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	typ, ok := scope.GetPatternType("it")
	if !ok || typ.String() != "int" {
		t.Errorf("got %v %v", typ, ok)
	}
}

func TestCheckProgram_MonomorphicNumericDefault(t *testing.T) {
	scope := symbols.New()
	c := New(scope)
	if d := check(t, scope, c, "fn x => x + x;"); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	typ, _ := scope.GetPatternType("it")
	if typ.String() != "int -> int" {
		t.Errorf("got %v, want int -> int (P7)", typ)
	}
}
