package parser

import (
	"testing"

	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/lexer"
	"github.com/sml-lang/sml/internal/symbols"
)

func parseItem(t *testing.T, scope *symbols.Table, src string) *ast.Program {
	t.Helper()
	lex := lexer.New(src)
	p := New(lex, scope)
	prog, d := p.ParseProg()
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if prog == nil {
		t.Fatalf("expected a parsed item, got nil")
	}
	return prog
}

func TestParseProg_SimpleExpression(t *testing.T) {
	prog := parseItem(t, symbols.New(), "1 + 2;")
	if prog.Expr == nil || prog.Dec != nil {
		t.Fatalf("expected an expression item, got %+v", prog)
	}
	if _, ok := prog.Expr.(*ast.InfixApp); !ok {
		t.Errorf("got %T, want *ast.InfixApp", prog.Expr)
	}
}

func TestParseProg_ValDeclaration(t *testing.T) {
	prog := parseItem(t, symbols.New(), "val x = 1;")
	dec, ok := prog.Dec.(*ast.ValDec)
	if !ok {
		t.Fatalf("got %T, want *ast.ValDec", prog.Dec)
	}
	if _, ok := dec.Bind.Pat.(*ast.PCtor); !ok {
		t.Errorf("got pattern %T, want *ast.PCtor", dec.Bind.Pat)
	}
}

func TestParseProg_EmptyInputReturnsNil(t *testing.T) {
	lex := lexer.New("")
	p := New(lex, symbols.New())
	prog, d := p.ParseProg()
	if d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if prog != nil {
		t.Errorf("expected nil at end of input, got %+v", prog)
	}
}

func TestParseProg_MissingSemicolonIsASyntaxError(t *testing.T) {
	lex := lexer.New("1 + 2")
	p := New(lex, symbols.New())
	_, d := p.ParseProg()
	if d == nil {
		t.Fatal("expected a missing-token diagnostic")
	}
}

// TestFixityDec_RebindingBuiltinDeniedWhenDisallowed verifies that an
// infix/infixr/nonfix declaration cannot silently rebind a built-in
// operator's fixity when AllowFixityOverride is false.
func TestFixityDec_RebindingBuiltinDeniedWhenDisallowed(t *testing.T) {
	scope := symbols.New()
	scope.SetAllowFixityOverride(false)

	lex := lexer.New("infix 9 +;")
	p := New(lex, scope)
	_, d := p.ParseProg()
	if d == nil {
		t.Fatal("expected a diagnostic rejecting the override")
	}
}

// TestFixityDec_RebindingBuiltinAllowedWhenConfigured verifies the
// opposite: with AllowFixityOverride true (the default), rebinding a
// built-in operator's fixity succeeds.
func TestFixityDec_RebindingBuiltinAllowedWhenConfigured(t *testing.T) {
	scope := symbols.New()
	lex := lexer.New("infix 9 +;")
	p := New(lex, scope)
	if _, d := p.ParseProg(); d != nil {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	fx, ok := scope.GetOperator("+")
	if !ok || fx.Priority != 9 {
		t.Errorf("got %+v %v, want priority 9", fx, ok)
	}
}

// TestFixityAffectsLaterItems verifies property P3: a user `infix`
// declaration in one item changes how a later item parses, because both
// items share one symbols.Table.
func TestFixityAffectsLaterItems(t *testing.T) {
	scope := symbols.New()
	parseItem(t, scope, "infix 6 ++;")
	prog := parseItem(t, scope, "1 ++ 2;")

	app, ok := prog.Expr.(*ast.InfixApp)
	if !ok {
		t.Fatalf("got %T, want *ast.InfixApp", prog.Expr)
	}
	if app.Op.Name() != "++" {
		t.Errorf("got operator %q, want \"++\"", app.Op.Name())
	}
}
