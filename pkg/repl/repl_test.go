package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sml-lang/sml/internal/config"
	"github.com/sml-lang/sml/internal/session"
)

func TestInteractive_SingleLineExpression(t *testing.T) {
	var out bytes.Buffer
	r := New(session.New(config.Default()), config.Default(), &out)
	r.Interactive(strings.NewReader("1 + 1;\n"))

	if !strings.Contains(out.String(), "Evaluated to 2") {
		t.Errorf("got %q", out.String())
	}
}

func TestInteractive_MultiLineItemWaitsForSemicolon(t *testing.T) {
	var out bytes.Buffer
	r := New(session.New(config.Default()), config.Default(), &out)
	r.Interactive(strings.NewReader("1\n+\n1\n;\n"))

	if !strings.Contains(out.String(), "Evaluated to 2") {
		t.Errorf("got %q", out.String())
	}
}

func TestInteractive_FunDeclPrintsReadFunctionDefinition(t *testing.T) {
	var out bytes.Buffer
	r := New(session.New(config.Default()), config.Default(), &out)
	r.Interactive(strings.NewReader("fun double x = x + x;\n"))

	if !strings.Contains(out.String(), "Read function definition:") {
		t.Errorf("got %q", out.String())
	}
}

func TestInteractive_SyntaxErrorReportedThenRecovers(t *testing.T) {
	var out bytes.Buffer
	r := New(session.New(config.Default()), config.Default(), &out)
	r.Interactive(strings.NewReader("val = 1;\n1 + 1;\n"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	foundEval := false
	for _, l := range lines {
		if strings.Contains(l, "Evaluated to 2") {
			foundEval = true
		}
	}
	if !foundEval {
		t.Errorf("expected the second item to still evaluate, got %q", out.String())
	}
}

func TestFile_ProcessesMultipleItems(t *testing.T) {
	var out bytes.Buffer
	r := New(session.New(config.Default()), config.Default(), &out)
	r.File("val a = 1;\na + a;\n")

	if !strings.Contains(out.String(), "Evaluated to 2") {
		t.Errorf("got %q", out.String())
	}
}

func TestFile_RecoversAfterSyntaxError(t *testing.T) {
	var out bytes.Buffer
	r := New(session.New(config.Default()), config.Default(), &out)
	r.File("val = 1;\n2 + 2;\n")

	if !strings.Contains(out.String(), "Evaluated to 4") {
		t.Errorf("expected recovery to reach the second item, got %q", out.String())
	}
}
