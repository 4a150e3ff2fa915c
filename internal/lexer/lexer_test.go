package lexer

import (
	"testing"

	"github.com/sml-lang/sml/internal/token"
)

func allTokens(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok, d := l.NextToken()
		if d != nil {
			t.Fatalf("unexpected diagnostic: %v", d)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestNextToken_Basics(t *testing.T) {
	toks := allTokens(t, "val x = 1 + 2;")
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{
		token.KEYWORD, token.ID, token.ID, token.INT, token.ID,
		token.INT, token.OPERATOR, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestNextToken_HexIntLiteral(t *testing.T) {
	toks := allTokens(t, "0x1F;")
	if toks[0].Kind != token.INT {
		t.Fatalf("got kind %v", toks[0].Kind)
	}
	if v, ok := toks[0].Payload.(int64); !ok || v != 31 {
		t.Errorf("got payload %v, want 31", toks[0].Payload)
	}
}

func TestNextToken_ReservedSymbolicForcedToOperator(t *testing.T) {
	for _, lexeme := range []string{":", "|", "->", "=>", "#"} {
		toks := allTokens(t, lexeme)
		if toks[0].Kind != token.OPERATOR {
			t.Errorf("%q: got kind %v, want OPERATOR", lexeme, toks[0].Kind)
		}
	}
}

func TestNextToken_MaximalMunchSymbolicID(t *testing.T) {
	toks := allTokens(t, "++")
	if toks[0].Kind != token.ID || toks[0].Lexeme != "++" {
		t.Errorf("got %v %q, want a single ID token '++'", toks[0].Kind, toks[0].Lexeme)
	}
}

func TestNextToken_NestedBlockComments(t *testing.T) {
	toks := allTokens(t, "(* outer (* inner *) still outer *) 1;")
	if toks[0].Kind != token.INT {
		t.Fatalf("got kind %v, want INT (comment should be fully consumed)", toks[0].Kind)
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	toks := allTokens(t, `"a\nb\101";`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("got kind %v", toks[0].Kind)
	}
	got, ok := toks[0].Payload.(string)
	if !ok {
		t.Fatalf("payload is not a string: %v", toks[0].Payload)
	}
	want := "a\nbA" // \101 octal == 'A' (65)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
