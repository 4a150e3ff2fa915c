// Package repl implements the two external interfaces named in
// specification §6: an interactive stdin loop and a sequential file
// driver, both built on top of internal/session's single-item Accept.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/config"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/lexer"
	"github.com/sml-lang/sml/internal/parser"
	"github.com/sml-lang/sml/internal/session"
	"github.com/sml-lang/sml/internal/token"
	"github.com/sml-lang/sml/internal/typesystem"
)

// REPL drives a Session against one input source, printing the acceptance
// or diagnostic line for every item per §6 "Output".
type REPL struct {
	sess *session.Session
	cfg  *config.Config
	out  io.Writer
}

// New builds a REPL over an existing Session, writing to out.
func New(sess *session.Session, cfg *config.Config, out io.Writer) *REPL {
	return &REPL{sess: sess, cfg: cfg, out: out}
}

// Interactive reads lines from in until EOF, accumulating one item's worth
// of source at a time. The lexer has no streaming-reader support (it scans
// a whole string, §4.1), so each new line re-lexes and re-parses the whole
// accumulated buffer from scratch; a MissingToken or InvalidToken
// diagnostic whose token is EOF means the item is merely incomplete, not
// wrong (e.g. a line ending in an infix operator), and the loop prints
// the continuation prompt and keeps reading instead of reporting an error.
//
// Only one item is recognized per accumulated buffer: packing more than one
// `;`-terminated item into a single submission is not supported, matching
// the scope of a minimal line-oriented front end.
func (r *REPL) Interactive(in io.Reader) {
	scanner := bufio.NewScanner(in)
	var buf strings.Builder
	prompt := r.cfg.Prompt

	for {
		fmt.Fprint(r.out, prompt)
		if !scanner.Scan() {
			return
		}
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')

		prog, d := parseOne(buf.String(), r.sess)
		switch {
		case d != nil && incomplete(d):
			prompt = r.cfg.ContinuationPrompt
			continue
		case d != nil:
			fmt.Fprintln(r.out, d.Error())
			buf.Reset()
			prompt = r.cfg.Prompt
		case prog == nil:
			// Blank or comment-only input: nothing to run, keep waiting.
			buf.Reset()
			prompt = r.cfg.Prompt
		default:
			r.runItem(prog)
			buf.Reset()
			prompt = r.cfg.Prompt
		}
	}
}

// File processes one file's worth of source read in full upfront, looping
// a single persistent Lexer/Parser pair over repeated ParseProg calls and
// recovering from a syntax error by skipping to the token after the next
// `;` (§4.3 "Error recovery"), since the whole text is already available
// and there is no notion of "more input might still arrive".
func (r *REPL) File(src string) {
	lex := lexer.New(src)
	p := parser.New(lex, r.sess.Scope())

	for {
		prog, d := p.ParseProg()
		if d != nil {
			fmt.Fprintln(r.out, d.Error())
			p.SkipToNextItem()
			continue
		}
		if prog == nil {
			return
		}
		r.runItem(prog)
	}
}

// parseOne builds a fresh Lexer/Parser over src and parses exactly one
// item, sharing the session's symbol table so a prior item's `infix`
// declaration is already visible (§8 P3).
func parseOne(src string, sess *session.Session) (*ast.Program, *diagnostics.Diagnostic) {
	lex := lexer.New(src)
	p := parser.New(lex, sess.Scope())
	return p.ParseProg()
}

// incomplete reports whether d means "the item isn't finished yet" rather
// than a genuine syntax error: a missing-token or invalid-token diagnostic
// whose offending token is the synthetic EOF means the parser ran out of
// input mid-item.
func incomplete(d *diagnostics.Diagnostic) bool {
	return (d.Code == diagnostics.ErrP001 || d.Code == diagnostics.ErrP002) && d.Token.Kind == token.EOF
}

// runItem accepts prog against the session and prints the result line per
// §6: `Evaluated to V` for an expression (with an optional ` : T` type
// suffix when cfg.PrintTypes is set), `Read function definition:` for a
// `fun` declaration, nothing for any other declaration, or the diagnostic
// line on failure.
func (r *REPL) runItem(prog *ast.Program) {
	res, d := r.sess.Accept(prog)
	if d != nil {
		fmt.Fprintln(r.out, d.Error())
		return
	}
	switch res.Kind {
	case session.KindExpr:
		line := "Evaluated to " + res.Value.Render()
		if r.cfg.PrintTypes && res.Type != nil {
			line += " : " + typesystem.Pretty(res.Type)
		}
		fmt.Fprintln(r.out, line)
	case session.KindFunDecl:
		fmt.Fprintln(r.out, "Read function definition:")
	case session.KindOtherDecl:
		// §6 names no output for accepted non-fun declarations.
	}
}
