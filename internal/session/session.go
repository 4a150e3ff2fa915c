// Package session wires C1 through C7 together and owns the one piece of
// process-wide mutable state the specification allows: the symbol table
// (§5 "Shared resources"). One Session lives for one interactive run or
// one input file (cmd/sml creates a fresh one per file); pkg/repl drives
// it one item at a time.
package session

import (
	"github.com/google/uuid"

	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/backend"
	"github.com/sml-lang/sml/internal/checker"
	"github.com/sml-lang/sml/internal/config"
	"github.com/sml-lang/sml/internal/diagnostics"
	"github.com/sml-lang/sml/internal/pipeline"
	"github.com/sml-lang/sml/internal/symbols"
	"github.com/sml-lang/sml/internal/typesystem"
)

// Kind classifies what a successfully-accepted item was, so the driver
// knows which of §6's two acceptance messages to print.
type Kind int

const (
	KindExpr Kind = iota
	KindFunDecl
	KindOtherDecl
)

// Result is what Session.Accept returns for a successfully-accepted item.
type Result struct {
	ItemID string
	Kind   Kind
	Value  backend.Value     // only meaningful when Kind == KindExpr
	Type   typesystem.Type   // only meaningful when Kind == KindExpr
}

// checkStage wraps C6 as a pipeline.Processor.
type checkStage struct{ chk *checker.Checker }

func (st checkStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if d := st.chk.CheckProgram(ctx.Prog, ctx.ItemID); d != nil {
		ctx.Diag = d
	}
	return ctx
}

// backendStage wraps C7 as a pipeline.Processor, running only when the
// checker stage left ctx.Diag nil.
type backendStage struct {
	back backend.Backend
	env  *backend.Environment
}

func (st backendStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	v, d := st.back.Run(ctx.Prog, st.env)
	if d != nil {
		d.ItemID = ctx.ItemID
		ctx.Diag = d
		return ctx
	}
	ctx.Result = v
	return ctx
}

// Session holds the symbol table (shared, mutated on success only), the
// one Checker reused across items (§9 "reset at each item boundary"), the
// persistent value environment C7 evaluates against, and the pipeline
// that chains the two stages together.
type Session struct {
	scope *symbols.Table
	chk   *checker.Checker
	env   *backend.Environment
	pipe  *pipeline.Pipeline
}

// New creates a Session with a fresh root symbol table and value
// environment, ready to accept its first item. cfg may be nil, in which
// case config.Default()'s settings apply.
func New(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	scope := symbols.New()
	scope.SetAllowFixityOverride(cfg.AllowFixityOverride)
	chk := checker.New(scope)
	env := backend.NewEnvironment()
	return &Session{
		scope: scope,
		chk:   chk,
		env:   env,
		pipe:  pipeline.New(checkStage{chk: chk}, backendStage{back: backend.New(), env: env}),
	}
}

// Accept runs one already-parsed item through C6 then C7 (§5's control
// flow: "the resulting AST is handed to C6 which consults and mutates C3;
// on success the typed AST is handed to C7"). This is the single place
// named in SPEC_FULL §1.2 where a non-nil Diagnostic stops propagating: on
// any failure the symbol table and value environment are left exactly as
// they were before the call, and the diagnostic (tagged with this item's
// correlation id) is returned for the driver to print; no panic ever
// crosses this boundary.
func (s *Session) Accept(p *ast.Program) (*Result, *diagnostics.Diagnostic) {
	ctx := &pipeline.PipelineContext{ItemID: uuid.NewString(), Prog: p}
	ctx = s.pipe.Run(ctx)
	if ctx.Diag != nil {
		return nil, ctx.Diag
	}

	if p.Expr != nil {
		t, _ := s.chk.Scope().GetPatternType("it")
		v, _ := ctx.Result.(backend.Value)
		return &Result{ItemID: ctx.ItemID, Kind: KindExpr, Value: v, Type: t}, nil
	}
	if _, ok := p.Dec.(*ast.FunDec); ok {
		return &Result{ItemID: ctx.ItemID, Kind: KindFunDecl}, nil
	}
	return &Result{ItemID: ctx.ItemID, Kind: KindOtherDecl}, nil
}

// Scope exposes the live symbol table, e.g. for a driver that wants to
// print `it`'s type independently of the last Result.
func (s *Session) Scope() *symbols.Table { return s.scope }
