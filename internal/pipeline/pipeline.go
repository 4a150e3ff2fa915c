// Package pipeline is the generic two-stage runner behind
// internal/session's per-item control flow (§5: "the resulting AST is
// handed to C6 which consults and mutates C3; on success the typed AST is
// handed to C7"). A Processor that finds ctx.Diag already set from an
// earlier stage must leave ctx untouched, so a short-circuited pipeline
// never runs a later stage against a rejected item.
package pipeline

import (
	"github.com/sml-lang/sml/internal/ast"
	"github.com/sml-lang/sml/internal/diagnostics"
)

// PipelineContext threads one top-level item through the stages that
// accept it.
type PipelineContext struct {
	ItemID string
	Prog   *ast.Program
	Diag   *diagnostics.Diagnostic
	// Result carries whatever the last stage to run produced; the checker
	// stage leaves it nil, the backend stage sets it to a backend.Value.
	Result interface{}
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs a fixed sequence of Processors over one PipelineContext,
// stopping at the first stage that sets Diag.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline, short-circuiting on the first Diagnostic.
func (p *Pipeline) Run(ctx *PipelineContext) *PipelineContext {
	for _, proc := range p.processors {
		if ctx.Diag != nil {
			break
		}
		ctx = proc.Process(ctx)
	}
	return ctx
}
