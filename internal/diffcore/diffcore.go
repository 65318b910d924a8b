// Package diffcore orchestrates components B through G into the single
// Diff(cfg, left, right) entry point the rest of the module calls: tree
// builder, optional paragraph folder, Zhang-Shasha solver, reconciler and
// renderer, run in that data-flow order.
package diffcore

import (
	"github.com/vortex/xmldiff/internal/builder"
	"github.com/vortex/xmldiff/internal/diag"
	"github.com/vortex/xmldiff/internal/node"
	"github.com/vortex/xmldiff/internal/paragraph"
	"github.com/vortex/xmldiff/internal/reconcile"
	"github.com/vortex/xmldiff/internal/render"
	"github.com/vortex/xmldiff/internal/tagequiv"
	"github.com/vortex/xmldiff/internal/xmlsrc"
	"github.com/vortex/xmldiff/internal/zhangshasha"
)

// Config is an explicit context value threaded through a Diff call, in
// place of process-wide configuration globals.
type Config struct {
	// Raw, when true, skips the paragraph-folding pass and disables the
	// tag-equivalence table.
	Raw bool
	// Debug is carried for the caller, which decides whether to log the
	// edit script. diffcore does not read it: Result.Script and
	// Result.Diagnostics (including unplaced inserts) are always populated.
	Debug bool

	BuilderConfig   builder.Config
	ParagraphPolicy *paragraph.Policy
	Equiv           *tagequiv.Table
}

// DefaultConfig returns the non-raw, non-debug configuration used for
// ordinary Internet-Draft / RFC diffing.
func DefaultConfig() Config {
	return Config{
		BuilderConfig:   builder.DefaultConfig(),
		ParagraphPolicy: paragraph.Default(),
		Equiv:           tagequiv.Default(),
	}
}

// Result is everything one Diff call produces: the rendered span tree,
// the raw edit-script distance and op count (useful for debug logging and
// for property tests asserting symmetry and idempotence), and any
// diagnostics raised along the way.
type Result struct {
	Distance    float64
	Script      []zhangshasha.Op
	Render      *render.Span
	Diagnostics diag.Diagnostics
}

// Diff runs the full B->[C]->D->F->G pipeline over two already-parsed XML
// documents and returns the rendered merged diff.
func Diff(cfg Config, left, right *xmlsrc.Document) Result {
	var d diag.Diagnostics

	equiv := cfg.Equiv
	if cfg.Raw {
		equiv = tagequiv.Empty()
	}

	leftArena := node.NewArena()
	rightArena := node.NewArena()

	leftRoot := builder.Build(leftArena, left, cfg.BuilderConfig, &d)
	rightRoot := builder.Build(rightArena, right, cfg.BuilderConfig, &d)

	if !cfg.Raw && cfg.ParagraphPolicy != nil {
		paragraph.Fold(leftRoot, leftArena, cfg.ParagraphPolicy, leftArena.Len())
		paragraph.Fold(rightRoot, rightArena, cfg.ParagraphPolicy, rightArena.Len())
	}

	costs := zhangshasha.DefaultCosts(equiv)
	solved := zhangshasha.Solve(leftRoot, rightRoot, costs)

	reconcile.Apply(leftArena, leftRoot, rightRoot, solved.Script, &d)

	rendered := render.Render(leftRoot, render.Config{Equiv: equiv})

	return Result{
		Distance:    solved.Distance,
		Script:      solved.Script,
		Render:      rendered,
		Diagnostics: d,
	}
}
