package compile

import (
	"context"
	"fmt"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/graph"
)

// outcome is the cached result of compiling one variant.
type outcome struct {
	doc   *domain.Document
	diags domain.Diagnostics
}

// Compilation provides the compile-related nodes of a round.
type Compilation struct {
	compiler ports.Compiler
	sink     ports.DiagnosticsSink
	logger   ports.Logger

	paged, html graph.Node[outcome]
}

// NewCompilation creates the compile nodes backed by compiler.
// sink may be nil, in which case diagnostics are only logged.
func NewCompilation(compiler ports.Compiler, sink ports.DiagnosticsSink, logger ports.Logger) *Compilation {
	c := &Compilation{
		compiler: compiler,
		sink:     sink,
		logger:   logger,
	}
	c.paged = c.outcomeNode(domain.VariantPaged)
	c.html = c.outcomeNode(domain.VariantHTML)
	return c
}

func (c *Compilation) outcomeNode(variant domain.Variant) graph.Node[outcome] {
	return graph.Node[outcome]{
		ID: graph.ID("compile." + variant.String()),
		Run: func(ctx context.Context, g *graph.Graph) (outcome, error) {
			if !Required(g, variant) {
				return outcome{}, nil
			}

			snap := g.Snapshot()
			doc, diags, err := c.compiler.Compile(ctx, snap.World, variant)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return outcome{}, ctxErr
			}
			if err != nil {
				c.logger.Warn(fmt.Sprintf("%s compilation failed: %v", variant, err))
				return outcome{diags: diags}, nil
			}
			return outcome{doc: doc, diags: diags}, nil
		},
	}
}

func (c *Compilation) outcome(variant domain.Variant) graph.Node[outcome] {
	if variant == domain.VariantHTML {
		return c.html
	}
	return c.paged
}

// Document returns the node yielding the compiled document of variant.
// The document is nil when the variant was not required or failed to compile.
func (c *Compilation) Document(variant domain.Variant) graph.Node[*domain.Document] {
	node := c.outcome(variant)
	return graph.Node[*domain.Document]{
		ID: graph.ID("document." + variant.String()),
		Run: func(ctx context.Context, g *graph.Graph) (*domain.Document, error) {
			out, err := graph.Compute(ctx, g, node)
			if err != nil {
				return nil, err
			}
			return out.doc, nil
		},
	}
}

// Diagnostics returns the node collecting the diagnostics of every required
// variant and publishing them once per graph.
func (c *Compilation) Diagnostics() graph.Node[domain.Diagnostics] {
	return graph.Node[domain.Diagnostics]{
		ID: "diagnostics",
		Run: func(ctx context.Context, g *graph.Graph) (domain.Diagnostics, error) {
			var all domain.Diagnostics
			for _, variant := range []domain.Variant{domain.VariantPaged, domain.VariantHTML} {
				if !Required(g, variant) {
					continue
				}
				out, err := graph.Compute(ctx, g, c.outcome(variant))
				if err != nil {
					return nil, err
				}
				all = append(all, out.diags...)
			}

			revision := g.Snapshot().Revision()
			if c.sink != nil {
				c.sink.Publish(ctx, revision, all)
			}
			if len(all) > 0 {
				c.logger.Debug(fmt.Sprintf("collected %d diagnostics for revision %s", len(all), revision))
			}
			return all, nil
		},
	}
}

// Project returns the node that establishes the compilation flags and
// collects diagnostics. Its value reports whether anything was compiled.
func (c *Compilation) Project() graph.Node[bool] {
	diagnostics := c.Diagnostics()
	return graph.Node[bool]{
		ID: "project",
		Run: func(ctx context.Context, g *graph.Graph) (bool, error) {
			needed, err := Preconfigure(ctx, g)
			if err != nil {
				return false, err
			}
			if !needed {
				return false, nil
			}
			if _, err := graph.Compute(ctx, g, diagnostics); err != nil {
				return false, err
			}
			return true, nil
		},
	}
}
