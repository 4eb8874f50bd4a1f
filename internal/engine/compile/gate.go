// Package compile decides which document variants a round compiles and
// exposes the compiled documents and diagnostics as graph nodes.
package compile

import (
	"context"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/quire/internal/engine/timing"
)

// PagedCompilation keys the flag deciding whether the paged variant is compiled.
type PagedCompilation struct{}

// HTMLCompilation keys the flag deciding whether the HTML variant is compiled.
type HTMLCompilation struct{}

// Tasks is the configuration listing every task of a round.
type Tasks []domain.ProjectTask

// Preconfigure evaluates the trigger policies of every configured export task
// together with the diagnostics policies and raises the compilation flags of g.
// Flags that are already set are left untouched. It reports whether any
// variant is compiled according to the flags in effect afterwards.
func Preconfigure(_ context.Context, g *graph.Graph) (bool, error) {
	diagnostics, ok := graph.Config[domain.DiagnosticsPolicy](g)
	if !ok {
		diagnostics = domain.DefaultDiagnosticsPolicy()
	}

	paged := diagnostics.Paged.Policies()
	html := diagnostics.HTML.Policies()
	for _, task := range configuredTasks(g) {
		if !compiles(task.Kind()) {
			continue
		}
		switch task.Kind().Variant() {
		case domain.VariantHTML:
			html = append(html, task.Trigger())
		default:
			paged = append(paged, task.Trigger())
		}
	}

	snap := g.Snapshot()
	compilePaged := anyNeedsRun(snap, paged)
	compileHTML := anyNeedsRun(snap, html)

	graph.SetFlag[PagedCompilation](g, compilePaged)
	graph.SetFlag[HTMLCompilation](g, compileHTML)

	return Required(g, domain.VariantPaged) || Required(g, domain.VariantHTML), nil
}

// configuredTasks returns the round's task list, falling back to the single
// task configured on g.
func configuredTasks(g *graph.Graph) []domain.ProjectTask {
	if tasks, ok := graph.Config[Tasks](g); ok {
		return tasks
	}
	if task, ok := graph.Config[domain.ProjectTask](g); ok && task != nil {
		return []domain.ProjectTask{task}
	}
	return nil
}

// compiles reports whether tasks of kind consume a compiled document.
func compiles(kind domain.TaskKind) bool {
	switch kind {
	case domain.KindPreview, domain.KindQuery:
		return false
	default:
		return kind.Extension() != ""
	}
}

func anyNeedsRun(snap graph.Snapshot, policies []domain.TaskWhen) bool {
	for _, when := range policies {
		if timing.NeedsRun(snap, when, nil) {
			return true
		}
	}
	return false
}

// Required reports whether variant is compiled in the round of g.
// A variant whose flag was never decided is compiled.
func Required(g *graph.Graph, variant domain.Variant) bool {
	var (
		v  bool
		ok bool
	)
	switch variant {
	case domain.VariantHTML:
		v, ok = graph.Flag[HTMLCompilation](g)
	default:
		v, ok = graph.Flag[PagedCompilation](g)
	}
	return !ok || v
}
