// Package export runs the export pipeline of a single task on a compute graph.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/compile"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/quire/internal/engine/timing"
	"go.trai.ch/zerr"
)

// Pipeline exports the task configured on a graph.
type Pipeline struct {
	compilation *compile.Compilation
	renderer    ports.PageRenderer
	converter   ports.MarkupConverter
	substituter ports.PathSubstituter
	scripts     ports.ScriptHost
	writer      ports.ArtifactWriter
	logger      ports.Logger
}

// NewPipeline creates a pipeline reading documents from compilation.
func NewPipeline(
	compilation *compile.Compilation,
	renderer ports.PageRenderer,
	converter ports.MarkupConverter,
	substituter ports.PathSubstituter,
	scripts ports.ScriptHost,
	writer ports.ArtifactWriter,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		compilation: compilation,
		renderer:    renderer,
		converter:   converter,
		substituter: substituter,
		scripts:     scripts,
		writer:      writer,
		logger:      logger,
	}
}

// Node returns the graph node exporting the domain.ProjectTask configured on a graph.
// The node is local, so every forked graph exports its own task.
func (p *Pipeline) Node() graph.Node[domain.ExportReport] {
	return graph.Node[domain.ExportReport]{
		ID:    "export",
		Local: true,
		Run:   p.Run,
	}
}

// Run exports the task configured on g. Skipped exports are reported, not returned as errors.
func (p *Pipeline) Run(ctx context.Context, g *graph.Graph) (domain.ExportReport, error) {
	task, err := graph.MustConfig[domain.ProjectTask](g)
	if err != nil {
		return domain.ExportReport{}, err
	}

	report := domain.ExportReport{TaskID: task.TaskID(), Kind: task.Kind()}
	spec := task.Spec()
	if spec == nil || task.Kind() == domain.KindQuery {
		return report, zerr.With(domain.ErrTaskNotSupported, "kind", string(task.Kind()))
	}

	path, ok := p.resolve(g, task.Kind(), spec.Output)
	if !ok {
		p.logger.Debug(fmt.Sprintf("task %s has no output path, skipping", task.TaskID()))
		report.Skipped = domain.SkipNoOutput
		return report, nil
	}
	report.Path = path

	data, skipped, err := p.produce(ctx, g, task)
	if err != nil {
		return report, err
	}
	if skipped != domain.SkipNone {
		report.Skipped = skipped
		return report, nil
	}

	data, err = p.postProcess(ctx, task, spec, path, data)
	if err != nil {
		return report, err
	}

	if err := p.writer.Write(ctx, path, data); err != nil {
		return report, zerr.With(zerr.Wrap(err, domain.ErrWriteFailed.Error()), "path", path)
	}

	report.Size = len(data)
	report.Digest = fmt.Sprintf("%016x", xxhash.Sum64(data))
	p.logger.Debug(fmt.Sprintf("exported %s to %s (%d bytes)", task.TaskID(), path, report.Size))
	return report, nil
}

// resolve expands the output pattern against the entry of the snapshot.
func (p *Pipeline) resolve(g *graph.Graph, kind domain.TaskKind, pattern domain.PathPattern) (string, bool) {
	if pattern == "" {
		return "", false
	}
	var entry domain.EntryState
	if world := g.Snapshot().World; world != nil {
		entry = world.EntryState()
	}
	path, ok := p.substituter.Substitute(pattern, entry)
	if !ok || path == "" {
		return "", false
	}
	if filepath.Ext(path) == "" {
		path += "." + kind.Extension()
	}
	return path, true
}

// produce renders the raw output of task, or reports why nothing was produced.
func (p *Pipeline) produce(ctx context.Context, g *graph.Graph, task domain.ProjectTask) ([]byte, domain.SkipReason, error) {
	snap := g.Snapshot()

	switch task.Kind() {
	case domain.KindExportMarkdown, domain.KindExportTeX:
		doc, err := graph.Compute(ctx, g, p.compilation.Document(domain.VariantPaged))
		if err != nil {
			return nil, domain.SkipNone, err
		}
		if !timing.NeedsRun(snap, task.Trigger(), doc) {
			return nil, domain.SkipNotDue, nil
		}
		if doc == nil {
			return nil, domain.SkipNoDocument, nil
		}

		format := domain.MarkupMarkdown
		if task.Kind() == domain.KindExportTeX {
			format = domain.MarkupTeX
		}
		out, err := p.converter.Convert(ctx, snap.World, format)
		if err != nil {
			return nil, domain.SkipNone, zerr.With(zerr.Wrap(err, domain.ErrConvertFailed.Error()), "format", string(format))
		}
		return []byte(out), domain.SkipNone, nil
	}

	strategy, ok := StrategyFor(task.Kind(), p.renderer)
	if !ok {
		return nil, domain.SkipNone, zerr.With(domain.ErrTaskNotSupported, "kind", string(task.Kind()))
	}

	doc, err := graph.Compute(ctx, g, p.compilation.Document(strategy.Variant()))
	if err != nil {
		return nil, domain.SkipNone, err
	}
	if !timing.NeedsRun(snap, task.Trigger(), doc) {
		return nil, domain.SkipNotDue, nil
	}
	if doc == nil {
		return nil, domain.SkipNoDocument, nil
	}

	data, err := strategy.Run(ctx, g, doc, task)
	if err != nil {
		return nil, domain.SkipNone, err
	}
	return data, domain.SkipNone, nil
}

// postProcess applies the script and pretty transforms of spec in order.
func (p *Pipeline) postProcess(
	ctx context.Context,
	task domain.ProjectTask,
	spec *domain.ExportTask,
	path string,
	data []byte,
) ([]byte, error) {
	env := map[string]string{
		"QUIRE_TASK_ID": task.TaskID(),
		"QUIRE_KIND":    string(task.Kind()),
		"QUIRE_OUTPUT":  path,
	}

	for i, tr := range spec.Transform {
		var script string
		switch {
		case tr.Script != nil:
			script = tr.Script.Script
		case tr.Pretty != nil && tr.Pretty.Script != "":
			script = tr.Pretty.Script
		case tr.Pretty != nil:
			data = prettyPrint(data)
			continue
		default:
			continue
		}

		out, err := p.scripts.Transform(ctx, script, data, env)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrScriptFailed.Error()), "task_id", task.TaskID())
			return nil, zerr.With(err, "transform", i)
		}
		data = out
	}
	return data, nil
}

// prettyPrint indents JSON output and leaves anything else untouched.
func prettyPrint(data []byte) []byte {
	if !json.Valid(data) {
		return data
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
