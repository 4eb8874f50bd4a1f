package export_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports/mocks"
	"go.trai.ch/quire/internal/engine/compile"
	"go.trai.ch/quire/internal/engine/export"
	"go.trai.ch/quire/internal/engine/graph"
	"go.uber.org/mock/gomock"
)

var (
	typing = domain.ExportSignal{ByMemEvents: true}
	entry  = domain.EntryState{Root: "/project", Main: "main.qm"}

	quietDiagnostics = domain.DiagnosticsPolicy{
		Paged: domain.VariantDiagnostics{Continuous: domain.WhenNever, Explicit: domain.WhenScript},
		HTML:  domain.VariantDiagnostics{Continuous: domain.WhenNever, Explicit: domain.WhenNever},
	}
)

type fixture struct {
	compiler    *mocks.MockCompiler
	renderer    *mocks.MockPageRenderer
	converter   *mocks.MockMarkupConverter
	substituter *mocks.MockPathSubstituter
	scripts     *mocks.MockScriptHost
	writer      *mocks.MockArtifactWriter
	world       *mocks.MockWorld

	compilation *compile.Compilation
	pipeline    *export.Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		compiler:    mocks.NewMockCompiler(ctrl),
		renderer:    mocks.NewMockPageRenderer(ctrl),
		converter:   mocks.NewMockMarkupConverter(ctrl),
		substituter: mocks.NewMockPathSubstituter(ctrl),
		scripts:     mocks.NewMockScriptHost(ctrl),
		writer:      mocks.NewMockArtifactWriter(ctrl),
		world:       mocks.NewMockWorld(ctrl),
	}
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.world.EXPECT().EntryState().Return(entry).AnyTimes()
	f.world.EXPECT().Revision().Return("rev-1").AnyTimes()

	f.compilation = compile.NewCompilation(f.compiler, nil, logger)
	f.pipeline = export.NewPipeline(f.compilation, f.renderer, f.converter, f.substituter, f.scripts, f.writer, logger)
	return f
}

// round runs the gate for tasks and returns a fork configured with the first task.
func (f *fixture) round(t *testing.T, signal domain.ExportSignal, tasks ...domain.ProjectTask) *graph.Graph {
	t.Helper()
	root := graph.New(graph.Snapshot{World: f.world, Signal: signal})
	graph.ProvideConfig(root, quietDiagnostics)
	graph.ProvideConfig(root, compile.Tasks(tasks))
	_, err := graph.Compute(t.Context(), root, f.compilation.Project())
	require.NoError(t, err)

	fork := root.Fork()
	graph.ProvideConfig(fork, tasks[0])
	return fork
}

func pdf(when domain.TaskWhen, output domain.PathPattern) domain.ExportPDFTask {
	return domain.ExportPDFTask{ExportTask: domain.ExportTask{ID: "pdf", Document: "main", When: when, Output: output}}
}

func pagedDoc(n int) *domain.Document {
	doc := &domain.Document{Variant: domain.VariantPaged, Title: "Notes"}
	for i := range n {
		doc.Pages = append(doc.Pages, domain.Page{Number: i + 1, Width: 100, Height: 200})
	}
	return doc
}

func TestPipeline_OnTypeWritesOutput(t *testing.T) {
	f := newFixture(t)
	doc := pagedDoc(2)
	f.compiler.EXPECT().Compile(gomock.Any(), f.world, domain.VariantPaged).Return(doc, nil, nil).Times(1)
	f.substituter.EXPECT().Substitute(domain.PathPattern("$root/out/$name"), entry).Return("/project/out/main", true)
	f.renderer.EXPECT().PDF(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.7"), nil)
	f.writer.EXPECT().Write(gomock.Any(), "/project/out/main.pdf", []byte("%PDF-1.7")).Return(nil)

	g := f.round(t, typing, pdf(domain.WhenOnType, "$root/out/$name"))
	report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)

	assert.True(t, report.Written())
	assert.Equal(t, "/project/out/main.pdf", report.Path)
	assert.Equal(t, 8, report.Size)
	assert.Len(t, report.Digest, 16)
}

func TestPipeline_NeverWhileTypingSkipsWithoutError(t *testing.T) {
	f := newFixture(t)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/main.pdf", true)

	g := f.round(t, typing, pdf(domain.WhenNever, "$root/$name"))
	report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)

	assert.False(t, report.Written())
	assert.Equal(t, domain.SkipNotDue, report.Skipped)
}

func TestPipeline_NeverExplicitlyWritesOutput(t *testing.T) {
	f := newFixture(t)
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(pagedDoc(1), nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/main.pdf", true)
	f.renderer.EXPECT().PDF(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("pdf"), nil)
	f.writer.EXPECT().Write(gomock.Any(), "/project/main.pdf", gomock.Any()).Return(nil)

	g := f.round(t, domain.ExplicitSignal(), pdf(domain.WhenNever, "$root/$name"))
	report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)
	assert.True(t, report.Written())
}

func TestPipeline_UnresolvedOutputSkips(t *testing.T) {
	tests := []struct {
		name   string
		output domain.PathPattern
	}{
		{name: "pattern cannot be substituted", output: "$dir/out"},
		{name: "no output configured", output: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).Return(pagedDoc(1), nil, nil).AnyTimes()
			if tt.output != "" {
				f.substituter.EXPECT().Substitute(tt.output, entry).Return("", false)
			}

			g := f.round(t, typing, pdf(domain.WhenOnType, tt.output))
			report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
			require.NoError(t, err)
			assert.Equal(t, domain.SkipNoOutput, report.Skipped)
		})
	}
}

func TestPipeline_FailedCompilationSkips(t *testing.T) {
	f := newFixture(t)
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(nil, nil, domain.ErrCompileFailed)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/main.pdf", true)

	g := f.round(t, typing, pdf(domain.WhenOnType, "$root/$name"))
	report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)
	assert.Equal(t, domain.SkipNoDocument, report.Skipped)
}

func TestPipeline_WriteFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(pagedDoc(1), nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/readonly/main.pdf", true)
	f.renderer.EXPECT().PDF(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("pdf"), nil)
	f.writer.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("permission denied"))

	g := f.round(t, typing, pdf(domain.WhenOnType, "$root/$name"))
	_, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWriteFailed.Error())
	assert.ErrorContains(t, err, "permission denied")
}

func TestPipeline_MarkdownUsesConverter(t *testing.T) {
	f := newFixture(t)
	task := domain.ExportMarkdownTask{ExportTask: domain.ExportTask{
		ID: "md", Document: "main", When: domain.WhenOnType, Output: "$root/$name",
	}}
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(pagedDoc(1), nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/main", true)
	f.converter.EXPECT().Convert(gomock.Any(), f.world, domain.MarkupMarkdown).Return("# Notes\n", nil)
	f.writer.EXPECT().Write(gomock.Any(), "/project/main.md", []byte("# Notes\n")).Return(nil)

	g := f.round(t, typing, task)
	report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)
	assert.True(t, report.Written())
}

func TestPipeline_MarkdownAfterFailedCompilationSkips(t *testing.T) {
	f := newFixture(t)
	task := domain.ExportMarkdownTask{ExportTask: domain.ExportTask{
		ID: "md", Document: "main", When: domain.WhenOnType, Output: "$root/$name",
	}}
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(nil, nil, domain.ErrCompileFailed)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/main", true)

	g := f.round(t, typing, task)
	report, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)
	assert.Equal(t, domain.SkipNoDocument, report.Skipped)
	assert.False(t, report.Written())
}

func TestPipeline_TeXConversionFailure(t *testing.T) {
	f := newFixture(t)
	task := domain.ExportTeXTask{ExportTask: domain.ExportTask{ID: "tex", Output: "out.tex"}}
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(pagedDoc(1), nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/out.tex", true)
	f.converter.EXPECT().Convert(gomock.Any(), gomock.Any(), domain.MarkupTeX).Return("", errors.New("unsupported element"))

	g := f.round(t, domain.ExplicitSignal(), task)
	_, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.ErrorContains(t, err, domain.ErrConvertFailed.Error())
}

func TestPipeline_HTMLUsesHTMLDocument(t *testing.T) {
	f := newFixture(t)
	task := domain.ExportHTMLTask{ExportTask: domain.ExportTask{ID: "site", When: domain.WhenOnType, Output: "site"}}
	site := &domain.Document{Variant: domain.VariantHTML}
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantHTML).Return(site, nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/site", true)
	f.renderer.EXPECT().HTML(gomock.Any(), site).Return("<html></html>", nil)
	f.writer.EXPECT().Write(gomock.Any(), "/project/site.html", []byte("<html></html>")).Return(nil)

	g := f.round(t, typing, task)
	_, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)
}

func TestPipeline_PostTransforms(t *testing.T) {
	f := newFixture(t)
	task := domain.ExportTextTask{ExportTask: domain.ExportTask{
		ID: "txt", Output: "$root/data.json",
		Transform: []domain.ExportTransform{
			{Script: &domain.ScriptTransform{Script: "tr a-z A-Z"}},
			{Pretty: &domain.PrettyTransform{}},
		},
	}}
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(pagedDoc(1), nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/data.json", true)
	f.renderer.EXPECT().Text(gomock.Any(), gomock.Any()).Return(`{"a":1}`, nil)
	f.scripts.EXPECT().
		Transform(gomock.Any(), "tr a-z A-Z", []byte(`{"a":1}`), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ []byte, env map[string]string) ([]byte, error) {
			assert.Equal(t, "/project/data.json", env["QUIRE_OUTPUT"])
			assert.Equal(t, "txt", env["QUIRE_TASK_ID"])
			return []byte(`{"A":1}`), nil
		})
	f.writer.EXPECT().Write(gomock.Any(), "/project/data.json", []byte("{\n  \"A\": 1\n}\n")).Return(nil)

	g := f.round(t, domain.ExplicitSignal(), task)
	_, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.NoError(t, err)
}

func TestPipeline_ScriptFailure(t *testing.T) {
	f := newFixture(t)
	task := domain.ExportTextTask{ExportTask: domain.ExportTask{
		ID: "txt", Output: "out.txt",
		Transform: []domain.ExportTransform{{Pretty: &domain.PrettyTransform{Script: "exit 1"}}},
	}}
	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.VariantPaged).Return(pagedDoc(1), nil, nil)
	f.substituter.EXPECT().Substitute(gomock.Any(), gomock.Any()).Return("/project/out.txt", true)
	f.renderer.EXPECT().Text(gomock.Any(), gomock.Any()).Return("text", nil)
	f.scripts.EXPECT().Transform(gomock.Any(), "exit 1", gomock.Any(), gomock.Any()).Return(nil, errors.New("exit status 1"))

	g := f.round(t, domain.ExplicitSignal(), task)
	_, err := graph.Compute(t.Context(), g, f.pipeline.Node())
	require.ErrorContains(t, err, domain.ErrScriptFailed.Error())
}

func TestPipeline_UnsupportedTasks(t *testing.T) {
	tests := []domain.ProjectTask{
		domain.PreviewTask{ID: "preview"},
		domain.QueryTask{ExportTask: domain.ExportTask{ID: "query", Output: "q.json"}, Format: "json"},
	}

	for _, task := range tests {
		t.Run(string(task.Kind()), func(t *testing.T) {
			f := newFixture(t)
			f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).Return(pagedDoc(1), nil, nil).AnyTimes()
			g := f.round(t, domain.ExplicitSignal(), task)
			_, err := graph.Compute(t.Context(), g, f.pipeline.Node())
			require.ErrorContains(t, err, domain.ErrTaskNotSupported.Error())
		})
	}
}

func TestPipeline_MissingTaskConfig(t *testing.T) {
	f := newFixture(t)
	_, err := f.pipeline.Run(t.Context(), graph.New(graph.Snapshot{}))
	require.ErrorContains(t, err, domain.ErrConfigNotProvided.Error())
}
