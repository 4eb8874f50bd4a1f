package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quire/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quire/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quire/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quire/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quire/internal/adapters/textdoc"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/compile"
	"go.trai.ch/quire/internal/engine/export"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			textdoc.CompilerNodeID,
			textdoc.RendererNodeID,
			textdoc.ConverterNodeID,
			fs.SubstituterNodeID,
			fs.WriterNodeID,
			shell.NodeID,
			cas.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			logger.SinkNodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			renderer, err := graft.Dep[ports.PageRenderer](ctx)
			if err != nil {
				return nil, err
			}

			converter, err := graft.Dep[ports.MarkupConverter](ctx)
			if err != nil {
				return nil, err
			}

			substituter, err := graft.Dep[ports.PathSubstituter](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.ArtifactWriter](ctx)
			if err != nil {
				return nil, err
			}

			scripts, err := graft.Dep[ports.ScriptHost](ctx)
			if err != nil {
				return nil, err
			}

			ledger, err := graft.Dep[ports.ExportLedger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			sink, err := graft.Dep[ports.DiagnosticsSink](ctx)
			if err != nil {
				return nil, err
			}

			compilation := compile.NewCompilation(compiler, sink, log)
			pipeline := export.NewPipeline(compilation, renderer, converter, substituter, scripts, writer, log)
			return NewScheduler(compilation, pipeline, ledger, tracer, log), nil
		},
	})
}
