package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/quire/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/quire/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/quire/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/quire/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the command line needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// Close releases resources held by the components.
func (c *Components) Close() {
	if closer, ok := c.Logger.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			fs.WorldFactoryNodeID,
			scheduler.NodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ProjectLoader](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[ports.SettingsLoader](ctx)
			if err != nil {
				return nil, err
			}

			worlds, err := graft.Dep[ports.WorldFactory](ctx)
			if err != nil {
				return nil, err
			}

			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			ledger, err := graft.Dep[ports.ExportLedger](ctx)
			if err != nil {
				return nil, err
			}

			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, settings, worlds, sched, ledger, w, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}
