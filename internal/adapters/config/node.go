package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/adapters/logger"
	"go.trai.ch/quire/internal/core/ports"
)

// NodeID is the unique identifier for the project loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

// SettingsNodeID is the unique identifier for the settings loader Graft node.
const SettingsNodeID graft.ID = "adapter.settings_loader"

func init() {
	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})
}
