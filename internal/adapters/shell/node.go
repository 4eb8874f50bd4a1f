package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/adapters/logger"
	"go.trai.ch/quire/internal/core/ports"
)

// NodeID is the unique identifier for the script host Graft node.
const NodeID graft.ID = "adapter.script_host"

func init() {
	graft.Register(graft.Node[ports.ScriptHost]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ScriptHost, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})
}
