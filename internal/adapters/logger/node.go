package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

// SinkNodeID is the unique identifier for the diagnostics sink Graft node.
const SinkNodeID graft.ID = "adapter.logger.sink"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.DiagnosticsSink]{
		ID:        SinkNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.DiagnosticsSink, error) {
			logger, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDiagnosticsSink(logger), nil
		},
	})
}
