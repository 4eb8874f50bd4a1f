package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/core/ports"
)

// NodeID is the unique identifier for the export ledger Graft node.
const NodeID graft.ID = "adapter.export_ledger"

func init() {
	graft.Register(graft.Node[ports.ExportLedger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExportLedger, error) {
			return NewStore(), nil
		},
	})
}
