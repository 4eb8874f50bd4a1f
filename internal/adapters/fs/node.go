package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// WorldFactoryNodeID is the unique identifier for the world factory Graft node.
	WorldFactoryNodeID graft.ID = "adapter.fs.world"
	// SubstituterNodeID is the unique identifier for the path substituter Graft node.
	SubstituterNodeID graft.ID = "adapter.fs.substituter"
	// WriterNodeID is the unique identifier for the artifact writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (*Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})

	graft.Register(graft.Node[ports.WorldFactory]{
		ID:        WorldFactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.WorldFactory, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewWorldFactory(hasher), nil
		},
	})

	graft.Register(graft.Node[ports.PathSubstituter]{
		ID:        SubstituterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PathSubstituter, error) {
			return NewSubstituter(), nil
		},
	})

	graft.Register(graft.Node[ports.ArtifactWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactWriter, error) {
			return NewWriter(), nil
		},
	})
}
