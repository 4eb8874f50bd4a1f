package textdoc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quire/internal/core/ports"
)

const (
	// CompilerNodeID is the unique identifier for the compiler Graft node.
	CompilerNodeID graft.ID = "adapter.textdoc.compiler"
	// RendererNodeID is the unique identifier for the page renderer Graft node.
	RendererNodeID graft.ID = "adapter.textdoc.renderer"
	// ConverterNodeID is the unique identifier for the markup converter Graft node.
	ConverterNodeID graft.ID = "adapter.textdoc.converter"
)

func init() {
	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Compiler, error) {
			return NewCompiler(), nil
		},
	})

	graft.Register(graft.Node[ports.PageRenderer]{
		ID:        RendererNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PageRenderer, error) {
			return NewRenderer(), nil
		},
	})

	graft.Register(graft.Node[ports.MarkupConverter]{
		ID:        ConverterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MarkupConverter, error) {
			return NewConverter(), nil
		},
	})
}
