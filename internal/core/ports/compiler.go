// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/quire/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks

// World is an immutable snapshot of the project sources for one compilation round.
type World interface {
	// EntryState returns the root and main file of the snapshot.
	EntryState() domain.EntryState
	// ReadFile reads a file relative to the project root.
	ReadFile(path string) ([]byte, error)
	// Revision fingerprints the sources of the snapshot.
	Revision() string
}

// Compiler turns a world into a document of the requested variant.
type Compiler interface {
	// Compile compiles the entry of world. On failure the returned diagnostics
	// describe the problem and the error wraps domain.ErrCompileFailed.
	Compile(ctx context.Context, world World, variant domain.Variant) (*domain.Document, domain.Diagnostics, error)
}

// DiagnosticsSink receives the diagnostics collected during a round.
type DiagnosticsSink interface {
	Publish(ctx context.Context, revision string, diags domain.Diagnostics)
}
