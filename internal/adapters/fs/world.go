package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// World is an immutable snapshot of a project's sources held in memory.
type World struct {
	entry    domain.EntryState
	revision string
	files    map[string][]byte
}

var _ ports.World = (*World)(nil)

// EntryState implements ports.World.
func (w *World) EntryState() domain.EntryState {
	return w.entry
}

// Revision implements ports.World.
func (w *World) Revision() string {
	return w.revision
}

// ReadFile implements ports.World. Paths are relative to the project root.
func (w *World) ReadFile(path string) ([]byte, error) {
	key := filepath.ToSlash(filepath.Clean(path))
	data, ok := w.files[key]
	if !ok {
		return nil, zerr.With(zerr.Wrap(fs.ErrNotExist, "file not in snapshot"), "path", path)
	}
	return data, nil
}

// Files returns the relative paths captured by the snapshot.
func (w *World) Files() []string {
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	return paths
}

// WorldFactory snapshots project sources from disk.
type WorldFactory struct {
	hasher  *Hasher
	ignores []string
}

var _ ports.WorldFactory = (*WorldFactory)(nil)

// NewWorldFactory creates a WorldFactory skipping files whose name matches ignores.
func NewWorldFactory(hasher *Hasher, ignores ...string) *WorldFactory {
	return &WorldFactory{hasher: hasher, ignores: ignores}
}

// Snapshot reads every source file of project and fingerprints them.
func (f *WorldFactory) Snapshot(project *domain.Project) (ports.World, error) {
	entry := project.EntryState()
	world := &World{
		entry: entry,
		files: make(map[string][]byte),
	}

	var readErr error
	revision, err := f.hasher.Fingerprint(project.Root, f.ignores, func(rel string) {
		if readErr != nil {
			return
		}
		data, err := os.ReadFile(filepath.Join(project.Root, filepath.FromSlash(rel))) //nolint:gosec // Path comes from the walker
		if err != nil {
			readErr = zerr.With(zerr.Wrap(err, "failed to read source"), "path", rel)
			return
		}
		world.files[rel] = data
	})
	if err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}

	if entry.Active() {
		main := filepath.ToSlash(filepath.Clean(entry.Main))
		if strings.HasPrefix(main, "../") {
			return nil, zerr.With(domain.ErrEntryNotFound, "entry", entry.Main)
		}
		if _, ok := world.files[main]; !ok {
			return nil, zerr.With(domain.ErrEntryNotFound, "entry", entry.Main)
		}
	}

	world.revision = revision
	return world, nil
}
