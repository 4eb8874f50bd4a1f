// Package fs provides file system adapters: source snapshots, output path
// substitution and artifact writing.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/quire/internal/core/domain"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root in lexical order, skipping VCS
// directories, the workspace directory and entries whose name matches ignores.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root {
				if skip, action := w.shouldSkip(d, ignores); skip {
					return action
				}
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether d is excluded and the action WalkDir should take.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() {
		switch name {
		case ".git", ".jj", domain.QuireDirName:
			return true, filepath.SkipDir
		}
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
