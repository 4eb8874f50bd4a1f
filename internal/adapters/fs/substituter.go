package fs

import (
	"path/filepath"
	"strings"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
)

// Substituter expands output path patterns.
//
// $root is the project root, $dir the directory of the entry file and $name
// the entry file name without extension. Relative results are resolved
// against the project root.
type Substituter struct{}

var _ ports.PathSubstituter = Substituter{}

// NewSubstituter creates a Substituter.
func NewSubstituter() Substituter {
	return Substituter{}
}

// Substitute implements ports.PathSubstituter.
func (Substituter) Substitute(pattern domain.PathPattern, entry domain.EntryState) (string, bool) {
	if pattern == "" || !entry.Active() {
		return "", false
	}

	mainPath := entry.MainPath()
	name := strings.TrimSuffix(filepath.Base(mainPath), filepath.Ext(mainPath))
	replacer := strings.NewReplacer(
		"$root", entry.Root,
		"$dir", filepath.Dir(mainPath),
		"$name", name,
	)

	path := replacer.Replace(string(pattern))
	if strings.Contains(path, "$") {
		return "", false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(entry.Root, path)
	}
	return filepath.Clean(path), true
}
