package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher fingerprints project sources.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// Fingerprint hashes the relative path and content of every source file
// under root. It calls visit with each relative path it hashed.
func (h *Hasher) Fingerprint(root string, ignores []string, visit func(rel string)) (string, error) {
	hasher := xxhash.New()

	for path := range h.walker.WalkFiles(root, ignores) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		rel = filepath.ToSlash(rel)

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}

		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0})
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}

		if visit != nil {
			visit(rel)
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
