package fs

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// Writer writes artifacts atomically through a temporary file in the target directory.
type Writer struct{}

var _ ports.ArtifactWriter = Writer{}

// NewWriter creates a Writer.
func NewWriter() Writer {
	return Writer{}
}

// Write implements ports.ArtifactWriter.
func (Writer) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temporary file"), "dir", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write temporary file"), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close temporary file"), "path", tmpName)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to set file mode"), "path", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to move artifact into place"), "path", path)
	}
	return nil
}
