// Package cas implements the export ledger as one JSON file per task,
// addressed by the hash of the task identifier.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/zerr"
)

const recordExt = ".json"

// Store implements ports.ExportLedger under <root>/.quire/ledger.
type Store struct {
	mu sync.RWMutex
}

// NewStore creates a new ledger store.
func NewStore() *Store {
	return &Store{}
}

func ledgerDir(root string) string {
	return filepath.Join(root, domain.DefaultLedgerPath())
}

func recordPath(root, taskID string) string {
	hash := sha256.Sum256([]byte(taskID))
	return filepath.Join(ledgerDir(root), hex.EncodeToString(hash[:])+recordExt)
}

// Get returns the last record of taskID, or nil, nil if the task was never exported.
func (s *Store) Get(root, taskID string) (*domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := recordPath(root, taskID)
	rec, err := readRecord(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerReadFailed.Error()), "path", path)
	}
	return rec, nil
}

// Put atomically replaces the record of rec.TaskID.
func (s *Store) Put(root string, rec domain.ExportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := recordPath(root, rec.TaskID)
	if err := writeRecord(path, rec); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}
	return nil
}

// List returns every record under root sorted by task identifier.
func (s *Store) List(root string) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := ledgerDir(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerReadFailed.Error()), "path", dir)
	}

	records := make([]domain.ExportRecord, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), recordExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		rec, err := readRecord(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerReadFailed.Error()), "path", path)
		}
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].TaskID < records[j].TaskID
	})
	return records, nil
}

func readRecord(path string) (*domain.ExportRecord, error) {
	//nolint:gosec // Path is derived from the project root and a hash
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec domain.ExportRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func writeRecord(path string, rec domain.ExportRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".record-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
