package cas_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/adapters/cas"
	"go.trai.ch/quire/internal/core/domain"
)

func recordFile(root, taskID string) string {
	hash := sha256.Sum256([]byte(taskID))
	return filepath.Join(root, ".quire", "ledger", hex.EncodeToString(hash[:])+".json")
}

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	rec := domain.ExportRecord{
		TaskID:    "pdf",
		Kind:      domain.KindExportPDF,
		Path:      filepath.Join(root, "main.pdf"),
		Digest:    "abc",
		Size:      42,
		Revision:  "rev1",
		RoundID:   "round",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put(root, rec))

	got, err := store.Get(root, "pdf")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestStore_GetMissing(t *testing.T) {
	got, err := cas.NewStore().Get(t.TempDir(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Replace(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.ExportRecord{TaskID: "pdf", Digest: "old"}))
	require.NoError(t, store.Put(root, domain.ExportRecord{TaskID: "pdf", Digest: "new"}))

	got, err := store.Get(root, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Digest)

	entries, err := os.ReadDir(filepath.Join(root, ".quire", "ledger"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_Persistence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, cas.NewStore().Put(root, domain.ExportRecord{TaskID: "html", Digest: "xyz"}))

	got, err := cas.NewStore().Get(root, "html")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "xyz", got.Digest)
}

func TestStore_List(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	records, err := store.List(root)
	require.NoError(t, err)
	assert.Empty(t, records)

	for _, id := range []string{"svg", "html", "pdf"} {
		require.NoError(t, store.Put(root, domain.ExportRecord{TaskID: id}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, ".quire", "ledger", "notes.txt"), []byte("x"), 0o600))

	records, err = store.List(root)
	require.NoError(t, err)
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.TaskID
	}
	assert.Equal(t, []string{"html", "pdf", "svg"}, ids)
}

func TestStore_CorruptRecord(t *testing.T) {
	root := t.TempDir()
	path := recordFile(root, "pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := cas.NewStore()
	_, err := store.Get(root, "pdf")
	require.ErrorContains(t, err, domain.ErrLedgerReadFailed.Error())

	_, err = store.List(root)
	require.ErrorContains(t, err, domain.ErrLedgerReadFailed.Error())
}

func TestStore_WriteFailure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".quire"), []byte("file"), 0o600))

	err := cas.NewStore().Put(root, domain.ExportRecord{TaskID: "pdf"})
	require.ErrorContains(t, err, domain.ErrLedgerWriteFailed.Error())
}

func TestStore_OmitZero(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, cas.NewStore().Put(root, domain.ExportRecord{TaskID: "task_zero"}))

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(recordFile(root, "task_zero"))
	require.NoError(t, err)

	json := string(content)
	assert.Contains(t, json, "task_id")
	for _, field := range []string{"digest", "timestamp", "revision", "size"} {
		assert.False(t, strings.Contains(json, `"`+field+`"`), "zero %s must be omitted", field)
	}
}

func TestStore_ConcurrentPut(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			_ = store.Put(root, domain.ExportRecord{TaskID: "pdf", Size: i})
		})
	}
	wg.Wait()

	got, err := store.Get(root, "pdf")
	require.NoError(t, err)
	require.NotNil(t, got)
}
