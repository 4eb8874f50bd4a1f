package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/adapters/watcher"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func startWatcher(t *testing.T, root string, patterns ...string) *watcher.Watcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	require.NoError(t, w.Start(ctx, root, patterns))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return w
}

// nextEvent waits for an event on path and returns everything seen before it.
func nextEvent(t *testing.T, w *watcher.Watcher, path string) []ports.WatchEvent {
	t.Helper()

	seen := make(chan []ports.WatchEvent, 1)
	go func() {
		var events []ports.WatchEvent
		for ev := range w.Events() {
			events = append(events, ev)
			if ev.Path == path {
				break
			}
		}
		seen <- events
	}()

	select {
	case events := <-seen:
		return events
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", path)
		return nil
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	path := filepath.Join(root, "main.qd")
	require.NoError(t, os.WriteFile(path, []byte("= Title"), 0o600))

	events := nextEvent(t, w, path)
	last := events[len(events)-1]
	assert.Equal(t, path, last.Path)
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, last.Operation)
}

func TestWatcher_SkipsIgnoredPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("out/\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "out"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".quire"), 0o750))

	w := startWatcher(t, root, "*.tmp")

	require.NoError(t, os.WriteFile(filepath.Join(root, "out", "main.pdf"), []byte("pdf"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".quire", "debug.log"), []byte("log"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scratch.tmp"), []byte("tmp"), 0o600))
	kept := filepath.Join(root, "kept.qd")
	require.NoError(t, os.WriteFile(kept, []byte("text"), 0o600))

	for _, ev := range nextEvent(t, w, kept) {
		assert.Equal(t, kept, ev.Path, "unexpected event %+v", ev)
	}
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root)

	dir := filepath.Join(root, "chapters")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	nextEvent(t, w, dir)

	path := filepath.Join(dir, "one.qd")
	require.NoError(t, os.WriteFile(path, []byte("= One"), 0o600))
	nextEvent(t, w, path)
}
