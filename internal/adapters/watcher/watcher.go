// Package watcher implements file system watching of project sources.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	ignore "github.com/sabhiram/go-gitignore"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// defaultIgnores are always excluded from watching.
var defaultIgnores = []string{".git/", ".jj/", domain.QuireDirName + "/", "node_modules/"}

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	root      string
	matcher   *ignore.GitIgnore
	events    chan ports.WatchEvent
	stopOnce  sync.Once
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		logger:    logger,
		fsWatcher: fsw,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start watches root recursively. Paths matched by the root .gitignore, by
// patterns or by the built-in ignores produce no events.
func (w *Watcher) Start(ctx context.Context, root string, patterns []string) error {
	w.root = root
	w.matcher = compileMatcher(root, patterns)

	for dir := range w.directories(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)
	return nil
}

func compileMatcher(root string, patterns []string) *ignore.GitIgnore {
	lines := append(append([]string{}, defaultIgnores...), patterns...)
	gitignore := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignore); err == nil {
		if m, err := ignore.CompileIgnoreFileAndLines(gitignore, lines...); err == nil {
			return m
		}
	}
	return ignore.CompileIgnoreLines(lines...)
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of file system events. It ends when the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// ignored reports whether path is excluded. Directories are matched with a trailing slash.
func (w *Watcher) ignored(path string, isDir bool) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}
	return w.matcher.MatchesPath(rel)
}

// directories yields root and every non-ignored directory below it.
func (w *Watcher) directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if w.ignored(path, true) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("watcher: file system error: %v", err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	info, statErr := os.Stat(event.Name)
	isDir := statErr == nil && info.IsDir()
	if w.ignored(event.Name, isDir) {
		return
	}

	op, ok := convertOp(event.Op)
	if !ok {
		return
	}

	if op == ports.OpCreate && isDir {
		for dir := range w.directories(event.Name) {
			_ = w.fsWatcher.Add(dir)
		}
	}

	select {
	case w.events <- ports.WatchEvent{Path: event.Name, Operation: op}:
	case <-ctx.Done():
	}
}

func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
