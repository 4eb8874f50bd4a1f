// Package app implements the application layer for quire.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"go.trai.ch/quire/internal/adapters/watcher"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/quire/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// RoundRunner executes export rounds.
type RoundRunner interface {
	Run(ctx context.Context, spec scheduler.RoundSpec) (scheduler.RoundResult, error)
}

// logConfigurer is implemented by loggers whose output can be reconfigured from settings.
type logConfigurer interface {
	SetJSON(enable bool)
	SetDebugFile(path string) error
}

// App represents the main application logic.
type App struct {
	loader   ports.ProjectLoader
	settings ports.SettingsLoader
	worlds   ports.WorldFactory
	runner   RoundRunner
	ledger   ports.ExportLedger
	watcher  ports.Watcher
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ProjectLoader,
	settings ports.SettingsLoader,
	worlds ports.WorldFactory,
	runner RoundRunner,
	ledger ports.ExportLedger,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		settings: settings,
		worlds:   worlds,
		runner:   runner,
		ledger:   ledger,
		watcher:  w,
		logger:   log,
	}
}

// ExportOptions configuration for the Export method.
type ExportOptions struct {
	// Dir is where the project file search starts. Defaults to ".".
	Dir string
	// Tasks restricts the round to the named tasks. Empty selects all.
	Tasks []string
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Dir   string
	Tasks []string
	// Ignore holds extra gitignore patterns excluded from watching.
	Ignore []string
}

// Export runs one explicit round over the selected tasks.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	project, settings, err := a.prepare(opts.Dir)
	if err != nil {
		return err
	}

	tasks, err := project.SelectTasks(opts.Tasks)
	if err != nil {
		return err
	}

	res, err := a.round(ctx, project, settings, tasks, domain.ExplicitSignal())
	a.report(res.Reports)
	if err != nil {
		return errors.Join(domain.ErrExportFailed, err)
	}
	return nil
}

// Watch runs a round on start and after every quiet period following a
// change to the project sources, until ctx is cancelled. A new round
// cancels the one it supersedes.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	project, settings, err := a.prepare(opts.Dir)
	if err != nil {
		return err
	}
	if _, err := project.SelectTasks(opts.Tasks); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, project.Root, opts.Ignore); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	var outputs outputSet
	pending := make(chan struct{}, 1)
	trigger := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}

	debouncer := watcher.NewDebouncer(settings.Debounce, func(paths []string) {
		for _, p := range paths {
			if !outputs.has(p) {
				trigger()
				return
			}
		}
	})
	defer debouncer.Stop()

	go func() {
		for ev := range a.watcher.Events() {
			debouncer.Add(ev.Path)
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s", project.Root))
	trigger()

	var (
		cancel context.CancelFunc
		done   chan struct{}
	)
	supersede := func() {
		if cancel != nil {
			cancel()
			<-done
		}
	}
	defer supersede()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			supersede()
			roundCtx, roundCancel := context.WithCancel(ctx)
			cancel = roundCancel
			done = make(chan struct{})
			go func(done chan struct{}) {
				defer close(done)
				a.watchRound(roundCtx, project.Root, opts.Tasks, &outputs)
			}(done)
		}
	}
}

// watchRound reloads the project so configuration edits apply, then runs a
// file-event round. Failures are logged; the watch continues.
func (a *App) watchRound(ctx context.Context, root string, ids []string, outputs *outputSet) {
	project, err := a.loader.Load(root)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to load configuration"))
		return
	}
	tasks, err := project.SelectTasks(ids)
	if err != nil {
		a.logger.Error(err)
		return
	}
	settings, err := a.settings.Load(project.Root)
	if err != nil {
		a.logger.Error(err)
		return
	}

	signal := domain.ExportSignal{ByFsEvents: true}
	res, err := a.round(ctx, project, settings, tasks, signal)
	for _, r := range res.Reports {
		if r.Written() {
			outputs.add(r.Path)
		}
	}
	a.report(res.Reports)

	switch {
	case err == nil:
	case ctx.Err() != nil:
		a.logger.Debug(fmt.Sprintf("round %s superseded", res.ID))
	default:
		a.logger.Error(errors.Join(domain.ErrExportFailed, err))
	}
}

// Status writes the last recorded export of every task to w.
func (a *App) Status(_ context.Context, dir string, w io.Writer) error {
	project, err := a.loader.Load(defaultDir(dir))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	records, err := a.ledger.List(project.Root)
	if err != nil {
		return err
	}
	byID := make(map[string]domain.ExportRecord, len(records))
	for _, r := range records {
		byID[r.TaskID] = r
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TASK\tKIND\tPATH\tSIZE\tREVISION\tEXPORTED")
	for _, task := range project.Tasks {
		r, ok := byID[task.TaskID()]
		if !ok {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\tnever\n", task.TaskID(), task.Kind())
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.TaskID, r.Kind, relPath(project.Root, r.Path), r.Size, shortRevision(r.Revision),
			r.Timestamp.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// prepare loads the project and settings and applies the log settings.
func (a *App) prepare(dir string) (*domain.Project, domain.Settings, error) {
	project, err := a.loader.Load(defaultDir(dir))
	if err != nil {
		return nil, domain.Settings{}, zerr.Wrap(err, "failed to load configuration")
	}

	settings, err := a.settings.Load(project.Root)
	if err != nil {
		return nil, domain.Settings{}, err
	}

	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetJSON(settings.Log.JSON)
		if settings.Log.DebugFile != "" {
			if err := lc.SetDebugFile(settings.Log.DebugFile); err != nil {
				a.logger.Warn(fmt.Sprintf("debug log disabled: %v", err))
			}
		}
	}
	return project, settings, nil
}

func (a *App) round(
	ctx context.Context,
	project *domain.Project,
	settings domain.Settings,
	tasks []domain.ProjectTask,
	signal domain.ExportSignal,
) (scheduler.RoundResult, error) {
	world, err := a.worlds.Snapshot(project)
	if err != nil {
		return scheduler.RoundResult{}, err
	}

	return a.runner.Run(ctx, scheduler.RoundSpec{
		Snapshot:    graph.Snapshot{World: world, Signal: signal},
		Root:        project.Root,
		Tasks:       tasks,
		Diagnostics: project.Diagnostics,
		Parallelism: settings.Parallelism,
	})
}

func (a *App) report(reports []domain.ExportReport) {
	for _, r := range reports {
		switch {
		case r.TaskID == "":
		case r.Written():
			a.logger.Info(fmt.Sprintf("exported %s to %s (%d bytes)", r.TaskID, r.Path, r.Size))
		default:
			a.logger.Debug(fmt.Sprintf("skipped %s: %s", r.TaskID, r.Skipped))
		}
	}
}

func defaultDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

func shortRevision(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}

// outputSet holds the paths written by watch rounds so their events do not
// trigger another round. The temporary files the artifact writer renames into
// place are matched too.
type outputSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (s *outputSet) add(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paths == nil {
		s.paths = make(map[string]struct{})
	}
	s.paths[filepath.Clean(path)] = struct{}{}
}

func (s *outputSet) has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	path = filepath.Clean(path)
	if _, ok := s.paths[path]; ok {
		return true
	}
	dir, base := filepath.Split(path)
	if !strings.HasPrefix(base, ".") {
		return false
	}
	for out := range s.paths {
		if filepath.Dir(out) == filepath.Clean(dir) && strings.HasPrefix(base, "."+filepath.Base(out)+".") {
			return true
		}
	}
	return false
}
