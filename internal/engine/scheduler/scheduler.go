// Package scheduler runs one export round: it configures a compute graph for
// a snapshot, establishes the compilation flags and fans out export pipelines.
package scheduler

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/compile"
	"go.trai.ch/quire/internal/engine/export"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task wrote its output.
	StatusCompleted TaskStatus = "Completed"
	// StatusSkipped indicates the task had nothing to write this round.
	StatusSkipped TaskStatus = "Skipped"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
)

// RoundSpec describes one export round.
type RoundSpec struct {
	// ID identifies the round. A random one is generated when empty.
	ID       string
	Snapshot graph.Snapshot
	// Root is the project root the export ledger is kept for.
	Root  string
	Tasks []domain.ProjectTask
	// Diagnostics defaults to domain.DefaultDiagnosticsPolicy when zero.
	Diagnostics domain.DiagnosticsPolicy
	// Parallelism bounds concurrent pipelines. Zero uses the number of CPUs.
	Parallelism int
}

// RoundResult is the outcome of a round.
type RoundResult struct {
	ID string
	// Compiled reports whether any document variant was compiled.
	Compiled bool
	// Reports holds one report per task, in task order.
	Reports []domain.ExportReport
}

// Scheduler runs export rounds.
type Scheduler struct {
	compilation *compile.Compilation
	pipeline    *export.Pipeline
	ledger      ports.ExportLedger
	tracer      ports.Tracer
	logger      ports.Logger

	mu         sync.RWMutex
	taskStatus map[string]TaskStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	compilation *compile.Compilation,
	pipeline *export.Pipeline,
	ledger ports.ExportLedger,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		compilation: compilation,
		pipeline:    pipeline,
		ledger:      ledger,
		tracer:      tracer,
		logger:      logger,
		taskStatus:  make(map[string]TaskStatus),
	}
}

// initTaskStatuses initializes the status of tasks to Pending.
func (s *Scheduler) initTaskStatuses(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		s.taskStatus[id] = StatusPending
	}
}

// updateStatus updates the status of a task.
func (s *Scheduler) updateStatus(id string, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskStatus[id] = status
}

// Status returns the status of a task in the most recent round that included it.
func (s *Scheduler) Status(id string) TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taskStatus[id]
}

// Run executes one round. Failed tasks do not stop the others; their errors
// are joined into the returned error, which also carries ctx's error if the
// round was abandoned.
func (s *Scheduler) Run(ctx context.Context, spec RoundSpec) (RoundResult, error) {
	if spec.ID == "" {
		spec.ID = uuid.New().String()
	}
	parallelism := spec.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if spec.Diagnostics == (domain.DiagnosticsPolicy{}) {
		spec.Diagnostics = domain.DefaultDiagnosticsPolicy()
	}
	res := RoundResult{ID: spec.ID, Reports: make([]domain.ExportReport, len(spec.Tasks))}

	root := graph.New(spec.Snapshot)
	graph.ProvideConfig(root, spec.Diagnostics)
	graph.ProvideConfig(root, compile.Tasks(spec.Tasks))

	ids := make([]string, len(spec.Tasks))
	for i, task := range spec.Tasks {
		ids[i] = task.TaskID()
	}
	s.initTaskStatuses(ids)
	s.tracer.EmitPlan(ctx, ids)

	compiled, err := s.compile(ctx, root, spec.ID)
	if err != nil {
		return res, err
	}
	res.Compiled = compiled

	var (
		mu   sync.Mutex
		errs error
		eg   errgroup.Group
	)
	eg.SetLimit(parallelism)
	for i, task := range spec.Tasks {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			report, err := s.executeTask(ctx, root, spec, task)
			res.Reports[i] = report
			if err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	if ctx.Err() != nil {
		errs = errors.Join(errs, ctx.Err())
	}
	return res, errs
}

// compile establishes the compilation flags and collects diagnostics before
// any pipeline reads a document.
func (s *Scheduler) compile(ctx context.Context, root *graph.Graph, roundID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, domain.SpanCompile,
		ports.WithAttribute(domain.AttrRound, roundID),
		ports.WithAttribute(domain.AttrRevision, root.Snapshot().Revision()),
	)
	defer span.End()

	compiled, err := graph.Compute(ctx, root, s.compilation.Project())
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	span.SetAttribute(domain.AttrCompiled, compiled)
	return compiled, nil
}

func (s *Scheduler) executeTask(
	ctx context.Context,
	root *graph.Graph,
	spec RoundSpec,
	task domain.ProjectTask,
) (domain.ExportReport, error) {
	id := task.TaskID()
	s.updateStatus(id, StatusRunning)

	ctx, span := s.tracer.Start(ctx, id, ports.WithAttribute(domain.AttrKind, string(task.Kind())))
	defer span.End()

	fork := root.Fork()
	graph.ProvideConfig(fork, task)

	report, err := graph.Compute(ctx, fork, s.pipeline.Node())
	if err == nil && report.Written() {
		err = s.record(spec, report)
	}
	if err != nil {
		span.RecordError(err)
		s.updateStatus(id, StatusFailed)
		return report, zerr.With(zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error()), "task", id)
	}

	if !report.Written() {
		span.SetAttribute(domain.AttrSkipped, string(report.Skipped))
		s.updateStatus(id, StatusSkipped)
		return report, nil
	}

	span.SetAttribute(domain.AttrPath, report.Path)
	s.updateStatus(id, StatusCompleted)
	return report, nil
}

func (s *Scheduler) record(spec RoundSpec, report domain.ExportReport) error {
	if s.ledger == nil || spec.Root == "" {
		return nil
	}
	err := s.ledger.Put(spec.Root, domain.ExportRecord{
		TaskID:    report.TaskID,
		Kind:      report.Kind,
		Path:      report.Path,
		Digest:    report.Digest,
		Size:      report.Size,
		Revision:  spec.Snapshot.Revision(),
		RoundID:   spec.ID,
		Timestamp: time.Now(),
	})
	if err != nil {
		return zerr.Wrap(err, "failed to record export")
	}
	return nil
}
