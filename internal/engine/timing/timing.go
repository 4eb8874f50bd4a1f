// Package timing decides whether a trigger policy asks for work in a round.
package timing

import (
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/zerr"
)

// Evaluate reports whether a task with policy when should run for signal.
// doc is only consulted by policies that inspect the compiled document and may be nil otherwise.
func Evaluate(signal domain.ExportSignal, when domain.TaskWhen, doc *domain.Document) (bool, error) {
	switch when {
	case domain.WhenUnset:
		return true, nil
	case domain.WhenNever:
		return signal.Explicit, nil
	case domain.WhenOnType:
		return true, nil
	case domain.WhenOnSave:
		return signal.Explicit || signal.ByFsEvents, nil
	case domain.WhenScript:
		return signal.Explicit || signal.ByScript, nil
	case domain.WhenOnDocumentHasTitle:
		if !signal.Explicit && !signal.ByFsEvents {
			return false, nil
		}
		if doc == nil {
			return false, domain.ErrDocumentRequired
		}
		return doc.Title != "", nil
	default:
		return false, zerr.With(domain.ErrUnknownTaskWhen, "when", string(when))
	}
}

// NeedsRun evaluates when against the snapshot's signal.
// It fails open: any evaluation error yields true so work is never silently dropped.
func NeedsRun(snap graph.Snapshot, when domain.TaskWhen, doc *domain.Document) bool {
	run, err := Evaluate(snap.Signal, when, doc)
	if err != nil {
		return true
	}
	return run
}
