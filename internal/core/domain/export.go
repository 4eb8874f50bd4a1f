package domain

import "time"

// SkipReason explains why an export produced no file.
type SkipReason string

const (
	// SkipNone means the export was written.
	SkipNone SkipReason = ""
	// SkipNoOutput means no destination path could be resolved.
	SkipNoOutput SkipReason = "no-output"
	// SkipNotDue means the trigger policy did not ask for a run this round.
	SkipNotDue SkipReason = "not-due"
	// SkipNoDocument means the document was not compiled or failed to compile.
	SkipNoDocument SkipReason = "no-document"
)

// ExportReport is the outcome of one export pipeline run.
type ExportReport struct {
	TaskID  string
	Kind    TaskKind
	Path    string
	Size    int
	Digest  string
	Skipped SkipReason
}

// Written reports whether an artifact was written.
func (r ExportReport) Written() bool {
	return r.Skipped == SkipNone
}

// ExportRecord is the ledger entry of the last artifact written for a task.
type ExportRecord struct {
	TaskID    string    `json:"task_id,omitzero"`
	Kind      TaskKind  `json:"kind,omitzero"`
	Path      string    `json:"path,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Size      int       `json:"size,omitzero"`
	Revision  string    `json:"revision,omitzero"`
	RoundID   string    `json:"round_id,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
