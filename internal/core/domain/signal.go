package domain

// ExportSignal records what caused a compilation round.
type ExportSignal struct {
	// Explicit is set for a user-issued one-shot command.
	Explicit bool
	// ByScript is set for programmatic requests issued through the export command surface.
	ByScript bool
	// ByFsEvents is set when the round was triggered by files saved on disk.
	ByFsEvents bool
	// ByMemEvents is set when the round was triggered by unsaved edits.
	ByMemEvents bool
}

// ExplicitSignal is the signal of a user-issued export command.
func ExplicitSignal() ExportSignal {
	return ExportSignal{Explicit: true, ByScript: true}
}

// TaskWhen is a trigger policy deciding when an export task runs.
// The set of values is open: unknown values fail evaluation and are treated as "run".
type TaskWhen string

const (
	// WhenUnset means no policy was declared; the task always runs when asked.
	WhenUnset TaskWhen = ""
	// WhenNever runs the task only on explicit invocation.
	WhenNever TaskWhen = "never"
	// WhenOnType runs the task on every successful recompilation.
	WhenOnType TaskWhen = "on-type"
	// WhenOnSave runs the task when files are saved.
	WhenOnSave TaskWhen = "on-save"
	// WhenOnDocumentHasTitle runs the task on save, but only for documents with a title.
	WhenOnDocumentHasTitle TaskWhen = "on-document-has-title"
	// WhenScript runs the task only for explicit or scripted requests.
	WhenScript TaskWhen = "script"
)

// String returns the wire form of the policy.
func (w TaskWhen) String() string {
	if w == WhenUnset {
		return "unset"
	}
	return string(w)
}

// Known reports whether w is one of the recognised policies.
func (w TaskWhen) Known() bool {
	switch w {
	case WhenUnset, WhenNever, WhenOnType, WhenOnSave, WhenOnDocumentHasTitle, WhenScript:
		return true
	default:
		return false
	}
}

// DiagnosticsPolicy holds the two always-considered diagnostics policies per document variant.
type DiagnosticsPolicy struct {
	Paged VariantDiagnostics
	HTML  VariantDiagnostics
}

// VariantDiagnostics pairs the continuous and explicit-only diagnostics policy of a variant.
// A slot set to WhenNever switches diagnostics off for that slot: unlike an
// export task, it does not ask for a compilation on explicit rounds.
type VariantDiagnostics struct {
	Continuous TaskWhen
	Explicit   TaskWhen
}

// Policies returns the active policies in evaluation order.
func (v VariantDiagnostics) Policies() []TaskWhen {
	policies := make([]TaskWhen, 0, 2)
	for _, when := range []TaskWhen{v.Continuous, v.Explicit} {
		if when == WhenNever {
			continue
		}
		policies = append(policies, when)
	}
	return policies
}

// DefaultDiagnosticsPolicy returns the policy used when a project does not configure diagnostics.
// Paged documents are diagnosed while typing and on scripted requests; HTML documents never.
func DefaultDiagnosticsPolicy() DiagnosticsPolicy {
	return DiagnosticsPolicy{
		Paged: VariantDiagnostics{Continuous: WhenOnType, Explicit: WhenScript},
		HTML:  VariantDiagnostics{Continuous: WhenNever, Explicit: WhenNever},
	}
}
