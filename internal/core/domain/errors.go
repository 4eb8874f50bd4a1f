package domain

import "go.trai.ch/zerr"

var (
	// ErrNodeNotProvided is returned by MustGet when a node was never provided or computed.
	ErrNodeNotProvided = zerr.New("node not provided")

	// ErrConfigNotProvided is returned when a required configuration slot is empty.
	ErrConfigNotProvided = zerr.New("configuration not provided")

	// ErrNodeTypeMismatch is returned when a slot holds a value of a different type than requested.
	ErrNodeTypeMismatch = zerr.New("node value has unexpected type")

	// ErrUnknownTaskWhen is returned when a trigger policy value is not recognized.
	ErrUnknownTaskWhen = zerr.New("unknown trigger policy")

	// ErrDocumentRequired is returned when a trigger policy needs a compiled document to decide.
	ErrDocumentRequired = zerr.New("trigger policy requires a compiled document")

	// ErrUnknownTaskType is returned when a task definition carries an unknown type tag.
	ErrUnknownTaskType = zerr.New("unknown task type")

	// ErrMissingTaskType is returned when a task definition has no type tag.
	ErrMissingTaskType = zerr.New("missing task type")

	// ErrInvalidTransform is returned when an export transform does not name exactly one operation.
	ErrInvalidTransform = zerr.New("export transform must specify exactly one operation")

	// ErrInvalidPageRange is returned when a page range cannot be parsed.
	ErrInvalidPageRange = zerr.New("invalid page range")

	// ErrInvalidColor is returned when a fill colour cannot be parsed.
	ErrInvalidColor = zerr.New("invalid colour")

	// ErrInvalidTaskID is returned when a task has an empty or malformed identifier.
	ErrInvalidTaskID = zerr.New("invalid task id")

	// ErrDuplicateTaskID is returned when two tasks share the same identifier.
	ErrDuplicateTaskID = zerr.New("duplicate task id")

	// ErrTaskNotFound is returned when a requested task is not configured.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrTaskNotSupported is returned when a task kind is not handled by the export pipeline.
	ErrTaskNotSupported = zerr.New("task kind is not supported by the export pipeline")

	// ErrNoPagesSelected is returned when page selection leaves no pages to export.
	ErrNoPagesSelected = zerr.New("no pages selected")

	// ErrMultiplePages is returned when a single-image export receives several pages without a merge transform.
	ErrMultiplePages = zerr.New("multiple pages selected, add a merge transform or select a single page")

	// ErrUnsupportedPDFStandard is returned when the renderer cannot honour a requested PDF standard.
	ErrUnsupportedPDFStandard = zerr.New("unsupported pdf standard")

	// ErrRenderFailed is returned when rendering a document fails.
	ErrRenderFailed = zerr.New("failed to render document")

	// ErrForeignDocument is returned when a renderer receives a document compiled by another compiler.
	ErrForeignDocument = zerr.New("document was not produced by this compiler")

	// ErrConvertFailed is returned when markup conversion fails.
	ErrConvertFailed = zerr.New("failed to convert document")

	// ErrScriptFailed is returned when a transform script exits unsuccessfully.
	ErrScriptFailed = zerr.New("transform script failed")

	// ErrWriteFailed is returned when an exported artifact cannot be written.
	ErrWriteFailed = zerr.New("failed to write output")

	// ErrCompileFailed is returned when the document compiler reports errors.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrEntryNotFound is returned when the project entry file cannot be read.
	ErrEntryNotFound = zerr.New("entry file not found")

	// ErrLedgerReadFailed is returned when the export ledger cannot be read.
	ErrLedgerReadFailed = zerr.New("failed to read export ledger")

	// ErrLedgerWriteFailed is returned when the export ledger cannot be written.
	ErrLedgerWriteFailed = zerr.New("failed to write export ledger")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find quire.yaml")

	// ErrSettingsLoadFailed is returned when tool settings cannot be loaded.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")

	// ErrExportFailed is returned when one or more exports of a round fail.
	ErrExportFailed = zerr.New("export failed")

	// ErrTaskExecutionFailed is returned when a single export task fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")
)
