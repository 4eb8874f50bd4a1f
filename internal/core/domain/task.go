package domain

import "strings"

// TaskKind is the type tag of a project task.
type TaskKind string

const (
	// KindPreview is a live preview task.
	KindPreview TaskKind = "preview"
	// KindExportPDF exports a fixed-layout PDF document.
	KindExportPDF TaskKind = "export-pdf"
	// KindExportPNG exports a raster image.
	KindExportPNG TaskKind = "export-png"
	// KindExportSVG exports a vector image.
	KindExportSVG TaskKind = "export-svg"
	// KindExportHTML exports web markup.
	KindExportHTML TaskKind = "export-html"
	// KindExportMarkdown converts the source to Markdown.
	KindExportMarkdown TaskKind = "export-markdown"
	// KindExportTeX converts the source to TeX.
	KindExportTeX TaskKind = "export-tex"
	// KindExportText exports plain text.
	KindExportText TaskKind = "export-text"
	// KindQuery runs a structured query against the document.
	KindQuery TaskKind = "query"
)

// Extension returns the default file extension produced by the kind, without a dot.
func (k TaskKind) Extension() string {
	switch k {
	case KindExportPDF:
		return "pdf"
	case KindExportPNG:
		return "png"
	case KindExportSVG:
		return "svg"
	case KindExportHTML:
		return "html"
	case KindExportMarkdown:
		return "md"
	case KindExportTeX:
		return "tex"
	case KindExportText:
		return "txt"
	default:
		return ""
	}
}

// Variant returns the document variant the kind consumes.
func (k TaskKind) Variant() Variant {
	if k == KindExportHTML {
		return VariantHTML
	}
	return VariantPaged
}

// ProjectTask is a task declared by a project. It is one of PreviewTask,
// ExportPDFTask, ExportPNGTask, ExportSVGTask, ExportHTMLTask,
// ExportMarkdownTask, ExportTeXTask, ExportTextTask or QueryTask.
type ProjectTask interface {
	Kind() TaskKind
	TaskID() string
	DocumentID() string
	Trigger() TaskWhen
	// Spec returns the shared export arguments, or nil for tasks that do not export.
	Spec() *ExportTask
}

// ExportTask holds the arguments shared by every exporting task.
type ExportTask struct {
	ID        string            `json:"id"`
	Document  string            `json:"document"`
	When      TaskWhen          `json:"when,omitempty"`
	Output    PathPattern       `json:"output,omitempty"`
	Transform []ExportTransform `json:"transform,omitempty"`
}

// TaskID returns the task identifier.
func (e ExportTask) TaskID() string { return e.ID }

// DocumentID returns the identifier of the document the task exports.
func (e ExportTask) DocumentID() string { return e.Document }

// Trigger returns the trigger policy.
func (e ExportTask) Trigger() TaskWhen { return e.When }

// Spec returns a pointer to a copy of the export arguments.
func (e ExportTask) Spec() *ExportTask { return &e }

// PageSelection chooses which pages single-image exports receive.
type PageSelection struct {
	// Merged merges all pages instead of picking the first one.
	Merged bool
	// Gap is the distance between merged pages, in points.
	Gap float64
}

// SelectPages appends the transform implementing selection.
func (e *ExportTask) SelectPages(selection PageSelection) {
	if selection.Merged {
		e.Transform = append(e.Transform, ExportTransform{Merge: &MergeTransform{Gap: selection.Gap}})
		return
	}
	e.Transform = append(e.Transform, ExportTransform{Pages: &PagesTransform{Ranges: []PageRange{FirstPage}}})
}

// ApplyPretty appends the built-in pretty printer.
func (e *ExportTask) ApplyPretty() {
	e.Transform = append(e.Transform, ExportTransform{Pretty: &PrettyTransform{}})
}

// PreviewTask opens a live preview of a document.
type PreviewTask struct {
	ID       string   `json:"id"`
	Document string   `json:"document"`
	When     TaskWhen `json:"when,omitempty"`
}

// Kind implements ProjectTask.
func (PreviewTask) Kind() TaskKind { return KindPreview }

// TaskID implements ProjectTask.
func (p PreviewTask) TaskID() string { return p.ID }

// DocumentID implements ProjectTask.
func (p PreviewTask) DocumentID() string { return p.Document }

// Trigger implements ProjectTask.
func (p PreviewTask) Trigger() TaskWhen { return p.When }

// Spec implements ProjectTask. Previews do not export.
func (PreviewTask) Spec() *ExportTask { return nil }

// PDFStandard is a PDF conformance level.
type PDFStandard string

const (
	// PDF17 is plain PDF 1.7.
	PDF17 PDFStandard = "1.7"
	// PDFA2b is PDF/A-2b.
	PDFA2b PDFStandard = "a-2b"
	// PDFA3b is PDF/A-3b.
	PDFA3b PDFStandard = "a-3b"
)

// ExportPDFTask exports a PDF document.
type ExportPDFTask struct {
	ExportTask
	PDFStandards []PDFStandard `json:"pdf-standards,omitempty"`
	// CreationTimestamp is the document creation date as UNIX seconds.
	CreationTimestamp *int64 `json:"creation-timestamp,omitempty"`
}

// Kind implements ProjectTask.
func (ExportPDFTask) Kind() TaskKind { return KindExportPDF }

// DefaultPPI is the resolution used for PNG exports that do not set one.
const DefaultPPI = 144.0

// ExportPNGTask exports a PNG image.
type ExportPNGTask struct {
	ExportTask
	PPI float64 `json:"ppi"`
	// Fill is the background colour, e.g. "#ffffff". Empty keeps the page transparent.
	Fill string `json:"fill,omitempty"`
}

// Kind implements ProjectTask.
func (ExportPNGTask) Kind() TaskKind { return KindExportPNG }

// EffectivePPI returns the configured resolution or DefaultPPI.
func (t ExportPNGTask) EffectivePPI() float64 {
	if t.PPI <= 0 {
		return DefaultPPI
	}
	return t.PPI
}

// ExportSVGTask exports an SVG image.
type ExportSVGTask struct {
	ExportTask
}

// Kind implements ProjectTask.
func (ExportSVGTask) Kind() TaskKind { return KindExportSVG }

// ExportHTMLTask exports an HTML page.
type ExportHTMLTask struct {
	ExportTask
}

// Kind implements ProjectTask.
func (ExportHTMLTask) Kind() TaskKind { return KindExportHTML }

// ExportMarkdownTask converts the source to Markdown.
type ExportMarkdownTask struct {
	ExportTask
	Processor  string `json:"processor,omitempty"`
	AssetsPath string `json:"assets-path,omitempty"`
}

// Kind implements ProjectTask.
func (ExportMarkdownTask) Kind() TaskKind { return KindExportMarkdown }

// ExportTeXTask converts the source to TeX.
type ExportTeXTask struct {
	ExportTask
	Processor  string `json:"processor,omitempty"`
	AssetsPath string `json:"assets-path,omitempty"`
}

// Kind implements ProjectTask.
func (ExportTeXTask) Kind() TaskKind { return KindExportTeX }

// ExportTextTask exports the plain text of the document.
type ExportTextTask struct {
	ExportTask
}

// Kind implements ProjectTask.
func (ExportTextTask) Kind() TaskKind { return KindExportText }

// QueryTask retrieves elements of the document.
type QueryTask struct {
	ExportTask
	// Format is the serialization format: json, yaml or txt.
	Format string `json:"format"`
	// OutputExtension overrides the extension derived from Format.
	OutputExtension string `json:"output-extension,omitempty"`
	Selector        string `json:"selector"`
	Field           string `json:"field,omitempty"`
	One             bool   `json:"one,omitempty"`
}

// Kind implements ProjectTask.
func (QueryTask) Kind() TaskKind { return KindQuery }

// Extension returns the output extension of the query result.
func (t QueryTask) Extension() string {
	if t.OutputExtension != "" {
		return strings.TrimPrefix(t.OutputExtension, ".")
	}
	return t.Format
}

var (
	_ ProjectTask = PreviewTask{}
	_ ProjectTask = ExportPDFTask{}
	_ ProjectTask = ExportPNGTask{}
	_ ProjectTask = ExportSVGTask{}
	_ ProjectTask = ExportHTMLTask{}
	_ ProjectTask = ExportMarkdownTask{}
	_ ProjectTask = ExportTeXTask{}
	_ ProjectTask = ExportTextTask{}
	_ ProjectTask = QueryTask{}
)
