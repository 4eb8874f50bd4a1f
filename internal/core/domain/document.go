package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Variant identifies the layout a document was compiled for.
type Variant uint8

const (
	// VariantPaged is a fixed-layout document split into pages.
	VariantPaged Variant = iota
	// VariantHTML is a continuous web layout.
	VariantHTML
)

// String returns the name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantPaged:
		return "paged"
	case VariantHTML:
		return "html"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// Document is the compiled form of a project entry.
// Content and Page.Frame are compiler payloads the engine never inspects.
type Document struct {
	Variant Variant
	Title   string
	Pages   []Page
	Content any
}

// Page is one page of a paged document. Dimensions are in points.
type Page struct {
	// Number is the 1-based page number in the full document.
	Number int
	Width  float64
	Height float64
	Frame  any
}

// WithPages returns a shallow copy of d restricted to pages.
func (d *Document) WithPages(pages []Page) *Document {
	c := *d
	c.Pages = pages
	return &c
}

// Severity classifies a diagnostic.
type Severity uint8

const (
	// SeverityWarning marks a non-fatal diagnostic.
	SeverityWarning Severity = iota
	// SeverityError marks a diagnostic that prevents a document from being produced.
	SeverityError
)

// String returns the name of the severity.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one message reported by the compiler.
type Diagnostic struct {
	Severity Severity
	Message  string
	Path     string
	Line     int
	Column   int
}

// String formats the diagnostic as path:line:col: severity: message.
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Path != "" {
		b.WriteString(d.Path)
		if d.Line > 0 {
			fmt.Fprintf(&b, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&b, ":%d", d.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// Diagnostics is an ordered list of compiler messages.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic is an error.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// EntryState describes the project root and the main file being compiled.
type EntryState struct {
	Root string
	// Main is the entry file relative to Root. Empty when no entry is active.
	Main string
}

// Active reports whether an entry file is selected.
func (e EntryState) Active() bool {
	return e.Root != "" && e.Main != ""
}

// MainPath returns the absolute path of the entry file.
func (e EntryState) MainPath() string {
	if !e.Active() {
		return ""
	}
	return filepath.Join(e.Root, e.Main)
}

// PathPattern is an output destination template.
// $root, $dir and $name expand to the project root, the entry directory and the entry file stem.
type PathPattern string

// MarkupFormat is a target of source-level markup conversion.
type MarkupFormat string

const (
	// MarkupMarkdown is CommonMark output.
	MarkupMarkdown MarkupFormat = "markdown"
	// MarkupTeX is LaTeX output.
	MarkupTeX MarkupFormat = "tex"
)
