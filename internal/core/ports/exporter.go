package ports

import (
	"context"
	"image"

	"go.trai.ch/quire/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=exporter.go -destination=mocks/mock_exporter.go -package=mocks

// PageRenderer renders compiled documents into output formats.
type PageRenderer interface {
	// PDF renders every page of doc into a PDF file.
	PDF(ctx context.Context, doc *domain.Document, opts PDFOptions) ([]byte, error)
	// RasterizePage renders one page at ppi pixels per inch on a fill background.
	RasterizePage(ctx context.Context, doc *domain.Document, page domain.Page, ppi float64, fill string) (image.Image, error)
	// SVGPage renders one page as a standalone SVG document.
	SVGPage(ctx context.Context, doc *domain.Document, page domain.Page) (string, error)
	// HTML renders an HTML-variant document.
	HTML(ctx context.Context, doc *domain.Document) (string, error)
	// Text extracts the plain text of doc.
	Text(ctx context.Context, doc *domain.Document) (string, error)
}

// PDFOptions configure PDF rendering.
type PDFOptions struct {
	Standards []domain.PDFStandard
	// CreationTimestamp is the creation date in UNIX seconds. Nil uses the current time.
	CreationTimestamp *int64
}

// MarkupConverter converts the sources of a world into another markup language.
type MarkupConverter interface {
	Convert(ctx context.Context, world World, format domain.MarkupFormat) (string, error)
}

// PathSubstituter expands output path patterns.
type PathSubstituter interface {
	// Substitute expands pattern against entry. It reports false when the
	// pattern cannot be resolved, which disables the export.
	Substitute(pattern domain.PathPattern, entry domain.EntryState) (string, bool)
}

// ArtifactWriter persists exported artifacts.
type ArtifactWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// ScriptHost runs transform scripts over exported bytes.
type ScriptHost interface {
	// Transform runs script with input on stdin and returns its stdout.
	Transform(ctx context.Context, script string, input []byte, env map[string]string) ([]byte, error)
}
