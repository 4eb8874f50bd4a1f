package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/quire/internal/engine/graph"
	"go.trai.ch/zerr"
)

// Strategy turns a compiled document into the output of one task kind.
type Strategy interface {
	Kind() domain.TaskKind
	// Variant is the document variant the strategy consumes.
	Variant() domain.Variant
	Run(ctx context.Context, g *graph.Graph, doc *domain.Document, task domain.ProjectTask) ([]byte, error)
}

// StrategyFor returns the strategy exporting tasks of kind.
// Kinds that are not rendered from a document report false.
func StrategyFor(kind domain.TaskKind, renderer ports.PageRenderer) (Strategy, bool) {
	switch kind {
	case domain.KindExportPDF:
		return PDFStrategy{renderer: renderer}, true
	case domain.KindExportPNG:
		return PNGStrategy{renderer: renderer}, true
	case domain.KindExportSVG:
		return SVGStrategy{renderer: renderer}, true
	case domain.KindExportHTML:
		return HTMLStrategy{renderer: renderer}, true
	case domain.KindExportText:
		return TextStrategy{renderer: renderer}, true
	default:
		return nil, false
	}
}

func renderFailed(err error, kind domain.TaskKind) error {
	return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "kind", string(kind))
}

func unexpectedTask(want domain.TaskKind, task domain.ProjectTask) error {
	return zerr.With(zerr.With(domain.ErrTaskNotSupported, "kind", string(task.Kind())), "strategy", string(want))
}

// selection applies the page transforms of spec to the pages of doc.
// It returns the selected pages and the merge transform, if any.
func selection(doc *domain.Document, spec *domain.ExportTask) ([]domain.Page, *domain.MergeTransform, error) {
	pages := doc.Pages
	var merge *domain.MergeTransform
	for _, tr := range spec.Transform {
		switch {
		case tr.Pages != nil:
			pages = domain.SelectPages(pages, tr.Pages.Ranges)
		case tr.Merge != nil:
			merge = tr.Merge
		}
	}
	if len(pages) == 0 {
		return nil, nil, zerr.With(domain.ErrNoPagesSelected, "task_id", spec.ID)
	}
	return pages, merge, nil
}

// singleImage returns the pages of a one-image export: either one page or a merge.
func singleImage(doc *domain.Document, spec *domain.ExportTask) ([]domain.Page, *domain.MergeTransform, error) {
	pages, merge, err := selection(doc, spec)
	if err != nil {
		return nil, nil, err
	}
	if merge == nil && len(pages) > 1 {
		return nil, nil, zerr.With(domain.ErrMultiplePages, "pages", len(pages))
	}
	return pages, merge, nil
}

// PDFStrategy exports a fixed-layout PDF document.
type PDFStrategy struct {
	renderer ports.PageRenderer
}

// Kind implements Strategy.
func (PDFStrategy) Kind() domain.TaskKind { return domain.KindExportPDF }

// Variant implements Strategy.
func (PDFStrategy) Variant() domain.Variant { return domain.VariantPaged }

// Run implements Strategy.
func (s PDFStrategy) Run(ctx context.Context, _ *graph.Graph, doc *domain.Document, task domain.ProjectTask) ([]byte, error) {
	pdfTask, ok := task.(domain.ExportPDFTask)
	if !ok {
		return nil, unexpectedTask(s.Kind(), task)
	}
	pages, _, err := selection(doc, &pdfTask.ExportTask)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.PDF(ctx, doc.WithPages(pages), ports.PDFOptions{
		Standards:         pdfTask.PDFStandards,
		CreationTimestamp: pdfTask.CreationTimestamp,
	})
	if err != nil {
		return nil, renderFailed(err, s.Kind())
	}
	return data, nil
}

// PNGStrategy exports one page, or all selected pages merged, as a PNG image.
type PNGStrategy struct {
	renderer ports.PageRenderer
}

// Kind implements Strategy.
func (PNGStrategy) Kind() domain.TaskKind { return domain.KindExportPNG }

// Variant implements Strategy.
func (PNGStrategy) Variant() domain.Variant { return domain.VariantPaged }

// Run implements Strategy.
func (s PNGStrategy) Run(ctx context.Context, _ *graph.Graph, doc *domain.Document, task domain.ProjectTask) ([]byte, error) {
	pngTask, ok := task.(domain.ExportPNGTask)
	if !ok {
		return nil, unexpectedTask(s.Kind(), task)
	}
	pages, merge, err := singleImage(doc, &pngTask.ExportTask)
	if err != nil {
		return nil, err
	}

	fill := image.Image(image.Transparent)
	if pngTask.Fill != "" {
		c, err := domain.ParseColor(pngTask.Fill)
		if err != nil {
			return nil, err
		}
		fill = image.NewUniform(c)
	}

	ppi := pngTask.EffectivePPI()
	images := make([]image.Image, 0, len(pages))
	for _, page := range pages {
		img, err := s.renderer.RasterizePage(ctx, doc, page, ppi, pngTask.Fill)
		if err != nil {
			return nil, renderFailed(err, s.Kind())
		}
		images = append(images, img)
	}

	out := images[0]
	if merge != nil {
		gap := int(math.Round(merge.Gap * ppi / 72))
		out = stackImages(images, gap, fill)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, renderFailed(err, s.Kind())
	}
	return buf.Bytes(), nil
}

// stackImages draws images top to bottom, separated by gap pixels, on a fill background.
func stackImages(images []image.Image, gap int, fill image.Image) image.Image {
	width, height := 0, gap*(len(images)-1)
	for _, img := range images {
		b := img.Bounds()
		width = max(width, b.Dx())
		height += b.Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), fill, image.Point{}, draw.Src)

	y := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
		y += b.Dy() + gap
	}
	return canvas
}

// SVGStrategy exports one page, or all selected pages merged, as an SVG image.
type SVGStrategy struct {
	renderer ports.PageRenderer
}

// Kind implements Strategy.
func (SVGStrategy) Kind() domain.TaskKind { return domain.KindExportSVG }

// Variant implements Strategy.
func (SVGStrategy) Variant() domain.Variant { return domain.VariantPaged }

// Run implements Strategy.
func (s SVGStrategy) Run(ctx context.Context, _ *graph.Graph, doc *domain.Document, task domain.ProjectTask) ([]byte, error) {
	svgTask, ok := task.(domain.ExportSVGTask)
	if !ok {
		return nil, unexpectedTask(s.Kind(), task)
	}
	pages, merge, err := singleImage(doc, &svgTask.ExportTask)
	if err != nil {
		return nil, err
	}

	if merge == nil {
		out, err := s.renderer.SVGPage(ctx, doc, pages[0])
		if err != nil {
			return nil, renderFailed(err, s.Kind())
		}
		return []byte(out), nil
	}

	width, height := 0.0, merge.Gap*float64(len(pages)-1)
	for _, page := range pages {
		width = max(width, page.Width)
		height += page.Height
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%gpt" height="%gpt" viewBox="0 0 %g %g">`,
		width, height, width, height)
	b.WriteByte('\n')
	y := 0.0
	for _, page := range pages {
		out, err := s.renderer.SVGPage(ctx, doc, page)
		if err != nil {
			return nil, renderFailed(err, s.Kind())
		}
		fmt.Fprintf(&b, "<g transform=\"translate(0 %g)\">\n%s\n</g>\n", y, stripXMLHeader(out))
		y += page.Height + merge.Gap
	}
	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

func stripXMLHeader(svg string) string {
	svg = strings.TrimSpace(svg)
	if strings.HasPrefix(svg, "<?xml") {
		if end := strings.Index(svg, "?>"); end >= 0 {
			svg = strings.TrimSpace(svg[end+2:])
		}
	}
	return svg
}

// HTMLStrategy exports the HTML variant of a document.
type HTMLStrategy struct {
	renderer ports.PageRenderer
}

// Kind implements Strategy.
func (HTMLStrategy) Kind() domain.TaskKind { return domain.KindExportHTML }

// Variant implements Strategy.
func (HTMLStrategy) Variant() domain.Variant { return domain.VariantHTML }

// Run implements Strategy.
func (s HTMLStrategy) Run(ctx context.Context, _ *graph.Graph, doc *domain.Document, _ domain.ProjectTask) ([]byte, error) {
	out, err := s.renderer.HTML(ctx, doc)
	if err != nil {
		return nil, renderFailed(err, s.Kind())
	}
	return []byte(out), nil
}

// TextStrategy exports the plain text of a document.
type TextStrategy struct {
	renderer ports.PageRenderer
}

// Kind implements Strategy.
func (TextStrategy) Kind() domain.TaskKind { return domain.KindExportText }

// Variant implements Strategy.
func (TextStrategy) Variant() domain.Variant { return domain.VariantPaged }

// Run implements Strategy.
func (s TextStrategy) Run(ctx context.Context, _ *graph.Graph, doc *domain.Document, _ domain.ProjectTask) ([]byte, error) {
	out, err := s.renderer.Text(ctx, doc)
	if err != nil {
		return nil, renderFailed(err, s.Kind())
	}
	return []byte(out), nil
}
