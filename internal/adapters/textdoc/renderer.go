package textdoc

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	fontFamily  = "Helvetica"
	bodySize    = 11.0
	headingSize = 14.0
)

// Renderer implements ports.PageRenderer for documents produced by Compiler.
type Renderer struct {
	now func() time.Time
}

var _ ports.PageRenderer = (*Renderer)(nil)

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

func fontSize(l line) float64 {
	if l.Heading > 0 {
		return headingSize
	}
	return bodySize
}

// baseline returns the y coordinate of the i-th line of a page, in points.
func baseline(i int) float64 {
	return margin + float64(i+1)*lineHeight
}

// PDF implements ports.PageRenderer. Only plain PDF 1.7 output is supported.
func (r *Renderer) PDF(ctx context.Context, doc *domain.Document, opts ports.PDFOptions) ([]byte, error) {
	for _, standard := range opts.Standards {
		if standard != domain.PDF17 {
			return nil, zerr.With(domain.ErrUnsupportedPDFStandard, "standard", string(standard))
		}
	}

	created := r.now()
	if opts.CreationTimestamp != nil {
		created = time.Unix(*opts.CreationTimestamp, 0).UTC()
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("quire", true)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.SetAutoPageBreak(false, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, err := frame(page)
		if err != nil {
			return nil, err
		}

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		for i, l := range lines {
			style := ""
			if l.Heading > 0 {
				style = "B"
			}
			pdf.SetFont(fontFamily, style, fontSize(l))
			pdf.Text(margin, baseline(i), tr(l.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, zerr.Wrap(err, "failed to write pdf")
	}
	return buf.Bytes(), nil
}

// RasterizePage implements ports.PageRenderer.
func (r *Renderer) RasterizePage(
	ctx context.Context,
	_ *domain.Document,
	page domain.Page,
	ppi float64,
	fill string,
) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := frame(page)
	if err != nil {
		return nil, err
	}

	scale := ppi / 72
	bounds := image.Rect(0, 0, int(math.Ceil(page.Width*scale)), int(math.Ceil(page.Height*scale)))
	img := image.NewRGBA(bounds)
	if fill != "" {
		bg, err := domain.ParseColor(fill)
		if err != nil {
			return nil, err
		}
		draw.Draw(img, bounds, image.NewUniform(bg), image.Point{}, draw.Src)
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i, l := range lines {
		d.Dot = fixed.P(int(margin*scale), int(baseline(i)*scale))
		d.DrawString(l.Text)
	}
	return img, nil
}

// SVGPage implements ports.PageRenderer.
func (r *Renderer) SVGPage(ctx context.Context, _ *domain.Document, page domain.Page) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines, err := frame(page)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%gpt" height="%gpt" viewBox="0 0 %g %g">`+"\n",
		page.Width, page.Height, page.Width, page.Height)
	for i, l := range lines {
		if l.Text == "" {
			continue
		}
		weight := ""
		if l.Heading > 0 {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-family="%s" font-size="%g"%s>`,
			margin, baseline(i), fontFamily, fontSize(l), weight)
		if err := xml.EscapeText(&b, []byte(l.Text)); err != nil {
			return "", err
		}
		b.WriteString("</text>\n")
	}
	b.WriteString("</svg>\n")
	return b.String(), nil
}

// HTML implements ports.PageRenderer.
func (r *Renderer) HTML(ctx context.Context, doc *domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	blocks, err := content(doc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(doc.Title))
	b.WriteString("</head>\n<body>\n")
	for _, blk := range blocks {
		switch blk.kind {
		case blockHeading:
			level := min(blk.level, 6)
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, html.EscapeString(blk.text), level)
		case blockParagraph:
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(blk.text))
		case blockPageBreak:
			b.WriteString("<hr>\n")
		}
	}
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// Text implements ports.PageRenderer.
func (r *Renderer) Text(ctx context.Context, doc *domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	blocks, err := content(doc)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(blocks)+1)
	if doc.Title != "" {
		parts = append(parts, doc.Title)
	}
	for _, blk := range blocks {
		if blk.kind == blockHeading || blk.kind == blockParagraph {
			parts = append(parts, blk.text)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
