package textdoc

import (
	"context"
	"strings"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// Page geometry in points. Pages are A4 with a uniform line grid.
const (
	pageWidth    = 595.0
	pageHeight   = 842.0
	margin       = 56.0
	lineHeight   = 15.0
	linesPerPage = 48
	wrapColumn   = 80
)

// line is one laid-out line of a page frame. Heading is 0 for body text.
type line struct {
	Text    string
	Heading int
}

// Compiler implements ports.Compiler for textdoc sources.
type Compiler struct {
	parser *parser
}

var _ ports.Compiler = (*Compiler)(nil)

// NewCompiler creates a Compiler.
func NewCompiler() *Compiler {
	return &Compiler{parser: newParser()}
}

// Compile implements ports.Compiler.
func (c *Compiler) Compile(
	ctx context.Context,
	world ports.World,
	variant domain.Variant,
) (*domain.Document, domain.Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	src, err := c.parser.load(world)
	if err != nil {
		entry := world.EntryState()
		diags := domain.Diagnostics{{Severity: domain.SeverityError, Message: "cannot read entry file", Path: entry.Main}}
		return nil, diags, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "entry", entry.Main)
	}
	if src.diags.HasErrors() {
		return nil, src.diags, zerr.With(domain.ErrCompileFailed, "diagnostics", len(src.diags))
	}

	doc := &domain.Document{
		Variant: variant,
		Title:   src.title,
		Content: src.blocks,
	}
	if variant == domain.VariantPaged {
		doc.Pages = layout(src.blocks)
	}
	return doc, src.diags, nil
}

// layout flows blocks onto pages. A document always has at least one page.
func layout(blocks []block) []domain.Page {
	var (
		pages   []domain.Page
		current []line
	)
	newPage := func() {
		for len(current) > 0 && current[len(current)-1].Text == "" && current[len(current)-1].Heading == 0 {
			current = current[:len(current)-1]
		}
		pages = append(pages, domain.Page{
			Number: len(pages) + 1,
			Width:  pageWidth,
			Height: pageHeight,
			Frame:  current,
		})
		current = nil
	}
	emit := func(l line) {
		if len(current) == 0 && l.Text == "" && l.Heading == 0 {
			return
		}
		if len(current) == linesPerPage {
			newPage()
			if l.Text == "" && l.Heading == 0 {
				return
			}
		}
		current = append(current, l)
	}

	for _, b := range blocks {
		switch b.kind {
		case blockPageBreak:
			newPage()
		case blockHeading:
			emit(line{Text: b.text, Heading: b.level})
			emit(line{})
		case blockParagraph:
			for _, text := range wrap(b.text, wrapColumn) {
				emit(line{Text: text})
			}
			emit(line{})
		}
	}
	if len(current) > 0 || len(pages) == 0 {
		newPage()
	}
	return pages
}

// wrap breaks text into lines of at most width runes, splitting at spaces
// where possible.
func wrap(text string, width int) []string {
	var (
		lines []string
		cur   []rune
	)
	for word := range strings.FieldsSeq(text) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			lines = append(lines, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// frame returns the laid-out lines of page.
func frame(page domain.Page) ([]line, error) {
	if page.Frame == nil {
		return nil, nil
	}
	lines, ok := page.Frame.([]line)
	if !ok {
		return nil, zerr.With(domain.ErrForeignDocument, "page", page.Number)
	}
	return lines, nil
}

// content returns the block list of doc.
func content(doc *domain.Document) ([]block, error) {
	blocks, ok := doc.Content.([]block)
	if !ok && doc.Content != nil {
		return nil, domain.ErrForeignDocument
	}
	return blocks, nil
}
