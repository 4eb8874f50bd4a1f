package textdoc

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
)

// Converter implements ports.MarkupConverter by translating sources directly,
// without compiling them.
type Converter struct {
	parser *parser
}

var _ ports.MarkupConverter = (*Converter)(nil)

// NewConverter creates a Converter.
func NewConverter() *Converter {
	return &Converter{parser: newParser()}
}

// Convert implements ports.MarkupConverter.
func (c *Converter) Convert(ctx context.Context, world ports.World, format domain.MarkupFormat) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := c.parser.load(world)
	if err != nil {
		return "", err
	}
	if src.diags.HasErrors() {
		return "", zerr.With(domain.ErrCompileFailed, "diagnostics", len(src.diags))
	}

	switch format {
	case domain.MarkupMarkdown:
		return toMarkdown(src), nil
	case domain.MarkupTeX:
		return toTeX(src), nil
	default:
		return "", zerr.With(domain.ErrTaskNotSupported, "format", string(format))
	}
}

func toMarkdown(src *tree) string {
	var parts []string
	if src.title != "" {
		parts = append(parts, "---\ntitle: "+src.title+"\n---")
	}
	for _, b := range src.blocks {
		switch b.kind {
		case blockHeading:
			parts = append(parts, strings.Repeat("#", min(b.level, 6))+" "+b.text)
		case blockParagraph:
			parts = append(parts, b.text)
		case blockPageBreak:
			parts = append(parts, "***")
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\^{}`,
	`~`, `\~{}`,
)

var texSections = []string{"section", "subsection", "subsubsection", "paragraph"}

func toTeX(src *tree) string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	if src.title != "" {
		fmt.Fprintf(&b, "\\title{%s}\n", texEscaper.Replace(src.title))
	}
	b.WriteString("\\begin{document}\n")
	if src.title != "" {
		b.WriteString("\\maketitle\n")
	}
	for _, blk := range src.blocks {
		switch blk.kind {
		case blockHeading:
			cmd := texSections[min(blk.level, len(texSections))-1]
			fmt.Fprintf(&b, "\n\\%s{%s}\n", cmd, texEscaper.Replace(blk.text))
		case blockParagraph:
			fmt.Fprintf(&b, "\n%s\n", texEscaper.Replace(blk.text))
		case blockPageBreak:
			b.WriteString("\n\\newpage\n")
		}
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}
