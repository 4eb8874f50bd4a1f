// Package textdoc implements a small reference document language and the
// compiler, renderer and converter adapters built on it.
//
// A source is plain text. Lines starting with "=" are headings, blank lines
// separate paragraphs and lines starting with "#" are directives:
//
//	#title: Field Notes
//	#include: chapters/one.qd
//	#pagebreak
package textdoc

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
)

const (
	maxIncludeDepth = 16
	parseCacheSize  = 256
)

type blockKind uint8

const (
	blockParagraph blockKind = iota
	blockHeading
	blockPageBreak
	blockInclude
)

type block struct {
	kind  blockKind
	level int
	text  string
}

// parsed is the cached result of parsing one file. It is never mutated.
type parsed struct {
	title  string
	blocks []block
	diags  domain.Diagnostics
}

// parser parses sources, memoizing files by path and content.
type parser struct {
	cache *lru.Cache[uint64, *parsed]
}

func newParser() *parser {
	cache, err := lru.New[uint64, *parsed](parseCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &parser{cache: cache}
}

func (p *parser) parse(file string, data []byte) *parsed {
	d := xxhash.New()
	_, _ = d.WriteString(file)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(data)
	key := d.Sum64()

	if cached, ok := p.cache.Get(key); ok {
		return cached
	}
	result := parseSource(file, string(data))
	p.cache.Add(key, result)
	return result
}

func parseSource(file, text string) *parsed {
	out := &parsed{}
	var para []string

	flush := func() {
		if len(para) > 0 {
			out.blocks = append(out.blocks, block{kind: blockParagraph, text: strings.Join(para, " ")})
			para = nil
		}
	}
	report := func(sev domain.Severity, line int, msg string) {
		out.diags = append(out.diags, domain.Diagnostic{Severity: sev, Message: msg, Path: file, Line: line, Column: 1})
	}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
			name, arg, _ := strings.Cut(trimmed[1:], ":")
			name, arg = strings.TrimSpace(name), strings.TrimSpace(arg)
			switch name {
			case "title":
				out.title = arg
			case "pagebreak":
				out.blocks = append(out.blocks, block{kind: blockPageBreak})
			case "include":
				if arg == "" {
					report(domain.SeverityError, lineNo, "include needs a path")
					continue
				}
				out.blocks = append(out.blocks, block{kind: blockInclude, text: arg})
			default:
				report(domain.SeverityError, lineNo, fmt.Sprintf("unknown directive #%s", name))
			}
		case strings.HasPrefix(trimmed, "="):
			flush()
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "="))
			heading := strings.TrimSpace(trimmed[level:])
			if heading == "" {
				report(domain.SeverityWarning, lineNo, "empty heading")
				continue
			}
			out.blocks = append(out.blocks, block{kind: blockHeading, level: level, text: heading})
		default:
			para = append(para, trimmed)
		}
	}
	flush()
	return out
}

// tree is a source with every include expanded.
type tree struct {
	title  string
	blocks []block
	diags  domain.Diagnostics
}

// load parses the entry of world and expands its includes.
func (p *parser) load(world ports.World) (*tree, error) {
	entry := world.EntryState()
	if !entry.Active() {
		return nil, domain.ErrEntryNotFound
	}
	main := path.Clean(strings.ReplaceAll(entry.Main, "\\", "/"))
	data, err := world.ReadFile(main)
	if err != nil {
		return nil, err
	}

	t := &tree{}
	p.expand(world, t, main, data, []string{main})
	return t, nil
}

func (p *parser) expand(world ports.World, t *tree, file string, data []byte, stack []string) {
	src := p.parse(file, data)
	if t.title == "" {
		t.title = src.title
	}
	t.diags = append(t.diags, src.diags...)

	for _, b := range src.blocks {
		if b.kind != blockInclude {
			t.blocks = append(t.blocks, b)
			continue
		}

		target := path.Join(path.Dir(file), b.text)
		fail := func(msg string) {
			t.diags = append(t.diags, domain.Diagnostic{Severity: domain.SeverityError, Message: msg, Path: file})
		}
		switch {
		case slices.Contains(stack, target):
			fail(fmt.Sprintf("include cycle through %s", target))
			continue
		case len(stack) >= maxIncludeDepth:
			fail(fmt.Sprintf("includes nested deeper than %d", maxIncludeDepth))
			continue
		}

		included, err := world.ReadFile(target)
		if err != nil {
			fail(fmt.Sprintf("cannot include %s", target))
			continue
		}
		p.expand(world, t, target, included, append(slices.Clone(stack), target))
	}
}
