package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ExportTransform is one post-processing step of an export. Exactly one field is set.
type ExportTransform struct {
	Pages  *PagesTransform  `json:"pages,omitempty"`
	Merge  *MergeTransform  `json:"merge,omitempty"`
	Script *ScriptTransform `json:"script,omitempty"`
	Pretty *PrettyTransform `json:"pretty,omitempty"`
}

// PagesTransform keeps only the pages within Ranges.
type PagesTransform struct {
	Ranges []PageRange `json:"ranges"`
}

// MergeTransform stacks all pages vertically into one page.
type MergeTransform struct {
	// Gap is the distance between pages, in points.
	Gap float64 `json:"gap"`
}

// ScriptTransform pipes the exported bytes through a shell script.
type ScriptTransform struct {
	Script string `json:"script,omitempty"`
}

// PrettyTransform formats the exported bytes. Without a script the built-in printer is used.
type PrettyTransform struct {
	Script string `json:"script,omitempty"`
}

// Validate checks that exactly one operation is set.
func (t ExportTransform) Validate() error {
	n := 0
	if t.Pages != nil {
		n++
	}
	if t.Merge != nil {
		n++
		if t.Merge.Gap < 0 {
			return zerr.With(ErrInvalidTransform, "gap", t.Merge.Gap)
		}
	}
	if t.Script != nil {
		n++
	}
	if t.Pretty != nil {
		n++
	}
	if n != 1 {
		return zerr.With(ErrInvalidTransform, "operations", n)
	}
	return nil
}

// PageRange is an inclusive range of 1-based page numbers. A zero bound is open.
type PageRange struct {
	Start int
	End   int
}

// FirstPage selects only the first page.
var FirstPage = PageRange{Start: 1, End: 1}

// Contains reports whether page number n lies within the range.
func (r PageRange) Contains(n int) bool {
	if r.Start > 0 && n < r.Start {
		return false
	}
	if r.End > 0 && n > r.End {
		return false
	}
	return true
}

// String formats the range as "N", "N-M", "N-" or "-M".
func (r PageRange) String() string {
	if r.Start > 0 && r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	var b strings.Builder
	if r.Start > 0 {
		b.WriteString(strconv.Itoa(r.Start))
	}
	b.WriteByte('-')
	if r.End > 0 {
		b.WriteString(strconv.Itoa(r.End))
	}
	return b.String()
}

// ParsePageRange parses the textual form produced by PageRange.String.
func ParsePageRange(s string) (PageRange, error) {
	s = strings.TrimSpace(s)
	invalid := zerr.With(ErrInvalidPageRange, "range", s)

	start, end, isRange := strings.Cut(s, "-")
	if !isRange {
		n, err := parsePageNumber(s)
		if err != nil || n == 0 {
			return PageRange{}, invalid
		}
		return PageRange{Start: n, End: n}, nil
	}

	lo, err := parsePageNumber(start)
	if err != nil {
		return PageRange{}, invalid
	}
	hi, err := parsePageNumber(end)
	if err != nil {
		return PageRange{}, invalid
	}
	if hi > 0 && lo > hi {
		return PageRange{}, invalid
	}
	return PageRange{Start: lo, End: hi}, nil
}

func parsePageNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ErrInvalidPageRange
	}
	return n, nil
}

// MarshalText implements encoding.TextMarshaler.
func (r PageRange) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PageRange) UnmarshalText(text []byte) error {
	parsed, err := ParsePageRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SelectPages returns the pages contained in any of ranges, preserving document order.
// An empty ranges list selects every page.
func SelectPages(pages []Page, ranges []PageRange) []Page {
	if len(ranges) == 0 {
		return pages
	}
	selected := make([]Page, 0, len(pages))
	for _, p := range pages {
		for _, r := range ranges {
			if r.Contains(p.Number) {
				selected = append(selected, p)
				break
			}
		}
	}
	return selected
}
