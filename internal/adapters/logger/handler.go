package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Brand colours and icons of the pretty output.
const (
	colorSlate  = "#667085"
	colorRed    = "#D93025"
	colorYellow = "#F59E0B"

	iconCross   = "✗"
	iconWarning = "!"
)

// colorProfile returns Ascii when NO_COLOR is set or w is a file that is not
// a terminal, and detects the terminal otherwise.
func colorProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func newOutput(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(colorProfile(w)), termenv.WithTTY(true))
}

type levelStyle struct {
	icon  string
	color string
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{icon: iconCross, color: colorRed}
	case level >= slog.LevelWarn:
		return levelStyle{icon: iconWarning, color: colorYellow}
	default:
		return levelStyle{color: colorSlate}
	}
}

// PrettyHandler is a slog.Handler writing one coloured line per record.
// Attributes are rendered as key=value pairs, keys qualified by the groups
// that were open when the attribute was added.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix string
	// attrs holds the attributes of WithAttrs, already rendered.
	attrs []string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		out:   newOutput(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as a single line.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	st := styleFor(r.Level)

	var b strings.Builder
	if st.icon != "" {
		b.WriteString(st.icon)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)

	parts := h.attrs
	if r.NumAttrs() > 0 {
		parts = append(parts[:len(parts):len(parts)], renderAttrs(h.prefix, recordAttrs(r))...)
	}
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}

	line := h.out.String(b.String()).Foreground(termenv.RGBColor(st.color))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a handler that appends attrs, qualified by the open groups, to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], renderAttrs(h.prefix, attrs)...)
	return &c
}

// WithGroup returns a handler that nests the keys of later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func recordAttrs(r slog.Record) []slog.Attr {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

// renderAttrs formats attrs as key=value pairs. Group values are flattened
// into dotted keys and empty attributes are dropped.
func renderAttrs(prefix string, attrs []slog.Attr) []string {
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		if a.Value.Kind() == slog.KindGroup {
			inner := prefix
			if a.Key != "" {
				inner += a.Key + "."
			}
			out = append(out, renderAttrs(inner, a.Value.Group())...)
			continue
		}
		out = append(out, prefix+a.Key+"="+a.Value.String())
	}
	return out
}
