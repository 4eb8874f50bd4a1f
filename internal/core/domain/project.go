package domain

import (
	"image/color"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Project is a loaded project configuration.
type Project struct {
	// Root is the absolute project root.
	Root string
	// Entry is the main file relative to Root.
	Entry       string
	Tasks       []ProjectTask
	Diagnostics DiagnosticsPolicy
}

// EntryState returns the entry state of the project.
func (p *Project) EntryState() EntryState {
	return EntryState{Root: p.Root, Main: p.Entry}
}

// Task returns the task with the given identifier.
func (p *Project) Task(id string) (ProjectTask, bool) {
	for _, t := range p.Tasks {
		if t.TaskID() == id {
			return t, true
		}
	}
	return nil, false
}

// SelectTasks returns the tasks named by ids, or every task when ids is empty.
func (p *Project) SelectTasks(ids []string) ([]ProjectTask, error) {
	if len(ids) == 0 {
		return p.Tasks, nil
	}
	selected := make([]ProjectTask, 0, len(ids))
	for _, id := range ids {
		t, ok := p.Task(id)
		if !ok {
			return nil, zerr.With(ErrTaskNotFound, "task", id)
		}
		selected = append(selected, t)
	}
	return selected, nil
}

var namedColors = map[string]color.RGBA{
	"white":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black":       {A: 0xff},
	"transparent": {},
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or a few named colours.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	invalid := zerr.With(ErrInvalidColor, "colour", s)
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, invalid
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, invalid
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, invalid
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
