package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// zerrError is the subset of *zerr.Error used to render error chains.
type zerrError interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks err's chain. zerr layers contribute their own
// message and metadata; the first foreign error ends the walk with its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		z, ok := current.(zerrError)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}
		entries = append(entries, ErrorEntry{Message: z.Message(), Metadata: z.Metadata()})
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by a "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		head, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}
	return strings.Join(lines, "\n")
}
