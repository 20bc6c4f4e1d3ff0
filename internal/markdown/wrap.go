// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown provides small text transforms applied to converted
// Markdown before it is written to disk.
package markdown

import (
	"strings"
	"unicode/utf8"
)

// DefaultLineWidth is the wrap width applied to converted Markdown.
const DefaultLineWidth = 120

// WrapLines wraps prose lines at width columns while preserving document
// structure. Blank lines, headings, fence lines, table rows, and lines
// already within the width pass through untouched. Words are never broken,
// so a single word longer than the width occupies its own row.
func WrapLines(content string, width int) string {
	if width <= 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "",
			strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "```"),
			strings.HasPrefix(trimmed, "|"),
			utf8.RuneCountInString(line) <= width:
			out = append(out, line)
		default:
			out = append(out, fill(line, width)...)
		}
	}

	return strings.Join(out, "\n")
}

// fill greedily packs the line's words into rows of at most width runes.
func fill(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{line}
	}

	var rows []string
	current := words[0]
	currentLen := utf8.RuneCountInString(words[0])

	for _, w := range words[1:] {
		wl := utf8.RuneCountInString(w)
		if currentLen+1+wl <= width {
			current += " " + w
			currentLen += 1 + wl
			continue
		}
		rows = append(rows, current)
		current = w
		currentLen = wl
	}

	return append(rows, current)
}
