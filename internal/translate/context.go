// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate runs chunked Markdown through a translation backend,
// one chunk at a time, resuming where previous runs left off.
package translate

import "strings"

// DefaultContextLines is the per-side line count for boundary context.
const DefaultContextLines = 5

// ContextWindow holds the boundary context for one chunk. Both sides come
// from the untranslated originals, never from translation outputs, so
// resolving context is read-only and yields the same result on every run.
type ContextWindow struct {
	// Before holds the trailing lines of the previous chunk.
	Before string

	// After holds the leading lines of the next chunk.
	After string
}

// ResolveContext returns the boundary context for the chunk at index i of
// the ordered original contents. contextLines <= 0 disables context. The
// first chunk has no Before side and the last chunk no After side.
func ResolveContext(originals []string, i, contextLines int) ContextWindow {
	if contextLines <= 0 || i < 0 || i >= len(originals) {
		return ContextWindow{}
	}

	var win ContextWindow
	if i > 0 {
		win.Before = TailLines(originals[i-1], contextLines)
	}
	if i < len(originals)-1 {
		win.After = HeadLines(originals[i+1], contextLines)
	}
	return win
}

// TailLines returns the last n lines of text, without a trailing newline.
func TailLines(text string, n int) string {
	lines := splitLines(text)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// HeadLines returns the first n lines of text, without a trailing newline.
func HeadLines(text string, n int) string {
	lines := splitLines(text)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
