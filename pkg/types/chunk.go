// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the lexis pipeline: chunk
// and page-range records, run reports, stage configuration, and the error
// taxonomy used across stages.
package types

// ChunkMode selects the structural chunking strategy for Markdown input.
type ChunkMode string

const (
	ModeHeading ChunkMode = "heading"
	ModeChars   ChunkMode = "chars"
	ModeTokens  ChunkMode = "tokens"
)

// PageRange is one PageChunker segment: an inclusive, 1-based page span
// with its position in the chunk sequence.
type PageRange struct {
	// Seq is the 1-based sequence number, gapless and monotonic.
	Seq int `json:"seq" yaml:"seq"`

	// Start is the first page of the range (1-based, inclusive).
	Start int `json:"start" yaml:"start"`

	// End is the last page of the range (inclusive).
	End int `json:"end" yaml:"end"`
}

// Pages returns the number of pages covered by the range.
func (r PageRange) Pages() int { return r.End - r.Start + 1 }

// Chunk is one contiguous unit of a Markdown document produced by the
// structural chunker. Concatenating the non-overlap content of all chunks
// in sequence order reconstructs the source.
type Chunk struct {
	// Seq is the 1-based sequence number, gapless and monotonic.
	Seq int `json:"seq" yaml:"seq"`

	// Title is the heading text for heading-mode chunks ("Introduction"
	// for content before the first qualifying heading). Empty in the
	// size-based modes.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is the chunk text, trimmed of surrounding whitespace.
	Content string `json:"content" yaml:"content"`
}
