// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gosimple/slug"

	"github.com/smyrgeorge/lexis/internal/tokens"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// Defaults for structural Markdown chunking.
const (
	DefaultMaxHeadingLevel = 2
	DefaultMaxChars        = 5000
	DefaultMaxTokens       = 1000
	DefaultOverlap         = 200
)

// charsPerToken converts token budgets to character budgets in tokens mode.
const charsPerToken = 4

// introTitle names the chunk formed by content before the first qualifying
// heading.
const introTitle = "Introduction"

// maxSlugLen caps the slug portion of heading-mode chunk file names.
const maxSlugLen = 50

// SplitMarkdown partitions content into ordered chunks according to cfg. A
// document shorter than one chunk's budget yields exactly one chunk. Invalid
// settings (heading level outside 1-6, overlap at or above the budget) are
// ConfigErrors raised before any splitting happens.
func SplitMarkdown(content string, cfg types.MarkdownChunkConfig) ([]types.Chunk, error) {
	cfg = applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case types.ModeHeading:
		return splitByHeading(content, cfg.MaxHeadingLevel), nil
	case types.ModeChars:
		return splitBySize(content, cfg.MaxChars, cfg.Overlap), nil
	default: // types.ModeTokens, est. 4 characters per token
		return splitBySize(content, cfg.MaxTokens*charsPerToken, cfg.Overlap*charsPerToken), nil
	}
}

func applyDefaults(cfg types.MarkdownChunkConfig) types.MarkdownChunkConfig {
	if cfg.Mode == "" {
		cfg.Mode = types.ModeHeading
	}
	if cfg.MaxHeadingLevel == 0 {
		cfg.MaxHeadingLevel = DefaultMaxHeadingLevel
	}
	if cfg.MaxChars == 0 {
		cfg.MaxChars = DefaultMaxChars
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return cfg
}

func validate(cfg types.MarkdownChunkConfig) error {
	if cfg.Overlap < 0 {
		return types.NewConfigError("overlap must not be negative, got %d", cfg.Overlap)
	}

	switch cfg.Mode {
	case types.ModeHeading:
		if cfg.MaxHeadingLevel < 1 || cfg.MaxHeadingLevel > 6 {
			return types.NewConfigError("heading level %d out of range [1,6]", cfg.MaxHeadingLevel)
		}
	case types.ModeChars:
		if cfg.MaxChars < 1 {
			return types.NewConfigError("max chars must be at least 1, got %d", cfg.MaxChars)
		}
		if cfg.Overlap >= cfg.MaxChars {
			return types.NewConfigError("overlap %d must be smaller than the chunk budget %d", cfg.Overlap, cfg.MaxChars)
		}
	case types.ModeTokens:
		if cfg.MaxTokens < 1 {
			return types.NewConfigError("max tokens must be at least 1, got %d", cfg.MaxTokens)
		}
		if cfg.Overlap >= cfg.MaxTokens {
			return types.NewConfigError("overlap %d must be smaller than the chunk budget %d", cfg.Overlap, cfg.MaxTokens)
		}
	default:
		return types.NewConfigError("unknown chunk mode %q", cfg.Mode)
	}

	return nil
}

// splitByHeading opens a chunk boundary at every heading line whose level is
// at most maxLevel, skipping heading-shaped lines inside fenced code blocks.
// Content before the first qualifying heading becomes an initial chunk when
// non-empty.
func splitByHeading(content string, maxLevel int) []types.Chunk {
	pattern := regexp.MustCompile(fmt.Sprintf(`^(#{1,%d})\s+(.+)$`, maxLevel))

	var chunks []types.Chunk
	title := introTitle
	var body []string
	inFence := false

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" {
			return
		}
		if !strings.HasPrefix(text, "#") {
			text = "# " + title + "\n\n" + text
		}
		chunks = append(chunks, types.Chunk{Seq: len(chunks) + 1, Title: title, Content: text})
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence {
			if m := pattern.FindStringSubmatch(line); m != nil {
				flush()
				title = strings.TrimSpace(m[2])
				body = body[:0]
				body = append(body, line)
				continue
			}
		}
		body = append(body, line)
	}
	flush()

	return chunks
}

// splitBySize accumulates up to maxChars runes per chunk, preferring to cut
// at the last blank-line paragraph break within a lookback window of 20% of
// the budget. The next chunk starts overlap runes before the cut so adjacent
// chunks share a literal span.
func splitBySize(content string, maxChars, overlap int) []types.Chunk {
	runes := []rune(content)
	lookback := maxChars / 5

	var chunks []types.Chunk
	start := 0
	for start < len(runes) {
		end := start + maxChars
		if end < len(runes) {
			from := start + maxChars - lookback
			if from < start {
				from = start
			}
			if cut := paragraphBreak(runes, from, end); cut >= 0 {
				end = cut + 2
			}
		} else {
			end = len(runes)
		}

		if text := strings.TrimSpace(string(runes[start:end])); text != "" {
			chunks = append(chunks, types.Chunk{Seq: len(chunks) + 1, Content: text})
		}

		if end >= len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			// The paragraph cut landed inside the overlap; drop the
			// overlap for this boundary rather than stall.
			next = end
		}
		start = next
	}

	return chunks
}

// paragraphBreak returns the index of the last "\n\n" lying fully within
// [from, to), or -1 when the window has no paragraph break.
func paragraphBreak(runes []rune, from, to int) int {
	for i := to - 2; i >= from; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i
		}
	}
	return -1
}

// ChunkFileName returns the canonical Markdown chunk file name:
// <seq>-<slug>.md for titled chunks, <seq>-chunk.md otherwise, with the
// sequence number zero-padded to at least three digits.
func ChunkFileName(c types.Chunk) string {
	if c.Title == "" {
		return fmt.Sprintf("%03d-chunk.md", c.Seq)
	}

	s := slug.Make(c.Title)
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	if s == "" {
		s = "section"
	}
	return fmt.Sprintf("%03d-%s.md", c.Seq, s)
}

// SaveChunks writes chunks into outDir, creating it if needed, and prints a
// status line per file with size estimates from est (nil means heuristic
// counts). It returns the written file names in sequence order.
func SaveChunks(chunks []types.Chunk, outDir string, est *tokens.Estimator, w io.Writer) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	names := make([]string, 0, len(chunks))
	for _, c := range chunks {
		name := ChunkFileName(c)
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(c.Content), 0o644); err != nil {
			return nil, fmt.Errorf("writing chunk %s: %w", name, err)
		}
		fmt.Fprintf(w, "created: %s (%d chars, ~%d tokens)\n", name, len([]rune(c.Content)), est.Count(c.Content))
		names = append(names, name)
	}

	return names, nil
}
