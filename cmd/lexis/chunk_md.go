package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smyrgeorge/lexis/internal/chunk"
	"github.com/smyrgeorge/lexis/internal/tokens"
	"github.com/smyrgeorge/lexis/pkg/types"
)

var chunkMDCmd = &cobra.Command{
	Use:   "chunk-md <file.md>",
	Short: "Split a Markdown file into translation-sized chunks",
	Long: `Split a Markdown file into chunks small enough to translate in one
request. The heading mode (default) cuts at heading boundaries up to
--heading-level; the chars and tokens modes cut at a size budget, preferring
paragraph breaks and carrying --overlap across each boundary.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunkMD,
}

func runChunkMD(cmd *cobra.Command, args []string) error {
	cfg := markdownChunkConfig(cmd)
	outDir, _ := cmd.Flags().GetString("outdir")

	inPath := args[0]
	content, err := os.ReadFile(inPath)
	if err != nil {
		return &types.InputError{Path: inPath, Err: err}
	}

	chunks, err := chunk.SplitMarkdown(string(content), cfg)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(inPath), stem+"_chunks")
	}

	names, err := chunk.SaveChunks(chunks, outDir, tokens.NewEstimator(), os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nSplit %s into %d chunks in %s\n", filepath.Base(inPath), len(names), outDir)
	return nil
}

func markdownChunkConfig(cmd *cobra.Command) types.MarkdownChunkConfig {
	mode, _ := cmd.Flags().GetString("mode")
	maxLevel, _ := cmd.Flags().GetInt("heading-level")
	maxChars, _ := cmd.Flags().GetInt("max-chars")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	overlap, _ := cmd.Flags().GetInt("overlap")

	return types.MarkdownChunkConfig{
		Mode:            types.ChunkMode(mode),
		MaxHeadingLevel: maxLevel,
		MaxChars:        maxChars,
		MaxTokens:       maxTokens,
		Overlap:         overlap,
	}
}

func init() {
	chunkMDCmd.Flags().StringP("mode", "m", string(types.ModeHeading), "chunking mode: heading, chars, or tokens")
	chunkMDCmd.Flags().Int("heading-level", chunk.DefaultMaxHeadingLevel, "deepest heading level that starts a chunk (heading mode)")
	chunkMDCmd.Flags().Int("max-chars", chunk.DefaultMaxChars, "character budget per chunk (chars mode)")
	chunkMDCmd.Flags().Int("max-tokens", chunk.DefaultMaxTokens, "token budget per chunk (tokens mode)")
	chunkMDCmd.Flags().Int("overlap", chunk.DefaultOverlap, "overlap carried across size-mode boundaries")
	chunkMDCmd.Flags().StringP("outdir", "o", "", "output directory (default: <stem>_chunks/ beside the source)")

	rootCmd.AddCommand(chunkMDCmd)
}
