package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smyrgeorge/lexis/internal/chunk"
)

var chunkPDFCmd = &cobra.Command{
	Use:   "chunk-pdf <file.pdf>",
	Short: "Split a PDF into fixed-size page-range chunks",
	Long: `Split a PDF into smaller PDFs, each covering a contiguous page range.
Chunk files are named <stem>_chunk_<NNN>_pages_<start>-<end>.pdf so the
original page numbers stay visible throughout the pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunkPDF,
}

func runChunkPDF(cmd *cobra.Command, args []string) error {
	pages, _ := cmd.Flags().GetInt("pages")
	outDir, _ := cmd.Flags().GetString("outdir")

	inPath := args[0]
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(inPath), "chunks")
	}

	res, err := chunk.SplitPDF(inPath, outDir, pages, os.Stdout)
	if err != nil {
		return err
	}
	log.Debug("pdf split", "source_pages", res.SourcePages, "chunks", len(res.Files))
	return nil
}

func init() {
	chunkPDFCmd.Flags().IntP("pages", "p", chunk.DefaultPagesPerChunk, "pages per chunk")
	chunkPDFCmd.Flags().StringP("outdir", "o", "", "output directory (default: chunks/ beside the source)")

	rootCmd.AddCommand(chunkPDFCmd)
}
