// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits source documents into bounded, ordered segments:
// contiguous page ranges for PDFs and structural chunks for Markdown. Chunk
// file names encode the 1-based sequence number zero-padded to at least
// three digits, so lexical file order is sequence order.
package chunk

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/smyrgeorge/lexis/pkg/types"
)

// DefaultPagesPerChunk bounds PDF segments when no override is given.
const DefaultPagesPerChunk = 10

// PlanPages partitions [1..totalPages] into consecutive ranges of
// pagesPerChunk pages each; the final range holds the remainder. The range
// count is ceil(totalPages/pagesPerChunk).
func PlanPages(totalPages, pagesPerChunk int) ([]types.PageRange, error) {
	if pagesPerChunk < 1 {
		return nil, types.NewConfigError("pages per chunk must be at least 1, got %d", pagesPerChunk)
	}
	if totalPages < 1 {
		return nil, &types.InputError{Err: errors.New("document has no pages")}
	}

	ranges := make([]types.PageRange, 0, (totalPages+pagesPerChunk-1)/pagesPerChunk)
	for start := 1; start <= totalPages; start += pagesPerChunk {
		end := start + pagesPerChunk - 1
		if end > totalPages {
			end = totalPages
		}
		ranges = append(ranges, types.PageRange{Seq: len(ranges) + 1, Start: start, End: end})
	}

	return ranges, nil
}

// PageChunkFileName returns the canonical chunk file name
// <base>_chunk_<seq>_pages_<start>-<end>.pdf with the sequence number
// zero-padded to at least three digits.
func PageChunkFileName(base string, r types.PageRange) string {
	return fmt.Sprintf("%s_chunk_%03d_pages_%d-%d.pdf", base, r.Seq, r.Start, r.End)
}

// SplitResult summarizes a PDF split.
type SplitResult struct {
	// SourcePages is the page count of the input document.
	SourcePages int

	// Ranges lists the planned page ranges in sequence order.
	Ranges []types.PageRange

	// Files lists the written chunk paths in sequence order.
	Files []string
}

// SplitPDF partitions the PDF at inPath into page-range chunk files under
// outDir, writing a status line per chunk to w. A source that cannot be
// opened or has no pages is an InputError, and the operation aborts as a
// whole: chunk files already written are removed so no partial chunk set
// remains on disk.
func SplitPDF(inPath, outDir string, pagesPerChunk int, w io.Writer) (*SplitResult, error) {
	total, err := api.PageCountFile(inPath)
	if err != nil {
		return nil, &types.InputError{Path: inPath, Err: err}
	}

	ranges, err := PlanPages(total, pagesPerChunk)
	if err != nil {
		var inputErr *types.InputError
		if errors.As(err, &inputErr) {
			return nil, &types.InputError{Path: inPath, Err: inputErr.Err}
		}
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	res := &SplitResult{SourcePages: total, Ranges: ranges}

	for _, pr := range ranges {
		name := PageChunkFileName(base, pr)
		outPath := filepath.Join(outDir, name)

		pages := []string{fmt.Sprintf("%d-%d", pr.Start, pr.End)}
		if err := api.TrimFile(inPath, outPath, pages, nil); err != nil {
			discardFiles(append(res.Files, outPath))
			return nil, &types.InputError{Path: inPath, Err: fmt.Errorf("extracting pages %d-%d: %w", pr.Start, pr.End, err)}
		}

		res.Files = append(res.Files, outPath)
		fmt.Fprintf(w, "created: %s (pages %d-%d)\n", name, pr.Start, pr.End)
	}

	fmt.Fprintf(w, "\nSplit summary: %d pages into %d chunks in %s\n", total, len(ranges), outDir)
	return res, nil
}

// discardFiles removes any written chunk files after a mid-split failure.
func discardFiles(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}
