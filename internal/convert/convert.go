// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-Markdown conversion with pluggable
// backends. Conversion is resumable at file granularity: an existing .md
// output marks its source as done and the file is skipped.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/smyrgeorge/lexis/internal/container"
	"github.com/smyrgeorge/lexis/internal/markdown"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// Converter transforms a PDF file into Markdown text. Backends differ in
// fidelity: the docling container preserves document structure, the native
// extractor only recovers plain text.
type Converter interface {
	// Convert reads a PDF at pdfPath and returns the Markdown content.
	Convert(pdfPath string) (string, error)
}

// Status is the per-file outcome of a conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the Markdown path for a converted PDF: the source stem
// with a .md extension, placed beside the source or under outDir when set.
func OutputPath(pdfPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(pdfPath)
	}
	return filepath.Join(dir, base+".md")
}

// ConvertFile converts a single PDF to Markdown and writes the result. An
// existing output means the file was already converted, so it is skipped;
// a failed backend marks this file only and the caller moves on.
func ConvertFile(c Converter, pdfPath, outDir string, cfg types.ConvertConfig, w io.Writer) Status {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	mdPath := OutputPath(pdfPath, outDir)

	if _, err := os.Stat(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return StatusSkipped
	}

	if err := os.MkdirAll(filepath.Dir(mdPath), 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	raw, err := c.Convert(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	if cfg.Wrap {
		width := cfg.LineWidth
		if width == 0 {
			width = markdown.DefaultLineWidth
		}
		raw = markdown.WrapLines(raw, width)
	}

	if err := os.WriteFile(mdPath, []byte(raw), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s\n", base)
	return StatusConverted
}

// ConvertBatch processes PDF paths through the converter, printing per-file
// status to w and returning a summary. A failure affects its file only.
func ConvertBatch(c Converter, pdfPaths []string, outDir string, cfg types.ConvertConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ConvertFile(c, p, outDir, cfg, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// NewConverter builds the backend selected by engine. The docling engine
// needs a container runtime with the image present locally; the native
// engine has no external dependencies.
func NewConverter(engine types.ConversionEngine) (Converter, error) {
	switch engine {
	case types.EngineNative:
		return &NativeConverter{}, nil
	case types.EngineDocling, "":
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewDoclingConverter(rt)
	default:
		return nil, types.NewConfigError("unknown conversion engine %q", engine)
	}
}
