// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/pkg/types"
)

const (
	cleanedSuffix = "_cleaned"

	// cleanPrompt asks the backend to strip conversion noise (page
	// numbers, broken hyphenation, headers) from extracted text.
	cleanPrompt = "Clean this text and keep only meaningful content:"
)

// CleanOutputName returns the cleaned file name for a source name: the
// stem with _cleaned appended and a .md extension.
func CleanOutputName(srcName string) string {
	stem := strings.TrimSuffix(srcName, filepath.Ext(srcName))
	return stem + cleanedSuffix + ".md"
}

// IsCleanedName reports whether name already is a cleaning output.
func IsCleanedName(name string) bool {
	return strings.HasSuffix(name, cleanedSuffix+".md")
}

// CleanFile runs a single Markdown file through the backend's cleaning
// pass. The output lands beside the source, or under outDir when set.
func CleanFile(ctx context.Context, tr provider.Translator, path, outDir string, w io.Writer) (*types.RunReport, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &types.InputError{Path: path, Err: err}
	}
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}

	report := newCleanReport(tr)
	name := filepath.Base(path)
	if IsCleanedName(name) {
		fmt.Fprintf(w, "skipped: %s (cleaned output)\n", name)
		report.Record(types.ChunkResult{Name: name, Status: types.StatusSkipped})
	} else {
		cleanChunk(ctx, tr, path, outDir, w, report)
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// CleanDirectory cleans every Markdown file in dir in lexical filename
// order. A non-empty suffix restricts the pass to files whose stem ends
// with it, so a run can target only translated outputs, e.g. "_English".
func CleanDirectory(ctx context.Context, tr provider.Translator, dir, suffix, outDir string, w io.Writer) (*types.RunReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &types.InputError{Path: dir, Err: err}
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") || IsCleanedName(name) {
			continue
		}
		if suffix != "" && !strings.HasSuffix(strings.TrimSuffix(name, ".md"), suffix) {
			continue
		}
		files = append(files, name)
	}
	if len(files) == 0 {
		return nil, &types.InputError{Path: dir, Err: errors.New("no markdown files to clean")}
	}
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}

	report := newCleanReport(tr)
	for _, f := range files {
		select {
		case <-ctx.Done():
			report.Elapsed = time.Since(report.StartedAt)
			return report, ctx.Err()
		default:
		}
		cleanChunk(ctx, tr, filepath.Join(dir, f), outDir, w, report)
	}

	report.Elapsed = time.Since(report.StartedAt)
	fmt.Fprintf(w, "\nBatch summary: %d cleaned, %d skipped, %d failed (total: %d)\n",
		report.Translated, report.Skipped, report.Failed, report.Total())
	return report, nil
}

func cleanChunk(ctx context.Context, tr provider.Translator, srcPath, outDir string, w io.Writer, report *types.RunReport) {
	name := filepath.Base(srcPath)
	if outDir == "" {
		outDir = filepath.Dir(srcPath)
	}
	outPath := filepath.Join(outDir, CleanOutputName(name))
	start := time.Now()

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		report.Record(types.ChunkResult{Name: name, Status: types.StatusSkipped})
		return
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		failClean(w, report, name, start, &types.InputError{Path: srcPath, Err: err})
		return
	}

	cleaned, err := tr.Translate(ctx, provider.Request{Prompt: cleanPrompt, Text: string(content)})
	if err != nil {
		failClean(w, report, name, start, &types.TranslationError{Chunk: name, Err: err})
		return
	}
	if strings.TrimSpace(cleaned) == "" {
		failClean(w, report, name, start, &types.TranslationError{Chunk: name, Err: errors.New("provider returned empty content")})
		return
	}

	if err := writeAtomic(outPath, []byte(cleaned)); err != nil {
		failClean(w, report, name, start, &types.TranslationError{Chunk: name, Err: err})
		return
	}

	fmt.Fprintf(w, "cleaned: %s -> %s\n", name, filepath.Base(outPath))
	report.Record(types.ChunkResult{Name: name, Status: types.StatusTranslated, Elapsed: time.Since(start)})
}

func failClean(w io.Writer, report *types.RunReport, name string, start time.Time, err error) {
	fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	report.Record(types.ChunkResult{
		Name:    name,
		Status:  types.StatusFailed,
		Elapsed: time.Since(start),
		Error:   err.Error(),
	})
}

func newCleanReport(tr provider.Translator) *types.RunReport {
	return &types.RunReport{
		Command:   "clean",
		Provider:  tr.Name(),
		StartedAt: time.Now().UTC(),
	}
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
