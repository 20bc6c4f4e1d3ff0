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

	"github.com/smyrgeorge/lexis/internal/glossary"
	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// Orchestrator drives the translation stage. It holds the backend, the run
// settings, and the optional terminology dictionary, and processes chunks
// strictly one at a time: each chunk reaches the provider at most once, and
// a chunk's failure never blocks the rest of the batch.
type Orchestrator struct {
	provider provider.Translator
	cfg      types.TranslateConfig
	dict     *glossary.Dictionary
}

// NewOrchestrator validates cfg and builds an Orchestrator. Both language
// names are required, and a custom prompt template must carry the {source}
// and {target} placeholders so the instruction names the right languages.
func NewOrchestrator(p provider.Translator, cfg types.TranslateConfig, dict *glossary.Dictionary) (*Orchestrator, error) {
	if cfg.SourceLang == "" {
		return nil, types.NewConfigError("source language is required")
	}
	if cfg.TargetLang == "" {
		return nil, types.NewConfigError("target language is required")
	}
	if tpl := cfg.PromptTemplate; tpl != "" {
		if !strings.Contains(tpl, "{source}") || !strings.Contains(tpl, "{target}") {
			return nil, types.NewConfigError("prompt template must contain {source} and {target} placeholders")
		}
	}
	if cfg.ContextLines < 0 {
		return nil, types.NewConfigError("context lines must not be negative, got %d", cfg.ContextLines)
	}
	return &Orchestrator{provider: p, cfg: cfg, dict: dict}, nil
}

// OutputName returns the translated file name for a source name:
// the stem with _<targetLang> appended and a .md extension.
func OutputName(srcName, targetLang string) string {
	stem := strings.TrimSuffix(srcName, filepath.Ext(srcName))
	return stem + "_" + targetLang + ".md"
}

// IsOutputName reports whether name already is a translation output for
// targetLang. Such files are never translated again, which keeps reruns
// from producing doubled suffixes like _English_English.md.
func IsOutputName(name, targetLang string) bool {
	return strings.HasSuffix(name, "_"+targetLang+".md")
}

// TranslateFile translates a single Markdown file. The output lands beside
// the source, or under the configured output directory when set.
func (o *Orchestrator) TranslateFile(ctx context.Context, path string, w io.Writer) (*types.RunReport, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &types.InputError{Path: path, Err: err}
	}
	if err := o.ensureOutputDir(); err != nil {
		return nil, err
	}

	report := o.newReport()
	name := filepath.Base(path)
	if IsOutputName(name, o.cfg.TargetLang) {
		fmt.Fprintf(w, "skipped: %s (translation output)\n", name)
		report.Record(types.ChunkResult{Name: name, Status: types.StatusSkipped})
	} else {
		o.translateChunk(ctx, path, ContextWindow{}, w, report)
	}

	report.Elapsed = time.Since(report.StartedAt)
	return report, nil
}

// TranslateDirectory translates every Markdown chunk in dir in lexical
// filename order, so zero-padded sequence numbers keep document order.
// Existing outputs and files named like outputs are skipped before any
// provider call, which makes a rerun over a finished directory free.
func (o *Orchestrator) TranslateDirectory(ctx context.Context, dir string, w io.Writer) (*types.RunReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &types.InputError{Path: dir, Err: err}
	}

	// os.ReadDir returns entries sorted by filename.
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, &types.InputError{Path: dir, Err: errors.New("no markdown files found")}
	}
	if err := o.ensureOutputDir(); err != nil {
		return nil, err
	}

	// The chunk sequence for boundary context excludes output files:
	// context always comes from neighboring originals.
	var seq []string
	for _, f := range files {
		if !IsOutputName(f, o.cfg.TargetLang) {
			seq = append(seq, f)
		}
	}
	originals := make([]string, len(seq))
	seqIndex := make(map[string]int, len(seq))
	for i, f := range seq {
		seqIndex[f] = i
		if data, err := os.ReadFile(filepath.Join(dir, f)); err == nil {
			originals[i] = string(data)
		}
	}

	report := o.newReport()
	for _, f := range files {
		select {
		case <-ctx.Done():
			report.Elapsed = time.Since(report.StartedAt)
			return report, ctx.Err()
		default:
		}

		if IsOutputName(f, o.cfg.TargetLang) {
			fmt.Fprintf(w, "skipped: %s (translation output)\n", f)
			report.Record(types.ChunkResult{Name: f, Status: types.StatusSkipped})
			continue
		}

		win := ResolveContext(originals, seqIndex[f], o.cfg.ContextLines)
		o.translateChunk(ctx, filepath.Join(dir, f), win, w, report)
	}

	report.Elapsed = time.Since(report.StartedAt)
	fmt.Fprintf(w, "\nBatch summary: %d translated, %d skipped, %d failed (total: %d)\n",
		report.Translated, report.Skipped, report.Failed, report.Total())
	return report, nil
}

// translateChunk runs the full per-chunk sequence: skip when the output
// already exists, read the source, compose the request, call the provider
// once, and commit the result atomically.
func (o *Orchestrator) translateChunk(ctx context.Context, srcPath string, win ContextWindow, w io.Writer, report *types.RunReport) {
	name := filepath.Base(srcPath)
	outPath := o.outputPath(srcPath)
	start := time.Now()

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		report.Record(types.ChunkResult{Name: name, Status: types.StatusSkipped})
		return
	}

	content, err := os.ReadFile(srcPath)
	if err != nil {
		o.fail(w, report, name, start, &types.InputError{Path: srcPath, Err: err})
		return
	}

	req := provider.Request{
		Text:          string(content),
		SourceLang:    o.cfg.SourceLang,
		TargetLang:    o.cfg.TargetLang,
		Prompt:        o.cfg.PromptTemplate,
		Dictionary:    o.dict.PromptSection(),
		ContextBefore: win.Before,
		ContextAfter:  win.After,
	}

	translated, err := o.provider.Translate(ctx, req)
	if err != nil {
		o.fail(w, report, name, start, &types.TranslationError{Chunk: name, Err: err})
		return
	}
	if strings.TrimSpace(translated) == "" {
		o.fail(w, report, name, start, &types.TranslationError{Chunk: name, Err: errors.New("provider returned empty translation")})
		return
	}

	if err := writeAtomic(outPath, []byte(translated)); err != nil {
		o.fail(w, report, name, start, &types.TranslationError{Chunk: name, Err: err})
		return
	}

	fmt.Fprintf(w, "translated: %s -> %s\n", name, filepath.Base(outPath))
	report.Record(types.ChunkResult{Name: name, Status: types.StatusTranslated, Elapsed: time.Since(start)})
}

func (o *Orchestrator) fail(w io.Writer, report *types.RunReport, name string, start time.Time, err error) {
	fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	report.Record(types.ChunkResult{
		Name:    name,
		Status:  types.StatusFailed,
		Elapsed: time.Since(start),
		Error:   err.Error(),
	})
}

func (o *Orchestrator) newReport() *types.RunReport {
	return &types.RunReport{
		Command:    "translate",
		Provider:   o.provider.Name(),
		SourceLang: o.cfg.SourceLang,
		TargetLang: o.cfg.TargetLang,
		StartedAt:  time.Now().UTC(),
	}
}

func (o *Orchestrator) outputPath(srcPath string) string {
	name := OutputName(filepath.Base(srcPath), o.cfg.TargetLang)
	dir := o.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(srcPath)
	}
	return filepath.Join(dir, name)
}

func (o *Orchestrator) ensureOutputDir() error {
	if o.cfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(o.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", o.cfg.OutputDir, err)
	}
	return nil
}

// writeAtomic writes data to path through a temp file in the same
// directory plus a rename, so readers never observe a partial output and
// an interrupted run never leaves one behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
