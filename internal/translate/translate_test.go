// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smyrgeorge/lexis/internal/glossary"
	"github.com/smyrgeorge/lexis/internal/provider"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// fakeTranslator records every request and returns a deterministic
// transformation of the input text.
type fakeTranslator struct {
	calls    int
	requests []provider.Request
	failOn   func(call int) error
	onCall   func()
}

func (f *fakeTranslator) Name() string { return "fake" }

func (f *fakeTranslator) Translate(_ context.Context, req provider.Request) (string, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.onCall != nil {
		f.onCall()
	}
	if f.failOn != nil {
		if err := f.failOn(f.calls); err != nil {
			return "", err
		}
	}
	return "T:" + req.Text, nil
}

func setupChunks(t *testing.T, contents map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range contents {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func threeChunks(t *testing.T) string {
	return setupChunks(t, map[string]string{
		"001-intro.md": "a1\na2\na3\na4\na5\na6",
		"002-chunk.md": "middle content",
		"003-chunk.md": "c1\nc2\nc3\nc4",
	})
}

func newTestOrchestrator(t *testing.T, fake provider.Translator, cfg types.TranslateConfig, dict *glossary.Dictionary) *Orchestrator {
	t.Helper()
	if cfg.SourceLang == "" {
		cfg.SourceLang = "Spanish"
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = "English"
	}
	o, err := NewOrchestrator(fake, cfg, dict)
	require.NoError(t, err)
	return o
}

func TestTranslateDirectory(t *testing.T) {
	dir := threeChunks(t)
	fake := &fakeTranslator{}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{ContextLines: 2}, nil)

	var out bytes.Buffer
	report, err := o.TranslateDirectory(context.Background(), dir, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, 3, report.Translated)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)
	assert.False(t, report.HasFailures())

	for _, name := range []string{"001-intro_English.md", "002-chunk_English.md", "003-chunk_English.md"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, "missing output %s", name)
		assert.True(t, strings.HasPrefix(string(data), "T:"))
	}

	// Chunks travel in lexical order, so the middle request sees its
	// neighbors' originals on both sides.
	require.Len(t, fake.requests, 3)
	mid := fake.requests[1]
	assert.Equal(t, "middle content", mid.Text)
	assert.Equal(t, "a5\na6", mid.ContextBefore)
	assert.Equal(t, "c1\nc2", mid.ContextAfter)
	assert.Empty(t, fake.requests[0].ContextBefore)
	assert.Empty(t, fake.requests[2].ContextAfter)

	assert.Contains(t, out.String(), "translated: 001-intro.md -> 001-intro_English.md")
	assert.Contains(t, out.String(), "Batch summary: 3 translated, 0 skipped, 0 failed (total: 3)")
}

func TestTranslateDirectory_SecondRunMakesNoCalls(t *testing.T) {
	dir := threeChunks(t)
	first := &fakeTranslator{}
	o := newTestOrchestrator(t, first, types.TranslateConfig{ContextLines: 2}, nil)
	_, err := o.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 3, first.calls)

	second := &fakeTranslator{}
	o2 := newTestOrchestrator(t, second, types.TranslateConfig{ContextLines: 2}, nil)
	report, err := o2.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 0, second.calls)
	assert.Equal(t, 0, report.Translated)
	// Three originals skip on existing outputs; three outputs skip as outputs.
	assert.Equal(t, 6, report.Skipped)
}

func TestTranslateDirectory_FailureIsolation(t *testing.T) {
	dir := threeChunks(t)
	fake := &fakeTranslator{failOn: func(call int) error {
		if call == 2 {
			return errors.New("upstream exploded")
		}
		return nil
	}}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

	var out bytes.Buffer
	report, err := o.TranslateDirectory(context.Background(), dir, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, 2, report.Translated)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.HasFailures())
	assert.Contains(t, out.String(), "failed:  002-chunk.md")

	// The failed chunk leaves no output behind.
	_, statErr := os.Stat(filepath.Join(dir, "002-chunk_English.md"))
	assert.True(t, os.IsNotExist(statErr))
	// Its neighbors still completed.
	_, err = os.Stat(filepath.Join(dir, "001-intro_English.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "003-chunk_English.md"))
	assert.NoError(t, err)
}

func TestTranslateDirectory_ResumeAfterFailure(t *testing.T) {
	dir := threeChunks(t)
	flaky := &fakeTranslator{failOn: func(call int) error {
		if call == 2 {
			return errors.New("transient")
		}
		return nil
	}}
	o := newTestOrchestrator(t, flaky, types.TranslateConfig{ContextLines: 2}, nil)
	_, err := o.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)

	retry := &fakeTranslator{}
	o2 := newTestOrchestrator(t, retry, types.TranslateConfig{ContextLines: 2}, nil)
	report, err := o2.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)

	// Only the previously failed chunk is retried, with the same
	// boundary context the first run composed for it.
	require.Equal(t, 1, retry.calls)
	assert.Equal(t, 1, report.Translated)
	assert.Equal(t, flaky.requests[1], retry.requests[0])
}

func TestTranslateDirectory_OutputNamedInputsSkipped(t *testing.T) {
	dir := setupChunks(t, map[string]string{
		"001-a.md":         "uno",
		"001-a_English.md": "one",
	})
	fake := &fakeTranslator{}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

	var out bytes.Buffer
	report, err := o.TranslateDirectory(context.Background(), dir, &out)
	require.NoError(t, err)

	assert.Equal(t, 0, fake.calls)
	assert.Equal(t, 2, report.Skipped)
	assert.Contains(t, out.String(), "skipped: 001-a.md (already exists)")
	assert.Contains(t, out.String(), "skipped: 001-a_English.md (translation output)")

	// No doubled-suffix output may ever appear.
	_, statErr := os.Stat(filepath.Join(dir, "001-a_English_English.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTranslateDirectory_InterruptStopsBetweenChunks(t *testing.T) {
	dir := threeChunks(t)
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeTranslator{onCall: func() { cancel() }}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

	report, err := o.TranslateDirectory(ctx, dir, io.Discard)
	require.ErrorIs(t, err, context.Canceled)

	// The in-flight chunk finished and committed; nothing after it ran.
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, 1, report.Translated)
	_, statErr := os.Stat(filepath.Join(dir, "001-intro_English.md"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "002-chunk_English.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTranslateDirectory_OutputDirOverride(t *testing.T) {
	dir := threeChunks(t)
	outDir := filepath.Join(t.TempDir(), "translated")
	fake := &fakeTranslator{}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{OutputDir: outDir}, nil)

	_, err := o.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Rerun skips everything: the outputs are found in the override dir.
	again := &fakeTranslator{}
	o2 := newTestOrchestrator(t, again, types.TranslateConfig{OutputDir: outDir}, nil)
	report, err := o2.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, again.calls)
	assert.Equal(t, 3, report.Skipped)
}

func TestTranslateDirectory_DictionarySection(t *testing.T) {
	dir := setupChunks(t, map[string]string{"001-a.md": "el poder"})
	dict, _, err := glossary.Parse(strings.NewReader("poder: power, authority\n"))
	require.NoError(t, err)

	fake := &fakeTranslator{}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{}, dict)
	_, err = o.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0].Dictionary, "## Translation Dictionary")
	assert.Contains(t, fake.requests[0].Dictionary, "poder -> power, authority")
}

func TestTranslateDirectory_NoMarkdown(t *testing.T) {
	dir := t.TempDir()
	fake := &fakeTranslator{}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

	_, err := o.TranslateDirectory(context.Background(), dir, io.Discard)
	var inputErr *types.InputError
	require.True(t, errors.As(err, &inputErr), "want InputError, got %T", err)
}

func TestTranslateDirectory_NoTempLeftovers(t *testing.T) {
	dir := threeChunks(t)
	fake := &fakeTranslator{}
	o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

	_, err := o.TranslateDirectory(context.Background(), dir, io.Discard)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 6, "three sources plus three outputs, nothing else")
}

func TestTranslateFile(t *testing.T) {
	t.Run("translates beside source", func(t *testing.T) {
		dir := setupChunks(t, map[string]string{"notes.md": "hola"})
		fake := &fakeTranslator{}
		o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

		report, err := o.TranslateFile(context.Background(), filepath.Join(dir, "notes.md"), io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Translated)

		data, err := os.ReadFile(filepath.Join(dir, "notes_English.md"))
		require.NoError(t, err)
		assert.Equal(t, "T:hola", string(data))
	})

	t.Run("refuses to re-translate an output", func(t *testing.T) {
		dir := setupChunks(t, map[string]string{"notes_English.md": "already done"})
		fake := &fakeTranslator{}
		o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

		report, err := o.TranslateFile(context.Background(), filepath.Join(dir, "notes_English.md"), io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 0, fake.calls)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("missing file is an InputError", func(t *testing.T) {
		fake := &fakeTranslator{}
		o := newTestOrchestrator(t, fake, types.TranslateConfig{}, nil)

		_, err := o.TranslateFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"), io.Discard)
		var inputErr *types.InputError
		require.True(t, errors.As(err, &inputErr), "want InputError, got %T", err)
	})
}

// blankTranslator successfully returns whitespace, which the orchestrator
// must treat as a failure rather than commit as a blank output.
type blankTranslator struct{}

func (b *blankTranslator) Name() string { return "blank" }

func (b *blankTranslator) Translate(context.Context, provider.Request) (string, error) {
	return "  \n", nil
}

func TestTranslateDirectory_EmptyProviderResult(t *testing.T) {
	dir := setupChunks(t, map[string]string{"001-a.md": "contenido"})
	o := newTestOrchestrator(t, &blankTranslator{}, types.TranslateConfig{}, nil)

	var out bytes.Buffer
	report, err := o.TranslateDirectory(context.Background(), dir, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, out.String(), "empty translation")
	_, statErr := os.Stat(filepath.Join(dir, "001-a_English.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewOrchestrator_Validation(t *testing.T) {
	fake := &fakeTranslator{}
	tests := []struct {
		name string
		cfg  types.TranslateConfig
	}{
		{"missing source language", types.TranslateConfig{TargetLang: "English"}},
		{"missing target language", types.TranslateConfig{SourceLang: "Spanish"}},
		{
			"template without placeholders",
			types.TranslateConfig{SourceLang: "Spanish", TargetLang: "English", PromptTemplate: "Just translate it."},
		},
		{
			"template missing target placeholder",
			types.TranslateConfig{SourceLang: "Spanish", TargetLang: "English", PromptTemplate: "From {source} please."},
		},
		{
			"negative context lines",
			types.TranslateConfig{SourceLang: "Spanish", TargetLang: "English", ContextLines: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrchestrator(fake, tt.cfg, nil)
			var cfgErr *types.ConfigError
			require.True(t, errors.As(err, &cfgErr), "want ConfigError, got %T", err)
		})
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		src    string
		target string
		want   string
	}{
		{"001-intro.md", "English", "001-intro_English.md"},
		{"doc_chunk_002_pages_11-20.md", "English", "doc_chunk_002_pages_11-20_English.md"},
		{"notes.md", "French", "notes_French.md"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.src, tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.src, tt.target))
		})
	}
}

func TestIsOutputName(t *testing.T) {
	assert.True(t, IsOutputName("001-intro_English.md", "English"))
	assert.False(t, IsOutputName("001-intro.md", "English"))
	assert.False(t, IsOutputName("001-intro_English.md", "French"))
	assert.False(t, IsOutputName("english_notes.md", "English"))
}
