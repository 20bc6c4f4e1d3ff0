// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smyrgeorge/lexis/pkg/types"
)

// fakeConverter implements Converter for testing. It returns canned Markdown
// or an error, depending on configuration, and counts invocations.
type fakeConverter struct {
	output string
	err    error
	calls  int
}

func (f *fakeConverter) Convert(pdfPath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// setupPDF creates a placeholder PDF file and returns its path.
func setupPDF(t *testing.T, name string) string {
	t.Helper()
	pdfPath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(pdfPath, []byte("fake pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return pdfPath
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		preCreate  bool // create output MD before running
		wantStatus Status
		wantCalls  int
		wantLog    string
	}{
		{
			name:       "successful conversion",
			converter:  &fakeConverter{output: "# Title\n\nContent here."},
			wantStatus: StatusConverted,
			wantCalls:  1,
			wantLog:    "converted:",
		},
		{
			name:       "skip existing markdown",
			converter:  &fakeConverter{output: "should not be called"},
			preCreate:  true,
			wantStatus: StatusSkipped,
			wantCalls:  0,
			wantLog:    "skipped:",
		},
		{
			name:       "conversion failure",
			converter:  &fakeConverter{err: errors.New("container crashed")},
			wantStatus: StatusFailed,
			wantCalls:  1,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath := setupPDF(t, "treatise.pdf")
			mdPath := OutputPath(pdfPath, "")

			if tt.preCreate {
				if err := os.WriteFile(mdPath, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertFile(tt.converter, pdfPath, "", types.ConvertConfig{}, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if tt.converter.calls != tt.wantCalls {
				t.Errorf("converter calls = %d, want %d", tt.converter.calls, tt.wantCalls)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}

			if tt.preCreate {
				data, err := os.ReadFile(mdPath)
				if err != nil {
					t.Fatal(err)
				}
				if string(data) != "existing" {
					t.Errorf("existing output was overwritten: %q", data)
				}
			}
		})
	}
}

func TestConvertFile_Wrap(t *testing.T) {
	pdfPath := setupPDF(t, "treatise.pdf")
	long := strings.Repeat("word ", 40) // 200 characters on one line
	conv := &fakeConverter{output: strings.TrimSpace(long)}

	var log bytes.Buffer
	status := ConvertFile(conv, pdfPath, "", types.ConvertConfig{Wrap: true, LineWidth: 40}, &log)
	if status != StatusConverted {
		t.Fatalf("status = %q, want %q", status, StatusConverted)
	}

	data, err := os.ReadFile(OutputPath(pdfPath, ""))
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if len(line) > 40 {
			t.Errorf("line longer than wrap width: %q", line)
		}
	}
}

func TestConvertFile_OutDir(t *testing.T) {
	pdfPath := setupPDF(t, "treatise.pdf")
	outDir := filepath.Join(t.TempDir(), "md")
	conv := &fakeConverter{output: "# Out\n\nbody"}

	var log bytes.Buffer
	status := ConvertFile(conv, pdfPath, outDir, types.ConvertConfig{}, &log)
	if status != StatusConverted {
		t.Fatalf("status = %q, want %q", status, StatusConverted)
	}
	if _, err := os.Stat(filepath.Join(outDir, "treatise.md")); err != nil {
		t.Errorf("expected output in outDir: %v", err)
	}
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 3)
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte("fake pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// b.md pre-exists, so b is skipped.
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("done"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := &fakeConverter{output: "# Converted"}
	var log bytes.Buffer
	result := ConvertBatch(conv, paths, "", types.ConvertConfig{}, &log)

	if result.Converted != 2 || result.Skipped != 1 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 converted, 1 skipped, 0 failed", result)
	}
	if result.Total() != 3 {
		t.Errorf("Total() = %d, want 3", result.Total())
	}
	if result.HasFailures() {
		t.Error("HasFailures() = true, want false")
	}
	if !strings.Contains(log.String(), "Batch summary: 2 converted, 1 skipped, 0 failed (total: 3)") {
		t.Errorf("missing batch summary in %q", log.String())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		pdfPath string
		outDir  string
		want    string
	}{
		{
			name:    "beside source by default",
			pdfPath: filepath.Join("docs", "treatise.pdf"),
			want:    filepath.Join("docs", "treatise.md"),
		},
		{
			name:    "outdir override",
			pdfPath: filepath.Join("docs", "treatise.pdf"),
			outDir:  "out",
			want:    filepath.Join("out", "treatise.md"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.pdfPath, tt.outDir); got != tt.want {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.pdfPath, tt.outDir, got, tt.want)
			}
		})
	}
}
