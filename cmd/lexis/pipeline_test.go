package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smyrgeorge/lexis/pkg/types"
)

func TestResolvePipelinePDF(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "myproject"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "myproject", "doc.pdf"), []byte("%PDF"), 0o644))

	t.Run("accepts a project-relative document", func(t *testing.T) {
		path, err := resolvePipelinePDF(ws, filepath.Join("myproject", "doc.pdf"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(ws, "myproject", "doc.pdf"), path)
	})

	rejected := []struct {
		name string
		rel  string
	}{
		{"absolute path", filepath.Join(ws, "myproject", "doc.pdf")},
		{"escapes the workspace", filepath.Join("..", "doc.pdf")},
		{"no project subdirectory", "doc.pdf"},
		{"name with spaces", filepath.Join("myproject", "my doc.pdf")},
		{"name with dots", filepath.Join("myproject", "v1.2.pdf")},
		{"not a pdf", filepath.Join("myproject", "doc.txt")},
		{"missing file", filepath.Join("myproject", "other.pdf")},
	}
	for _, tc := range rejected {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := resolvePipelinePDF(ws, tc.rel)
			var inputErr *types.InputError
			require.True(t, errors.As(err, &inputErr), "want InputError, got %v", err)
		})
	}
}
