// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRulesTranslate(t *testing.T) {
	t.Run("identity without rules", func(t *testing.T) {
		r, err := NewRules("")
		require.NoError(t, err)

		got, err := r.Translate(context.Background(), Request{Text: "unchanged text"})
		require.NoError(t, err)
		assert.Equal(t, "unchanged text", got)
	})

	t.Run("longest term wins", func(t *testing.T) {
		path := writeRules(t, "law: statute\nnatural law: lex naturalis\n")
		r, err := NewRules(path)
		require.NoError(t, err)

		got, err := r.Translate(context.Background(), Request{Text: "natural law and law"})
		require.NoError(t, err)
		assert.Equal(t, "lex naturalis and statute", got)
	})

	t.Run("first rendering is the replacement", func(t *testing.T) {
		path := writeRules(t, "poder: power, authority\n")
		r, err := NewRules(path)
		require.NoError(t, err)

		got, err := r.Translate(context.Background(), Request{Text: "el poder"})
		require.NoError(t, err)
		assert.Equal(t, "el power", got)
	})

	t.Run("prompt and context are ignored", func(t *testing.T) {
		r, err := NewRules("")
		require.NoError(t, err)

		got, err := r.Translate(context.Background(), Request{
			Text:          "text only",
			SourceLang:    "Spanish",
			TargetLang:    "English",
			Dictionary:    "## Translation Dictionary never applied",
			ContextBefore: "previous lines",
			ContextAfter:  "next lines",
		})
		require.NoError(t, err)
		assert.Equal(t, "text only", got)
	})

	t.Run("missing rules file", func(t *testing.T) {
		_, err := NewRules(filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
	})
}
