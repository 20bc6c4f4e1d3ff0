// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{
			name:  "short line passes through",
			input: "A short paragraph.",
			width: 40,
			want:  "A short paragraph.",
		},
		{
			name:  "long prose is wrapped at word boundaries",
			input: "one two three four five six seven",
			width: 13,
			want:  "one two three\nfour five six\nseven",
		},
		{
			name:  "heading is never wrapped",
			input: "# A very long heading that would otherwise exceed the configured width by a lot",
			width: 20,
			want:  "# A very long heading that would otherwise exceed the configured width by a lot",
		},
		{
			name:  "table row is never wrapped",
			input: "| column one | column two | column three | column four |",
			width: 20,
			want:  "| column one | column two | column three | column four |",
		},
		{
			name:  "fence line is never wrapped",
			input: "```go this is a fence info string that is quite long indeed```",
			width: 10,
			want:  "```go this is a fence info string that is quite long indeed```",
		},
		{
			name:  "blank lines survive",
			input: "para one\n\npara two",
			width: 40,
			want:  "para one\n\npara two",
		},
		{
			name:  "word longer than width is not broken",
			input: "see https://example.com/a/very/long/url/that/never/ends ok",
			width: 10,
			want:  "see\nhttps://example.com/a/very/long/url/that/never/ends\nok",
		},
		{
			name:  "zero width disables wrapping",
			input: "one two three four five six seven",
			width: 0,
			want:  "one two three four five six seven",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapLines(tt.input, tt.width))
		})
	}
}

func TestWrapLines_PreservesWords(t *testing.T) {
	input := strings.Repeat("palabra intraducible ", 40)
	wrapped := WrapLines(input, 30)

	require.Equal(t, strings.Fields(input), strings.Fields(wrapped))

	for _, line := range strings.Split(wrapped, "\n") {
		if len(strings.Fields(line)) > 1 {
			assert.LessOrEqual(t, utf8.RuneCountInString(line), 30)
		}
	}
}
