// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudeTranslate(t *testing.T) {
	var gotReq claudeRequest
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(claudeResponse{
			Content: []claudeContent{{Type: "text", Text: "Hello world"}},
		})
	}))
	defer srv.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = srv.URL
	defer func() { claudeAPIURL = oldURL }()

	c, err := NewClaude("", "test-key")
	require.NoError(t, err)

	got, err := c.Translate(context.Background(), Request{
		Text:       "Hola mundo",
		SourceLang: "Spanish",
		TargetLang: "English",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)

	assert.Equal(t, "test-key", gotHeader.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeader.Get("anthropic-version"))
	assert.Equal(t, defaultClaudeModel, gotReq.Model)
	assert.Equal(t, claudeMaxTokens, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Hola mundo")
}

func TestClaudeTranslate_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(claudeResponse{})
	}))
	defer srv.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = srv.URL
	defer func() { claudeAPIURL = oldURL }()

	c, err := NewClaude("claude-3-5-sonnet-20241022", "test-key")
	require.NoError(t, err)

	_, err = c.Translate(context.Background(), Request{Text: "x", SourceLang: "a", TargetLang: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

func TestClaudeTranslate_RejectedKey(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, `{"error":{"message":"invalid x-api-key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = srv.URL
	defer func() { claudeAPIURL = oldURL }()

	c, err := NewClaude("", "bad-key")
	require.NoError(t, err)

	_, err = c.Translate(context.Background(), Request{Text: "x", SourceLang: "a", TargetLang: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1, hits, "a rejected request must not be retried")
}
