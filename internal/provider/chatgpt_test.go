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

func TestChatGPTTranslate(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "Hello world"}}},
		})
	}))
	defer srv.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = srv.URL
	defer func() { openaiAPIURL = oldURL }()

	g, err := NewChatGPT("", "test-key")
	require.NoError(t, err)

	got, err := g.Translate(context.Background(), Request{
		Text:       "Hola mundo",
		SourceLang: "Spanish",
		TargetLang: "English",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, defaultChatGPTModel, gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Hola mundo")
}

func TestChatGPTTranslate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer srv.Close()

	oldURL := openaiAPIURL
	openaiAPIURL = srv.URL
	defer func() { openaiAPIURL = oldURL }()

	g, err := NewChatGPT("gpt-4o", "test-key")
	require.NoError(t, err)

	_, err = g.Translate(context.Background(), Request{Text: "x", SourceLang: "a", TargetLang: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
