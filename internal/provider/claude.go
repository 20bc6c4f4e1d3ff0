// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smyrgeorge/lexis/internal/httputil"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test
// substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const (
	defaultClaudeModel = "claude-3-5-sonnet-20241022"
	claudeMaxTokens    = 8000
)

// Claude translates through the Claude Messages API.
type Claude struct {
	model  string
	apiKey string
	client *http.Client
}

// NewClaude builds the Claude backend. A missing API key is an AuthError.
func NewClaude(model, apiKey string) (*Claude, error) {
	if apiKey == "" {
		return nil, &types.AuthError{Provider: ProviderClaude, Hint: "ANTHROPIC_API_KEY"}
	}
	if model == "" {
		model = defaultClaudeModel
	}
	return &Claude{model: model, apiKey: apiKey}, nil
}

func (c *Claude) Name() string { return ProviderClaude }

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Translate sends the composed prompt as a single user message and returns
// the first text block of the response.
func (c *Claude) Translate(ctx context.Context, req Request) (string, error) {
	body := claudeRequest{
		Model:     c.model,
		MaxTokens: claudeMaxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: req.Compose()},
		},
	}

	header := http.Header{}
	header.Set("x-api-key", c.apiKey)
	header.Set("anthropic-version", "2023-06-01")

	var resp claudeResponse
	if err := httputil.PostJSON(ctx, c.client, claudeAPIURL, header, body, &resp); err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude returned no text content")
}
