// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/smyrgeorge/lexis/internal/httputil"
	"github.com/smyrgeorge/lexis/pkg/types"
)

// openaiAPIURL is the OpenAI chat completions endpoint. Package-level var
// for test substitution.
var openaiAPIURL = "https://api.openai.com/v1/chat/completions"

const defaultChatGPTModel = "gpt-4o"

// ChatGPT translates through the OpenAI chat completions API.
type ChatGPT struct {
	model  string
	apiKey string
	client *http.Client
}

// NewChatGPT builds the ChatGPT backend. A missing API key is an AuthError.
func NewChatGPT(model, apiKey string) (*ChatGPT, error) {
	if apiKey == "" {
		return nil, &types.AuthError{Provider: ProviderChatGPT, Hint: "OPENAI_API_KEY"}
	}
	if model == "" {
		model = defaultChatGPTModel
	}
	return &ChatGPT{model: model, apiKey: apiKey}, nil
}

func (g *ChatGPT) Name() string { return ProviderChatGPT }

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// chatChoice is one completion choice.
type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Translate sends the composed prompt as a single user message and returns
// the first choice's content.
func (g *ChatGPT) Translate(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: req.Compose()},
		},
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+g.apiKey)

	var resp chatResponse
	if err := httputil.PostJSON(ctx, g.client, openaiAPIURL, header, body, &resp); err != nil {
		return "", fmt.Errorf("chatgpt: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chatgpt returned no content")
	}
	return resp.Choices[0].Message.Content, nil
}
