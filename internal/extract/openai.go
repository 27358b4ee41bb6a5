// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/meshintel/cre-ledger/pkg/types"
)

// OpenAIBackend calls the OpenAI Chat Completions API with strict JSON
// output requested.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a client for the given key and model. baseURL
// overrides the API endpoint for compatible gateways and tests; empty
// keeps the public endpoint.
func NewOpenAIBackend(apiKey, model, baseURL string) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Extract sends the article and decodes the model's JSON object response.
func (b *OpenAIBackend) Extract(ctx context.Context, article string) (types.RawTransaction, error) {
	prompt, err := renderUserPrompt(article)
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("calling OpenAI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return types.RawTransaction{}, fmt.Errorf("OpenAI API returned no choices")
	}

	var raw types.RawTransaction
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &raw); err != nil {
		return types.RawTransaction{}, fmt.Errorf("parsing model response JSON: %w", err)
	}
	return raw, nil
}
