package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/meshintel/cre-ledger/pkg/types"
)

// GeminiBackend calls the Gemini API with a JSON response MIME type.
// The client is built per call: the genai SDK wants a context at
// construction and one extraction runs per invocation.
type GeminiBackend struct {
	apiKey string
	model  string
}

// NewGeminiBackend builds a backend for the given key and model.
func NewGeminiBackend(apiKey, model string) *GeminiBackend {
	return &GeminiBackend{apiKey: apiKey, model: model}
}

// Extract sends the article and decodes the JSON object from the first
// text part of the first candidate.
func (b *GeminiBackend) Extract(ctx context.Context, article string) (types.RawTransaction, error) {
	prompt, err := renderUserPrompt(article)
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("rendering prompt: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(b.apiKey))
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("creating Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(b.model)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt())},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("calling Gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return types.RawTransaction{}, fmt.Errorf("Gemini API returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			continue
		}
		var raw types.RawTransaction
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return types.RawTransaction{}, fmt.Errorf("parsing model response JSON: %w", err)
		}
		return raw, nil
	}

	return types.RawTransaction{}, fmt.Errorf("no text content in Gemini API response")
}
