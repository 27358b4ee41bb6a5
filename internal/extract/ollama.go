package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/meshintel/cre-ledger/pkg/types"
)

// defaultOllamaURL is the local Ollama server address.
const defaultOllamaURL = "http://localhost:11434"

// OllamaBackend calls a local Ollama server's generate API with
// format "json" so the response body is a single JSON object.
type OllamaBackend struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaBackend builds a backend against baseURL, defaulting to the
// local server when empty.
func NewOllamaBackend(baseURL, model string) *OllamaBackend {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	return &OllamaBackend{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// ollamaRequest is the non-streaming generate request body.
type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system,omitempty"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

// ollamaResponse is the generate response body.
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Extract sends the article to /api/generate and decodes the JSON object
// carried in the response field.
func (b *OllamaBackend) Extract(ctx context.Context, article string) (types.RawTransaction, error) {
	prompt, err := renderUserPrompt(article)
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  b.model,
		System: systemPrompt(),
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return types.RawTransaction{}, fmt.Errorf("calling Ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return types.RawTransaction{}, fmt.Errorf("Ollama API returned %d: %s", resp.StatusCode, string(msg))
	}

	var oResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return types.RawTransaction{}, fmt.Errorf("decoding Ollama response: %w", err)
	}
	if oResp.Response == "" {
		return types.RawTransaction{}, fmt.Errorf("Ollama returned empty response")
	}

	var raw types.RawTransaction
	if err := json.Unmarshal([]byte(oResp.Response), &raw); err != nil {
		return types.RawTransaction{}, fmt.Errorf("parsing model response JSON: %w", err)
	}
	return raw, nil
}
