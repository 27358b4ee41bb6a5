// Package extract turns news-article text into a structured transaction
// via a Generative AI API. Backends share one prompt pair and one output
// contract; callers see a single collapsed failure mode, with the cause
// preserved in the error chain.
package extract

import (
	"context"
	"fmt"

	"github.com/meshintel/cre-ledger/pkg/types"
)

// Backend abstracts the model API so tests can supply a mock. Each
// implementation sends the shared prompts for one article and returns the
// parsed transaction. One call, one outcome: backends do not retry.
type Backend interface {
	Extract(ctx context.Context, article string) (types.RawTransaction, error)
}

// defaultModels maps each backend to the model used when config leaves
// Model empty.
var defaultModels = map[types.AIBackendName]string{
	types.BackendOpenAI: "gpt-4.1-mini",
	types.BackendOllama: "llama3.1",
	types.BackendGemini: "gemini-1.5-flash",
}

// ResolveDefaults fills the backend name and model when config leaves
// them empty. An empty backend name selects openai, matching the service
// the extraction prompts were tuned against.
func ResolveDefaults(cfg types.ExtractionConfig) types.ExtractionConfig {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendOpenAI
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Backend]
	}
	return cfg
}

// NewBackend constructs the backend named in cfg.
func NewBackend(cfg types.ExtractionConfig) (Backend, error) {
	cfg = ResolveDefaults(cfg)

	switch cfg.Backend {
	case types.BackendOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai backend requires an API key")
		}
		return NewOpenAIBackend(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case types.BackendOllama:
		return NewOllamaBackend(cfg.BaseURL, cfg.Model), nil
	case types.BackendGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini backend requires an API key")
		}
		return NewGeminiBackend(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q: use openai, ollama, or gemini", cfg.Backend)
	}
}
