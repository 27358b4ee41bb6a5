package types

// AIBackendName identifies the model API used for extraction.
type AIBackendName string

const (
	BackendOpenAI AIBackendName = "openai"
	BackendOllama AIBackendName = "ollama"
	BackendGemini AIBackendName = "gemini"
)

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Backend selects the model API: openai, ollama, or gemini.
	Backend AIBackendName `json:"backend" yaml:"backend"`

	// Model is the AI model identifier (e.g. "gpt-4.1-mini"). Empty means
	// the backend's default model.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint, for compatible gateways and tests.
	// For ollama it is the server address (default "http://localhost:11434").
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// ExtractionConfig holds settings for the extraction stage.
type ExtractionConfig struct {
	AIConfig `yaml:",inline"`

	// Strict rejects extractions missing any of the required fields
	// (Date, Asset, Price, Buyer, Seller) instead of recording them as-is.
	Strict bool `json:"strict" yaml:"strict"`
}

// LedgerConfig holds settings for the transaction workbook.
type LedgerConfig struct {
	// Path is the workbook file (created on first append if absent).
	Path string `json:"path" yaml:"path"`
}

// RunLogConfig holds settings for the pipeline audit log.
type RunLogConfig struct {
	// Path is the SQLite database file. Empty disables run logging.
	Path string `json:"path" yaml:"path"`
}

// ServeConfig holds settings for the upload-and-view web shell.
type ServeConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations. Section names match
// the cre-ledger.yaml keys the CLI reads.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Ledger     LedgerConfig     `json:"ledger" yaml:"ledger"`
	RunLog     RunLogConfig     `json:"runlog" yaml:"runlog"`
	Serve      ServeConfig      `json:"serve" yaml:"serve"`
}
