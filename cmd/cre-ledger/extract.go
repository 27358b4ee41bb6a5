package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/cre-ledger/internal/extract"
	"github.com/meshintel/cre-ledger/internal/pipeline"
	"github.com/meshintel/cre-ledger/internal/runlog"
	"github.com/meshintel/cre-ledger/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [article.txt] [database.xlsx]",
	Short: "Extract a transaction from a news article into the workbook",
	Long: `Extract reads a plain-text news article, asks the configured AI backend
for the transaction details, normalizes prices, yields, and areas into
numbers, and appends one row to the workbook. Values the normalizer cannot
parse are kept as the model returned them.

The command exits 0 when a row was written and 1 otherwise.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	articlePath, bookPath := args[0], args[1]

	data, err := os.ReadFile(articlePath)
	if err != nil {
		return fmt.Errorf("reading article: %w", err)
	}

	cfg := extractionConfig(cmd)
	backend, err := extract.NewBackend(cfg)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Backend:     backend,
		BackendName: cfg.Backend,
		Model:       cfg.Model,
		Strict:      cfg.Strict,
		Runs:        openRunLog(cmd),
		Out:         os.Stdout,
	}
	if runner.Runs != nil {
		defer runner.Runs.Close()
	}

	if !runner.Run(context.Background(), string(data), bookPath) {
		return fmt.Errorf("article not recorded")
	}
	return nil
}

// extractionConfig resolves the AI backend settings from flags, config,
// secrets, and environment, in that order.
func extractionConfig(cmd *cobra.Command) types.ExtractionConfig {
	backend, _ := cmd.Flags().GetString("backend")
	model, _ := cmd.Flags().GetString("model")
	baseURL, _ := cmd.Flags().GetString("base-url")
	apiKey, _ := cmd.Flags().GetString("api-key")
	strict, _ := cmd.Flags().GetBool("strict")

	cfg := types.ExtractionConfig{
		AIConfig: types.AIConfig{
			Backend: types.AIBackendName(configDefault("extraction.backend", backend, "")),
			Model:   configDefault("extraction.model", model, ""),
			BaseURL: configDefault("extraction.base-url", baseURL, ""),
		},
		Strict: strict || viper.GetBool("extraction.strict"),
	}
	cfg = extract.ResolveDefaults(cfg)
	cfg.APIKey = apiKeyFor(cfg.Backend, apiKey)
	return cfg
}

// apiKeyFor looks up the backend's API key: the flag wins, then the
// .secrets/ file, then the conventional environment variable.
func apiKeyFor(backend types.AIBackendName, flagVal string) string {
	switch backend {
	case types.BackendOpenAI:
		if v := secretDefault("openai-api-key", flagVal); v != "" {
			return v
		}
		return os.Getenv("OPENAI_API_KEY")
	case types.BackendGemini:
		if v := secretDefault("gemini-api-key", flagVal); v != "" {
			return v
		}
		return os.Getenv("GEMINI_API_KEY")
	default:
		return flagVal
	}
}

// openRunLog opens the audit database named by --runlog or config. An
// empty path disables auditing; an unusable database is a warning, not
// a failure.
func openRunLog(cmd *cobra.Command) *runlog.Store {
	path, _ := cmd.Flags().GetString("runlog")
	if !cmd.Flags().Changed("runlog") {
		path = configDefault("runlog.path", "", runlog.DefaultPath)
	}
	if path == "" {
		return nil
	}

	runs, err := runlog.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run log unavailable: %v\n", err)
		return nil
	}
	return runs
}

// registerExtractionFlags adds the AI backend flags shared by extract
// and serve.
func registerExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", "AI backend: openai, ollama, or gemini (default openai)")
	cmd.Flags().String("model", "", "model identifier (default depends on backend)")
	cmd.Flags().String("base-url", "", "override the backend API base URL")
	cmd.Flags().String("api-key", "", "API key (overrides .secrets/ and environment)")
	cmd.Flags().Bool("strict", false, "reject articles missing date, asset, price, buyer, or seller")
	cmd.Flags().String("runlog", "", "run audit database path (empty string disables; default runs.db)")
}

func init() {
	registerExtractionFlags(extractCmd)

	rootCmd.AddCommand(extractCmd)
}
