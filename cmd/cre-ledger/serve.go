package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/cre-ledger/internal/extract"
	"github.com/meshintel/cre-ledger/internal/pipeline"
	"github.com/meshintel/cre-ledger/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction pipeline over HTTP",
	Long: `Serve starts a small web server: upload an article on the index page and
the extracted transaction is appended to the workbook. The workbook is
also exposed as JSON under /api/transactions.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if !cmd.Flags().Changed("addr") {
		addr = configDefault("serve.addr", "", ":8080")
	}
	db, _ := cmd.Flags().GetString("db")
	bookPath := configDefault("ledger.path", db, defaultBookPath)

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

	return web.NewServer(runner, bookPath).Router().Run(addr)
}

func init() {
	registerExtractionFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("db", "", "workbook path (default transactions.xlsx)")

	rootCmd.AddCommand(serveCmd)
}
