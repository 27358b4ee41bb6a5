package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/cre-ledger/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent extraction runs from the audit log",
	Long: `Runs prints the audit trail the pipeline keeps in SQLite: when each
extraction ran, against which backend and model, and how it ended.`,
	RunE: runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("runlog")
	if path == "" {
		path = configDefault("runlog.path", "", runlog.DefaultPath)
	}
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := runlog.Open(path)
	if err != nil {
		return err
	}
	defer runs.Close()

	entries, err := runs.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-9s  %-17s  %-7s  %-24s  %s\n",
		"ID", "Started", "Duration", "Status", "Backend", "Asset", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, e := range entries {
		asset := e.Asset
		if len(asset) > 24 {
			asset = asset[:21] + "..."
		}
		errMsg := e.Error
		if len(errMsg) > 40 {
			errMsg = errMsg[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-9s  %-17s  %-7s  %-24s  %s\n",
			e.ID, e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.Duration.Round(time.Millisecond), e.Status, e.Backend, asset, errMsg)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(entries))
	return nil
}

func init() {
	runsCmd.Flags().String("runlog", "", "run audit database path (default runs.db)")
	runsCmd.Flags().Int("limit", 20, "maximum entries to list")

	rootCmd.AddCommand(runsCmd)
}
