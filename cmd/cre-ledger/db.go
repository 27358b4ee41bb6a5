// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/cre-ledger/internal/ledger"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect and export the transaction workbook",
	Long: `Db reads the xlsx workbook that extract writes. Use show to print the
rows as a table and export to write them as YAML or JSON.`,
}

// --- show subcommand ---

var dbShowCmd = &cobra.Command{
	Use:   "show [database.xlsx]",
	Short: "Print the recorded transactions as a table",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDbShow,
}

func runDbShow(cmd *cobra.Command, args []string) error {
	path := bookPathArg(args)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No transactions recorded.")
		return nil
	}

	tbl, err := ledger.Read(path)
	if err != nil {
		return err
	}
	ledger.FormatTable(tbl, os.Stdout)
	return nil
}

// --- export subcommand ---

var dbExportCmd = &cobra.Command{
	Use:   "export [database.xlsx]",
	Short: "Export the workbook to YAML or JSON",
	Long: `Export writes every transaction row to a YAML or JSON file next to the
workbook, or to the path given with --out.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDbExport,
}

func runDbExport(cmd *cobra.Command, args []string) error {
	path := bookPathArg(args)
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	tbl, err := ledger.Read(path)
	if err != nil {
		return err
	}

	switch format {
	case "yaml", "":
		if out == "" {
			out = swapExt(path, ".yaml")
		}
		if err := ledger.ExportYAML(tbl, out); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = swapExt(path, ".json")
		}
		if err := ledger.ExportJSON(tbl, out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	fmt.Printf("Exported %d transactions to %s\n", len(tbl.Rows), out)
	return nil
}

// --- shared helpers ---

func bookPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return configDefault("ledger.path", "", defaultBookPath)
}

func swapExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > 0 {
		return path[:i] + ext
	}
	return path + ext
}

func init() {
	dbExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	dbExportCmd.Flags().String("out", "", "output path (default: workbook path with the format extension)")

	dbCmd.AddCommand(dbShowCmd)
	dbCmd.AddCommand(dbExportCmd)

	rootCmd.AddCommand(dbCmd)
}
