// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cre-ledger CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/cre-ledger/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultBookPath is the workbook used when no database argument or
// config value is given.
const defaultBookPath = "transactions.xlsx"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// configDefault resolves a setting: flag value first, then the viper
// config key (file or CRE_LEDGER_* environment), then def.
func configDefault(key, flagVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}

// rootCmd is the base command for the cre-ledger CLI.
var rootCmd = &cobra.Command{
	Use:   "cre-ledger",
	Short: "Extract commercial real estate transactions into an xlsx ledger",
	Long: `cre-ledger reads a property news article, extracts the transaction details
with a Generative AI backend, normalizes the numeric fields, and appends the
result as a row of an xlsx workbook that serves as the transaction database.

The extract subcommand processes one article; db inspects and exports the
workbook; runs lists the extraction audit trail; serve exposes the same
pipeline to a browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cre-ledger.yaml or ~/.config/cre-ledger/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cre-ledger")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cre-ledger"))
		}
	}

	viper.SetEnvPrefix("CRE_LEDGER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
