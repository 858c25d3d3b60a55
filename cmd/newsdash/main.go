// Package main provides the newsdash CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	// Missing .env is fine; config falls back to real environment variables.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the newsdash CLI.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "newsdash",
		Short:   "Aggregate news and blog articles with payout reporting",
		Long:    "newsdash pulls articles from the Guardian and Dev.to APIs, filters them, computes per-author payouts, and exports CSV/PDF reports.",
		Version: version,
	}

	rootCmd.SetVersionTemplate("newsdash version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	rootCmd.AddCommand(newFetchCmd(&configPath))
	rootCmd.AddCommand(newSummaryCmd(&configPath))
	rootCmd.AddCommand(newExportCmd(&configPath))
	rootCmd.AddCommand(newRateCmd(&configPath))

	return rootCmd
}
