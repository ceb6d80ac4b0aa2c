// Package main is the entry point for the TabKit CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tabkit",
		Short:        "TabKit: tabbed terminal viewer for project pages",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "path to tabkit.toml (default: search up from the working directory)")

	root.AddCommand(
		viewCmd(),
		checkCmd(),
		historyCmd(),
		initCmd(),
		pageCmd(),
	)

	return root
}
