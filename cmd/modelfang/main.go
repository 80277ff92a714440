// Package main provides the entry point for the modelfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/modelfang/cmd/modelfang/commands"
	"github.com/Sumatoshi-tech/modelfang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelfang",
		Short: "Modelfang - structural patch engine for system model graphs",
		Long: `Modelfang applies structural patches to parsed system models:
pattern-based deletion, scope creation, and fragment merges with upsert
semantics.

Commands:
  edit      Apply a modification plan to a model
  scopes    Inspect the scopes of one or more models
  validate  Validate a model interchange document`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewEditCommand())
	rootCmd.AddCommand(commands.NewScopesCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "modelfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
