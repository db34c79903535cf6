package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	outputFormat string
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craftreq",
		Short: "craftreq - crafting requirement checks and success estimates",
		Long: `craftreq decides whether an inventory satisfies a crafting declaration
and how likely an actor is to succeed at it.

Examples:
  craftreq import declarations data/declarations.yaml
  craftreq import inventory workshop.yaml
  craftreq import actor smith.yaml
  craftreq check bookshelf --inventory workshop --batch 2
  craftreq missing bookshelf --inventory workshop
  craftreq chance bookshelf --actor smith
  craftreq validate
  craftreq serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewMissingCommand())
	rootCmd.AddCommand(NewChanceCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
