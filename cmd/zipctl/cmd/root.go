// Package cmd provides the CLI commands for zipctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zipshipping/internal/logging"
)

const version = "0.1.0"

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "zipctl",
		Short: "Check postcode restricted shipping rates",
		Long: `zipctl evaluates the ZIP restricted shipping method offline.

Examples:
  zipctl evaluate --allowed "110 00,2*,350*" --cost 49 11000
  zipctl patterns "110 00
2*"
  zipctl validate --file settings.yaml`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.DefaultConfig()
			cfg.Format = "console"
			if verbose {
				cfg.Level = "debug"
			}
			if err := logging.Initialize(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newPatternsCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zipctl version %s\n", version)
		},
	})
	return root
}
