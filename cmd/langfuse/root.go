package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "langfuse",
	Short: "Langfuse trace query service",
	Long: `Langfuse trace query service serves session-scoped trace queries over HTTP.

Every query passes through an advisory engine before it reaches the store:
  - Unbounded queries get a default time window
  - Full-payload field selections are reduced to core fields
  - Oversized or missing result limits are capped
  - Expensive access patterns produce warnings and a performance estimate`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
