package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/support-analytics/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	sourceName string
	strict     bool
	clearCache bool
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "support-analytics",
	Short: "Dashboards for customer-support conversations and issues",
	Long: `Load support conversations, messages and classified issues from a record
store and summarize them: totals, resolution rate, issues per category,
message sentiment and the issue list.

Stores:
  • supabase  hosted PostgREST tables (SUPABASE_URL, SUPABASE_ANON_KEY)
  • sqlite    a local export of the three tables (SQLITE_PATH)
  • mongo     a MongoDB database (MONGODB_URI, MONGODB_DATABASE)

Quick Start:
  support-analytics summary                     # Dashboard in the terminal
  support-analytics issues --status open        # Only open issues
  support-analytics export --format md          # Write a Markdown report
  support-analytics serve                       # HTTP API and websocket

Configuration is read from --config or ~/.support-analytics.yaml, then
overridden by environment variables and flags.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/"+internal.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "", "Record store: supabase, sqlite or mongo")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Fail on malformed rows instead of skipping them")
	rootCmd.PersistentFlags().BoolVar(&clearCache, "clear-cache", false, "Clear the last-good dashboard cache before loading")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
