package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/wikibase/cmd/wbapi/commands"
	"github.com/teranos/wikibase/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wbapi",
	Short: "wbapi - Wikibase API client",
	Long: `wbapi - command line client for the Wikibase action API.

Logs in with the configured account, reads entities and claims, and edits
claims. Every request carries maxlag and backs off while the servers lag.

Available commands:
  entities      - Fetch entities
  claims        - List claims of an entity
  add-claim     - Create a claim
  set-claim     - Replace the value of a claim
  remove-claims - Remove claims
  am            - Show and validate configuration
  version       - Show version information

Examples:
  wbapi entities Q42
  wbapi claims --entity Q42 --property P31
  wbapi add-claim Q4115189 P31 --item Q5 --summary "sandbox test"
  wbapi am show --format json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logJSON, verbosity := commands.LogSettings(cmd)
		if err := logger.Initialize(logJSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized", "level", logger.LevelName(verbosity))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON to stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&commands.ConfigFile, "config", "", "Read configuration from this file only")

	rootCmd.AddCommand(commands.EntitiesCmd)
	rootCmd.AddCommand(commands.ClaimsCmd)
	rootCmd.AddCommand(commands.AddClaimCmd)
	rootCmd.AddCommand(commands.SetClaimCmd)
	rootCmd.AddCommand(commands.RemoveClaimsCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
