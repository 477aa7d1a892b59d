package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "santactl",
		Short: "CLI tool for the Santa's workshop API",
		Long: `santactl is a CLI tool for interacting with the Santa's workshop JSON API.

It covers profiles, the points wallet and shop, the gift planner, the maze,
the mini-games, and real-time SSE event streaming.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q: must be text or json", cfg.Output)
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			client.verbose = cfg.Verbose
			client.log = cmd.ErrOrStderr()
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SANTACTL_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: SANTACTL_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newWalletCmd())
	rootCmd.AddCommand(newShopCmd())
	rootCmd.AddCommand(newPlannerCmd())
	rootCmd.AddCommand(newMazeCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// output returns a formatter writing to the command's stdout
func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
