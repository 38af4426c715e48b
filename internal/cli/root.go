// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chessmine/chessmine/internal/config"
	"github.com/chessmine/chessmine/internal/store"
	"github.com/chessmine/chessmine/internal/ui"
)

var (
	// Global flags
	configPath string
	dbPathFlag string

	// Resolved values
	resolvedDBPath string
	cfg            *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chessmine",
	Short: "Chessmine - a chess game feature-mining engine",
	Long: `Chessmine replays PGN game transcripts, mines them for tactical
motifs (pins, forks, discovered checks, back rank mates, ...), and
indexes the results in SQLite for querying with ChessQL.

ChessQL is a small boolean expression language over game fields and
motifs, compiled to parameterized SQL:

  chessmine query "white_elo > 2500 AND motif(fork)"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Resolve database path: explicit flag > config > default
		if dbPathFlag != "" {
			resolvedDBPath = dbPathFlag
		} else {
			resolvedDBPath = cfg.DatabasePath()
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the SQLite index (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// openStore opens the resolved database.
func openStore() (*store.Store, error) {
	return store.Open(resolvedDBPath)
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}
