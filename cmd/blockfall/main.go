// blockfall is a falling-block puzzle for the terminal.
//
// Usage:
//
//	blockfall play            - Play in the current terminal
//	blockfall serve           - Start SSH server for remote play
//	blockfall scores          - Show recorded runs
//	blockfall replay          - Re-run a seeded session headless
//	blockfall config          - Inspect or write the config file
//
// Global flags:
//
//	--config <path>  - Path to a config YAML (default: ~/.blockfall/config.yaml)
//	--db <path>      - Path to the runs database (default: ~/.blockfall/blockfall.db)
//	--fps <rate>     - Override the simulation tick rate (default: 100)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velikanov/blockfall/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagFPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle in your terminal",
	Long: `Blockfall is a terminal falling-block puzzle with a deterministic
rule engine: the same seed and inputs always produce the same game.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  replay   - Re-run a seeded session headless
  config   - Inspect or write the config file

Examples:
  blockfall play
  blockfall play --seed 42 --preset snappy
  blockfall serve --ssh :2222
  blockfall scores --interactive
  blockfall replay --seed 42 --ticks 20000`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation tick rate (0 = from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Game.TickRate = flagFPS
	}
	return cfg, nil
}
