package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/velikanov/blockfall/internal/config"
	"github.com/velikanov/blockfall/internal/core"
	"github.com/velikanov/blockfall/internal/game"
	"github.com/velikanov/blockfall/internal/platform/tui"
	"github.com/velikanov/blockfall/internal/storage"
)

var (
	flagSeed    int64
	flagPreset  string
	flagNoGhost bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play blockfall",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right/A/D - Move piece
  Up/W/X         - Rotate clockwise
  Z              - Rotate counter-clockwise
  Down/S         - Soft drop
  Space          - Hard drop
  C              - Hold piece
  P/Esc          - Pause
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit

Feel presets:
  default - 167 ms delay, 33 ms repeat
  snappy  - 100 ms delay, 16 ms repeat
  relaxed - 250 ms delay, 50 ms repeat

Examples:
  blockfall play
  blockfall play --seed 42
  blockfall play --preset snappy --no-ghost`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the piece sequence (0 = time based)")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Input feel preset: default, snappy, relaxed")
	playCmd.Flags().BoolVar(&flagNoGhost, "no-ghost", false, "Hide the landing preview")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagPreset != "" {
		config.ApplyPreset(&cfg, config.FeelPreset(flagPreset))
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rcfg := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  cfg.Game.TickRate,
		Seed:      cfg.Game.Seed,
		ShowGhost: cfg.Game.ShowGhost && !flagNoGhost,
	}
	if flagSeed != 0 {
		rcfg.Seed = flagSeed
	}

	g := game.NewWithTuning(game.Tuning{
		DASMs:     cfg.Input.DASMs,
		ARRMs:     cfg.Input.ARRMs,
		ShowGhost: rcfg.ShowGhost,
	})

	dbPath, err := config.UserDBPath(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	var store *storage.Store
	if dbPath != "" {
		store, err = storage.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
			// Continue without storage - game still works
			store = nil
		}
	}

	runErr := tui.Run(g, store, rcfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
