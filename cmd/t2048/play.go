package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start a game on the given board (default: 2048).

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  P/Space           - Pause
  R                 - Restart (after the game ends)
  B/Esc             - Leave a finished or paused game
  Q/Ctrl+C          - Quit

Presets:
  classic  - 4x4 board, goal 2048
  double   - 4x4 board, two tiles spawn after every move
  mini     - 3x3 board, goal 256
  big      - 5x5 board, goal 4096

Examples:
  t2048 play
  t2048 play 2048_mini
  t2048 play --preset big
  t2048 play --config ./my-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := resolveGameID(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available boards.")
		os.Exit(1)
	}

	// The game falls back to defaults on a bad file; say so up front.
	if _, cfgErr := config.LoadBoard(flagConfig); cfgErr != nil {
		logger.Warn("using default board config", "error", cfgErr)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if errors.Is(runErr, tui.ErrResultNotSaved) {
		logger.Warn("game finished but was not saved", "error", runErr)
		return
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveGameID picks the board from the argument or the --preset flag.
func resolveGameID(args []string) (string, error) {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return "", err
	}

	if len(args) > 0 {
		if flagPreset != "" {
			return "", fmt.Errorf("use either a board argument or --preset, not both")
		}
		return args[0], nil
	}
	return t2048.GameID(preset), nil
}
