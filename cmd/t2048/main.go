// t2048 plays 2048 in the terminal.
//
// Usage:
//
//	t2048 list               - List available boards
//	t2048 play [board]       - Play a board (default: 2048)
//	t2048 menu               - Pick boards interactively
//	t2048 history [board]    - Show finished games
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: ~/.t2048/history.db)
//	--config <path>    - Board config YAML
//	--preset <name>    - Board preset: classic, double, mini, big
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	// Import the board engine to register its presets
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPreset string
)

// logger reports non-fatal problems on stderr.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "t2048"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is a terminal version of the 2048 sliding tile puzzle.

Available commands:
  list     - Show all board presets
  play     - Play a board directly
  menu     - Interactive board picker
  history  - View finished games
  serve    - Start SSH server for remote play

Examples:
  t2048 play
  t2048 play --preset mini
  t2048 play --config ./my-board.yaml --seed 42
  t2048 menu
  t2048 serve --ssh :2222`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		t2048.SetConfigPath(flagConfig)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to board config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Board preset: classic, double, mini, big")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// runtimeConfig builds the runtime config from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the history database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
