package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagHistoryBest  bool
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
	flagHistoryID    string
)

var historyCmd = &cobra.Command{
	Use:   "history [board]",
	Short: "Show finished games",
	Long: `Display recent games for a board, or for all boards if none is given.

Examples:
  t2048 history
  t2048 history 2048_mini --best
  t2048 history --tui
  t2048 history 2048_big --clear
  t2048 history --session 6f1c0a52-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryBest, "best", false, "Order by highest tile instead of date")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse history interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded games for the board")
	historyCmd.Flags().StringVar(&flagHistoryID, "session", "", "Show the game with this session ID")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available boards.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryID != "" {
		r, err := store.ResultBySession(flagHistoryID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving game: %v\n", err)
			os.Exit(1)
		}
		if r == nil {
			fmt.Fprintf(os.Stderr, "Error: no game with session %q\n", flagHistoryID)
			os.Exit(1)
		}
		fmt.Printf("Session:  %s\n", r.SessionID)
		fmt.Printf("Board:    %s (%dx%d)\n", r.GameID, r.Rows, r.Cols)
		fmt.Printf("Outcome:  %s\n", r.Outcome)
		fmt.Printf("Max tile: %d\n", r.MaxTile)
		fmt.Printf("Moves:    %d\n", r.Moves)
		fmt.Printf("Played:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		return
	}

	if flagHistoryClear {
		if gameID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a board")
			os.Exit(1)
		}
		if err := store.ClearResults(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared history for %s\n", gameID)
		return
	}

	if flagHistoryTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	var results []storage.GameResult
	if flagHistoryBest {
		results, err = store.BestResults(gameID, flagHistoryLimit)
	} else {
		results, err = store.RecentResults(gameID, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		return
	}

	title := "all boards"
	if gameID != "" {
		title = gameID
	}
	fmt.Printf("Game history - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-6s  %-5s  %s\n", "#", "Board", "Outcome", "Max", "Moves", "Size", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-6s  %-5s  %s\n", "-", "-----", "-------", "---", "-----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-12s  %-10s  %-7d  %-6d  %-5s  %s\n",
			i+1, r.GameID, r.Outcome, r.MaxTile, r.Moves,
			fmt.Sprintf("%dx%d", r.Rows, r.Cols),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if gameID != "" {
		if stats, err := store.GetGameStats(gameID); err == nil {
			printStats(stats)
		}
		return
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		return
	}
	for _, g := range registry.List() {
		if stats, ok := all[g.ID]; ok {
			printStats(stats)
		}
	}
}

func printStats(s *storage.GameStats) {
	fmt.Printf("  %-12s  games: %d  wins: %d  best tile: %d  avg moves: %.0f\n",
		s.GameID, s.GamesCount, s.Wins, s.BestTile, s.AvgMoves)
}
