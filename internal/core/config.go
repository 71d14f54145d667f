package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Input polling ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic tile spawns
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what the platform reads back from a game after each tick.
type GameState struct {
	Moves    int  // Moves applied since the last reset
	MaxTile  int  // Highest tile on the board
	GameOver bool // No move can change the board any more
	Won      bool // The winning tile was reached
	Paused   bool // Whether the game is paused
}

// Finished reports whether the game reached a terminal state.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// Outcome returns a short label for the state, used by history records.
func (s GameState) Outcome() string {
	switch {
	case s.Won:
		return "won"
	case s.GameOver:
		return "game_over"
	default:
		return "abandoned"
	}
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	Moved bool // A move cycle ran during this tick
}
