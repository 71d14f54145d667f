package t2048

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	ID      string
	Rows    int
	Cols    int
	Board   [][]int // Tile values, 0 for empty
	Moves   int
	MaxTile int
	Status  Status
	Paused  bool
	Changes []Change // Changes of the last move or restart
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:   g.tick,
		ID:     g.id,
		Paused: g.paused || g.tooSmall,
		Status: StatusOngoing,
	}
	if g.engine == nil {
		return s
	}

	grid := g.engine.Grid()
	s.Rows = grid.Rows()
	s.Cols = grid.Cols()
	s.Board = grid.Values()
	s.Moves = g.engine.Moves()
	s.MaxTile = grid.MaxTile()
	s.Status = g.engine.Status()
	s.Changes = g.engine.LastChanges()
	return s
}
