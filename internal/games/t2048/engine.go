package t2048

import (
	"errors"
	"fmt"
	"sync"
)

// ErrGameFinished is returned when a move is requested after a win or a loss.
var ErrGameFinished = errors.New("t2048: game finished, restart to play again")

// SecondTilePolicy decides whether a spawn adds a second tile when at
// least two cells are free.
type SecondTilePolicy string

const (
	// SecondTileCoin adds the second tile on a fair coin flip.
	SecondTileCoin SecondTilePolicy = "coin"
	// SecondTileAlways adds the second tile every time.
	SecondTileAlways SecondTilePolicy = "always"
)

// Options configures an Engine.
type Options struct {
	Rows              int
	Cols              int
	WinValue          int
	Spawn4Probability float64 // Chance a spawned tile is a 4 instead of a 2
	SecondTile        SecondTilePolicy
	SkipDeadMoves     bool // Do not spawn after a move that changed nothing
}

// DefaultOptions returns the classic 4x4 rules.
func DefaultOptions() Options {
	return Options{
		Rows:              DefaultSize,
		Cols:              DefaultSize,
		WinValue:          DefaultWinValue,
		Spawn4Probability: 0.1,
		SecondTile:        SecondTileCoin,
	}
}

// Validate checks the options for values the engine cannot run with.
func (o Options) Validate() error {
	if err := checkSize(o.Rows, o.Cols); err != nil {
		return err
	}
	if o.WinValue < 8 || !IsTileValue(o.WinValue) {
		return fmt.Errorf("t2048: win value %d must be a power of two >= 8", o.WinValue)
	}
	if o.Spawn4Probability < 0 || o.Spawn4Probability > 1 {
		return fmt.Errorf("t2048: spawn-4 probability %v outside [0, 1]", o.Spawn4Probability)
	}
	switch o.SecondTile {
	case SecondTileCoin, SecondTileAlways:
	default:
		return fmt.Errorf("t2048: unknown second tile policy %q", o.SecondTile)
	}
	return nil
}

// MoveResult describes one completed move cycle.
type MoveResult struct {
	Direction Direction
	Changes   []Change // Moves and merges in order, then spawns
	Moved     bool     // The slide changed at least one cell
	Status    Status
}

// Engine owns a board and applies move cycles to it.
// All methods are safe for concurrent use; each call runs to completion
// before the next one starts.
type Engine struct {
	mu     sync.Mutex
	opts   Options
	src    RandomSource
	grid   Grid
	status Status
	moves  int
	last   []Change
}

// NewEngine returns an engine with an empty board. Call Initialize or
// Restart to place the first tiles.
func NewEngine(opts Options, src RandomSource) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("t2048: nil random source")
	}
	return &Engine{
		opts:   opts,
		src:    src,
		grid:   NewGrid(opts.Rows, opts.Cols),
		status: StatusOngoing,
	}, nil
}

// Initialize resizes the board to rows×cols, clears it and spawns the
// opening tiles.
func (e *Engine) Initialize(rows, cols int) ([]Change, error) {
	if err := checkSize(rows, cols); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Rows = rows
	e.opts.Cols = cols
	return e.restartLocked()
}

// Restart clears the board at its current size and spawns the opening tiles.
func (e *Engine) Restart() ([]Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.restartLocked()
}

func (e *Engine) restartLocked() ([]Change, error) {
	e.grid = NewGrid(e.opts.Rows, e.opts.Cols)
	e.status = StatusOngoing
	e.moves = 0
	e.last = nil

	spawned, err := e.spawnLocked()
	if err != nil {
		return nil, fmt.Errorf("t2048: opening spawn: %w", err)
	}
	e.last = spawned
	e.status = Classify(e.grid, e.opts.WinValue)
	return spawned, nil
}

// SpawnRandomTiles places one or two new tiles on empty cells.
// It does nothing on a full board.
func (e *Engine) SpawnRandomTiles() ([]Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	spawned, err := e.spawnLocked()
	if err != nil {
		return nil, err
	}
	e.status = Classify(e.grid, e.opts.WinValue)
	return spawned, nil
}

// spawnLocked draws everything first and only then writes the tiles,
// so a failing source leaves the board unchanged.
func (e *Engine) spawnLocked() ([]Change, error) {
	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		return nil, nil
	}

	if err := shuffle(e.src, empty); err != nil {
		return nil, fmt.Errorf("t2048: shuffle empty cells: %w", err)
	}

	first, err := e.tileValue()
	if err != nil {
		return nil, err
	}
	spawned := []Change{{Kind: ChangeSpawn, From: empty[0], To: empty[0], Value: first}}

	if len(empty) > 1 {
		place := true
		if e.opts.SecondTile == SecondTileCoin {
			coin, err := e.src.Float64()
			if err != nil {
				return nil, fmt.Errorf("t2048: second tile coin: %w", err)
			}
			place = coin > 0.5
		}
		if place {
			second, err := e.tileValue()
			if err != nil {
				return nil, err
			}
			spawned = append(spawned, Change{Kind: ChangeSpawn, From: empty[1], To: empty[1], Value: second})
		}
	}

	for _, ch := range spawned {
		e.grid.set(ch.To, Cell{Value: ch.Value})
	}
	e.grid.mustBeValid()
	return spawned, nil
}

// tileValue draws the value of a new tile: 2, or 4 with Spawn4Probability.
func (e *Engine) tileValue() (int, error) {
	f, err := e.src.Float64()
	if err != nil {
		return 0, fmt.Errorf("t2048: tile value: %w", err)
	}
	if f < 1-e.opts.Spawn4Probability {
		return 2, nil
	}
	return 4, nil
}

// ApplyMove runs one full move cycle: slide, spawn, classify.
// Dead moves still spawn unless SkipDeadMoves is set. On a random source
// failure the slide is kept and the error returned.
func (e *Engine) ApplyMove(dir Direction) (MoveResult, error) {
	if dir < DirUp || dir > DirRight {
		return MoveResult{}, fmt.Errorf("t2048: unknown direction %d", int(dir))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status.Terminal() {
		return MoveResult{Direction: dir, Status: e.status}, ErrGameFinished
	}

	slid, changes := Slide(e.grid, dir)
	result := MoveResult{
		Direction: dir,
		Moved:     len(changes) > 0,
	}

	if !result.Moved && e.opts.SkipDeadMoves {
		result.Status = e.status
		return result, nil
	}

	e.grid = slid
	e.moves++

	spawned, err := e.spawnLocked()
	changes = append(changes, spawned...)
	e.last = changes
	e.status = Classify(e.grid, e.opts.WinValue)

	result.Changes = changes
	result.Status = e.status
	if err != nil {
		return result, fmt.Errorf("t2048: move %s: %w", dir, err)
	}
	return result, nil
}

// Grid returns a copy of the current board.
func (e *Engine) Grid() Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Clone()
}

// Status returns the classification after the last operation.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Moves returns the number of move cycles applied since the last restart.
func (e *Engine) Moves() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moves
}

// LastChanges returns the changes of the last move or restart.
func (e *Engine) LastChanges() []Change {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Change, len(e.last))
	copy(out, e.last)
	return out
}

// Options returns the options the engine runs with.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// load replaces the board, used by tests and replays that start from a
// known position.
func (e *Engine) load(g Grid) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g.mustBeValid()
	e.grid = g.Clone()
	e.opts.Rows, e.opts.Cols = g.rows, g.cols
	e.status = Classify(e.grid, e.opts.WinValue)
	e.moves = 0
	e.last = nil
}
