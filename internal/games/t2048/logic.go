package t2048

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a stable order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Status classifies a board after a move.
type Status string

const (
	StatusOngoing  Status = "ongoing"
	StatusWon      Status = "won"
	StatusGameOver Status = "game_over"
)

// Terminal reports whether no further moves are accepted until a restart.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusGameOver
}

// DefaultWinValue is the tile that wins the classic game.
const DefaultWinValue = 2048

// lines returns the positions of every row (Left/Right) or column (Up/Down),
// each ordered from the edge tiles travel toward. Index 0 is that edge.
func lines(rows, cols int, dir Direction) [][]Pos {
	var out [][]Pos
	switch dir {
	case DirLeft, DirRight:
		for r := range rows {
			line := make([]Pos, cols)
			for i := range cols {
				c := i
				if dir == DirRight {
					c = cols - 1 - i
				}
				line[i] = Pos{Row: r, Col: c}
			}
			out = append(out, line)
		}
	case DirUp, DirDown:
		for c := range cols {
			line := make([]Pos, rows)
			for i := range rows {
				r := i
				if dir == DirDown {
					r = rows - 1 - i
				}
				line[i] = Pos{Row: r, Col: c}
			}
			out = append(out, line)
		}
	default:
		panic("t2048: unknown direction")
	}
	return out
}

// compactLine slides the tiles of one line toward its leading edge,
// keeping their order, and records each tile that changed cell.
func compactLine(g Grid, line []Pos, changes []Change) []Change {
	write := 0
	for read, p := range line {
		cell := g.At(p)
		if cell.Empty() {
			continue
		}
		if read != write {
			g.set(line[write], cell)
			g.clear(p)
			changes = append(changes, Change{Kind: ChangeMove, From: p, To: line[write], Value: cell.Value})
		}
		write++
	}
	return changes
}

// mergeLine scans adjacent pairs from the leading edge. An equal pair with
// neither tile already merged doubles the first tile and removes the second.
// A removed second leaves a gap, so it is never examined as a first.
func mergeLine(g Grid, line []Pos, changes []Change) []Change {
	for i := 0; i+1 < len(line); i++ {
		first, second := g.At(line[i]), g.At(line[i+1])
		if first.Empty() || second.Empty() {
			continue
		}
		if first.Merged || second.Merged {
			continue
		}
		if first.Value != second.Value {
			continue
		}

		first.Value *= 2
		first.Merged = true
		g.set(line[i], first)
		g.clear(line[i+1])
		changes = append(changes, Change{Kind: ChangeMerge, From: line[i+1], To: line[i], Value: first.Value})
	}
	return changes
}

// resetMerged clears every merge flag so the next cycle starts clean.
func resetMerged(g Grid) {
	for i := range g.cells {
		g.cells[i].Merged = false
	}
}

// Slide runs the deterministic part of a move cycle: compact, merge,
// compact again and reset merge flags. The input grid is left untouched.
// The returned changes are in the order they happened.
func Slide(g Grid, dir Direction) (Grid, []Change) {
	out := g.Clone()
	ls := lines(out.rows, out.cols, dir)
	var changes []Change

	for _, line := range ls {
		changes = compactLine(out, line, changes)
	}
	for _, line := range ls {
		changes = mergeLine(out, line, changes)
	}
	for _, line := range ls {
		changes = compactLine(out, line, changes)
	}
	resetMerged(out)

	out.mustBeValid()
	return out, changes
}

// HasPossibleMerge returns true if any two neighbouring tiles are equal.
// Horizontal pairs are checked before vertical ones.
func HasPossibleMerge(g Grid) bool {
	for r := range g.rows {
		for c := 0; c+1 < g.cols; c++ {
			v := g.Value(Pos{r, c})
			if v != 0 && v == g.Value(Pos{r, c + 1}) {
				return true
			}
		}
	}
	for c := range g.cols {
		for r := 0; r+1 < g.rows; r++ {
			v := g.Value(Pos{r, c})
			if v != 0 && v == g.Value(Pos{r + 1, c}) {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move could change the board.
func CanMove(g Grid) bool {
	return g.HasEmptyCell() || HasPossibleMerge(g)
}

// IsGameOver returns true if the board is full and no neighbours match.
func IsGameOver(g Grid) bool {
	return !CanMove(g)
}

// IsWon returns true if any tile reached winValue.
func IsWon(g Grid, winValue int) bool {
	return g.MaxTile() >= winValue
}

// Classify returns the status of a board. A win takes precedence over
// a full, locked board.
func Classify(g Grid, winValue int) Status {
	switch {
	case IsWon(g, winValue):
		return StatusWon
	case IsGameOver(g):
		return StatusGameOver
	default:
		return StatusOngoing
	}
}
