package t2048

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultSize is the default board dimension.
const DefaultSize = 4

// MaxSize bounds board dimensions so a board always fits a terminal.
const MaxSize = 8

// ErrInvalidSize is returned for board dimensions outside [1, MaxSize].
var ErrInvalidSize = errors.New("t2048: invalid board size")

// Pos addresses a cell by row and column, both zero-based.
type Pos struct {
	Row int
	Col int
}

// String formats the position as (row,col).
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is one square of the board. A zero Value is an empty cell.
type Cell struct {
	Value  int
	Merged bool // Set while a move is in progress once the tile took part in a merge
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Value == 0
}

// Grid is a rows×cols board stored row-major.
// Its dimensions never change once created.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid returns an empty grid. It panics on dimensions outside [1, MaxSize].
func NewGrid(rows, cols int) Grid {
	if err := checkSize(rows, cols); err != nil {
		panic(err)
	}
	return Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// GridFromValues builds a grid from rows of tile values, 0 meaning empty.
// All rows must have the same length and every tile must be a power of two >= 2.
func GridFromValues(values [][]int) (Grid, error) {
	rows := len(values)
	if rows == 0 {
		return Grid{}, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	cols := len(values[0])
	if err := checkSize(rows, cols); err != nil {
		return Grid{}, err
	}

	g := NewGrid(rows, cols)
	for r, row := range values {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), cols)
		}
		for c, v := range row {
			if v != 0 && !IsTileValue(v) {
				return Grid{}, fmt.Errorf("t2048: value %d at %v is not a power of two >= 2", v, Pos{r, c})
			}
			g.cells[r*cols+c].Value = v
		}
	}
	return g, nil
}

// MustGridFromValues is GridFromValues that panics on error.
func MustGridFromValues(values [][]int) Grid {
	g, err := GridFromValues(values)
	if err != nil {
		panic(err)
	}
	return g
}

func checkSize(rows, cols int) error {
	if rows < 1 || cols < 1 || rows > MaxSize || cols > MaxSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return nil
}

// IsTileValue reports whether v is a legal tile value (a power of two >= 2).
func IsTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	return g.cols
}

// At returns the cell at p. It panics when p is outside the grid.
func (g Grid) At(p Pos) Cell {
	return g.cells[g.index(p)]
}

// Value returns the tile value at p, 0 for empty.
func (g Grid) Value(p Pos) int {
	return g.At(p).Value
}

func (g Grid) index(p Pos) int {
	if p.Row < 0 || p.Row >= g.rows || p.Col < 0 || p.Col >= g.cols {
		panic(fmt.Sprintf("t2048: position %v outside %dx%d grid", p, g.rows, g.cols))
	}
	return p.Row*g.cols + p.Col
}

func (g Grid) set(p Pos, c Cell) {
	g.cells[g.index(p)] = c
}

func (g Grid) clear(p Pos) {
	g.cells[g.index(p)] = Cell{}
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same shape and tile values.
func (g Grid) Equal(other Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i].Value != other.cells[i].Value {
			return false
		}
	}
	return true
}

// Values returns the tile values as rows, 0 for empty cells.
func (g Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range g.rows {
		out[r] = make([]int, g.cols)
		for c := range g.cols {
			out[r][c] = g.cells[r*g.cols+c].Value
		}
	}
	return out
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (g Grid) EmptyCells() []Pos {
	var cells []Pos
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r*g.cols+c].Empty() {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for _, c := range g.cells {
		if c.Empty() {
			return true
		}
	}
	return false
}

// TileCount returns the number of occupied cells.
func (g Grid) TileCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// MaxTile returns the maximum tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, c := range g.cells {
		if c.Value > maxVal {
			maxVal = c.Value
		}
	}
	return maxVal
}

// String renders the grid as space separated rows, "." for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.cols {
			if c > 0 {
				sb.WriteByte(' ')
			}
			v := g.cells[r*g.cols+c].Value
			if v == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// mustBeValid panics if a tile breaks the value invariant or a merge flag
// leaked out of a move cycle. Continuing would corrupt later merges.
func (g Grid) mustBeValid() {
	if len(g.cells) != g.rows*g.cols {
		panic(fmt.Sprintf("t2048: grid holds %d cells, want %dx%d", len(g.cells), g.rows, g.cols))
	}
	for i, c := range g.cells {
		p := Pos{Row: i / g.cols, Col: i % g.cols}
		if c.Empty() {
			if c.Merged {
				panic(fmt.Sprintf("t2048: empty cell %v carries a merge flag", p))
			}
			continue
		}
		if !IsTileValue(c.Value) {
			panic(fmt.Sprintf("t2048: tile %d at %v is not a power of two >= 2", c.Value, p))
		}
		if c.Merged {
			panic(fmt.Sprintf("t2048: tile at %v still flagged as merged", p))
		}
	}
}
