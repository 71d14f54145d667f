package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth    = 7 // Width of each cell including its left border
	cellHeight   = 2 // Height of each cell including its top border
	hudHeight    = 3
	footerHeight = 1
)

// boardSize returns the drawn board width and height for the options.
func boardSize(opts Options) (w, h int) {
	return opts.Cols*cellWidth + 1, opts.Rows*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	opts := g.engine.Options()
	grid := g.engine.Grid()
	boardW, boardH := boardSize(opts)
	board := core.CenteredRect(dst.Bounds(), boardW, boardH)
	board.Y = hudHeight

	g.renderHUD(dst, grid, opts, board)
	g.renderBoard(dst, grid, board)
	g.renderOverlays(dst, grid, opts, board)

	dst.DrawTextCentered(board.Bottom()+footerHeight-1, g.Controls())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := boardSize(g.engine.Options())
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w+2, h+hudHeight+footerHeight))
}

// renderHUD draws the title, move count and max tile.
func (g *Game) renderHUD(dst *core.Screen, grid Grid, opts Options, board core.Rect) {
	dst.DrawTextCentered(0, g.title)

	dst.DrawText(board.X, 1, fmt.Sprintf("Moves: %d", g.engine.Moves()))

	info := fmt.Sprintf("Max: %d", grid.MaxTile())
	infoX := max(board.Right()-len(info), board.X)
	dst.DrawTextColored(infoX, 1, info, core.TileColor(grid.MaxTile()))

	goal := fmt.Sprintf("%dx%d  Goal: %d", opts.Rows, opts.Cols, opts.WinValue)
	dst.DrawTextCentered(2, goal)
}

// renderBoard draws the grid lines and the tiles. Tiles merged or spawned
// by the last move are marked with brackets.
func (g *Game) renderBoard(dst *core.Screen, grid Grid, board core.Rect) {
	rows, cols := grid.Rows(), grid.Cols()

	for y := range rows + 1 {
		for x := range cols + 1 {
			px := board.X + x*cellWidth
			py := board.Y + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == cols:
				corner = '┐'
			case y == rows && x == 0:
				corner = '└'
			case y == rows && x == cols:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == rows:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == cols:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < cols {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	merged, spawned := Highlights(g.engine.LastChanges())

	for r := range rows {
		for c := range cols {
			p := Pos{Row: r, Col: c}
			val := grid.Value(p)
			cellX := board.X + c*cellWidth + 1
			cellY := board.Y + r*cellHeight + 1

			if val == 0 {
				dst.SetColored(cellX+(cellWidth-1)/2, cellY, '·', core.ColorGray)
				continue
			}

			label := tileLabel(val, merged[p], spawned[p])
			padLeft := max((cellWidth-1-len(label))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, label, core.TileColor(val))
		}
	}
}

// tileLabel formats a tile value, bracketed when the last move touched it.
func tileLabel(val int, merged, spawned bool) string {
	s := strconv.Itoa(val)
	switch {
	case merged && len(s) <= cellWidth-3:
		return "[" + s + "]"
	case spawned && len(s) <= cellWidth-3:
		return "+" + s
	default:
		return s
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, grid Grid, opts Options, board core.Rect) {
	centerX, centerY := board.Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	switch g.engine.Status() {
	case StatusWon:
		g.drawOverlay(dst, centerX, centerY,
			"YOU WIN!",
			fmt.Sprintf("Reached %d in %d moves", grid.MaxTile(), g.engine.Moves()),
			"Press R to restart")
	case StatusGameOver:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", grid.MaxTile()),
			"Press R to restart")
	}

	if g.lastErr != nil {
		dst.DrawTextColored(board.X, board.Bottom()+footerHeight, g.lastErr.Error(), core.ColorRed)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	w, h := maxLen+4, len(lines)+2
	x := core.Clamp(centerX-w/2, 0, max(dst.Width()-w, 0))
	box := core.NewRect(x, centerY-h/2, w, h)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(box.X+(w-len(line))/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: Restart | Q: Quit"
}
