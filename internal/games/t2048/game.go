package t2048

import (
	"errors"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Game adapts an Engine to the registry.Game tick loop.
type Game struct {
	id     string
	title  string
	preset config.Preset
	engine *Engine
	tick   uint64

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	lastErr  error // Last engine error that was not ErrGameFinished
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// GameID returns the registry ID of the game for a preset.
// The classic preset and no preset share the plain "2048" ID.
func GameID(preset config.Preset) string {
	if preset == "" || preset == config.PresetClassic {
		return "2048"
	}
	return "2048_" + string(preset)
}

// New creates a game that uses the loaded board config as is.
func New() *Game {
	return NewWithPreset("")
}

// NewWithPreset creates a game whose rules are overridden by preset.
func NewWithPreset(preset config.Preset) *Game {
	title := "2048"
	for _, p := range config.Presets {
		if p.Preset == preset {
			title = p.Title
		}
	}
	return &Game{
		id:     GameID(preset),
		title:  title,
		preset: preset,
	}
}

func init() {
	registry.Register(GameID(""), func() registry.Game {
		return New()
	})
	for _, p := range config.Presets {
		if p.Preset == config.PresetClassic {
			continue
		}
		preset := p.Preset
		registry.Register(GameID(preset), func() registry.Game {
			return NewWithPreset(preset)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// OptionsFromConfig converts a board config into engine options.
func OptionsFromConfig(cfg config.BoardConfig) Options {
	return Options{
		Rows:              cfg.Rows,
		Cols:              cfg.Cols,
		WinValue:          cfg.WinValue,
		Spawn4Probability: cfg.Spawn.FourProbability,
		SecondTile:        SecondTilePolicy(cfg.Spawn.SecondTile),
		SkipDeadMoves:     !cfg.Spawn.OnDeadMove,
	}
}

// Reset loads the board config and starts a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	boardCfg, err := config.LoadBoard(configPath)
	if err != nil {
		boardCfg = config.DefaultBoardConfig()
	}
	if g.preset != "" {
		config.ApplyPreset(&boardCfg, g.preset)
	}

	opts := OptionsFromConfig(boardCfg)
	engine, err := NewEngine(opts, NewMathRandSource(cfg.Seed))
	if err != nil {
		// Loaded configs are validated, so only a bad preset gets here.
		engine, _ = NewEngine(DefaultOptions(), NewMathRandSource(cfg.Seed))
	}
	//nolint:errcheck // MathRandSource never fails
	engine.Restart()

	g.engine = engine
	g.tick = 0
	g.paused = false
	g.lastErr = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the game to new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	if g.engine == nil {
		g.tooSmall = false
		return
	}
	w, h := boardSize(g.engine.Options())
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+footerHeight
}

// Step advances the game by one tick. At most one move runs per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dir, ok := toDirection(in.Direction())
	if !ok {
		return core.StepResult{State: g.State()}
	}

	result, err := g.engine.ApplyMove(dir)
	switch {
	case errors.Is(err, ErrGameFinished):
		// Waiting for a restart.
	case err != nil:
		g.lastErr = err
	}

	return core.StepResult{State: g.State(), Moved: result.Moved}
}

// toDirection maps a platform action to a board direction.
func toDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	grid := g.engine.Grid()
	status := g.engine.Status()
	return core.GameState{
		Moves:    g.engine.Moves(),
		MaxTile:  grid.MaxTile(),
		GameOver: status == StatusGameOver,
		Won:      status == StatusWon,
		Paused:   g.paused || g.tooSmall,
	}
}

// Board returns the board dimensions, zero before the first Reset.
func (g *Game) Board() (rows, cols int) {
	if g.engine == nil {
		return 0, 0
	}
	opts := g.engine.Options()
	return opts.Rows, opts.Cols
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}
