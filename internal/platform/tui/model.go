package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ErrResultNotSaved is returned by Run when the game finished but its
// result could not be written to the history.
var ErrResultNotSaved = errors.New("tui: game result not saved")

// boardSizer is implemented by games that report their board dimensions.
type boardSizer interface {
	Board() (rows, cols int)
}

// GameModel is the Bubble Tea model that runs one game.
// B or Esc returns to the menu when the game is finished or paused.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	standalone  bool // Back quits instead of returning to a menu
	quitting    bool
	backToMenu  bool
	resultSaved bool   // Whether the current game has been written to history
	resultID    string // Session ID of the last saved result
	saveErr     error
}

// NewGameModel creates a new game model. A zero seed is replaced with the
// current time.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordResult()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.Finished() || m.gameState.Paused) {
		m.recordResult()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}

	return m, nil
}

// handleResize processes window resize events. Games that can follow a
// resize keep their board; others restart unless already finished.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.Finished() {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick runs one game step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Finished() {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.resultSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.Finished() {
		m.recordResult()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordResult writes the current game to history once. Games left
// before their first move are not recorded.
func (m *GameModel) recordResult() {
	if m.resultSaved || m.store == nil {
		return
	}
	state := m.game.State()
	if state.Moves == 0 && !state.Finished() {
		return
	}

	r := storage.GameResult{
		SessionID: uuid.NewString(),
		GameID:    m.game.ID(),
		Outcome:   state.Outcome(),
		MaxTile:   state.MaxTile,
		Moves:     state.Moves,
	}
	if b, ok := m.game.(boardSizer); ok {
		r.Rows, r.Cols = b.Board()
	}

	if _, err := m.store.SaveResult(r); err != nil {
		m.saveErr = err
	} else {
		m.resultID = r.SessionID
	}
	m.resultSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// ResultID returns the session ID of the last game written to history,
// or "" if none was.
func (m GameModel) ResultID() string {
	return m.resultID
}

// SaveErr returns the error of the last failed history write, if any.
func (m GameModel) SaveErr() error {
	return m.saveErr
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(GameModel); ok && m.SaveErr() != nil {
		return fmt.Errorf("%w: %w", ErrResultNotSaved, m.SaveErr())
	}
	return nil
}
