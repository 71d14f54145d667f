package t2048

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// useConfig points the game at a board file for the duration of a test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t2048.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegisteredPresets(t *testing.T) {
	for _, id := range []string{"2048", "2048_double", "2048_mini", "2048_big"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
	if registry.Exists("2048_classic") {
		t.Error("classic preset should share the plain 2048 ID")
	}
}

func TestGameID(t *testing.T) {
	tests := map[config.Preset]string{
		"":                   "2048",
		config.PresetClassic: "2048",
		config.PresetDouble:  "2048_double",
		config.PresetMini:    "2048_mini",
		config.PresetBig:     "2048_big",
	}
	for preset, want := range tests {
		if got := GameID(preset); got != want {
			t.Errorf("GameID(%q) = %q, want %q", preset, got, want)
		}
	}
}

func TestResetStartsBoard(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	g.Reset(testConfig(1))

	state := g.State()
	if state.Moves != 0 || state.Finished() || state.Paused {
		t.Errorf("state after reset = %+v", state)
	}
	if state.MaxTile != 2 && state.MaxTile != 4 {
		t.Errorf("MaxTile = %d, want 2 or 4", state.MaxTile)
	}
	if n := g.Engine().Grid().TileCount(); n < 1 || n > 2 {
		t.Errorf("opening tiles = %d, want 1 or 2", n)
	}
}

func TestPresetOverridesConfig(t *testing.T) {
	useConfig(t, "rows: 6\ncols: 6\n")

	g := NewWithPreset(config.PresetMini)
	g.Reset(testConfig(1))
	if rows, cols := g.Board(); rows != 3 || cols != 3 {
		t.Errorf("mini board = %dx%d, want 3x3", rows, cols)
	}
	if w := g.Engine().Options().WinValue; w != 256 {
		t.Errorf("mini win value = %d, want 256", w)
	}

	plain := New()
	plain.Reset(testConfig(1))
	if rows, cols := plain.Board(); rows != 6 || cols != 6 {
		t.Errorf("configured board = %dx%d, want 6x6", rows, cols)
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	useConfig(t, "rows: 40\n")

	g := New()
	g.Reset(testConfig(1))
	if rows, cols := g.Board(); rows != 4 || cols != 4 {
		t.Errorf("board = %dx%d, want default 4x4", rows, cols)
	}
}

func TestStepAppliesOneMove(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	g.Reset(testConfig(7))

	g.Step(frame(core.ActionLeft, core.ActionRight))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, want 1", g.State().Moves)
	}

	g.Step(frame())
	if g.State().Moves != 1 {
		t.Errorf("empty frame applied a move: Moves = %d", g.State().Moves)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	g.Reset(testConfig(7))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game not paused")
	}
	g.Step(frame(core.ActionUp))
	if g.State().Moves != 0 {
		t.Errorf("move applied while paused")
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionUp))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d after resume, want 1", g.State().Moves)
	}
}

func TestTooSmallScreenPauses(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	cfg := testConfig(1)
	cfg.ScreenW, cfg.ScreenH = 20, 8
	g.Reset(cfg)

	if !g.State().Paused {
		t.Fatal("small screen should pause")
	}
	g.Step(frame(core.ActionUp))
	if g.State().Moves != 0 {
		t.Error("move applied on a too small screen")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("game still paused after resize")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	g.Reset(testConfig(3))
	g.Step(frame(core.ActionDown))
	before := g.Snapshot()

	g.Resize(100, 40)
	after := g.Snapshot()
	if !reflect.DeepEqual(before.Board, after.Board) || before.Moves != after.Moves {
		t.Error("resize changed the board")
	}
}

func TestDeterministicGame(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	inputs := []core.Action{
		core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight,
		core.ActionLeft, core.ActionLeft, core.ActionUp, core.ActionRight,
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testConfig(12345))
		for _, a := range inputs {
			g.Step(frame(a))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs gave different snapshots:\n%+v\n%+v", a, b)
	}
	if a.Tick != uint64(len(inputs)) {
		t.Errorf("Tick = %d, want %d", a.Tick, len(inputs))
	}
}

func TestSnapshot(t *testing.T) {
	useConfig(t, "rows: 3\ncols: 5\n")
	g := New()
	g.Reset(testConfig(1))

	snap := g.Snapshot()
	if snap.ID != "2048" {
		t.Errorf("ID = %q, want 2048", snap.ID)
	}
	if snap.Rows != 3 || snap.Cols != 5 || len(snap.Board) != 3 || len(snap.Board[0]) != 5 {
		t.Errorf("snapshot board shape = %dx%d", snap.Rows, snap.Cols)
	}
	if snap.Status != StatusOngoing {
		t.Errorf("Status = %s, want ongoing", snap.Status)
	}
	if CountKind(snap.Changes, ChangeSpawn) != len(snap.Changes) || len(snap.Changes) == 0 {
		t.Errorf("opening changes = %v, want spawns only", snap.Changes)
	}
}

func TestRender(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	g.Reset(testConfig(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Moves: 0", "Goal: 2048", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	useConfig(t, "rows: 4\ncols: 4\n")
	g := New()
	cfg := testConfig(1)
	cfg.ScreenW, cfg.ScreenH = 24, 8
	g.Reset(cfg)

	screen := core.NewScreen(24, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too small message:\n%s", screen.String())
	}
}

func TestTileLabel(t *testing.T) {
	tests := []struct {
		val             int
		merged, spawned bool
		want            string
	}{
		{2, false, false, "2"},
		{4, false, true, "+4"},
		{64, true, false, "[64]"},
		{1024, true, false, "[1024]"},
		{16384, true, false, "16384"},
		{131072, false, true, "131072"},
	}
	for _, tt := range tests {
		if got := tileLabel(tt.val, tt.merged, tt.spawned); got != tt.want {
			t.Errorf("tileLabel(%d, %v, %v) = %q, want %q", tt.val, tt.merged, tt.spawned, got, tt.want)
		}
	}
}
