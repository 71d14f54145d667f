package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg BoardConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML: %v", err)
	}
	if cfg != DefaultBoardConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultBoardConfig())
	}
}

func TestLoadBoardCustomPath(t *testing.T) {
	path := writeConfig(t, `
rows: 5
cols: 3
win_value: 512
spawn:
  four_probability: 0.25
  second_tile: always
  on_dead_move: false
`)

	cfg, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard() error = %v", err)
	}
	want := BoardConfig{
		Rows:     5,
		Cols:     3,
		WinValue: 512,
		Spawn: SpawnConfig{
			FourProbability: 0.25,
			SecondTile:      SecondTileAlways,
			OnDeadMove:      false,
		},
	}
	if cfg != want {
		t.Errorf("LoadBoard() = %+v, want %+v", cfg, want)
	}
}

func TestLoadBoardPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "rows: 6\n")

	cfg, err := LoadBoard(path)
	if err != nil {
		t.Fatalf("LoadBoard() error = %v", err)
	}
	if cfg.Rows != 6 || cfg.Cols != 4 || cfg.WinValue != 2048 {
		t.Errorf("LoadBoard() = %+v, want 6x4 with win 2048", cfg)
	}
	if !cfg.Spawn.OnDeadMove || cfg.Spawn.SecondTile != SecondTileCoin {
		t.Errorf("spawn defaults lost: %+v", cfg.Spawn)
	}
}

func TestLoadBoardErrors(t *testing.T) {
	if _, err := LoadBoard(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadBoard() expected error for a missing file")
	}

	path := writeConfig(t, "rows: [1, 2\n")
	if _, err := LoadBoard(path); err == nil {
		t.Error("LoadBoard() expected error for bad YAML")
	}

	path = writeConfig(t, "win_value: 1000\n")
	_, err := LoadBoard(path)
	if err == nil || !strings.Contains(err.Error(), "win_value") {
		t.Errorf("LoadBoard() error = %v, want win_value complaint", err)
	}
}

func TestLoadBoardLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", ConfigFile), []byte("cols: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := LoadBoard("")
	if err != nil {
		t.Fatalf("LoadBoard() error = %v", err)
	}
	if cfg.Cols != 7 {
		t.Errorf("Cols = %d, want 7 from ./configs", cfg.Cols)
	}
}

func TestLoadBoardUserDirectoryWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	userDir := filepath.Join(home, ".t2048", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, ConfigFile), []byte("rows: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", ConfigFile), []byte("rows: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := LoadBoard("")
	if err != nil {
		t.Fatalf("LoadBoard() error = %v", err)
	}
	if cfg.Rows != 2 {
		t.Errorf("Rows = %d, want 2 from the user directory", cfg.Rows)
	}
}

func TestLoadBoardEmbeddedFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadBoard("")
	if err != nil {
		t.Fatalf("LoadBoard() error = %v", err)
	}
	if cfg != DefaultBoardConfig() {
		t.Errorf("LoadBoard() = %+v, want defaults", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*BoardConfig)
		wantErr bool
	}{
		{"defaults", func(*BoardConfig) {}, false},
		{"smallest board", func(c *BoardConfig) { c.Rows, c.Cols = 2, 2 }, false},
		{"largest board", func(c *BoardConfig) { c.Rows, c.Cols = 8, 8 }, false},
		{"rows too small", func(c *BoardConfig) { c.Rows = 1 }, true},
		{"cols too large", func(c *BoardConfig) { c.Cols = 9 }, true},
		{"win value not power of two", func(c *BoardConfig) { c.WinValue = 3000 }, true},
		{"win value too small", func(c *BoardConfig) { c.WinValue = 4 }, true},
		{"probability above one", func(c *BoardConfig) { c.Spawn.FourProbability = 1.5 }, true},
		{"probability one", func(c *BoardConfig) { c.Spawn.FourProbability = 1 }, false},
		{"unknown policy", func(c *BoardConfig) { c.Spawn.SecondTile = "never" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBoardConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultBoardConfig()
	cfg.Rows = 0
	cfg.Spawn.SecondTile = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"rows", "second_tile"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     Preset
		rows, cols int
		win        int
		second     string
	}{
		{PresetClassic, 4, 4, 2048, SecondTileCoin},
		{PresetDouble, 4, 4, 2048, SecondTileAlways},
		{PresetMini, 3, 3, 256, SecondTileCoin},
		{PresetBig, 5, 5, 4096, SecondTileCoin},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBoardConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Rows != tt.rows || cfg.Cols != tt.cols || cfg.WinValue != tt.win || cfg.Spawn.SecondTile != tt.second {
				t.Errorf("ApplyPreset(%s) = %+v", tt.preset, cfg)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s is invalid: %v", tt.preset, err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets {
		got, err := ParsePreset(string(p.Preset))
		if err != nil || got != p.Preset {
			t.Errorf("ParsePreset(%q) = %q, %v", p.Preset, got, err)
		}
	}
	if got, err := ParsePreset(""); err != nil || got != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", got, err)
	}
	if _, err := ParsePreset("huge"); err == nil {
		t.Error("ParsePreset(huge) expected error")
	}
}
