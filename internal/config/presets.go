package config

import "fmt"

// Preset names a ready-made set of board rules.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetDouble  Preset = "double"
	PresetMini    Preset = "mini"
	PresetBig     Preset = "big"
)

// PresetInfo describes a preset for menus and listings.
type PresetInfo struct {
	Preset      Preset
	Title       string
	Description string
}

// Presets lists every preset in display order.
var Presets = []PresetInfo{
	{PresetClassic, "2048", "4x4 board, a second tile on a coin flip"},
	{PresetDouble, "2048 (Double Spawn)", "4x4 board, two tiles after every move"},
	{PresetMini, "2048 (Mini 3x3)", "3x3 board, reach 256"},
	{PresetBig, "2048 (Big 5x5)", "5x5 board, reach 4096"},
}

// ParsePreset converts a CLI value to a Preset. An empty string selects
// no preset, leaving the loaded file as is.
func ParsePreset(s string) (Preset, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range Presets {
		if string(p.Preset) == s {
			return p.Preset, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q", s)
}

// ApplyPreset modifies the config for a preset. Probabilities and the
// dead-move rule stay as loaded; presets only change shape and goals.
func ApplyPreset(cfg *BoardConfig, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Rows, cfg.Cols = 4, 4
		cfg.WinValue = 2048
		cfg.Spawn.SecondTile = SecondTileCoin
	case PresetDouble:
		cfg.Rows, cfg.Cols = 4, 4
		cfg.WinValue = 2048
		cfg.Spawn.SecondTile = SecondTileAlways
	case PresetMini:
		cfg.Rows, cfg.Cols = 3, 3
		cfg.WinValue = 256
	case PresetBig:
		cfg.Rows, cfg.Cols = 5, 5
		cfg.WinValue = 4096
	}
}
