// Package config provides YAML-based board configuration loading and
// named presets for the 2048 game.
package config

// BoardConfig contains the rules of a 2048 board.
type BoardConfig struct {
	Rows     int         `yaml:"rows"`
	Cols     int         `yaml:"cols"`
	WinValue int         `yaml:"win_value"`
	Spawn    SpawnConfig `yaml:"spawn"`
}

// SpawnConfig defines how new tiles appear after each move.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
	SecondTile      string  `yaml:"second_tile"`  // "coin" or "always"
	OnDeadMove      bool    `yaml:"on_dead_move"` // Spawn after moves that changed nothing
}

// Second tile policies accepted in SpawnConfig.SecondTile.
const (
	SecondTileCoin   = "coin"
	SecondTileAlways = "always"
)

// Board size limits accepted by Validate.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)
