package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultBoardYAML []byte

// DefaultBoardConfig returns the classic 4x4 rules.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Rows:     4,
		Cols:     4,
		WinValue: 2048,
		Spawn: SpawnConfig{
			FourProbability: 0.1,
			SecondTile:      SecondTileCoin,
			OnDeadMove:      true,
		},
	}
}

// DefaultYAML returns the embedded default board YAML.
func DefaultYAML() []byte {
	return defaultBoardYAML
}
