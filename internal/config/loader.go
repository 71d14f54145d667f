package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the board config file name looked up in the search path.
const ConfigFile = "t2048.yaml"

// LoadBoard loads the board configuration.
// Search order: customPath -> ~/.t2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
// Files only need to set the keys they change; the rest keep their defaults.
func LoadBoard(customPath string) (BoardConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BoardConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBoard(data)
		if err != nil {
			return BoardConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBoard(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parseBoard(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBoard(defaultBoardYAML)
	if err != nil {
		return DefaultBoardConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBoard decodes YAML over the defaults and validates the result.
func parseBoard(data []byte) (BoardConfig, error) {
	cfg := DefaultBoardConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BoardConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BoardConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "configs", filename)
}

// Validate reports every rule the configuration breaks.
func (c BoardConfig) Validate() error {
	var errs []error
	if c.Rows < MinBoardSize || c.Rows > MaxBoardSize {
		errs = append(errs, fmt.Errorf("rows %d outside [%d, %d]", c.Rows, MinBoardSize, MaxBoardSize))
	}
	if c.Cols < MinBoardSize || c.Cols > MaxBoardSize {
		errs = append(errs, fmt.Errorf("cols %d outside [%d, %d]", c.Cols, MinBoardSize, MaxBoardSize))
	}
	if c.WinValue < 8 || c.WinValue&(c.WinValue-1) != 0 {
		errs = append(errs, fmt.Errorf("win_value %d is not a power of two >= 8", c.WinValue))
	}
	if c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1 {
		errs = append(errs, fmt.Errorf("spawn.four_probability %v outside [0, 1]", c.Spawn.FourProbability))
	}
	switch c.Spawn.SecondTile {
	case SecondTileCoin, SecondTileAlways:
	default:
		errs = append(errs, fmt.Errorf("spawn.second_tile %q is not %q or %q", c.Spawn.SecondTile, SecondTileCoin, SecondTileAlways))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid board: %w", errors.Join(errs...))
	}
	return nil
}
