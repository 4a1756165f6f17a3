package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	gemsFile    = "gems.yaml"
	xdgGemsFile = "tui-gems/gems.yaml"

	// SourceEmbedded is reported by LocateGems when no file overrides the defaults.
	SourceEmbedded = "<embedded>"
)

// LoadGems loads the gems configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/tui-gems/gems.yaml ->
// ~/.arcade/configs/gems.yaml -> ./configs/gems.yaml -> embedded default
func LoadGems(customPath string) (GemsConfig, error) {
	cfg, _, err := loadGems(customPath)
	return cfg, err
}

// LocateGems returns the file LoadGems would read, or SourceEmbedded.
func LocateGems(customPath string) string {
	_, src, _ := loadGems(customPath)
	return src
}

func loadGems(customPath string) (GemsConfig, string, error) {
	var cfg GemsConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{
		xdgConfigPath(),
		userConfigPath(gemsFile),
		filepath.Join("configs", gemsFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fileCfg GemsConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, path, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGemsYAML, &cfg); err != nil {
		return DefaultGemsConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// xdgConfigPath returns the XDG config file if one exists.
func xdgConfigPath() string {
	path, err := xdg.SearchConfigFile(xdgGemsFile)
	if err != nil {
		return ""
	}
	return path
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg GemsConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// SaveGems writes cfg to path, or to the XDG config location when path is
// empty, creating parent directories. It returns the written path.
func SaveGems(cfg GemsConfig, path string) (string, error) {
	if path == "" {
		p, err := xdg.ConfigFile(xdgGemsFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = p
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return path, nil
}

// ApplyGemsPreset modifies the config based on a difficulty preset.
// Fewer gem types make runs more likely, so easier presets trim the roster.
func ApplyGemsPreset(cfg *GemsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		trimRoster(cfg, 4)
		cfg.Gameplay.MoveLimit = 40
		cfg.Special.BlastRadius = 2
		cfg.Special.MinMatchForSpawn = 4
	case DifficultyNormal:
		trimRoster(cfg, 5)
		cfg.Gameplay.MoveLimit = 30
	case DifficultyHard:
		cfg.Gameplay.MoveLimit = 20
		cfg.Special.BlastRadius = 1
		cfg.Special.MinMatchForSpawn = 5
	case DifficultyFixed:
		// Config used as-is
	}
}

func trimRoster(cfg *GemsConfig, n int) {
	if len(cfg.Gems) > n {
		cfg.Gems = cfg.Gems[:n]
	}
}

// Validate reports structural problems that would prevent a game from starting.
func (c GemsConfig) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 {
		return fmt.Errorf("config: board must be at least 3x3, got %dx%d", c.Board.Width, c.Board.Height)
	}
	if len(c.Gems) < 2 {
		return fmt.Errorf("config: need at least 2 gems, got %d", len(c.Gems))
	}
	for i, g := range c.Gems {
		if g.Symbol == "" {
			return fmt.Errorf("config: gem %d (%s) has no symbol", i, g.Name)
		}
	}
	return nil
}
