// Package config provides YAML-based game configuration loading and
// difficulty presets for the gems game.
package config

import "time"

// GemsConfig contains all configuration for the gems game.
type GemsConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Gems     []GemConfig    `yaml:"gems"`
	Special  SpecialConfig  `yaml:"special"`
	Refill   RefillConfig   `yaml:"refill"`
	Setup    SetupConfig    `yaml:"setup"`
	Pacing   PacingConfig   `yaml:"pacing"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GemConfig describes one gem type of the roster. Order matters: the first
// entry is gem type 0.
type GemConfig struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Color  string `yaml:"color"` // red, green, yellow, blue, magenta, cyan, white, orange, gray
	Score  int    `yaml:"score"`
}

// SpecialConfig defines the bomb tile.
type SpecialConfig struct {
	Symbol           string `yaml:"symbol"`
	Score            int    `yaml:"score"`               // 0 = score like the gem type
	BlastRadius      int    `yaml:"blast_radius"`        // Manhattan radius
	MinMatchForSpawn int    `yaml:"min_match_for_spawn"` // combo size that leaves a bomb behind
}

// RefillConfig tunes the anti-repeat refill search.
type RefillConfig struct {
	Attempts int `yaml:"attempts"` // 0 = one attempt per gem type
}

// SetupConfig tunes the initial board generation.
type SetupConfig struct {
	InitialFillAttempts int `yaml:"initial_fill_attempts"`
}

// PacingConfig holds presentation delays between resolve stages.
type PacingConfig struct {
	DestroyMatches time.Duration `yaml:"destroy_matches"`
	DestroyBlasts  time.Duration `yaml:"destroy_blasts"`
	DestroyBombs   time.Duration `yaml:"destroy_bombs"`
	Spawn          time.Duration `yaml:"spawn"`
	Gravity        time.Duration `yaml:"gravity"`
	Refill         time.Duration `yaml:"refill"`
	Settle         time.Duration `yaml:"settle"`
}

// GameplayConfig defines session rules.
type GameplayConfig struct {
	MoveLimit          int  `yaml:"move_limit"` // committed swaps per classic game
	ReshuffleWhenStuck bool `yaml:"reshuffle_when_stuck"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// Presets lists the selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}
