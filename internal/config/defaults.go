package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the default gems configuration.
// It mirrors defaults/gems.yaml and is used when the embedded file cannot be parsed.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Gems: []GemConfig{
			{Name: "ruby", Symbol: "◆", Color: "red", Score: 10},
			{Name: "emerald", Symbol: "●", Color: "green", Score: 10},
			{Name: "sapphire", Symbol: "■", Color: "blue", Score: 10},
			{Name: "topaz", Symbol: "▲", Color: "yellow", Score: 10},
			{Name: "amethyst", Symbol: "♦", Color: "magenta", Score: 12},
			{Name: "aquamarine", Symbol: "★", Color: "cyan", Score: 15},
		},
		Special: SpecialConfig{
			Symbol:           "✱",
			Score:            50,
			BlastRadius:      1,
			MinMatchForSpawn: 4,
		},
		Refill: RefillConfig{
			Attempts: 0,
		},
		Setup: SetupConfig{
			InitialFillAttempts: 100,
		},
		Pacing: PacingConfig{
			DestroyMatches: 200 * time.Millisecond,
			DestroyBlasts:  150 * time.Millisecond,
			DestroyBombs:   150 * time.Millisecond,
			Spawn:          100 * time.Millisecond,
			Gravity:        200 * time.Millisecond,
			Refill:         200 * time.Millisecond,
			Settle:         100 * time.Millisecond,
		},
		Gameplay: GameplayConfig{
			MoveLimit:          30,
			ReshuffleWhenStuck: true,
		},
	}
}
