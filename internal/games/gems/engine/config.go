package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Defaults applied when the corresponding Config field is zero.
const (
	DefaultInitialFillAttempts = 100
	DefaultMinMatchForSpecial  = 4
)

// ValidationError describes a rejected configuration.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Roster is the ordered set of gem types and what each tile is worth.
// Scores[i] is the score value of GemType(i).
type Roster struct {
	Scores       []int
	SpecialScore int // 0 means a bomb scores like its gem type
	BlastRadius  int
}

// Size returns the number of gem types.
func (r Roster) Size() int {
	return len(r.Scores)
}

func (r Roster) score(kind Kind, gem GemType) int {
	if kind == KindSpecial && r.SpecialScore > 0 {
		return r.SpecialScore
	}
	if int(gem) < len(r.Scores) {
		return r.Scores[gem]
	}
	return 0
}

// Pacing holds the delay returned after each pipeline stage.
// Delays only pace presentation; a zero Pacing resolves instantly.
type Pacing struct {
	DestroyMatches time.Duration
	DestroyBlasts  time.Duration
	DestroyBombs   time.Duration
	Spawn          time.Duration
	Gravity        time.Duration
	Refill         time.Duration
	Settle         time.Duration
}

// Config is the read-only parameter set of an engine.
type Config struct {
	Width  int
	Height int
	Roster Roster

	// MinMatchForSpecial is the combo size of one gem type that spawns a bomb
	// at a swapped cell.
	MinMatchForSpecial int

	// RefillAttempts bounds the anti-repeat search per cell. Zero means one
	// attempt per gem type, which is also the effective maximum.
	RefillAttempts int

	// InitialFillAttempts bounds rerolls per cell during the initial fill.
	InitialFillAttempts int

	// ReshuffleWhenStuck re-rolls the board when no swap can produce a match.
	ReshuffleWhenStuck bool

	Pacing Pacing
	Seed   uint64
}

// Validate checks the configuration and fills zero-valued defaults.
func (c *Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return ValidationError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("board must be at least 3x3, got %dx%d", c.Width, c.Height),
		}
	}
	if c.Roster.Size() < 2 {
		return ValidationError{
			Code:    "INVALID_ROSTER",
			Message: fmt.Sprintf("need at least 2 gem types, got %d", c.Roster.Size()),
		}
	}
	if c.Roster.Size() > 256 {
		return ValidationError{
			Code:    "INVALID_ROSTER",
			Message: fmt.Sprintf("at most 256 gem types, got %d", c.Roster.Size()),
		}
	}
	for i, s := range c.Roster.Scores {
		if s < 0 {
			return ValidationError{
				Code:    "INVALID_SCORE",
				Message: fmt.Sprintf("gem %d has negative score %d", i, s),
			}
		}
	}
	if c.Roster.BlastRadius < 0 {
		return ValidationError{
			Code:    "INVALID_RADIUS",
			Message: fmt.Sprintf("blast radius must be >= 0, got %d", c.Roster.BlastRadius),
		}
	}
	if c.MinMatchForSpecial < 0 || c.RefillAttempts < 0 || c.InitialFillAttempts < 0 {
		return ValidationError{
			Code:    "INVALID_ATTEMPTS",
			Message: "thresholds and attempt budgets must not be negative",
		}
	}

	if c.MinMatchForSpecial == 0 {
		c.MinMatchForSpecial = DefaultMinMatchForSpecial
	}
	if c.RefillAttempts == 0 {
		c.RefillAttempts = c.Roster.Size()
	}
	if c.InitialFillAttempts == 0 {
		c.InitialFillAttempts = DefaultInitialFillAttempts
	}
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
