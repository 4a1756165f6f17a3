// Package registry maps game IDs to factories. Game packages register in
// init(), so the CLI and the SSH server only need a blank import.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the platform drives. Implementations hold pure logic with no
// Bubble Tea dependency; the platform maps keys, paces ticks and paints.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "gems", "gems_endless").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Gems (Endless)").
	Title() string

	// Reset starts a fresh round. The RuntimeConfig carries the screen size,
	// the tick rate and the RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick with the actions pressed
	// since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the score and the game over and paused flags.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
