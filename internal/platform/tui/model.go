package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

// StatsReporter is implemented by games that track resolver statistics.
type StatsReporter interface {
	ResolveStats() core.ResolveStats
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
type Resizer interface {
	Resize(width, height int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.scoreSaved = saveUnfinished(m.store, m.game, m.scoreSaved)
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Games that can adapt in place keep their state; others restart.
	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		saveResult(m.store, m.game, m.gameState.Score)
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveUnfinished records a game that is left before it ends, such as an
// endless session. Games without points are not recorded. It reports
// whether the game's result is saved afterwards.
func saveUnfinished(store *storage.Store, game registry.Game, saved bool) bool {
	if saved {
		return true
	}
	score := game.State().Score
	if score <= 0 {
		return false
	}
	saveResult(store, game, score)
	return true
}

// saveResult persists the final score and, when the game reports them, its
// resolve statistics. Failures are logged; the game continues regardless.
func saveResult(store *storage.Store, game registry.Game, score int) {
	if store == nil {
		return
	}
	if score > 0 {
		if _, err := store.SaveScore(game.ID(), score); err != nil {
			log.Warn("cannot save score", "game", game.ID(), "err", err)
		}
	}
	if r, ok := game.(StatsReporter); ok {
		if _, err := store.SaveResolveStats(game.ID(), score, r.ResolveStats()); err != nil {
			log.Warn("cannot save resolve stats", "game", game.ID(), "err", err)
		}
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots. Failures are logged and otherwise ignored.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		log.Debug("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Debug("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Debug("screenshot failed", "path", path, "err", err)
		return
	}
	log.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
