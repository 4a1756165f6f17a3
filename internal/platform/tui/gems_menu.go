package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

// GemsSelection holds the user's choice from the mode selector.
type GemsSelection struct {
	GameID string
	Preset config.DifficultyPreset
}

type gemsMenuItem int

const (
	itemClassic gemsMenuItem = iota
	itemEndless
	itemDifficulty
	itemQuit
	itemCount
)

var presetDescriptions = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "4 gem types, 40 moves, wide blasts",
	config.DifficultyNormal: "5 gem types, 30 moves",
	config.DifficultyHard:   "all gem types, 20 moves, bombs need 5",
	config.DifficultyFixed:  "config file used as-is",
}

// GemsMenuModel lets users choose the game mode and difficulty.
type GemsMenuModel struct {
	cursor    gemsMenuItem
	preset    int // index into config.Presets()
	best      map[string]int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	selection *GemsSelection
	quitting  bool
	back      bool
}

// NewGemsMenuModel creates the selector. initial may be empty; store may be
// nil, in which case no best scores are shown.
func NewGemsMenuModel(store *storage.Store, cfg core.RuntimeConfig, initial config.DifficultyPreset) GemsMenuModel {
	m := GemsMenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		best:      make(map[string]int),
	}

	if initial == "" {
		initial = config.DifficultyNormal
	}
	for i, p := range config.Presets() {
		if p == initial {
			m.preset = i
		}
	}

	if store != nil {
		for _, id := range []string{"gems", "gems_endless"} {
			if high, err := store.HighScore(id); err == nil {
				m.best[id] = high
			}
		}
	}
	return m
}

// Init initializes the model.
func (m GemsMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GemsMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}
	return m, nil
}

func (m GemsMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := config.Presets()

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < itemCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + len(presets) - 1) % len(presets)
		}
	case MenuActionRight:
		if m.cursor == itemDifficulty {
			m.preset = (m.preset + 1) % len(presets)
		}
	case MenuActionSelect:
		switch m.cursor {
		case itemClassic:
			m.selection = &GemsSelection{GameID: "gems", Preset: presets[m.preset]}
			return m, tea.Quit
		case itemEndless:
			m.selection = &GemsSelection{GameID: "gems_endless", Preset: presets[m.preset]}
			return m, tea.Quit
		case itemDifficulty:
			m.preset = (m.preset + 1) % len(presets)
		case itemQuit:
			m.quitting = true
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the selector.
func (m GemsMenuModel) View() string {
	if m.quitting {
		return ""
	}

	theme := menuTheme
	preset := config.Presets()[m.preset]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("G E M S"), m.width))
	b.WriteString("\n\n")

	labels := []string{
		fmt.Sprintf("Classic     best %d", m.best["gems"]),
		fmt.Sprintf("Endless     best %d", m.best["gems_endless"]),
		"Difficulty  < " + theme.Value.Render(string(preset)) + " >",
		"Quit",
	}
	for i, label := range labels {
		style := theme.ItemNormal
		cursor := "  "
		if gemsMenuItem(i) == m.cursor {
			style = theme.ItemActive
			cursor = "> "
		}
		b.WriteString(centerText(style.Render(cursor+label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Description.Render(presetDescriptions[preset]), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Controls.Render("Enter: Select  |  ←/→: Difficulty  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m GemsMenuModel) Selected() *GemsSelection {
	return m.selection
}

// Config returns the runtime config updated with the latest window size.
func (m GemsMenuModel) Config() core.RuntimeConfig {
	return m.config
}

// IsQuitting returns true if user wants to quit.
func (m GemsMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m GemsMenuModel) WantsBack() bool {
	return m.back
}

// RunGemsMenu runs the selector in its own program and returns the selection,
// or nil when the user quit.
func RunGemsMenu(store *storage.Store, cfg core.RuntimeConfig, initial config.DifficultyPreset) (*GemsSelection, core.RuntimeConfig, error) {
	model := NewGemsMenuModel(store, cfg, initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(GemsMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}
	return m.Selected(), m.Config(), nil
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
