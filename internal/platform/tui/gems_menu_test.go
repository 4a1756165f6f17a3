package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/storage"

	_ "github.com/vovakirdan/tui-gems/internal/games/gems"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}

func sendKeys(t *testing.T, m tea.Model, keys ...tea.KeyMsg) tea.Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestGemsMenuSelection(t *testing.T) {
	tests := []struct {
		name       string
		initial    config.DifficultyPreset
		keys       []tea.KeyMsg
		wantGame   string
		wantPreset config.DifficultyPreset
	}{
		{"classic default", "", []tea.KeyMsg{keyEnter}, "gems", config.DifficultyNormal},
		{"endless", "", []tea.KeyMsg{keyDown, keyEnter}, "gems_endless", config.DifficultyNormal},
		{"initial preset kept", config.DifficultyHard, []tea.KeyMsg{keyEnter}, "gems", config.DifficultyHard},
		{"cycle right", "", []tea.KeyMsg{keyDown, keyDown, keyRight, keyUp, keyUp, keyEnter}, "gems", config.DifficultyHard},
		{"cycle left wraps", config.DifficultyEasy, []tea.KeyMsg{keyDown, keyDown, keyLeft, keyUp, keyEnter}, "gems_endless", config.DifficultyFixed},
		{"enter on difficulty cycles", "", []tea.KeyMsg{keyDown, keyDown, keyEnter, keyUp, keyUp, keyEnter}, "gems", config.DifficultyHard},
		{"up clamps at top", "", []tea.KeyMsg{keyUp, keyUp, keyEnter}, "gems", config.DifficultyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sendKeys(t, NewGemsMenuModel(nil, testRuntime, tt.initial), tt.keys...).(GemsMenuModel)
			sel := m.Selected()
			if sel == nil {
				t.Fatal("no selection")
			}
			if sel.GameID != tt.wantGame || sel.Preset != tt.wantPreset {
				t.Errorf("Selected() = %+v, want {%s %s}", *sel, tt.wantGame, tt.wantPreset)
			}
		})
	}
}

func TestGemsMenuQuitAndBack(t *testing.T) {
	m := sendKeys(t, NewGemsMenuModel(nil, testRuntime, ""), keyDown, keyDown, keyDown, keyEnter).(GemsMenuModel)
	if !m.IsQuitting() || m.Selected() != nil {
		t.Errorf("Quit entry: quitting=%v selected=%v", m.IsQuitting(), m.Selected())
	}

	m = sendKeys(t, NewGemsMenuModel(nil, testRuntime, ""), keyEsc).(GemsMenuModel)
	if !m.WantsBack() {
		t.Error("Esc did not request back")
	}
}

func TestGemsMenuViewShowsBestScores(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/menu.db")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore("gems_endless", 1234); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := NewGemsMenuModel(store, testRuntime, config.DifficultyEasy)
	view := m.View()
	for _, want := range []string{"G E M S", "best 1234", "easy", presetDescriptions[config.DifficultyEasy]} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestGemsMenuResizeUpdatesConfig(t *testing.T) {
	m, _ := NewGemsMenuModel(nil, testRuntime, "").Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := m.(GemsMenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() size = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testRuntime, "tester")

	m = sendKeys(t, m, keyDown, keyEnter)
	s := m.(SessionModel)
	if !s.inGame || s.game == nil {
		t.Fatal("selecting a mode did not start a game")
	}
	if s.game.ID() != "gems_endless" {
		t.Errorf("game ID = %q, want gems_endless", s.game.ID())
	}

	// Esc only deselects while playing.
	m = sendKeys(t, m, keyEsc)
	if !m.(SessionModel).inGame {
		t.Fatal("Esc during play left the game")
	}

	// Pause, let a tick apply it, then go back.
	m = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m, _ = m.Update(TickMsg{})
	if !m.(SessionModel).gameModel.gameState.Paused {
		t.Fatal("game did not pause")
	}
	m = sendKeys(t, m, keyEsc)

	s = m.(SessionModel)
	if s.inGame {
		t.Fatal("Esc while paused did not return to the selector")
	}
	if s.preset != config.DifficultyNormal {
		t.Errorf("session preset = %q, want normal", s.preset)
	}
	if !strings.Contains(s.View(), "G E M S") {
		t.Error("selector not shown after returning")
	}
}
