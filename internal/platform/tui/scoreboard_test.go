package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

func TestResolveSummary(t *testing.T) {
	got := resolveSummary(&storage.ResolveTotals{
		Games: 3, Swaps: 10, Cascades: 5, BestChain: 4, BombsDetonated: 2, TilesDestroyed: 90,
	})
	want := "Games 3 | Best chain x4 | Bombs 2 | Tiles 90 | Cascades/swap 0.50"
	if got != want {
		t.Errorf("resolveSummary() = %q, want %q", got, want)
	}
}

func TestScoreboardShowsResolveTotals(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/board.db")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("gems", 420); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveResolveStats("gems", 420, core.ResolveStats{Swaps: 8, Cascades: 2, MaxChain: 4}); err != nil {
		t.Fatalf("SaveResolveStats() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.games[m.gameCursor].ID != "gems" {
		t.Fatalf("first game = %q, want gems", m.games[m.gameCursor].ID)
	}
	if len(m.scores) != 1 || m.scores[0].Score != 420 {
		t.Errorf("scores = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "Best chain x4") {
		t.Error("View() missing resolve summary")
	}

	// The endless mode has no records.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb := next.(ScoreboardModel)
	if sb.totals != nil || len(sb.scores) != 0 {
		t.Errorf("gems_endless: totals=%v scores=%v, want none", sb.totals, sb.scores)
	}
}

func TestScoreboardHistoryView(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/history.db")
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	for i := 1; i <= 3; i++ {
		if _, err := store.SaveResolveStats("gems", i*100, core.ResolveStats{Swaps: i, MaxChain: i}); err != nil {
			t.Fatalf("SaveResolveStats() failed: %v", err)
		}
	}

	var m tea.Model = NewScoreboardModel(store, 100, 30)
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("default view is not the score list")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	sb := m.(ScoreboardModel)
	if sb.view != viewHistory {
		t.Fatalf("view = %v, want history", sb.view)
	}
	rows := sb.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("history rows = %d, want 3", len(rows))
	}
	// Newest first: score 300, chain x3.
	if rows[0][1] != "300" || rows[0][3] != "x3" {
		t.Errorf("first row = %v, want score 300 chain x3", rows[0])
	}
	if !strings.Contains(sb.View(), "RECENT GAMES") {
		t.Error("history heading missing")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m, _ := NewScoreboardModel(nil, 80, 24).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(ScoreboardModel).IsGoingBack() {
		t.Error("Esc did not go back")
	}
	m, _ = NewScoreboardModel(nil, 80, 24).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.(ScoreboardModel).IsQuitting() {
		t.Error("q did not quit")
	}
}
