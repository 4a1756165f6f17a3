package gems

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/engine"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

const baseYAML = `
board: {width: 5, height: 5}
gems:
  - {name: a, symbol: a, color: red, score: 10}
  - {name: b, symbol: b, color: green, score: 10}
  - {name: c, symbol: c, color: blue, score: 10}
  - {name: d, symbol: d, color: yellow, score: 10}
special: {symbol: "@", score: 50, blast_radius: 1, min_match_for_spawn: 4}
gameplay: {move_limit: %MOVES%, reshuffle_when_stuck: true}
`

// swapLayout has exactly one interesting swap on the bottom row:
// (2,0) <-> (3,0) completes a run of a.
const swapLayout = `
	cdcdc
	dcdcd
	cdcdc
	dcdcd
	aabab`

func writeConfig(t *testing.T, moves string, extra string) string {
	t.Helper()
	body := strings.ReplaceAll(baseYAML, "%MOVES%", moves) + extra
	path := filepath.Join(t.TempDir(), "gems.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// newTestGame resets g against a config file and loads swapLayout.
func newTestGame(t *testing.T, g *Game, cfgPath string) *Game {
	t.Helper()
	SetConfigPath(cfgPath)
	t.Cleanup(func() { SetConfigPath("") })

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	if err := g.eng.Load(swapLayout); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestRegistration(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"gems", "Gems"},
		{"gems_endless", "Gems (Endless)"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", tt.id, err)
			}
			if g.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", g.ID(), tt.id)
			}
			if g.Title() != tt.title {
				t.Errorf("Title() = %q, want %q", g.Title(), tt.title)
			}
		})
	}
}

func TestTicksFor(t *testing.T) {
	g := &Game{tickRate: 60}
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Millisecond, 1},
		{16 * time.Millisecond, 1},
		{17 * time.Millisecond, 2},
		{200 * time.Millisecond, 12},
		{time.Second, 60},
	}
	for _, tt := range tests {
		if got := g.ticksFor(tt.d); got != tt.want {
			t.Errorf("ticksFor(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestResetIsDeterministicForSeed(t *testing.T) {
	path := writeConfig(t, "10", "")
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99}
	a, b := New(), New()
	a.Reset(rc)
	b.Reset(rc)

	if a.Snapshot().Board != b.Snapshot().Board {
		t.Errorf("boards differ for the same seed:\n%s\n---\n%s", a.Snapshot().Board, b.Snapshot().Board)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))

	for range 10 {
		press(g, core.ActionLeft)
	}
	for range 10 {
		press(g, core.ActionUp)
	}
	if g.cursor != engine.P(0, 4) {
		t.Errorf("cursor = %v, want (0,4)", g.cursor)
	}
}

func TestSwapCommitsAndResolves(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))

	press(g, core.ActionDown)
	press(g, core.ActionDown)
	if g.cursor != engine.P(2, 0) {
		t.Fatalf("cursor = %v, want (2,0)", g.cursor)
	}
	press(g, core.ActionConfirm)
	if !g.selected {
		t.Fatal("Confirm did not select the gem")
	}
	press(g, core.ActionRight)

	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
	if g.selected {
		t.Error("selection kept after swap")
	}
	if g.cursor != engine.P(3, 0) {
		t.Errorf("cursor = %v, want it to follow the gem to (3,0)", g.cursor)
	}

	// Zero pacing resolves the whole cycle in one tick.
	press(g)
	if g.eng.Running() {
		t.Fatal("engine still running after a zero-paced tick")
	}
	if g.State().Score < 30 {
		t.Errorf("Score = %d, want at least 30", g.State().Score)
	}
	if g.lastChain < 1 {
		t.Errorf("lastChain = %d, want >= 1", g.lastChain)
	}
	if s := g.ResolveStats(); s.Swaps != 1 || s.TilesDestroyed < 3 {
		t.Errorf("ResolveStats() = %+v, want 1 swap and >= 3 destroyed", s)
	}
	if !g.eng.Board().IsFull() {
		t.Error("board not refilled")
	}
}

func TestSwapWithoutMatchIsReverted(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))
	before := g.eng.Board().String()

	press(g, core.ActionLeft)
	press(g, core.ActionLeft)
	press(g, core.ActionUp)
	press(g, core.ActionUp)
	press(g, core.ActionConfirm)
	press(g, core.ActionRight)

	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
	if g.message != "No match" {
		t.Errorf("message = %q, want %q", g.message, "No match")
	}
	if got := g.eng.Board().String(); got != before {
		t.Errorf("board changed:\n%s", got)
	}
}

func TestSwapOffBoardIsRejected(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))
	for range 5 {
		press(g, core.ActionLeft)
	}
	press(g, core.ActionConfirm)
	press(g, core.ActionLeft)

	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
	if g.message == "" {
		t.Error("expected a status message")
	}
}

func TestInputIgnoredWhileResolving(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", "pacing: {destroy_matches: 1s}\n"))

	press(g, core.ActionDown)
	press(g, core.ActionDown)
	press(g, core.ActionConfirm)
	press(g, core.ActionRight)
	press(g) // destroy stage runs and arms a one second delay

	if g.eng.Phase() != engine.PhaseWait {
		t.Fatalf("Phase() = %v, want Wait", g.eng.Phase())
	}
	cursor := g.cursor
	press(g, core.ActionLeft)
	press(g, core.ActionConfirm)
	if g.cursor != cursor || g.selected {
		t.Errorf("input handled during Wait: cursor %v selected %v", g.cursor, g.selected)
	}

	for i := 0; i < 1000 && g.eng.Running(); i++ {
		press(g)
	}
	if g.eng.Phase() != engine.PhaseMove {
		t.Errorf("Phase() = %v after resolving, want Move", g.eng.Phase())
	}
}

func TestMoveLimitEndsClassicGame(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "1", ""))

	press(g, core.ActionDown)
	press(g, core.ActionDown)
	press(g, core.ActionConfirm)
	res := press(g, core.ActionRight)
	if res.State.GameOver {
		t.Fatal("game over before the cycle resolved")
	}
	res = press(g)
	if !res.State.GameOver {
		t.Error("expected game over once the last move resolved")
	}
	if g.MovesLeft() != 0 {
		t.Errorf("MovesLeft() = %d, want 0", g.MovesLeft())
	}
}

func TestEndlessHasNoMoveLimit(t *testing.T) {
	g := newTestGame(t, NewEndless(), writeConfig(t, "1", ""))

	press(g, core.ActionDown)
	press(g, core.ActionDown)
	press(g, core.ActionConfirm)
	press(g, core.ActionRight)
	res := press(g)

	if res.State.GameOver {
		t.Error("endless game ended after one move")
	}
	if g.MovesLeft() != -1 {
		t.Errorf("MovesLeft() = %d, want -1", g.MovesLeft())
	}
}

func TestStuckBoardEndsGameWithReshuffleEnabled(t *testing.T) {
	g := newTestGame(t, NewEndless(), writeConfig(t, "0", ""))
	if !g.cfg.Gameplay.ReshuffleWhenStuck {
		t.Fatal("test config should enable reshuffles")
	}
	if err := g.eng.Load(`
		abcda
		cdabc
		abcda
		cdabc
		abcda`); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	res := press(g)

	if !res.State.GameOver {
		t.Error("expected game over on a board without moves")
	}
}

func TestHintHighlightsAdjacentPair(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))
	press(g, core.ActionHint)

	if g.hintTicks == 0 {
		t.Fatal("hint not shown")
	}
	if !g.hintA.Adjacent(g.hintB) {
		t.Errorf("hint %v %v is not an adjacent pair", g.hintA, g.hintB)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))

	if !press(g, core.ActionPause).State.Paused {
		t.Fatal("expected paused state")
	}
	press(g, core.ActionLeft)
	if g.cursor != engine.P(2, 2) {
		t.Errorf("cursor moved while paused: %v", g.cursor)
	}
	if press(g, core.ActionPause).State.Paused {
		t.Error("expected unpaused state")
	}
}

func TestMissingConfigFallsBackToDefaults(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	if w := g.eng.Board().Width(); w != 8 {
		t.Errorf("board width = %d, want default 8", w)
	}
	if g.message == "" {
		t.Error("expected a config error message")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), writeConfig(t, "10", ""))
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"GEMS", "Score: 0", "Moves: 10", "[c]"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if c := screen.GetCell(0, 0); c.Color != core.ColorDefault {
		t.Errorf("corner cell colored %v", c.Color)
	}
}

func TestRenderTooSmall(t *testing.T) {
	SetConfigPath(writeConfig(t, "10", ""))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60})
	if !g.State().Paused {
		t.Error("too small screen should report paused")
	}
	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected too small message:\n%s", screen.String())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want core.Color
	}{
		{"red", core.ColorRed},
		{"Cyan", core.ColorCyan},
		{"bright_yellow", core.ColorBrightYellow},
		{"chartreuse", core.ColorDefault},
		{"", core.ColorDefault},
	}
	for _, tt := range tests {
		if got := parseColor(tt.name); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSetPresetOverridesConfig(t *testing.T) {
	SetConfigPath(writeConfig(t, "10", ""))
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.SetPreset(config.DifficultyHard)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})

	if got := g.MovesLeft(); got != 20 {
		t.Errorf("MovesLeft() = %d, want 20 from the hard preset", got)
	}
	if got := g.cfg.Special.MinMatchForSpawn; got != 5 {
		t.Errorf("MinMatchForSpawn = %d, want 5", got)
	}
}
