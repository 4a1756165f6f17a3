// Package gems adapts the resolution engine to the terminal platform: it maps
// cursor input to swaps, paces the resolve pipeline in ticks and renders
// the board.
package gems

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/engine"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

const (
	messageTicksSec = 2 // seconds a status message stays visible
	hintTicksSec    = 3
)

// Game implements the gems puzzle on top of engine.Engine.
type Game struct {
	mode     Mode
	preset   config.DifficultyPreset // overrides the package-level preset
	cfg      config.GemsConfig
	eng      *engine.Engine
	tickRate int
	tick     uint64

	screenW int
	screenH int

	cursor    engine.Position
	selected  bool
	countdown int // ticks until the next Advance

	moves     int
	moveLimit int

	flashes    map[engine.Position]int // destroyed cells -> remaining flash ticks
	flashTicks int
	lastChain  int
	gain       int // points earned by the current swap

	hintA, hintB engine.Position
	hintTicks    int

	message      string
	messageTicks int

	gameOver bool
	paused   bool
	tooSmall bool
}

// Package-level settings, read on Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger routes game and engine diagnostics to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// SetPreset sets the difficulty for this game only. Sessions served
// concurrently use it instead of SetDifficultyPreset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// New creates a move-limited game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a game without a move limit.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("gems", func() registry.Game {
		return New()
	})
	registry.Register("gems_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "gems_endless"
	}
	return "gems"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Gems (Endless)"
	}
	return "Gems"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.selected = false
	g.countdown = 0
	g.moves = 0
	g.flashes = make(map[engine.Position]int)
	g.lastChain = 0
	g.gain = 0
	g.hintTicks = 0
	g.message = ""
	g.messageTicks = 0
	g.gameOver = false
	g.paused = false

	cfg, err := config.LoadGems(configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "err", err)
		cfg = config.DefaultGemsConfig()
		g.notify("Config error, using defaults")
	}
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyGemsPreset(&cfg, preset)
	}

	eng, err := g.newEngine(cfg, uint64(rc.Seed))
	if err != nil {
		logger.Error("invalid gems config, using defaults", "err", err)
		cfg = config.DefaultGemsConfig()
		g.notify("Config error, using defaults")
		eng, err = g.newEngine(cfg, uint64(rc.Seed))
		if err != nil {
			// The built-in defaults always validate.
			panic(err)
		}
	}
	g.cfg = cfg
	g.eng = eng

	g.moveLimit = 0
	if g.mode == ModeClassic {
		g.moveLimit = cfg.Gameplay.MoveLimit
	}
	g.flashTicks = max(1, g.ticksFor(cfg.Pacing.DestroyMatches))

	b := eng.Board()
	g.cursor = engine.P(b.Width()/2, b.Height()/2)

	g.checkScreenSize()
}

// newEngine builds an engine from the config with this game as event sink.
func (g *Game) newEngine(cfg config.GemsConfig, seed uint64) (*engine.Engine, error) {
	g.eng = nil
	return engine.New(engineConfig(cfg, seed),
		engine.WithLogger(logger),
		engine.WithSink(engine.SinkFunc(g.observe)),
	)
}

// engineConfig converts the YAML config into engine parameters.
func engineConfig(cfg config.GemsConfig, seed uint64) engine.Config {
	scores := make([]int, len(cfg.Gems))
	for i, gem := range cfg.Gems {
		scores[i] = gem.Score
	}
	return engine.Config{
		Width:  cfg.Board.Width,
		Height: cfg.Board.Height,
		Roster: engine.Roster{
			Scores:       scores,
			SpecialScore: cfg.Special.Score,
			BlastRadius:  cfg.Special.BlastRadius,
		},
		MinMatchForSpecial:  cfg.Special.MinMatchForSpawn,
		RefillAttempts:      cfg.Refill.Attempts,
		InitialFillAttempts: cfg.Setup.InitialFillAttempts,
		ReshuffleWhenStuck:  cfg.Gameplay.ReshuffleWhenStuck,
		Pacing: engine.Pacing{
			DestroyMatches: cfg.Pacing.DestroyMatches,
			DestroyBlasts:  cfg.Pacing.DestroyBlasts,
			DestroyBombs:   cfg.Pacing.DestroyBombs,
			Spawn:          cfg.Pacing.Spawn,
			Gravity:        cfg.Pacing.Gravity,
			Refill:         cfg.Pacing.Refill,
			Settle:         cfg.Pacing.Settle,
		},
		Seed: seed,
	}
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// ticksFor converts a pacing delay into whole ticks, rounding up.
func (g *Game) ticksFor(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	n := int64(d)*int64(g.tickRate) + int64(time.Second) - 1
	return int(n / int64(time.Second))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.decay()

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.drive()

	if g.eng.Phase() == engine.PhaseMove {
		g.handleInput(in)
	}

	g.checkGameOver()
	return core.StepResult{State: g.State()}
}

// decay counts down the transient visual state.
func (g *Game) decay() {
	for p, n := range g.flashes {
		if n <= 1 {
			delete(g.flashes, p)
			continue
		}
		g.flashes[p] = n - 1
	}
	if g.hintTicks > 0 {
		g.hintTicks--
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
}

// drive runs pipeline stages whose delay has elapsed. Zero-delay stages
// run back to back in the same tick.
func (g *Game) drive() {
	if !g.eng.Running() {
		return
	}
	if g.countdown > 0 {
		g.countdown--
		return
	}
	for g.eng.Running() && g.countdown == 0 {
		delay, _ := g.eng.Advance()
		g.countdown = g.ticksFor(delay)
	}
}

// handleInput moves the cursor or swaps the selected gem.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionBack) {
		g.selected = false
	}
	if in.Has(core.ActionConfirm) {
		g.selected = !g.selected
	}

	dir, ok := directionOf(in)
	if !ok {
		return
	}
	if !g.selected {
		g.moveCursor(dir)
		return
	}
	g.swap(dir)
}

// directionOf maps the first directional action of the frame.
func directionOf(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

func (g *Game) moveCursor(dir engine.Direction) {
	next := dir.Neighbor(g.cursor)
	if g.eng.Board().InBounds(next) {
		g.cursor = next
	}
}

// swap sends the selected gem toward dir.
func (g *Game) swap(dir engine.Direction) {
	g.selected = false
	g.gain = 0
	res, err := g.eng.SwapToward(g.cursor, dir)
	switch {
	case errors.Is(err, engine.ErrOutOfBounds):
		g.notify("Can't swap off the board")
		return
	case err != nil:
		logger.Debug("swap rejected", "at", g.cursor, "dir", dir, "err", err)
		return
	}
	if !res.Committed {
		g.notify("No match")
		return
	}

	g.moves++
	g.hintTicks = 0
	g.cursor = dir.Neighbor(g.cursor)
	g.countdown = 0
	if res.SpawnsBomb {
		g.notify("Bomb!")
	}
}

func (g *Game) showHint() {
	a, b, ok := g.eng.FindHint()
	if !ok {
		g.notify("No moves left")
		return
	}
	g.hintA, g.hintB = a, b
	g.hintTicks = hintTicksSec * g.tickRate
}

// checkGameOver ends the game once the engine is idle and no further swap
// is allowed or possible. With reshuffles enabled the engine has already
// re-rolled a stuck board, so a board without moves here is final.
func (g *Game) checkGameOver() {
	if g.eng.Running() {
		return
	}
	if g.moveLimit > 0 && g.moves >= g.moveLimit {
		g.gameOver = true
		return
	}
	if !g.eng.HasMoves() {
		g.gameOver = true
	}
}

// notify shows a transient status line.
func (g *Game) notify(msg string) {
	g.message = msg
	rate := g.tickRate
	if rate <= 0 {
		rate = 60
	}
	g.messageTicks = messageTicksSec * rate
}

// observe consumes engine events for presentation.
func (g *Game) observe(ev engine.Event) {
	switch e := ev.(type) {
	case engine.TileDestroyed:
		if e.Cause == engine.CauseReshuffle {
			return
		}
		if g.flashes != nil {
			g.flashes[e.Tile.Pos] = g.flashTicks
		}
	case engine.ScoreChanged:
		g.gain += e.Delta
	case engine.PhaseChanged:
		if e.To == engine.PhaseMove && g.eng != nil {
			if c := g.eng.Chain(); c > 0 {
				g.lastChain = c
			}
		}
	case engine.BoardReshuffled:
		g.notify("No moves, reshuffled")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.eng != nil {
		score = g.eng.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// MovesLeft returns the remaining swaps, or -1 without a limit.
func (g *Game) MovesLeft() int {
	if g.moveLimit <= 0 {
		return -1
	}
	return max(0, g.moveLimit-g.moves)
}

// ResolveStats reports what the engine did during this game.
func (g *Game) ResolveStats() core.ResolveStats {
	if g.eng == nil {
		return core.ResolveStats{}
	}
	s := g.eng.Stats()
	return core.ResolveStats{
		Swaps:          s.Swaps,
		Reverts:        s.Reverts,
		Cycles:         s.Cycles,
		Cascades:       s.Cascades,
		MaxChain:       s.MaxChain,
		BombsSpawned:   s.BombsSpawned,
		BombsDetonated: s.BombsDetonated,
		TilesDestroyed: s.TilesDestroyed,
		Fallbacks:      s.Fallbacks,
		Misplaced:      s.Misplaced,
		Reshuffles:     s.Reshuffles,
	}
}

// Resize follows a terminal resize without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}
