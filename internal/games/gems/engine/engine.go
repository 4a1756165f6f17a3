package engine

import (
	"github.com/charmbracelet/log"
)

// Stats counts what the engine has done since it was created.
type Stats struct {
	Swaps          int // committed swaps
	Reverts        int // swaps undone for lack of a match
	Cycles         int // resolve cycles, cascades included
	Cascades       int // cycles started by a re-check rather than a swap
	MaxChain       int // most cycles triggered by a single swap
	BombsSpawned   int
	BombsDetonated int
	TilesDestroyed int
	Fallbacks      int // refills that ignored the anti-repeat rule
	Misplaced      int // tiles reclaimed by the consistency sweep
	Reshuffles     int
}

// swapRecord is one participant of the last committed swap.
type swapRecord struct {
	Pos       Position
	Gem       GemType
	SpawnBomb bool
}

// Engine runs one gems session: the board, the turn gate and the
// resolution pipeline.
type Engine struct {
	cfg    Config
	board  *Board
	alloc  Allocator
	src    IntNSource
	sink   Sink
	logger *log.Logger

	phase   Phase
	stage   Stage
	records []swapRecord
	score   int
	chain   int
	stats   Stats
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSink adds an event sink. It may be given more than once.
func WithSink(s Sink) Option {
	return func(e *Engine) {
		if s == nil {
			return
		}
		if ms, ok := e.sink.(multiSink); ok {
			e.sink = append(ms, s)
			return
		}
		if _, ok := e.sink.(nopSink); ok {
			e.sink = s
			return
		}
		e.sink = multiSink{e.sink, s}
	}
}

// WithAllocator replaces the default Pool.
func WithAllocator(a Allocator) Option {
	return func(e *Engine) {
		e.alloc = a
	}
}

// WithSource replaces the default PCG source.
func WithSource(src IntNSource) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// New validates cfg, creates the board and fills it without initial runs.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		board:  NewBoard(cfg.Width, cfg.Height),
		sink:   nopSink{},
		logger: discardLogger(),
		phase:  PhaseMove,
		stage:  StageIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.alloc == nil {
		e.alloc = NewPool(cfg.Roster, e.logger)
	}
	if e.src == nil {
		e.src = newSource(cfg.Seed)
	}

	e.fill()
	if cfg.ReshuffleWhenStuck {
		e.reshuffleIfStuck()
	}
	e.logger.Debug("board filled", "width", cfg.Width, "height", cfg.Height, "gems", cfg.Roster.Size())
	return e, nil
}

// fill places a gem in every empty cell, column by column from the bottom,
// rerolling while the gem would complete a run with the cells already placed.
func (e *Engine) fill() {
	n := e.cfg.Roster.Size()
	for x := range e.board.Width() {
		for y := range e.board.Height() {
			if e.board.Get(x, y) != nil {
				continue
			}
			p := P(x, y)
			gem := GemType(e.src.IntN(n))
			for i := 0; i < e.cfg.InitialFillAttempts && e.board.WouldMatch(p, gem); i++ {
				gem = GemType(e.src.IntN(n))
			}
			e.place(p, KindNormal, gem)
		}
	}
}

// place acquires a tile, puts it at p and announces it.
func (e *Engine) place(p Position, kind Kind, gem GemType) *Tile {
	t := e.alloc.Acquire(kind, gem)
	e.board.Set(p.X, p.Y, t)
	e.emit(TileSpawned{Tile: t.Info()})
	return t
}

func (e *Engine) emit(ev Event) {
	e.sink.Emit(ev)
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	from := e.phase
	e.phase = p
	e.emit(PhaseChanged{From: from, To: p})
}

// Phase returns the turn gate state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Stage returns the next pipeline stage, StageIdle when nothing is pending.
func (e *Engine) Stage() Stage {
	return e.stage
}

// Running returns true while the pipeline has stages left.
func (e *Engine) Running() bool {
	return e.stage != StageIdle
}

// Board exposes the grid for read access.
func (e *Engine) Board() *Board {
	return e.board
}

// Config returns the validated configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score returns the session score.
func (e *Engine) Score() int {
	return e.score
}

// Chain returns how many cycles the current or last swap has triggered.
func (e *Engine) Chain() int {
	return e.chain
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Load replaces the board content with a layout (see ParseLayout).
// Only allowed while the engine accepts moves.
func (e *Engine) Load(layout string) error {
	if e.phase != PhaseMove {
		return ErrNotAccepting
	}
	cells, err := ParseLayout(layout, e.board.Width(), e.board.Height(), e.cfg.Roster.Size())
	if err != nil {
		return err
	}

	e.clearBoard(CauseReshuffle)
	for _, c := range cells {
		e.place(c.Pos, c.Kind, c.Type)
	}
	return nil
}

// clearBoard releases every tile on the board.
func (e *Engine) clearBoard(cause Cause) {
	for _, t := range e.board.Tiles() {
		info := t.Info()
		e.board.Set(info.Pos.X, info.Pos.Y, nil)
		e.alloc.Release(t)
		e.emit(TileDestroyed{Tile: info, Cause: cause})
	}
}

// Resolve starts a resolve cycle for runs already on the board, such as after
// Load. It returns false when the board holds no runs or the engine is busy.
func (e *Engine) Resolve() bool {
	if e.phase != PhaseMove {
		return false
	}
	e.board.FindAllMatches()
	if !e.board.HasMatches() {
		return false
	}
	e.setPhase(PhaseWait)
	e.records = nil
	e.chain = 0
	e.beginCycle()
	return true
}
