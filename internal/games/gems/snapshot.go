package gems

// Snapshot contains the observable game state for determinism tests and
// debugging. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	Moves     int
	MoveLimit int
	Phase     string
	Stage     string
	LastChain int

	CursorX  int
	CursorY  int
	Selected bool
	GameOver bool

	// Board in layout form, top row first (see engine.ParseLayout).
	Board string
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.eng.Score(),
		Moves:     g.moves,
		MoveLimit: g.moveLimit,
		Phase:     g.eng.Phase().String(),
		Stage:     g.eng.Stage().String(),
		LastChain: g.lastChain,
		CursorX:   g.cursor.X,
		CursorY:   g.cursor.Y,
		Selected:  g.selected,
		GameOver:  g.gameOver,
		Board:     g.eng.Board().String(),
	}
}
