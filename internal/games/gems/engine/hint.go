package engine

// maxReshuffles bounds how many times a stuck board is re-rolled in a row.
const maxReshuffles = 10

// FindHint returns the first swap, in fill order, that would complete a run.
// The board is restored before returning and the match bookkeeping is left
// untouched.
func (e *Engine) FindHint() (Position, Position, bool) {
	b := e.board
	for x := range b.Width() {
		for y := range b.Height() {
			a := P(x, y)
			for _, dir := range []Direction{DirRight, DirUp} {
				c := dir.Neighbor(a)
				if !b.InBounds(c) {
					continue
				}
				if b.swapCompletesRun(a, c) {
					return a, c, true
				}
			}
		}
	}
	return Position{}, Position{}, false
}

// HasMoves returns true if at least one swap would complete a run.
func (e *Engine) HasMoves() bool {
	_, _, ok := e.FindHint()
	return ok
}

// swapCompletesRun exchanges a and c tentatively and checks both cells.
func (b *Board) swapCompletesRun(a, c Position) bool {
	ta, tc := b.At(a), b.At(c)
	if ta == nil || tc == nil || ta.Type == tc.Type {
		return false
	}

	b.Set(a.X, a.Y, tc)
	b.Set(c.X, c.Y, ta)
	ok := b.runLength(a) >= 3 || b.runLength(c) >= 3
	b.Set(a.X, a.Y, ta)
	b.Set(c.X, c.Y, tc)
	return ok
}

// runLength returns the longer of the horizontal and vertical same-type runs
// through p.
func (b *Board) runLength(p Position) int {
	t := b.At(p)
	if t == nil {
		return 0
	}
	best := 0
	for _, axis := range [][2]int{{1, 0}, {0, 1}} {
		n := 1
		for _, sign := range []int{-1, 1} {
			dx, dy := axis[0]*sign, axis[1]*sign
			for q := p.Add(dx, dy); ; q = q.Add(dx, dy) {
				o := b.occupant(q.X, q.Y)
				if o == nil || o.Type != t.Type {
					break
				}
				n++
			}
		}
		best = max(best, n)
	}
	return best
}

// reshuffleIfStuck re-rolls the board while no swap can complete a run.
func (e *Engine) reshuffleIfStuck() {
	for i := 0; i < maxReshuffles && !e.HasMoves(); i++ {
		e.clearBoard(CauseReshuffle)
		e.fill()
		e.stats.Reshuffles++
		e.logger.Info("board reshuffled", "attempt", i+1)
		e.emit(BoardReshuffled{})
	}
	if !e.HasMoves() {
		e.logger.Warn("board still stuck after reshuffles", "limit", maxReshuffles)
	}
}
