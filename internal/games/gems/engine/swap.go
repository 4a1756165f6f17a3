package engine

import "errors"

// Swap rejections. A rejected swap never changes engine state.
var (
	ErrNotAccepting = errors.New("engine: not accepting moves")
	ErrOutOfBounds  = errors.New("engine: cell out of bounds")
	ErrNotAdjacent  = errors.New("engine: cells are not adjacent")
	ErrEmptyCell    = errors.New("engine: cell is empty")
)

// SwapResult reports what an accepted swap did.
type SwapResult struct {
	// Committed is false when the swap produced no match and was reverted.
	Committed bool
	// Scheduled is the number of tiles the swap scheduled for destruction.
	Scheduled int
	// SpawnsBomb is true when a participant will leave a bomb behind.
	SpawnsBomb bool
}

// SwapToward swaps the tile at p with its neighbour in direction dir.
func (e *Engine) SwapToward(p Position, dir Direction) (SwapResult, error) {
	target := dir.Neighbor(p)
	if !e.board.InBounds(p) || !e.board.InBounds(target) {
		return SwapResult{}, ErrOutOfBounds
	}
	return e.Swap(p, target)
}

// Swap exchanges the tiles at a and b. The swap is kept only if at least one
// of the two tiles ends up in a run; otherwise it is undone and the phase
// returns to Move. A kept swap arms the resolution pipeline, which the caller
// drives with Advance or Settle.
func (e *Engine) Swap(a, b Position) (SwapResult, error) {
	if e.phase != PhaseMove {
		return SwapResult{}, ErrNotAccepting
	}
	if !e.board.InBounds(a) || !e.board.InBounds(b) {
		return SwapResult{}, ErrOutOfBounds
	}
	if !a.Adjacent(b) {
		return SwapResult{}, ErrNotAdjacent
	}
	ta, tb := e.board.At(a), e.board.At(b)
	if ta == nil || tb == nil {
		return SwapResult{}, ErrEmptyCell
	}

	e.setPhase(PhaseWait)
	e.exchange(ta, tb)
	e.board.FindAllMatches()

	if !ta.IsMatch && !tb.IsMatch {
		e.exchange(ta, tb)
		e.board.FindAllMatches()
		e.stats.Reverts++
		e.emit(SwapReverted{A: a, B: b})
		e.setPhase(PhaseMove)
		return SwapResult{}, nil
	}

	e.stats.Swaps++
	e.chain = 0
	e.records = e.records[:0]
	spawns := false
	for _, t := range []*Tile{ta, tb} {
		rec := swapRecord{
			Pos:       t.Pos,
			Gem:       t.Type,
			SpawnBomb: e.board.ComboCount(t.Type) >= e.cfg.MinMatchForSpecial,
		}
		spawns = spawns || rec.SpawnBomb
		e.records = append(e.records, rec)
	}

	res := SwapResult{
		Committed:  true,
		Scheduled:  e.board.matches.len() + e.board.bombMatches.len() + e.board.blastMatches.len(),
		SpawnsBomb: spawns,
	}
	e.logger.Debug("swap committed", "a", a, "b", b, "scheduled", res.Scheduled, "spawn", spawns)
	e.beginCycle()
	return res, nil
}

// exchange swaps the cells of two tiles and announces both moves.
func (e *Engine) exchange(ta, tb *Tile) {
	pa, pb := ta.Pos, tb.Pos
	e.board.Set(pa.X, pa.Y, tb)
	e.board.Set(pb.X, pb.Y, ta)
	e.emit(TileMoved{Tile: ta.Info(), From: pa, To: pb})
	e.emit(TileMoved{Tile: tb.Info(), From: pb, To: pa})
}
