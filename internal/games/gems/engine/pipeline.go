package engine

import "time"

// beginCycle arms the pipeline for one resolve cycle.
func (e *Engine) beginCycle() {
	e.stats.Cycles++
	e.chain++
	e.stats.MaxChain = max(e.stats.MaxChain, e.chain)
	e.stage = StageDestroyMatches
	e.logger.Debug("resolve cycle",
		"chain", e.chain,
		"matches", e.board.matches.len(),
		"bombs", e.board.bombMatches.len(),
		"blast", e.board.blastMatches.len(),
	)
}

// Advance executes the next pipeline stage and returns the pacing delay the
// caller should wait before calling again. running is false once the board
// is stable and the phase is back to Move; the final call returns a zero
// delay. Calling Advance while idle does nothing.
func (e *Engine) Advance() (delay time.Duration, running bool) {
	p := e.cfg.Pacing

	switch e.stage {
	case StageIdle:
		return 0, false

	case StageDestroyMatches:
		e.destroy(e.board.matches.list(), CauseMatch)
		e.stage = StageDestroyBlasts
		return p.DestroyMatches, true

	case StageDestroyBlasts:
		e.destroy(e.board.blastMatches.list(), CauseBlast)
		e.stage = StageDestroyBombs
		return p.DestroyBlasts, true

	case StageDestroyBombs:
		e.destroy(e.board.bombMatches.list(), CauseBomb)
		e.stage = StageCompact
		return p.DestroyBombs, true

	case StageCompact:
		e.compact()
		e.stage = StageSpawnSpecials
		return 0, true

	case StageSpawnSpecials:
		e.spawnSpecials()
		e.stage = StageCompactAgain
		return p.Spawn, true

	case StageCompactAgain:
		e.compact()
		e.stage = StageGravity
		return 0, true

	case StageGravity:
		for _, m := range e.board.Collapse() {
			e.emit(TileMoved{Tile: m.Tile, From: m.From, To: m.To})
		}
		e.stage = StageRefill
		return p.Gravity, true

	case StageRefill:
		e.refill()
		e.stage = StageSweep
		return p.Refill, true

	case StageSweep:
		e.sweep()
		e.stage = StageRecheck
		return 0, true

	case StageRecheck:
		e.board.FindAllMatches()
		if e.board.HasMatches() {
			e.records = e.records[:0]
			e.stats.Cascades++
			e.beginCycle()
			return p.Settle, true
		}
		e.finish()
		return 0, false
	}

	return 0, false
}

// Settle drives the pipeline to a stable board without pacing and returns
// the number of resolve cycles it executed.
func (e *Engine) Settle() int {
	if e.stage == StageIdle {
		return 0
	}
	// The cycle already armed by Swap or Resolve counts as well.
	before := e.stats.Cycles - 1
	for {
		if _, running := e.Advance(); !running {
			break
		}
	}
	return e.stats.Cycles - before
}

// destroy scores and clears every tile still occupying its recorded cell.
func (e *Engine) destroy(tiles []*Tile, cause Cause) {
	for _, t := range tiles {
		if t.reclaimed || e.board.At(t.Pos) != t {
			continue
		}
		info := t.Info()
		e.score += t.ScoreValue
		e.board.Set(info.Pos.X, info.Pos.Y, nil)
		e.alloc.Release(t)

		e.stats.TilesDestroyed++
		if cause == CauseBomb {
			e.stats.BombsDetonated++
		}
		e.emit(TileDestroyed{Tile: info, Cause: cause})
		e.emit(ScoreChanged{Score: e.score, Delta: t.ScoreValue})
	}
}

func (e *Engine) compact() {
	if n := e.board.Compact(); n > 0 {
		e.logger.Warn("cleared cells holding reclaimed tiles", "cells", n)
	}
}

// spawnSpecials places a bomb at every swap record flagged for it.
func (e *Engine) spawnSpecials() {
	for _, rec := range e.records {
		if !rec.SpawnBomb {
			continue
		}
		if old := e.board.At(rec.Pos); old != nil {
			info := old.Info()
			e.board.Set(rec.Pos.X, rec.Pos.Y, nil)
			e.alloc.Release(old)
			e.emit(TileDestroyed{Tile: info, Cause: CauseReplaced})
		}
		e.place(rec.Pos, KindSpecial, rec.Gem)
		e.stats.BombsSpawned++
	}
}

// refill fills empty cells in fill order with gems that do not complete a
// run against the cells placed so far. When the bounded search fails a
// uniform random gem is placed and the fallback is reported.
func (e *Engine) refill() {
	n := e.cfg.Roster.Size()
	for _, p := range e.board.EmptyCells() {
		gem, ok := e.pickRefill(p)
		if !ok {
			gem = GemType(e.src.IntN(n))
			e.stats.Fallbacks++
			e.logger.Warn("refill fell back to random gem", "pos", p, "gem", gem)
			e.emit(RefillFallback{Pos: p, Gem: gem})
		}
		e.place(p, KindNormal, gem)
	}
}

// pickRefill walks a shuffled ordering of the roster and returns the first
// candidate that completes no run at p. It tries at most RefillAttempts
// candidates, capped at the roster size since a rejected gem stays rejected.
func (e *Engine) pickRefill(p Position) (GemType, bool) {
	n := e.cfg.Roster.Size()
	order := permutation(e.src, n)
	for _, gem := range order[:min(e.cfg.RefillAttempts, n)] {
		if !e.board.IsTypeMatch(p.X, p.Y, gem) {
			return gem, true
		}
	}
	return 0, false
}

// sweep reclaims live tiles that no cell references.
func (e *Engine) sweep() {
	onBoard := make(map[*Tile]struct{}, len(e.board.cells))
	for _, t := range e.board.cells {
		if t != nil {
			onBoard[t] = struct{}{}
		}
	}

	misplaced := 0
	for _, t := range e.alloc.Live() {
		if _, ok := onBoard[t]; ok {
			continue
		}
		e.alloc.Release(t)
		misplaced++
	}
	if misplaced == 0 {
		return
	}
	e.stats.Misplaced += misplaced
	e.logger.Error("reclaimed misplaced tiles", "count", misplaced)
	e.emit(MisplacedTiles{Count: misplaced})
}

// finish closes the pipeline and reopens the turn gate.
func (e *Engine) finish() {
	e.stage = StageIdle
	e.records = e.records[:0]
	if e.cfg.ReshuffleWhenStuck {
		e.reshuffleIfStuck()
	}
	e.logger.Debug("board stable", "score", e.score, "chain", e.chain)
	e.setPhase(PhaseMove)
}
