package engine

import "github.com/charmbracelet/log"

// Allocator supplies tile instances and takes them back.
// The engine relies on reference equality only.
type Allocator interface {
	// Acquire returns a fresh tile of the given kind and gem type.
	Acquire(kind Kind, gem GemType) *Tile
	// Release hands a tile back. The tile is marked reclaimed.
	Release(t *Tile)
	// Live returns every tile handed out and not yet released.
	Live() []*Tile
}

// PoolStats reports allocator activity.
type PoolStats struct {
	Allocated int // tiles created from scratch
	Reused    int // tiles served from a free list
	Released  int
	Live      int
}

// Pool is the default Allocator. It keeps one free list per kind and tracks
// live tiles in acquisition order.
type Pool struct {
	roster Roster
	logger *log.Logger

	free  map[Kind][]*Tile
	live  tileSet
	stats PoolStats
}

// NewPool creates a pool that stamps score values and blast radii from roster.
func NewPool(roster Roster, logger *log.Logger) *Pool {
	if logger == nil {
		logger = discardLogger()
	}
	return &Pool{
		roster: roster,
		logger: logger,
		free:   make(map[Kind][]*Tile),
		live:   newTileSet(),
	}
}

// Acquire implements Allocator.
func (p *Pool) Acquire(kind Kind, gem GemType) *Tile {
	var t *Tile
	if list := p.free[kind]; len(list) > 0 {
		t = list[len(list)-1]
		p.free[kind] = list[:len(list)-1]
		p.stats.Reused++
	} else {
		t = &Tile{}
		p.stats.Allocated++
	}

	*t = Tile{Type: gem, Kind: kind, ScoreValue: p.roster.score(kind, gem)}
	if kind == KindSpecial {
		t.BlastRadius = p.roster.BlastRadius
	}

	p.live.add(t)
	return t
}

// Release implements Allocator. Releasing a reclaimed tile is a no-op.
func (p *Pool) Release(t *Tile) {
	if t == nil {
		return
	}
	if t.reclaimed {
		p.logger.Warn("tile released twice", "tile", t.String())
		return
	}
	t.reclaimed = true
	t.IsMatch = false
	p.live.remove(t)
	p.free[t.Kind] = append(p.free[t.Kind], t)
	p.stats.Released++
}

// Live implements Allocator.
func (p *Pool) Live() []*Tile {
	return p.live.list()
}

// Stats returns the allocation counters.
func (p *Pool) Stats() PoolStats {
	s := p.stats
	s.Live = p.live.len()
	return s
}
