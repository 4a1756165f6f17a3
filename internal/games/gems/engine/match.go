package engine

// FindAllMatches clears the per-cycle bookkeeping and rescans the board.
//
// Every cell with a horizontal neighbour on both sides is checked as the
// centre of a horizontal run, and every cell with a vertical neighbour on both
// sides as the centre of a vertical run. A run of any length is covered
// because each of its inner members is checked as a centre.
//
// After the scan the combo counter is tallied over all matched tiles, special
// tiles are moved into the bomb set and blast chains are resolved.
func (b *Board) FindAllMatches() {
	b.matches.clear()
	b.bombMatches.clear()
	b.blastMatches.clear()
	clear(b.combo)

	for _, t := range b.cells {
		if t != nil {
			t.IsMatch = false
		}
	}

	for x := range b.width {
		for y := range b.height {
			center := b.Get(x, y)
			if center == nil {
				continue
			}

			if x > 0 && x < b.width-1 {
				b.markRun(center, b.Get(x-1, y), b.Get(x+1, y))
			}
			if y > 0 && y < b.height-1 {
				b.markRun(center, b.Get(x, y-1), b.Get(x, y+1))
			}
		}
	}

	for _, t := range b.matches.order {
		b.combo[t.Type]++
	}

	for _, t := range b.matches.list() {
		if t.IsSpecial() {
			b.matches.remove(t)
			b.bombMatches.add(t)
		}
	}

	if b.bombMatches.len() > 0 {
		b.resolveBlasts(b.bombMatches.list())
	}
}

// markRun marks center and its two neighbours when all three share a type.
func (b *Board) markRun(center, before, after *Tile) {
	if before == nil || after == nil {
		return
	}
	if before.Type != center.Type || after.Type != center.Type {
		return
	}
	for _, t := range []*Tile{before, center, after} {
		t.IsMatch = true
		b.matches.add(t)
	}
}

// resolveBlasts expands the blast area of each pending bomb. Ordinary tiles
// in range join the blast set; bombs in range that are not yet scheduled are
// triggered and processed in the next pass. Only newly triggered bombs are
// rescanned, so the recursion ends once a pass triggers nothing new.
func (b *Board) resolveBlasts(pending []*Tile) {
	var triggered []*Tile
	seen := make(map[*Tile]struct{})

	for _, bomb := range pending {
		for _, t := range b.blastArea(bomb) {
			if b.matches.has(t) || b.bombMatches.has(t) {
				continue
			}
			if t.IsSpecial() {
				if _, ok := seen[t]; !ok {
					seen[t] = struct{}{}
					triggered = append(triggered, t)
				}
				continue
			}
			b.blastMatches.add(t)
		}
	}

	if len(triggered) == 0 {
		return
	}
	for _, t := range triggered {
		b.bombMatches.add(t)
	}
	b.resolveBlasts(triggered)
}

// blastArea returns every occupant within the bomb's Manhattan radius,
// scanning column by column. The bomb itself is included.
func (b *Board) blastArea(bomb *Tile) []*Tile {
	r := bomb.BlastRadius
	c := bomb.Pos
	var area []*Tile

	for x := max(0, c.X-r); x <= min(b.width-1, c.X+r); x++ {
		for y := max(0, c.Y-r); y <= min(b.height-1, c.Y+r); y++ {
			p := P(x, y)
			if p.Manhattan(c) > r {
				continue
			}
			if t := b.Get(x, y); t != nil {
				area = append(area, t)
			}
		}
	}
	return area
}

// Matches returns the ordinary matched tiles of the last detection pass.
func (b *Board) Matches() []*Tile {
	return b.matches.list()
}

// BombMatches returns the special tiles scheduled to detonate.
func (b *Board) BombMatches() []*Tile {
	return b.bombMatches.list()
}

// BlastMatches returns the ordinary tiles caught by detonations.
func (b *Board) BlastMatches() []*Tile {
	return b.blastMatches.list()
}

// ComboCount returns how many matched tiles of gem the last pass found.
// Special tiles are tallied before they are moved into the bomb set.
func (b *Board) ComboCount(gem GemType) int {
	return b.combo[gem]
}

// Combo returns a copy of the combo counter.
func (b *Board) Combo() map[GemType]int {
	out := make(map[GemType]int, len(b.combo))
	for k, v := range b.combo {
		out[k] = v
	}
	return out
}

// HasMatches returns true if the last pass scheduled anything for destruction.
func (b *Board) HasMatches() bool {
	return b.matches.len() > 0 || b.bombMatches.len() > 0 || b.blastMatches.len() > 0
}
