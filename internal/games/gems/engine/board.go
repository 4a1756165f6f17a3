package engine

import "fmt"

// Board owns the grid of tile references and the per-cycle match bookkeeping.
// Cells are stored in row-major order: index = y*width + x.
type Board struct {
	width  int
	height int
	cells  []*Tile

	matches      tileSet
	bombMatches  tileSet
	blastMatches tileSet
	combo        map[GemType]int
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		width:        width,
		height:       height,
		cells:        make([]*Tile, width*height),
		matches:      newTileSet(),
		bombMatches:  newTileSet(),
		blastMatches: newTileSet(),
		combo:        make(map[GemType]int),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds returns true if the position is on the board.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// index converts a coordinate to a flat index, panicking when out of range.
func (b *Board) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d board", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// Set replaces the occupant of (x, y). A non-nil tile has its Pos set to (x, y).
func (b *Board) Set(x, y int, t *Tile) {
	b.cells[b.index(x, y)] = t
	if t != nil {
		t.Pos = P(x, y)
	}
}

// Get returns the occupant of (x, y), or nil for an empty cell.
// Out-of-range coordinates are a contract violation and panic.
func (b *Board) Get(x, y int) *Tile {
	return b.cells[b.index(x, y)]
}

// At is Get for a Position.
func (b *Board) At(p Position) *Tile {
	return b.Get(p.X, p.Y)
}

// occupant is a bounds-tolerant lookup for neighbour scans.
func (b *Board) occupant(x, y int) *Tile {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width+x]
}

// WouldMatch reports whether placing gem at p completes a run of three with the
// two cells before it on either axis. Only cells already visited by a
// left-to-right, bottom-to-top fill are consulted.
func (b *Board) WouldMatch(p Position, gem GemType) bool {
	if p.X > 1 {
		if sameType(gem, b.occupant(p.X-1, p.Y), b.occupant(p.X-2, p.Y)) {
			return true
		}
	}
	if p.Y > 1 {
		if sameType(gem, b.occupant(p.X, p.Y-1), b.occupant(p.X, p.Y-2)) {
			return true
		}
	}
	return false
}

// IsTypeMatch reports whether gem placed at (x, y) would form a run of three
// against the current grid. On each axis, when both neighbours exist they must
// both be gem; otherwise the run is looked for two steps out on the side that
// has a neighbour. Out-of-range coordinates never match.
func (b *Board) IsTypeMatch(x, y int, gem GemType) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.axisMatch(x, y, 1, 0, gem) || b.axisMatch(x, y, 0, 1, gem)
}

func (b *Board) axisMatch(x, y, dx, dy int, gem GemType) bool {
	prev := b.occupant(x-dx, y-dy)
	next := b.occupant(x+dx, y+dy)

	if prev != nil && next != nil {
		return prev.Type == gem && next.Type == gem
	}
	if prev != nil && sameType(gem, prev, b.occupant(x-2*dx, y-2*dy)) {
		return true
	}
	if next != nil && sameType(gem, next, b.occupant(x+2*dx, y+2*dy)) {
		return true
	}
	return false
}

// sameType returns true if every tile is present and of the given type.
func sameType(gem GemType, tiles ...*Tile) bool {
	for _, t := range tiles {
		if t == nil || t.Type != gem {
			return false
		}
	}
	return true
}

// Compact clears every cell that still references a reclaimed tile and
// returns how many cells were cleared.
func (b *Board) Compact() int {
	cleared := 0
	for i, t := range b.cells {
		if t != nil && t.reclaimed {
			b.cells[i] = nil
			cleared++
		}
	}
	return cleared
}

// Move describes one tile relocation made by gravity.
type Move struct {
	Tile TileInfo
	From Position
	To   Position
}

// Collapse drops every tile toward row 0, column by column.
// Each column is read in full before it is rewritten, so a tile is shifted
// exactly by the number of empty cells below it.
func (b *Board) Collapse() []Move {
	var moves []Move
	column := make([]*Tile, b.height)

	for x := range b.width {
		for y := range b.height {
			column[y] = b.Get(x, y)
		}

		write := 0
		for y, t := range column {
			if t == nil {
				continue
			}
			if y != write {
				moves = append(moves, Move{
					Tile: TileInfo{Type: t.Type, Kind: t.Kind, Pos: P(x, write)},
					From: P(x, y),
					To:   P(x, write),
				})
			}
			column[write] = t
			write++
		}
		for y := write; y < b.height; y++ {
			column[y] = nil
		}

		for y, t := range column {
			b.Set(x, y, t)
		}
	}

	return moves
}

// EmptyCells returns all empty positions in fill order (column by column,
// bottom to top).
func (b *Board) EmptyCells() []Position {
	var cells []Position
	for x := range b.width {
		for y := range b.height {
			if b.Get(x, y) == nil {
				cells = append(cells, P(x, y))
			}
		}
	}
	return cells
}

// Tiles returns every occupant in fill order.
func (b *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(b.cells))
	for x := range b.width {
		for y := range b.height {
			if t := b.Get(x, y); t != nil {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// IsFull returns true if no cell is empty.
func (b *Board) IsFull() bool {
	for _, t := range b.cells {
		if t == nil {
			return false
		}
	}
	return true
}
