// Package engine implements the resolution engine of the gems puzzle:
// match detection, chained bomb detonation, gravity, anti-repeat refill
// and the Move/Wait turn gate. It is UI-agnostic and single-threaded.
package engine

import "fmt"

// GemType indexes the configured gem roster.
type GemType uint8

// Kind tags the tile variant.
type Kind uint8

const (
	KindNormal Kind = iota
	KindSpecial
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindSpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// Tile is one grid occupant.
// BlastRadius is the special-variant payload and is zero for normal tiles.
type Tile struct {
	Type        GemType
	Kind        Kind
	ScoreValue  int
	BlastRadius int // Manhattan radius, KindSpecial only

	// Pos mirrors the board cell holding this tile. Only Board.Set writes it.
	Pos Position

	// IsMatch is reset at the start of every match detection pass.
	IsMatch bool

	reclaimed bool
}

// IsSpecial reports whether the tile is a bomb.
func (t *Tile) IsSpecial() bool {
	return t.Kind == KindSpecial
}

// Reclaimed reports whether the tile has been handed back to its allocator.
func (t *Tile) Reclaimed() bool {
	return t.reclaimed
}

// String returns a compact description used in logs and test failures.
func (t *Tile) String() string {
	if t == nil {
		return "<empty>"
	}
	if t.Kind == KindSpecial {
		return fmt.Sprintf("bomb(%d,r=%d)@%s", t.Type, t.BlastRadius, t.Pos)
	}
	return fmt.Sprintf("gem(%d)@%s", t.Type, t.Pos)
}

// TileInfo is a value copy of the presentation-relevant tile fields.
// Events carry TileInfo so observers never hold live tile references.
type TileInfo struct {
	Type GemType
	Kind Kind
	Pos  Position
}

// Info returns a value snapshot of the tile.
func (t *Tile) Info() TileInfo {
	return TileInfo{Type: t.Type, Kind: t.Kind, Pos: t.Pos}
}
