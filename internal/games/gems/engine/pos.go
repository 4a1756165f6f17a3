package engine

import "fmt"

// Position is a cell coordinate on the board.
// X increases to the right, Y increases upward (row 0 is the bottom row,
// tiles fall toward lower Y).
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent returns true if other is exactly one orthogonal step away.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// Direction is one of the four orthogonal swap directions.
type Direction uint8

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up increases Y because row 0 is the bottom of the board.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Neighbor returns the position one step from p in this direction.
// The result may be out of bounds; callers check with Board.InBounds.
func (d Direction) Neighbor(p Position) Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}
