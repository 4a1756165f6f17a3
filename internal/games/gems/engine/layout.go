package engine

import (
	"fmt"
	"strings"
)

// Layouts describe a board as text, one line per row, top row first.
//
//	.      empty cell
//	a..z   normal gem of type 0..25
//	A..Z   bomb of type 0..25
//
// Blank lines and surrounding whitespace are ignored.

// LayoutCell is one occupied cell of a parsed layout.
type LayoutCell struct {
	Pos  Position
	Kind Kind
	Type GemType
}

// ParseLayout parses a layout for a width x height board with the given
// roster size. Cells are returned in fill order.
func ParseLayout(layout string, width, height, gems int) ([]LayoutCell, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != height {
		return nil, ValidationError{
			Code:    "INVALID_LAYOUT",
			Message: fmt.Sprintf("layout has %d rows, board has %d", len(rows), height),
		}
	}

	var cells []LayoutCell
	for x := range width {
		for y := range height {
			row := rows[height-1-y]
			if len(row) != width {
				return nil, ValidationError{
					Code:    "INVALID_LAYOUT",
					Message: fmt.Sprintf("row %d has %d cells, board has %d", y, len(row), width),
				}
			}

			ch := row[x]
			var cell LayoutCell
			switch {
			case ch == '.':
				continue
			case ch >= 'a' && ch <= 'z':
				cell = LayoutCell{Kind: KindNormal, Type: GemType(ch - 'a')}
			case ch >= 'A' && ch <= 'Z':
				cell = LayoutCell{Kind: KindSpecial, Type: GemType(ch - 'A')}
			default:
				return nil, ValidationError{
					Code:    "INVALID_LAYOUT",
					Message: fmt.Sprintf("unexpected %q at (%d,%d)", ch, x, y),
				}
			}
			if int(cell.Type) >= gems {
				return nil, ValidationError{
					Code:    "INVALID_LAYOUT",
					Message: fmt.Sprintf("gem %q at (%d,%d) outside roster of %d", ch, x, y, gems),
				}
			}
			cell.Pos = P(x, y)
			cells = append(cells, cell)
		}
	}
	return cells, nil
}

// String renders the board in layout form.
func (b *Board) String() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		for x := range b.width {
			sb.WriteByte(layoutByte(b.Get(x, y)))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func layoutByte(t *Tile) byte {
	switch {
	case t == nil:
		return '.'
	case t.Type > 25:
		return '?'
	case t.IsSpecial():
		return 'A' + byte(t.Type)
	default:
		return 'a' + byte(t.Type)
	}
}
