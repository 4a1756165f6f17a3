package engine

import (
	"strings"
	"testing"
)

// boardFromLayout builds a board with plain tiles, bypassing any allocator.
// Bombs get a blast radius of 1.
func boardFromLayout(t *testing.T, layout string) *Board {
	t.Helper()

	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	w, h := len(rows[0]), len(rows)

	cells, err := ParseLayout(layout, w, h, 26)
	if err != nil {
		t.Fatalf("ParseLayout() error = %v", err)
	}

	b := NewBoard(w, h)
	for _, c := range cells {
		tile := &Tile{Type: c.Type, Kind: c.Kind, ScoreValue: 10}
		if c.Kind == KindSpecial {
			tile.BlastRadius = 1
		}
		b.Set(c.Pos.X, c.Pos.Y, tile)
	}
	return b
}

func TestBoardGetOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x past width", 4, 0},
		{"y past height", 0, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(4, 3)
			defer func() {
				if recover() == nil {
					t.Errorf("Get(%d, %d) did not panic", tc.x, tc.y)
				}
			}()
			b.Get(tc.x, tc.y)
		})
	}
}

func TestBoardSetStampsPosition(t *testing.T) {
	b := NewBoard(4, 4)
	tile := &Tile{Type: 1}

	b.Set(2, 3, tile)
	if tile.Pos != P(2, 3) {
		t.Errorf("Pos = %v, expected (2,3)", tile.Pos)
	}
	if b.Get(2, 3) != tile {
		t.Errorf("Get(2, 3) = %v, expected the placed tile", b.Get(2, 3))
	}

	b.Set(1, 0, tile)
	b.Set(2, 3, nil)
	if tile.Pos != P(1, 0) {
		t.Errorf("Pos after move = %v, expected (1,0)", tile.Pos)
	}
	if b.Get(2, 3) != nil {
		t.Error("old cell should be empty")
	}
}

func TestWouldMatch(t *testing.T) {
	// Row 0 is the bottom line of each layout.
	tests := []struct {
		name     string
		layout   string
		pos      Position
		gem      GemType
		expected bool
	}{
		{
			name: "two to the left",
			layout: `
				....
				....
				aa..`,
			pos:      P(2, 0),
			gem:      0,
			expected: true,
		},
		{
			name: "two below",
			layout: `
				....
				a...
				a...`,
			pos:      P(0, 2),
			gem:      0,
			expected: true,
		},
		{
			name: "different type",
			layout: `
				....
				....
				aa..`,
			pos:      P(2, 0),
			gem:      1,
			expected: false,
		},
		{
			name: "gap breaks run",
			layout: `
				....
				....
				a.a.`,
			pos:      P(3, 0),
			gem:      0,
			expected: false,
		},
		{
			name: "forward neighbours ignored",
			layout: `
				....
				....
				..aa`,
			pos:      P(1, 0),
			gem:      0,
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFromLayout(t, tc.layout)
			if got := b.WouldMatch(tc.pos, tc.gem); got != tc.expected {
				t.Errorf("WouldMatch(%v, %d) = %v, expected %v", tc.pos, tc.gem, got, tc.expected)
			}
		})
	}
}

func TestIsTypeMatch(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		x, y     int
		expected bool
	}{
		{"both neighbours match", "a.a..", 1, 0, true},
		{"extend left", "aa...", 2, 0, true},
		{"extend right", "...aa", 2, 0, true},
		{"both neighbours present but one differs", "ab.aa", 2, 0, false},
		{"single neighbour", "..a..", 1, 0, false},
		{"left edge extends right", ".aa..", 0, 0, true},
		{"right edge extends left", "..aa.", 4, 0, true},
		{"out of range", "aa...", 5, 0, false},
		{"negative", "aa...", -1, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := boardFromLayout(t, tc.layout)
			if got := b.IsTypeMatch(tc.x, tc.y, 0); got != tc.expected {
				t.Errorf("IsTypeMatch(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestIsTypeMatchVertical(t *testing.T) {
	b := boardFromLayout(t, `
		b
		.
		a
		a
		.`)

	if !b.IsTypeMatch(0, 0, 0) {
		t.Error("IsTypeMatch(0, 0) should extend upward to the a-a pair")
	}
	if b.IsTypeMatch(0, 3, 0) {
		t.Error("IsTypeMatch(0, 3) for a: both neighbours present and one is b")
	}
	if b.IsTypeMatch(0, 3, 1) {
		t.Error("IsTypeMatch(0, 3) for b should not match")
	}
}

func TestCollapseColumn(t *testing.T) {
	// Bottom to top: [empty, A, empty, B].
	b := boardFromLayout(t, `
		b
		.
		a
		.`)
	a, bb := b.Get(0, 1), b.Get(0, 3)

	moves := b.Collapse()

	if got := b.String(); got != ".\n.\nb\na" {
		t.Errorf("column after collapse = %q, expected %q", got, ".\n.\nb\na")
	}
	if b.Get(0, 0) != a || b.Get(0, 1) != bb {
		t.Error("tiles were not shifted by the empty count below them")
	}
	if a.Pos != P(0, 0) || bb.Pos != P(0, 1) {
		t.Errorf("positions = %v, %v, expected (0,0), (0,1)", a.Pos, bb.Pos)
	}

	expected := []Move{
		{Tile: TileInfo{Type: 0, Pos: P(0, 0)}, From: P(0, 1), To: P(0, 0)},
		{Tile: TileInfo{Type: 1, Pos: P(0, 1)}, From: P(0, 3), To: P(0, 1)},
	}
	if len(moves) != len(expected) {
		t.Fatalf("Collapse() returned %d moves, expected %d", len(moves), len(expected))
	}
	for i := range expected {
		if moves[i] != expected[i] {
			t.Errorf("move %d = %+v, expected %+v", i, moves[i], expected[i])
		}
	}
}

func TestCollapseColumnsAreIndependent(t *testing.T) {
	b := boardFromLayout(t, `
		ab.
		...
		.cd`)

	b.Collapse()

	want := "...\n" + ".b.\n" + "acd"
	if got := b.String(); got != want {
		t.Errorf("board after collapse =\n%s\nexpected\n%s", got, want)
	}
}

func TestCompactClearsReclaimedTiles(t *testing.T) {
	b := boardFromLayout(t, "abc")
	b.Get(1, 0).reclaimed = true

	if n := b.Compact(); n != 1 {
		t.Errorf("Compact() = %d, expected 1", n)
	}
	if b.Get(1, 0) != nil {
		t.Error("reclaimed tile still on the board")
	}
	if b.Get(0, 0) == nil || b.Get(2, 0) == nil {
		t.Error("live tiles should not be cleared")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	layout := "aB.\nc.d\n..e"
	b := boardFromLayout(t, layout)

	if got := b.String(); got != layout {
		t.Errorf("String() = %q, expected %q", got, layout)
	}
	if !b.Get(1, 2).IsSpecial() {
		t.Error("B should parse as a bomb")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		gems   int
	}{
		{"too few rows", "abc\nabc", 5},
		{"short row", "abc\nab\nabc", 5},
		{"bad rune", "abc\na#c\nabc", 5},
		{"outside roster", "abc\nabf\nabc", 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLayout(tc.layout, 3, 3, tc.gems); err == nil {
				t.Error("ParseLayout() error = nil, expected an error")
			}
		})
	}
}
