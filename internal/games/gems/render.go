package gems

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/engine"
)

const (
	cellWidth = 3 // symbol with one column of padding each side
	hudHeight = 3
)

var colorNames = map[string]core.Color{
	"red":            core.ColorRed,
	"green":          core.ColorGreen,
	"yellow":         core.ColorYellow,
	"blue":           core.ColorBlue,
	"magenta":        core.ColorMagenta,
	"cyan":           core.ColorCyan,
	"white":          core.ColorWhite,
	"orange":         core.ColorOrange,
	"gray":           core.ColorGray,
	"bright_red":     core.ColorBrightRed,
	"bright_green":   core.ColorBrightGreen,
	"bright_yellow":  core.ColorBrightYellow,
	"bright_blue":    core.ColorBrightBlue,
	"bright_magenta": core.ColorBrightMagenta,
	"bright_cyan":    core.ColorBrightCyan,
	"bright_white":   core.ColorBrightWhite,
}

// parseColor maps a config color name; unknown names render uncolored.
func parseColor(name string) core.Color {
	if c, ok := colorNames[strings.ToLower(name)]; ok {
		return c
	}
	return core.ColorDefault
}

// layoutSize returns the minimum screen size for the current board.
func (g *Game) layoutSize() (int, int) {
	w := g.cfg.Board.Width*cellWidth + 2
	h := hudHeight + g.cfg.Board.Height + 2 + 2 // box borders, message, controls
	return max(w, 30), h
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	b := g.eng.Board()
	boardW := b.Width()*cellWidth + 2
	boardH := b.Height() + 2
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)

	if g.message != "" {
		dst.DrawTextCenteredColor(boardY+boardH, g.message, core.ColorBrightYellow)
	}
	dst.DrawTextCenteredColor(boardY+boardH+1, g.Controls(), core.ColorGray)

	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := g.layoutSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

// renderHUD draws score, moves and the last cascade depth.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColor(0, strings.ToUpper(g.Title()), core.ColorBrightCyan)

	score := fmt.Sprintf("Score: %d", g.eng.Score())
	if g.gain > 0 && g.eng.Running() {
		score += fmt.Sprintf(" +%d", g.gain)
	}
	dst.DrawText(boardX, 1, score)

	var info string
	if left := g.MovesLeft(); left >= 0 {
		info = fmt.Sprintf("Moves: %d", left)
	} else {
		info = fmt.Sprintf("Moves: %d", g.moves)
	}
	infoX := max(boardX, boardX+boardW-utf8.RuneCountInString(info))
	dst.DrawText(infoX, 1, info)

	if g.lastChain > 1 {
		dst.DrawTextCenteredColor(2, fmt.Sprintf("Chain x%d", g.lastChain), core.ColorOrange)
	}
}

// renderBoard draws the box and the gems. Row 0 of the board is the bottom
// screen row.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	b := g.eng.Board()
	frame := core.ColorGray
	if g.eng.Phase() == engine.PhaseWait {
		frame = core.ColorWhite
	}
	dst.DrawBoxColor(core.Rect{X: boardX, Y: boardY, W: b.Width()*cellWidth + 2, H: b.Height() + 2}, frame)

	hint := g.hintTicks > 0
	for y := range b.Height() {
		sy := boardY + 1 + (b.Height() - 1 - y)
		for x := range b.Width() {
			p := engine.P(x, y)
			sx := boardX + 1 + x*cellWidth

			sym, color := g.cellGlyph(b.At(p), p)
			dst.SetColor(sx+1, sy, sym, color)

			switch {
			case p == g.cursor && g.selected:
				dst.SetColor(sx, sy, '«', core.ColorBrightWhite)
				dst.SetColor(sx+2, sy, '»', core.ColorBrightWhite)
			case p == g.cursor:
				dst.SetColor(sx, sy, '[', core.ColorWhite)
				dst.SetColor(sx+2, sy, ']', core.ColorWhite)
			case hint && (p == g.hintA || p == g.hintB):
				dst.SetColor(sx, sy, '(', core.ColorBrightYellow)
				dst.SetColor(sx+2, sy, ')', core.ColorBrightYellow)
			}
		}
	}
}

// cellGlyph picks the rune and color for one cell.
func (g *Game) cellGlyph(t *engine.Tile, p engine.Position) (rune, core.Color) {
	if t == nil {
		if _, ok := g.flashes[p]; ok {
			return '*', core.ColorBrightWhite
		}
		return '·', core.ColorGray
	}

	gem := g.gemConfig(t.Type)
	color := parseColor(gem.Color)
	if t.IsSpecial() {
		r, _ := utf8.DecodeRuneInString(g.cfg.Special.Symbol)
		if r == utf8.RuneError {
			r = '@'
		}
		return r, color
	}
	r, _ := utf8.DecodeRuneInString(gem.Symbol)
	if r == utf8.RuneError {
		r = rune('a' + int(t.Type))
	}
	return r, color
}

func (g *Game) gemConfig(gem engine.GemType) config.GemConfig {
	if int(gem) < len(g.cfg.Gems) {
		return g.cfg.Gems[gem]
	}
	return config.GemConfig{}
}

// renderOverlays draws pause and game over boxes over the board area.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	centerX, centerY := area.Center()
	if g.paused {
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}
	if g.gameOver {
		reason := "Out of moves"
		if g.MovesLeft() != 0 {
			reason = "No moves left"
		}
		drawOverlay(dst, centerX, centerY, "GAME OVER", reason,
			fmt.Sprintf("Score: %d", g.eng.Score()), "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := core.Clamp(centerX-boxW/2, 0, max(0, dst.Width()-boxW))
	boxY := core.Clamp(centerY-boxH/2, 0, max(0, dst.Height()-boxH))
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := box.X + (boxW-utf8.RuneCountInString(line))/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter: Select | H: Hint | P: Pause | Q: Quit"
}
