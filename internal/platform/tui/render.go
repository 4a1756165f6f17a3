package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// ansiCodes holds the 256-color code of each core.Color. Empty means the
// terminal default.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// palette holds one style per core.Color. A nil palette renders plain runes.
type palette []lipgloss.Style

func newPalette() palette {
	p := make(palette, len(ansiCodes))
	for c, code := range ansiCodes {
		p[c] = lipgloss.NewStyle()
		if code != "" {
			p[c] = p[c].Foreground(lipgloss.Color(code))
		}
	}
	return p
}

func (p palette) render(c core.Color, text string) string {
	if p == nil || int(c) >= len(p) {
		return text
	}
	return p[c].Render(text)
}

var screenPalette = newPalette()

// SetColorEnabled switches game screens between colored and plain output.
func SetColorEnabled(enabled bool) {
	if enabled {
		screenPalette = newPalette()
	} else {
		screenPalette = nil
	}
}

// RenderScreen converts a Screen buffer to a styled string. Runs of cells
// sharing a color are styled together to keep escape sequences short.
func RenderScreen(s *core.Screen) string {
	return renderWith(screenPalette, s)
}

func renderWith(p palette, s *core.Screen) string {
	if p == nil {
		return s.String()
	}

	var out, run strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			out.WriteString(p.render(color, run.String()))
		}
	}
	return out.String()
}
