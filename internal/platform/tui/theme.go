package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// MenuTheme contains the visual styles of the mode selector.
type MenuTheme struct {
	Title       lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Value       lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
}

// DefaultMenuTheme returns the default visual theme.
func DefaultMenuTheme() MenuTheme {
	return MenuTheme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Value:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeMenuTheme returns a grayscale theme for terminals without color.
func MonochromeMenuTheme() MenuTheme {
	theme := DefaultMenuTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Reverse(true)
	theme.Value = lipgloss.NewStyle().Underline(true)
	return theme
}

// Global theme variable (can be changed at runtime)
var menuTheme = DefaultMenuTheme()

// SetMenuTheme sets the global theme.
func SetMenuTheme(theme MenuTheme) {
	menuTheme = theme
}
