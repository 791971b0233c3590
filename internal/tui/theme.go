package tui

import (
	huh "github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the huh theme shared by all interactive flows.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeCharm()

	purple := lipgloss.Color("#7D56F4")
	green := lipgloss.Color("#04B575")

	theme.Focused.Title = theme.Focused.Title.Foreground(purple).Bold(true)
	theme.Focused.SelectedOption = theme.Focused.SelectedOption.Foreground(green)
	theme.Focused.SelectSelector = theme.Focused.SelectSelector.Foreground(purple)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(purple)

	return theme
}
