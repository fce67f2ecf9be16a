package commands

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorSubtle  = lipgloss.Color("240")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("40")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	hintStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
)

// menuWidth is the width of the menu banner.
const menuWidth = 100

// center pads s on both sides with fill up to width cells. Extra padding goes right.
func center(s string, width int, fill rune) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	f := string(fill)
	return strings.Repeat(f, left) + s + strings.Repeat(f, pad-left)
}
