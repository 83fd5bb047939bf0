package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/window"
)

// runeClass groups screen runes that share a style.
type runeClass int

const (
	classPlain runeClass = iota
	classBorder
	classSolid
	classBall
)

// classStyles maps rune classes to lipgloss styles.
var classStyles = map[runeClass]lipgloss.Style{
	classPlain:  lipgloss.NewStyle(),
	classBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	classSolid:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	classBall:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func classify(r rune) runeClass {
	switch r {
	case window.BorderVertical, window.BorderHorizontal, '+':
		return classBorder
	case '█', '│':
		return classSolid
	case '●':
		return classBall
	}
	return classPlain
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells of the same class to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			class := classify(s.Get(x, y))

			var run strings.Builder
			for x < s.Width() {
				r := s.Get(x, y)
				if classify(r) != class {
					break
				}
				run.WriteRune(r)
				x++
			}

			sb.WriteString(classStyles[class].Render(run.String()))
		}
	}
	return sb.String()
}

// renderStatus builds the one-line status bar shown under the playfield.
func renderStatus(title string, state core.GameState, players int, width int) string {
	mode := "vs CPU"
	if players >= 2 {
		mode = "2 players"
	}

	status := "playing"
	switch {
	case state.GameOver:
		status = "game over - r to restart"
	case state.Paused:
		status = "paused"
	}

	line := statusStyle.Render(title + " · " + mode + " · " + status)
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, line)
}
