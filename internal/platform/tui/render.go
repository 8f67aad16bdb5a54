package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

// palette maps screen colors to ANSI 256 codes. Strikes and spares are drawn
// in the bright colors, misses and chrome in the dim ones.
var palette = [...]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns the screen buffer into styled terminal text, one
// escape sequence per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var out, run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		runColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				out.WriteString(styleFor(runColor).Render(run.String()))
				run.Reset()
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		out.WriteString(styleFor(runColor).Render(run.String()))
		run.Reset()
	}
	return out.String()
}
