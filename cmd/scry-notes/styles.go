package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/phrazzld/scry-notes/internal/domain"
)

var (
	darkBlue  = lipgloss.Color("#101F38")
	limeGreen = lipgloss.Color("#8BC34A")
	lightGrey = lipgloss.Color("#d6dae0")
	darkGrey  = lipgloss.Color("#2a3850")
)

// styles follow the saved dark mode preference. Colors only appear when
// the output is a terminal.
type styles struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	muted    lipgloss.Style
	card     lipgloss.Style
	border   lipgloss.Color
}

func newStyles(w io.Writer, prefs domain.UIPreferences) styles {
	r := lipgloss.NewRenderer(w)

	primary, muted := darkBlue, lightGrey
	if prefs.DarkMode {
		primary, muted = limeGreen, darkGrey
	}

	return styles{
		renderer: r,
		title:    r.NewStyle().Bold(true).Foreground(primary),
		muted:    r.NewStyle().Foreground(muted),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(60),
		border: muted,
	}
}

// table renders rows under headers.
func (s styles) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.renderer.NewStyle().Foreground(s.border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.title.Padding(0, 1)
			}
			return s.renderer.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
