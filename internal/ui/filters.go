package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleFilterKey handles keys while the level filter panel is open.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.session.Filter()
	levels := f.Levels()

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Filters):
		m.showFilters = false
		m.savePrefs()
		m.refreshLog()
	case key.Matches(msg, m.keys.Up):
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.filterCursor < len(levels)-1 {
			m.filterCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.filterCursor < len(levels) {
			f.Toggle(levels[m.filterCursor])
		}
	case msg.String() == "a":
		f.SetAll(true)
	case msg.String() == "n":
		f.SetAll(false)
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	}
	return m, nil
}

// renderFilters renders the level filter panel.
func (m Model) renderFilters() string {
	styles := m.theme.Styles()
	f := m.session.Filter()
	levels := f.Levels()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Level Filters"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d of %d shown", f.ActiveCount(), len(levels))))
	b.WriteString("\n\n")

	for i, level := range levels {
		mark := styles.FaintText.Render("[ ]")
		if f.Enabled(level) {
			mark = styles.SuccessText.Render("[x]")
		}
		pointer := "  "
		if i == m.filterCursor {
			pointer = styles.AccentText.Render("> ")
		}
		b.WriteString(pointer + mark + " " + styles.Level(level).Render(level))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("space toggle • a all • n none • esc close"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		panel.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
