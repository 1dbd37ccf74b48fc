package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scribe/internal/session"
)

// renderHeader renders the top bar: mode, command, journal counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("scribe", styles.AccentText.Bold(true)),
		m.renderModeBadge(),
	}

	if cmd := m.session.Command(); cmd != "" {
		limit := 60
		if compact {
			limit = 30
		}
		parts = append(parts, bg.Render(truncateMiddle(cmd, limit), styles.Text))
	} else if path := m.session.LogPath(); path != "" && m.session.Mode() == session.ModeViewing {
		parts = append(parts, bg.Render(filepath.Base(path), styles.Text))
	}

	j := m.session.Journal()
	parts = append(parts,
		bg.Render("Lines:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", j.Len()), styles.Text))

	if !compact {
		parts = append(parts,
			bg.Render("Undo:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", j.UndoDepth()), styles.Text)+
				bg.Space()+bg.Render("•", styles.FaintText)+bg.Space()+
				bg.Render("Redo:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", j.RedoDepth()), styles.Text))
	}
	if j.Dirty() {
		parts = append(parts, bg.Render("● unsaved", styles.WarningText))
	}
	if f := m.session.Filter(); f.ActiveCount() < len(f.Levels()) {
		parts = append(parts, bg.Render(fmt.Sprintf("Filters: %d/%d", f.ActiveCount(), len(f.Levels())), styles.InfoText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

func (m Model) renderModeBadge() string {
	mode := m.session.Mode()
	color := m.theme.Muted
	switch mode {
	case session.ModeRunning:
		color = m.theme.Success
	case session.ModePaused:
		color = m.theme.Warning
	case session.ModeFinished:
		color = m.theme.Info
	case session.ModeViewing:
		color = m.theme.Accent
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(mode.String()))
}

// renderProgress renders the transient progress line, blank when idle.
func (m Model) renderProgress() string {
	bg := NewBgStyle(m.theme.Background)
	if m.logState.progress == "" {
		return bg.Spaces(m.width)
	}
	styles := m.theme.Styles()
	return bg.FillLine(bg.Render("⟳ "+truncateRight(m.logState.progress, m.width-3), styles.InfoText), m.width)
}

// renderCommandLine renders the text input when active, key hints otherwise.
func (m Model) renderCommandLine() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	if m.mode != inputNone {
		label := inputLabel(m.mode)
		return styles.Footer.Width(m.width).Render(bg.Render(label, styles.AccentText) + bg.Space() + m.input.View())
	}

	type hint struct{ key, desc string }
	hints := []hint{{"r", "Run"}}
	if m.session.Active() {
		pause := "Pause"
		if m.session.Mode() == session.ModePaused {
			pause = "Resume"
		}
		hints = []hint{{"p", pause}, {"x", "Kill"}}
	}
	if m.session.Editable() {
		hints = append(hints, hint{"i", "Add"}, hint{"e", "Edit"}, hint{"d", "Delete"}, hint{"u/U", "Undo/Redo"}, hint{"w", "Save"})
	}
	follow := "Follow"
	if m.logState.follow {
		follow = "Unfollow"
	}
	hints = append(hints, hint{":", "Command"}, hint{"/", "Search"}, hint{"Space", follow}, hint{"f", "Filters"}, hint{"?", "Help"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments, bg.Render(h.key, styles.AccentText)+colon+bg.Render(h.desc, styles.MutedText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))
	return styles.Footer.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

func inputLabel(mode inputMode) string {
	switch mode {
	case inputEdit:
		return "Edit"
	case inputScript:
		return "Script"
	case inputOpen:
		return "Open"
	case inputSearch:
		return "Search"
	default:
		return "Log"
	}
}

// renderStatusBar renders the last status message.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	if m.status.Message == "" {
		return bg.Spaces(m.width)
	}
	style := styles.MutedText
	switch m.status.Kind {
	case session.KindSuccess:
		style = styles.SuccessText
	case session.KindWarning:
		style = styles.WarningText
	case session.KindError:
		style = styles.DangerText
	}
	return bg.FillLine(bg.Render(truncateRight(m.status.Message, m.width), style), m.width)
}
