package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/scribe/internal/theme"
)

// logState holds all log-view state. Positions index into visible, which
// holds journal indices.
type logState struct {
	visible  []int
	cursor   int
	follow   bool
	progress string

	// Search
	searchQuery    string
	searchRegex    *regexp.Regexp
	searchMatches  []int // positions in visible
	searchMatchIdx int
}

// selected returns the journal index under the cursor, or -1.
func (m Model) selected() int {
	if m.logState.cursor < 0 || m.logState.cursor >= len(m.logState.visible) {
		return -1
	}
	return m.logState.visible[m.logState.cursor]
}

// selectIndex moves the cursor to journal index idx if it is visible.
func (m *Model) selectIndex(idx int) {
	for pos, v := range m.logState.visible {
		if v == idx {
			m.logState.cursor = pos
			m.logState.follow = pos == len(m.logState.visible)-1
			return
		}
	}
}

// logHeight is the number of rows available to log lines: everything but the
// header, the box borders, the progress line, the command line and the
// status bar.
func (m Model) logHeight() int {
	return max(m.height-6, 1)
}

// refreshLog recomputes the visible entries and redraws the viewport.
func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	m.logState.visible = m.session.Visible()
	n := len(m.logState.visible)
	switch {
	case n == 0:
		m.logState.cursor = 0
	case m.logState.follow:
		m.logState.cursor = n - 1
	default:
		m.logState.cursor = min(max(m.logState.cursor, 0), n-1)
	}
	m.findSearchMatches()

	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(m.width-4, m.logHeight())
	}
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = m.logHeight()
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Background))
	m.logViewport.SetContent(m.renderLogContent())
	m.scrollToCursor()
}

// scrollToCursor keeps the cursor row inside the viewport.
func (m *Model) scrollToCursor() {
	if m.logState.follow {
		m.logViewport.GotoBottom()
		return
	}
	top := m.logViewport.YOffset
	height := m.logViewport.Height
	switch {
	case m.logState.cursor < top:
		m.logViewport.SetYOffset(m.logState.cursor)
	case m.logState.cursor >= top+height:
		m.logViewport.SetYOffset(m.logState.cursor - height + 1)
	}
}

// moveCursor moves the selection by delta rows.
func (m *Model) moveCursor(delta int) {
	n := len(m.logState.visible)
	if n == 0 {
		return
	}
	m.logState.cursor = min(max(m.logState.cursor+delta, 0), n-1)
	m.logState.follow = m.logState.cursor == n-1 && delta > 0
	m.logViewport.SetContent(m.renderLogContent())
	m.scrollToCursor()
}

// renderLogs renders the log box.
func (m Model) renderLogs() string {
	title := "Log"
	if path := m.session.LogPath(); path != "" {
		title = truncateMiddle(path, max(m.width-10, 10))
	}
	border := m.theme.Border
	if m.mode == inputNone && !m.showFilters {
		border = m.theme.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(max(m.width-2, 1)).
		Render(m.logViewport.View()) + "\n" + m.renderLogTitle(title)
}

func (m Model) renderLogTitle(title string) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)

	var parts []string
	parts = append(parts, bg.Render(title, styles.MutedText))
	parts = append(parts, bg.Render(fmt.Sprintf("%d/%d lines", len(m.logState.visible), m.session.Journal().Len()), styles.FaintText))
	if m.logState.follow {
		parts = append(parts, bg.Render("auto-tail on", styles.FaintText))
	} else {
		parts = append(parts, bg.Render("auto-tail off", styles.FaintText))
	}
	if status := m.searchStatus(styles, bg); status != "" {
		parts = append(parts, status)
	}
	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	return bg.FillLine(strings.Join(parts, sep), m.width)
}

// renderLogContent renders the visible entries, one per row.
func (m *Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles()
	width := max(m.logViewport.Width, 1)

	if len(m.logState.visible) == 0 {
		msg := "No log entries"
		if m.session.Journal().Len() > 0 {
			msg = "All entries hidden by level filters"
		}
		return bg.FillLine(bg.Render(msg, styles.MutedText), width)
	}

	matchSet := make(map[int]bool, len(m.logState.searchMatches))
	for _, pos := range m.logState.searchMatches {
		matchSet[pos] = true
	}
	activeMatch := -1
	if len(m.logState.searchMatches) > 0 && m.logState.searchMatchIdx < len(m.logState.searchMatches) {
		activeMatch = m.logState.searchMatches[m.logState.searchMatchIdx]
	}

	j := m.session.Journal()
	var b strings.Builder
	for pos, idx := range m.logState.visible {
		e, _ := j.Entry(idx)
		text := truncateRight(e.Message, width-7)
		gutter := fmt.Sprintf("%4d │ ", idx+1)

		var line string
		switch {
		case pos == m.logState.cursor:
			line = styles.Selected.Render(gutter + text)
		case pos == activeMatch:
			hl := lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.Warning)).
				Foreground(lipgloss.Color(m.theme.Background))
			line = hl.Render(gutter + text)
		case matchSet[pos]:
			line = bg.Render(gutter, styles.AccentText) + styles.Entry(e.Level, e.State.String()).Inherit(styles.AccentText).Render(text)
		default:
			line = bg.Render(gutter, styles.FaintText) + styles.Entry(e.Level, e.State.String()).Render(text)
		}
		b.WriteString(bg.FillLine(line, width))
		if pos < len(m.logState.visible)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// searchStatus renders the search summary, or "" when no search is active.
func (m Model) searchStatus(styles theme.Styles, bg BgStyle) string {
	if m.logState.searchRegex == nil {
		return ""
	}
	if len(m.logState.searchMatches) == 0 {
		return bg.Render("Pattern not found: "+m.logState.searchQuery, styles.DangerText)
	}
	return bg.Render("/"+m.logState.searchQuery, styles.AccentText) +
		bg.Space() +
		bg.Render(fmt.Sprintf("%d/%d", m.logState.searchMatchIdx+1, len(m.logState.searchMatches)), styles.WarningText)
}

// applySearch compiles query and jumps to the first match.
func (m *Model) applySearch(query string) error {
	if query == "" {
		m.clearLogSearch()
		return nil
	}
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return err
	}
	m.logState.searchRegex = re
	m.logState.searchQuery = query
	m.logState.searchMatchIdx = 0
	m.findSearchMatches()
	m.scrollToSearchMatch()
	return nil
}

// clearLogSearch clears the search state.
func (m *Model) clearLogSearch() {
	m.logState.searchRegex = nil
	m.logState.searchQuery = ""
	m.logState.searchMatches = nil
	m.logState.searchMatchIdx = 0
}

// findSearchMatches finds all visible rows matching the current search regex.
func (m *Model) findSearchMatches() {
	m.logState.searchMatches = nil
	if m.logState.searchRegex == nil {
		return
	}
	j := m.session.Journal()
	for pos, idx := range m.logState.visible {
		if e, ok := j.Entry(idx); ok && m.logState.searchRegex.MatchString(e.Message) {
			m.logState.searchMatches = append(m.logState.searchMatches, pos)
		}
	}
	if m.logState.searchMatchIdx >= len(m.logState.searchMatches) {
		m.logState.searchMatchIdx = 0
	}
}

// nextSearchMatch moves to the next search match.
func (m *Model) nextSearchMatch() {
	if len(m.logState.searchMatches) == 0 {
		return
	}
	m.logState.searchMatchIdx = (m.logState.searchMatchIdx + 1) % len(m.logState.searchMatches)
	m.scrollToSearchMatch()
}

// previousSearchMatch moves to the previous search match.
func (m *Model) previousSearchMatch() {
	if len(m.logState.searchMatches) == 0 {
		return
	}
	m.logState.searchMatchIdx = (m.logState.searchMatchIdx - 1 + len(m.logState.searchMatches)) % len(m.logState.searchMatches)
	m.scrollToSearchMatch()
}

// scrollToSearchMatch selects the current match and centers it.
func (m *Model) scrollToSearchMatch() {
	if len(m.logState.searchMatches) == 0 || m.logState.searchMatchIdx >= len(m.logState.searchMatches) {
		return
	}
	m.logState.cursor = m.logState.searchMatches[m.logState.searchMatchIdx]
	m.logState.follow = false
	m.logViewport.SetContent(m.renderLogContent())
	m.logViewport.SetYOffset(max(m.logState.cursor-m.logViewport.Height/2, 0))
}

func truncateRight(s string, width int) string {
	if width <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func truncateMiddle(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 5 {
		return s
	}
	half := (width - 1) / 2
	return string(r[:half]) + "…" + string(r[len(r)-(width-1-half):])
}
