package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/scribe/internal/session"
	"github.com/five82/scribe/internal/severity"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showFilters {
		return m.handleFilterKey(msg)
	}
	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Filters):
		m.showFilters = true
		m.filterCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(m.themes.Next(m.theme.Name))
		m.savePrefs()
		m.refreshLog()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.logState.searchRegex != nil {
			m.clearLogSearch()
			m.refreshLog()
		}
		return m, nil

	// Process
	case key.Matches(msg, m.keys.Run):
		if m.session.Active() {
			m.status = session.Status{Message: "A process is already running.", Kind: session.KindWarning}
			return m, nil
		}
		return m.openInput(inputScript, m.prefs.ScriptPath)

	case key.Matches(msg, m.keys.Kill):
		m.status = m.session.Kill()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.status = m.session.TogglePause()
		m.refreshLog()
		return m, nil

	// Editing
	case key.Matches(msg, m.keys.Input):
		if !m.session.Editable() {
			return m.locked()
		}
		return m.openInput(inputCommand, "")

	case key.Matches(msg, m.keys.Command):
		return m.openInput(inputCommand, "/")

	case key.Matches(msg, m.keys.Edit):
		if !m.session.Editable() {
			return m.locked()
		}
		idx := m.selected()
		text, ok := m.session.EditText(idx)
		if !ok {
			m.status = session.Status{Message: "Select a log line first.", Kind: session.KindWarning}
			return m, nil
		}
		m.editIndex = idx
		return m.openInput(inputEdit, text)

	case key.Matches(msg, m.keys.Delete):
		m.status = m.session.Delete(m.selected())
		m.refreshLog()
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		m.status = m.session.Undo(1)
		m.refreshLog()
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		m.status = m.session.Redo(1)
		m.refreshLog()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.status = m.session.Save()
		m.refreshLog()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.openInput(inputOpen, m.prefs.LogDir)

	// Navigation
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.logViewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.logViewport.Height)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveCursor(-m.logViewport.Height / 2)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveCursor(m.logViewport.Height / 2)
	case key.Matches(msg, m.keys.Top):
		m.logState.follow = false
		m.moveCursor(-len(m.logState.visible))
	case key.Matches(msg, m.keys.Bottom):
		m.logState.follow = true
		m.refreshLog()
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		m.refreshLog()

	// Search
	case key.Matches(msg, m.keys.Search):
		return m.openInput(inputSearch, m.logState.searchQuery)
	case key.Matches(msg, m.keys.NextMatch):
		m.nextSearchMatch()
	case key.Matches(msg, m.keys.PrevMatch):
		m.previousSearchMatch()
	}

	return m, nil
}

// handleInputKey routes keys to the text input until enter or esc.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		mode := m.mode
		m.closeInput()
		return m.submitInput(mode, value)
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput applies what the operator typed.
func (m Model) submitInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case inputCommand:
		st, idx := m.session.Submit(value, m.selected())
		if st.Message != "" {
			m.status = st
		}
		m.logState.follow = false
		m.refreshLog()
		if idx >= 0 {
			m.selectIndex(idx)
			m.refreshLog()
		}

	case inputEdit:
		m.status = m.session.Edit(m.editIndex, value)
		m.editIndex = -1
		m.refreshLog()

	case inputScript:
		script := strings.TrimSpace(value)
		if script == "" {
			return m, nil
		}
		m.prefs.ScriptPath = script
		m.savePrefs()
		return m.start()

	case inputOpen:
		m.status = m.session.Open(strings.TrimSpace(value))
		if m.status.Kind == session.KindSuccess {
			m.logState.follow = false
			m.logState.cursor = 0
			m.logState.progress = ""
			m.clearLogSearch()
		}
		m.refreshLog()

	case inputSearch:
		if err := m.applySearch(strings.TrimSpace(value)); err != nil {
			m.status = session.Status{Message: "Invalid pattern: " + err.Error(), Kind: session.KindWarning}
		}
		m.refreshLog()
		m.scrollToSearchMatch()
	}
	return m, nil
}

func (m Model) openInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Placeholder = inputPlaceholder(mode)
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m Model) locked() (tea.Model, tea.Cmd) {
	m.status = session.Status{Message: "Pause the process to edit logs.", Kind: session.KindWarning}
	return m, nil
}

// quit stops a running process and saves preferences before exiting.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.session.Active() {
		m.session.Kill()
	}
	m.savePrefs()
	return m, tea.Quit
}

func inputPlaceholder(mode inputMode) string {
	switch mode {
	case inputEdit:
		return "new text"
	case inputScript:
		return "path/to/script.py [args]"
	case inputOpen:
		return "path/to/file.log"
	case inputSearch:
		return "regex"
	default:
		return "comment, or /add " + severity.Warning + " text"
	}
}
