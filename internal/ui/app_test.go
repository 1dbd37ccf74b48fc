package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/scribe/internal/prefs"
	"github.com/five82/scribe/internal/runner"
	"github.com/five82/scribe/internal/session"
	"github.com/five82/scribe/internal/severity"
)

func newTestModel(t *testing.T, lines ...string) Model {
	t.Helper()
	dir := t.TempDir()
	sess := session.New(session.Options{
		LogDir:     filepath.Join(dir, "logs"),
		DataDir:    filepath.Join(dir, "data"),
		Classifier: severity.NewClassifier(),
		Now:        func() time.Time { return time.Date(2025, 10, 8, 21, 1, 5, 0, time.UTC) },
	})
	for _, line := range lines {
		if err := sess.Journal().Append(line, sess.Classifier().Classify(line)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	m := New(Options{
		Session:   sess,
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(dir, "prefs.toml"),
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

// press feeds keys to the model. Named keys are "enter", "esc" and "space";
// anything else is typed as runes.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestViewBeforeResize(t *testing.T) {
	m := New(Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestAddCommentAndUndo(t *testing.T) {
	m := newTestModel(t, "[INFO] one")

	m = press(m, "i", "hello world", "enter")

	j := m.session.Journal()
	if j.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", j.Len())
	}
	e, _ := j.Entry(1)
	if e.Message != "[21:01:05] [COMMENT] hello world" {
		t.Fatalf("added message = %q", e.Message)
	}
	if m.status.Kind != session.KindSuccess {
		t.Fatalf("status = %+v, want success", m.status)
	}
	if m.selected() != 1 {
		t.Fatalf("selected() = %d, want 1", m.selected())
	}
	if m.mode != inputNone {
		t.Fatalf("input mode still open")
	}

	m = press(m, "u")
	if j.Len() != 1 {
		t.Fatalf("after undo Len() = %d, want 1", j.Len())
	}
	if !strings.HasPrefix(m.status.Message, "Undid") {
		t.Fatalf("status = %q, want Undid...", m.status.Message)
	}

	m = press(m, "U")
	if j.Len() != 2 {
		t.Fatalf("after redo Len() = %d, want 2", j.Len())
	}
}

func TestSlashCommandFromCommandLine(t *testing.T) {
	m := newTestModel(t, "[INFO] one")

	m = press(m, ":", "add error broken", "enter")

	e, ok := m.session.Journal().Entry(1)
	if !ok || e.Level != severity.Error {
		t.Fatalf("entry = %+v, want ERROR entry", e)
	}

	m = press(m, ":", "bogus", "enter")
	if m.status.Message != "Unknown command: /bogus" {
		t.Fatalf("status = %q", m.status.Message)
	}
}

func TestEditSelectedEntry(t *testing.T) {
	m := newTestModel(t, "[21:00:00] [INFO] one", "[21:00:00] [WARNING] two")

	m = press(m, "e")
	if m.mode != inputEdit {
		t.Fatalf("mode = %v, want edit", m.mode)
	}
	if got := m.input.Value(); got != "two" {
		t.Fatalf("prefill = %q, want two", got)
	}
	m = press(m, " more", "enter")

	e, _ := m.session.Journal().Entry(1)
	if e.Message != "[21:01:05] [WARNING] two more" {
		t.Fatalf("edited message = %q", e.Message)
	}
}

func TestEscCancelsInput(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "i", "draft", "esc")
	if m.mode != inputNone {
		t.Fatalf("mode = %v, want none", m.mode)
	}
	if m.session.Journal().Len() != 0 {
		t.Fatalf("cancelled input added an entry")
	}
}

func TestDeleteAndNavigation(t *testing.T) {
	m := newTestModel(t, "[INFO] one", "[INFO] two", "[INFO] three")

	m = press(m, "g")
	if m.selected() != 0 {
		t.Fatalf("selected() after top = %d", m.selected())
	}
	m = press(m, "j", "d")
	e, _ := m.session.Journal().Entry(1)
	if !strings.HasPrefix(e.Message, "DELETED: ") {
		t.Fatalf("message = %q, want deleted prefix", e.Message)
	}
	m = press(m, "G")
	if m.selected() != 2 || !m.logState.follow {
		t.Fatalf("bottom: selected=%d follow=%v", m.selected(), m.logState.follow)
	}
}

func TestFilterPanelTogglesLevel(t *testing.T) {
	m := newTestModel(t, "[INFO] one", "[ERROR] two")
	levels := m.session.Filter().Levels()

	m = press(m, "f")
	if !m.showFilters {
		t.Fatal("filter panel not shown")
	}
	if !strings.Contains(m.View(), "Level Filters") {
		t.Fatal("filter panel not rendered")
	}

	m = press(m, "space", "esc")
	if m.showFilters {
		t.Fatal("filter panel still open")
	}
	if m.session.Filter().Enabled(levels[0]) {
		t.Fatalf("%s still enabled", levels[0])
	}

	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("Load prefs: %v", err)
	}
	if on, ok := saved.Filters[levels[0]]; !ok || on {
		t.Fatalf("saved filters = %v", saved.Filters)
	}
}

func TestFilterPanelAllNone(t *testing.T) {
	m := newTestModel(t, "[INFO] one")
	m = press(m, "f", "n")
	if got := m.session.Filter().ActiveCount(); got != 0 {
		t.Fatalf("ActiveCount() = %d after none", got)
	}
	m = press(m, "a", "f")
	if got := m.session.Filter().ActiveCount(); got != len(m.session.Filter().Levels()) {
		t.Fatalf("ActiveCount() = %d after all", got)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help not rendered")
	}
	m = press(m, "x")
	if m.showHelp {
		t.Fatal("help still open")
	}
}

func TestSearchFindsMatches(t *testing.T) {
	m := newTestModel(t, "[INFO] alpha", "[INFO] beta", "[INFO] alphabet")

	m = press(m, "/", "ALPHA", "enter")
	if got := len(m.logState.searchMatches); got != 2 {
		t.Fatalf("matches = %d, want 2", got)
	}
	if m.selected() != 0 {
		t.Fatalf("selected() = %d, want 0", m.selected())
	}
	m = press(m, "n")
	if m.selected() != 2 {
		t.Fatalf("after n selected() = %d, want 2", m.selected())
	}
	m = press(m, "N")
	if m.selected() != 0 {
		t.Fatalf("after N selected() = %d, want 0", m.selected())
	}

	m = press(m, "esc")
	if m.logState.searchRegex != nil {
		t.Fatal("search not cleared")
	}
}

func TestInvalidSearchPattern(t *testing.T) {
	m := newTestModel(t, "[INFO] alpha")
	m = press(m, "/", "(", "enter")
	if m.status.Kind != session.KindWarning || !strings.HasPrefix(m.status.Message, "Invalid pattern") {
		t.Fatalf("status = %+v", m.status)
	}
}

func TestRunMissingScript(t *testing.T) {
	m := newTestModel(t)
	script := filepath.Join(t.TempDir(), "missing.py")

	m = press(m, "r")
	if m.mode != inputScript {
		t.Fatalf("mode = %v, want script", m.mode)
	}
	m.input.SetValue(script)
	m = press(m, "enter")

	if m.status.Kind != session.KindError {
		t.Fatalf("status = %+v, want error", m.status)
	}
	if m.prefs.ScriptPath != script {
		t.Fatalf("ScriptPath = %q", m.prefs.ScriptPath)
	}
	if m.session.Active() {
		t.Fatal("session active after failed start")
	}
}

func TestOpenFile(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "saved.log")
	if err := os.WriteFile(path, []byte("[INFO] a\n[PROGRESS] 1%\n[PROGRESS] 2%\n[ERROR] b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m = press(m, "o")
	m.input.SetValue(path)
	m = press(m, "enter")

	if m.session.Mode() != session.ModeViewing {
		t.Fatalf("mode = %v, want viewing; status %q", m.session.Mode(), m.status.Message)
	}
	if got := m.session.Journal().Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	if !strings.Contains(m.View(), "VIEWING") {
		t.Fatal("header does not show viewing mode")
	}
}

func TestProcessExitFinishesSession(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(processExitMsg{result: runner.Result{ExitCode: 0}})
	m = updated.(Model)
	if m.status.Message != "Process finished." {
		t.Fatalf("status = %q", m.status.Message)
	}
	if m.session.Mode() != session.ModeFinished {
		t.Fatalf("mode = %v", m.session.Mode())
	}
}

func TestDrainStopsWhenIdle(t *testing.T) {
	m := newTestModel(t)
	m.draining = true
	updated, cmd := m.Update(drainTickMsg(time.Now()))
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("idle drain rescheduled itself")
	}
	if m.draining {
		t.Fatal("draining still set")
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t)
	before := m.theme.Name
	m = press(m, "T")
	if m.theme.Name == before {
		t.Fatalf("theme unchanged: %s", before)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Theme != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", saved.Theme, m.theme.Name)
	}
}

func TestViewRendersAtSmallSizes(t *testing.T) {
	m := newTestModel(t, "[INFO] one", "[PROGRESS] 5%")
	for _, size := range []tea.WindowSizeMsg{{Width: 20, Height: 5}, {Width: 80, Height: 24}, {Width: 1, Height: 1}} {
		updated, _ := m.Update(size)
		if updated.(Model).View() == "" {
			t.Fatalf("empty view at %dx%d", size.Width, size.Height)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncateRight("abcdef", 4); got != "abc…" {
		t.Fatalf("truncateRight = %q", got)
	}
	if got := truncateRight("abc", 10); got != "abc" {
		t.Fatalf("truncateRight = %q", got)
	}
	if got := truncateMiddle("/very/long/path/file.log", 11); len([]rune(got)) != 11 {
		t.Fatalf("truncateMiddle = %q", got)
	}
}
