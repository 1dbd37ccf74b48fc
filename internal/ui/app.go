package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/scribe/internal/prefs"
	"github.com/five82/scribe/internal/runner"
	"github.com/five82/scribe/internal/session"
	"github.com/five82/scribe/internal/theme"
)

const defaultDrainInterval = 50 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context       context.Context
	Session       *session.Session
	Themes        *theme.Registry
	LevelColors   map[string]string // custom level colors from config
	Prefs         prefs.Prefs
	PrefsPath     string
	DrainInterval time.Duration
	AutoStart     bool           // run Prefs.ScriptPath on startup
	Status        session.Status // initial status bar message
	Logger        *log.Logger
}

// inputMode says what the command line is collecting.
type inputMode int

const (
	inputNone    inputMode = iota
	inputCommand           // free text or /command
	inputEdit              // replacement text for the selected entry
	inputScript            // script path to run
	inputOpen              // log file to open
	inputSearch            // search pattern
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	session     *session.Session
	themes      *theme.Registry
	levelColors map[string]string
	prefs       prefs.Prefs
	prefsPath   string
	drainEvery  time.Duration
	autoStart   bool
	logger      *log.Logger
	keys        keyMap

	// UI state
	theme  theme.Theme
	width  int
	height int
	ready  bool

	// Drain loop
	draining bool

	// Log view
	logViewport viewport.Model
	logState    logState

	// Command line
	input     textinput.Model
	mode      inputMode
	editIndex int
	status    session.Status

	// Overlays
	showHelp     bool
	showFilters  bool
	filterCursor int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewRegistry(logger)
	}
	drainEvery := opts.DrainInterval
	if drainEvery <= 0 {
		drainEvery = defaultDrainInterval
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Options{Logger: logger})
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 4096

	m := Model{
		ctx:         ctx,
		session:     sess,
		themes:      themes,
		levelColors: opts.LevelColors,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		drainEvery:  drainEvery,
		autoStart:   opts.AutoStart,
		logger:      logger,
		keys:        DefaultKeyMap(),
		input:       ti,
		editIndex:   -1,
		status:      opts.Status,
		logState:    logState{follow: true},
	}
	m.applyTheme(opts.Prefs.Theme)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.autoStart && strings.TrimSpace(m.prefs.ScriptPath) != "" {
		cmds = append(cmds, func() tea.Msg { return startMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(m.width-4, 10)
		m.refreshLog()
		return m, nil

	case startMsg:
		return m.start()

	case drainTickMsg:
		return m.handleDrain()

	case processExitMsg:
		m.status = m.session.Finish(msg.result)
		m.refreshLog()
		return m, nil

	case ThemesChangedMsg:
		m.applyTheme(m.theme.Name)
		m.refreshLog()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showFilters {
		return m.renderFilters()
	}
	return m.renderMain()
}

// start runs the configured script.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.status = m.session.Start(m.ctx, m.prefs.ScriptPath)
	if m.status.Kind == session.KindError {
		return m, nil
	}
	m.logState.follow = true
	m.clearLogSearch()
	m.refreshLog()

	cmds := []tea.Cmd{waitExitCmd(m.session.Process())}
	if !m.draining {
		m.draining = true
		cmds = append(cmds, drainTickCmd(m.drainEvery))
	}
	return m, tea.Batch(cmds...)
}

// handleDrain moves queued output into the journal and reschedules itself
// while the process runs or lines remain.
func (m Model) handleDrain() (tea.Model, tea.Cmd) {
	res := m.session.Drain()
	if res.Appended > 0 || res.Progress != m.logState.progress {
		m.logState.progress = res.Progress
		m.refreshLog()
	}
	if n := len(res.Errors); n > 0 {
		m.status = session.Status{Message: "Session log write failed: " + res.Errors[n-1].Error(), Kind: session.KindWarning}
	}

	if m.session.Active() || m.session.Pending() {
		return m, drainTickCmd(m.drainEvery)
	}
	m.draining = false
	return m, nil
}

func (m *Model) applyTheme(name string) {
	if name == "" {
		name = theme.DefaultName
	}
	m.theme = m.themes.Get(name).WithLevels(m.levelColors)
}

func (m *Model) savePrefs() {
	m.prefs.Theme = m.theme.Name
	m.prefs.Filters = m.session.Filter().State()
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	b.WriteString(m.renderCommandLine())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// Messages

type startMsg struct{}

type drainTickMsg time.Time

type processExitMsg struct {
	result runner.Result
}

// ThemesChangedMsg tells the model to re-read its theme from the registry.
type ThemesChangedMsg struct{}

// Commands

func drainTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return drainTickMsg(t)
	})
}

func waitExitCmd(p *runner.Process) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		return processExitMsg{result: <-p.Done()}
	}
}

// NewProgram builds the Bubble Tea program for opts.
func NewProgram(opts Options) *tea.Program {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
}
