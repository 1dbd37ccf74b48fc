// Package theme holds scribe's colour themes: a few built-ins plus any TOML
// theme files found in the themes directory.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI. Themes are data only.
type Theme struct {
	Name string `toml:"name"`

	// Base colors
	Background string `toml:"background"` // Outermost background
	Surface    string `toml:"surface"`    // Header, status bar, input
	SurfaceAlt string `toml:"surface_alt"`

	SelectionBg   string `toml:"selection_bg"`
	SelectionText string `toml:"selection_text"`
	Border        string `toml:"border"`

	// Text colors
	Text    string `toml:"text"`
	Muted   string `toml:"muted"`
	Faint   string `toml:"faint"`
	Accent  string `toml:"accent"`
	Success string `toml:"success"`
	Warning string `toml:"warning"`
	Danger  string `toml:"danger"`
	Info    string `toml:"info"`

	// Levels maps a log level to its foreground color.
	Levels map[string]string `toml:"levels"`
	// States maps an entry state (ADDED, MODIFIED, DELETED) to a background color.
	States map[string]string `toml:"states"`
}

// LevelColor returns the color for level, falling back to the text color.
func (t Theme) LevelColor(level string) string {
	if c := t.Levels[strings.ToUpper(strings.TrimSpace(level))]; c != "" {
		return c
	}
	return t.Text
}

// StateColor returns the background color for an entry state, or "" for none.
func (t Theme) StateColor(state string) string {
	return t.States[strings.ToUpper(strings.TrimSpace(state))]
}

// WithLevels returns a copy with extra level colors. Existing entries win.
func (t Theme) WithLevels(extra map[string]string) Theme {
	levels := make(map[string]string, len(t.Levels)+len(extra))
	for k, v := range extra {
		if v != "" {
			levels[strings.ToUpper(k)] = v
		}
	}
	for k, v := range t.Levels {
		levels[k] = v
	}
	t.Levels = levels
	return t
}

// fill copies any empty color from base.
func (t Theme) fill(base Theme) Theme {
	pick := func(v *string, fallback string) {
		if strings.TrimSpace(*v) == "" {
			*v = fallback
		}
	}
	pick(&t.Background, base.Background)
	pick(&t.Surface, base.Surface)
	pick(&t.SurfaceAlt, base.SurfaceAlt)
	pick(&t.SelectionBg, base.SelectionBg)
	pick(&t.SelectionText, base.SelectionText)
	pick(&t.Border, base.Border)
	pick(&t.Text, base.Text)
	pick(&t.Muted, base.Muted)
	pick(&t.Faint, base.Faint)
	pick(&t.Accent, base.Accent)
	pick(&t.Success, base.Success)
	pick(&t.Warning, base.Warning)
	pick(&t.Danger, base.Danger)
	pick(&t.Info, base.Info)
	t.Levels = mergeUpper(base.Levels, t.Levels)
	t.States = mergeUpper(base.States, t.States)
	return t
}

func mergeUpper(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if v = strings.TrimSpace(v); v != "" {
			out[strings.ToUpper(strings.TrimSpace(k))] = v
		}
	}
	return out
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		theme: t,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Panel    lipgloss.Style
	Selected lipgloss.Style

	theme Theme
}

// Entry returns the style for a log line of the given level and state.
// Deleted lines are struck through.
func (s Styles) Entry(level, state string) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.theme.LevelColor(level)))
	switch strings.ToUpper(level) {
	case "ERROR", "FATAL":
		style = style.Bold(true)
	}
	if bg := s.theme.StateColor(state); bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}
	if strings.EqualFold(state, "DELETED") {
		style = style.Strikethrough(true).Foreground(lipgloss.Color(s.theme.Faint))
	}
	return style
}

// Level returns a badge style for a level name, used by the filter panel.
func (s Styles) Level(level string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.theme.Background)).
		Background(lipgloss.Color(s.theme.LevelColor(level))).
		Padding(0, 1)
}
