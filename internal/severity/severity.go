// Package severity classifies raw log lines by their bracketed level tag.
package severity

import (
	"regexp"
	"strings"
)

// Standard level names.
const (
	Trace    = "TRACE"
	Debug    = "DEBUG"
	Info     = "INFO"
	Progress = "PROGRESS"
	Warning  = "WARNING"
	Error    = "ERROR"
	Fatal    = "FATAL"
	Thinking = "THINKING"
	Data     = "DATA"
	Audit    = "AUDIT"
	System   = "SYSTEM"
	Comment  = "COMMENT"
)

// Standard lists the built-in levels in display order.
var Standard = []string{Trace, Debug, Info, Progress, Warning, Error, Fatal, Thinking, Data, Audit, System, Comment}

// Classifier maps a line of output to a level name.
type Classifier struct {
	levels  []string
	pattern *regexp.Regexp
}

// NewClassifier builds a classifier for the standard levels plus any custom
// names. Custom names are uppercased; blanks and duplicates are skipped.
func NewClassifier(custom ...string) *Classifier {
	seen := make(map[string]bool, len(Standard)+len(custom))
	levels := make([]string, 0, len(Standard)+len(custom))
	add := func(name string) {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		levels = append(levels, name)
	}
	for _, name := range Standard {
		add(name)
	}
	for _, name := range custom {
		add(name)
	}

	quoted := make([]string, len(levels))
	for i, name := range levels {
		quoted[i] = regexp.QuoteMeta(name)
	}
	return &Classifier{
		levels:  levels,
		pattern: regexp.MustCompile(`(?i)\[(` + strings.Join(quoted, "|") + `)\]`),
	}
}

var defaultClassifier = NewClassifier()

// Classify uses the standard levels only.
func Classify(line string) string {
	return defaultClassifier.Classify(line)
}

// Classify returns the leftmost known bracketed level in line, uppercased,
// or INFO when none is present.
func (c *Classifier) Classify(line string) string {
	match := c.pattern.FindStringSubmatch(line)
	if match == nil {
		return Info
	}
	return strings.ToUpper(match[1])
}

// Levels returns every known level in display order.
func (c *Classifier) Levels() []string {
	out := make([]string, len(c.levels))
	copy(out, c.levels)
	return out
}

// Filterable returns the levels that get a display toggle. PROGRESS never
// reaches the journal, so it has none.
func (c *Classifier) Filterable() []string {
	out := make([]string, 0, len(c.levels))
	for _, name := range c.levels {
		if name == Progress {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Known reports whether level is a registered name.
func (c *Classifier) Known(level string) bool {
	level = strings.ToUpper(strings.TrimSpace(level))
	for _, name := range c.levels {
		if name == level {
			return true
		}
	}
	return false
}
