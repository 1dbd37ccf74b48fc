package journal

import "strings"

// LevelFilter holds the per-level display toggles.
type LevelFilter struct {
	levels  []string
	enabled map[string]bool
}

// NewLevelFilter creates a filter over the filterable levels. Levels missing
// from enabled start switched on.
func NewLevelFilter(filterable []string, enabled map[string]bool) *LevelFilter {
	f := &LevelFilter{enabled: make(map[string]bool, len(filterable))}
	for _, level := range filterable {
		level = strings.ToUpper(strings.TrimSpace(level))
		if level == "" {
			continue
		}
		if _, dup := f.enabled[level]; dup {
			continue
		}
		on, ok := enabled[level]
		f.enabled[level] = !ok || on
		f.levels = append(f.levels, level)
	}
	return f
}

// Levels returns the filterable levels in display order.
func (f *LevelFilter) Levels() []string {
	out := make([]string, len(f.levels))
	copy(out, f.levels)
	return out
}

// Filterable reports whether level has a toggle.
func (f *LevelFilter) Filterable(level string) bool {
	_, ok := f.enabled[level]
	return ok
}

// Enabled reports whether level is switched on. Non-filterable levels are
// always on.
func (f *LevelFilter) Enabled(level string) bool {
	on, ok := f.enabled[level]
	return !ok || on
}

// Set switches a filterable level on or off. Unknown levels are ignored.
func (f *LevelFilter) Set(level string, on bool) {
	if _, ok := f.enabled[level]; ok {
		f.enabled[level] = on
	}
}

// Toggle flips a filterable level and returns its new value.
func (f *LevelFilter) Toggle(level string) bool {
	if _, ok := f.enabled[level]; !ok {
		return true
	}
	f.enabled[level] = !f.enabled[level]
	return f.enabled[level]
}

// SetAll switches every level on or off.
func (f *LevelFilter) SetAll(on bool) {
	for level := range f.enabled {
		f.enabled[level] = on
	}
}

// ActiveCount returns how many filterable levels are switched on.
func (f *LevelFilter) ActiveCount() int {
	n := 0
	for _, on := range f.enabled {
		if on {
			n++
		}
	}
	return n
}

// State returns a copy of the toggles, suitable for persisting.
func (f *LevelFilter) State() map[string]bool {
	out := make(map[string]bool, len(f.enabled))
	for level, on := range f.enabled {
		out[level] = on
	}
	return out
}

// Shows reports whether e is visible. Deleted entries are always shown so
// they can be undone.
func (f *LevelFilter) Shows(e Entry) bool {
	return e.State == StateDeleted || f.Enabled(e.Level)
}

// Visible returns the indices of the entries that should be displayed.
func (f *LevelFilter) Visible(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for i, e := range entries {
		if f.Shows(e) {
			out = append(out, i)
		}
	}
	return out
}
