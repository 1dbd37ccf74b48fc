package journal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/five82/scribe/internal/severity"
)

var (
	// ErrEmptyContent is returned when add or edit content is blank.
	ErrEmptyContent = errors.New("content is empty")
	// ErrNoEntry is returned when an index does not name an existing entry.
	ErrNoEntry = errors.New("entry no longer exists")
)

const (
	nothingToUndo = "Nothing to undo."
	nothingToRedo = "Nothing to redo."
)

// Sink mirrors appended lines somewhere durable, typically the session log file.
type Sink interface {
	WriteLine(line string) error
}

// Outcome describes the result of an undo or redo.
type Outcome struct {
	Applied bool
	Message string
}

// Journal is the ordered entry list plus its undo and redo stacks.
type Journal struct {
	entries []Entry
	undo    []Action
	redo    []Action
	sink    Sink
	now     func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) {
		if now != nil {
			j.now = now
		}
	}
}

// New returns an empty journal.
func New(opts ...Option) *Journal {
	j := &Journal{now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// SetSink attaches the mirror for appended lines. Nil detaches it.
func (j *Journal) SetSink(s Sink) {
	j.sink = s
}

// Len returns the number of entries, deleted ones included.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Entry returns the entry at index i.
func (j *Journal) Entry(i int) (Entry, bool) {
	if !j.valid(i) {
		return Entry{}, false
	}
	return j.entries[i], true
}

// Entries returns a copy of all entries.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// UndoDepth returns the number of actions that can be undone.
func (j *Journal) UndoDepth() int {
	return len(j.undo)
}

// RedoDepth returns the number of actions that can be redone.
func (j *Journal) RedoDepth() int {
	return len(j.redo)
}

// Dirty reports whether there are unsaved operator changes.
func (j *Journal) Dirty() bool {
	return len(j.undo) > 0
}

// Append adds a SAVED entry at the end and mirrors it to the sink. A sink
// error is returned for reporting; the entry is kept either way.
func (j *Journal) Append(message, level string) error {
	j.entries = append(j.entries, Entry{Message: message, Level: level, State: StateSaved})
	if j.sink == nil {
		return nil
	}
	if err := j.sink.WriteLine(message); err != nil {
		return fmt.Errorf("mirror log line: %w", err)
	}
	return nil
}

// Add inserts an operator-authored entry after index after, or at the end
// when after is negative or past the last entry. It returns the new index.
func (j *Journal) Add(content, level string, after int) (int, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return -1, ErrEmptyContent
	}
	level = normalizeLevel(level, severity.Comment)

	pos := len(j.entries)
	if after >= 0 && after < len(j.entries) {
		pos = after + 1
	}
	entry := Entry{
		Message: FormatMessage(j.now(), level, content),
		Level:   level,
		State:   StateAdded,
	}
	j.insert(pos, entry)
	j.record(Action{Type: ActionAdd, Line: pos, Entry: entry})
	return pos, nil
}

// Edit replaces the content of the entry at index. An empty level keeps the
// entry's current level.
func (j *Journal) Edit(index int, content, level string) error {
	if !j.valid(index) {
		return fmt.Errorf("edit line %d: %w", index+1, ErrNoEntry)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	original := j.entries[index]
	level = normalizeLevel(level, original.Level)

	j.entries[index] = Entry{
		Message: FormatMessage(j.now(), level, content),
		Level:   level,
		State:   StateModified,
	}
	j.record(Action{Type: ActionEdit, Line: index, Entry: original})
	return nil
}

// Delete soft-deletes the entry at index.
func (j *Journal) Delete(index int) error {
	if !j.valid(index) {
		return fmt.Errorf("delete line %d: %w", index+1, ErrNoEntry)
	}
	original := j.entries[index]

	current := &j.entries[index]
	current.State = StateDeleted
	if !strings.HasPrefix(current.Message, DeletedPrefix) {
		current.Message = DeletedPrefix + current.Message
	}
	j.record(Action{Type: ActionDelete, Line: index, Entry: original})
	return nil
}

// Undo reverses the most recent action.
func (j *Journal) Undo() Outcome {
	if len(j.undo) == 0 {
		return Outcome{Message: nothingToUndo}
	}
	action := j.undo[len(j.undo)-1]
	j.undo = j.undo[:len(j.undo)-1]
	line := action.Line

	switch action.Type {
	case ActionAdd:
		if !j.valid(line) {
			return missingLine("Undo", line)
		}
		j.remove(line)
		j.redo = append(j.redo, action)
		return applied("Undid: Add log at line %d", line)
	case ActionDelete:
		if !j.valid(line) {
			return missingLine("Undo", line)
		}
		j.entries[line].State = action.Entry.State
		j.entries[line].Message = action.Entry.Message
		j.redo = append(j.redo, action)
		return applied("Undid: Delete log at line %d", line)
	default:
		if !j.valid(line) {
			return missingLine("Undo", line)
		}
		current := j.entries[line]
		j.entries[line] = action.Entry
		j.redo = append(j.redo, Action{Type: ActionEdit, Line: line, Entry: current})
		return applied("Undid: Edit log at line %d", line)
	}
}

// Redo re-applies the most recently undone action.
func (j *Journal) Redo() Outcome {
	if len(j.redo) == 0 {
		return Outcome{Message: nothingToRedo}
	}
	action := j.redo[len(j.redo)-1]
	j.redo = j.redo[:len(j.redo)-1]
	line := action.Line

	switch action.Type {
	case ActionAdd:
		if line < 0 || line > len(j.entries) {
			return missingLine("Redo", line)
		}
		j.insert(line, action.Entry)
		j.undo = append(j.undo, action)
		return applied("Redid: Add log at line %d", line)
	case ActionDelete:
		if !j.valid(line) {
			return missingLine("Redo", line)
		}
		j.entries[line].State = StateDeleted
		j.entries[line].Message = DeletedPrefix + strings.TrimPrefix(action.Entry.Message, DeletedPrefix)
		j.undo = append(j.undo, action)
		return applied("Redid: Delete log at line %d", line)
	default:
		if !j.valid(line) {
			return missingLine("Redo", line)
		}
		current := j.entries[line]
		j.entries[line] = action.Entry
		j.undo = append(j.undo, Action{Type: ActionEdit, Line: line, Entry: current})
		return applied("Redid: Edit log at line %d", line)
	}
}

// UndoN undoes up to n actions, stopping early when the stack runs dry.
func (j *Journal) UndoN(n int) Outcome {
	return repeat(n, j.UndoDepth, j.Undo, nothingToUndo, "Undid")
}

// RedoN redoes up to n actions, stopping early when the stack runs dry.
func (j *Journal) RedoN(n int) Outcome {
	return repeat(n, j.RedoDepth, j.Redo, nothingToRedo, "Redid")
}

func repeat(n int, depth func() int, step func() Outcome, empty, verb string) Outcome {
	if n < 1 {
		n = 1
	}
	result := Outcome{Message: empty}
	steps := 0
	for ; steps < n && depth() > 0; steps++ {
		out := step()
		result.Message = out.Message
		result.Applied = result.Applied || out.Applied
	}
	if steps > 1 && result.Applied {
		result.Message = fmt.Sprintf("%s %d actions.", verb, steps)
	}
	return result
}

// ClearHistory drops both stacks.
func (j *Journal) ClearHistory() {
	j.undo = nil
	j.redo = nil
}

// Reset replaces the entries and clears the history.
func (j *Journal) Reset(entries []Entry) {
	j.entries = make([]Entry, len(entries))
	copy(j.entries, entries)
	j.ClearHistory()
}

// Compact physically drops DELETED entries, marks the rest SAVED and clears
// the history. It returns the number of entries dropped.
func (j *Journal) Compact() int {
	kept := make([]Entry, 0, len(j.entries))
	for _, e := range j.entries {
		if e.State == StateDeleted {
			continue
		}
		e.Message = strings.TrimPrefix(e.Message, DeletedPrefix)
		e.State = StateSaved
		kept = append(kept, e)
	}
	dropped := len(j.entries) - len(kept)
	j.entries = kept
	j.ClearHistory()
	return dropped
}

// Save compacts the journal and writes one message per line to path.
// The in-memory compaction stands even when the write fails.
func (j *Journal) Save(path string) error {
	j.Compact()

	var b strings.Builder
	for _, e := range j.entries {
		b.WriteString(e.Message)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func (j *Journal) record(a Action) {
	j.undo = append(j.undo, a)
	j.redo = nil
}

func (j *Journal) valid(i int) bool {
	return i >= 0 && i < len(j.entries)
}

func (j *Journal) insert(pos int, e Entry) {
	j.entries = append(j.entries, Entry{})
	copy(j.entries[pos+1:], j.entries[pos:])
	j.entries[pos] = e
}

func (j *Journal) remove(pos int) {
	j.entries = append(j.entries[:pos], j.entries[pos+1:]...)
}

func normalizeLevel(level, fallback string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return fallback
	}
	return level
}

func applied(format string, line int) Outcome {
	return Outcome{Applied: true, Message: fmt.Sprintf(format, line+1)}
}

func missingLine(op string, line int) Outcome {
	return Outcome{Message: fmt.Sprintf("%s failed: line %d no longer exists.", op, line+1)}
}
