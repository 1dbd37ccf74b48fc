package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/scribe/internal/journal"
	"github.com/five82/scribe/internal/severity"
)

const editLocked = "Pause the process to edit logs."

// Add inserts an operator entry after selected. It returns the status and the
// index of the new entry, or -1.
func (s *Session) Add(content, level string, selected int) (Status, int) {
	if !s.Editable() {
		return warning(editLocked), -1
	}
	idx, err := s.journal.Add(content, level, selected)
	if err != nil {
		return editError("add", err), -1
	}
	return success(fmt.Sprintf("Added log at line %d.", idx+1)), idx
}

// Edit replaces the content of the entry at index, keeping its level.
func (s *Session) Edit(index int, content string) Status {
	if !s.Editable() {
		return warning(editLocked)
	}
	if err := s.journal.Edit(index, content, ""); err != nil {
		return editError("edit", err)
	}
	return success(fmt.Sprintf("Edited log at line %d.", index+1))
}

// Delete soft-deletes the entry at index.
func (s *Session) Delete(index int) Status {
	if !s.Editable() {
		return warning(editLocked)
	}
	if err := s.journal.Delete(index); err != nil {
		return editError("delete", err)
	}
	return success(fmt.Sprintf("Deleted log at line %d.", index+1))
}

// Undo reverses up to n actions.
func (s *Session) Undo(n int) Status {
	if !s.Editable() {
		return warning(editLocked)
	}
	return outcome(s.journal.UndoN(n))
}

// Redo re-applies up to n undone actions.
func (s *Session) Redo(n int) Status {
	if !s.Editable() {
		return warning(editLocked)
	}
	return outcome(s.journal.RedoN(n))
}

// EditText returns the body of the entry at index without its timestamp and
// level tag, for pre-filling an edit.
func (s *Session) EditText(index int) (string, bool) {
	e, ok := s.journal.Entry(index)
	if !ok {
		return "", false
	}
	return journal.StripPrefix(strings.TrimPrefix(e.Message, journal.DeletedPrefix)), true
}

// Submit handles a line typed into the command input. Plain text becomes a
// COMMENT after the selected entry; text starting with "/" is a command.
// The returned index is the entry to select afterwards, or -1.
func (s *Session) Submit(text string, selected int) (Status, int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Status{}, -1
	}
	if !strings.HasPrefix(text, "/") {
		return s.Add(text, severity.Comment, selected)
	}

	name, rest, _ := strings.Cut(text[1:], " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(name) {
	case "add":
		level, content, _ := strings.Cut(rest, " ")
		content = strings.TrimSpace(content)
		if level == "" || content == "" {
			return warning("Usage: /add TYPE content"), -1
		}
		level = strings.ToUpper(level)
		if !s.classifier.Known(level) {
			return warning(fmt.Sprintf("Unknown log type %q.", level)), -1
		}
		return s.Add(content, level, selected)
	case "edit":
		if rest == "" {
			return warning("Usage: /edit content"), -1
		}
		return s.Edit(selected, rest), selected
	case "delete":
		return s.Delete(selected), selected
	case "undo":
		n, err := count(rest)
		if err != nil {
			return warning("Usage: /undo [n]"), -1
		}
		return s.Undo(n), -1
	case "redo":
		n, err := count(rest)
		if err != nil {
			return warning("Usage: /redo [n]"), -1
		}
		return s.Redo(n), -1
	case "save":
		return s.Save(), -1
	case "open":
		return s.Open(rest), -1
	case "close":
		return s.Close(), -1
	default:
		return failure(fmt.Sprintf("Unknown command: /%s", name)), -1
	}
}

func count(arg string) (int, error) {
	if arg == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, errors.New("invalid count")
	}
	return n, nil
}

func outcome(o journal.Outcome) Status {
	switch {
	case o.Applied:
		return success(o.Message)
	case strings.Contains(o.Message, "failed"):
		return warning(o.Message)
	default:
		return info(o.Message)
	}
}

func editError(op string, err error) Status {
	switch {
	case errors.Is(err, journal.ErrEmptyContent):
		return warning("Cannot " + op + " an empty log.")
	case errors.Is(err, journal.ErrNoEntry):
		return warning("Select a log line first.")
	default:
		return failure(fmt.Sprintf("Cannot %s: %v", op, err))
	}
}
