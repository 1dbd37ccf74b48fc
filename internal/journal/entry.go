package journal

import (
	"fmt"
	"regexp"
	"time"
)

// State is the lifecycle marker of an entry.
type State int

const (
	StateSaved State = iota
	StateAdded
	StateModified
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateAdded:
		return "ADDED"
	case StateModified:
		return "MODIFIED"
	case StateDeleted:
		return "DELETED"
	default:
		return "SAVED"
	}
}

// DeletedPrefix marks the message of a soft-deleted entry.
const DeletedPrefix = "DELETED: "

// Entry is one line of log content.
type Entry struct {
	Message string
	Level   string
	State   State
}

// ActionType identifies the journal mutation an Action reverses.
type ActionType int

const (
	ActionAdd ActionType = iota
	ActionEdit
	ActionDelete
)

func (t ActionType) String() string {
	switch t {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	default:
		return "add"
	}
}

// Action records enough to reverse one mutation. Entry is the inserted entry
// for add, and the pre-mutation snapshot for edit and delete.
type Action struct {
	Type  ActionType
	Line  int
	Entry Entry
}

const timestampLayout = "15:04:05"

// FormatMessage renders the conventional "[HH:MM:SS] [LEVEL] content" form.
func FormatMessage(t time.Time, level, content string) string {
	return fmt.Sprintf("[%s] [%s] %s", t.Format(timestampLayout), level, content)
}

var messagePrefix = regexp.MustCompile(`^\s*\[\d{2}:\d{2}:\d{2}\]\s*\[[A-Z_]+\]\s*`)

// StripPrefix removes a leading timestamp and level tag, leaving the body an
// editor should be pre-filled with.
func StripPrefix(message string) string {
	return messagePrefix.ReplaceAllString(message, "")
}
