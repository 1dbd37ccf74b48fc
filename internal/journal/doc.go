// Package journal holds the in-memory log of a scribe session together with
// its undo/redo history.
//
// # Overview
//
// A Journal is an ordered list of Entry values. Entries arrive two ways:
//
//  1. Append: lines observed from the monitored process (state SAVED)
//  2. Add: lines authored by the operator, e.g. comments (state ADDED)
//
// Existing entries can be edited (MODIFIED) or soft-deleted (DELETED). A
// deleted entry stays in place with its message prefixed by "DELETED: " so
// the operation can be undone; it is only dropped by Compact or Save.
//
// # Undo and Redo
//
// Every successful Add, Edit or Delete records an Action on the undo stack
// and clears the redo stack. An Action carries the line number it touched and
// a value copy of the entry needed to reverse it:
//
//	add    -> the inserted entry (removed on undo, re-inserted on redo)
//	edit   -> the entry before the edit (swapped back in on undo)
//	delete -> the entry before the delete (state and message restored on undo)
//
// Undo of an edit pushes a fresh edit Action holding the entry as it was just
// before the undo, so redo can swap the edited version back in. Add and delete
// actions move between the stacks unchanged.
//
// Undo and Redo never panic for expected conditions. An empty stack or a line
// that no longer exists yields an Outcome with Applied=false and a status
// message; a failed action is still popped so the stack cannot get stuck.
//
// # Threading
//
// A Journal is not safe for concurrent use. It is owned by the goroutine that
// runs the UI; background readers hand lines over through the ingest queue.
//
// # Display Filter
//
// LevelFilter decides which entries a renderer shows. It is a pure predicate
// over entries and never consults the undo history.
package journal
