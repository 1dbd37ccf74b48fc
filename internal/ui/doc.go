// Package ui is scribe's Bubble Tea front end.
//
// The Model owns no log state of its own. Every key press and tick is
// translated into a call on a session.Session and the result is rendered:
//
//   - a header with the session mode, command and journal counters
//   - the log box, one row per entry that passes the level filters
//   - the current progress line, if the child is redrawing one
//   - a command line that doubles as a text input
//   - a status bar holding the last action's outcome
//
// A drain tick runs every Options.DrainInterval while a process is active
// and moves queued output into the journal. Overlays for help and level
// filters replace the main view while open.
//
// Typing text after "i" adds a COMMENT below the selected line; text after
// ":" is parsed as a slash command (/add, /edit, /delete, /undo, /redo,
// /save, /open, /close). Editing keys only work while the process is paused
// or not running.
package ui
