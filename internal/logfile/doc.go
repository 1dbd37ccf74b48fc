// Package logfile reads and writes the plain-text log files scribe works with.
//
// # Overview
//
// A log file is one message per line, exactly as it appeared in the viewer:
//
//	[14:32:15] [INFO] Starting batch
//	[14:32:16] [PROGRESS] Thinking... |
//	[14:32:19] [COMMENT] operator note
//
// The package covers three jobs:
//
//  1. Read: return the last maxLines of a file using a ring buffer, so a
//     large file is scanned once with O(maxLines) memory.
//  2. Load: turn a saved file back into journal entries.
//  3. Appender: mirror live output into the session log while a process runs.
//
// # Loading
//
// Load classifies every non-blank line. Consecutive lines containing the
// literal "[PROGRESS]" tag collapse to the last one of the run, which is then
// stored as INFO. Loaded entries are SAVED.
//
// # Session Logs
//
// NewSessionPath names a session log after the time the run started
// (log_viewer_20251008_210105.log). The Appender opens the file lazily on the
// first write, in append mode, and is closed when the run finishes.
//
// # Error Handling
//
// Read and Load return nil, nil for files that do not exist. Other errors are
// wrapped with the operation that failed.
package logfile
