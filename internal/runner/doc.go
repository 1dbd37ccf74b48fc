// Package runner starts and stops the monitored script.
//
// Launcher decides how a script is run: Python files go through python3 (or
// python), other extensions through the configured interpreter map, and
// anything else must be executable. The command runs from the script's
// directory and receives --data-dir so it can find the pause flag.
//
// Start wires the child's stdout and stderr into an ingest.Queue and reports
// the exit on Process.Done once both streams are drained. The Done channel is
// read by the UI goroutine, which keeps the journal single-writer.
//
// PauseFlag is the file-based pause handshake. The child polls for the file
// between work units, so pausing is cooperative and may take effect late.
package runner
