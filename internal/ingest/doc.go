// Package ingest turns the output of a monitored process into journal entries.
//
// # Overview
//
// Ingestion is split across two kinds of goroutine:
//
//  1. Readers: one per output stream. They block on the stream, trim each
//     line, drop blank ones and push the rest onto a Queue. Readers never
//     classify and never touch the journal.
//  2. The drain loop: the goroutine that owns the journal calls
//     Pipeline.Drain on a short timer. Drain empties the queue without
//     blocking, classifies each line and appends it.
//
// The Queue is the only structure shared between goroutines. Lines from the
// same stream keep their order; stdout and stderr may interleave.
//
// Readers consume every stream to EOF. A line longer than MaxLineBytes is cut
// and marked with TruncatedSuffix, and reading carries on; a blocked reader
// would otherwise stall the writing process on a full pipe.
//
// # Progress Lines
//
// A line classified as PROGRESS is transient. Drain keeps only the latest one
// in a pending slot (exposed as DrainResult.Progress for display) instead of
// appending it. When the next ordinary line arrives the pending progress line
// is appended once, as INFO, before that line. This collapses a spinner or
// progress bar into its final value:
//
//	[PROGRESS] 1%   -> pending
//	[PROGRESS] 50%  -> pending (replaces)
//	[PROGRESS] 99%  -> pending (replaces)
//	[INFO] done     -> append "[PROGRESS] 99%" as INFO, then "[INFO] done"
//
// Pause and resume notices ("paused", "resumed") do not flush the pending
// progress line, nor does anything drained while the pipeline is paused; the
// monitored process may announce a pause while a progress line is open.
//
// # Lifecycle
//
// Finish is called once the process has exited and the queue is drained. It
// drops the pending progress line, closes the attached log sink and clears the
// journal's undo history, since edits do not carry across process runs.
package ingest
