package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/scribe/internal/journal"
	"github.com/five82/scribe/internal/severity"
)

var pauseNotice = regexp.MustCompile(`(?i)\b(resumed|paused)\b`)

// Sink is a journal mirror that must be closed when the run ends.
type Sink interface {
	journal.Sink
	io.Closer
}

// DrainResult summarises one Drain call.
type DrainResult struct {
	Drained  int     // items taken off the queue
	Appended int     // journal entries appended; non-zero means scroll to end
	Progress string  // current transient progress text, empty when none
	Errors   []error // sink failures, for status reporting
}

// Pipeline classifies queued lines and appends them to a journal.
type Pipeline struct {
	queue      *Queue
	journal    *journal.Journal
	classifier *severity.Classifier
	logger     *log.Logger

	sink       Sink
	pending    string
	hasPending bool
	paused     bool
}

// NewPipeline wires a queue to a journal. A nil classifier uses the standard
// levels; a nil logger discards diagnostics.
func NewPipeline(q *Queue, j *journal.Journal, c *severity.Classifier, logger *log.Logger) *Pipeline {
	if q == nil {
		q = &Queue{}
	}
	if c == nil {
		c = severity.NewClassifier()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{queue: q, journal: j, classifier: c, logger: logger}
}

// Queue returns the queue readers push onto.
func (p *Pipeline) Queue() *Queue {
	return p.queue
}

// Attach mirrors appended lines to s until Finish.
func (p *Pipeline) Attach(s Sink) {
	p.sink = s
	p.journal.SetSink(s)
}

// SetPaused toggles whether drained lines may flush a pending progress line.
func (p *Pipeline) SetPaused(paused bool) {
	p.paused = paused
}

// Progress returns the pending progress text, if any.
func (p *Pipeline) Progress() string {
	if !p.hasPending {
		return ""
	}
	return cleanProgress(p.pending)
}

// Enqueue pushes a line produced locally, such as a pause notice.
func (p *Pipeline) Enqueue(message string) {
	p.queue.Push(Item{Action: ActionAdd, Message: message})
}

// Drain empties the queue into the journal.
func (p *Pipeline) Drain() DrainResult {
	var res DrainResult
	for _, item := range p.queue.Drain() {
		res.Drained++
		if item.Action != ActionAdd {
			p.logger.Debug("ignoring queue item", "action", item.Action)
			continue
		}
		msg := item.Message
		level := p.classifier.Classify(msg)

		if level == severity.Progress {
			p.pending = msg
			p.hasPending = true
			continue
		}

		if p.hasPending && !p.paused && !pauseNotice.MatchString(msg) {
			p.append(&res, cleanProgress(p.pending), severity.Info)
			p.pending = ""
			p.hasPending = false
		}
		p.append(&res, msg, level)
	}
	res.Progress = p.Progress()
	return res
}

// Finish closes out a run: the pending progress line is dropped, the sink is
// closed and detached and the undo history is cleared.
func (p *Pipeline) Finish() error {
	p.pending = ""
	p.hasPending = false
	p.paused = false
	p.journal.ClearHistory()

	if p.sink == nil {
		return nil
	}
	err := p.sink.Close()
	p.sink = nil
	p.journal.SetSink(nil)
	if err != nil {
		return fmt.Errorf("close session log: %w", err)
	}
	return nil
}

func (p *Pipeline) append(res *DrainResult, msg, level string) {
	err := p.journal.Append(msg, level)
	res.Appended++
	if err != nil {
		p.logger.Warn("log mirror failed", "err", err)
		res.Errors = append(res.Errors, err)
	}
}

func cleanProgress(msg string) string {
	return strings.TrimSpace(strings.ReplaceAll(msg, "\r", ""))
}
