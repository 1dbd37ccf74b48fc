package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	readBufferSize = 64 * 1024
	// MaxLineBytes caps a single line. Longer lines keep their first
	// MaxLineBytes bytes plus TruncatedSuffix; the rest is read and dropped.
	MaxLineBytes = 1024 * 1024
)

// TruncatedSuffix marks a line cut at MaxLineBytes.
const TruncatedSuffix = " …[truncated]"

// ReadStream pushes every non-blank line of r onto q until EOF. Carriage
// returns end a line too, so "\r"-redrawn progress output arrives as separate
// lines. Once ctx is cancelled the rest of r is still read to EOF, so a writer
// on the other end of a pipe never blocks, but nothing more is pushed.
func ReadStream(ctx context.Context, r io.Reader, q *Queue) error {
	br := bufio.NewReaderSize(r, readBufferSize)
	lr := lineReader{q: q, ctx: ctx}

	for {
		chunk, err := br.ReadSlice('\n')
		lr.feed(chunk)
		switch {
		case err == nil, errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			lr.emit()
			return ctx.Err()
		default:
			lr.emit()
			_, _ = io.Copy(io.Discard, br)
			return fmt.Errorf("read stream: %w", err)
		}
	}
}

// ReadStreams runs one ReadStream per reader and waits for all of them. A
// failing reader does not stop the others.
func ReadStreams(ctx context.Context, q *Queue, streams ...io.Reader) error {
	var g errgroup.Group
	for _, r := range streams {
		if r == nil {
			continue
		}
		g.Go(func() error {
			return ReadStream(ctx, r, q)
		})
	}
	return g.Wait()
}

// lineReader assembles lines from the chunks ReadSlice hands back.
type lineReader struct {
	q         *Queue
	ctx       context.Context
	line      []byte
	truncated bool
}

func (l *lineReader) feed(chunk []byte) {
	for len(chunk) > 0 {
		i := bytes.IndexAny(chunk, "\r\n")
		if i < 0 {
			l.add(chunk)
			return
		}
		l.add(chunk[:i])
		l.emit()
		chunk = chunk[i+1:]
	}
}

func (l *lineReader) add(part []byte) {
	if room := MaxLineBytes - len(l.line); len(part) > room {
		part = part[:max(room, 0)]
		l.truncated = true
	}
	l.line = append(l.line, part...)
}

func (l *lineReader) emit() {
	raw, truncated := l.line, l.truncated
	l.line = l.line[:0]
	l.truncated = false
	if l.ctx.Err() != nil {
		return
	}
	line := strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
	if line == "" {
		return
	}
	if truncated {
		line += TruncatedSuffix
	}
	l.q.Push(Item{Action: ActionAdd, Message: line})
}
