package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/five82/scribe/internal/ingest"
)

// Result is delivered once the process has exited and both streams are read.
type Result struct {
	ExitCode int
	Err      error
}

// Process is a running script whose output feeds an ingest queue.
type Process struct {
	cmd    *exec.Cmd
	done   chan Result
	logger *log.Logger

	mu     sync.Mutex
	killed bool
	exited bool
}

// Start launches c. Its stdout and stderr are read line by line into q until
// both reach EOF; then the process is reaped and the outcome sent on Done.
func Start(ctx context.Context, c Command, q *ingest.Queue, logger *log.Logger) (*Process, error) {
	if len(c.Args) == 0 {
		return nil, ErrEmptyScript
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), "PYTHONUNBUFFERED=1")
	setProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", c.Args[0], err)
	}

	p := &Process{cmd: cmd, done: make(chan Result, 1), logger: logger}
	logger.Info("process started", "pid", cmd.Process.Pid, "cmd", c.String())

	go func() {
		readErr := ingest.ReadStreams(ctx, q, stdout, stderr)
		if readErr != nil {
			logger.Warn("output reader failed", "err", readErr)
		}
		waitErr := cmd.Wait()
		p.mu.Lock()
		p.exited = true
		p.mu.Unlock()

		res := Result{ExitCode: -1}
		if cmd.ProcessState != nil {
			res.ExitCode = cmd.ProcessState.ExitCode()
		}
		var exitErr *exec.ExitError
		if waitErr != nil && !errors.As(waitErr, &exitErr) {
			res.Err = waitErr
		} else if readErr != nil && !errors.Is(readErr, context.Canceled) {
			res.Err = readErr
		}
		logger.Info("process exited", "pid", cmd.Process.Pid, "code", res.ExitCode)
		p.done <- res
		close(p.done)
	}()
	return p, nil
}

// Done yields exactly one Result.
func (p *Process) Done() <-chan Result {
	return p.done
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Killed reports whether Kill was called.
func (p *Process) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

// Kill terminates the process group, falling back to the single process.
// Errors are logged, not returned; the exit still arrives on Done.
func (p *Process) Kill() {
	p.mu.Lock()
	p.killed = true
	exited := p.exited
	p.mu.Unlock()
	if exited {
		return
	}

	if err := killGroup(p.cmd); err != nil {
		p.logger.Debug("group kill failed, killing process", "err", err)
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.logger.Warn("kill failed", "pid", p.cmd.Process.Pid, "err", err)
		}
	}
}
