package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	maxStderrTail = 2048
	// maxLineLength splits longer stdout lines, e.g. progress bars redrawn
	// with carriage returns, into several lines.
	maxLineLength = 64 * 1024
)

// waitDelay bounds how long output is read after the command was killed or
// exited while a child it started still holds stdout open.
var waitDelay = 5 * time.Second

// StreamRunner runs a command and calls onLine for each line written to
// stdout.
type StreamRunner func(ctx context.Context, onLine func(string), name string, args ...string) error

// ExecStreamRunner is the StreamRunner backed by os/exec. A non-zero exit is
// reported as *CommandError carrying the tail of stderr.
func ExecStreamRunner(ctx context.Context, onLine func(string), name string, args ...string) error {
	lines := &lineWriter{onLine: onLine, max: maxLineLength}
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = lines
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %s: %w", name, err)
	}
	err := cmd.Wait()
	lines.flush()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, exec.ErrWaitDelay):
		return nil
	case errors.As(err, &exitErr):
		return &CommandError{
			Command:  strings.TrimSpace(name + " " + strings.Join(args, " ")),
			ExitCode: exitErr.ExitCode(),
			Stderr:   tail(stderr.String(), maxStderrTail),
		}
	default:
		return fmt.Errorf("failed to wait for %s: %w", name, err)
	}
}

// lineWriter splits what is written to it into lines without the trailing
// "\n" or "\r\n". Lines longer than max are delivered in pieces of max bytes.
type lineWriter struct {
	onLine func(string)
	max    int
	buf    []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			w.buf = append(w.buf, p...)
			w.spill()
			break
		}
		w.buf = append(w.buf, p[:i]...)
		p = p[i+1:]
		w.spill()
		w.emit()
	}
	return n, nil
}

// flush delivers a final line that was not terminated by a newline.
func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit()
	}
}

func (w *lineWriter) spill() {
	for len(w.buf) > w.max {
		w.onLine(string(w.buf[:w.max]))
		w.buf = w.buf[w.max:]
	}
}

func (w *lineWriter) emit() {
	w.onLine(string(bytes.TrimSuffix(w.buf, []byte{'\r'})))
	w.buf = w.buf[:0]
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
