package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/infrastructure/logger"
	"github.com/bnema/batchenc/internal/port"
)

// DefaultWaitDelay bounds how long Run waits for output pipes to drain after
// the process has been killed.
const DefaultWaitDelay = 2 * time.Second

type Invoker struct {
	waitDelay time.Duration
}

func NewInvoker() *Invoker {
	return &Invoker{waitDelay: DefaultWaitDelay}
}

// Run starts executable and blocks until it exits. Each stderr line, split on
// '\n' or '\r', is handed to onStderrLine as soon as it is complete.
func (i *Invoker) Run(ctx context.Context, executable string, args []string, onStderrLine func(string)) (int, error) {
	name := filepath.Base(executable)
	stdout := &lineWriter{onLine: func(line string) {
		logger.Debug.Printf("%s: %s", name, logger.SanitizeForLog(line))
	}}
	return i.exec(ctx, executable, args, stdout, &lineWriter{onLine: onStderrLine})
}

// Output runs executable to completion and returns everything it wrote to
// stdout. Stderr goes to the debug log.
func (i *Invoker) Output(ctx context.Context, executable string, args []string) ([]byte, int, error) {
	name := filepath.Base(executable)
	var stdout bytes.Buffer
	stderr := &lineWriter{onLine: func(line string) {
		logger.Debug.Printf("%s: %s", name, logger.SanitizeForLog(line))
	}}
	code, err := i.exec(ctx, executable, args, &stdout, stderr)
	return stdout.Bytes(), code, err
}

func (i *Invoker) exec(ctx context.Context, executable string, args []string, stdout io.Writer, stderr *lineWriter) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, fmt.Errorf("%w: %w", domain.ErrCancelled, err)
	}

	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = i.waitDelay

	err := cmd.Run()
	stderr.Flush()
	if lw, ok := stdout.(*lineWriter); ok {
		lw.Flush()
	}

	if ctx.Err() != nil {
		return -1, fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
		return cmd.ProcessState.ExitCode(), nil
	default:
		return -1, fmt.Errorf("run %s: %w", filepath.Base(executable), err)
	}
}

// lineWriter turns a byte stream into lines. Empty lines are dropped.
type lineWriter struct {
	mu     sync.Mutex
	buf    []byte
	onLine func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		idx := bytes.IndexAny(w.buf, "\r\n")
		if idx < 0 {
			break
		}
		w.emit(string(w.buf[:idx]))
		w.buf = w.buf[idx+1:]
	}
	return len(p), nil
}

// Flush emits whatever is left after the last separator.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimSpace(line)
	if line == "" || w.onLine == nil {
		return
	}
	w.onLine(line)
}

var _ port.ProcessRunner = (*Invoker)(nil)
