package process

import (
	"context"
	"os/exec"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/batchenc/internal/domain"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found in PATH")
	}
	return sh
}

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *lineRecorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestInvoker_StreamsStderrLines(t *testing.T) {
	sh := requireShell(t)
	rec := &lineRecorder{}

	code, err := NewInvoker().Run(context.Background(), sh,
		[]string{"-c", `printf 'frame=1\rspeed=1.5x\nout_time_us=1000\n\ntrailing' >&2; echo ignored`},
		rec.add)

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"frame=1", "speed=1.5x", "out_time_us=1000", "trailing"}, rec.get())
}

func TestInvoker_ReportsExitCode(t *testing.T) {
	sh := requireShell(t)

	code, err := NewInvoker().Run(context.Background(), sh, []string{"-c", "exit 3"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestInvoker_MissingExecutable(t *testing.T) {
	requireShell(t)

	code, err := NewInvoker().Run(context.Background(), "/nonexistent/batchenc-encoder", nil, nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCancelled)
	assert.Equal(t, -1, code)
}

func TestInvoker_CancelKillsProcess(t *testing.T) {
	sh := requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	code, err := NewInvoker().Run(ctx, sh,
		[]string{"-c", "echo started >&2; exec sleep 30"},
		func(line string) {
			if line == "started" {
				cancel()
			}
		})

	require.ErrorIs(t, err, domain.ErrCancelled)
	assert.Equal(t, -1, code)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestInvoker_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := NewInvoker().Run(ctx, "sh", []string{"-c", "true"}, func(string) { called = true })

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.False(t, called)
}

func TestInvoker_OutputCollectsStdout(t *testing.T) {
	sh := requireShell(t)

	out, code, err := NewInvoker().Output(context.Background(), sh,
		[]string{"-c", "echo 12.5; echo noise >&2"})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "12.5\n", string(out))
}

func TestInvoker_OutputReportsExitCode(t *testing.T) {
	sh := requireShell(t)

	out, code, err := NewInvoker().Output(context.Background(), sh, []string{"-c", "echo partial; exit 2"})

	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Equal(t, "partial\n", string(out))
}

func TestInvoker_OutputAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, code, err := NewInvoker().Output(ctx, "sh", []string{"-c", "echo hi"})

	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Equal(t, -1, code)
}

func TestLineWriter_SplitsAcrossWrites(t *testing.T) {
	rec := &lineRecorder{}
	w := &lineWriter{onLine: rec.add}

	_, _ = w.Write([]byte("spe"))
	_, _ = w.Write([]byte("ed=2.0x\r\nout_ti"))
	_, _ = w.Write([]byte("me_us=5\r"))
	w.Flush()

	assert.Equal(t, []string{"speed=2.0x", "out_time_us=5"}, rec.get())
}
