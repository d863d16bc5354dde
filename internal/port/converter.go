package port

import (
	"context"
	"time"

	"github.com/bnema/batchenc/internal/domain"
)

// ProcessRunner starts external programs. A non-zero exit is reported through
// the exit code, not the error. Cancelling ctx kills the process and yields an
// error wrapping domain.ErrCancelled.
type ProcessRunner interface {
	// Run streams stderr lines to onStderrLine as they are written.
	Run(ctx context.Context, executable string, args []string, onStderrLine func(line string)) (exitCode int, err error)
	// Output collects stdout for short-lived tools such as probes.
	Output(ctx context.Context, executable string, args []string) (stdout []byte, exitCode int, err error)
}

// EncodeRequest describes one file conversion.
type EncodeRequest struct {
	InputPath  string
	OutputPath string
	Format     domain.Format
	Hardware   domain.Hardware
}

// Encoder converts one file and reports parsed progress samples.
type Encoder interface {
	Encode(ctx context.Context, req EncodeRequest, onProgress func(domain.Sample)) (exitCode int, err error)
}

// Prober reports a media file's duration. ok is false when it is unknown.
type Prober interface {
	Duration(ctx context.Context, inputPath string) (d time.Duration, ok bool)
}
