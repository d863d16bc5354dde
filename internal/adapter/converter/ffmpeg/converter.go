package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/infrastructure/logger"
	"github.com/bnema/batchenc/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains null byte")
)

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

type Converter struct {
	ffmpegPath  string
	ffprobePath string
	runner      port.ProcessRunner
}

func NewConverter(ffmpegPath, ffprobePath string, runner port.ProcessRunner) *Converter {
	return &Converter{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		runner:      runner,
	}
}

// Encode runs ffmpeg for one file. Progress lines written to stderr are parsed
// and only non-empty samples reach onProgress.
func (c *Converter) Encode(ctx context.Context, req port.EncodeRequest, onProgress func(domain.Sample)) (int, error) {
	if err := validatePath(req.InputPath); err != nil {
		return -1, fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(req.OutputPath); err != nil {
		return -1, fmt.Errorf("invalid output path: %w", err)
	}

	args, err := BuildArgs(req)
	if err != nil {
		return -1, err
	}

	return c.runner.Run(ctx, c.ffmpegPath, args, func(line string) {
		sample := ParseProgressLine(line)
		if sample.Empty() || onProgress == nil {
			return
		}
		onProgress(sample)
	})
}

// BuildArgs assembles the ffmpeg command line. Progress goes to stderr so it
// can be parsed alongside ffmpeg's regular status output.
func BuildArgs(req port.EncodeRequest) ([]string, error) {
	format := req.Format
	if format == "" {
		format = domain.FormatMP4
	}
	if format != domain.FormatMP4 {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	args := []string{"-i", req.InputPath, "-progress", "pipe:2"}

	var codec string
	switch req.Hardware {
	case domain.HardwareNvidia:
		codec = "h264_nvenc"
		args = append(args, "-preset", "medium", "-rc:v", "vbr", "-cq", "24")
	case domain.HardwareQuickSync:
		codec = "h264_qsv"
	default:
		codec = "libx264"
	}

	args = append(args,
		"-c:v", codec,
		"-c:a", "aac",
		"-b:a", "128k",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		req.OutputPath,
	)
	return args, nil
}

// Duration asks ffprobe for the container duration. Any failure is reported
// as unknown.
func (c *Converter) Duration(ctx context.Context, inputPath string) (time.Duration, bool) {
	if err := validatePath(inputPath); err != nil {
		return 0, false
	}

	args := []string{
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		inputPath,
	}
	output, code, err := c.runner.Output(ctx, c.ffprobePath, args)
	if err != nil || code != 0 {
		logger.Debug.Printf("ffprobe %s: exit %d: %v", logger.SanitizeForLog(inputPath), code, err)
		return 0, false
	}

	first, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return domain.ParseDurationSeconds(first)
}

// LocateTool finds an external binary: next to the running executable first,
// then the path named by envKey, then the bare name for PATH lookup.
func LocateTool(name, envKey string) string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	if p := os.Getenv(envKey); p != "" {
		return p
	}
	return name
}

var (
	_ port.Encoder = (*Converter)(nil)
	_ port.Prober  = (*Converter)(nil)
)
