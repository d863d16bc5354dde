package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MaxConcurrency bounds the number of files converted in parallel.
const MaxConcurrency = 64

// OutputPlan decides where converted files land.
type OutputPlan struct {
	OutputDir string
	SameDir   bool
	Format    Format
}

// OutputPath returns the destination for inputPath: next to the input when
// SameDir is set (or no OutputDir was given), otherwise inside OutputDir. The
// extension is replaced by the target container's.
func (p OutputPlan) OutputPath(inputPath string) string {
	dir := p.OutputDir
	if p.SameDir || dir == "" {
		dir = filepath.Dir(inputPath)
	}
	format := p.Format
	if format == "" {
		format = FormatMP4
	}
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + format.Extension()
	return filepath.Join(dir, base)
}

type JobSnapshot struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	InputPath       string    `json:"input_path"`
	OutputPath      string    `json:"output_path"`
	Status          JobStatus `json:"status"`
	Progress        float64   `json:"progress"`
	Speed           float64   `json:"speed"`
	PositionSeconds float64   `json:"position_seconds"`
	DurationSeconds float64   `json:"duration_seconds"`
	ElapsedSeconds  float64   `json:"elapsed_seconds"`
	ETA             string    `json:"eta,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
}

// BatchSnapshot is a point-in-time copy of a batch's aggregate state.
type BatchSnapshot struct {
	ID              string        `json:"id"`
	Running         bool          `json:"running"`
	Total           int           `json:"total"`
	Pending         []JobSnapshot `json:"pending"`
	Active          []JobSnapshot `json:"active"`
	Completed       []JobSnapshot `json:"completed"`
	OverallProgress float64       `json:"overall_progress"`
	Status          string        `json:"status,omitempty"`
	AverageSpeed    string        `json:"average_speed,omitempty"`
	ETA             string        `json:"eta,omitempty"`
	StartedAt       time.Time     `json:"started_at"`
}

// Visible reports whether there is anything worth rendering.
func (b BatchSnapshot) Visible() bool {
	return b.Total > 0 || len(b.Active) > 0 || len(b.Completed) > 0
}

// CountStatus returns how many completed jobs ended in status.
func (b BatchSnapshot) CountStatus(status JobStatus) int {
	n := 0
	for _, j := range b.Completed {
		if j.Status == status {
			n++
		}
	}
	return n
}

// StatusLine describes what is currently being converted.
func StatusLine(active []*Tracker) string {
	switch len(active) {
	case 0:
		return ""
	case 1:
		return "Converting: " + active[0].Name()
	default:
		return fmt.Sprintf("Converting: %s (+%d others)", active[0].Name(), len(active)-1)
	}
}

// Summarize produces the end-of-batch message shown to the caller.
func Summarize(b BatchSnapshot, cancelled bool) string {
	if cancelled {
		return "Conversion cancelled"
	}
	if failed := b.CountStatus(JobStatusFailed); failed > 0 {
		return fmt.Sprintf("Conversion finished with errors: %d file(s) failed", failed)
	}
	return "All files converted successfully"
}

// BatchRecord is the persisted outcome of one finished batch.
type BatchRecord struct {
	ID         string      `json:"id"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
	Total      int         `json:"total"`
	Completed  int         `json:"completed"`
	Failed     int         `json:"failed"`
	Cancelled  int         `json:"cancelled"`
	Summary    string      `json:"summary"`
	Jobs       []JobRecord `json:"jobs,omitempty"`
}

type JobRecord struct {
	InputPath      string    `json:"input_path"`
	OutputPath     string    `json:"output_path"`
	Status         JobStatus `json:"status"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
}

// NewBatchRecord builds the history row for a finished batch.
func NewBatchRecord(b BatchSnapshot, finishedAt time.Time, summary string) *BatchRecord {
	rec := &BatchRecord{
		ID:         b.ID,
		StartedAt:  b.StartedAt,
		FinishedAt: finishedAt,
		Total:      b.Total,
		Completed:  b.CountStatus(JobStatusCompleted),
		Failed:     b.CountStatus(JobStatusFailed),
		Cancelled:  b.CountStatus(JobStatusCancelled),
		Summary:    summary,
		Jobs:       make([]JobRecord, 0, len(b.Completed)),
	}
	for _, j := range b.Completed {
		rec.Jobs = append(rec.Jobs, JobRecord{
			InputPath:      j.InputPath,
			OutputPath:     j.OutputPath,
			Status:         j.Status,
			ErrorMessage:   j.ErrorMessage,
			ElapsedSeconds: j.ElapsedSeconds,
		})
	}
	return rec
}
