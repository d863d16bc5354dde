package domain

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// Tracker holds the lifecycle and progress of one file's conversion.
//
// State changes are driven by the worker that owns the job; the mutex only
// guards readers (snapshots, ETA estimation) against those writes.
type Tracker struct {
	mu sync.RWMutex

	id         string
	inputPath  string
	outputPath string
	name       string

	status    JobStatus
	startedAt time.Time
	endedAt   time.Time

	duration time.Duration
	speed    float64
	position time.Duration
	hasPos   bool

	progress float64
	eta      time.Duration
	errMsg   string

	now func() time.Time
}

func NewTracker(inputPath, outputPath string) *Tracker {
	return &Tracker{
		id:         uuid.NewString(),
		inputPath:  inputPath,
		outputPath: outputPath,
		name:       filepath.Base(inputPath),
		status:     JobStatusPending,
		now:        time.Now,
	}
}

func (t *Tracker) ID() string         { return t.id }
func (t *Tracker) InputPath() string  { return t.inputPath }
func (t *Tracker) OutputPath() string { return t.outputPath }
func (t *Tracker) Name() string       { return t.name }

func (t *Tracker) Status() JobStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Tracker) ErrorMessage() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errMsg
}

// SetDuration records the total media length once the prober reports it.
func (t *Tracker) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.duration = d
}

// Start moves a pending job to in-progress and stamps its start time.
func (t *Tracker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != JobStatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, JobStatusInProgress)
	}
	t.status = JobStatusInProgress
	t.startedAt = t.now()
	return nil
}

func (t *Tracker) Complete() error {
	return t.finish(JobStatusCompleted, "")
}

func (t *Tracker) Fail(message string) error {
	if message == "" {
		message = "conversion failed"
	}
	return t.finish(JobStatusFailed, message)
}

func (t *Tracker) Cancel() error {
	return t.finish(JobStatusCancelled, "")
}

func (t *Tracker) finish(status JobStatus, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != JobStatusInProgress {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, status)
	}
	t.status = status
	t.endedAt = t.now()
	t.errMsg = message
	return nil
}

// UpdateProgress applies a merged sample. Absent fields keep their previous
// value. It returns false when the job is not in progress.
func (t *Tracker) UpdateProgress(s Sample) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != JobStatusInProgress {
		return false
	}

	if s.HasSpeed {
		t.speed = s.Speed
	}
	if s.HasPosition {
		t.position = s.Position
		t.hasPos = true
	}

	if t.duration <= 0 || !t.hasPos {
		return true
	}

	ratio := t.position.Seconds() / t.duration.Seconds()
	t.progress = ratio

	elapsed := t.now().Sub(t.startedAt)
	if ratio > 0 && ratio < 1 && elapsed > 0 {
		total := elapsed.Seconds() / ratio
		remaining := total - elapsed.Seconds()
		if remaining > 0 {
			t.eta = time.Duration(remaining * float64(time.Second))
		}
	}
	return true
}

// Elapsed is end-start once terminal, now-start while running, zero before.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.elapsedLocked()
}

func (t *Tracker) elapsedLocked() time.Duration {
	switch {
	case t.startedAt.IsZero():
		return 0
	case !t.endedAt.IsZero():
		return t.endedAt.Sub(t.startedAt)
	default:
		return t.now().Sub(t.startedAt)
	}
}

// ETA returns the per-job remaining time estimate, if one is known.
func (t *Tracker) ETA() (time.Duration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.eta, t.eta > 0
}

// Progress returns the fraction of media processed, if the duration is known.
func (t *Tracker) Progress() (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progress, t.duration > 0 && t.hasPos
}

func (t *Tracker) Speed() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.speed
}

func (t *Tracker) Snapshot() JobSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return JobSnapshot{
		ID:              t.id,
		Name:            t.name,
		InputPath:       t.inputPath,
		OutputPath:      t.outputPath,
		Status:          t.status,
		Progress:        t.progress,
		Speed:           t.speed,
		PositionSeconds: t.position.Seconds(),
		DurationSeconds: t.duration.Seconds(),
		ElapsedSeconds:  t.elapsedLocked().Seconds(),
		ETA:             FormatETA(t.eta),
		ErrorMessage:    t.errMsg,
		StartedAt:       t.startedAt,
		EndedAt:         t.endedAt,
	}
}
