package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTracker(clock *fakeClock) *Tracker {
	tr := NewTracker("/videos/clip.MOV", "/videos/clip.mp4")
	tr.now = clock.Now
	return tr
}

func TestNewTracker(t *testing.T) {
	tr := NewTracker("/videos/holiday/clip.MOV", "/out/clip.mp4")

	assert.NotEmpty(t, tr.ID())
	assert.Equal(t, "clip.MOV", tr.Name())
	assert.Equal(t, "/videos/holiday/clip.MOV", tr.InputPath())
	assert.Equal(t, "/out/clip.mp4", tr.OutputPath())
	assert.Equal(t, JobStatusPending, tr.Status())
	assert.Zero(t, tr.Elapsed())
}

func TestTracker_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		finish     func(*Tracker) error
		wantStatus JobStatus
		wantErrMsg string
	}{
		{
			name:       "completed",
			finish:     (*Tracker).Complete,
			wantStatus: JobStatusCompleted,
		},
		{
			name:       "failed with message",
			finish:     func(tr *Tracker) error { return tr.Fail("encoder exited with code 1") },
			wantStatus: JobStatusFailed,
			wantErrMsg: "encoder exited with code 1",
		},
		{
			name:       "failed without message gets a default",
			finish:     func(tr *Tracker) error { return tr.Fail("") },
			wantStatus: JobStatusFailed,
			wantErrMsg: "conversion failed",
		},
		{
			name:       "cancelled",
			finish:     (*Tracker).Cancel,
			wantStatus: JobStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
			tr := newTestTracker(clock)

			require.NoError(t, tr.Start())
			assert.Equal(t, JobStatusInProgress, tr.Status())

			clock.Advance(42 * time.Second)
			require.NoError(t, tt.finish(tr))

			assert.Equal(t, tt.wantStatus, tr.Status())
			assert.True(t, tr.Status().IsTerminal())
			assert.Equal(t, tt.wantErrMsg, tr.ErrorMessage())

			// elapsed is frozen once terminal
			clock.Advance(time.Hour)
			assert.Equal(t, 42*time.Second, tr.Elapsed())

			snap := tr.Snapshot()
			assert.False(t, snap.EndedAt.IsZero())
			assert.Equal(t, 42.0, snap.ElapsedSeconds)
		})
	}
}

func TestTracker_TerminalStatesAreAbsorbing(t *testing.T) {
	tr := NewTracker("/in/a.mov", "/in/a.mp4")
	require.NoError(t, tr.Start())
	require.NoError(t, tr.Cancel())

	assert.ErrorIs(t, tr.Complete(), ErrInvalidTransition)
	assert.ErrorIs(t, tr.Fail("late failure"), ErrInvalidTransition)
	assert.ErrorIs(t, tr.Start(), ErrInvalidTransition)
	assert.Equal(t, JobStatusCancelled, tr.Status())
	assert.Empty(t, tr.ErrorMessage())
}

func TestTracker_CannotFinishBeforeStart(t *testing.T) {
	tr := NewTracker("/in/a.mov", "/in/a.mp4")

	err := tr.Complete()
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, JobStatusPending, tr.Status())
}

func TestTracker_UpdateProgress_FractionAndETA(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	tr := newTestTracker(clock)
	tr.SetDuration(120 * time.Second)
	require.NoError(t, tr.Start())

	clock.Advance(10 * time.Second)
	ok := tr.UpdateProgress(PositionSample(30 * time.Second))
	require.True(t, ok)

	progress, known := tr.Progress()
	assert.True(t, known)
	assert.InDelta(t, 0.25, progress, 1e-9)

	eta, known := tr.ETA()
	assert.True(t, known)
	assert.Equal(t, 30*time.Second, eta)
}

func TestTracker_UpdateProgress_ForwardFill(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	tr := newTestTracker(clock)
	require.NoError(t, tr.Start())

	tr.UpdateProgress(Sample{Speed: 2.5, HasSpeed: true, Position: 5 * time.Second, HasPosition: true})
	tr.UpdateProgress(PositionSample(8 * time.Second))
	tr.UpdateProgress(Sample{})

	snap := tr.Snapshot()
	assert.Equal(t, 2.5, snap.Speed)
	assert.Equal(t, 8.0, snap.PositionSeconds)
}

func TestTracker_UpdateProgress_WithoutDuration(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	tr := newTestTracker(clock)
	require.NoError(t, tr.Start())

	clock.Advance(5 * time.Second)
	assert.True(t, tr.UpdateProgress(PositionSample(30*time.Second)))

	_, known := tr.Progress()
	assert.False(t, known)
	_, known = tr.ETA()
	assert.False(t, known)
}

func TestTracker_UpdateProgress_KeepsLastETAWhenDone(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	tr := newTestTracker(clock)
	tr.SetDuration(100 * time.Second)
	require.NoError(t, tr.Start())

	clock.Advance(10 * time.Second)
	tr.UpdateProgress(PositionSample(50 * time.Second))
	eta, _ := tr.ETA()
	assert.Equal(t, 10*time.Second, eta)

	clock.Advance(10 * time.Second)
	tr.UpdateProgress(PositionSample(100 * time.Second))

	progress, _ := tr.Progress()
	assert.InDelta(t, 1.0, progress, 1e-9)
	eta, _ = tr.ETA()
	assert.Equal(t, 10*time.Second, eta)
}

func TestTracker_UpdateProgress_RejectedOutsideInProgress(t *testing.T) {
	tr := NewTracker("/in/a.mov", "/in/a.mp4")

	assert.False(t, tr.UpdateProgress(SpeedSample(1.5)), "pending job")

	require.NoError(t, tr.Start())
	require.NoError(t, tr.Complete())
	assert.False(t, tr.UpdateProgress(SpeedSample(1.5)), "completed job")
	assert.Zero(t, tr.Speed())
}

func TestTracker_SetDurationIgnoresNonPositive(t *testing.T) {
	tr := NewTracker("/in/a.mov", "/in/a.mp4")
	tr.SetDuration(0)
	tr.SetDuration(-time.Second)

	assert.Zero(t, tr.Snapshot().DurationSeconds)
}
