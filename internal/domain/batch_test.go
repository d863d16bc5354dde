package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputPlan_OutputPath(t *testing.T) {
	tests := []struct {
		name  string
		plan  OutputPlan
		input string
		want  string
	}{
		{
			name:  "same directory",
			plan:  OutputPlan{OutputDir: "/ignored", SameDir: true, Format: FormatMP4},
			input: "/videos/trip/clip.MOV",
			want:  filepath.Join("/videos/trip", "clip.mp4"),
		},
		{
			name:  "single output directory",
			plan:  OutputPlan{OutputDir: "/converted", Format: FormatMP4},
			input: "/videos/trip/clip.MOV",
			want:  filepath.Join("/converted", "clip.mp4"),
		},
		{
			name:  "empty output directory falls back to input directory",
			plan:  OutputPlan{Format: FormatMP4},
			input: "/videos/clip.avi",
			want:  filepath.Join("/videos", "clip.mp4"),
		},
		{
			name:  "default format",
			plan:  OutputPlan{OutputDir: "/out"},
			input: "/videos/archive.tar.mov",
			want:  filepath.Join("/out", "archive.tar.mp4"),
		},
		{
			name:  "no extension",
			plan:  OutputPlan{OutputDir: "/out", Format: FormatMP4},
			input: "/videos/raw",
			want:  filepath.Join("/out", "raw.mp4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.OutputPath(tt.input))
		})
	}
}

func TestStatusLine(t *testing.T) {
	a := NewTracker("/in/a.mov", "/in/a.mp4")
	b := NewTracker("/in/b.mov", "/in/b.mp4")
	c := NewTracker("/in/c.mov", "/in/c.mp4")

	assert.Equal(t, "", StatusLine(nil))
	assert.Equal(t, "Converting: a.mov", StatusLine([]*Tracker{a}))
	assert.Equal(t, "Converting: a.mov (+2 others)", StatusLine([]*Tracker{a, b, c}))
}

func TestSummarize(t *testing.T) {
	snap := BatchSnapshot{
		Total: 3,
		Completed: []JobSnapshot{
			{Status: JobStatusCompleted},
			{Status: JobStatusFailed},
			{Status: JobStatusFailed},
		},
	}

	assert.Equal(t, "Conversion cancelled", Summarize(snap, true))
	assert.Equal(t, "Conversion finished with errors: 2 file(s) failed", Summarize(snap, false))

	snap.Completed = []JobSnapshot{{Status: JobStatusCompleted}}
	assert.Equal(t, "All files converted successfully", Summarize(snap, false))
}

func TestNewBatchRecord(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)
	snap := BatchSnapshot{
		ID:        "batch-1",
		Total:     3,
		StartedAt: started,
		Completed: []JobSnapshot{
			{InputPath: "/in/a.mov", OutputPath: "/in/a.mp4", Status: JobStatusCompleted, ElapsedSeconds: 12},
			{InputPath: "/in/b.mov", OutputPath: "/in/b.mp4", Status: JobStatusFailed, ErrorMessage: "exit 1"},
			{InputPath: "/in/c.mov", OutputPath: "/in/c.mp4", Status: JobStatusCancelled},
		},
	}

	rec := NewBatchRecord(snap, finished, "done")

	assert.Equal(t, "batch-1", rec.ID)
	assert.Equal(t, started, rec.StartedAt)
	assert.Equal(t, finished, rec.FinishedAt)
	assert.Equal(t, 3, rec.Total)
	assert.Equal(t, 1, rec.Completed)
	assert.Equal(t, 1, rec.Failed)
	assert.Equal(t, 1, rec.Cancelled)
	assert.Equal(t, "done", rec.Summary)
	assert.Len(t, rec.Jobs, 3)
	assert.Equal(t, "exit 1", rec.Jobs[1].ErrorMessage)
}

func TestBatchSnapshot_Visible(t *testing.T) {
	assert.False(t, BatchSnapshot{}.Visible())
	assert.True(t, BatchSnapshot{Total: 1}.Visible())
}
