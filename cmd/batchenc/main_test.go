package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/service"
)

type snapshotFunc func() domain.BatchSnapshot

func (f snapshotFunc) Snapshot() domain.BatchSnapshot { return f() }

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name string
		snap domain.BatchSnapshot
		want string
	}{
		{name: "idle", snap: domain.BatchSnapshot{}, want: ""},
		{
			name: "running without estimates",
			snap: domain.BatchSnapshot{Running: true, Status: "Converting: a.MOV", OverallProgress: 0},
			want: "[  0.0%] Converting: a.MOV",
		},
		{
			name: "running with estimates",
			snap: domain.BatchSnapshot{
				Running:         true,
				Status:          "Converting: a.MOV (+1 others)",
				OverallProgress: 33.333,
				AverageSpeed:    "2.1x (average, 2 files)",
				ETA:             "01:05",
			},
			want: "[ 33.3%] Converting: a.MOV (+1 others) | 2.1x (average, 2 files) | ETA 01:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusLine(tt.snap))
		})
	}
}

func TestPrintStatus_DedupesAndReportsFinishedJobs(t *testing.T) {
	snap := domain.BatchSnapshot{
		Running: true,
		Status:  "Converting: b.MOV",
		Completed: []domain.JobSnapshot{
			{ID: "j1", Name: "a.MOV", OutputPath: "/out/a.mp4", Status: domain.JobStatusCompleted, ElapsedSeconds: 3},
			{ID: "j2", Name: "c.MOV", Status: domain.JobStatusFailed, ErrorMessage: "ffmpeg exited with code 1"},
		},
	}

	events := make(chan service.Event, 4)
	events <- service.Event{Type: "progress", JobID: "j3"}
	events <- service.Event{Type: "progress", JobID: "j3"}
	events <- service.Event{Type: "job", JobID: "j1", Status: string(domain.JobStatusCompleted)}
	events <- service.Event{Type: "job", JobID: "j2", Status: string(domain.JobStatusFailed)}
	close(events)

	var buf bytes.Buffer
	printStatus(&buf, events, snapshotFunc(func() domain.BatchSnapshot { return snap }))

	out := buf.String()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Converting: b.MOV")))
	assert.Contains(t, out, "OK   a.MOV -> /out/a.mp4 (3.0s)")
	assert.Contains(t, out, "FAIL c.MOV: ffmpeg exited with code 1")
}

func TestPrintSummary(t *testing.T) {
	snap := domain.BatchSnapshot{
		Total: 3,
		Completed: []domain.JobSnapshot{
			{Status: domain.JobStatusCompleted},
			{Status: domain.JobStatusFailed},
			{Status: domain.JobStatusCancelled},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, snap, "Conversion cancelled")

	assert.Contains(t, buf.String(), "Conversion cancelled")
	assert.Contains(t, buf.String(), "1 converted, 1 failed, 1 cancelled of 3")
}
