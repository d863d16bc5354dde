// Package templates holds the HTML views. The .templ sources are compiled
// with `templ generate`; this file has the formatting helpers they call.
package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/batchenc/internal/domain"
)

func percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func overallValue(snap domain.BatchSnapshot) string {
	return fmt.Sprintf("%.0f", snap.OverallProgress)
}

func doneText(snap domain.BatchSnapshot) string {
	return fmt.Sprintf("%d of %d files done", len(snap.Completed), snap.Total)
}

// jobProgress falls back to the encoded position when the duration is
// unknown.
func jobProgress(j domain.JobSnapshot) string {
	if j.DurationSeconds > 0 {
		return percent(j.Progress)
	}
	return formatElapsed(j.PositionSeconds)
}

func jobSpeed(j domain.JobSnapshot) string {
	if j.Speed <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2fx", j.Speed)
}

func pendingNames(jobs []domain.JobSnapshot) string {
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name)
	}
	return strings.Join(names, ", ")
}

func formatElapsed(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	if d <= 0 {
		return "-"
	}
	return d.String()
}

func finishedAt(rec *domain.BatchRecord) string {
	return rec.FinishedAt.Local().Format("2006-01-02 15:04")
}
