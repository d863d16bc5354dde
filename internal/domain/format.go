package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatETA renders a remaining-time estimate as H:MM:SS (one hour or more)
// or MM:SS. Zero and negative durations are unknown and render as "".
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatAverageSpeed renders the mean throughput. The file count is only
// mentioned when several jobs are running at once.
func FormatAverageSpeed(avg float64, activeJobs int) string {
	if activeJobs > 1 {
		return fmt.Sprintf("%.1fx (average, %d files)", avg, activeJobs)
	}
	return fmt.Sprintf("%.1fx", avg)
}

// ParseDurationSeconds parses the prober's single "seconds" value. Empty,
// "N/A", unparsable and non-positive values all mean unknown.
func ParseDurationSeconds(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs <= 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}
