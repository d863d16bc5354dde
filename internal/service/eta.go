package service

import (
	"time"

	"github.com/bnema/batchenc/internal/domain"
)

// ETAInput is everything the batch estimate is derived from.
type ETAInput struct {
	SpeedHistory []float64
	ActiveCount  int
	// ActiveETAs holds the per-job estimates of active jobs that have one.
	ActiveETAs []time.Duration
	Completed  int
	Total      int
	Elapsed    time.Duration
}

type ETAResult struct {
	AverageSpeed string
	ETA          time.Duration
}

// EstimateETA computes the display speed and the batch-wide remaining time.
//
// With per-job estimates available, the batch ETA is the longest of them plus
// the average time per finished file for every file not yet started. Without
// them it falls back to the overall completion rate. If neither applies the
// ETA is zero (unknown).
func EstimateETA(in ETAInput) ETAResult {
	var res ETAResult

	if len(in.SpeedHistory) > 0 {
		var sum float64
		for _, s := range in.SpeedHistory {
			sum += s
		}
		res.AverageSpeed = domain.FormatAverageSpeed(sum/float64(len(in.SpeedHistory)), in.ActiveCount)
	}

	remaining := in.Total - in.Completed

	switch {
	case len(in.ActiveETAs) > 0:
		var longest time.Duration
		for _, eta := range in.ActiveETAs {
			longest = max(longest, eta)
		}
		eta := longest
		unscheduled := in.Total - in.Completed - in.ActiveCount
		if unscheduled > 0 && in.Completed > 0 {
			perFile := in.Elapsed / time.Duration(in.Completed)
			eta += perFile * time.Duration(unscheduled)
		}
		res.ETA = eta

	case in.Completed > 0 && in.ActiveCount > 0 && remaining > 0 && in.Elapsed > 0:
		rate := float64(in.Completed) / in.Elapsed.Seconds()
		res.ETA = time.Duration(float64(remaining) / rate * float64(time.Second))
	}

	return res
}
