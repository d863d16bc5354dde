package service

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/batchenc/internal/domain"
)

const (
	DefaultSampleInterval   = 500 * time.Millisecond
	DefaultThrottleInterval = time.Second

	speedHistorySize = 20
)

// ProgressAggregator turns the bursty per-line samples coming from every
// running encoder into bounded-rate tracker updates.
//
// Each job's samples are merged with forward-fill. A shared ticker then
// delivers at most one merged update per job per sample interval. Separately,
// every throughput sample arms a trailing throttle that fires onThroughput at
// most once per throttle interval.
type ProgressAggregator struct {
	sampleInterval   time.Duration
	throttleInterval time.Duration

	mu      sync.Mutex
	streams map[string]*progressStream
	history []float64

	throttleMu sync.Mutex
	throttle   *time.Timer

	onDelivered  func(*domain.Tracker)
	onThroughput func()
}

type progressStream struct {
	tracker *domain.Tracker
	merged  domain.Sample
	dirty   bool
}

func NewProgressAggregator(sampleInterval, throttleInterval time.Duration, onDelivered func(*domain.Tracker), onThroughput func()) *ProgressAggregator {
	if sampleInterval <= 0 {
		sampleInterval = DefaultSampleInterval
	}
	if throttleInterval <= 0 {
		throttleInterval = DefaultThrottleInterval
	}
	return &ProgressAggregator{
		sampleInterval:   sampleInterval,
		throttleInterval: throttleInterval,
		streams:          make(map[string]*progressStream),
		onDelivered:      onDelivered,
		onThroughput:     onThroughput,
	}
}

// Submit records a raw sample for tr. It never blocks on delivery.
func (a *ProgressAggregator) Submit(tr *domain.Tracker, s domain.Sample) {
	a.mu.Lock()
	st, ok := a.streams[tr.ID()]
	if !ok {
		st = &progressStream{tracker: tr}
		a.streams[tr.ID()] = st
	}
	st.merged = st.merged.Merge(s)
	st.dirty = true
	a.mu.Unlock()

	if s.HasSpeed {
		a.armThrottle()
	}
}

// Run delivers merged samples every sample interval until ctx is done.
func (a *ProgressAggregator) Run(ctx context.Context) {
	ticker := time.NewTicker(a.sampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.flush()
		}
	}
}

func (a *ProgressAggregator) flush() {
	var delivered []*domain.Tracker

	a.mu.Lock()
	for _, st := range a.streams {
		if !st.dirty {
			continue
		}
		st.dirty = false
		if st.merged.Empty() {
			continue
		}
		if !st.tracker.UpdateProgress(st.merged) {
			continue
		}
		if st.merged.HasSpeed {
			a.appendSpeedLocked(st.merged.Speed)
		}
		delivered = append(delivered, st.tracker)
	}
	a.mu.Unlock()

	if a.onDelivered == nil {
		return
	}
	for _, tr := range delivered {
		a.onDelivered(tr)
	}
}

func (a *ProgressAggregator) appendSpeedLocked(speed float64) {
	a.history = append(a.history, speed)
	if over := len(a.history) - speedHistorySize; over > 0 {
		a.history = append(a.history[:0], a.history[over:]...)
	}
}

func (a *ProgressAggregator) armThrottle() {
	a.throttleMu.Lock()
	defer a.throttleMu.Unlock()

	if a.throttle != nil {
		return
	}
	a.throttle = time.AfterFunc(a.throttleInterval, func() {
		a.throttleMu.Lock()
		a.throttle = nil
		a.throttleMu.Unlock()

		if a.onThroughput != nil {
			a.onThroughput()
		}
	})
}

// SpeedHistory returns a copy of the most recent delivered throughput values,
// oldest first.
func (a *ProgressAggregator) SpeedHistory() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]float64(nil), a.history...)
}

// Forget drops any undelivered sample for a job that has finished.
func (a *ProgressAggregator) Forget(trackerID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.streams, trackerID)
}

// Reset clears all per-job state and the throughput history, and cancels a
// pending throttle emission.
func (a *ProgressAggregator) Reset() {
	a.mu.Lock()
	a.streams = make(map[string]*progressStream)
	a.history = nil
	a.mu.Unlock()

	a.throttleMu.Lock()
	if a.throttle != nil {
		a.throttle.Stop()
		a.throttle = nil
	}
	a.throttleMu.Unlock()
}
