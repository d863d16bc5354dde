package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/infrastructure/logger"
	"github.com/bnema/batchenc/internal/port"
)

const DefaultConcurrency = 3

// BatchRequest is one batch of files to convert.
type BatchRequest struct {
	Files       []string
	Plan        domain.OutputPlan
	Hardware    domain.Hardware
	Concurrency int
}

// BatchOrchestrator runs a batch of conversions through a bounded worker pool
// and keeps the aggregate state callers poll or subscribe to.
type BatchOrchestrator struct {
	encoder  port.Encoder
	prober   port.Prober
	eventBus EventPublisher
	agg      *ProgressAggregator

	mu        sync.RWMutex
	id        string
	running   bool
	total     int
	pending   []*domain.Tracker
	active    []*domain.Tracker
	completed []*domain.Tracker
	overall   float64
	status    string
	avgSpeed  string
	eta       time.Duration
	startedAt time.Time
	conflicts map[*domain.Tracker]string
}

type OrchestratorOption func(*BatchOrchestrator)

// WithIntervals overrides the progress sampling and throughput throttle
// windows.
func WithIntervals(sample, throttle time.Duration) OrchestratorOption {
	return func(o *BatchOrchestrator) {
		o.agg = NewProgressAggregator(sample, throttle, o.progressDelivered, o.recomputeEstimates)
	}
}

func NewBatchOrchestrator(encoder port.Encoder, prober port.Prober, eventBus EventPublisher, opts ...OrchestratorOption) *BatchOrchestrator {
	o := &BatchOrchestrator{
		encoder:  encoder,
		prober:   prober,
		eventBus: eventBus,
	}
	o.agg = NewProgressAggregator(DefaultSampleInterval, DefaultThrottleInterval, o.progressDelivered, o.recomputeEstimates)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run converts every file in req and blocks until each job is terminal. When
// ctx is cancelled the remaining jobs are cancelled, Run still waits for all
// workers, and the returned error wraps domain.ErrCancelled.
func (o *BatchOrchestrator) Run(ctx context.Context, req BatchRequest) (domain.BatchSnapshot, error) {
	if len(req.Files) == 0 {
		return domain.BatchSnapshot{}, domain.ErrNoFiles
	}

	trackers, err := o.begin(req)
	if err != nil {
		return domain.BatchSnapshot{}, err
	}
	batchID := o.batchID()
	logger.Info.Printf("batch %s: converting %d file(s), concurrency=%d", batchID, len(trackers), o.concurrency(req))
	o.publish(Event{Type: "batch", BatchID: batchID, Status: "running"})

	aggCtx, stopAgg := context.WithCancel(context.Background())
	aggDone := make(chan struct{})
	go func() {
		defer close(aggDone)
		o.agg.Run(aggCtx)
	}()

	g := new(errgroup.Group)
	g.SetLimit(o.concurrency(req))
	for _, tr := range trackers {
		g.Go(func() error {
			o.processFile(ctx, tr, req.Hardware, req.Plan.Format)
			return nil
		})
	}
	_ = g.Wait()

	stopAgg()
	<-aggDone

	snap := o.end()
	cancelled := ctx.Err() != nil
	status := "finished"
	if cancelled {
		status = "cancelled"
	}
	logger.Info.Printf("batch %s %s: %d completed, %d failed, %d cancelled", batchID, status,
		snap.CountStatus(domain.JobStatusCompleted),
		snap.CountStatus(domain.JobStatusFailed),
		snap.CountStatus(domain.JobStatusCancelled))
	o.publish(Event{Type: "batch", BatchID: batchID, Status: status})

	if cancelled {
		return snap, fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
	}
	return snap, nil
}

func (o *BatchOrchestrator) concurrency(req BatchRequest) int {
	if req.Concurrency > 0 {
		return req.Concurrency
	}
	return DefaultConcurrency
}

func (o *BatchOrchestrator) begin(req BatchRequest) ([]*domain.Tracker, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return nil, domain.ErrBatchRunning
	}
	o.resetLocked()
	o.agg.Reset()

	trackers := make([]*domain.Tracker, 0, len(req.Files))
	for _, f := range req.Files {
		trackers = append(trackers, domain.NewTracker(f, req.Plan.OutputPath(f)))
	}

	o.id = uuid.NewString()
	o.conflicts = outputConflicts(trackers)
	o.running = true
	o.total = len(trackers)
	o.pending = slices.Clone(trackers)
	o.startedAt = time.Now()
	return trackers, nil
}

func (o *BatchOrchestrator) end() domain.BatchSnapshot {
	o.mu.Lock()
	o.running = false
	o.status = ""
	o.eta = 0
	o.mu.Unlock()

	o.agg.Reset()
	return o.Snapshot()
}

func (o *BatchOrchestrator) processFile(ctx context.Context, tr *domain.Tracker, hw domain.Hardware, format domain.Format) {
	o.activate(tr)
	defer o.complete(tr)

	if ctx.Err() != nil {
		o.cancelJob(tr, false)
		return
	}

	if msg, ok := o.conflict(tr); ok {
		_ = tr.Start()
		_ = tr.Fail(msg)
		return
	}

	if d, ok := o.prober.Duration(ctx, tr.InputPath()); ok {
		tr.SetDuration(d)
	}

	prepErr := prepareOutput(tr.OutputPath())

	if err := tr.Start(); err != nil {
		logger.Error.Printf("start %s: %v", logger.SanitizeForLog(tr.Name()), err)
		return
	}
	o.publishJob(tr)

	if prepErr != nil {
		_ = tr.Fail(prepErr.Error())
		return
	}
	if ctx.Err() != nil {
		_ = tr.Cancel()
		return
	}

	code, err := o.encoder.Encode(ctx, port.EncodeRequest{
		InputPath:  tr.InputPath(),
		OutputPath: tr.OutputPath(),
		Format:     format,
		Hardware:   hw,
	}, func(s domain.Sample) {
		o.agg.Submit(tr, s)
	})

	switch {
	case ctx.Err() != nil || errors.Is(err, domain.ErrCancelled):
		o.cancelJob(tr, true)
	case err != nil:
		_ = tr.Fail(err.Error())
	case code != 0:
		_ = tr.Fail(fmt.Sprintf("ffmpeg exited with code %d", code))
	default:
		_ = tr.Complete()
	}
}

// outputConflicts finds jobs whose output would clobber an input of the batch
// (their own included) or an output claimed by an earlier job. Paths are
// compared case-insensitively so the check also holds on case-insensitive
// filesystems.
func outputConflicts(trackers []*domain.Tracker) map[*domain.Tracker]string {
	pathKey := func(p string) string { return strings.ToLower(filepath.Clean(p)) }

	inputs := make(map[string]bool, len(trackers))
	for _, tr := range trackers {
		inputs[pathKey(tr.InputPath())] = true
	}

	conflicts := make(map[*domain.Tracker]string)
	claimed := make(map[string]*domain.Tracker, len(trackers))
	for _, tr := range trackers {
		key := pathKey(tr.OutputPath())
		if inputs[key] {
			conflicts[tr] = "output path " + tr.OutputPath() + " would overwrite an input file"
			continue
		}
		if first, ok := claimed[key]; ok {
			conflicts[tr] = "output path " + tr.OutputPath() + " is already used by " + first.Name()
			continue
		}
		claimed[key] = tr
	}
	return conflicts
}

func (o *BatchOrchestrator) conflict(tr *domain.Tracker) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	msg, ok := o.conflicts[tr]
	return msg, ok
}

// prepareOutput removes a stale output file and makes sure the destination
// directory exists.
func prepareOutput(outputPath string) error {
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove existing output: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// cancelJob moves tr to Cancelled. removeOutput is set once the encoder may
// have written a partial file.
func (o *BatchOrchestrator) cancelJob(tr *domain.Tracker, removeOutput bool) {
	if tr.Status() == domain.JobStatusPending {
		_ = tr.Start()
	}
	_ = tr.Cancel()

	if !removeOutput {
		return
	}
	if err := os.Remove(tr.OutputPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn.Printf("remove partial output %s: %v", logger.SanitizeForLog(tr.OutputPath()), err)
	}
}

func (o *BatchOrchestrator) activate(tr *domain.Tracker) {
	o.mu.Lock()
	o.pending = slices.DeleteFunc(o.pending, func(p *domain.Tracker) bool { return p == tr })
	o.active = append(o.active, tr)
	o.status = domain.StatusLine(o.active)
	o.mu.Unlock()
}

func (o *BatchOrchestrator) complete(tr *domain.Tracker) {
	o.agg.Forget(tr.ID())

	o.mu.Lock()
	o.active = slices.DeleteFunc(o.active, func(a *domain.Tracker) bool { return a == tr })
	o.completed = append(o.completed, tr)
	if o.total > 0 {
		o.overall = float64(len(o.completed)) / float64(o.total) * 100
	}
	o.status = domain.StatusLine(o.active)
	o.mu.Unlock()

	switch tr.Status() {
	case domain.JobStatusFailed:
		logger.Warn.Printf("%s failed: %s", logger.SanitizeForLog(tr.Name()), logger.SanitizeForLog(tr.ErrorMessage()))
	default:
		logger.Info.Printf("%s %s in %s", logger.SanitizeForLog(tr.Name()), tr.Status(), tr.Elapsed().Round(time.Millisecond))
	}
	o.publishJob(tr)
}

func (o *BatchOrchestrator) progressDelivered(tr *domain.Tracker) {
	o.publish(Event{Type: "progress", BatchID: o.batchID(), JobID: tr.ID(), Status: string(tr.Status())})
}

// recomputeEstimates refreshes the average speed and batch ETA.
func (o *BatchOrchestrator) recomputeEstimates() {
	history := o.agg.SpeedHistory()

	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return
	}
	in := ETAInput{
		SpeedHistory: history,
		ActiveCount:  len(o.active),
		Completed:    len(o.completed),
		Total:        o.total,
		Elapsed:      time.Since(o.startedAt),
	}
	for _, tr := range o.active {
		if eta, ok := tr.ETA(); ok {
			in.ActiveETAs = append(in.ActiveETAs, eta)
		}
	}
	res := EstimateETA(in)
	o.avgSpeed = res.AverageSpeed
	o.eta = res.ETA
	id := o.id
	o.mu.Unlock()

	o.publish(Event{Type: "stats", BatchID: id})
}

// Snapshot returns a copy of the current batch state.
func (o *BatchOrchestrator) Snapshot() domain.BatchSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return domain.BatchSnapshot{
		ID:              o.id,
		Running:         o.running,
		Total:           o.total,
		Pending:         snapshotAll(o.pending),
		Active:          snapshotAll(o.active),
		Completed:       snapshotAll(o.completed),
		OverallProgress: o.overall,
		Status:          o.status,
		AverageSpeed:    o.avgSpeed,
		ETA:             domain.FormatETA(o.eta),
		StartedAt:       o.startedAt,
	}
}

func snapshotAll(trackers []*domain.Tracker) []domain.JobSnapshot {
	out := make([]domain.JobSnapshot, 0, len(trackers))
	for _, tr := range trackers {
		out = append(out, tr.Snapshot())
	}
	return out
}

// Reset clears all state left by the previous batch.
func (o *BatchOrchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return domain.ErrBatchRunning
	}
	o.resetLocked()
	o.agg.Reset()
	return nil
}

func (o *BatchOrchestrator) resetLocked() {
	o.id = ""
	o.total = 0
	o.pending = nil
	o.active = nil
	o.completed = nil
	o.overall = 0
	o.status = ""
	o.avgSpeed = ""
	o.eta = 0
	o.startedAt = time.Time{}
	o.conflicts = nil
}

func (o *BatchOrchestrator) Running() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.running
}

func (o *BatchOrchestrator) batchID() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.id
}

func (o *BatchOrchestrator) publishJob(tr *domain.Tracker) {
	o.publish(Event{Type: "job", BatchID: o.batchID(), JobID: tr.ID(), Status: string(tr.Status())})
}

func (o *BatchOrchestrator) publish(event Event) {
	if o.eventBus == nil {
		return
	}
	o.eventBus.Publish(event.BatchID, event)
}
