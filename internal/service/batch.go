package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/infrastructure/logger"
	"github.com/bnema/batchenc/internal/port"
)

// StartRequest is a batch as a caller describes it: either explicit files or
// a directory plus filter to discover them in.
type StartRequest struct {
	Files       []string        `json:"files,omitempty"`
	InputDir    string          `json:"input_dir,omitempty"`
	Filter      string          `json:"filter,omitempty"`
	Recursive   bool            `json:"recursive,omitempty"`
	OutputDir   string          `json:"output_dir,omitempty"`
	SameDir     bool            `json:"same_dir,omitempty"`
	Format      domain.Format   `json:"format,omitempty"`
	Hardware    domain.Hardware `json:"hardware,omitempty"`
	Concurrency int             `json:"concurrency,omitempty"`
}

// BatchService is the caller-facing entry point: it resolves inputs, owns the
// cancellation of the running batch and records finished batches.
type BatchService struct {
	orch    *BatchOrchestrator
	history port.HistoryStore

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewBatchService(orch *BatchOrchestrator, history port.HistoryStore) *BatchService {
	return &BatchService{
		orch:    orch,
		history: history,
	}
}

func (s *BatchService) resolve(req StartRequest) (BatchRequest, error) {
	files := req.Files
	if len(files) == 0 {
		if req.InputDir == "" {
			return BatchRequest{}, domain.ErrInputDirNotFound
		}
		found, err := DiscoverInputs(req.InputDir, req.Filter, req.Recursive)
		if err != nil {
			return BatchRequest{}, err
		}
		files = found
	}

	format := req.Format
	if format == "" {
		format = domain.FormatMP4
	}
	hw := req.Hardware
	if hw == "" {
		hw = domain.HardwareCPU
	}

	return BatchRequest{
		Files: files,
		Plan: domain.OutputPlan{
			OutputDir: req.OutputDir,
			SameDir:   req.SameDir || req.OutputDir == "",
			Format:    format,
		},
		Hardware:    hw,
		Concurrency: req.Concurrency,
	}, nil
}

// Run converts a batch synchronously and records it. Input errors are
// returned before any job starts.
func (s *BatchService) Run(ctx context.Context, req StartRequest) (domain.BatchSnapshot, string, error) {
	batch, err := s.resolve(req)
	if err != nil {
		return domain.BatchSnapshot{}, "", err
	}

	ctx, done, err := s.claim(ctx)
	if err != nil {
		return domain.BatchSnapshot{}, "", err
	}
	defer done()

	return s.execute(ctx, batch)
}

// Start launches a batch in the background. It returns once the batch has
// been accepted.
func (s *BatchService) Start(req StartRequest) error {
	batch, err := s.resolve(req)
	if err != nil {
		return err
	}

	ctx, done, err := s.claim(context.Background())
	if err != nil {
		return err
	}

	go func() {
		defer done()
		_, _, _ = s.execute(ctx, batch)
	}()
	return nil
}

func (s *BatchService) claim(parent context.Context) (context.Context, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return nil, nil, domain.ErrBatchRunning
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done

	release := func() {
		cancel()
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		close(done)
	}
	return ctx, release, nil
}

func (s *BatchService) execute(ctx context.Context, batch BatchRequest) (domain.BatchSnapshot, string, error) {
	snap, err := s.orch.Run(ctx, batch)
	if err != nil && !errors.Is(err, domain.ErrCancelled) {
		logger.Error.Printf("batch failed to start: %v", err)
		return snap, "", err
	}

	summary := domain.Summarize(snap, errors.Is(err, domain.ErrCancelled))
	logger.Info.Printf("batch %s: %s", snap.ID, summary)

	if s.history != nil {
		rec := domain.NewBatchRecord(snap, time.Now(), summary)
		if saveErr := s.history.SaveBatch(rec); saveErr != nil {
			logger.Error.Printf("failed to record batch %s: %v", snap.ID, saveErr)
		}
	}
	return snap, summary, err
}

// Cancel signals the running batch. It does not wait for workers to stop.
func (s *BatchService) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return domain.ErrNoBatchRunning
	}
	s.cancel()
	return nil
}

// Wait blocks until the current batch, if any, has finished or ctx is done.
func (s *BatchService) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *BatchService) Snapshot() domain.BatchSnapshot {
	return s.orch.Snapshot()
}

// Reset clears the last batch's state from the dashboard.
func (s *BatchService) Reset() error {
	return s.orch.Reset()
}

func (s *BatchService) History(limit int) ([]*domain.BatchRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListBatches(limit)
}

func (s *BatchService) Batch(id string) (*domain.BatchRecord, error) {
	if s.history == nil {
		return nil, domain.ErrNotFound
	}
	return s.history.GetBatch(id)
}
