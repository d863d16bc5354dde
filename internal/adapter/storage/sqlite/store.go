package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/bnema/batchenc/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/bnema/batchenc/internal/domain"
	"github.com/bnema/batchenc/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

const dbFileName = "batchenc.db"

type Store struct {
	db      *sql.DB
	queries *sqlitedb.Queries
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

// NewStore opens (creating if needed) the history database in dataDir and
// applies pending migrations.
func NewStore(dataDir string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		db:      db,
		queries: sqlitedb.New(db),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBatch writes a batch and its jobs in one transaction.
func (s *Store) SaveBatch(rec *domain.BatchRecord) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.queries.WithTx(tx)
	err = q.InsertBatch(ctx, sqlitedb.InsertBatchParams{
		ID:         rec.ID,
		StartedAt:  rec.StartedAt.UTC(),
		FinishedAt: rec.FinishedAt.UTC(),
		Total:      int64(rec.Total),
		Completed:  int64(rec.Completed),
		Failed:     int64(rec.Failed),
		Cancelled:  int64(rec.Cancelled),
		Summary:    rec.Summary,
	})
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for i, j := range rec.Jobs {
		err := q.InsertBatchJob(ctx, sqlitedb.InsertBatchJobParams{
			BatchID:        rec.ID,
			Position:       int64(i),
			InputPath:      j.InputPath,
			OutputPath:     j.OutputPath,
			Status:         string(j.Status),
			ErrorMessage:   j.ErrorMessage,
			ElapsedSeconds: j.ElapsedSeconds,
		})
		if err != nil {
			return fmt.Errorf("insert job %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetBatch(id string) (*domain.BatchRecord, error) {
	ctx := context.Background()
	row, err := s.queries.GetBatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rec := batchFromRow(row)

	jobs, err := s.queries.ListBatchJobs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	rec.Jobs = jobListFromRows(jobs)

	return rec, nil
}

// ListBatches returns the most recently finished batches without their jobs.
func (s *Store) ListBatches(limit int) ([]*domain.BatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.queries.ListBatches(context.Background(), int64(limit))
	if err != nil {
		return nil, err
	}
	result := make([]*domain.BatchRecord, len(rows))
	for i, row := range rows {
		result[i] = batchFromRow(row)
	}
	return result, nil
}

func batchFromRow(row sqlitedb.Batch) *domain.BatchRecord {
	return &domain.BatchRecord{
		ID:         row.ID,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
		Total:      int(row.Total),
		Completed:  int(row.Completed),
		Failed:     int(row.Failed),
		Cancelled:  int(row.Cancelled),
		Summary:    row.Summary,
	}
}

func jobListFromRows(rows []sqlitedb.BatchJob) []domain.JobRecord {
	result := make([]domain.JobRecord, len(rows))
	for i, row := range rows {
		result[i] = domain.JobRecord{
			InputPath:      row.InputPath,
			OutputPath:     row.OutputPath,
			Status:         domain.JobStatus(row.Status),
			ErrorMessage:   row.ErrorMessage,
			ElapsedSeconds: row.ElapsedSeconds,
		}
	}
	return result
}

var _ port.HistoryStore = (*Store)(nil)
