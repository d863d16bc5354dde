package port

import "github.com/bnema/batchenc/internal/domain"

type HistoryStore interface {
	SaveBatch(rec *domain.BatchRecord) error
	GetBatch(id string) (*domain.BatchRecord, error)
	ListBatches(limit int) ([]*domain.BatchRecord, error)
}
