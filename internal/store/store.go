package store

import (
	"context"
	"time"

	"github.com/nhle/todoview/internal/model"
)

// FetchRecordFilter controls filtering and pagination for journal queries.
// Records are always returned most recent first.
type FetchRecordFilter struct {
	Outcome *string
	Since   *time.Time
	Limit   int
	Offset  int
}

// Store defines the persistence interface for the fetch journal.
type Store interface {
	RecordFetch(ctx context.Context, rec model.FetchRecord) error
	GetFetchRecords(ctx context.Context, filter FetchRecordFilter) ([]model.FetchRecord, error)
	CountFetchRecords(ctx context.Context, filter FetchRecordFilter) (int, error)
	PruneFetchRecords(ctx context.Context, keep int) (int64, error)
	Close() error
}
