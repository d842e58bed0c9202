package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/todoview/internal/model"
)

// RecordFetch inserts a journal row. An empty ID is filled with a new UUID.
func (s *SQLiteStore) RecordFetch(ctx context.Context, rec model.FetchRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO fetch_records (
			id, activation_id, endpoint, outcome,
			status_code, item_count, error,
			started_at, finished_at
		) VALUES (
			:id, :activation_id, :endpoint, :outcome,
			:status_code, :item_count, :error,
			:started_at, :finished_at
		)`

	rec.StartedAt = rec.StartedAt.UTC()
	rec.FinishedAt = rec.FinishedAt.UTC()

	if _, err := s.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("recording fetch %s: %w", rec.ActivationID, err)
	}
	return nil
}

// buildFetchRecordWhere returns the WHERE clause and args for filter.
func buildFetchRecordWhere(filter FetchRecordFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Outcome != nil {
		conditions = append(conditions, "outcome = ?")
		args = append(args, *filter.Outcome)
	}
	if filter.Since != nil {
		conditions = append(conditions, "finished_at >= ?")
		args = append(args, filter.Since.UTC())
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// GetFetchRecords returns journal rows matching filter, most recent first.
func (s *SQLiteStore) GetFetchRecords(
	ctx context.Context,
	filter FetchRecordFilter,
) ([]model.FetchRecord, error) {
	where, args := buildFetchRecordWhere(filter)

	query := "SELECT * FROM fetch_records" + where +
		" ORDER BY finished_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	var records []model.FetchRecord
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("querying fetch records: %w", err)
	}
	return records, nil
}

// CountFetchRecords returns how many rows match filter, ignoring pagination.
func (s *SQLiteStore) CountFetchRecords(
	ctx context.Context,
	filter FetchRecordFilter,
) (int, error) {
	where, args := buildFetchRecordWhere(filter)

	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM fetch_records"+where, args...); err != nil {
		return 0, fmt.Errorf("counting fetch records: %w", err)
	}
	return n, nil
}

// PruneFetchRecords deletes all but the keep most recent rows and returns
// how many were removed. keep <= 0 leaves the journal untouched.
func (s *SQLiteStore) PruneFetchRecords(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM fetch_records
		WHERE id NOT IN (
			SELECT id FROM fetch_records
			ORDER BY finished_at DESC, rowid DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning fetch records: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning fetch records: %w", err)
	}
	return n, nil
}
