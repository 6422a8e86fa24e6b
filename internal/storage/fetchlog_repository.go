package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cleanerboard/backend/internal/storage/models"
)

// FetchLogRepository provides data access for calendar fetch outcomes.
type FetchLogRepository struct {
	BaseRepository
}

// NewFetchLogRepository creates a new fetch log repository.
func NewFetchLogRepository(db *DB) *FetchLogRepository {
	return &FetchLogRepository{BaseRepository: NewBaseRepository(db)}
}

// Record inserts a fetch outcome for a flat.
func (r *FetchLogRepository) Record(ctx context.Context, entry *models.FetchLogEntry) error {
	entry.ID = GenerateID()
	if entry.FetchedAt.IsZero() {
		entry.FetchedAt = r.Now()
	}

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO fetch_log (id, flat_id, status, error, events_found, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.FlatID, entry.Status, entry.Error, entry.EventsFound, entry.FetchedAt)

	if err != nil {
		return fmt.Errorf("inserting fetch log entry: %w", err)
	}
	return nil
}

// Latest returns the most recent fetch outcome for a flat, or nil when
// the flat has never been fetched.
func (r *FetchLogRepository) Latest(ctx context.Context, flatID string) (*models.FetchLogEntry, error) {
	entry := &models.FetchLogEntry{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, flat_id, status, error, events_found, fetched_at
		FROM fetch_log WHERE flat_id = ?
		ORDER BY fetched_at DESC LIMIT 1
	`, flatID).Scan(
		&entry.ID, &entry.FlatID, &entry.Status, &entry.Error,
		&entry.EventsFound, &entry.FetchedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying fetch log: %w", err)
	}

	return entry, nil
}

// Prune deletes entries older than the given number of days, keeping
// the log bounded.
func (r *FetchLogRepository) Prune(ctx context.Context, olderThanDays int) (int64, error) {
	result, err := r.DB().ExecContext(ctx, `
		DELETE FROM fetch_log
		WHERE fetched_at < datetime('now', ?)
	`, fmt.Sprintf("-%d days", olderThanDays))
	if err != nil {
		return 0, fmt.Errorf("pruning fetch log: %w", err)
	}

	n, _ := result.RowsAffected()
	return n, nil
}
