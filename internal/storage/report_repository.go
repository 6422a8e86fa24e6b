package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cleanerboard/backend/internal/storage/models"
)

// ReportRepository provides data access for cleaner completion reports.
type ReportRepository struct {
	BaseRepository
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{BaseRepository: NewBaseRepository(db)}
}

// Create inserts a new completion report.
func (r *ReportRepository) Create(ctx context.Context, report *models.CompletionReport) error {
	report.ID = GenerateID()
	report.CreatedAt = r.Now()
	if report.Status == "" {
		report.Status = models.ReportStatusDone
	}

	_, err := r.DB().ExecContext(ctx, `
		INSERT INTO completion_reports (id, flat_id, report_date, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.ID, report.FlatID, report.ReportDate, report.Status, report.Notes, report.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

// GetByID retrieves a report by its ID, or nil when absent.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.CompletionReport, error) {
	report := &models.CompletionReport{}

	err := r.DB().QueryRowContext(ctx, `
		SELECT id, flat_id, report_date, status, notes, created_at
		FROM completion_reports WHERE id = ?
	`, id).Scan(
		&report.ID, &report.FlatID, &report.ReportDate,
		&report.Status, &report.Notes, &report.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying report: %w", err)
	}

	return report, nil
}

// List retrieves reports, optionally filtered by flat and date range
// (YYYY-MM-DD, inclusive). Empty filter values are ignored.
func (r *ReportRepository) List(ctx context.Context, flatID, from, to string) ([]models.CompletionReport, error) {
	query := `
		SELECT id, flat_id, report_date, status, notes, created_at
		FROM completion_reports WHERE 1=1`
	var args []any

	if flatID != "" {
		query += " AND flat_id = ?"
		args = append(args, flatID)
	}
	if from != "" {
		query += " AND report_date >= ?"
		args = append(args, from)
	}
	if to != "" {
		query += " AND report_date <= ?"
		args = append(args, to)
	}
	query += " ORDER BY report_date DESC, created_at DESC"

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []models.CompletionReport
	for rows.Next() {
		var report models.CompletionReport
		if err := rows.Scan(
			&report.ID, &report.FlatID, &report.ReportDate,
			&report.Status, &report.Notes, &report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// CountSince returns the number of reports created in the last n days.
func (r *ReportRepository) CountSince(ctx context.Context, days int) (int, error) {
	var count int
	err := r.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM completion_reports
		WHERE created_at >= datetime('now', ?)
	`, fmt.Sprintf("-%d days", days)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting reports: %w", err)
	}
	return count, nil
}
