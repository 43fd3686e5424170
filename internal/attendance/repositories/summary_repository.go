package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

// SummaryRepository handles database operations for daily attendance
// summaries. Summaries are derived data keyed by date.
type SummaryRepository struct {
	db *pgxpool.Pool
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{
		db: db,
	}
}

// Upsert writes the summary row for its date, inserting or overwriting.
// Accepts a Querier so the recompute transaction owns the write.
func (r *SummaryRepository) Upsert(ctx context.Context, q Querier, summary *models.AttendanceSummary) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO attendance_summaries (summary_date, total_students, present_count, absent_count,
			late_count, excused_count, attendance_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (summary_date) DO UPDATE
		SET total_students = EXCLUDED.total_students,
			present_count = EXCLUDED.present_count,
			absent_count = EXCLUDED.absent_count,
			late_count = EXCLUDED.late_count,
			excused_count = EXCLUDED.excused_count,
			attendance_percentage = EXCLUDED.attendance_percentage,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		summary.SummaryDate, summary.TotalStudents, summary.PresentCount, summary.AbsentCount,
		summary.LateCount, summary.ExcusedCount, summary.AttendancePercentage,
	).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting attendance summary: %w", err)
	}

	return nil
}

// GetByDate retrieves the summary for a calendar date
func (r *SummaryRepository) GetByDate(ctx context.Context, date time.Time) (*models.AttendanceSummary, error) {
	query := `
		SELECT id, summary_date, total_students, present_count, absent_count, late_count,
			excused_count, attendance_percentage, created_at, updated_at
		FROM attendance_summaries
		WHERE summary_date = $1
	`

	var s models.AttendanceSummary
	err := r.db.QueryRow(ctx, query, date).Scan(
		&s.ID,
		&s.SummaryDate,
		&s.TotalStudents,
		&s.PresentCount,
		&s.AbsentCount,
		&s.LateCount,
		&s.ExcusedCount,
		&s.AttendancePercentage,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no summary for this date")
		}
		return nil, fmt.Errorf("error retrieving attendance summary: %w", err)
	}

	return &s, nil
}

// ListRange retrieves summaries between two dates inclusive, oldest first
func (r *SummaryRepository) ListRange(ctx context.Context, from, to time.Time) ([]*models.AttendanceSummary, error) {
	query := `
		SELECT id, summary_date, total_students, present_count, absent_count, late_count,
			excused_count, attendance_percentage, created_at, updated_at
		FROM attendance_summaries
		WHERE summary_date BETWEEN $1 AND $2
		ORDER BY summary_date ASC
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.AttendanceSummary
	for rows.Next() {
		var s models.AttendanceSummary
		if err := rows.Scan(
			&s.ID,
			&s.SummaryDate,
			&s.TotalStudents,
			&s.PresentCount,
			&s.AbsentCount,
			&s.LateCount,
			&s.ExcusedCount,
			&s.AttendancePercentage,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
