package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/dberrors"
)

// AttendanceRecordRepository handles database operations for attendance
// records. Mutating methods accept a Querier because the caller wraps them in
// a transaction together with the summary recompute for the affected date.
type AttendanceRecordRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRecordRepository creates a new attendance record repository
func NewAttendanceRecordRepository(db *pgxpool.Pool) *AttendanceRecordRepository {
	return &AttendanceRecordRepository{
		db: db,
	}
}

const recordColumns = `id, student_id, attendance_date, status, check_in_time, notes, recorded_by,
		created_at, updated_at`

func scanRecord(row pgx.Row) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.AttendanceDate,
		&rec.Status,
		&rec.CheckInTime,
		&rec.Notes,
		&rec.RecordedBy,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new attendance record. The (student, date) pair is unique;
// a second record for the same day comes back as a conflict. A reference to a
// missing student or staff user comes back as a referential error.
func (r *AttendanceRecordRepository) Create(ctx context.Context, q Querier, record *models.AttendanceRecord) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO attendance_records (student_id, attendance_date, status, check_in_time, notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.StudentID, record.AttendanceDate, record.Status, record.CheckInTime,
		record.Notes, record.RecordedBy,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendance_records_student_date_key") {
			return apperrors.ErrAttendanceExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceNotFound
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	return nil
}

// GetByID retrieves an attendance record by ID
func (r *AttendanceRecordRepository) GetByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendance_records WHERE id = $1`, recordColumns)
	return scanRecord(r.db.QueryRow(ctx, query, id))
}

// GetByStudentAndDate retrieves the record for a student on a specific date
func (r *AttendanceRecordRepository) GetByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendance_records WHERE student_id = $1 AND attendance_date = $2`, recordColumns)
	return scanRecord(r.db.QueryRow(ctx, query, studentID, date))
}

// RecordFilter holds parameters for filtering attendance records
type RecordFilter struct {
	StudentID *int64
	Status    *models.AttendanceStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    uint64
}

// List retrieves attendance records matching the filter, newest date first
func (r *AttendanceRecordRepository) List(ctx context.Context, filter RecordFilter) ([]*models.AttendanceRecord, error) {
	builder := squirrel.Select(
		"id", "student_id", "attendance_date", "status", "check_in_time", "notes", "recorded_by",
		"created_at", "updated_at",
	).From("attendance_records").
		OrderBy("attendance_date DESC", "student_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"attendance_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"attendance_date": *filter.DateTo})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building attendance list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ListByDate retrieves all records for a calendar date
func (r *AttendanceRecordRepository) ListByDate(ctx context.Context, date time.Time) ([]*models.AttendanceRecord, error) {
	return r.List(ctx, RecordFilter{DateFrom: &date, DateTo: &date})
}

// Update persists changes to an existing record and refreshes updated_at
func (r *AttendanceRecordRepository) Update(ctx context.Context, q Querier, record *models.AttendanceRecord) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE attendance_records
		SET status = $1, check_in_time = $2, notes = $3, updated_at = now()
		WHERE id = $4
	`

	cmdTag, err := q.Exec(ctx, query,
		record.Status, record.CheckInTime, record.Notes, record.ID)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}

// Delete removes an attendance record
func (r *AttendanceRecordRepository) Delete(ctx context.Context, q Querier, id int64) error {
	if q == nil {
		q = r.db
	}

	cmdTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}

// CountByStatus counts records per status for a date. Runs on the caller's
// Querier so the summary recompute sees the state inside its transaction.
func (r *AttendanceRecordRepository) CountByStatus(ctx context.Context, q Querier, date time.Time) (map[models.AttendanceStatus]int, error) {
	if q == nil {
		q = r.db
	}

	rows, err := q.Query(ctx,
		`SELECT status, COUNT(*) FROM attendance_records WHERE attendance_date = $1 GROUP BY status`, date)
	if err != nil {
		return nil, fmt.Errorf("error counting attendance by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AttendanceStatus]int)
	for rows.Next() {
		var status models.AttendanceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
