package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/dberrors"
)

// PermitRepository handles database operations for student permits
type PermitRepository struct {
	db *pgxpool.Pool
}

// NewPermitRepository creates a new permit repository
func NewPermitRepository(db *pgxpool.Pool) *PermitRepository {
	return &PermitRepository{
		db: db,
	}
}

const permitColumns = `id, student_id, permit_type, reason, start_date, end_date, status,
		notes, approval_notes, created_by, updated_by, approved_at, created_at, updated_at`

func scanPermit(row pgx.Row) (*models.StudentPermit, error) {
	var p models.StudentPermit
	err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.PermitType,
		&p.Reason,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.Notes,
		&p.ApprovalNotes,
		&p.CreatedBy,
		&p.UpdatedBy,
		&p.ApprovedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPermitNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new permit. Accepts a Querier so creation can share a
// transaction with the audit row. The referenced student and user must
// exist and the date range must be ordered; database constraints enforce
// both.
func (r *PermitRepository) Create(ctx context.Context, q Querier, permit *models.StudentPermit) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO student_permits (student_id, permit_type, reason, start_date, end_date,
			status, notes, approval_notes, created_by, updated_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		permit.StudentID, permit.PermitType, permit.Reason, permit.StartDate, permit.EndDate,
		permit.Status, permit.Notes, permit.ApprovalNotes, permit.CreatedBy, permit.UpdatedBy,
		permit.ApprovedAt,
	).Scan(&permit.ID, &permit.CreatedAt, &permit.UpdatedAt)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceNotFound
		}
		if dberrors.IsCheckViolation(err, "student_permits_date_range_check") {
			return apperrors.ErrInvalidDateRange
		}
		return fmt.Errorf("error creating permit: %w", err)
	}

	return nil
}

// GetByID retrieves a permit by ID
func (r *PermitRepository) GetByID(ctx context.Context, id int64) (*models.StudentPermit, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_permits WHERE id = $1`, permitColumns)
	return scanPermit(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a permit and locks its row for the duration of
// the caller's transaction, so concurrent decisions serialize.
func (r *PermitRepository) GetByIDForUpdate(ctx context.Context, q Querier, id int64) (*models.StudentPermit, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_permits WHERE id = $1 FOR UPDATE`, permitColumns)
	return scanPermit(q.QueryRow(ctx, query, id))
}

// PermitFilter holds parameters for filtering the permit list
type PermitFilter struct {
	StudentID  *int64
	Status     *models.PermitStatus
	PermitType *models.PermitType
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     uint64
}

// List retrieves permits matching the filter, newest first. The date bounds
// match any permit whose range overlaps them.
func (r *PermitRepository) List(ctx context.Context, filter PermitFilter) ([]*models.StudentPermit, error) {
	builder := squirrel.Select(
		"id", "student_id", "permit_type", "reason", "start_date", "end_date", "status",
		"notes", "approval_notes", "created_by", "updated_by", "approved_at", "created_at", "updated_at",
	).From("student_permits").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.PermitType != nil {
		builder = builder.Where(squirrel.Eq{"permit_type": *filter.PermitType})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"end_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"start_date": *filter.DateTo})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building permit list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permits []*models.StudentPermit
	for rows.Next() {
		permit, err := scanPermit(rows)
		if err != nil {
			return nil, err
		}
		permits = append(permits, permit)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return permits, nil
}

// ListApprovedForDate retrieves approved permits covering the given date,
// with the student and class relations populated for display.
func (r *PermitRepository) ListApprovedForDate(ctx context.Context, date time.Time) ([]*models.StudentPermit, error) {
	query := `
		SELECT p.id, p.student_id, p.permit_type, p.reason, p.start_date, p.end_date, p.status,
			p.notes, p.approval_notes, p.created_by, p.updated_by, p.approved_at, p.created_at, p.updated_at,
			s.id, s.nis, s.nisn, s.full_name, s.gender, s.birth_place, s.birth_date, s.address,
			s.phone, s.parent_name, s.parent_phone, s.class_id, s.is_active, s.created_at, s.updated_at,
			c.id, c.name, c.grade_level, c.homeroom_teacher, c.academic_year, c.is_active,
			c.created_at, c.updated_at
		FROM student_permits p
		JOIN students s ON s.id = p.student_id
		JOIN school_classes c ON c.id = s.class_id
		WHERE p.status = $1 AND p.start_date <= $2 AND p.end_date >= $2
		ORDER BY c.name ASC, s.full_name ASC
	`

	rows, err := r.db.Query(ctx, query, models.PermitApproved, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permits []*models.StudentPermit
	for rows.Next() {
		var p models.StudentPermit
		var s models.Student
		var c models.SchoolClass
		err := rows.Scan(
			&p.ID, &p.StudentID, &p.PermitType, &p.Reason, &p.StartDate, &p.EndDate, &p.Status,
			&p.Notes, &p.ApprovalNotes, &p.CreatedBy, &p.UpdatedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
			&s.ID, &s.NIS, &s.NISN, &s.FullName, &s.Gender, &s.BirthPlace, &s.BirthDate, &s.Address,
			&s.Phone, &s.ParentName, &s.ParentPhone, &s.ClassID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&c.ID, &c.Name, &c.GradeLevel, &c.HomeroomTeacher, &c.AcademicYear, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		s.Class = &c
		p.Student = &s
		permits = append(permits, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return permits, nil
}

// MarkDecision records a workflow transition in a single statement. Accepts a
// Querier so it runs inside the caller's transaction after the row lock.
// approvedAt is nil for rejections and cancellations.
func (r *PermitRepository) MarkDecision(ctx context.Context, q Querier, id int64, status models.PermitStatus, updatedBy int64, approvedAt *time.Time, approvalNotes *string) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE student_permits
		SET status = $1, updated_by = $2, approved_at = $3, approval_notes = $4, updated_at = now()
		WHERE id = $5
	`

	cmdTag, err := q.Exec(ctx, query, status, updatedBy, approvedAt, approvalNotes, id)
	if err != nil {
		return fmt.Errorf("error recording permit decision: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPermitNotFound
	}

	return nil
}

// StatusTypeCount is one row of the stats aggregation
type StatusTypeCount struct {
	Status models.PermitStatus
	Type   models.PermitType
	Count  int
}

// CountByStatusAndType aggregates permits overlapping the date range, grouped
// by status and type.
func (r *PermitRepository) CountByStatusAndType(ctx context.Context, from, to time.Time) ([]StatusTypeCount, error) {
	query := `
		SELECT status, permit_type, COUNT(*)
		FROM student_permits
		WHERE end_date >= $1 AND start_date <= $2
		GROUP BY status, permit_type
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error counting permits: %w", err)
	}
	defer rows.Close()

	var counts []StatusTypeCount
	for rows.Next() {
		var c StatusTypeCount
		if err := rows.Scan(&c.Status, &c.Type, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
