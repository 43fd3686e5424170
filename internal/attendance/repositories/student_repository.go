package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `id, student_id, first_name, last_name, email, phone, grade, class_name,
		guardian_name, guardian_phone, is_active, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.StudentID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.Phone,
		&s.Grade,
		&s.ClassName,
		&s.GuardianName,
		&s.GuardianPhone,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student. The student code must be unique; the database
// constraint enforces it and a violation comes back as a conflict error.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, first_name, last_name, email, phone, grade, class_name,
			guardian_name, guardian_phone, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.StudentID, student.FirstName, student.LastName, student.Email, student.Phone,
		student.Grade, student.ClassName, student.GuardianName, student.GuardianPhone, student.IsActive,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentCodeExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by surrogate ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByStudentID retrieves a student by the human-readable student code
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE student_id = $1`, studentColumns)
	return scanStudent(r.db.QueryRow(ctx, query, studentID))
}

// StudentFilter holds parameters for filtering the student list
type StudentFilter struct {
	ClassName *string
	Grade     *string
	IsActive  *bool
	Limit     int
	Offset    uint64
}

// List retrieves students matching the filter, ordered by student code
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := squirrel.Select(
		"id", "student_id", "first_name", "last_name", "email", "phone", "grade", "class_name",
		"guardian_name", "guardian_phone", "is_active", "created_at", "updated_at",
	).From("students").
		OrderBy("student_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ClassName != nil {
		builder = builder.Where(squirrel.Eq{"class_name": *filter.ClassName})
	}
	if filter.Grade != nil {
		builder = builder.Where(squirrel.Eq{"grade": *filter.Grade})
	}
	if filter.IsActive != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update persists changes to an existing student and refreshes updated_at
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, phone = $4, grade = $5,
			class_name = $6, guardian_name = $7, guardian_phone = $8, is_active = $9,
			updated_at = now()
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.Email, student.Phone, student.Grade,
		student.ClassName, student.GuardianName, student.GuardianPhone, student.IsActive,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Deactivate soft-deletes a student. Hard deletion is not offered: attendance
// records and absence requests keep referencing the row.
func (r *StudentRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// CountActive counts currently enrolled students. Accepts a Querier so the
// summary recompute can run it inside its transaction.
func (r *StudentRepository) CountActive(ctx context.Context, q Querier) (int, error) {
	if q == nil {
		q = r.db
	}

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE is_active = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active students: %w", err)
	}
	return count, nil
}
