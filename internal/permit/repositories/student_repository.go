package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/permit/models"
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

const studentColumns = `id, nis, nisn, full_name, gender, birth_place, birth_date, address,
		phone, parent_name, parent_phone, class_id, is_active, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.NIS,
		&s.NISN,
		&s.FullName,
		&s.Gender,
		&s.BirthPlace,
		&s.BirthDate,
		&s.Address,
		&s.Phone,
		&s.ParentName,
		&s.ParentPhone,
		&s.ClassID,
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

// Create inserts a new student. Accepts a Querier so the insert can share a
// transaction with its audit row. The NIS must be unique and the class must
// exist; both are enforced by database constraints.
func (r *StudentRepository) Create(ctx context.Context, q Querier, student *models.Student) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO students (nis, nisn, full_name, gender, birth_place, birth_date, address,
			phone, parent_name, parent_phone, class_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		student.NIS, student.NISN, student.FullName, student.Gender, student.BirthPlace,
		student.BirthDate, student.Address, student.Phone, student.ParentName,
		student.ParentPhone, student.ClassID, student.IsActive,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_nis_key") {
			return apperrors.ErrNISExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceNotFound
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

// GetByNIS retrieves a student by enrollment number
func (r *StudentRepository) GetByNIS(ctx context.Context, nis string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE nis = $1`, studentColumns)
	return scanStudent(r.db.QueryRow(ctx, query, nis))
}

// GetWithClass retrieves a student together with its class relation
func (r *StudentRepository) GetWithClass(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.nis, s.nisn, s.full_name, s.gender, s.birth_place, s.birth_date,
			s.address, s.phone, s.parent_name, s.parent_phone, s.class_id, s.is_active,
			s.created_at, s.updated_at,
			c.id, c.name, c.grade_level, c.homeroom_teacher, c.academic_year, c.is_active,
			c.created_at, c.updated_at
		FROM students s
		JOIN school_classes c ON c.id = s.class_id
		WHERE s.id = $1
	`

	var s models.Student
	var c models.SchoolClass
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.NIS, &s.NISN, &s.FullName, &s.Gender, &s.BirthPlace, &s.BirthDate,
		&s.Address, &s.Phone, &s.ParentName, &s.ParentPhone, &s.ClassID, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.Name, &c.GradeLevel, &c.HomeroomTeacher, &c.AcademicYear, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}

	s.Class = &c
	return &s, nil
}

// StudentFilter holds parameters for filtering the student list
type StudentFilter struct {
	ClassID  *int64
	Gender   *models.Gender
	IsActive *bool
	Search   *string
	Limit    int
	Offset   uint64
}

// List retrieves students matching the filter, ordered by NIS
func (r *StudentRepository) List(ctx context.Context, filter StudentFilter) ([]*models.Student, error) {
	builder := squirrel.Select(
		"id", "nis", "nisn", "full_name", "gender", "birth_place", "birth_date", "address",
		"phone", "parent_name", "parent_phone", "class_id", "is_active", "created_at", "updated_at",
	).From("students").
		OrderBy("nis ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ClassID != nil {
		builder = builder.Where(squirrel.Eq{"class_id": *filter.ClassID})
	}
	if filter.Gender != nil {
		builder = builder.Where(squirrel.Eq{"gender": *filter.Gender})
	}
	if filter.IsActive != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Search != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"full_name": "%" + *filter.Search + "%"},
			squirrel.ILike{"nis": "%" + *filter.Search + "%"},
		})
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

// Update persists changes to an existing student and refreshes updated_at.
// The NIS is immutable and never part of the update.
func (r *StudentRepository) Update(ctx context.Context, q Querier, student *models.Student) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE students
		SET nisn = $1, full_name = $2, gender = $3, birth_place = $4, birth_date = $5,
			address = $6, phone = $7, parent_name = $8, parent_phone = $9, class_id = $10,
			is_active = $11, updated_at = now()
		WHERE id = $12
	`

	cmdTag, err := q.Exec(ctx, query,
		student.NISN, student.FullName, student.Gender, student.BirthPlace, student.BirthDate,
		student.Address, student.Phone, student.ParentName, student.ParentPhone, student.ClassID,
		student.IsActive, student.ID,
	)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrReferenceNotFound
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Deactivate soft-deletes a student. Hard deletion is not offered: permits
// keep referencing the row.
func (r *StudentRepository) Deactivate(ctx context.Context, q Querier, id int64) error {
	if q == nil {
		q = r.db
	}

	cmdTag, err := q.Exec(ctx,
		`UPDATE students SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
