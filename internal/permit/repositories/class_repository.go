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

// ClassRepository handles database operations for school classes
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

const classColumns = `id, name, grade_level, homeroom_teacher, academic_year, is_active, created_at, updated_at`

func scanClass(row pgx.Row) (*models.SchoolClass, error) {
	var c models.SchoolClass
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.GradeLevel,
		&c.HomeroomTeacher,
		&c.AcademicYear,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new class. Accepts a Querier so the insert can share a
// transaction with its audit row. The name must be unique; the database
// constraint enforces it and a violation comes back as a conflict error.
func (r *ClassRepository) Create(ctx context.Context, q Querier, class *models.SchoolClass) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO school_classes (name, grade_level, homeroom_teacher, academic_year, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		class.Name, class.GradeLevel, class.HomeroomTeacher, class.AcademicYear, class.IsActive,
	).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "school_classes_name_key") {
			return apperrors.ErrClassNameExists
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.SchoolClass, error) {
	query := fmt.Sprintf(`SELECT %s FROM school_classes WHERE id = $1`, classColumns)
	return scanClass(r.db.QueryRow(ctx, query, id))
}

// ClassFilter holds parameters for filtering the class list
type ClassFilter struct {
	GradeLevel   *int
	AcademicYear *string
	IsActive     *bool
	Limit        int
	Offset       uint64
}

// List retrieves classes matching the filter, ordered by grade then name
func (r *ClassRepository) List(ctx context.Context, filter ClassFilter) ([]*models.SchoolClass, error) {
	builder := squirrel.Select(
		"id", "name", "grade_level", "homeroom_teacher", "academic_year", "is_active", "created_at", "updated_at",
	).From("school_classes").
		OrderBy("grade_level ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.GradeLevel != nil {
		builder = builder.Where(squirrel.Eq{"grade_level": *filter.GradeLevel})
	}
	if filter.AcademicYear != nil {
		builder = builder.Where(squirrel.Eq{"academic_year": *filter.AcademicYear})
	}
	if filter.IsActive != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building class list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.SchoolClass
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// Update persists changes to an existing class and refreshes updated_at
func (r *ClassRepository) Update(ctx context.Context, q Querier, class *models.SchoolClass) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE school_classes
		SET name = $1, grade_level = $2, homeroom_teacher = $3, academic_year = $4,
			is_active = $5, updated_at = now()
		WHERE id = $6
	`

	cmdTag, err := q.Exec(ctx, query,
		class.Name, class.GradeLevel, class.HomeroomTeacher, class.AcademicYear,
		class.IsActive, class.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "school_classes_name_key") {
			return apperrors.ErrClassNameExists
		}
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Deactivate soft-deletes a class. Hard deletion is not offered while
// students reference the row.
func (r *ClassRepository) Deactivate(ctx context.Context, q Querier, id int64) error {
	if q == nil {
		q = r.db
	}

	cmdTag, err := q.Exec(ctx,
		`UPDATE school_classes SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}
