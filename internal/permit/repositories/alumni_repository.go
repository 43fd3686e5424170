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
)

// AlumniRepository handles database operations for alumni records
type AlumniRepository struct {
	db *pgxpool.Pool
}

// NewAlumniRepository creates a new alumni repository
func NewAlumniRepository(db *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{
		db: db,
	}
}

const alumniColumns = `id, nis, full_name, gender, graduation_year, last_class, phone, created_at, updated_at`

func scanAlumni(row pgx.Row) (*models.Alumni, error) {
	var a models.Alumni
	err := row.Scan(
		&a.ID,
		&a.NIS,
		&a.FullName,
		&a.Gender,
		&a.GraduationYear,
		&a.LastClass,
		&a.Phone,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlumniNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new alumni record. Accepts a Querier so the insert can
// share a transaction with its audit row. The NIS carries no uniqueness
// constraint here: the original student row stays around after graduation.
func (r *AlumniRepository) Create(ctx context.Context, q Querier, alumni *models.Alumni) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO alumni (nis, full_name, gender, graduation_year, last_class, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		alumni.NIS, alumni.FullName, alumni.Gender, alumni.GraduationYear,
		alumni.LastClass, alumni.Phone,
	).Scan(&alumni.ID, &alumni.CreatedAt, &alumni.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating alumni record: %w", err)
	}

	return nil
}

// GetByID retrieves an alumni record by ID
func (r *AlumniRepository) GetByID(ctx context.Context, id int64) (*models.Alumni, error) {
	query := fmt.Sprintf(`SELECT %s FROM alumni WHERE id = $1`, alumniColumns)
	return scanAlumni(r.db.QueryRow(ctx, query, id))
}

// AlumniFilter holds parameters for filtering the alumni list
type AlumniFilter struct {
	GraduationYear *int
	Search         *string
	Limit          int
	Offset         uint64
}

// List retrieves alumni matching the filter, newest graduation year first
func (r *AlumniRepository) List(ctx context.Context, filter AlumniFilter) ([]*models.Alumni, error) {
	builder := squirrel.Select(
		"id", "nis", "full_name", "gender", "graduation_year", "last_class", "phone",
		"created_at", "updated_at",
	).From("alumni").
		OrderBy("graduation_year DESC", "full_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.GraduationYear != nil {
		builder = builder.Where(squirrel.Eq{"graduation_year": *filter.GraduationYear})
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
		return nil, fmt.Errorf("error building alumni list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Alumni
	for rows.Next() {
		record, err := scanAlumni(rows)
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

// Update persists changes to an existing alumni record and refreshes updated_at
func (r *AlumniRepository) Update(ctx context.Context, q Querier, alumni *models.Alumni) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE alumni
		SET full_name = $1, gender = $2, graduation_year = $3, last_class = $4,
			phone = $5, updated_at = now()
		WHERE id = $6
	`

	cmdTag, err := q.Exec(ctx, query,
		alumni.FullName, alumni.Gender, alumni.GraduationYear, alumni.LastClass,
		alumni.Phone, alumni.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating alumni record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlumniNotFound
	}

	return nil
}

// Delete removes an alumni record. Alumni rows are not referenced by other
// tables, so hard deletion is safe here.
func (r *AlumniRepository) Delete(ctx context.Context, q Querier, id int64) error {
	if q == nil {
		q = r.db
	}

	cmdTag, err := q.Exec(ctx, `DELETE FROM alumni WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting alumni record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlumniNotFound
	}

	return nil
}
