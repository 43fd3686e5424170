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

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *pgxpool.Pool
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{
		db: db,
	}
}

const employeeColumns = `id, nip, full_name, gender, position, phone, address, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(
		&e.ID,
		&e.NIP,
		&e.FullName,
		&e.Gender,
		&e.Position,
		&e.Phone,
		&e.Address,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new employee. Accepts a Querier so the insert can share a
// transaction with its audit row.
func (r *EmployeeRepository) Create(ctx context.Context, q Querier, employee *models.Employee) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO employees (nip, full_name, gender, position, phone, address, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		employee.NIP, employee.FullName, employee.Gender, employee.Position,
		employee.Phone, employee.Address, employee.IsActive,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating employee: %w", err)
	}

	return nil
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

// EmployeeFilter holds parameters for filtering the employee list
type EmployeeFilter struct {
	Position *string
	IsActive *bool
	Search   *string
	Limit    int
	Offset   uint64
}

// List retrieves employees matching the filter, ordered by full name
func (r *EmployeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error) {
	builder := squirrel.Select(
		"id", "nip", "full_name", "gender", "position", "phone", "address",
		"is_active", "created_at", "updated_at",
	).From("employees").
		OrderBy("full_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Position != nil {
		builder = builder.Where(squirrel.Eq{"position": *filter.Position})
	}
	if filter.IsActive != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	if filter.Search != nil {
		builder = builder.Where(squirrel.ILike{"full_name": "%" + *filter.Search + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building employee list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update persists changes to an existing employee and refreshes updated_at
func (r *EmployeeRepository) Update(ctx context.Context, q Querier, employee *models.Employee) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE employees
		SET nip = $1, full_name = $2, gender = $3, position = $4, phone = $5,
			address = $6, is_active = $7, updated_at = now()
		WHERE id = $8
	`

	cmdTag, err := q.Exec(ctx, query,
		employee.NIP, employee.FullName, employee.Gender, employee.Position,
		employee.Phone, employee.Address, employee.IsActive, employee.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating employee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}

	return nil
}

// Deactivate soft-deletes an employee
func (r *EmployeeRepository) Deactivate(ctx context.Context, q Querier, id int64) error {
	if q == nil {
		q = r.db
	}

	cmdTag, err := q.Exec(ctx,
		`UPDATE employees SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating employee: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}

	return nil
}
