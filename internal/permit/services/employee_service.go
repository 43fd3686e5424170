package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/permit/models/dto"
	"github.com/fajarws/schoolcore/internal/permit/repositories"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// EmployeeService defines the interface for employee management
type EmployeeService interface {
	CreateEmployee(ctx context.Context, actorID int64, req *dto.EmployeeCreateRequest) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error)
	ListEmployees(ctx context.Context, filter repositories.EmployeeFilter) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, actorID, id int64, req *dto.EmployeeUpdateRequest) (*models.Employee, error)
	DeactivateEmployee(ctx context.Context, actorID, id int64) error
}

// employeeServiceImpl implements the EmployeeService interface
type employeeServiceImpl struct {
	pool         *pgxpool.Pool
	employeeRepo *repositories.EmployeeRepository
	auditRepo    *repositories.AuditLogRepository
}

// NewEmployeeService creates a new employee service instance
func NewEmployeeService(
	pool *pgxpool.Pool,
	employeeRepo *repositories.EmployeeRepository,
	auditRepo *repositories.AuditLogRepository,
) EmployeeService {
	return &employeeServiceImpl{
		pool:         pool,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
	}
}

// CreateEmployee validates and stores a new employee
func (s *employeeServiceImpl) CreateEmployee(ctx context.Context, actorID int64, req *dto.EmployeeCreateRequest) (*models.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employee := req.ToModel()
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.employeeRepo.Create(ctx, tx, employee); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "employees", employee.ID, nil, employee)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("employeeId", employee.ID).
		Str("position", employee.Position).
		Msg("Employee registered")

	return employee, nil
}

// GetEmployeeByID retrieves an employee by ID
func (s *employeeServiceImpl) GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid employee ID", apperrors.ErrValidationFailed)
	}
	return s.employeeRepo.GetByID(ctx, id)
}

// ListEmployees retrieves employees matching the filter
func (s *employeeServiceImpl) ListEmployees(ctx context.Context, filter repositories.EmployeeFilter) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx, filter)
}

// UpdateEmployee applies a partial update to an existing employee
func (s *employeeServiceImpl) UpdateEmployee(ctx context.Context, actorID, id int64, req *dto.EmployeeUpdateRequest) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *employee
	if err := req.Apply(employee); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.employeeRepo.Update(ctx, tx, employee); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "employees", employee.ID, &before, employee)
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

// DeactivateEmployee soft-deletes an employee
func (s *employeeServiceImpl) DeactivateEmployee(ctx context.Context, actorID, id int64) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.employeeRepo.Deactivate(ctx, tx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionDelete, "employees", id, employee, nil)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("employeeId", id).Msg("Employee deactivated")
	return nil
}
