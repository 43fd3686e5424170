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

// ClassService defines the interface for school class management
type ClassService interface {
	CreateClass(ctx context.Context, actorID int64, req *dto.ClassCreateRequest) (*models.SchoolClass, error)
	GetClassByID(ctx context.Context, id int64) (*models.SchoolClass, error)
	ListClasses(ctx context.Context, filter repositories.ClassFilter) ([]*models.SchoolClass, error)
	UpdateClass(ctx context.Context, actorID, id int64, req *dto.ClassUpdateRequest) (*models.SchoolClass, error)
	DeactivateClass(ctx context.Context, actorID, id int64) error
}

// classServiceImpl implements the ClassService interface
type classServiceImpl struct {
	pool      *pgxpool.Pool
	classRepo *repositories.ClassRepository
	auditRepo *repositories.AuditLogRepository
}

// NewClassService creates a new class service instance
func NewClassService(
	pool *pgxpool.Pool,
	classRepo *repositories.ClassRepository,
	auditRepo *repositories.AuditLogRepository,
) ClassService {
	return &classServiceImpl{
		pool:      pool,
		classRepo: classRepo,
		auditRepo: auditRepo,
	}
}

// CreateClass validates and stores a new school class
func (s *classServiceImpl) CreateClass(ctx context.Context, actorID int64, req *dto.ClassCreateRequest) (*models.SchoolClass, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	class := req.ToModel()
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.classRepo.Create(ctx, tx, class); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "school_classes", class.ID, nil, class)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("classId", class.ID).
		Str("name", class.Name).
		Msg("School class created")

	return class, nil
}

// GetClassByID retrieves a class by ID
func (s *classServiceImpl) GetClassByID(ctx context.Context, id int64) (*models.SchoolClass, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid class ID", apperrors.ErrValidationFailed)
	}
	return s.classRepo.GetByID(ctx, id)
}

// ListClasses retrieves classes matching the filter
func (s *classServiceImpl) ListClasses(ctx context.Context, filter repositories.ClassFilter) ([]*models.SchoolClass, error) {
	return s.classRepo.List(ctx, filter)
}

// UpdateClass applies a partial update to an existing class
func (s *classServiceImpl) UpdateClass(ctx context.Context, actorID, id int64, req *dto.ClassUpdateRequest) (*models.SchoolClass, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *class
	if err := req.Apply(class); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.classRepo.Update(ctx, tx, class); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "school_classes", class.ID, &before, class)
	})
	if err != nil {
		return nil, err
	}

	return class, nil
}

// DeactivateClass soft-deletes a class
func (s *classServiceImpl) DeactivateClass(ctx context.Context, actorID, id int64) error {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.classRepo.Deactivate(ctx, tx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionDelete, "school_classes", id, class, nil)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("classId", id).Msg("School class deactivated")
	return nil
}
