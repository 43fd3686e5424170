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

// AlumniService defines the interface for alumni record management
type AlumniService interface {
	CreateAlumni(ctx context.Context, actorID int64, req *dto.AlumniCreateRequest) (*models.Alumni, error)
	GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error)
	ListAlumni(ctx context.Context, filter repositories.AlumniFilter) ([]*models.Alumni, error)
	UpdateAlumni(ctx context.Context, actorID, id int64, req *dto.AlumniUpdateRequest) (*models.Alumni, error)
	DeleteAlumni(ctx context.Context, actorID, id int64) error
}

// alumniServiceImpl implements the AlumniService interface
type alumniServiceImpl struct {
	pool       *pgxpool.Pool
	alumniRepo *repositories.AlumniRepository
	auditRepo  *repositories.AuditLogRepository
}

// NewAlumniService creates a new alumni service instance
func NewAlumniService(
	pool *pgxpool.Pool,
	alumniRepo *repositories.AlumniRepository,
	auditRepo *repositories.AuditLogRepository,
) AlumniService {
	return &alumniServiceImpl{
		pool:       pool,
		alumniRepo: alumniRepo,
		auditRepo:  auditRepo,
	}
}

// CreateAlumni validates and stores a new alumni record
func (s *alumniServiceImpl) CreateAlumni(ctx context.Context, actorID int64, req *dto.AlumniCreateRequest) (*models.Alumni, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	alumni := req.ToModel()
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.alumniRepo.Create(ctx, tx, alumni); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "alumni", alumni.ID, nil, alumni)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("alumniId", alumni.ID).
		Int("graduationYear", alumni.GraduationYear).
		Msg("Alumni record created")

	return alumni, nil
}

// GetAlumniByID retrieves an alumni record by ID
func (s *alumniServiceImpl) GetAlumniByID(ctx context.Context, id int64) (*models.Alumni, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid alumni ID", apperrors.ErrValidationFailed)
	}
	return s.alumniRepo.GetByID(ctx, id)
}

// ListAlumni retrieves alumni matching the filter
func (s *alumniServiceImpl) ListAlumni(ctx context.Context, filter repositories.AlumniFilter) ([]*models.Alumni, error) {
	return s.alumniRepo.List(ctx, filter)
}

// UpdateAlumni applies a partial update to an existing alumni record
func (s *alumniServiceImpl) UpdateAlumni(ctx context.Context, actorID, id int64, req *dto.AlumniUpdateRequest) (*models.Alumni, error) {
	alumni, err := s.alumniRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *alumni
	if err := req.Apply(alumni); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.alumniRepo.Update(ctx, tx, alumni); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "alumni", alumni.ID, &before, alumni)
	})
	if err != nil {
		return nil, err
	}

	return alumni, nil
}

// DeleteAlumni removes an alumni record
func (s *alumniServiceImpl) DeleteAlumni(ctx context.Context, actorID, id int64) error {
	alumni, err := s.alumniRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.alumniRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionDelete, "alumni", id, alumni, nil)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("alumniId", id).Msg("Alumni record deleted")
	return nil
}
