package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/permit/models/dto"
	"github.com/fajarws/schoolcore/internal/permit/repositories"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// PermitService defines the interface for the permit workflow: file, decide,
// cancel, plus the public board projection and range statistics.
type PermitService interface {
	CreatePermit(ctx context.Context, actorID int64, req *dto.PermitCreateRequest) (*models.StudentPermit, error)
	GetPermitByID(ctx context.Context, id int64) (*models.StudentPermit, error)
	ListPermits(ctx context.Context, filter repositories.PermitFilter) ([]*models.StudentPermit, error)
	DecidePermit(ctx context.Context, actorID, id int64, req *dto.PermitDecisionRequest) (*models.StudentPermit, error)
	CancelPermit(ctx context.Context, actorID, id int64) (*models.StudentPermit, error)
	ListPublic(ctx context.Context, date time.Time) ([]dto.PublicPermitInfo, error)
	GetStats(ctx context.Context, from, to time.Time) (*dto.PermitStats, error)
}

// permitServiceImpl implements the PermitService interface
type permitServiceImpl struct {
	pool         *pgxpool.Pool
	permitRepo   *repositories.PermitRepository
	studentRepo  *repositories.StudentRepository
	settingsRepo *repositories.SettingsRepository
	auditRepo    *repositories.AuditLogRepository
}

// NewPermitService creates a new permit service instance
func NewPermitService(
	pool *pgxpool.Pool,
	permitRepo *repositories.PermitRepository,
	studentRepo *repositories.StudentRepository,
	settingsRepo *repositories.SettingsRepository,
	auditRepo *repositories.AuditLogRepository,
) PermitService {
	return &permitServiceImpl{
		pool:         pool,
		permitRepo:   permitRepo,
		studentRepo:  studentRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
	}
}

// CreatePermit validates and files a new permit. The duration is capped by
// the configured maximum; sick permits are created directly approved when the
// auto-approve setting is on.
func (s *permitServiceImpl) CreatePermit(ctx context.Context, actorID int64, req *dto.PermitCreateRequest) (*models.StudentPermit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if actorID <= 0 {
		return nil, fmt.Errorf("%w: invalid filing user", apperrors.ErrValidationFailed)
	}

	permit := req.ToModel(actorID)
	if permit.EndDate.Before(permit.StartDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if permit.DurationDays() > settings.MaxPermitDays {
		return nil, fmt.Errorf("%w: maximum is %d days", apperrors.ErrPermitTooLong, settings.MaxPermitDays)
	}

	// Surface an unknown student as a referential error before insert; the FK
	// still backs this up inside the database.
	if _, err := s.studentRepo.GetByID(ctx, permit.StudentID); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrReferenceNotFound
		}
		return nil, err
	}

	if settings.AutoApproveSickPermits && permit.PermitType == models.PermitSick {
		now := time.Now().UTC()
		permit.Status = models.PermitApproved
		permit.ApprovedAt = &now
		permit.UpdatedBy = &actorID
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.permitRepo.Create(ctx, tx, permit); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "student_permits", permit.ID, nil, permit)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("permitId", permit.ID).
		Int64("studentId", permit.StudentID).
		Str("status", string(permit.Status)).
		Msg("Permit filed")

	return permit, nil
}

// GetPermitByID retrieves a permit by ID
func (s *permitServiceImpl) GetPermitByID(ctx context.Context, id int64) (*models.StudentPermit, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid permit ID", apperrors.ErrValidationFailed)
	}
	return s.permitRepo.GetByID(ctx, id)
}

// ListPermits retrieves permits matching the filter
func (s *permitServiceImpl) ListPermits(ctx context.Context, filter repositories.PermitFilter) ([]*models.StudentPermit, error) {
	return s.permitRepo.List(ctx, filter)
}

// DecidePermit resolves a pending permit to approved or rejected. The status
// check and the write happen inside one transaction with the row locked; a
// permit already in a terminal state fails with a state conflict and stays
// unchanged. approved_at is set only on the transition into approved.
func (s *permitServiceImpl) DecidePermit(ctx context.Context, actorID, id int64, req *dto.PermitDecisionRequest) (*models.StudentPermit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if actorID <= 0 {
		return nil, fmt.Errorf("%w: invalid deciding user", apperrors.ErrValidationFailed)
	}

	var decided *models.StudentPermit

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		permit, err := s.permitRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if !permit.CanTransition() {
			return apperrors.NewStateConflictError(
				fmt.Sprintf("permit is already %s", permit.Status))
		}

		before := *permit
		status := models.PermitStatus(req.Status)
		var approvedAt *time.Time
		if status == models.PermitApproved {
			now := time.Now().UTC()
			approvedAt = &now
		}

		if err := s.permitRepo.MarkDecision(ctx, tx, id, status, actorID, approvedAt, req.ApprovalNotes); err != nil {
			return err
		}

		permit.Status = status
		permit.UpdatedBy = &actorID
		permit.ApprovedAt = approvedAt
		permit.ApprovalNotes = req.ApprovalNotes
		decided = permit

		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "student_permits", id, &before, permit)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("permitId", id).
		Str("status", string(decided.Status)).
		Int64("decidedBy", actorID).
		Msg("Permit decided")

	return decided, nil
}

// CancelPermit withdraws a pending permit. Only the user who filed it can
// cancel, and only while it is still pending. approved_at is never set.
func (s *permitServiceImpl) CancelPermit(ctx context.Context, actorID, id int64) (*models.StudentPermit, error) {
	var cancelled *models.StudentPermit

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		permit, err := s.permitRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if !permit.CanTransition() {
			return apperrors.NewStateConflictError(
				fmt.Sprintf("permit is already %s", permit.Status))
		}
		if permit.CreatedBy != actorID {
			return fmt.Errorf("%w: only the user who filed the permit can cancel it", apperrors.ErrConflict)
		}

		before := *permit
		if err := s.permitRepo.MarkDecision(ctx, tx, id, models.PermitCancelled, actorID, nil, permit.ApprovalNotes); err != nil {
			return err
		}

		permit.Status = models.PermitCancelled
		permit.UpdatedBy = &actorID
		cancelled = permit

		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "student_permits", id, &before, permit)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("permitId", id).
		Int64("cancelledBy", actorID).
		Msg("Permit cancelled")

	return cancelled, nil
}

// ListPublic returns the public board projection for a date: approved permits
// only, restricted to name, class, type, reason and date range. The board
// reads as empty while it is disabled in settings.
func (s *permitServiceImpl) ListPublic(ctx context.Context, date time.Time) ([]dto.PublicPermitInfo, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.PublicBoardEnabled {
		return []dto.PublicPermitInfo{}, nil
	}

	permits, err := s.permitRepo.ListApprovedForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PublicPermitInfo, 0, len(permits))
	for _, permit := range permits {
		result = append(result, dto.NewPublicPermitInfo(permit))
	}

	return result, nil
}

// GetStats aggregates permit counts per status and type for a date range
func (s *permitServiceImpl) GetStats(ctx context.Context, from, to time.Time) (*dto.PermitStats, error) {
	if to.Before(from) {
		return nil, apperrors.ErrInvalidDateRange
	}

	counts, err := s.permitRepo.CountByStatusAndType(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &dto.PermitStats{
		StartDate: from.Format(dto.DateLayout),
		EndDate:   to.Format(dto.DateLayout),
		ByStatus:  map[models.PermitStatus]int{},
		ByType:    map[models.PermitType]int{},
	}
	for _, c := range counts {
		stats.Total += c.Count
		stats.ByStatus[c.Status] += c.Count
		stats.ByType[c.Type] += c.Count
	}

	return stats, nil
}
