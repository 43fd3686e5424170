package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/permit/models/dto"
	"github.com/fajarws/schoolcore/internal/permit/repositories"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// SettingsService defines the interface for the settings singleton
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSettings(ctx context.Context, actorID int64, req *dto.SettingsUpdateRequest) (*models.SystemSettings, error)
}

// settingsServiceImpl implements the SettingsService interface
type settingsServiceImpl struct {
	pool         *pgxpool.Pool
	settingsRepo *repositories.SettingsRepository
	auditRepo    *repositories.AuditLogRepository
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(
	pool *pgxpool.Pool,
	settingsRepo *repositories.SettingsRepository,
	auditRepo *repositories.AuditLogRepository,
) SettingsService {
	return &settingsServiceImpl{
		pool:         pool,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
	}
}

// GetSettings retrieves the singleton settings row
func (s *settingsServiceImpl) GetSettings(ctx context.Context) (*models.SystemSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings applies a partial update to the singleton settings row
func (s *settingsServiceImpl) UpdateSettings(ctx context.Context, actorID int64, req *dto.SettingsUpdateRequest) (*models.SystemSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	before := *settings
	if err := req.Apply(settings); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.settingsRepo.Update(ctx, tx, settings); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "system_settings", settings.ID, &before, settings)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("updatedBy", actorID).Msg("System settings updated")
	return settings, nil
}
