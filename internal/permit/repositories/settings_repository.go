package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

// SettingsRepository handles database operations for the settings singleton
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{
		db: db,
	}
}

const settingsColumns = `id, school_name, academic_year, maintenance_mode, public_board_enabled,
		auto_approve_sick_permits, max_permit_days, notification_settings, created_at, updated_at`

func scanSettings(row pgx.Row) (*models.SystemSettings, error) {
	var s models.SystemSettings
	err := row.Scan(
		&s.ID,
		&s.SchoolName,
		&s.AcademicYear,
		&s.MaintenanceMode,
		&s.PublicBoardEnabled,
		&s.AutoApproveSickPermits,
		&s.MaxPermitDays,
		&s.NotificationSettings,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Get retrieves the singleton settings row
func (r *SettingsRepository) Get(ctx context.Context) (*models.SystemSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM system_settings WHERE id = $1`, settingsColumns)
	return scanSettings(r.db.QueryRow(ctx, query, models.SettingsID))
}

// Insert creates the singleton row if it does not exist yet. Used by seeding;
// a second run is a no-op.
func (r *SettingsRepository) Insert(ctx context.Context, settings *models.SystemSettings) error {
	query := `
		INSERT INTO system_settings (id, school_name, academic_year, maintenance_mode,
			public_board_enabled, auto_approve_sick_permits, max_permit_days, notification_settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		models.SettingsID, settings.SchoolName, settings.AcademicYear, settings.MaintenanceMode,
		settings.PublicBoardEnabled, settings.AutoApproveSickPermits, settings.MaxPermitDays,
		settings.NotificationSettings,
	)
	if err != nil {
		return fmt.Errorf("error inserting settings: %w", err)
	}

	return nil
}

// Update persists changes to the singleton row and refreshes updated_at
func (r *SettingsRepository) Update(ctx context.Context, q Querier, settings *models.SystemSettings) error {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE system_settings
		SET school_name = $1, academic_year = $2, maintenance_mode = $3,
			public_board_enabled = $4, auto_approve_sick_permits = $5, max_permit_days = $6,
			notification_settings = $7, updated_at = now()
		WHERE id = $8
	`

	cmdTag, err := q.Exec(ctx, query,
		settings.SchoolName, settings.AcademicYear, settings.MaintenanceMode,
		settings.PublicBoardEnabled, settings.AutoApproveSickPermits, settings.MaxPermitDays,
		settings.NotificationSettings, models.SettingsID,
	)
	if err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSettingsNotFound
	}

	return nil
}
