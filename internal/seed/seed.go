package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/permit/repositories"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/auth"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// DefaultOwnerUsername is the login of the seeded owner account
const DefaultOwnerUsername = "owner"

// CreateDefaultData creates the settings singleton and a default owner user
// if they don't exist. Safe to run repeatedly.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	settingsRepo := repositories.NewSettingsRepository(dbPool)
	userRepo := repositories.NewUserRepository(dbPool)

	logger.Info().Msg("Checking/Creating default data (settings, owner user)...")
	var finalErr error

	if _, err := settingsRepo.Get(ctx); err != nil {
		if !errors.Is(err, apperrors.ErrSettingsNotFound) {
			return err
		}
		settings := &models.SystemSettings{
			SchoolName:           "Unnamed School",
			AcademicYear:         "2025/2026",
			PublicBoardEnabled:   true,
			MaxPermitDays:        3,
			NotificationSettings: map[string]interface{}{},
		}
		if err := settingsRepo.Insert(ctx, settings); err != nil {
			logger.Error().Err(err).Msg("Error seeding system settings")
			finalErr = errors.Join(finalErr, err)
		} else {
			logger.Info().Msg("System settings seeded")
		}
	}

	if _, err := userRepo.GetByUsername(ctx, DefaultOwnerUsername); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return errors.Join(finalErr, err)
		}
		hashed, err := auth.HashPassword("changeme123")
		if err != nil {
			return errors.Join(finalErr, err)
		}
		owner := &models.User{
			Username: DefaultOwnerUsername,
			Email:    "owner@example.com",
			Password: hashed,
			FullName: "System Owner",
			Role:     models.RoleOwner,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, nil, owner); err != nil && !errors.Is(err, apperrors.ErrUsernameExists) {
			logger.Error().Err(err).Msg("Error seeding owner user")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			logger.Info().Str("username", DefaultOwnerUsername).Msg("Default owner user seeded, change the password")
		}
	}

	return finalErr
}
