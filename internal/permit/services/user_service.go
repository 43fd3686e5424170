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
	"github.com/fajarws/schoolcore/internal/pkg/auth"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
)

// UserService defines the interface for application user management
type UserService interface {
	CreateUser(ctx context.Context, actorID int64, req *dto.UserCreateRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error)
	UpdateUser(ctx context.Context, actorID, id int64, req *dto.UserUpdateRequest) (*models.User, error)
	ChangePassword(ctx context.Context, actorID, id int64, newPassword string) error
	DeactivateUser(ctx context.Context, actorID, id int64) error
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	pool      *pgxpool.Pool
	userRepo  *repositories.UserRepository
	auditRepo *repositories.AuditLogRepository
}

// NewUserService creates a new user service instance
func NewUserService(
	pool *pgxpool.Pool,
	userRepo *repositories.UserRepository,
	auditRepo *repositories.AuditLogRepository,
) UserService {
	return &userServiceImpl{
		pool:      pool,
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// CreateUser validates the payload, hashes the credential and stores the user
func (s *userServiceImpl) CreateUser(ctx context.Context, actorID int64, req *dto.UserCreateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := req.ToModel()
	user.Password = hashed

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionCreate, "users", user.ID, nil, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userId", user.ID).
		Str("username", user.Username).
		Msg("User created")

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername retrieves a user by username
func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidationFailed)
	}
	return s.userRepo.GetByUsername(ctx, username)
}

// ListUsers retrieves users matching the filter
func (s *userServiceImpl) ListUsers(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error) {
	return s.userRepo.List(ctx, filter)
}

// UpdateUser applies a partial update to an existing user
func (s *userServiceImpl) UpdateUser(ctx context.Context, actorID, id int64, req *dto.UserUpdateRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *user
	if err := req.Apply(user); err != nil {
		return nil, err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "users", user.ID, &before, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword replaces the stored credential hash
func (s *userServiceImpl) ChangePassword(ctx context.Context, actorID, id int64, newPassword string) error {
	if len(newPassword) < 8 || len(newPassword) > 72 {
		return apperrors.NewValidationError("validation failed", map[string]interface{}{
			"password": "must be between 8 and 72 characters",
		})
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.UpdatePassword(ctx, tx, id, hashed); err != nil {
			return err
		}
		// The credential itself never lands in the snapshot
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionUpdate, "users", id,
			map[string]interface{}{"password": "changed"}, nil)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("userId", id).Msg("User password changed")
	return nil
}

// DeactivateUser soft-deletes a user
func (s *userServiceImpl) DeactivateUser(ctx context.Context, actorID, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.Deactivate(ctx, tx, id); err != nil {
			return err
		}
		return recordAudit(ctx, tx, s.auditRepo, actorID,
			models.AuditActionDelete, "users", id, user, nil)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("userId", id).Msg("User deactivated")
	return nil
}

// VerifyCredentials checks a username and password pair. Disabled accounts
// fail even with the right password, with a distinct error.
func (s *userServiceImpl) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return user, nil
}
