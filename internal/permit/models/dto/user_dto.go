package dto

import (
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// UserCreateRequest represents the payload for creating an application user
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,oneof=owner admin staff"`
}

// Validate checks the payload against its field constraints
func (r *UserCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds a User from the payload. The password is hashed by the
// service, never stored as given.
func (r *UserCreateRequest) ToModel() *models.User {
	return &models.User{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Role:     models.UserRole(r.Role),
		IsActive: true,
	}
}

// UserUpdateRequest represents a partial user update
type UserUpdateRequest struct {
	Email    optional.Opt[string] `json:"email"`
	FullName optional.Opt[string] `json:"fullName"`
	Role     optional.Opt[string] `json:"role"`
	IsActive optional.Opt[bool]   `json:"isActive"`
}

// Apply validates the set fields and merges them into the user
func (r *UserUpdateRequest) Apply(u *models.User) error {
	fields := map[string]interface{}{}

	validation.PatchString(fields, "email", r.Email, 255, validation.CompiledPatterns.Email, func(v string) { u.Email = v })
	validation.PatchString(fields, "fullName", r.FullName, 100, nil, func(v string) { u.FullName = v })

	if r.Role.Set {
		role := models.UserRole(r.Role.Value)
		if r.Role.Null || !role.IsValid() {
			fields["role"] = "must be one of: owner, admin, staff"
		} else {
			u.Role = role
		}
	}

	if r.IsActive.Set && !r.IsActive.Null {
		u.IsActive = r.IsActive.Value
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}

// UserResponse is the user shape returned to callers, without the credential
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// NewUserResponse builds the response shape from a user
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
