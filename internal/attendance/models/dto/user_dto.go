package dto

import (
	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// UserCreateRequest represents the payload for creating a staff user
type UserCreateRequest struct {
	Username  string `json:"username" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Role      string `json:"role" validate:"required,oneof=admin teacher staff"`
}

// Validate checks the payload against its field constraints
func (r *UserCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds a User from the payload
func (r *UserCreateRequest) ToModel() *models.User {
	return &models.User{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      models.StaffRole(r.Role),
		IsActive:  true,
	}
}

// UserUpdateRequest represents a partial staff user update
type UserUpdateRequest struct {
	Email     optional.Opt[string] `json:"email"`
	FirstName optional.Opt[string] `json:"firstName"`
	LastName  optional.Opt[string] `json:"lastName"`
	Role      optional.Opt[string] `json:"role"`
	IsActive  optional.Opt[bool]   `json:"isActive"`
}

// Apply validates the set fields and merges them into the user
func (r *UserUpdateRequest) Apply(u *models.User) error {
	fields := map[string]interface{}{}

	validation.PatchString(fields, "email", r.Email, 255, validation.CompiledPatterns.Email, func(v string) { u.Email = v })
	validation.PatchString(fields, "firstName", r.FirstName, 100, nil, func(v string) { u.FirstName = v })
	validation.PatchString(fields, "lastName", r.LastName, 100, nil, func(v string) { u.LastName = v })

	if r.Role.Set {
		role := models.StaffRole(r.Role.Value)
		if r.Role.Null || !role.IsValid() {
			fields["role"] = "must be one of: admin, teacher, staff"
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
