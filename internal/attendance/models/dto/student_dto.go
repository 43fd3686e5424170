package dto

import (
	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// StudentCreateRequest represents the payload for registering a student
type StudentCreateRequest struct {
	StudentID     string  `json:"studentId" validate:"required,max=20"`
	FirstName     string  `json:"firstName" validate:"required,max=100"`
	LastName      string  `json:"lastName" validate:"required,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Grade         string  `json:"grade" validate:"required,max=10"`
	ClassName     string  `json:"className" validate:"required,max=50"`
	GuardianName  *string `json:"guardianName,omitempty" validate:"omitempty,max=200"`
	GuardianPhone *string `json:"guardianPhone,omitempty" validate:"omitempty,max=20"`
}

// Validate checks the payload against its field constraints
func (r *StudentCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds a Student from the payload
func (r *StudentCreateRequest) ToModel() *models.Student {
	return &models.Student{
		StudentID:     r.StudentID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		Grade:         r.Grade,
		ClassName:     r.ClassName,
		GuardianName:  r.GuardianName,
		GuardianPhone: r.GuardianPhone,
		IsActive:      true,
	}
}

// StudentUpdateRequest represents a partial student update. A field that is
// absent from the payload leaves the stored value unchanged; a field that is
// present null clears it (optional fields only).
type StudentUpdateRequest struct {
	FirstName     optional.Opt[string] `json:"firstName"`
	LastName      optional.Opt[string] `json:"lastName"`
	Email         optional.Opt[string] `json:"email"`
	Phone         optional.Opt[string] `json:"phone"`
	Grade         optional.Opt[string] `json:"grade"`
	ClassName     optional.Opt[string] `json:"className"`
	GuardianName  optional.Opt[string] `json:"guardianName"`
	GuardianPhone optional.Opt[string] `json:"guardianPhone"`
	IsActive      optional.Opt[bool]   `json:"isActive"`
}

// Apply validates the set fields and merges them into the student
func (r *StudentUpdateRequest) Apply(s *models.Student) error {
	fields := map[string]interface{}{}

	validation.PatchString(fields, "firstName", r.FirstName, 100, nil, func(v string) { s.FirstName = v })
	validation.PatchString(fields, "lastName", r.LastName, 100, nil, func(v string) { s.LastName = v })
	validation.PatchOptionalString(fields, "email", r.Email, 255, validation.CompiledPatterns.Email, &s.Email)
	validation.PatchOptionalString(fields, "phone", r.Phone, 20, nil, &s.Phone)
	validation.PatchString(fields, "grade", r.Grade, 10, nil, func(v string) { s.Grade = v })
	validation.PatchString(fields, "className", r.ClassName, 50, nil, func(v string) { s.ClassName = v })
	validation.PatchOptionalString(fields, "guardianName", r.GuardianName, 200, nil, &s.GuardianName)
	validation.PatchOptionalString(fields, "guardianPhone", r.GuardianPhone, 20, nil, &s.GuardianPhone)

	if r.IsActive.Set && !r.IsActive.Null {
		s.IsActive = r.IsActive.Value
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
