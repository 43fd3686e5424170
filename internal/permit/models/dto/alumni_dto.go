package dto

import (
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// AlumniCreateRequest represents the payload for recording an alumnus
type AlumniCreateRequest struct {
	NIS            string  `json:"nis" validate:"required,max=20"`
	FullName       string  `json:"fullName" validate:"required,max=100"`
	Gender         string  `json:"gender" validate:"required,oneof=L P"`
	GraduationYear int     `json:"graduationYear" validate:"required,gte=2000,lte=3000"`
	LastClass      *string `json:"lastClass,omitempty" validate:"omitempty,max=20"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// Validate checks the payload against its field constraints
func (r *AlumniCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds an Alumni from the payload
func (r *AlumniCreateRequest) ToModel() *models.Alumni {
	return &models.Alumni{
		NIS:            r.NIS,
		FullName:       r.FullName,
		Gender:         models.Gender(r.Gender),
		GraduationYear: r.GraduationYear,
		LastClass:      r.LastClass,
		Phone:          r.Phone,
	}
}

// AlumniUpdateRequest represents a partial alumni update
type AlumniUpdateRequest struct {
	FullName       optional.Opt[string] `json:"fullName"`
	Gender         optional.Opt[string] `json:"gender"`
	GraduationYear optional.Opt[int]    `json:"graduationYear"`
	LastClass      optional.Opt[string] `json:"lastClass"`
	Phone          optional.Opt[string] `json:"phone"`
}

// Apply validates the set fields and merges them into the alumnus
func (r *AlumniUpdateRequest) Apply(a *models.Alumni) error {
	fields := map[string]interface{}{}

	validation.PatchString(fields, "fullName", r.FullName, 100, nil, func(v string) { a.FullName = v })
	validation.PatchOptionalString(fields, "lastClass", r.LastClass, 20, nil, &a.LastClass)
	validation.PatchOptionalString(fields, "phone", r.Phone, 20, nil, &a.Phone)
	validation.PatchInt(fields, "graduationYear", r.GraduationYear, 2000, 3000, func(v int) { a.GraduationYear = v })

	if r.Gender.Set {
		gender := models.Gender(r.Gender.Value)
		if r.Gender.Null || !gender.IsValid() {
			fields["gender"] = "must be one of: L, P"
		} else {
			a.Gender = gender
		}
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
