package dto

import (
	"time"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// StudentCreateRequest represents the payload for enrolling a student
type StudentCreateRequest struct {
	NIS         string  `json:"nis" validate:"required,max=20"`
	NISN        *string `json:"nisn,omitempty" validate:"omitempty,max=20"`
	FullName    string  `json:"fullName" validate:"required,max=100"`
	Gender      string  `json:"gender" validate:"required,oneof=L P"`
	BirthPlace  *string `json:"birthPlace,omitempty" validate:"omitempty,max=100"`
	BirthDate   *string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	ParentName  *string `json:"parentName,omitempty" validate:"omitempty,max=100"`
	ParentPhone *string `json:"parentPhone,omitempty" validate:"omitempty,max=20"`
	ClassID     int64   `json:"classId" validate:"required,gt=0"`
}

// Validate checks the payload against its field constraints
func (r *StudentCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds a Student from the payload. Validate must have been called
// first so the birth date parse cannot fail.
func (r *StudentCreateRequest) ToModel() *models.Student {
	var birthDate *time.Time
	if r.BirthDate != nil {
		d, _ := time.Parse(DateLayout, *r.BirthDate)
		birthDate = &d
	}
	return &models.Student{
		NIS:         r.NIS,
		NISN:        r.NISN,
		FullName:    r.FullName,
		Gender:      models.Gender(r.Gender),
		BirthPlace:  r.BirthPlace,
		BirthDate:   birthDate,
		Address:     r.Address,
		Phone:       r.Phone,
		ParentName:  r.ParentName,
		ParentPhone: r.ParentPhone,
		ClassID:     r.ClassID,
		IsActive:    true,
	}
}

// StudentUpdateRequest represents a partial student update. The NIS is
// immutable after enrollment and is deliberately not updatable here.
type StudentUpdateRequest struct {
	NISN        optional.Opt[string] `json:"nisn"`
	FullName    optional.Opt[string] `json:"fullName"`
	Gender      optional.Opt[string] `json:"gender"`
	BirthPlace  optional.Opt[string] `json:"birthPlace"`
	BirthDate   optional.Opt[string] `json:"birthDate"`
	Address     optional.Opt[string] `json:"address"`
	Phone       optional.Opt[string] `json:"phone"`
	ParentName  optional.Opt[string] `json:"parentName"`
	ParentPhone optional.Opt[string] `json:"parentPhone"`
	ClassID     optional.Opt[int64]  `json:"classId"`
	IsActive    optional.Opt[bool]   `json:"isActive"`
}

// Apply validates the set fields and merges them into the student
func (r *StudentUpdateRequest) Apply(s *models.Student) error {
	fields := map[string]interface{}{}

	validation.PatchOptionalString(fields, "nisn", r.NISN, 20, nil, &s.NISN)
	validation.PatchString(fields, "fullName", r.FullName, 100, nil, func(v string) { s.FullName = v })
	validation.PatchOptionalString(fields, "birthPlace", r.BirthPlace, 100, nil, &s.BirthPlace)
	validation.PatchOptionalString(fields, "address", r.Address, 500, nil, &s.Address)
	validation.PatchOptionalString(fields, "phone", r.Phone, 20, nil, &s.Phone)
	validation.PatchOptionalString(fields, "parentName", r.ParentName, 100, nil, &s.ParentName)
	validation.PatchOptionalString(fields, "parentPhone", r.ParentPhone, 20, nil, &s.ParentPhone)

	if r.Gender.Set {
		gender := models.Gender(r.Gender.Value)
		if r.Gender.Null || !gender.IsValid() {
			fields["gender"] = "must be one of: L, P"
		} else {
			s.Gender = gender
		}
	}

	if r.BirthDate.Set {
		if r.BirthDate.Null {
			s.BirthDate = nil
		} else if d, err := time.Parse(DateLayout, r.BirthDate.Value); err != nil {
			fields["birthDate"] = "must use the YYYY-MM-DD format"
		} else {
			s.BirthDate = &d
		}
	}

	if r.ClassID.Set {
		if r.ClassID.Null || r.ClassID.Value <= 0 {
			fields["classId"] = "must be a valid class reference"
		} else {
			s.ClassID = r.ClassID.Value
		}
	}

	if r.IsActive.Set && !r.IsActive.Null {
		s.IsActive = r.IsActive.Value
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
