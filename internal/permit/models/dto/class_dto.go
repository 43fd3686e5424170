package dto

import (
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// ClassCreateRequest represents the payload for creating a school class
type ClassCreateRequest struct {
	Name            string `json:"name" validate:"required,max=20"`
	GradeLevel      int    `json:"gradeLevel" validate:"required,oneof=7 8 9"`
	HomeroomTeacher string `json:"homeroomTeacher" validate:"required,max=100"`
	AcademicYear    string `json:"academicYear" validate:"required,max=9"`
}

// Validate checks the payload against its field constraints, including the
// academic year format (e.g. "2024/2025")
func (r *ClassCreateRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if !validation.CompiledPatterns.AcademicYear.MatchString(r.AcademicYear) {
		return apperrors.NewValidationError("validation failed", map[string]interface{}{
			"academicYear": "must use the YYYY/YYYY format",
		})
	}
	return nil
}

// ToModel builds a SchoolClass from the payload
func (r *ClassCreateRequest) ToModel() *models.SchoolClass {
	return &models.SchoolClass{
		Name:            r.Name,
		GradeLevel:      r.GradeLevel,
		HomeroomTeacher: r.HomeroomTeacher,
		AcademicYear:    r.AcademicYear,
		IsActive:        true,
	}
}

// ClassUpdateRequest represents a partial school class update
type ClassUpdateRequest struct {
	Name            optional.Opt[string] `json:"name"`
	GradeLevel      optional.Opt[int]    `json:"gradeLevel"`
	HomeroomTeacher optional.Opt[string] `json:"homeroomTeacher"`
	AcademicYear    optional.Opt[string] `json:"academicYear"`
	IsActive        optional.Opt[bool]   `json:"isActive"`
}

// Apply validates the set fields and merges them into the class
func (r *ClassUpdateRequest) Apply(c *models.SchoolClass) error {
	fields := map[string]interface{}{}

	validation.PatchString(fields, "name", r.Name, 20, nil, func(v string) { c.Name = v })
	validation.PatchString(fields, "homeroomTeacher", r.HomeroomTeacher, 100, nil, func(v string) { c.HomeroomTeacher = v })
	validation.PatchString(fields, "academicYear", r.AcademicYear, 9, validation.CompiledPatterns.AcademicYear, func(v string) { c.AcademicYear = v })

	if r.GradeLevel.Set {
		if r.GradeLevel.Null || !models.IsValidGradeLevel(r.GradeLevel.Value) {
			fields["gradeLevel"] = "must be one of: 7, 8, 9"
		} else {
			c.GradeLevel = r.GradeLevel.Value
		}
	}

	if r.IsActive.Set && !r.IsActive.Null {
		c.IsActive = r.IsActive.Value
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
