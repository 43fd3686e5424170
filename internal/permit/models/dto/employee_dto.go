package dto

import (
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// EmployeeCreateRequest represents the payload for registering an employee.
// NIP is optional because honorary staff do not carry one.
type EmployeeCreateRequest struct {
	NIP      *string `json:"nip,omitempty" validate:"omitempty,max=30"`
	FullName string  `json:"fullName" validate:"required,max=100"`
	Gender   string  `json:"gender" validate:"required,oneof=L P"`
	Position string  `json:"position" validate:"required,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// Validate checks the payload against its field constraints
func (r *EmployeeCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds an Employee from the payload
func (r *EmployeeCreateRequest) ToModel() *models.Employee {
	return &models.Employee{
		NIP:      r.NIP,
		FullName: r.FullName,
		Gender:   models.Gender(r.Gender),
		Position: r.Position,
		Phone:    r.Phone,
		Address:  r.Address,
		IsActive: true,
	}
}

// EmployeeUpdateRequest represents a partial employee update
type EmployeeUpdateRequest struct {
	NIP      optional.Opt[string] `json:"nip"`
	FullName optional.Opt[string] `json:"fullName"`
	Gender   optional.Opt[string] `json:"gender"`
	Position optional.Opt[string] `json:"position"`
	Phone    optional.Opt[string] `json:"phone"`
	Address  optional.Opt[string] `json:"address"`
	IsActive optional.Opt[bool]   `json:"isActive"`
}

// Apply validates the set fields and merges them into the employee
func (r *EmployeeUpdateRequest) Apply(e *models.Employee) error {
	fields := map[string]interface{}{}

	validation.PatchOptionalString(fields, "nip", r.NIP, 30, nil, &e.NIP)
	validation.PatchString(fields, "fullName", r.FullName, 100, nil, func(v string) { e.FullName = v })
	validation.PatchString(fields, "position", r.Position, 100, nil, func(v string) { e.Position = v })
	validation.PatchOptionalString(fields, "phone", r.Phone, 20, nil, &e.Phone)
	validation.PatchOptionalString(fields, "address", r.Address, 500, nil, &e.Address)

	if r.Gender.Set {
		gender := models.Gender(r.Gender.Value)
		if r.Gender.Null || !gender.IsValid() {
			fields["gender"] = "must be one of: L, P"
		} else {
			e.Gender = gender
		}
	}

	if r.IsActive.Set && !r.IsActive.Null {
		e.IsActive = r.IsActive.Value
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
