package dto

import (
	"time"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// PermitCreateRequest represents the payload for filing a student permit
type PermitCreateRequest struct {
	StudentID  int64   `json:"studentId" validate:"required,gt=0"`
	PermitType string  `json:"permitType" validate:"required,oneof=sick family other"`
	Reason     string  `json:"reason" validate:"required,max=1000"`
	StartDate  string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"endDate" validate:"required,datetime=2006-01-02"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Validate checks the payload against its field constraints
func (r *PermitCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds a StudentPermit from the payload. Validate must have been
// called first so the date parses cannot fail. New permits always start out
// pending; the service decides whether to auto-approve afterwards.
func (r *PermitCreateRequest) ToModel(createdBy int64) *models.StudentPermit {
	start, _ := time.Parse(DateLayout, r.StartDate)
	end, _ := time.Parse(DateLayout, r.EndDate)
	return &models.StudentPermit{
		StudentID:  r.StudentID,
		PermitType: models.PermitType(r.PermitType),
		Reason:     r.Reason,
		StartDate:  start,
		EndDate:    end,
		Status:     models.PermitPending,
		Notes:      r.Notes,
		CreatedBy:  createdBy,
	}
}

// PermitDecisionRequest represents an approve or reject decision
type PermitDecisionRequest struct {
	Status        string  `json:"status" validate:"required,oneof=approved rejected"`
	ApprovalNotes *string `json:"approvalNotes,omitempty" validate:"omitempty,max=500"`
}

// Validate checks the payload against its field constraints
func (r *PermitDecisionRequest) Validate() error {
	return validation.Struct(r)
}

// PublicPermitInfo is the restricted permit shape shown on the public board.
// Internal notes, actor identities and timestamps are deliberately absent.
type PublicPermitInfo struct {
	StudentName string `json:"studentName"`
	ClassName   string `json:"className"`
	PermitType  string `json:"permitType"`
	Reason      string `json:"reason"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// NewPublicPermitInfo builds the public projection from a permit with its
// student relation populated
func NewPublicPermitInfo(p *models.StudentPermit) PublicPermitInfo {
	info := PublicPermitInfo{
		PermitType: string(p.PermitType),
		Reason:     p.Reason,
		StartDate:  p.StartDate.Format(DateLayout),
		EndDate:    p.EndDate.Format(DateLayout),
	}
	if p.Student != nil {
		info.StudentName = p.Student.FullName
		if p.Student.Class != nil {
			info.ClassName = p.Student.Class.Name
		}
	}
	return info
}

// PermitStats aggregates permit counts for a date range
type PermitStats struct {
	StartDate string                      `json:"startDate"`
	EndDate   string                      `json:"endDate"`
	Total     int                         `json:"total"`
	ByStatus  map[models.PermitStatus]int `json:"byStatus"`
	ByType    map[models.PermitType]int   `json:"byType"`
}
