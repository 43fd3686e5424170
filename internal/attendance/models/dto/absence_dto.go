package dto

import (
	"time"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// AbsenceRequestCreateRequest represents the payload for submitting an
// absence request on behalf of a student
type AbsenceRequestCreateRequest struct {
	StudentID           int64    `json:"studentId" validate:"required,gt=0"`
	AbsenceDate         string   `json:"absenceDate" validate:"required,datetime=2006-01-02"`
	Reason              string   `json:"reason" validate:"required,max=1000"`
	SubmittedByName     string   `json:"submittedByName" validate:"required,max=200"`
	SubmittedByPhone    *string  `json:"submittedByPhone,omitempty" validate:"omitempty,max=20"`
	SubmittedByEmail    *string  `json:"submittedByEmail,omitempty" validate:"omitempty,email,max=255"`
	SupportingDocuments []string `json:"supportingDocuments" validate:"dive,max=500"`
}

// Validate checks the payload against its field constraints
func (r *AbsenceRequestCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds an AbsenceRequest from the payload. Validate must have been
// called first so the date parse cannot fail.
func (r *AbsenceRequestCreateRequest) ToModel() *models.AbsenceRequest {
	date, _ := time.Parse(DateLayout, r.AbsenceDate)
	docs := r.SupportingDocuments
	if docs == nil {
		docs = []string{}
	}
	return &models.AbsenceRequest{
		StudentID:           r.StudentID,
		AbsenceDate:         date,
		Reason:              r.Reason,
		SubmittedByName:     r.SubmittedByName,
		SubmittedByPhone:    r.SubmittedByPhone,
		SubmittedByEmail:    r.SubmittedByEmail,
		Status:              models.RequestPending,
		SupportingDocuments: docs,
	}
}

// AbsenceProcessRequest represents the payload for approving or rejecting a
// pending absence request
type AbsenceProcessRequest struct {
	Status          string `json:"status" validate:"required,oneof=approved rejected"`
	ProcessingNotes string `json:"processingNotes" validate:"max=500"`
}

// Validate checks the payload against its field constraints
func (r *AbsenceProcessRequest) Validate() error {
	return validation.Struct(r)
}

// PublicAbsentStudent is the restricted projection of an approved absence
// shown on the public board. No contact details, no internal notes.
type PublicAbsentStudent struct {
	StudentID   string `json:"studentId"`
	FullName    string `json:"fullName"`
	Grade       string `json:"grade"`
	ClassName   string `json:"className"`
	AbsenceDate string `json:"absenceDate"`
	Reason      string `json:"reason"`
}

// NewPublicAbsentStudent builds the public projection from an approved
// request and its student
func NewPublicAbsentStudent(req *models.AbsenceRequest, student *models.Student) PublicAbsentStudent {
	return PublicAbsentStudent{
		StudentID:   student.StudentID,
		FullName:    student.FullName(),
		Grade:       student.Grade,
		ClassName:   student.ClassName,
		AbsenceDate: req.AbsenceDate.Format(DateLayout),
		Reason:      req.Reason,
	}
}
