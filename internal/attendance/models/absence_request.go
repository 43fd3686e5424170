package models

import (
	"time"
)

// AbsenceRequest defines the absence request model based on the
// 'absence_requests' table. Requests move from pending to approved or
// rejected; both are terminal. The processing fields are populated exactly
// when the status is no longer pending.
type AbsenceRequest struct {
	ID                  int64         `json:"id" db:"id"`
	StudentID           int64         `json:"studentId" db:"student_id"`
	AbsenceDate         time.Time     `json:"absenceDate" db:"absence_date"`
	Reason              string        `json:"reason" db:"reason"`
	SubmittedByName     string        `json:"submittedByName" db:"submitted_by_name"` // May differ from the guardian of record
	SubmittedByPhone    *string       `json:"submittedByPhone,omitempty" db:"submitted_by_phone"`
	SubmittedByEmail    *string       `json:"submittedByEmail,omitempty" db:"submitted_by_email"`
	Status              RequestStatus `json:"status" db:"status"`
	ProcessedBy         *int64        `json:"processedBy,omitempty" db:"processed_by"`
	ProcessedAt         *time.Time    `json:"processedAt,omitempty" db:"processed_at"`
	ProcessingNotes     string        `json:"processingNotes" db:"processing_notes"`
	SupportingDocuments []string      `json:"supportingDocuments" db:"supporting_documents"` // Ordered list of document URLs/paths
	CreatedAt           time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student         *Student `json:"student,omitempty"`
	ProcessedByUser *User    `json:"processedByUser,omitempty"`
}

// CanProcess reports whether the request can still be approved or rejected
func (r *AbsenceRequest) CanProcess() bool {
	return r.Status == RequestPending
}
