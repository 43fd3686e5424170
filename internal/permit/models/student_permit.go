package models

import (
	"time"
)

// StudentPermit defines the permit model based on the 'student_permits'
// table. Permits move from pending to approved, rejected or cancelled; all
// three are terminal. ApprovedAt is set only on the transition into approved.
type StudentPermit struct {
	ID            int64        `json:"id" db:"id"`
	StudentID     int64        `json:"studentId" db:"student_id"`
	PermitType    PermitType   `json:"permitType" db:"permit_type"`
	Reason        string       `json:"reason" db:"reason"`
	StartDate     time.Time    `json:"startDate" db:"start_date"`
	EndDate       time.Time    `json:"endDate" db:"end_date"`
	Status        PermitStatus `json:"status" db:"status"`
	Notes         *string      `json:"notes,omitempty" db:"notes"`
	ApprovalNotes *string      `json:"approvalNotes,omitempty" db:"approval_notes"`
	CreatedBy     int64        `json:"createdBy" db:"created_by"`
	UpdatedBy     *int64       `json:"updatedBy,omitempty" db:"updated_by"`
	ApprovedAt    *time.Time   `json:"approvedAt,omitempty" db:"approved_at"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// DurationDays returns the permit length in days, counting both endpoints
func (p *StudentPermit) DurationDays() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// CanTransition reports whether the permit can still move to another state
func (p *StudentPermit) CanTransition() bool {
	return p.Status == PermitPending
}
