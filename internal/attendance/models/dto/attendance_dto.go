package dto

import (
	"time"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// AttendanceRecordCreateRequest represents the payload for recording
// attendance for a student on a date
type AttendanceRecordCreateRequest struct {
	StudentID      int64      `json:"studentId" validate:"required,gt=0"`
	AttendanceDate string     `json:"attendanceDate" validate:"required,datetime=2006-01-02"`
	Status         string     `json:"status" validate:"required,oneof=present absent late excused"`
	CheckInTime    *time.Time `json:"checkInTime,omitempty"`
	Notes          string     `json:"notes" validate:"max=500"`
}

// Validate checks the payload against its field constraints
func (r *AttendanceRecordCreateRequest) Validate() error {
	return validation.Struct(r)
}

// ToModel builds an AttendanceRecord from the payload. Validate must have
// been called first so the date parse cannot fail.
func (r *AttendanceRecordCreateRequest) ToModel(recordedBy int64) *models.AttendanceRecord {
	date, _ := time.Parse(DateLayout, r.AttendanceDate)
	return &models.AttendanceRecord{
		StudentID:      r.StudentID,
		AttendanceDate: date,
		Status:         models.AttendanceStatus(r.Status),
		CheckInTime:    r.CheckInTime,
		Notes:          r.Notes,
		RecordedBy:     recordedBy,
	}
}

// AttendanceRecordUpdateRequest represents a partial attendance record update
type AttendanceRecordUpdateRequest struct {
	Status      optional.Opt[string]    `json:"status"`
	CheckInTime optional.Opt[time.Time] `json:"checkInTime"`
	Notes       optional.Opt[string]    `json:"notes"`
}

// Apply validates the set fields and merges them into the record
func (r *AttendanceRecordUpdateRequest) Apply(rec *models.AttendanceRecord) error {
	fields := map[string]interface{}{}

	if r.Status.Set {
		status := models.AttendanceStatus(r.Status.Value)
		if r.Status.Null || !status.IsValid() {
			fields["status"] = "must be one of: present, absent, late, excused"
		} else {
			rec.Status = status
		}
	}

	if r.CheckInTime.Set {
		rec.CheckInTime = r.CheckInTime.Ptr()
	}

	if r.Notes.Set {
		if r.Notes.Null {
			rec.Notes = ""
		} else if len(r.Notes.Value) > 500 {
			fields["notes"] = "must be at most 500 characters"
		} else {
			rec.Notes = r.Notes.Value
		}
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}

// AttendanceStats represents the daily statistics response
type AttendanceStats struct {
	Date                 string  `json:"date"`
	TotalStudents        int     `json:"totalStudents"`
	PresentCount         int     `json:"presentCount"`
	AbsentCount          int     `json:"absentCount"`
	LateCount            int     `json:"lateCount"`
	ExcusedCount         int     `json:"excusedCount"`
	AttendancePercentage float64 `json:"attendancePercentage"`
	PendingRequests      int     `json:"pendingRequests"`
	ApprovedAbsences     int     `json:"approvedAbsences"`
}
