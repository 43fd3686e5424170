package models

import (
	"time"
)

// AttendanceRecord defines the daily attendance record model based on the
// 'attendance_records' table. The (student_id, attendance_date) pair is
// unique: one record per student per day.
type AttendanceRecord struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	AttendanceDate time.Time        `json:"attendanceDate" db:"attendance_date"`
	Status         AttendanceStatus `json:"status" db:"status"`
	CheckInTime    *time.Time       `json:"checkInTime,omitempty" db:"check_in_time"`
	Notes          string           `json:"notes" db:"notes"`
	RecordedBy     int64            `json:"recordedBy" db:"recorded_by"` // Staff member who recorded attendance
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student        *Student `json:"student,omitempty"`
	RecordedByUser *User    `json:"recordedByUser,omitempty"`
}
