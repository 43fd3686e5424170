package models

import (
	"math"
	"time"
)

// AttendanceSummary defines the daily summary model based on the
// 'attendance_summaries' table. One row per calendar date, unique on date.
// It is derived data: the counts always sum to TotalStudents (students
// without a record for the date count as absent).
type AttendanceSummary struct {
	ID                   int64     `json:"id" db:"id"`
	SummaryDate          time.Time `json:"summaryDate" db:"summary_date"`
	TotalStudents        int       `json:"totalStudents" db:"total_students"`
	PresentCount         int       `json:"presentCount" db:"present_count"`
	AbsentCount          int       `json:"absentCount" db:"absent_count"`
	LateCount            int       `json:"lateCount" db:"late_count"`
	ExcusedCount         int       `json:"excusedCount" db:"excused_count"`
	AttendancePercentage float64   `json:"attendancePercentage" db:"attendance_percentage"`
	CreatedAt            time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}

// BuildSummary derives a summary from per-status record counts and the number
// of active students. Students with no record for the date are counted as
// absent. A date with zero active students yields a zero percentage. The
// percentage is rounded to two decimals so recomputation is deterministic.
func BuildSummary(date time.Time, totalStudents, present, absent, late, excused int) AttendanceSummary {
	unmarked := totalStudents - present - absent - late - excused
	if unmarked > 0 {
		absent += unmarked
	}

	var percentage float64
	if totalStudents > 0 {
		percentage = math.Round(float64(present)/float64(totalStudents)*100*100) / 100
	}

	return AttendanceSummary{
		SummaryDate:          date,
		TotalStudents:        totalStudents,
		PresentCount:         present,
		AbsentCount:          absent,
		LateCount:            late,
		ExcusedCount:         excused,
		AttendancePercentage: percentage,
	}
}
