package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var summaryDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func TestBuildSummaryCountsSumToTotal(t *testing.T) {
	// 30 students, 25 present, 2 late, 1 excused, nobody marked absent:
	// the 2 unmarked students are absorbed into the absent count.
	s := BuildSummary(summaryDate, 30, 25, 0, 2, 1)

	assert.Equal(t, 30, s.TotalStudents)
	assert.Equal(t, 25, s.PresentCount)
	assert.Equal(t, 2, s.AbsentCount)
	assert.Equal(t, 2, s.LateCount)
	assert.Equal(t, 1, s.ExcusedCount)
	assert.Equal(t, 30, s.PresentCount+s.AbsentCount+s.LateCount+s.ExcusedCount)
}

func TestBuildSummaryZeroStudents(t *testing.T) {
	s := BuildSummary(summaryDate, 0, 0, 0, 0, 0)

	assert.Equal(t, 0, s.TotalStudents)
	assert.Equal(t, 0.0, s.AttendancePercentage)
}

func TestBuildSummaryPercentageRounded(t *testing.T) {
	// 20/30 present is 66.666...%, stored as 66.67
	s := BuildSummary(summaryDate, 30, 20, 10, 0, 0)
	assert.Equal(t, 66.67, s.AttendancePercentage)

	full := BuildSummary(summaryDate, 12, 12, 0, 0, 0)
	assert.Equal(t, 100.0, full.AttendancePercentage)
}

func TestBuildSummaryIsDeterministic(t *testing.T) {
	first := BuildSummary(summaryDate, 30, 20, 5, 3, 2)
	second := BuildSummary(summaryDate, 30, 20, 5, 3, 2)
	assert.Equal(t, first, second)
}

func TestAttendanceStatusIsValid(t *testing.T) {
	for _, status := range []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused} {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, AttendanceStatus("sleeping").IsValid())
}

func TestRequestStatusTerminality(t *testing.T) {
	assert.False(t, RequestPending.IsTerminal())
	assert.True(t, RequestApproved.IsTerminal())
	assert.True(t, RequestRejected.IsTerminal())
}

func TestAbsenceRequestCanProcess(t *testing.T) {
	req := AbsenceRequest{Status: RequestPending}
	assert.True(t, req.CanProcess())

	req.Status = RequestApproved
	assert.False(t, req.CanProcess())
}
