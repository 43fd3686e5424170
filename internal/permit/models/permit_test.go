package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDaysCountsBothEndpoints(t *testing.T) {
	p := StudentPermit{StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 12)}
	assert.Equal(t, 3, p.DurationDays())

	single := StudentPermit{StartDate: date(2024, 3, 10), EndDate: date(2024, 3, 10)}
	assert.Equal(t, 1, single.DurationDays())
}

func TestCanTransitionOnlyFromPending(t *testing.T) {
	p := StudentPermit{Status: PermitPending}
	assert.True(t, p.CanTransition())

	for _, status := range []PermitStatus{PermitApproved, PermitRejected, PermitCancelled} {
		p.Status = status
		assert.False(t, p.CanTransition(), string(status))
	}
}

func TestPermitStatusTerminality(t *testing.T) {
	assert.False(t, PermitPending.IsTerminal())
	assert.True(t, PermitApproved.IsTerminal())
	assert.True(t, PermitRejected.IsTerminal())
	assert.True(t, PermitCancelled.IsTerminal())
}

func TestGenderCodes(t *testing.T) {
	assert.True(t, GenderMale.IsValid())
	assert.True(t, GenderFemale.IsValid())
	assert.Equal(t, Gender("L"), GenderMale)
	assert.Equal(t, Gender("P"), GenderFemale)
	assert.False(t, Gender("M").IsValid())
}

func TestGradeLevels(t *testing.T) {
	for _, level := range []int{7, 8, 9} {
		assert.True(t, IsValidGradeLevel(level), level)
	}
	assert.False(t, IsValidGradeLevel(6))
	assert.False(t, IsValidGradeLevel(10))
}

func TestUserRoleAndPermitTypeValidity(t *testing.T) {
	assert.True(t, RoleOwner.IsValid())
	assert.False(t, UserRole("superuser").IsValid())

	assert.True(t, PermitSick.IsValid())
	assert.True(t, PermitFamily.IsValid())
	assert.True(t, PermitOther.IsValid())
	assert.False(t, PermitType("vacation").IsValid())
}
