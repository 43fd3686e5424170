package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

type sampleRequest struct {
	Name   string `json:"name" validate:"required,max=10"`
	Email  string `json:"email" validate:"required,email"`
	Level  int    `json:"level" validate:"gte=1,lte=5"`
	Status string `json:"status" validate:"required,oneof=open closed"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
}

func validSample() sampleRequest {
	return sampleRequest{
		Name:   "ok",
		Email:  "a@b.com",
		Level:  3,
		Status: "open",
		Date:   "2024-03-10",
	}
}

func TestStructValid(t *testing.T) {
	s := validSample()
	assert.NoError(t, Struct(&s))
}

func TestStructReportsEveryBadFieldByJSONName(t *testing.T) {
	s := sampleRequest{
		Name:   "way too long for this field",
		Email:  "not-an-email",
		Level:  9,
		Status: "maybe",
		Date:   "10-03-2024",
	}

	err := Struct(&s)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	fields := apperrors.FieldErrors(err)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "level")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "date")

	assert.Equal(t, "must be at most 10 characters", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at most 5", fields["level"])
	assert.Equal(t, "must be one of: open, closed", fields["status"])
}

func TestStructMissingRequired(t *testing.T) {
	err := Struct(&sampleRequest{})
	require.Error(t, err)

	fields := apperrors.FieldErrors(err)
	require.NotNil(t, fields)
	assert.Equal(t, "is required", fields["name"])
}

func TestAcademicYearPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.AcademicYear.MatchString("2024/2025"))
	assert.False(t, CompiledPatterns.AcademicYear.MatchString("2024-2025"))
	assert.False(t, CompiledPatterns.AcademicYear.MatchString("24/25"))
}
