package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarws/schoolcore/internal/attendance/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

func TestAbsenceRequestCreateValidation(t *testing.T) {
	req := AbsenceRequestCreateRequest{
		StudentID:       7,
		AbsenceDate:     "2024-03-10",
		Reason:          "family event",
		SubmittedByName: "A Parent",
	}
	require.NoError(t, req.Validate())

	req.AbsenceDate = "10/03/2024"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "absenceDate")
}

func TestAbsenceRequestToModelDefaults(t *testing.T) {
	req := AbsenceRequestCreateRequest{
		StudentID:       7,
		AbsenceDate:     "2024-03-10",
		Reason:          "sick",
		SubmittedByName: "A Parent",
	}
	require.NoError(t, req.Validate())

	m := req.ToModel()
	assert.Equal(t, models.RequestPending, m.Status)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), m.AbsenceDate)
	// never nil, the column is a JSONB array
	assert.NotNil(t, m.SupportingDocuments)
	assert.Empty(t, m.SupportingDocuments)
}

func TestAbsenceProcessRequestRejectsOtherStates(t *testing.T) {
	for _, status := range []string{"approved", "rejected"} {
		req := AbsenceProcessRequest{Status: status}
		assert.NoError(t, req.Validate(), status)
	}

	req := AbsenceProcessRequest{Status: "pending"}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "status")
}

func TestPublicAbsentStudentOmitsContactDetails(t *testing.T) {
	phone := "08123456"
	email := "parent@example.com"
	request := &models.AbsenceRequest{
		StudentID:        7,
		AbsenceDate:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Reason:           "sick",
		SubmittedByName:  "A Parent",
		SubmittedByPhone: &phone,
		SubmittedByEmail: &email,
		Status:           models.RequestApproved,
		ProcessingNotes:  "internal note",
	}
	student := &models.Student{
		StudentID: "S-0007",
		FirstName: "Siti",
		LastName:  "Rahma",
		Grade:     "8",
		ClassName: "8B",
	}

	public := NewPublicAbsentStudent(request, student)
	assert.Equal(t, "S-0007", public.StudentID)
	assert.Equal(t, "Siti Rahma", public.FullName)
	assert.Equal(t, "2024-03-10", public.AbsenceDate)

	data, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(data), phone)
	assert.NotContains(t, string(data), email)
	assert.NotContains(t, string(data), "internal note")
}

func TestStudentUpdateApplyPresenceSemantics(t *testing.T) {
	email := "old@example.com"
	student := &models.Student{
		FirstName: "Budi",
		LastName:  "Santoso",
		Email:     &email,
		Grade:     "7",
		ClassName: "7A",
		IsActive:  true,
	}

	var req StudentUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Budi Updated","email":null}`), &req))
	require.NoError(t, req.Apply(student))

	assert.Equal(t, "Budi Updated", student.FirstName)
	assert.Nil(t, student.Email)
	// untouched fields stay put
	assert.Equal(t, "Santoso", student.LastName)
	assert.Equal(t, "7A", student.ClassName)
}

func TestStudentUpdateApplyRejectsClearingRequiredField(t *testing.T) {
	student := &models.Student{FirstName: "Budi", LastName: "Santoso"}

	var req StudentUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":null}`), &req))

	err := req.Apply(student)
	require.Error(t, err)
	assert.Equal(t, "cannot be cleared", apperrors.FieldErrors(err)["firstName"])
	assert.Equal(t, "Budi", student.FirstName)
}

func TestAttendanceRecordUpdateApply(t *testing.T) {
	rec := &models.AttendanceRecord{Status: models.AttendancePresent, Notes: "on time"}

	var req AttendanceRecordUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"late","notes":null}`), &req))
	require.NoError(t, req.Apply(rec))

	assert.Equal(t, models.AttendanceLate, rec.Status)
	assert.Empty(t, rec.Notes)

	var bad AttendanceRecordUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"vanished"}`), &bad))
	err := bad.Apply(rec)
	require.Error(t, err)
	assert.Equal(t, models.AttendanceLate, rec.Status)
}
