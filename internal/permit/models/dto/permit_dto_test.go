package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
)

func validPermitCreate() PermitCreateRequest {
	return PermitCreateRequest{
		StudentID:  5,
		PermitType: "sick",
		Reason:     "fever",
		StartDate:  "2024-03-08",
		EndDate:    "2024-03-10",
	}
}

func TestPermitCreateValidation(t *testing.T) {
	req := validPermitCreate()
	require.NoError(t, req.Validate())

	req.PermitType = "vacation"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "permitType")

	req = validPermitCreate()
	req.StartDate = "08-03-2024"
	err = req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "startDate")
}

func TestPermitCreateReasonLength(t *testing.T) {
	req := validPermitCreate()
	req.Reason = strings.Repeat("a", 1000)
	assert.NoError(t, req.Validate())

	req.Reason = strings.Repeat("a", 1001)
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "must be at most 1000 characters", apperrors.FieldErrors(err)["reason"])
}

func TestPermitCreateToModel(t *testing.T) {
	req := validPermitCreate()
	require.NoError(t, req.Validate())

	p := req.ToModel(11)
	assert.Equal(t, models.PermitPending, p.Status)
	assert.Equal(t, int64(11), p.CreatedBy)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), p.StartDate)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), p.EndDate)
	assert.Nil(t, p.ApprovedAt)
	assert.Nil(t, p.UpdatedBy)
}

func TestPermitDecisionOnlyApprovedOrRejected(t *testing.T) {
	for _, status := range []string{"approved", "rejected"} {
		req := PermitDecisionRequest{Status: status}
		assert.NoError(t, req.Validate(), status)
	}

	for _, status := range []string{"pending", "cancelled", ""} {
		req := PermitDecisionRequest{Status: status}
		assert.Error(t, req.Validate(), status)
	}
}

func TestPublicPermitInfoRestrictsFields(t *testing.T) {
	notes := "guardian called in"
	approvalNotes := "checked with homeroom teacher"
	permit := &models.StudentPermit{
		PermitType:    models.PermitSick,
		Reason:        "fever",
		StartDate:     time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:        models.PermitApproved,
		Notes:         &notes,
		ApprovalNotes: &approvalNotes,
		CreatedBy:     11,
		Student: &models.Student{
			FullName: "Siti Rahma",
			Class:    &models.SchoolClass{Name: "8B"},
		},
	}

	info := NewPublicPermitInfo(permit)
	assert.Equal(t, "Siti Rahma", info.StudentName)
	assert.Equal(t, "8B", info.ClassName)
	assert.Equal(t, "sick", info.PermitType)
	assert.Equal(t, "2024-03-08", info.StartDate)
	assert.Equal(t, "2024-03-10", info.EndDate)

	data, err := json.Marshal(info)
	require.NoError(t, err)
	assert.NotContains(t, string(data), notes)
	assert.NotContains(t, string(data), approvalNotes)
	assert.NotContains(t, string(data), "createdBy")
}

func TestStudentCreateValidation(t *testing.T) {
	req := StudentCreateRequest{
		NIS:      "2024001",
		FullName: "Budi Santoso",
		Gender:   "L",
		ClassID:  3,
	}
	require.NoError(t, req.Validate())

	req.Gender = "X"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "gender")
}

func TestStudentUpdateApply(t *testing.T) {
	nisn := "0051234567"
	student := &models.Student{
		NIS:      "2024001",
		NISN:     &nisn,
		FullName: "Budi Santoso",
		Gender:   models.GenderMale,
		ClassID:  3,
		IsActive: true,
	}

	var req StudentUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fullName":"Budi S.","nisn":null,"classId":4}`), &req))
	require.NoError(t, req.Apply(student))

	assert.Equal(t, "Budi S.", student.FullName)
	assert.Nil(t, student.NISN)
	assert.Equal(t, int64(4), student.ClassID)
	// NIS is immutable, no update path exists for it
	assert.Equal(t, "2024001", student.NIS)
}

func TestClassCreateValidatesAcademicYear(t *testing.T) {
	req := ClassCreateRequest{
		Name:            "7A",
		GradeLevel:      7,
		HomeroomTeacher: "Ibu Sari",
		AcademicYear:    "2024/2025",
	}
	require.NoError(t, req.Validate())

	req.AcademicYear = "2024-2025"
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "academicYear")

	req.AcademicYear = "2024/2025"
	req.GradeLevel = 10
	err = req.Validate()
	require.Error(t, err)
	assert.Contains(t, apperrors.FieldErrors(err), "gradeLevel")
}

func TestAlumniGraduationYearBounds(t *testing.T) {
	req := AlumniCreateRequest{
		NIS:            "2018001",
		FullName:       "Rina",
		Gender:         "P",
		GraduationYear: 2021,
	}
	require.NoError(t, req.Validate())

	req.GraduationYear = 1999
	assert.Error(t, req.Validate())

	req.GraduationYear = 3001
	assert.Error(t, req.Validate())
}

func TestSettingsUpdateApply(t *testing.T) {
	settings := &models.SystemSettings{
		ID:                 models.SettingsID,
		SchoolName:         "SMP 1",
		AcademicYear:       "2024/2025",
		PublicBoardEnabled: true,
		MaxPermitDays:      3,
	}

	var req SettingsUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"maxPermitDays":7,"publicBoardEnabled":false}`), &req))
	require.NoError(t, req.Apply(settings))

	assert.Equal(t, 7, settings.MaxPermitDays)
	assert.False(t, settings.PublicBoardEnabled)
	assert.Equal(t, "SMP 1", settings.SchoolName)

	var bad SettingsUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"maxPermitDays":31}`), &bad))
	err := bad.Apply(settings)
	require.Error(t, err)
	assert.Equal(t, "must be between 1 and 30", apperrors.FieldErrors(err)["maxPermitDays"])
	assert.Equal(t, 7, settings.MaxPermitDays)
}

func TestUserCreateRejectsShortPassword(t *testing.T) {
	req := UserCreateRequest{
		Username: "admin1",
		Email:    "admin@example.com",
		Password: "short",
		FullName: "Admin One",
		Role:     "admin",
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "must be at least 8 characters", apperrors.FieldErrors(err)["password"])
}
