package dto

import (
	"github.com/fajarws/schoolcore/internal/permit/models"
	"github.com/fajarws/schoolcore/internal/pkg/apperrors"
	"github.com/fajarws/schoolcore/internal/pkg/optional"
	"github.com/fajarws/schoolcore/internal/pkg/validation"
)

// SettingsUpdateRequest represents a partial update of the settings singleton
type SettingsUpdateRequest struct {
	SchoolName             optional.Opt[string]                 `json:"schoolName"`
	AcademicYear           optional.Opt[string]                 `json:"academicYear"`
	MaintenanceMode        optional.Opt[bool]                   `json:"maintenanceMode"`
	PublicBoardEnabled     optional.Opt[bool]                   `json:"publicBoardEnabled"`
	AutoApproveSickPermits optional.Opt[bool]                   `json:"autoApproveSickPermits"`
	MaxPermitDays          optional.Opt[int]                    `json:"maxPermitDays"`
	NotificationSettings   optional.Opt[map[string]interface{}] `json:"notificationSettings"`
}

// Apply validates the set fields and merges them into the settings row
func (r *SettingsUpdateRequest) Apply(s *models.SystemSettings) error {
	fields := map[string]interface{}{}

	validation.PatchString(fields, "schoolName", r.SchoolName, 200, nil, func(v string) { s.SchoolName = v })
	validation.PatchString(fields, "academicYear", r.AcademicYear, 9, validation.CompiledPatterns.AcademicYear, func(v string) { s.AcademicYear = v })
	validation.PatchInt(fields, "maxPermitDays", r.MaxPermitDays, 1, 30, func(v int) { s.MaxPermitDays = v })

	if r.MaintenanceMode.Set && !r.MaintenanceMode.Null {
		s.MaintenanceMode = r.MaintenanceMode.Value
	}
	if r.PublicBoardEnabled.Set && !r.PublicBoardEnabled.Null {
		s.PublicBoardEnabled = r.PublicBoardEnabled.Value
	}
	if r.AutoApproveSickPermits.Set && !r.AutoApproveSickPermits.Null {
		s.AutoApproveSickPermits = r.AutoApproveSickPermits.Value
	}
	if r.NotificationSettings.Set {
		if r.NotificationSettings.Null {
			s.NotificationSettings = map[string]interface{}{}
		} else {
			s.NotificationSettings = r.NotificationSettings.Value
		}
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("validation failed", fields)
	}
	return nil
}
