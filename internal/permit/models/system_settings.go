package models

import (
	"time"
)

// SettingsID is the fixed primary key of the singleton settings row
const SettingsID int64 = 1

// SystemSettings defines the process-wide configuration row based on the
// 'system_settings' table. Exactly one row exists, pinned to id 1.
type SystemSettings struct {
	ID                     int64                  `json:"id" db:"id"`
	SchoolName             string                 `json:"schoolName" db:"school_name"`
	AcademicYear           string                 `json:"academicYear" db:"academic_year"`
	MaintenanceMode        bool                   `json:"maintenanceMode" db:"maintenance_mode"`
	PublicBoardEnabled     bool                   `json:"publicBoardEnabled" db:"public_board_enabled"`
	AutoApproveSickPermits bool                   `json:"autoApproveSickPermits" db:"auto_approve_sick_permits"`
	MaxPermitDays          int                    `json:"maxPermitDays" db:"max_permit_days"`
	NotificationSettings   map[string]interface{} `json:"notificationSettings" db:"notification_settings"`
	CreatedAt              time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time              `json:"updatedAt" db:"updated_at"`
}
