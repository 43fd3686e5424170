package models

import (
	"time"
)

// SchoolClass defines the class model based on the 'school_classes' table
type SchoolClass struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"` // Unique class name, e.g. '7A'
	GradeLevel      int       `json:"gradeLevel" db:"grade_level"`
	HomeroomTeacher string    `json:"homeroomTeacher" db:"homeroom_teacher"`
	AcademicYear    string    `json:"academicYear" db:"academic_year"` // e.g. '2024/2025'
	IsActive        bool      `json:"isActive" db:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
