package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     string    `json:"studentId" db:"student_id"` // Unique human-readable student code
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         *string   `json:"email,omitempty" db:"email"`
	Phone         *string   `json:"phone,omitempty" db:"phone"`
	Grade         string    `json:"grade" db:"grade"`         // Grade level (e.g. '10A', '11B')
	ClassName     string    `json:"className" db:"class_name"`
	GuardianName  *string   `json:"guardianName,omitempty" db:"guardian_name"`
	GuardianPhone *string   `json:"guardianPhone,omitempty" db:"guardian_phone"`
	IsActive      bool      `json:"isActive" db:"is_active"` // Whether the student is currently enrolled
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
