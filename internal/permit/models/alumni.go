package models

import (
	"time"
)

// Alumni defines the alumni model based on the 'alumni' table. The NIS is
// deliberately not unique here: graduating does not remove the original
// student row, so the same number can appear in both tables.
type Alumni struct {
	ID             int64     `json:"id" db:"id"`
	NIS            string    `json:"nis" db:"nis"`
	FullName       string    `json:"fullName" db:"full_name"`
	Gender         Gender    `json:"gender" db:"gender"`
	GraduationYear int       `json:"graduationYear" db:"graduation_year"`
	LastClass      *string   `json:"lastClass,omitempty" db:"last_class"`
	Phone          *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
