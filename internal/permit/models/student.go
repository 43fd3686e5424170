package models

import (
	"time"
)

// Student defines the student model based on the 'students' table. NIS is
// the unique local enrollment number; NISN is the national student number.
type Student struct {
	ID          int64      `json:"id" db:"id"`
	NIS         string     `json:"nis" db:"nis"`
	NISN        *string    `json:"nisn,omitempty" db:"nisn"`
	FullName    string     `json:"fullName" db:"full_name"`
	Gender      Gender     `json:"gender" db:"gender"`
	BirthPlace  *string    `json:"birthPlace,omitempty" db:"birth_place"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Address     *string    `json:"address,omitempty" db:"address"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	ParentName  *string    `json:"parentName,omitempty" db:"parent_name"`
	ParentPhone *string    `json:"parentPhone,omitempty" db:"parent_phone"`
	ClassID     int64      `json:"classId" db:"class_id"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Class *SchoolClass `json:"class,omitempty"`
}
