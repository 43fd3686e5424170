package models

import (
	"time"
)

// Employee defines the employee model based on the 'employees' table. NIP is
// the civil-servant identification number, absent for honorary staff.
type Employee struct {
	ID        int64     `json:"id" db:"id"`
	NIP       *string   `json:"nip,omitempty" db:"nip"`
	FullName  string    `json:"fullName" db:"full_name"`
	Gender    Gender    `json:"gender" db:"gender"`
	Position  string    `json:"position" db:"position"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Address   *string   `json:"address,omitempty" db:"address"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
