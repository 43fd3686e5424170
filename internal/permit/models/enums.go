package models

// UserRole defines the application user roles
type UserRole string

const (
	RoleOwner UserRole = "owner"
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// IsValid reports whether the role is one of the named codes
func (r UserRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// Gender uses the codes already persisted in existing data:
// "L" (laki-laki, male) and "P" (perempuan, female).
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// IsValid reports whether the gender is one of the named codes
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// PermitType defines the kinds of absence permits
type PermitType string

const (
	PermitSick   PermitType = "sick"
	PermitFamily PermitType = "family"
	PermitOther  PermitType = "other"
)

// IsValid reports whether the type is one of the named codes
func (t PermitType) IsValid() bool {
	switch t {
	case PermitSick, PermitFamily, PermitOther:
		return true
	}
	return false
}

// PermitStatus defines the permit workflow states
type PermitStatus string

const (
	PermitPending   PermitStatus = "pending"
	PermitApproved  PermitStatus = "approved"
	PermitRejected  PermitStatus = "rejected"
	PermitCancelled PermitStatus = "cancelled"
)

// IsValid reports whether the status is one of the named codes
func (s PermitStatus) IsValid() bool {
	switch s {
	case PermitPending, PermitApproved, PermitRejected, PermitCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status allows no further transitions
func (s PermitStatus) IsTerminal() bool {
	return s == PermitApproved || s == PermitRejected || s == PermitCancelled
}

// GradeLevels are the grade levels this school runs (junior high)
var GradeLevels = []int{7, 8, 9}

// IsValidGradeLevel reports whether the grade level is one the school runs
func IsValidGradeLevel(level int) bool {
	for _, l := range GradeLevels {
		if l == level {
			return true
		}
	}
	return false
}
