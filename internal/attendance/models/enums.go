package models

// AttendanceStatus defines the daily attendance status codes
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// IsValid reports whether the status is one of the named codes
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// RequestStatus defines the absence request workflow states
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsValid reports whether the status is one of the named codes
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status allows no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// StaffRole defines the staff user roles
type StaffRole string

const (
	RoleAdmin   StaffRole = "admin"
	RoleTeacher StaffRole = "teacher"
	RoleStaff   StaffRole = "staff"
)

// IsValid reports whether the role is one of the named codes
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStaff:
		return true
	}
	return false
}
