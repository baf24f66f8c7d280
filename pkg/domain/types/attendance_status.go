package types

import "fmt"

// AttendanceStatus represents the attendance state of one employee in one session
type AttendanceStatus string

const (
	AttendanceStatusPresent      AttendanceStatus = "Present"
	AttendanceStatusAbsent       AttendanceStatus = "Absent"
	AttendanceStatusMissed       AttendanceStatus = "Missed"
	AttendanceStatusNotAvailable AttendanceStatus = "Not Available"
)

// AllAttendanceStatuses returns all valid attendance statuses
func AllAttendanceStatuses() []AttendanceStatus {
	return []AttendanceStatus{
		AttendanceStatusPresent,
		AttendanceStatusAbsent,
		AttendanceStatusMissed,
		AttendanceStatusNotAvailable,
	}
}

// IsValid checks if the attendance status is valid
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendanceStatusPresent,
		AttendanceStatusAbsent,
		AttendanceStatusMissed,
		AttendanceStatusNotAvailable:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as Missed. Employees never
// explicitly marked default to Missed at finalize time.
func (s AttendanceStatus) Normalize() AttendanceStatus {
	if s == "" {
		return AttendanceStatusMissed
	}
	return s
}

// RequiresReason reports whether the status carries a free-text absence reason
func (s AttendanceStatus) RequiresReason() bool {
	return s == AttendanceStatusNotAvailable
}

// String returns the string representation of the attendance status
func (s AttendanceStatus) String() string {
	return string(s)
}

// ParseAttendanceStatus parses a string into an AttendanceStatus
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	status := AttendanceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid attendance status: %s", s)
	}
	return status, nil
}
