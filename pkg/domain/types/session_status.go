package types

import "fmt"

// SessionStatus represents the lifecycle state of a session document
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusActive    SessionStatus = "active"
	SessionStatusEnded     SessionStatus = "ended"
)

// AllSessionStatuses returns all valid session statuses
func AllSessionStatuses() []SessionStatus {
	return []SessionStatus{
		SessionStatusScheduled,
		SessionStatusActive,
		SessionStatusEnded,
	}
}

// IsValid checks if the session status is valid
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusScheduled,
		SessionStatusActive,
		SessionStatusEnded:
		return true
	default:
		return false
	}
}

// String returns the string representation of the session status
func (s SessionStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the status may move to next. The lifecycle
// is monotonic with a single forward path: scheduled -> active -> ended.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionStatusScheduled:
		return next == SessionStatusActive
	case SessionStatusActive:
		return next == SessionStatusEnded
	default:
		return false
	}
}

// ParseSessionStatus parses a string into a SessionStatus
func ParseSessionStatus(s string) (SessionStatus, error) {
	status := SessionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid session status: %s", s)
	}
	return status, nil
}
