package types

import "fmt"

// SessionType distinguishes the two daily session kinds tracked by the system
type SessionType string

const (
	SessionTypeStandup      SessionType = "standups"
	SessionTypeLearningHour SessionType = "learning_hours"
)

// AllSessionTypes returns all valid session types
func AllSessionTypes() []SessionType {
	return []SessionType{
		SessionTypeStandup,
		SessionTypeLearningHour,
	}
}

// IsValid checks if the session type is valid
func (t SessionType) IsValid() bool {
	switch t {
	case SessionTypeStandup,
		SessionTypeLearningHour:
		return true
	default:
		return false
	}
}

// String returns the string representation of the session type
func (t SessionType) String() string {
	return string(t)
}

// SessionCollection returns the Firestore collection holding session documents
func (t SessionType) SessionCollection() string {
	return string(t)
}

// AttendanceCollection returns the Firestore collection holding finalized
// attendance records for this session type
func (t SessionType) AttendanceCollection() string {
	if t == SessionTypeLearningHour {
		return "learning_hours_attendance"
	}
	return "attendance"
}

// AttendanceKeyField returns the attendance record field holding the owning
// session date. The two collections historically use different field names.
func (t SessionType) AttendanceKeyField() string {
	if t == SessionTypeLearningHour {
		return "learning_hour_id"
	}
	return "standup_id"
}

// SheetTabIndex returns the positional tab index in the attendance
// spreadsheet. Tab 0 holds standups, tab 1 holds learning hours. The
// spreadsheet is maintained by humans; the positional contract is preserved
// for output compatibility.
func (t SessionType) SheetTabIndex() int {
	if t == SessionTypeLearningHour {
		return 1
	}
	return 0
}

// ParseSessionType parses a string into a SessionType
func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid session type: %s", s)
	}
	return t, nil
}
