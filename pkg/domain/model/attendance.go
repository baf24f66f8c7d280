package model

import (
	"fmt"
	"time"

	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// SheetTimeLayout renders the session's scheduled time in the organization
// timezone on a 12-hour clock, matching the spreadsheet's historical format.
const SheetTimeLayout = "03:04 PM"

// AttendanceRecord is the finalized attendance status of one employee in one
// session. The document id is deterministic ({date}_{employeeUID}) so that
// repeated finalization upserts rather than appends.
type AttendanceRecord struct {
	ID string `firestore:"-" json:"id"`

	// Exactly one of StandupID / LearningHourID is set, holding the owning
	// session date. The two collections historically use different field names.
	StandupID      string `firestore:"standup_id,omitempty" json:"standup_id,omitempty"`
	LearningHourID string `firestore:"learning_hour_id,omitempty" json:"learning_hour_id,omitempty"`

	EmployeeUID   string `firestore:"employee_id" json:"employee_uid"`
	EmployeeID    string `firestore:"employeeId" json:"employee_id"`
	EmployeeName  string `firestore:"employee_name" json:"employee_name"`
	EmployeeEmail string `firestore:"employee_email" json:"employee_email"`

	Status types.AttendanceStatus `firestore:"status" json:"status"`
	Reason string                 `firestore:"reason,omitempty" json:"reason,omitempty"`

	ScheduledAt time.Time `firestore:"scheduled_at" json:"scheduled_at"`
	MarkedAt    time.Time `firestore:"markedAt" json:"marked_at"`
}

// NewAttendanceRecord builds the record for one employee in one session with
// its deterministic document id.
func NewAttendanceRecord(sessionType types.SessionType, date types.SessionDate, emp *Employee, status types.AttendanceStatus, reason string, scheduledAt, markedAt time.Time) *AttendanceRecord {
	r := &AttendanceRecord{
		ID:            AttendanceRecordID(date, emp.ID),
		EmployeeUID:   emp.ID,
		EmployeeID:    emp.EmployeeID,
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		Status:        status,
		Reason:        reason,
		ScheduledAt:   scheduledAt,
		MarkedAt:      markedAt,
	}
	if sessionType == types.SessionTypeLearningHour {
		r.LearningHourID = date.String()
	} else {
		r.StandupID = date.String()
	}
	return r
}

// AttendanceRecordID returns the deterministic document id for a session/employee pair
func AttendanceRecordID(date types.SessionDate, employeeUID string) string {
	return fmt.Sprintf("%s_%s", date, employeeUID)
}

// SessionDate returns the owning session date regardless of session type
func (r *AttendanceRecord) SessionDate() types.SessionDate {
	if r.LearningHourID != "" {
		return types.SessionDate(r.LearningHourID)
	}
	return types.SessionDate(r.StandupID)
}

// SheetRow maps the record to the fixed-width spreadsheet row:
// [sessionId, scheduledTime, sessionType, employeeId, name, email, status, reason]
func (r *AttendanceRecord) SheetRow(sessionType types.SessionType, loc *time.Location) []any {
	return []any{
		r.SessionDate().String(),
		r.ScheduledAt.In(loc).Format(SheetTimeLayout),
		sessionType.String(),
		r.EmployeeID,
		r.EmployeeName,
		r.EmployeeEmail,
		r.Status.String(),
		r.Reason,
	}
}
