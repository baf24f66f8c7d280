package model

import (
	"time"

	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// Session is one day's standup or learning-hour event. The document id is the
// session date (yyyy-MM-dd); one document exists per calendar day per type.
type Session struct {
	Date types.SessionDate `firestore:"-"`
	Type types.SessionType `firestore:"-"`

	Status        types.SessionStatus `firestore:"status"`
	ScheduledTime time.Time           `firestore:"scheduledTime"`
	StartedAt     time.Time           `firestore:"startedAt,omitempty"`
	EndedAt       time.Time           `firestore:"endedAt,omitempty"`

	// TempAttendance and AbsenceReasons are mutated live while the session is
	// active, keyed by employee UID. Last write wins; a single operator marks
	// a given day's session in practice.
	TempAttendance map[string]types.AttendanceStatus `firestore:"tempAttendance,omitempty"`
	AbsenceReasons map[string]string                 `firestore:"absenceReasons,omitempty"`

	// Synced is set once locked learning points have been externalized.
	// Unused for standups.
	Synced   bool      `firestore:"synced"`
	SyncedAt time.Time `firestore:"syncedAt,omitempty"`
}
