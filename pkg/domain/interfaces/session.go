package interfaces

import (
	"context"

	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// SessionRepository provides access to daily session documents
type SessionRepository interface {
	// Create creates the session document for its date. It fails when a
	// document for that date already exists (double-fire guard for the
	// scheduled trigger).
	Create(ctx context.Context, session *model.Session) error

	// Get retrieves the session for a date
	Get(ctx context.Context, sessionType types.SessionType, date types.SessionDate) (*model.Session, error)

	// Update replaces the session document
	Update(ctx context.Context, session *model.Session) error

	// SetTempAttendance records one employee's live status (and optional
	// absence reason) on an active session. Last write wins.
	SetTempAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, employeeUID string, status types.AttendanceStatus, reason string) error

	// ListUnsynced returns ended sessions whose synced flag is still false
	ListUnsynced(ctx context.Context, sessionType types.SessionType) ([]*model.Session, error)
}
