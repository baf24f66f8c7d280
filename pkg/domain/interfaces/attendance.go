package interfaces

import (
	"context"

	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

// AttendanceRepository provides access to finalized attendance records
type AttendanceRepository interface {
	// SaveAll upserts all records in a single atomic batch. Either every
	// record is written or none is.
	SaveAll(ctx context.Context, sessionType types.SessionType, records []*model.AttendanceRecord) error

	// ListBySession returns all records for one session date
	ListBySession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) ([]*model.AttendanceRecord, error)
}
