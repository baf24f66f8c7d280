package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

type attendanceRepository struct {
	mu      sync.RWMutex
	records map[types.SessionType]map[string]*model.AttendanceRecord
}

func newAttendanceRepository() *attendanceRepository {
	records := make(map[types.SessionType]map[string]*model.AttendanceRecord)
	for _, t := range types.AllSessionTypes() {
		records[t] = make(map[string]*model.AttendanceRecord)
	}
	return &attendanceRepository{records: records}
}

func copyAttendanceRecord(rec *model.AttendanceRecord) *model.AttendanceRecord {
	copied := *rec
	return &copied
}

func (r *attendanceRepository) SaveAll(ctx context.Context, sessionType types.SessionType, records []*model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Upsert by deterministic id so that repeated finalization overwrites
	// rather than appends.
	for _, rec := range records {
		r.records[sessionType][rec.ID] = copyAttendanceRecord(rec)
	}
	return nil
}

func (r *attendanceRepository) ListBySession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) ([]*model.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*model.AttendanceRecord
	for _, rec := range r.records[sessionType] {
		if rec.SessionDate() == date {
			records = append(records, copyAttendanceRecord(rec))
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
