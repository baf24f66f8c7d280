package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionType]map[types.SessionDate]*model.Session
}

func newSessionRepository() *sessionRepository {
	sessions := make(map[types.SessionType]map[types.SessionDate]*model.Session)
	for _, t := range types.AllSessionTypes() {
		sessions[t] = make(map[types.SessionDate]*model.Session)
	}
	return &sessionRepository{sessions: sessions}
}

func copySession(s *model.Session) *model.Session {
	copied := *s
	if s.TempAttendance != nil {
		copied.TempAttendance = make(map[string]types.AttendanceStatus, len(s.TempAttendance))
		for k, v := range s.TempAttendance {
			copied.TempAttendance[k] = v
		}
	}
	if s.AbsenceReasons != nil {
		copied.AbsenceReasons = make(map[string]string, len(s.AbsenceReasons))
		for k, v := range s.AbsenceReasons {
			copied.AbsenceReasons[k] = v
		}
	}
	return &copied
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	if !session.Type.IsValid() {
		return goerr.New("invalid session type", goerr.V("type", session.Type))
	}
	if !session.Date.IsValid() {
		return goerr.New("invalid session date", goerr.V("date", session.Date))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.Type][session.Date]; exists {
		return goerr.Wrap(ErrAlreadyExists, "session already exists",
			goerr.V("type", session.Type), goerr.V("date", session.Date))
	}

	r.sessions[session.Type][session.Date] = copySession(session)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, sessionType types.SessionType, date types.SessionDate) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[sessionType][date]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "session not found",
			goerr.V("type", sessionType), goerr.V("date", date))
	}
	return copySession(s), nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.Type][session.Date]; !exists {
		return goerr.Wrap(ErrNotFound, "session not found",
			goerr.V("type", session.Type), goerr.V("date", session.Date))
	}

	r.sessions[session.Type][session.Date] = copySession(session)
	return nil
}

func (r *sessionRepository) SetTempAttendance(ctx context.Context, sessionType types.SessionType, date types.SessionDate, employeeUID string, status types.AttendanceStatus, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[sessionType][date]
	if !exists {
		return goerr.Wrap(ErrNotFound, "session not found",
			goerr.V("type", sessionType), goerr.V("date", date))
	}

	if s.TempAttendance == nil {
		s.TempAttendance = make(map[string]types.AttendanceStatus)
	}
	s.TempAttendance[employeeUID] = status

	if reason != "" {
		if s.AbsenceReasons == nil {
			s.AbsenceReasons = make(map[string]string)
		}
		s.AbsenceReasons[employeeUID] = reason
	}
	return nil
}

func (r *sessionRepository) ListUnsynced(ctx context.Context, sessionType types.SessionType) ([]*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*model.Session
	for _, s := range r.sessions[sessionType] {
		if s.Status == types.SessionStatusEnded && !s.Synced {
			sessions = append(sessions, copySession(s))
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Date < sessions[j].Date })
	return sessions, nil
}
