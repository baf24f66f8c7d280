package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/model"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/repository/firestore"
	"github.com/nxtprof/nxtprof/pkg/repository/memory"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
)

// isNotFound reports whether err is a backend not-found error
func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, memory.ErrAlreadyExists) || errors.Is(err, firestore.ErrAlreadyExists)
}

// ScheduleSession creates the day's session document in the scheduled state.
// Re-firing the trigger for an existing date is a silent no-op: the document
// id is the date, so the second create loses.
func (uc *UseCases) ScheduleSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate, scheduledTime time.Time) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if !sessionType.IsValid() {
		return goerr.Wrap(ErrInvalidArgument, "invalid session type", goerr.V("type", string(sessionType)))
	}
	if !date.IsValid() {
		return goerr.Wrap(ErrInvalidArgument, "invalid session date", goerr.V("date", string(date)))
	}

	session := &model.Session{
		Date:          date,
		Type:          sessionType,
		Status:        types.SessionStatusScheduled,
		ScheduledTime: scheduledTime,
	}

	if err := uc.repo.Session().Create(ctx, session); err != nil {
		if isAlreadyExists(err) {
			logging.From(ctx).Info("Session already scheduled, skipping",
				"type", string(sessionType), "date", string(date))
			return nil
		}
		return goerr.Wrap(err, "failed to create session",
			goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
	}

	logging.From(ctx).Info("Session scheduled",
		"type", string(sessionType), "date", string(date))
	return nil
}

// ActivateSession moves a scheduled session to active and seeds the live
// attendance map with every active employee marked Missed. Activating an
// already-active session is a no-op; an ended session never reopens.
func (uc *UseCases) ActivateSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	session, err := uc.repo.Session().Get(ctx, sessionType, date)
	if err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrSessionNotFound, "no session for date",
				goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
		}
		return goerr.Wrap(err, "failed to get session")
	}

	if session.Status == types.SessionStatusActive {
		// Redundant fire
		return nil
	}
	if !session.Status.CanTransitionTo(types.SessionStatusActive) {
		return goerr.Wrap(ErrSessionEnded, "cannot activate an ended session",
			goerr.V("date", string(date)), goerr.V("status", session.Status.String()))
	}

	employees, err := uc.repo.Employee().ListActive(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list active employees")
	}

	session.Status = types.SessionStatusActive
	session.StartedAt = uc.now()
	if session.TempAttendance == nil {
		session.TempAttendance = make(map[string]types.AttendanceStatus, len(employees))
	}
	for _, emp := range employees {
		if _, ok := session.TempAttendance[emp.ID]; !ok {
			session.TempAttendance[emp.ID] = types.AttendanceStatusMissed
		}
	}

	if err := uc.repo.Session().Update(ctx, session); err != nil {
		return goerr.Wrap(err, "failed to activate session", goerr.V("date", string(date)))
	}

	logging.From(ctx).Info("Session activated",
		"type", string(sessionType), "date", string(date), "employees", len(employees))
	return nil
}

// EndSession ends an active session: finalized attendance records are written
// in one atomic batch, then the session moves to ended. For learning-hour
// sessions the day's learning points are locked in the same operation.
// Ending an already-ended session is a no-op.
func (uc *UseCases) EndSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	session, err := uc.repo.Session().Get(ctx, sessionType, date)
	if err != nil {
		if isNotFound(err) {
			return goerr.Wrap(ErrSessionNotFound, "no session for date",
				goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
		}
		return goerr.Wrap(err, "failed to get session")
	}

	if session.Status == types.SessionStatusEnded {
		// Redundant fire
		return nil
	}
	if !session.Status.CanTransitionTo(types.SessionStatusEnded) {
		return goerr.Wrap(ErrSessionNotActive, "cannot end a session that never started",
			goerr.V("date", string(date)), goerr.V("status", session.Status.String()))
	}

	if err := uc.finalizeAttendance(ctx, sessionType, session); err != nil {
		return err
	}

	if sessionType == types.SessionTypeLearningHour {
		locked, err := uc.repo.LearningPoint().LockBySession(ctx, date)
		if err != nil {
			return goerr.Wrap(err, "failed to lock learning points", goerr.V("date", string(date)))
		}
		logging.From(ctx).Info("Learning points locked", "date", string(date), "count", locked)
	}

	session.Status = types.SessionStatusEnded
	session.EndedAt = uc.now()
	if err := uc.repo.Session().Update(ctx, session); err != nil {
		return goerr.Wrap(err, "failed to end session", goerr.V("date", string(date)))
	}

	logging.From(ctx).Info("Session ended",
		"type", string(sessionType), "date", string(date))
	return nil
}

// GetSession returns the session for a date
func (uc *UseCases) GetSession(ctx context.Context, sessionType types.SessionType, date types.SessionDate) (*model.Session, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	session, err := uc.repo.Session().Get(ctx, sessionType, date)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrSessionNotFound, "no session for date",
				goerr.V("type", string(sessionType)), goerr.V("date", string(date)))
		}
		return nil, goerr.Wrap(err, "failed to get session")
	}
	return session, nil
}
